// Package userstore holds user accounts and credential hashes.
//
// The Store interface abstracts the backing storage; MemoryStore is the
// in-process implementation used by tests and single-node deployments.
// Stores deal in value copies: a *User returned by a lookup is the
// caller's to mutate, and nothing changes in the store until Update is
// called.
package userstore
