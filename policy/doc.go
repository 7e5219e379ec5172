// Package policy classifies request paths into authentication modes and
// resolves role permissions.
//
// A RuleSet is process-wide, read-mostly configuration: built once at
// startup, compiled, and immutable afterwards. Classification follows a
// fixed precedence for every request: exclusion over optional over api-key
// over mandatory. Exclusions are a single ordered list of tagged rules
// (exact path or pattern) so that precedence stays one invariant instead of
// split logic.
package policy
