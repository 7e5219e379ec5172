// Package observe provides observability primitives for the authentication
// gate: structured logging with credential redaction, OpenTelemetry metrics
// and tracing for gate decisions, and the audit event sink every
// authentication outcome is reported to.
//
// It is a pure instrumentation library: no authentication logic, no
// transport, no I/O beyond exporter setup.
package observe
