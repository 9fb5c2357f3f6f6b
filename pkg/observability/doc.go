/*
Package observability provides Prometheus instrumentation for the claim form engine.

Validation passes, expression failures and document assembly are recorded on a
caller-supplied prometheus.Registerer. A nil *Metrics is valid and records nothing,
so components can accept metrics optionally.
*/
package observability
