// Package gate implements the FMRD readiness gates and the referential guard.
//
// Both are read-only policies over COUNT(*) queries issued through an
// Executor. Nothing is cached between calls; every check re-reads the
// database. Query failures never surface as errors: the readiness gate reads
// them as a count of zero and the guard reads them as "dependents may exist",
// so both fail closed.
package gate
