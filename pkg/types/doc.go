// Package types defines the configuration, entity registry, record type,
// and standard error types shared by the FMRD readiness gates, the
// referential guard, and the record editor.
package types
