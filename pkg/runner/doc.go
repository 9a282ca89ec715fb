// Package runner reconciles a property list against the live system.
//
// Each property is checked and, when its condition does not hold,
// applied. Properties run strictly in list order, one at a time; a failed
// check or apply is reported and counted, and the run continues with the
// next property. Only the aggregate outcome is returned: nil when every
// property converged, or an AGGREGATE_FAILURE error carrying the failed
// and total counts.
//
// Re-running a list is always safe because properties are idempotent.
package runner
