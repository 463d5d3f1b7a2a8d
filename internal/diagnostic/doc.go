// Package diagnostic provides structured errors, warnings, and infos
// recorded while deriving a profiled schema.
//
// Key capabilities:
//   - Per-constraint skip reports (unresolved class or feature, malformed path)
//   - Cardinality parse warnings that leave the feature untouched
//   - Informational notes such as truncated deep paths
package diagnostic
