// Package matrix offers the dense origin-destination storage used across the
// zone system, the network skims and the land-use data sources.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix over a single flat slice (offset
//     i*cols + j), with bounds-checked At/Set and no-copy Row/Data views for
//     hot loops.
//   - A numeric policy (WithNoValidateNaNInf, WithAllowInfDistances) so skims
//     can hold +Inf for "no path" while attribute matrices stay finite.
//   - OD transforms: Mask (keep an origin/destination window, overwrite the
//     rest) and Sub (element-wise rate difference).
//
// Matrices are zones×zones; O(N²) memory is expected and acceptable.
package matrix
