// Package vecops provides element-wise arithmetic over flat and jagged
// float64 arrays: the primitive numeric layer used by the utility builder,
// the location-choice engine and the OD data sources.
//
// Every routine exists twice:
//
//   - an accelerated path that delegates to gonum.org/v1/gonum/floats, whose
//     kernels are assembly-backed on amd64/arm64;
//   - an unexported scalar twin with a plain indexed loop.
//
// The scalar twins are the reference implementation. Property tests compare
// both paths (see export_test.go), and SetAccelerated(false) forces the
// scalar path process-wide.
//
// Errors:
//
//	ErrLengthMismatch - operands of different length (never panics).
//
// Jagged variants process rows in parallel; rows may have different lengths,
// but every operand must agree row by row.
package vecops
