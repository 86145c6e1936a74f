package vecops

// Scalar twins exposed to vecops_test for accelerated-vs-reference checks.
var (
	ScalarSubtractRef       = subtract
	ScalarSubtractScalarRef = subtractScalar
	ScalarScalarSubtractRef = scalarSubtract
	ScalarMultiplyRef       = multiply
	ScalarMultiplyScalarRef = multiplyScalar
	ScalarSumRef            = sum
)
