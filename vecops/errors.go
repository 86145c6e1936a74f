package vecops

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch indicates operands (or jagged rows) of different length.
var ErrLengthMismatch = errors.New("vecops: length mismatch")

func vecErrorf(op string, err error) error {
	return fmt.Errorf("vecops.%s: %w", op, err)
}
