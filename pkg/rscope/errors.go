package rscope

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch matches any *DimensionError via errors.Is.
	ErrDimensionMismatch = errors.New("resize callback returned wrong dimensions")
	// ErrNoData is returned when reconstruction produced no usable points.
	ErrNoData = errors.New("analysis produced no usable data")
)

// DimensionError reports a callback output whose size differs from the
// requested target.
type DimensionError struct {
	Pattern              string
	ExpectedW, ExpectedH int
	ActualW, ActualH     int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s pattern: resize callback returned wrong dimensions: expected %dx%d, got %dx%d",
		e.Pattern, e.ExpectedW, e.ExpectedH, e.ActualW, e.ActualH)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
