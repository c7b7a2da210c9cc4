package pixconv

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a conversion is requested
	// with arguments that can never succeed.
	ErrInvalidArgument = errors.New("pixconv: invalid argument")

	// ErrDimensionMismatch is returned when the source and destination
	// of a conversion differ in size. It wraps ErrInvalidArgument.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidArgument)

	// ErrAllocation is returned when a destination bitmap cannot be
	// allocated.
	ErrAllocation = errors.New("pixconv: allocation failed")

	// ErrMap is returned when the memory of a bitmap cannot be mapped.
	// The error returned by the bitmap is wrapped along with it.
	ErrMap = errors.New("pixconv: map failed")
)
