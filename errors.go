package captcha

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a parameter is outside of its valid range. No work is performed in that case.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrCurveOrder is returned when a point slice does not describe a quadratic (3 points) or cubic (4 points) curve.
var ErrCurveOrder = fmt.Errorf("%w: curve must have 3 or 4 points", ErrInvalidArgument)

// ErrDegenerate is returned when a geometric computation is undefined for the given input, for example when measuring angles along a curve that is a straight line.
var ErrDegenerate = errors.New("degenerate geometry")
