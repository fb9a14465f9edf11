package captcha

import (
	"fmt"
	"math"
)

// collinearTolerance is the deviation in degrees from 0 or 180 under which three points are considered collinear.
const collinearTolerance = 1e-4

// Distance returns the length of the line segment AB.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Lerp linearly interpolates between A and B, ie. t=0 returns A and t=1 returns B.
func Lerp(a, b Point, t float64) Point {
	return a.Interpolate(b, t)
}

// Midpoint returns the point halfway between A and B.
func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2.0, (a.Y + b.Y) / 2.0}
}

// SubdivideLine splits AB into n segments of equal length and returns the n+1 points including A and B.
func SubdivideLine(a, b Point, n int) ([]Point, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: segment count %d must be positive", ErrInvalidArgument, n)
	}
	return subdivideLine(a, b, n), nil
}

func subdivideLine(a, b Point, n int) []Point {
	ps := make([]Point, n+1)
	ps[0] = a
	for i := 1; i < n; i++ {
		ps[i] = a.Interpolate(b, float64(i)/float64(n))
	}
	ps[n] = b
	return ps
}

// GranulateLine splits AB into the least number of equal segments that are no longer than maxLength, and returns the points including A and B.
func GranulateLine(a, b Point, maxLength float64) ([]Point, error) {
	if !(0.0 < maxLength) || math.IsInf(maxLength, 1) {
		return nil, fmt.Errorf("%w: max length %g must be positive and finite", ErrInvalidArgument, maxLength)
	}
	return granulateLine(a, b, maxLength), nil
}

// granulateLine expects a positive and finite maxLength.
func granulateLine(a, b Point, maxLength float64) []Point {
	n := int(math.Ceil(Distance(a, b) / maxLength))
	if n < 1 {
		n = 1
	}
	return subdivideLine(a, b, n)
}

// Angle returns the angle in degrees at vertex V between the segments VA and VB, computed with the law of cosines. It is 180 when A, V and B lie on a straight line with V in between, and NaN when V coincides with A or B.
func Angle(a, v, b Point) float64 {
	va := Distance(v, a)
	vb := Distance(v, b)
	ab := Distance(a, b)
	denom := 2.0 * va * vb
	if denom == 0.0 {
		return math.NaN()
	}
	cos := (va*va + vb*vb - ab*ab) / denom
	cos = math.Max(-1.0, math.Min(1.0, cos))
	return radToDeg(math.Acos(cos))
}

// Collinear returns true if all consecutive triples of points have an angle of about 0 or 180 degrees. Coinciding points do not bend the line and are skipped.
func Collinear(ps ...Point) bool {
	for i := 2; i < len(ps); i++ {
		angle := Angle(ps[i-2], ps[i-1], ps[i])
		if math.IsNaN(angle) {
			continue
		} else if collinearTolerance < angle && angle < 180.0-collinearTolerance {
			return false
		}
	}
	return true
}

// distanceToLine returns the perpendicular distance of P to the line through A and B, computed as |AP|*sin(angle at A). It returns |AP| when A and B coincide.
func distanceToLine(p, a, b Point) float64 {
	ap := Distance(a, p)
	angle := Angle(p, a, b)
	if math.IsNaN(angle) {
		return ap
	}
	return ap * math.Abs(math.Sin(degToRad(angle)))
}
