package captcha

import (
	"fmt"
	"math"
)

// boundsSamples is the number of points evaluated along a curve to approximate its bounding box.
const boundsSamples = 20

// binomials holds the Bernstein coefficients of the supported curve orders, indexed by point count.
var binomials = [...][]float64{
	3: {1.0, 2.0, 1.0},
	4: {1.0, 3.0, 3.0, 1.0},
}

func bernstein(n int, t float64) []float64 {
	if n != 3 && n != 4 {
		panic(fmt.Sprintf("unsupported Bézier curve with %d points", n))
	}
	bs := make([]float64, n)
	for i, coef := range binomials[n] {
		bs[i] = coef * math.Pow(1.0-t, float64(n-1-i)) * math.Pow(t, float64(i))
	}
	return bs
}

// Curve is a quadratic (3 points) or cubic (4 points) Bézier curve given by its start point, control points and end point. The number of points fixes the order of the curve.
type Curve []Point

// NewCurve returns a curve of the given points, which must be either 3 (quadratic) or 4 (cubic) points.
func NewCurve(ps ...Point) (Curve, error) {
	c := Curve(ps)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return append(Curve(nil), ps...), nil
}

// Validate returns ErrCurveOrder if the curve is neither quadratic nor cubic.
func (c Curve) Validate() error {
	if len(c) != 3 && len(c) != 4 {
		return fmt.Errorf("%w: got %d", ErrCurveOrder, len(c))
	}
	return nil
}

// Start returns the start point.
func (c Curve) Start() Point {
	return c[0]
}

// End returns the end point.
func (c Curve) End() Point {
	return c[len(c)-1]
}

// Chord returns the distance between the start and end point.
func (c Curve) Chord() float64 {
	return Distance(c[0], c[len(c)-1])
}

// Copy returns a copy of the curve.
func (c Curve) Copy() Curve {
	return append(Curve(nil), c...)
}

// Split splits the curve at t using De Casteljau's algorithm and returns both parts, which are of the same order as the original. The end of the first and the start of the second are the same point.
func (c Curve) Split(t float64) (Curve, Curve) {
	n := len(c)
	q, r := make(Curve, n), make(Curve, n)
	tmp := c.Copy()
	for i := 0; i < n; i++ {
		q[i] = tmp[0]
		r[n-1-i] = tmp[n-1-i]
		for j := 0; j < n-1-i; j++ {
			tmp[j] = tmp[j].Interpolate(tmp[j+1], t)
		}
	}
	return q, r
}

// Eval returns the point on the curve at t. It panics for curves that are neither quadratic nor cubic.
func (c Curve) Eval(t float64) Point {
	p := Point{}
	for i, b := range bernstein(len(c), t) {
		p = p.Add(c[i].Mul(b))
	}
	return p
}

// Bounds returns the approximate bounding box by sampling the curve.
func (c Curve) Bounds() Rect {
	r := RectFromPoints(c[0], c[len(c)-1])
	for i := 1; i < boundsSamples; i++ {
		r = r.AddPoint(c.Eval(float64(i) / boundsSamples))
	}
	return r
}

////////////////////////////////////////////////////////////////

// RationalCurve is a rational quadratic (3 points) or cubic (4 points) Bézier curve where each point carries a weight.
type RationalCurve []Point3

// NewRationalCurve returns a rational curve of the given points, which must be either 3 or 4 points.
func NewRationalCurve(ps ...Point3) (RationalCurve, error) {
	c := RationalCurve(ps)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return append(RationalCurve(nil), ps...), nil
}

// Validate returns ErrCurveOrder if the curve is neither quadratic nor cubic.
func (c RationalCurve) Validate() error {
	if len(c) != 3 && len(c) != 4 {
		return fmt.Errorf("%w: got %d", ErrCurveOrder, len(c))
	}
	return nil
}

// Start returns the start point.
func (c RationalCurve) Start() Point {
	return c[0].Point()
}

// End returns the end point.
func (c RationalCurve) End() Point {
	return c[len(c)-1].Point()
}

// Chord returns the distance between the start and end point.
func (c RationalCurve) Chord() float64 {
	return Distance(c.Start(), c.End())
}

// Copy returns a copy of the curve.
func (c RationalCurve) Copy() RationalCurve {
	return append(RationalCurve(nil), c...)
}

// Curve returns the control polygon without weights.
func (c RationalCurve) Curve() Curve {
	q := make(Curve, len(c))
	for i, p := range c {
		q[i] = p.Point()
	}
	return q
}

// Split splits the curve at t. Points are lifted into homogeneous coordinates, split by De Casteljau's algorithm and projected back, since interpolating weighted points directly does not follow the curve.
func (c RationalCurve) Split(t float64) (RationalCurve, RationalCurve) {
	n := len(c)
	q, r := make(RationalCurve, n), make(RationalCurve, n)
	tmp := make(RationalCurve, n)
	for i, p := range c {
		tmp[i] = p.Lift()
	}
	for i := 0; i < n; i++ {
		q[i] = tmp[0].Project()
		r[n-1-i] = tmp[n-1-i].Project()
		for j := 0; j < n-1-i; j++ {
			tmp[j] = tmp[j].Interpolate(tmp[j+1], t)
		}
	}
	q[0], r[n-1] = c[0], c[n-1]
	return q, r
}

// Eval returns the point on the curve at t. It panics for curves that are neither quadratic nor cubic.
func (c RationalCurve) Eval(t float64) Point {
	p, w := Point{}, 0.0
	for i, b := range bernstein(len(c), t) {
		b *= c[i].W
		p = p.Add(c[i].Point().Mul(b))
		w += b
	}
	return p.Div(w)
}

// Bounds returns the approximate bounding box by sampling the curve.
func (c RationalCurve) Bounds() Rect {
	r := RectFromPoints(c.Start(), c.End())
	for i := 1; i < boundsSamples; i++ {
		r = r.AddPoint(c.Eval(float64(i) / boundsSamples))
	}
	return r
}
