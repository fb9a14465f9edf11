package captcha

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestGranulate(t *testing.T) {
	var tts = []struct {
		c        Curve
		maxChord float64
	}{
		{Curve{{0, 0}, {5, 10}, {10, 0}}, 1.0},
		{Curve{{0, 0}, {5, 10}, {10, 0}}, 100.0},
		{Curve{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, 0.5},
		{Curve{{0, 0}, {40, 0}, {0, 0}}, 2.0},          // end points coincide
		{Curve{{0, 0}, {30, 30}, {-30, 30}, {0, 0}}, 3.0}, // loop
	}
	for _, tt := range tts {
		t.Run(fmt.Sprint(tt.c), func(t *testing.T) {
			cs, err := Granulate(tt.c, tt.maxChord)
			test.Error(t, err)
			test.T(t, cs[0].Start(), tt.c.Start())
			test.T(t, cs[len(cs)-1].End(), tt.c.End())
			for i, c := range cs {
				test.T(t, len(c), len(tt.c))
				test.That(t, c.Chord() <= tt.maxChord, "chord", c.Chord(), "exceeds", tt.maxChord)
				if 0 < i {
					test.T(t, cs[i-1].End(), c.Start())
				}
			}
		})
	}
}

func TestGranulateMerges(t *testing.T) {
	// a short curve is returned whole, as the blind splits are undone
	cs, err := Granulate(Curve{{0, 0}, {1, 1}, {2, 0}}, 10.0)
	test.Error(t, err)
	test.T(t, len(cs), 1)

	// a long coinciding curve is not returned whole
	cs, err = Granulate(Curve{{0, 0}, {40, 0}, {0, 0}}, 10.0)
	test.Error(t, err)
	test.That(t, 1 < len(cs))
}

func TestGranulateRational(t *testing.T) {
	c := RationalCurve{{10, 0, 1}, {10, 10, arcWeight}, {0, 10, 1}}
	cs, err := GranulateRational(c, 1.0)
	test.Error(t, err)
	for i, sub := range cs {
		test.That(t, sub.Chord() <= 1.0)
		test.Float(t, sub.End().Length(), 10.0)
		if 0 < i {
			test.T(t, cs[i-1].End(), sub.Start())
		}
	}
	test.T(t, cs[len(cs)-1].End(), Point{0, 10})
}

func TestGranulateErrors(t *testing.T) {
	c := Curve{{0, 0}, {5, 10}, {10, 0}}
	for _, maxChord := range []float64{0.0, -1.0, math.Inf(1), math.NaN()} {
		_, err := Granulate(c, maxChord)
		test.That(t, errors.Is(err, ErrInvalidArgument))
	}
	_, err := Granulate(Curve{{0, 0}, {1, 0}}, 1.0)
	test.That(t, errors.Is(err, ErrCurveOrder))
}

func TestAngleSplit(t *testing.T) {
	var tts = []struct {
		c        Curve
		minAngle float64
	}{
		{Curve{{0, 0}, {50, 100}, {100, 0}}, 170.0},
		{Curve{{0, 0}, {50, 100}, {100, 0}}, 90.0},
		{Curve{{0, 0}, {0, 50}, {50, 50}, {50, 0}}, 175.0},
		{Curve{{0, 0}, {50, 100}, {100, 0}}, 0.0},
	}
	for _, tt := range tts {
		t.Run(fmt.Sprint(tt.c, tt.minAngle), func(t *testing.T) {
			ps, err := AngleSplit(tt.c, tt.minAngle)
			test.Error(t, err)
			test.T(t, ps[0], tt.c.Start())
			test.T(t, ps[len(ps)-1], tt.c.End())
			test.That(t, 9 <= len(ps), "blind splits give at least 8 segments")
			for i := 2; i < len(ps); i++ {
				test.That(t, tt.minAngle <= Angle(ps[i-2], ps[i-1], ps[i]))
			}
		})
	}
}

func TestAngleSplitRational(t *testing.T) {
	c := RationalCurve{{10, 0, 1}, {10, 10, arcWeight}, {0, 10, 1}}
	ps, err := AngleSplitRational(c, 175.0)
	test.Error(t, err)
	for _, p := range ps {
		test.Float(t, p.Length(), 10.0)
	}
	for i := 2; i < len(ps); i++ {
		test.That(t, 175.0 <= Angle(ps[i-2], ps[i-1], ps[i]))
	}
}

func TestAngleSplitErrors(t *testing.T) {
	c := Curve{{0, 0}, {50, 100}, {100, 0}}
	for _, minAngle := range []float64{-1.0, 180.0, 200.0, math.NaN()} {
		_, err := AngleSplit(c, minAngle)
		test.That(t, errors.Is(err, ErrInvalidArgument), minAngle)
	}

	_, err := AngleSplit(Curve{{0, 0}, {5, 0}, {10, 0}}, 90.0)
	test.That(t, errors.Is(err, ErrDegenerate))
	_, err = AngleSplitRational(RationalCurve{{0, 0, 1}, {5, 5, 2}, {10, 10, 1}}, 90.0)
	test.That(t, errors.Is(err, ErrDegenerate))
	_, err = AngleSplit(Curve{{0, 0}, {100, 100}, {0, 100}, {100, 0}}, 150.0) // cusp
	test.That(t, errors.Is(err, ErrDegenerate))
	_, err = AngleSplit(Curve{{0, 0}}, 90.0)
	test.That(t, errors.Is(err, ErrCurveOrder))
}
