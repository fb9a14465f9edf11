package captcha

import (
	"fmt"
	"math"
)

const (
	// granulateBlindRounds is the number of times every sub-curve is bisected before looking at chord lengths. Curves whose end points (nearly) coincide while the control points are far away would otherwise never be split.
	granulateBlindRounds = 3

	// granulateMaxDepth bounds the bisection depth for non-finite input.
	granulateMaxDepth = 64

	// angleSplitMaxDepth bounds the bisection depth around cusps, where the angle between chords does not improve by splitting.
	angleSplitMaxDepth = 16
)

type subdivisible[C any] interface {
	Split(float64) (C, C)
	Start() Point
	End() Point
	Chord() float64
}

type subcurve[C any] struct {
	curve    C
	parent   int
	children [2]int // -1 for leaves
	depth    int
}

// subdivision is a binary tree of sub-curves stored in an arena and addressed by index. Merged children stay in the arena but are no longer reachable from the root.
type subdivision[C subdivisible[C]] struct {
	nodes []subcurve[C]
}

func newSubdivision[C subdivisible[C]](c C) *subdivision[C] {
	return &subdivision[C]{
		nodes: []subcurve[C]{{curve: c, parent: -1, children: [2]int{-1, -1}}},
	}
}

func (s *subdivision[C]) isLeaf(i int) bool {
	return s.nodes[i].children[0] == -1
}

// bisect splits leaf i at t=0.5 and appends both halves as its children.
func (s *subdivision[C]) bisect(i int) {
	c0, c1 := s.nodes[i].curve.Split(0.5)
	depth := s.nodes[i].depth + 1
	j := len(s.nodes)
	s.nodes = append(s.nodes,
		subcurve[C]{curve: c0, parent: i, children: [2]int{-1, -1}, depth: depth},
		subcurve[C]{curve: c1, parent: i, children: [2]int{-1, -1}, depth: depth},
	)
	s.nodes[i].children = [2]int{j, j + 1}
}

// merge turns node i back into a leaf.
func (s *subdivision[C]) merge(i int) {
	s.nodes[i].children = [2]int{-1, -1}
}

// leaves returns the indices of the leaves in curve order.
func (s *subdivision[C]) leaves() []int {
	var is []int
	stack := []int{0}
	for 0 < len(stack) {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.isLeaf(i) {
			is = append(is, i)
		} else {
			stack = append(stack, s.nodes[i].children[1], s.nodes[i].children[0])
		}
	}
	return is
}

func (s *subdivision[C]) blindSplit(rounds int) {
	for round := 0; round < rounds; round++ {
		for _, i := range s.leaves() {
			s.bisect(i)
		}
	}
}

func (s *subdivision[C]) curves() []C {
	is := s.leaves()
	cs := make([]C, len(is))
	for k, i := range is {
		cs[k] = s.nodes[i].curve
	}
	return cs
}

func (s *subdivision[C]) polyline() []Point {
	is := s.leaves()
	ps := make([]Point, 0, len(is)+1)
	for _, i := range is {
		ps = append(ps, s.nodes[i].curve.Start())
	}
	return append(ps, s.nodes[is[len(is)-1]].curve.End())
}

////////////////////////////////////////////////////////////////

func validateMaxChord(maxChord float64) error {
	if !(0.0 < maxChord) || math.IsInf(maxChord, 1) {
		return fmt.Errorf("%w: max chord length %g must be positive and finite", ErrInvalidArgument, maxChord)
	}
	return nil
}

// Granulate subdivides the curve into sub-curves of the same order whose chords are no longer than maxChord, as an approximation of splitting by arc length.
func Granulate(c Curve, maxChord float64) ([]Curve, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	} else if err := validateMaxChord(maxChord); err != nil {
		return nil, err
	}
	return granulate(c, maxChord), nil
}

// GranulateRational subdivides the rational curve into rational sub-curves whose chords are no longer than maxChord.
func GranulateRational(c RationalCurve, maxChord float64) ([]RationalCurve, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	} else if err := validateMaxChord(maxChord); err != nil {
		return nil, err
	}
	return granulate(c, maxChord), nil
}

func granulate[C subdivisible[C]](c C, maxChord float64) []C {
	s := newSubdivision(c)
	s.blindSplit(granulateBlindRounds)

	// undo blind splits where the parent was short enough already
	for merged := true; merged; {
		merged = false
		for i := range s.nodes {
			if s.isLeaf(i) {
				continue
			}
			j, k := s.nodes[i].children[0], s.nodes[i].children[1]
			if !s.isLeaf(j) || !s.isLeaf(k) {
				continue
			}
			if s.nodes[i].curve.Chord() <= maxChord && s.nodes[j].curve.Chord() <= maxChord && s.nodes[k].curve.Chord() <= maxChord {
				s.merge(i)
				merged = true
			}
		}
	}

	for split := true; split; {
		split = false
		for _, i := range s.leaves() {
			if maxChord < s.nodes[i].curve.Chord() && s.nodes[i].depth < granulateMaxDepth {
				s.bisect(i)
				split = true
			}
		}
	}
	return s.curves()
}

////////////////////////////////////////////////////////////////

func validateMinAngle(minAngle float64) error {
	if !(0.0 <= minAngle && minAngle < 180.0) {
		return fmt.Errorf("%w: angle %g must be in [0,180)", ErrInvalidArgument, minAngle)
	}
	return nil
}

// AngleSplit approximates the curve by a polyline where every two consecutive segments meet at an angle of at least minAngle degrees, with 180 being a straight continuation. It returns ErrDegenerate when the curve is a straight line.
func AngleSplit(c Curve, minAngle float64) ([]Point, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	} else if err := validateMinAngle(minAngle); err != nil {
		return nil, err
	} else if Collinear(c...) {
		return nil, fmt.Errorf("%w: curve %v is a straight line", ErrDegenerate, c)
	}
	return angleSplit(c, minAngle)
}

// AngleSplitRational approximates the rational curve by a polyline, see AngleSplit.
func AngleSplitRational(c RationalCurve, minAngle float64) ([]Point, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	} else if err := validateMinAngle(minAngle); err != nil {
		return nil, err
	} else if Collinear(c.Curve()...) {
		return nil, fmt.Errorf("%w: curve %v is a straight line", ErrDegenerate, c)
	}
	return angleSplit(c, minAngle)
}

func angleSplit[C subdivisible[C]](c C, minAngle float64) ([]Point, error) {
	s := newSubdivision(c)
	s.blindSplit(granulateBlindRounds)

	for split := true; split; {
		split = false
		is := s.leaves()
		marked := make([]bool, len(is))
		for k := 1; k < len(is); k++ {
			c0, c1 := s.nodes[is[k-1]].curve, s.nodes[is[k]].curve
			angle := Angle(c0.Start(), c0.End(), c1.End())
			if math.IsNaN(angle) {
				return nil, fmt.Errorf("%w: zero-length chord at %v", ErrDegenerate, c0.End())
			} else if angle < minAngle {
				marked[k-1] = true
				marked[k] = true
			}
		}
		for k, i := range is {
			if marked[k] && s.nodes[i].depth < angleSplitMaxDepth {
				s.bisect(i)
				split = true
			}
		}
	}

	// joints still too sharp lie between leaves at full depth, which happens at cusps
	ps := s.polyline()
	for k := 2; k < len(ps); k++ {
		if Angle(ps[k-2], ps[k-1], ps[k]) < minAngle {
			return nil, fmt.Errorf("%w: cusp at %v", ErrDegenerate, ps[k-1])
		}
	}
	return ps, nil
}
