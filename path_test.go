package captcha

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestPathEmpty(t *testing.T) {
	p := &Path{}
	test.That(t, p.Empty())

	p.MoveTo(5, 2)
	test.That(t, p.Empty())

	p.LineTo(6, 2)
	test.That(t, !p.Empty())

	p = &Path{}
	p.Oval(0, 0, 1, 1, CW)
	test.That(t, !p.Empty())
}

func TestPathEquals(t *testing.T) {
	test.That(t, !MustParseSVGPath("M5 0L5 10").Equals(MustParseSVGPath("M5 0")))
	test.That(t, !MustParseSVGPath("M5 0L5 10").Equals(MustParseSVGPath("M5 0M5 10")))
	test.That(t, !MustParseSVGPath("M5 0L5 10").Equals(MustParseSVGPath("M5 0L5 9")))
	test.That(t, MustParseSVGPath("M5 0L5 10").Equals(MustParseSVGPath("M5 0L5 10")))
	test.That(t, !MustParseSVGPath("M0 0R1 5 5 1 10 0 1").Equals(MustParseSVGPath("M0 0R1 5 5 2 10 0 1")))
}

func TestPathClosed(t *testing.T) {
	test.That(t, !MustParseSVGPath("M5 0L5 10").Closed())
	test.That(t, MustParseSVGPath("M5 0L5 10z").Closed())
	test.That(t, !MustParseSVGPath("M5 0L5 10zM5 10").Closed())
	test.That(t, MustParseSVGPath("M5 0L5 10zM5 10z").Closed())

	p := &Path{}
	p.Rect(0, 0, 5, 5, CW)
	test.That(t, p.Closed())
}

func TestPathCmd(t *testing.T) {
	test.T(t, MoveToCmd.NumPoints(), 1)
	test.T(t, QuadToCmd.NumPoints(), 2)
	test.T(t, CubeToCmd.NumPoints(), 3)
	test.T(t, RationalToCmd.NumPoints(), 2)
	test.T(t, CloseCmd.NumPoints(), 0)
	test.T(t, OvalCmd.NumPoints(), 2)

	test.That(t, QuadToCmd.IsControl(0))
	test.That(t, !QuadToCmd.IsControl(1))
	test.That(t, CubeToCmd.IsControl(1))
	test.That(t, RationalToCmd.IsControl(0))
	test.That(t, !RectCmd.IsControl(0))

	test.That(t, RoundRectCmd.IsShortcut())
	test.That(t, !CloseCmd.IsShortcut())
	test.That(t, !MoveToCmd.Draws())
	test.That(t, LineToCmd.Draws())
	test.String(t, CubeToCmd.String(), "CubeTo")
}

func TestPathSegments(t *testing.T) {
	p := MustParseSVGPath("M1 1L5 1L5 5zL9 9")
	var pens []Pen
	for pen := range p.Segments() {
		pens = append(pens, pen)
	}
	test.T(t, len(pens), 5)
	test.T(t, pens[0], Pen{})
	test.T(t, pens[1], Pen{Point{1, 1}, Point{1, 1}})
	test.T(t, pens[2], Pen{Point{5, 1}, Point{1, 1}})
	test.T(t, pens[3], Pen{Point{5, 5}, Point{1, 1}})
	test.T(t, pens[4], Pen{Point{1, 1}, Point{1, 1}})
	test.T(t, p.Pos(), Point{9, 9})

	// modifications during iteration are seen by the following pens
	p = MustParseSVGPath("M0 0L1 0L2 0")
	for pen, ins := range p.Segments() {
		if ins.Cmd != LineToCmd {
			continue
		} else if ins.P[0].X == 1.0 {
			ins.P[0].Y = 5.0
		} else {
			test.T(t, pen.Pos, Point{1, 5})
		}
	}
}

func TestPathPenAfterShortcut(t *testing.T) {
	p := &Path{}
	p.Oval(0, 0, 10, 4, CW)
	p.LineTo(20, 2)
	test.T(t, p.Pen(), Pen{Point{20, 2}, Point{10, 2}})

	p = &Path{}
	p.RoundRect(0, 0, 10, 10, 2, 3, CW)
	test.T(t, p.Pen().Start, Point{2, 0})

	p = &Path{}
	p.Rect(10, 10, 0, 0, CCW)
	test.T(t, p.Pen().Start, Point{0, 0})
}

func TestPathCoords(t *testing.T) {
	test.T(t, MustParseSVGPath("M1 1L5 1Q7 7 5 5C1 1 2 2 0 0z").Coords(), []Point{{1, 1}, {5, 1}, {5, 5}, {0, 0}})
	p := &Path{}
	p.LineTo(5, 1)
	test.T(t, p.Coords(), []Point{{0, 0}, {5, 1}})

	p = &Path{}
	p.Rect(0, 0, 2, 1, CW)
	test.T(t, p.Coords(), []Point{{0, 0}, {2, 0}, {2, 1}, {0, 1}})
}

func TestPathBounds(t *testing.T) {
	var tts = []struct {
		p    string
		want Rect
	}{
		{"M1 1L5 3", Rect{1, 1, 4, 2}},
		{"M0 0Q5 10 10 0", Rect{0, 0, 10, 5}},
		{"M0 0C0 10 10 10 10 0", Rect{0, 0, 10, 7.5}},
		{"M2 2", Rect{2, 2, 0, 0}},
		{"M0 0L5 0zM-3 8", Rect{-3, 0, 8, 8}},
		{"", Rect{}},
	}
	for _, tt := range tts {
		t.Run(tt.p, func(t *testing.T) {
			b := MustParseSVGPath(tt.p).Bounds()
			test.Float(t, b.X, tt.want.X)
			test.Float(t, b.Y, tt.want.Y)
			test.Float(t, b.W, tt.want.W)
			test.Float(t, b.H, tt.want.H)
		})
	}

	p := &Path{}
	p.Oval(-1, -2, 3, 4, CCW)
	test.T(t, p.Bounds(), Rect{-1, -2, 4, 6})
}

func TestPathDisassemble(t *testing.T) {
	var tts = []struct {
		build func(*Path)
		want  string
	}{
		{func(p *Path) { p.Rect(0, 0, 10, 5, CW) }, "M0 0L10 0L10 5L0 5z"},
		{func(p *Path) { p.Rect(0, 0, 10, 5, CCW) }, "M0 0L0 5L10 5L10 0z"},
		{func(p *Path) { p.Oval(0, 0, 10, 10, CW) }, "M10 5R1 10 10 .707107 5 10 1R1 0 10 .707107 0 5 1R1 0 0 .707107 5 0 1R1 10 0 .707107 10 5 1z"},
		{func(p *Path) { p.Oval(0, 0, 10, 10, CCW) }, "M10 5R1 10 0 .707107 5 0 1R1 0 0 .707107 0 5 1R1 0 10 .707107 5 10 1R1 10 10 .707107 10 5 1z"},
		{func(p *Path) { p.RoundRect(0, 0, 10, 10, 2, 2, CW) }, "M2 0L8 0R1 10 0 .707107 10 2 1L10 8R1 10 10 .707107 8 10 1L2 10R1 0 10 .707107 0 8 1L0 2R1 0 0 .707107 2 0 1z"},
		{func(p *Path) { p.RoundRect(0, 0, 10, 10, 2, 2, CCW) }, "M2 0R1 0 0 .707107 0 2 1L0 8R1 0 10 .707107 2 10 1L8 10R1 10 10 .707107 10 8 1L10 2R1 10 0 .707107 8 0 1L2 0z"},
		{func(p *Path) { p.RoundRect(0, 0, 4, 4, 5, 5, CW) }, "M2 0R1 4 0 .707107 4 2 1R1 4 4 .707107 2 4 1R1 0 4 .707107 0 2 1R1 0 0 .707107 2 0 1z"},
		{func(p *Path) { p.RoundRect(0, 0, 10, 5, 0, 0, CW) }, "M0 0L10 0L10 5L0 5z"},
	}
	for _, tt := range tts {
		t.Run(tt.want, func(t *testing.T) {
			p := &Path{}
			tt.build(p)
			test.String(t, p.String(), tt.want)

			p.Disassemble()
			for _, ins := range p.Instructions() {
				test.That(t, !ins.Cmd.IsShortcut())
			}
			test.String(t, p.String(), tt.want)
		})
	}
}

func TestPathContours(t *testing.T) {
	p := MustParseSVGPath("M0 0L1 0M5 5L6 5L6 6zL7 7M8 8")
	p.Rect(0, 0, 1, 1, CW)
	cs := p.Contours()
	test.T(t, len(cs), 4)
	test.String(t, cs[0].String(), "M0 0L1 0")
	test.String(t, cs[1].String(), "M5 5L6 5L6 6z")
	test.String(t, cs[2].String(), "M5 5L7 7")
	test.T(t, cs[3].Instructions()[0].Cmd, RectCmd)

	q := &Path{}
	q.LineTo(3, 4)
	test.T(t, len(q.Contours()), 1)
	test.String(t, q.Contours()[0].String(), "M0 0L3 4")
	test.T(t, len(MustParseSVGPath("M1 1M2 2z").Contours()), 0)
}

func TestPathTransform(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0Q10 10 0 10")
	p.Transform(Identity.Translate(1, 2).Scale(2, 3))
	test.String(t, p.String(), "M1 2L21 2Q21 32 1 32")

	p = MustParseSVGPath("M0 0R1 10 0 0.5 10 10 2")
	p.Translate(5, 0)
	test.String(t, p.String(), "M5 0R1 15 0 .5 15 10 2")

	// axis-aligned transformations keep shortcuts
	p = &Path{}
	p.RoundRect(0, 0, 10, 5, 2, 1, CW)
	p.Scale(-2, 1)
	ins := p.Instructions()[0]
	test.T(t, ins.Cmd, RoundRectCmd)
	test.T(t, ins.P[0], Point{-20, 0})
	test.T(t, ins.P[1], Point{0, 5})
	test.Float(t, ins.RX, 4.0)
	test.Float(t, ins.RY, 1.0)
	test.T(t, ins.Dir, CCW)

	// rotations disassemble shortcuts
	p = &Path{}
	p.Rect(0, 0, 10, 5, CW)
	p.Transform(Identity.Rotate(90))
	test.T(t, p.Instructions()[0].Cmd, MoveToCmd)
	test.String(t, p.String(), "M0 0L0 10L-5 10L-5 0z")
}

func TestPathAppendCopy(t *testing.T) {
	p := MustParseSVGPath("M0 0L1 1")
	q := p.Copy()
	q.Instructions()[1].P[0] = Point{5, 5}
	test.String(t, p.String(), "M0 0L1 1")
	test.String(t, q.String(), "M0 0L5 5")

	p.Append(q).Append(nil)
	test.String(t, p.String(), "M0 0L1 1M0 0L5 5")
	test.T(t, p.Len(), 4)
}
