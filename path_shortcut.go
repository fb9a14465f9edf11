package captcha

import "math"

// arcWeight is the control point weight of a rational quadratic curve that draws an exact quarter of an ellipse.
var arcWeight = math.Cos(math.Pi / 4.0)

// radii returns the corner radii of a rounded rectangle, limited to half its size.
func (ins Instruction) radii() (float64, float64) {
	w, h := ins.P[1].X-ins.P[0].X, ins.P[1].Y-ins.P[0].Y
	return math.Min(ins.RX, w/2.0), math.Min(ins.RY, h/2.0)
}

// shortcutStart returns the point where a contour shortcut starts and ends drawing.
func (ins Instruction) shortcutStart() Point {
	l, t, r, b := ins.P[0].X, ins.P[0].Y, ins.P[1].X, ins.P[1].Y
	switch ins.Cmd {
	case OvalCmd:
		return Point{r, (t + b) / 2.0}
	case RoundRectCmd:
		if rx, ry := ins.radii(); 0.0 < rx && 0.0 < ry {
			return Point{l + rx, t}
		}
	}
	return Point{l, t}
}

// Disassemble expands a contour shortcut into primitive instructions: a move, lines and rational quarter arcs, and a close. Other instructions are returned as is. Transformations that only touch the owned points need the disassembled form to affect the rendered shape.
func (ins Instruction) Disassemble() []Instruction {
	l, t, r, b := ins.P[0].X, ins.P[0].Y, ins.P[1].X, ins.P[1].Y
	switch ins.Cmd {
	case RectCmd:
		return disassembleRect(l, t, r, b, ins.Dir)
	case RoundRectCmd:
		rx, ry := ins.radii()
		if rx <= 0.0 || ry <= 0.0 {
			return disassembleRect(l, t, r, b, ins.Dir)
		}
		return disassembleRoundRect(l, t, r, b, rx, ry, ins.Dir)
	case OvalCmd:
		return disassembleOval(l, t, r, b, ins.Dir)
	}
	return []Instruction{ins}
}

func disassembleRect(l, t, r, b float64, dir Direction) []Instruction {
	p := &Path{}
	p.MoveTo(l, t)
	if dir == CW {
		p.LineTo(r, t)
		p.LineTo(r, b)
		p.LineTo(l, b)
	} else {
		p.LineTo(l, b)
		p.LineTo(r, b)
		p.LineTo(r, t)
	}
	p.Close()
	return p.ins
}

func disassembleOval(l, t, r, b float64, dir Direction) []Instruction {
	cx, cy := (l+r)/2.0, (t+b)/2.0
	p := &Path{}
	p.MoveTo(r, cy)
	if dir == CW {
		p.RationalTo(1.0, r, b, arcWeight, cx, b, 1.0)
		p.RationalTo(1.0, l, b, arcWeight, l, cy, 1.0)
		p.RationalTo(1.0, l, t, arcWeight, cx, t, 1.0)
		p.RationalTo(1.0, r, t, arcWeight, r, cy, 1.0)
	} else {
		p.RationalTo(1.0, r, t, arcWeight, cx, t, 1.0)
		p.RationalTo(1.0, l, t, arcWeight, l, cy, 1.0)
		p.RationalTo(1.0, l, b, arcWeight, cx, b, 1.0)
		p.RationalTo(1.0, r, b, arcWeight, r, cy, 1.0)
	}
	p.Close()
	return p.ins
}

func disassembleRoundRect(l, t, r, b, rx, ry float64, dir Direction) []Instruction {
	// corners in clockwise order starting at the top-right, each given by the corner and the points where the arc meets the edges
	type corner struct{ in, c, out Point }
	corners := []corner{
		{Point{r - rx, t}, Point{r, t}, Point{r, t + ry}},
		{Point{r, b - ry}, Point{r, b}, Point{r - rx, b}},
		{Point{l + rx, b}, Point{l, b}, Point{l, b - ry}},
		{Point{l, t + ry}, Point{l, t}, Point{l + rx, t}},
	}
	if dir == CCW {
		for i, j := 0, len(corners)-1; i < j; i, j = i+1, j-1 {
			corners[i], corners[j] = corners[j], corners[i]
		}
		for i := range corners {
			corners[i].in, corners[i].out = corners[i].out, corners[i].in
		}
	}

	p := &Path{}
	start := Point{l + rx, t}
	p.MoveTo(start.X, start.Y)
	pos := start
	for _, c := range corners {
		if !pos.Equals(c.in) {
			p.LineTo(c.in.X, c.in.Y)
		}
		p.RationalTo(1.0, c.c.X, c.c.Y, arcWeight, c.out.X, c.out.Y, 1.0)
		pos = c.out
	}
	if !pos.Equals(start) {
		p.LineTo(start.X, start.Y)
	}
	p.Close()
	return p.ins
}

// Disassemble replaces all contour shortcuts by primitive instructions in-place.
func (p *Path) Disassemble() *Path {
	for i := range p.ins {
		if p.ins[i].Cmd.IsShortcut() {
			ins := make([]Instruction, 0, len(p.ins)+16)
			for _, sub := range p.ins {
				ins = append(ins, sub.Disassemble()...)
			}
			p.ins = ins
			break
		}
	}
	return p
}
