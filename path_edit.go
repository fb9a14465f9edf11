package captcha

// Contours splits the path into its contours. A contour starts at a move, at a contour shortcut, or at the first drawing instruction when no move preceded it, and ends at a close. Every returned contour starts with a move, except for contour shortcuts which are returned on their own. Contours that draw nothing are dropped.
func (p *Path) Contours() []*Path {
	var cs []*Path
	var cur *Path
	flush := func() {
		if cur != nil && !cur.Empty() {
			cs = append(cs, cur)
		}
		cur = nil
	}
	for pen, ins := range p.Segments() {
		switch {
		case ins.Cmd == MoveToCmd:
			flush()
			cur = &Path{}
			cur.MoveTo(ins.P[0].X, ins.P[0].Y)
		case ins.Cmd == CloseCmd:
			if cur != nil {
				cur.Close()
			}
			flush()
		case ins.Cmd.IsShortcut():
			flush()
			cs = append(cs, NewPath(*ins))
		default:
			if cur == nil {
				cur = &Path{}
				cur.MoveTo(pen.Pos.X, pen.Pos.Y)
			}
			cur.ins = append(cur.ins, *ins)
		}
	}
	flush()
	return cs
}

// Granulate subdivides all lines and curves in-place so that no straight line is longer than maxLength and no curve has a chord longer than maxLength. Contour shortcuts are disassembled first, and long closing edges receive intermediate lines.
func (p *Path) Granulate(maxLength float64) error {
	if err := validateMaxChord(maxLength); err != nil {
		return err
	}

	p.Disassemble()
	ins := make([]Instruction, 0, len(p.ins))
	for pen, in := range p.Segments() {
		switch in.Cmd {
		case LineToCmd:
			ps := granulateLine(pen.Pos, in.P[0], maxLength)
			for _, q := range ps[1:] {
				ins = append(ins, Instruction{Cmd: LineToCmd, P: [3]Point{q}})
			}
		case QuadToCmd, CubeToCmd:
			for _, c := range granulate(in.Curve(pen.Pos), maxLength) {
				sub := Instruction{Cmd: in.Cmd}
				copy(sub.P[:], c[1:])
				ins = append(ins, sub)
			}
		case RationalToCmd:
			for _, c := range granulate(in.RationalCurve(pen.Pos), maxLength) {
				ins = append(ins, Instruction{
					Cmd: RationalToCmd,
					P:   [3]Point{c[1].Point(), c[2].Point()},
					W:   [3]float64{c[0].W, c[1].W, c[2].W},
				})
			}
		case CloseCmd:
			ps := granulateLine(pen.Pos, pen.Start, maxLength)
			for _, q := range ps[1 : len(ps)-1] {
				ins = append(ins, Instruction{Cmd: LineToCmd, P: [3]Point{q}})
			}
			ins = append(ins, *in)
		default:
			ins = append(ins, *in)
		}
	}
	p.ins = ins
	return nil
}

// pull moves P towards the beacon by ratio of their distance, but only when the distance is at most maxDistance.
func pull(p, beacon Point, ratio, maxDistance float64) Point {
	if Distance(p, beacon) <= maxDistance {
		return p.Add(beacon.Sub(p).Mul(ratio))
	}
	return p
}

// Straighten removes shakiness from the path in-place. The control point of quadratic and rational curves is pulled towards the middle of the chord, the control points of cubic curves are pulled towards their nearest end point, and the joint between two consecutive straight segments is pulled towards the middle of their outer end points. Points move by ratio of the distance to their target, and only when that distance is at most maxDistance. A ratio of 1 straightens fully, a negative ratio exaggerates the bends, and a ratio above 1 overshoots.
func (p *Path) Straighten(ratio, maxDistance float64) {
	for pen, ins := range p.Segments() {
		switch ins.Cmd {
		case QuadToCmd, RationalToCmd:
			ins.P[0] = pull(ins.P[0], Midpoint(pen.Pos, ins.P[1]), ratio, maxDistance)
		case CubeToCmd:
			start, end := pen.Pos, ins.P[2]
			for i := 0; i < 2; i++ {
				beacon := start
				if d0, d1 := Distance(ins.P[i], start), Distance(ins.P[i], end); d1 < d0 || d0 == d1 && i == 1 {
					beacon = end
				}
				ins.P[i] = pull(ins.P[i], beacon, ratio, maxDistance)
			}
		}
	}

	// joints are moved one after the other, so a joint sees the already moved joint before it
	pen := Pen{}
	for i := range p.ins {
		ins := &p.ins[i]
		if ins.Cmd == LineToCmd && i+1 < len(p.ins) {
			switch next := p.ins[i+1]; next.Cmd {
			case LineToCmd:
				ins.P[0] = pull(ins.P[0], Midpoint(pen.Pos, next.P[0]), ratio, maxDistance)
			case CloseCmd:
				ins.P[0] = pull(ins.P[0], Midpoint(pen.Pos, pen.Start), ratio, maxDistance)
			}
		}
		pen = pen.Advance(*ins)
	}
}

// Primitivize replaces every contour in-place by a polyline through its on-curve points, where control points are dropped and curves become straight lines. Consecutive points are merged into a single line as long as all points in between are within baseLineDistance of that line.
func (p *Path) Primitivize(baseLineDistance float64) {
	q := &Path{}
	for _, c := range p.Contours() {
		c.Disassemble()
		closed := c.Closed()
		ps := c.Coords()
		if closed && 2 < len(ps) && ps[0].Equals(ps[len(ps)-1]) {
			ps = ps[:len(ps)-1]
		}

		q.MoveTo(ps[0].X, ps[0].Y)
		a := 0
		for b := 2; b < len(ps); b++ {
			for k := a + 1; k < b; k++ {
				if baseLineDistance < distanceToLine(ps[k], ps[a], ps[b]) {
					q.LineTo(ps[b-1].X, ps[b-1].Y)
					a = b - 1
					break
				}
			}
		}
		if 1 < len(ps) {
			q.LineTo(ps[len(ps)-1].X, ps[len(ps)-1].Y)
		}
		if closed {
			q.Close()
		}
	}
	p.ins = q.ins
}
