package captcha

import (
	"iter"
	"math"
)

// PathCmd is the kind of a path instruction. It fixes the number of points an instruction owns and which of them are control points.
type PathCmd int

// Path instruction kinds. RectCmd, RoundRectCmd and OvalCmd are contour shortcuts: they draw a closed contour of their own.
const (
	MoveToCmd PathCmd = iota
	LineToCmd
	QuadToCmd
	CubeToCmd
	RationalToCmd
	CloseCmd
	RectCmd
	RoundRectCmd
	OvalCmd
)

var cmdNames = [...]string{
	MoveToCmd:     "MoveTo",
	LineToCmd:     "LineTo",
	QuadToCmd:     "QuadTo",
	CubeToCmd:     "CubeTo",
	RationalToCmd: "RationalTo",
	CloseCmd:      "Close",
	RectCmd:       "Rect",
	RoundRectCmd:  "RoundRect",
	OvalCmd:       "Oval",
}

// cmdControls lists per kind for each owned point whether it is a control point (true) or lies on the curve (false).
var cmdControls = [...][]bool{
	MoveToCmd:     {false},
	LineToCmd:     {false},
	QuadToCmd:     {true, false},
	CubeToCmd:     {true, true, false},
	RationalToCmd: {true, false},
	CloseCmd:      {},
	RectCmd:       {false, false},
	RoundRectCmd:  {false, false},
	OvalCmd:       {false, false},
}

func (cmd PathCmd) String() string {
	if cmd < 0 || int(cmd) >= len(cmdNames) {
		return "PathCmd(?)"
	}
	return cmdNames[cmd]
}

// NumPoints returns the number of points owned by an instruction of this kind.
func (cmd PathCmd) NumPoints() int {
	return len(cmdControls[cmd])
}

// IsControl returns true if the i-th point of this kind is a control point.
func (cmd PathCmd) IsControl(i int) bool {
	return cmdControls[cmd][i]
}

// IsShortcut returns true for the rectangle, rounded rectangle and oval kinds.
func (cmd PathCmd) IsShortcut() bool {
	return cmd == RectCmd || cmd == RoundRectCmd || cmd == OvalCmd
}

// Draws returns true if the instruction leaves a visible trace, ie. for lines, curves and contour shortcuts.
func (cmd PathCmd) Draws() bool {
	return cmd != MoveToCmd && cmd != CloseCmd
}

// Direction is the winding direction of a contour shortcut, in a coordinate system with the Y axis pointing down.
type Direction int

// Winding directions.
const (
	CW Direction = iota
	CCW
)

////////////////////////////////////////////////////////////////

// Instruction is a single path instruction. It owns only its own points, the start point is implied by the pen position it is drawn from.
//
// The points in P per kind are:
//   - MoveToCmd, LineToCmd: end
//   - QuadToCmd: control, end
//   - CubeToCmd: control1, control2, end
//   - RationalToCmd: control, end; with W holding the start, control and end weight
//   - RectCmd, RoundRectCmd, OvalCmd: left-top, right-bottom; with Dir the winding and RX, RY the corner radii of RoundRectCmd
type Instruction struct {
	Cmd    PathCmd
	P      [3]Point
	W      [3]float64
	RX, RY float64
	Dir    Direction
}

// Points returns the points owned by the instruction. Modifying them modifies the instruction.
func (ins *Instruction) Points() []Point {
	return ins.P[:ins.Cmd.NumPoints()]
}

// End returns the last owned point. It is undefined for CloseCmd, use Pen.Advance instead.
func (ins Instruction) End() Point {
	if n := ins.Cmd.NumPoints(); 0 < n {
		return ins.P[n-1]
	}
	return Point{}
}

// Curve returns the Bézier curve of a quadratic or cubic instruction drawn from pen position start.
func (ins Instruction) Curve(start Point) Curve {
	switch ins.Cmd {
	case QuadToCmd:
		return Curve{start, ins.P[0], ins.P[1]}
	case CubeToCmd:
		return Curve{start, ins.P[0], ins.P[1], ins.P[2]}
	}
	return nil
}

// RationalCurve returns the rational Bézier curve of a rational instruction drawn from pen position start.
func (ins Instruction) RationalCurve(start Point) RationalCurve {
	if ins.Cmd != RationalToCmd {
		return nil
	}
	return RationalCurve{
		{start.X, start.Y, ins.W[0]},
		{ins.P[0].X, ins.P[0].Y, ins.W[1]},
		{ins.P[1].X, ins.P[1].Y, ins.W[2]},
	}
}

// Bounds returns the bounding box of the instruction drawn from pen position start. Curves are approximated by sampling.
func (ins Instruction) Bounds(start Point) Rect {
	switch ins.Cmd {
	case MoveToCmd:
		return RectFromPoints(ins.P[0])
	case LineToCmd:
		return RectFromPoints(start, ins.P[0])
	case QuadToCmd, CubeToCmd:
		return ins.Curve(start).Bounds()
	case RationalToCmd:
		return ins.RationalCurve(start).Bounds()
	case RectCmd, RoundRectCmd, OvalCmd:
		return RectFromPoints(ins.P[0], ins.P[1])
	}
	return RectFromPoints(start)
}

// Copy returns a deep copy of the instruction.
func (ins Instruction) Copy() Instruction {
	return ins
}

// Equals returns true if both instructions are of the same kind and their points and parameters are equal with tolerance Epsilon.
func (ins Instruction) Equals(q Instruction) bool {
	if ins.Cmd != q.Cmd {
		return false
	}
	for i := 0; i < ins.Cmd.NumPoints(); i++ {
		if !ins.P[i].Equals(q.P[i]) {
			return false
		}
	}
	switch ins.Cmd {
	case RationalToCmd:
		return Equal(ins.W[0], q.W[0]) && Equal(ins.W[1], q.W[1]) && Equal(ins.W[2], q.W[2])
	case RoundRectCmd:
		return ins.Dir == q.Dir && Equal(ins.RX, q.RX) && Equal(ins.RY, q.RY)
	case RectCmd, OvalCmd:
		return ins.Dir == q.Dir
	}
	return true
}

////////////////////////////////////////////////////////////////

// Pen is the implicit drawing state before an instruction: the current position and the start of the active contour, which CloseCmd returns to.
type Pen struct {
	Pos   Point
	Start Point
}

// Advance returns the pen state after drawing ins.
func (pen Pen) Advance(ins Instruction) Pen {
	switch ins.Cmd {
	case MoveToCmd:
		return Pen{ins.P[0], ins.P[0]}
	case CloseCmd:
		return Pen{pen.Start, pen.Start}
	case RectCmd, RoundRectCmd, OvalCmd:
		start := ins.shortcutStart()
		return Pen{start, start}
	}
	return Pen{ins.End(), pen.Start}
}

////////////////////////////////////////////////////////////////

// Path is an ordered list of path instructions. The pen position before an instruction is the end of the previous instruction, the origin for the first, or the contour start after a close.
type Path struct {
	ins []Instruction
}

// NewPath returns a path of copies of the given instructions.
func NewPath(ins ...Instruction) *Path {
	return &Path{append([]Instruction(nil), ins...)}
}

// Empty returns true if the path draws nothing.
func (p *Path) Empty() bool {
	for _, ins := range p.ins {
		if ins.Cmd.Draws() {
			return false
		}
	}
	return true
}

// Len returns the number of instructions.
func (p *Path) Len() int {
	return len(p.ins)
}

// Instructions returns the instructions of the path. Modifying them modifies the path.
func (p *Path) Instructions() []Instruction {
	return p.ins
}

// Copy returns a deep copy of the path.
func (p *Path) Copy() *Path {
	return &Path{append([]Instruction(nil), p.ins...)}
}

// Equals returns true if both paths have equal instructions with tolerance Epsilon.
func (p *Path) Equals(q *Path) bool {
	if len(p.ins) != len(q.ins) {
		return false
	}
	for i := range p.ins {
		if !p.ins[i].Equals(q.ins[i]) {
			return false
		}
	}
	return true
}

// Append appends the instructions of path q to path p and returns path p.
func (p *Path) Append(q *Path) *Path {
	if q != nil {
		p.ins = append(p.ins, q.ins...)
	}
	return p
}

// Segments iterates over the instructions together with the pen state they are drawn from. The pen of the next instruction is derived after the yield returns, so modifications of the yielded instruction are taken into account.
func (p *Path) Segments() iter.Seq2[Pen, *Instruction] {
	return func(yield func(Pen, *Instruction) bool) {
		pen := Pen{}
		for i := range p.ins {
			if !yield(pen, &p.ins[i]) {
				return
			}
			pen = pen.Advance(p.ins[i])
		}
	}
}

// Pen returns the pen state after the last instruction.
func (p *Path) Pen() Pen {
	pen := Pen{}
	for _, ins := range p.ins {
		pen = pen.Advance(ins)
	}
	return pen
}

// Pos returns the current pen position.
func (p *Path) Pos() Point {
	return p.Pen().Pos
}

// Closed returns true if the last contour of the path is closed.
func (p *Path) Closed() bool {
	return 0 < len(p.ins) && (p.ins[len(p.ins)-1].Cmd == CloseCmd || p.ins[len(p.ins)-1].Cmd.IsShortcut())
}

// Coords returns the on-curve points of the path: the start of every contour and the end of every line and curve.
func (p *Path) Coords() []Point {
	var coords []Point
	for pen, ins := range p.Segments() {
		switch ins.Cmd {
		case MoveToCmd:
			coords = append(coords, ins.P[0])
		case LineToCmd, QuadToCmd, CubeToCmd, RationalToCmd:
			if len(coords) == 0 {
				coords = append(coords, pen.Pos)
			}
			coords = append(coords, ins.End())
		case RectCmd, RoundRectCmd, OvalCmd:
			for _, sub := range ins.Disassemble() {
				if sub.Cmd != CloseCmd {
					coords = append(coords, sub.End())
				}
			}
		}
	}
	return coords
}

// Bounds returns the bounding box of the path.
func (p *Path) Bounds() Rect {
	var r Rect
	first := true
	for pen, ins := range p.Segments() {
		b := ins.Bounds(pen.Pos)
		if first {
			r, first = b, false
		} else {
			r = r.Add(b)
		}
	}
	return r
}

////////////////////////////////////////////////////////////////

// MoveTo starts a new contour at (x,y).
func (p *Path) MoveTo(x, y float64) {
	p.ins = append(p.ins, Instruction{Cmd: MoveToCmd, P: [3]Point{{x, y}}})
}

// LineTo adds a straight line to (x,y).
func (p *Path) LineTo(x, y float64) {
	p.ins = append(p.ins, Instruction{Cmd: LineToCmd, P: [3]Point{{x, y}}})
}

// QuadTo adds a quadratic Bézier curve with control point (cpx,cpy) and end point (x,y).
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	p.ins = append(p.ins, Instruction{Cmd: QuadToCmd, P: [3]Point{{cpx, cpy}, {x, y}}})
}

// CubeTo adds a cubic Bézier curve with control points (cpx1,cpy1) and (cpx2,cpy2) and end point (x,y).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	p.ins = append(p.ins, Instruction{Cmd: CubeToCmd, P: [3]Point{{cpx1, cpy1}, {cpx2, cpy2}, {x, y}}})
}

// RationalTo adds a rational quadratic Bézier curve with weight w0 at the pen position, control point (cpx,cpy) with weight w1 and end point (x,y) with weight w2.
func (p *Path) RationalTo(w0, cpx, cpy, w1, x, y, w2 float64) {
	p.ins = append(p.ins, Instruction{Cmd: RationalToCmd, P: [3]Point{{cpx, cpy}, {x, y}}, W: [3]float64{w0, w1, w2}})
}

// Close closes the contour by returning to its start.
func (p *Path) Close() {
	p.ins = append(p.ins, Instruction{Cmd: CloseCmd})
}

// Rect adds a rectangle from the left-top corner (x0,y0) to the right-bottom corner (x1,y1) as a contour of its own.
func (p *Path) Rect(x0, y0, x1, y1 float64, dir Direction) {
	p.ins = append(p.ins, newShortcut(RectCmd, x0, y0, x1, y1, dir))
}

// RoundRect adds a rectangle with elliptic corners of radii rx and ry as a contour of its own.
func (p *Path) RoundRect(x0, y0, x1, y1, rx, ry float64, dir Direction) {
	ins := newShortcut(RoundRectCmd, x0, y0, x1, y1, dir)
	ins.RX, ins.RY = math.Abs(rx), math.Abs(ry)
	p.ins = append(p.ins, ins)
}

// Oval adds an ellipse inscribed in the rectangle from (x0,y0) to (x1,y1) as a contour of its own.
func (p *Path) Oval(x0, y0, x1, y1 float64, dir Direction) {
	p.ins = append(p.ins, newShortcut(OvalCmd, x0, y0, x1, y1, dir))
}

func newShortcut(cmd PathCmd, x0, y0, x1, y1 float64, dir Direction) Instruction {
	return Instruction{
		Cmd: cmd,
		P:   [3]Point{{math.Min(x0, x1), math.Min(y0, y1)}, {math.Max(x0, x1), math.Max(y0, y1)}},
		Dir: dir,
	}
}

////////////////////////////////////////////////////////////////

// Transform transforms the path by the given transformation matrix in-place. Contour shortcuts are disassembled first when the transformation rotates or shears.
func (p *Path) Transform(m Matrix) *Path {
	if m[0][1] != 0.0 || m[1][0] != 0.0 {
		p.Disassemble()
	}
	for i := range p.ins {
		ins := &p.ins[i]
		for j := 0; j < ins.Cmd.NumPoints(); j++ {
			ins.P[j] = m.Dot(ins.P[j])
		}
		if ins.Cmd.IsShortcut() {
			*ins = ins.normalize(m)
		}
	}
	return p
}

// normalize restores the left-top and right-bottom corners of a contour shortcut after an axis-aligned transformation.
func (ins Instruction) normalize(m Matrix) Instruction {
	q := newShortcut(ins.Cmd, ins.P[0].X, ins.P[0].Y, ins.P[1].X, ins.P[1].Y, ins.Dir)
	q.RX = ins.RX * math.Abs(m[0][0])
	q.RY = ins.RY * math.Abs(m[1][1])
	if m.Det() < 0.0 {
		q.Dir = 1 - ins.Dir
	}
	return q
}

// Translate translates the path by (x,y) in-place.
func (p *Path) Translate(x, y float64) *Path {
	return p.Transform(Identity.Translate(x, y))
}

// Scale scales the path by (x,y) around the origin in-place.
func (p *Path) Scale(x, y float64) *Path {
	return p.Transform(Identity.Scale(x, y))
}
