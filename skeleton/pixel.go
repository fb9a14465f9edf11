package skeleton

import "image"

// State is the thinning state of a pixel.
type State int

// Pixel states. Empty, Removed and Final are terminal.
const (
	Unknown State = iota
	Empty
	Unremovable
	Removable
	Removed
	Final
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Unremovable:
		return "Unremovable"
	case Removable:
		return "Removable"
	case Removed:
		return "Removed"
	case Final:
		return "Final"
	}
	return "Unknown"
}

// Terminal returns true for states that never change again.
func (s State) Terminal() bool {
	return s == Empty || s == Removed || s == Final
}

// Role is the topological role of a pixel within the skeleton.
type Role int

// Pixel roles.
const (
	UnknownRole Role = iota
	Alone            // no neighbors
	End              // terminates a stroke
	Line             // connects two strokes
	Node             // joins three or more strokes
)

func (r Role) String() string {
	switch r {
	case Alone:
		return "Alone"
	case End:
		return "End"
	case Line:
		return "Line"
	case Node:
		return "Node"
	}
	return "Unknown"
}

// Dir is one of the eight neighbor directions, in clockwise ring order with the Y axis pointing down.
type Dir int

// Neighbor directions in ring order.
const (
	Top Dir = iota
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	TopLeft
)

// NoDir is used where no direction applies, such as the arrival direction at the start of a walk.
const NoDir Dir = -1

var dirOffsets = [8]image.Point{
	Top:         {0, -1},
	TopRight:    {1, -1},
	Right:       {1, 0},
	BottomRight: {1, 1},
	Bottom:      {0, 1},
	BottomLeft:  {-1, 1},
	Left:        {-1, 0},
	TopLeft:     {-1, -1},
}

// tracePriority lists the directions tried when walking the skeleton, cardinal before diagonal.
var tracePriority = [8]Dir{Top, Right, Bottom, Left, TopRight, BottomRight, BottomLeft, TopLeft}

// Offset returns the coordinate offset of the direction.
func (d Dir) Offset() image.Point {
	return dirOffsets[d]
}

// Opposite returns the direction pointing the other way.
func (d Dir) Opposite() Dir {
	return (d + 4) % 8
}

// Cardinal returns true for Top, Right, Bottom and Left.
func (d Dir) Cardinal() bool {
	return d%2 == 0
}

// dirBetween returns the direction of the step from a to b, which must be neighbors.
func dirBetween(a, b image.Point) (Dir, bool) {
	delta := b.Sub(a)
	for d, off := range dirOffsets {
		if delta == off {
			return Dir(d), true
		}
	}
	return NoDir, false
}

////////////////////////////////////////////////////////////////

// Pixel is a cell of the skeleton map.
type Pixel struct {
	X, Y   int
	exists bool
	state  State
	role   Role
	gaps   int
	dirty  bool
}

// Point returns the pixel coordinate.
func (p *Pixel) Point() image.Point {
	return image.Point{p.X, p.Y}
}

// Exists returns true if the pixel is set and not removed.
func (p *Pixel) Exists() bool {
	return p.exists
}

// State returns the thinning state.
func (p *Pixel) State() State {
	return p.state
}

// Role returns the topological role, which is known after evaluation.
func (p *Pixel) Role() Role {
	return p.role
}

// Gaps returns the number of runs of missing neighbors around the pixel.
func (p *Pixel) Gaps() int {
	return p.gaps
}
