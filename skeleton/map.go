package skeleton

import (
	"fmt"
	"image"

	"github.com/KasperskyLab/CaptchaMixer-sub000"
)

// Map is a binary pixel grid that is thinned down to a skeleton. Neighbors outside the grid are represented by shared absent pixels.
type Map struct {
	w, h   int
	pix    []Pixel
	border map[image.Point]*Pixel
	dirty  []int
}

func newMap(w, h int) *Map {
	m := &Map{
		w:   w,
		h:   h,
		pix: make([]Pixel, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.pix[y*w+x] = Pixel{X: x, Y: y, state: Empty}
		}
	}
	return m
}

// NewMap creates a map from an alpha mask, where every pixel with an alpha value of at least threshold is set.
func NewMap(img *image.Alpha, threshold uint8) *Map {
	b := img.Bounds()
	m := newMap(b.Dx(), b.Dy())
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if threshold <= img.AlphaAt(b.Min.X+x, b.Min.Y+y).A {
				m.set(y*m.w + x)
			}
		}
	}
	return m
}

// NewMapFromBits creates a map of w by h pixels from row-major bits.
func NewMapFromBits(w, h int, bits []bool) (*Map, error) {
	if w < 0 || h < 0 || len(bits) != w*h {
		return nil, fmt.Errorf("%w: %d bits for a %dx%d map", captcha.ErrInvalidArgument, len(bits), w, h)
	}
	m := newMap(w, h)
	for i, bit := range bits {
		if bit {
			m.set(i)
		}
	}
	return m, nil
}

func (m *Map) set(i int) {
	m.pix[i].exists = true
	m.pix[i].state = Unknown
	m.markDirty(i)
}

// Size returns the width and height of the map.
func (m *Map) Size() (int, int) {
	return m.w, m.h
}

// At returns the pixel at (x,y). Coordinates outside the map return an absent pixel.
func (m *Map) At(x, y int) *Pixel {
	if 0 <= x && x < m.w && 0 <= y && y < m.h {
		return &m.pix[y*m.w+x]
	}
	pt := image.Point{x, y}
	if m.border == nil {
		m.border = map[image.Point]*Pixel{}
	}
	px, ok := m.border[pt]
	if !ok {
		px = &Pixel{X: x, Y: y, state: Empty}
		m.border[pt] = px
	}
	return px
}

// Neighbor returns the pixel next to p in direction d.
func (m *Map) Neighbor(p *Pixel, d Dir) *Pixel {
	off := d.Offset()
	return m.At(p.X+off.X, p.Y+off.Y)
}

func (m *Map) index(p *Pixel) (int, bool) {
	if 0 <= p.X && p.X < m.w && 0 <= p.Y && p.Y < m.h {
		return p.Y*m.w + p.X, true
	}
	return 0, false
}

// Bits returns the current pixels in row-major order.
func (m *Map) Bits() []bool {
	bits := make([]bool, len(m.pix))
	for i := range m.pix {
		bits[i] = m.pix[i].exists
	}
	return bits
}

// Count returns the number of set pixels.
func (m *Map) Count() int {
	n := 0
	for i := range m.pix {
		if m.pix[i].exists {
			n++
		}
	}
	return n
}

// String draws the map with # for set pixels and . for empty ones.
func (m *Map) String() string {
	b := make([]byte, 0, (m.w+1)*m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.pix[y*m.w+x].exists {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}

////////////////////////////////////////////////////////////////

func (m *Map) markDirty(i int) {
	if !m.pix[i].dirty {
		m.pix[i].dirty = true
		m.dirty = append(m.dirty, i)
	}
}

// evaluateDirty evaluates all pixels marked dirty, in the order they were marked.
func (m *Map) evaluateDirty() {
	dirty := m.dirty
	m.dirty = nil
	for _, i := range dirty {
		m.pix[i].dirty = false
		m.evaluate(&m.pix[i])
	}
}

// evaluate classifies a pixel from its eight neighbors. Terminal pixels are left alone.
func (m *Map) evaluate(p *Pixel) {
	if p.state.Terminal() {
		return
	}

	var present [8]bool
	missing := 0
	for d := Top; d <= TopLeft; d++ {
		present[d] = m.Neighbor(p, d).exists
		if !present[d] {
			missing++
		}
	}

	// a gap is a run of missing neighbors, counted where the run starts
	gaps := 0
	for d := Top; d <= TopLeft; d++ {
		if !present[d] && present[(d+7)%8] {
			gaps++
		}
	}
	p.gaps = gaps

	switch {
	case missing == 8:
		p.state, p.role = Final, Alone
	case gaps == 1 && 6 <= missing:
		p.state, p.role = Final, End
	case gaps == 1 && 2 <= missing:
		p.state, p.role = Removable, UnknownRole
	default:
		p.state = Unremovable
		if 2 < gaps {
			p.role = Node
		} else if gaps == 2 {
			p.role = Line
		} else {
			p.role = UnknownRole
		}
	}
}
