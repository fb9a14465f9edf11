package skeleton

import (
	"errors"
	"fmt"
	"image"

	"github.com/KasperskyLab/CaptchaMixer-sub000"
)

// ErrTopology is returned when consecutive pixels of a traced sequence are not neighbors.
var ErrTopology = errors.New("skeleton: pixel sequence is not connected")

type edge struct{ a, b int }

func newEdge(a, b int) edge {
	if b < a {
		a, b = b, a
	}
	return edge{a, b}
}

// tracer walks the pixels of a thinned map into sequences. End and node pixels terminate walks; every other pixel is consumed by exactly one walk.
type tracer struct {
	m     *Map
	uses  []int
	edges map[edge]bool
	seqs  []sequence
}

type sequence struct {
	pixels []image.Point
	closed bool
}

func newTracer(m *Map) *tracer {
	t := &tracer{
		m:     m,
		uses:  make([]int, len(m.pix)),
		edges: map[edge]bool{},
	}
	for i := range m.pix {
		p := &m.pix[i]
		if !p.exists {
			continue
		} else if p.role == Node {
			t.uses[i] = p.gaps
		} else {
			t.uses[i] = 1
		}
	}
	return t
}

func (t *tracer) terminal(i int) bool {
	role := t.m.pix[i].role
	return role == End || role == Node
}

// next returns the neighbor to step to from pixel i, trying cardinal directions first. It never steps back in the direction it arrived from, never crosses an edge twice, and only enters consumed pixels when they terminate walks.
func (t *tracer) next(i int, arrived Dir) (int, Dir, bool) {
	p := &t.m.pix[i]
	for _, d := range tracePriority {
		if arrived != NoDir && d == arrived.Opposite() {
			continue
		}
		j, ok := t.m.index(t.m.Neighbor(p, d))
		if !ok || !t.m.pix[j].exists || t.edges[newEdge(i, j)] {
			continue
		}
		if 0 < t.uses[j] || t.terminal(j) {
			return j, d, true
		}
	}
	return 0, NoDir, false
}

func (t *tracer) step(i, j int) {
	t.edges[newEdge(i, j)] = true
	if 0 < t.uses[j] {
		t.uses[j]--
	}
}

// walk follows the skeleton from pixel i until it reaches an end or node pixel or gets stuck.
func (t *tracer) walk(i int, arrived Dir) []int {
	seq := []int{i}
	for {
		j, d, ok := t.next(i, arrived)
		if !ok {
			break
		}
		t.step(i, j)
		seq = append(seq, j)
		if t.terminal(j) {
			break
		}
		i, arrived = j, d
	}
	return seq
}

// walkRing walks a loop without end or node pixels from pixel i. Unused pixels are preferred over closing back to the start. A walk that gets stuck is extended backwards from the start to recover the whole chain.
func (t *tracer) walkRing(i int) ([]int, bool) {
	start := i
	t.uses[start]--
	seq := []int{start}
	arrived := NoDir
	for {
		j, d, ok := t.next(i, arrived)
		if ok {
			t.step(i, j)
			seq = append(seq, j)
			if t.terminal(j) {
				break
			}
			i, arrived = j, d
			continue
		}

		// close the loop when the start is adjacent
		if 3 <= len(seq) {
			if _, adjacent := dirBetween(t.m.pix[i].Point(), t.m.pix[start].Point()); adjacent && !t.edges[newEdge(i, start)] {
				t.edges[newEdge(i, start)] = true
				return append(seq, start), true
			}
		}
		break
	}

	if 1 < len(seq) {
		first, _ := dirBetween(t.m.pix[seq[0]].Point(), t.m.pix[seq[1]].Point())
		back := t.walk(start, first.Opposite())
		if 1 < len(back) {
			rev := make([]int, 0, len(back)+len(seq)-1)
			for k := len(back) - 1; 0 < k; k-- {
				rev = append(rev, back[k])
			}
			seq = append(rev, seq...)
		}
	} else {
		seq = t.walk(start, NoDir)
	}
	return seq, false
}

func (t *tracer) add(is []int, closed bool) {
	ps := make([]image.Point, len(is))
	for k, i := range is {
		ps[k] = t.m.pix[i].Point()
	}
	t.seqs = append(t.seqs, sequence{ps, closed})
}

// trace collects all pixel sequences: lone pixels first, then walks from end pixels, then from node pixels, and finally the remaining loops.
func (t *tracer) trace() {
	for i := range t.m.pix {
		if t.m.pix[i].exists && t.m.pix[i].role == Alone {
			t.uses[i] = 0
			t.add([]int{i}, false)
		}
	}
	for i := range t.m.pix {
		if t.m.pix[i].exists && t.m.pix[i].role == End && 0 < t.uses[i] {
			t.uses[i]--
			t.add(t.walk(i, NoDir), false)
		}
	}
	for i := range t.m.pix {
		if !t.m.pix[i].exists || t.m.pix[i].role != Node {
			continue
		}
		for 0 < t.uses[i] {
			t.uses[i]--
			seq := t.walk(i, NoDir)
			if len(seq) == 1 {
				break
			}
			t.add(seq, false)
		}
	}
	for i := range t.m.pix {
		if t.m.pix[i].exists && 0 < t.uses[i] {
			seq, closed := t.walkRing(i)
			t.add(seq, closed)
		}
	}
}

////////////////////////////////////////////////////////////////

type run struct {
	dir        Dir
	start, end int // pixel indices into the sequence
}

// sequencePoints reduces a pixel sequence to the points of a polyline. Every straight run of pixels collapses to its midpoint, unless the next run is longer than a single step, in which case the exact corner pixel is kept. The first and last pixels are always kept, and points exactly on the line between their neighbors are dropped.
func sequencePoints(pixels []image.Point) ([]captcha.Point, error) {
	if len(pixels) == 0 {
		return nil, nil
	} else if len(pixels) == 1 {
		return []captcha.Point{pixelCenter(pixels[0])}, nil
	}

	var runs []run
	for k := 0; k+1 < len(pixels); k++ {
		d, ok := dirBetween(pixels[k], pixels[k+1])
		if !ok {
			return nil, fmt.Errorf("%w: %v to %v", ErrTopology, pixels[k], pixels[k+1])
		}
		if 0 < len(runs) && runs[len(runs)-1].dir == d {
			runs[len(runs)-1].end = k + 1
		} else {
			runs = append(runs, run{d, k, k + 1})
		}
	}

	ps := []captcha.Point{pixelCenter(pixels[0])}
	for r := 0; r+1 < len(runs); r++ {
		if 2 <= runs[r+1].end-runs[r+1].start {
			ps = append(ps, pixelCenter(pixels[runs[r].end]))
		} else {
			ps = append(ps, captcha.Midpoint(pixelCenter(pixels[runs[r].start]), pixelCenter(pixels[runs[r].end])))
		}
	}
	ps = append(ps, pixelCenter(pixels[len(pixels)-1]))
	return dropCollinear(ps), nil
}

// dropCollinear removes every point whose distance sum to its neighbors equals the distance between those neighbors.
func dropCollinear(ps []captcha.Point) []captcha.Point {
	out := make([]captcha.Point, 0, len(ps))
	for _, p := range ps {
		for 2 <= len(out) {
			a, b := out[len(out)-2], out[len(out)-1]
			if captcha.Distance(a, b)+captcha.Distance(b, p) != captcha.Distance(a, p) {
				break
			}
			out = out[:len(out)-1]
		}
		out = append(out, p)
	}
	return out
}

func pixelCenter(p image.Point) captcha.Point {
	return captcha.Point{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}

// sequencePath converts pixel sequences into a path with one contour per sequence. A single pixel becomes a line of zero length.
func sequencePath(seqs []sequence) (*captcha.Path, error) {
	p := &captcha.Path{}
	for _, seq := range seqs {
		pixels := seq.pixels
		if seq.closed && 1 < len(pixels) {
			pixels = pixels[:len(pixels)-1]
		}
		ps, err := sequencePoints(pixels)
		if err != nil {
			return nil, err
		} else if len(ps) == 0 {
			continue
		}

		p.MoveTo(ps[0].X, ps[0].Y)
		if len(ps) == 1 {
			p.LineTo(ps[0].X, ps[0].Y)
			continue
		}
		for _, q := range ps[1:] {
			p.LineTo(q.X, q.Y)
		}
		if seq.closed {
			p.Close()
		}
	}
	return p, nil
}

// Trace thins the map and traces the skeleton into a path in pixel coordinates, where every pixel is represented by its center. A non-positive maxSweeps derives the thinning limit from the map size.
func (m *Map) Trace(maxSweeps int) (*captcha.Path, error) {
	sweeps, converged := m.Thin(maxSweeps)
	t := newTracer(m)
	t.trace()
	captcha.Logger().Debug("skeleton traced", "sweeps", sweeps, "converged", converged, "sequences", len(t.seqs))
	return sequencePath(t.seqs)
}
