package skeleton

import (
	"github.com/KasperskyLab/CaptchaMixer-sub000"
)

// sweepDirs is the order in which the sides of the shape are peeled.
var sweepDirs = [4]Dir{Top, Bottom, Left, Right}

// defaultMaxSweeps returns the sweep limit for a map, which is never reached by a shape that still shrinks.
func (m *Map) defaultMaxSweeps() int {
	return m.w + m.h + 1
}

// Thin repeatedly peels removable pixels off every side of the shape until a whole sweep removes nothing. It returns the number of sweeps done and whether the map converged within maxSweeps. A non-positive maxSweeps derives the limit from the map size. When the limit is hit the map is left as is and a warning is logged.
func (m *Map) Thin(maxSweeps int) (int, bool) {
	if maxSweeps <= 0 {
		maxSweeps = m.defaultMaxSweeps()
	}

	m.evaluateDirty()
	sweeps := 0
	for sweeps < maxSweeps {
		removed := 0
		for _, d := range sweepDirs {
			removed += m.peel(d)
		}
		sweeps++
		captcha.Logger().Debug("skeleton thinning sweep", "sweep", sweeps, "removed", removed)
		if removed == 0 {
			return sweeps, true
		}
	}
	captcha.Logger().Warn("skeleton thinning did not converge", "sweeps", sweeps, "pixels", m.Count())
	return sweeps, false
}

// peel removes at once every removable pixel that has no neighbor in direction d, and re-evaluates the pixels around them afterwards.
func (m *Map) peel(d Dir) int {
	var candidates []int
	for i := range m.pix {
		p := &m.pix[i]
		if p.state == Removable && !m.Neighbor(p, d).exists {
			candidates = append(candidates, i)
		}
	}
	for _, i := range candidates {
		p := &m.pix[i]
		p.exists = false
		p.state = Removed
		for nd := Top; nd <= TopLeft; nd++ {
			if j, ok := m.index(m.Neighbor(p, nd)); ok && m.pix[j].exists {
				m.markDirty(j)
			}
		}
	}
	m.evaluateDirty()
	return len(candidates)
}
