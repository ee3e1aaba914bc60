package segscroll

import "math"

// findScrollableTarget decides which section may receive the gesture next
// when moving in dir, and stores it as the target.
//
// A target whose inner level owns the gesture keeps it until control comes
// back to the root. Otherwise the drag continues from the current target
// until the root leaves it behind, then from the touch section while it is
// on screen. When that section's inner levels are already pinned at the edge
// in the direction of travel, the adjacent section is adopted if it is not
// yet fully revealed on that side and has room to absorb the motion. Each adopted section becomes
// the base of the next probe, so a single drag walks the sections in order
// and the root never runs past an alignment point whose page still has room.
// With nothing on screen to continue from, the last visible section (first
// when moving backward) is used, so inertial scrolling keeps routing.
func (c *Coordinator) findScrollableTarget(dir int) int {
	c.refreshVisible()
	ax := c.lock.axis
	if !c.lock.set {
		ax = c.axis
	}

	t := -1
	switch {
	case c.target >= 0 && c.target < len(c.sections) && c.perms.Owner() != LevelRoot && c.hasInner(c.target, ax):
		t = c.target
	case c.inPlay(c.target, ax, dir):
		t = c.lookahead(c.target, ax, dir)
	case c.touch.active && c.inPlay(c.touch.section, ax, 0):
		t = c.lookahead(c.touch.section, ax, dir)
	case len(c.visible) > 0 && dir != 0:
		cand := c.visible[len(c.visible)-1]
		if dir < 0 {
			cand = c.visible[0]
		}
		if c.hasInner(cand, ax) {
			t = cand
		}
	}

	if t != c.target {
		old := c.target
		c.setTarget(t)
		if old >= 0 && c.perms.Owner() != LevelRoot {
			c.grant(Grant(derive(c.settledChain(t, ax), dir, c.eps)), "retarget")
		}
	}
	return t
}

// lookahead returns the section to continue the drag with, starting from
// section i: i itself, or its neighbour in dir when i is pinned and the
// neighbour can take over.
func (c *Coordinator) lookahead(i int, ax Axis, dir int) int {
	if dir == 0 || ax != c.axis || !c.innerPinned(i, ax, dir) {
		return i
	}
	if n := i + dir; n >= 0 && n < len(c.sections) && c.canAbsorb(n, ax, dir) {
		return n
	}
	return i
}

// inPlay reports whether section i exists, has a level scrolling along ax
// and has not been left behind: along the root axis it must intersect the
// root span as it was before the event in flight, or lie ahead of it in dir.
func (c *Coordinator) inPlay(i int, ax Axis, dir int) bool {
	if i < 0 || i >= len(c.sections) || !c.hasInner(i, ax) {
		return false
	}
	lo, hi := c.settledSpan()
	sec := c.sections[i]
	if ax == c.axis {
		switch {
		case dir > 0:
			return sec.End() > lo
		case dir < 0:
			return sec.Start() < hi
		}
	}
	return sec.Start() < hi && sec.End() > lo
}

// canAbsorb reports whether section i can take over motion in dir: its far
// side along dir is not fully visible yet and an inner level has room.
func (c *Coordinator) canAbsorb(i int, ax Axis, dir int) bool {
	lo, hi := c.settledSpan()
	sec := c.sections[i]
	if dir > 0 && sec.End() <= hi+c.eps {
		return false
	}
	if dir < 0 && sec.Start() >= lo-c.eps {
		return false
	}
	return !c.innerPinned(i, ax, dir)
}

// hasInner reports whether section i has a level scrolling along ax.
func (c *Coordinator) hasInner(i int, ax Axis) bool {
	return len(c.innerChain(i, ax)) > 0
}

// innerPinned reports whether no inner level of section i can move in dir.
func (c *Coordinator) innerPinned(i int, ax Axis, dir int) bool {
	inner := c.innerChain(i, ax)
	return innermostWithRoom(inner, 0, dir, c.eps) < 0
}

func (c *Coordinator) innerChain(i int, ax Axis) []link {
	ch := c.settledChain(i, ax)
	if len(ch) > 0 && ch[0].level == LevelRoot {
		ch = ch[1:]
	}
	return ch
}

// chainFor snapshots the levels of section t scrolling along ax, outermost
// first, using current offsets.
func (c *Coordinator) chainFor(t int, ax Axis) []link {
	ch := make([]link, 0, 3)
	if c.root.Axis() == ax {
		ch = append(ch, link{
			level:  LevelRoot,
			offset: ax.Main(c.root.Offset()),
			bounds: boundsOf(c.root),
			anchor: c.alignment(t),
		})
	}
	if t < 0 || t >= len(c.sections) {
		return ch
	}
	sec := c.sections[t]
	if ct := sec.Container(); ct != nil && ct.Axis() == ax {
		ch = append(ch, link{
			level:  LevelContainer,
			offset: ax.Main(ct.Offset()),
			bounds: boundsOf(ct),
			anchor: c.pageAligned(t),
		})
	}
	if pg := sec.ActivePage(); pg != nil && pg.Axis() == ax {
		ch = append(ch, link{
			level:  LevelPage,
			offset: ax.Main(pg.Offset()),
			bounds: boundsOf(pg),
		})
	}
	return ch
}

// settledChain is chainFor with the region reporting the current event
// seen at its offset before the event.
func (c *Coordinator) settledChain(t int, ax Axis) []link {
	ch := c.chainFor(t, ax)
	if l, ok := c.reporterLevel(t); ok {
		if i := find(ch, l); i >= 0 && c.reporter.Axis() == ax {
			ch[i].offset = ax.Main(c.previous)
		}
	}
	return ch
}

// reporterLevel returns the level of the region reporting the current
// event within section t.
func (c *Coordinator) reporterLevel(t int) (Level, bool) {
	switch {
	case c.reporter == nil:
		return 0, false
	case c.reporter == c.root:
		return LevelRoot, true
	}
	l, sec := c.classify(c.reporter)
	return l, sec >= 0 && sec == t
}

// alignment is the root offset at which section t's start meets the
// leading edge of the viewport, limited to what the root can reach.
func (c *Coordinator) alignment(t int) float64 {
	b := boundsOf(c.root)
	if t < 0 || t >= len(c.sections) {
		return b.Min
	}
	a := c.sections[t].Start() - c.root.Insets().Leading(c.axis)
	return b.Clamp(a)
}

// pageAligned is the container offset of section i showing its target
// page exactly.
func (c *Coordinator) pageAligned(i int) float64 {
	ct := c.sections[i].Container()
	a := ct.Axis()
	return boundsOf(ct).Clamp(float64(c.targetPage(i)) * a.Extent(ct.ViewportSize()))
}

// targetPage is the page under the finger: the touch location projected
// onto the container axis divided by the page extent. It falls back to the
// last page seen during this gesture, then to the section's current page.
func (c *Coordinator) targetPage(i int) int {
	sec := c.sections[i]
	ct := sec.Container()
	n := sec.PageCount()
	if ct == nil || n <= 0 {
		return 0
	}
	a := ct.Axis()
	extent := a.Extent(ct.ViewportSize())
	if loc, ok := ct.TouchLocation(); ok && extent > 0 {
		return pageIndex(a.Main(loc), extent, n)
	}
	if i == c.target && c.touch.page >= 0 {
		return min(c.touch.page, n-1)
	}
	return max(0, min(sec.CurrentPage(), n-1))
}

// pageIndex maps a position along the container to a page index.
func pageIndex(pos, extent float64, count int) int {
	if extent <= 0 || count <= 0 {
		return 0
	}
	idx := int(math.Floor(pos / extent))
	return max(0, min(idx, count-1))
}

// visibleSpan is the part of the root content shown in the viewport.
func (c *Coordinator) visibleSpan() (lo, hi float64) {
	r := c.axis.Main(c.root.Offset())
	in := c.root.Insets()
	lo = r + in.Leading(c.axis)
	hi = r + c.axis.Extent(c.root.ViewportSize()) - in.Trailing(c.axis)
	return lo, hi
}

// settledSpan is visibleSpan as it was before the event in flight moved
// the root.
func (c *Coordinator) settledSpan() (lo, hi float64) {
	lo, hi = c.visibleSpan()
	if c.reporter != nil && c.reporter == c.root {
		d := c.axis.Main(c.root.Offset()) - c.axis.Main(c.previous)
		lo, hi = lo-d, hi-d
	}
	return lo, hi
}

func (c *Coordinator) refreshVisible() {
	c.visible = c.visible[:0]
	if c.root == nil {
		return
	}
	lo, hi := c.visibleSpan()
	for i, sec := range c.sections {
		if sec.Start() < hi && sec.End() > lo {
			c.visible = append(c.visible, i)
		}
	}
}

// isCurrentPageFirst reports whether section t is at the leading extremity
// of the composite view along the locked axis.
func (c *Coordinator) isCurrentPageFirst(t int) bool {
	return c.isCurrentPageEdge(t, -1)
}

// isCurrentPageLast reports whether section t is at the trailing extremity
// of the composite view along the locked axis.
func (c *Coordinator) isCurrentPageLast(t int) bool {
	return c.isCurrentPageEdge(t, 1)
}

func (c *Coordinator) isCurrentPageEdge(t, dir int) bool {
	if t < 0 || t >= len(c.sections) {
		return false
	}
	ax := c.lock.axis
	if ax == c.axis {
		if dir < 0 && t != 0 {
			return false
		}
		if dir > 0 && t != len(c.sections)-1 {
			return false
		}
	}
	sec := c.sections[t]
	if ct := sec.Container(); ct != nil && ct.Axis() == ax {
		if dir < 0 {
			return sec.CurrentPage() <= 0
		}
		return sec.CurrentPage() >= sec.PageCount()-1
	}
	return true
}
