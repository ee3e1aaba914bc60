package segscroll

import (
	"math"
	"slices"
)

// Bind makes every view report its scroll changes to c.
func Bind(c *Coordinator, views ...*ScrollView) {
	for _, v := range views {
		v.OnScroll = func(v *ScrollView, previous Point) {
			c.OnScroll(v, previous)
		}
	}
}

// Gesture drives a drag through a composite of ScrollViews the way a
// platform delivers one pan to every nested scroll view at once: each view
// moves by the finger delta along its own axis and then reports to the
// coordinator, which corrects the ones without permission. The views moved
// are the root and those of the coordinator's target section.
type Gesture struct {
	c       *Coordinator
	root    *ScrollView
	under   []*ScrollView // root first, then the section's container and page
	section int           // section of under, -1 for the root alone
	finger  Point         // root viewport coordinates
	last    Point         // finger delta of the latest move
	active  bool

	// Decay is the per-frame velocity multiplier used by Fling.
	Decay float64
	// Projection is how many frames of the latest finger motion are added
	// to the release point, so a quick swipe lands on the page it heads to.
	Projection float64
}

// NewGesture creates a driver for the coordinator's root view.
func NewGesture(c *Coordinator, root *ScrollView) *Gesture {
	return &Gesture{c: c, root: root, section: -1, Decay: 0.95, Projection: 10}
}

// Active reports whether a finger is down.
func (g *Gesture) Active() bool { return g.active }

// Finger returns the finger position in root viewport coordinates.
func (g *Gesture) Finger() Point { return g.finger }

// Under returns the views the drag currently moves.
func (g *Gesture) Under() []*ScrollView { return g.under }

// Begin puts the finger down at p, in root viewport coordinates.
func (g *Gesture) Begin(p Point) {
	g.finger = p
	g.last = Point{}
	g.active = true
	g.c.BeginGesture(p)
	g.collect()
	g.track()
}

// Move drags the finger by (dx, dy). Content follows the finger, so offsets
// change by the opposite amount.
func (g *Gesture) Move(dx, dy float64) {
	if !g.active {
		return
	}
	d := Point{dx, dy}
	g.finger = g.finger.Add(d)
	g.last = d
	g.drag(d)
}

// End lifts the finger. The pages container sees the release at its
// viewport center pushed back along the latest motion, which is where
// paging lands.
func (g *Gesture) End() {
	if !g.active {
		return
	}
	if sec := g.current(); sec != nil {
		if v, ok := sec.Container().(*ScrollView); ok {
			g.release(v)
		}
	}
	g.c.EndGesture()
	for _, v := range g.under {
		v.ClearTouch()
	}
	g.active = false
	// the settled page may differ from the one dragged
	g.collect()
}

// Fling continues an ended drag with finger velocity (vx, vy) per frame,
// decaying until the motion stops or frames run out. It returns the number
// of frames delivered.
func (g *Gesture) Fling(vx, vy float64, frames int) int {
	if g.active {
		g.End()
	}
	n := 0
	decay := g.Decay
	if decay <= 0 || decay >= 1 {
		decay = 0.95
	}
	for ; n < frames && math.Hypot(vx, vy) >= 0.5; n++ {
		g.drag(Point{vx, vy})
		vx *= decay
		vy *= decay
	}
	for _, v := range g.under {
		v.Settle()
	}
	return n
}

// drag delivers one finger delta. Views along the dominant axis move first
// so the first event locks the axis the finger is travelling. The root moves
// before the section views since handling it may retarget the coordinator.
func (g *Gesture) drag(d Point) {
	dom, ok := g.c.LockedAxis()
	if !ok {
		dom = Vertical
		if math.Abs(d.X) > math.Abs(d.Y) {
			dom = Horizontal
		}
	}
	move := func(v *ScrollView) { v.Drag(-v.Axis().Main(d)) }

	if g.root.Axis() == dom {
		g.track()
		move(g.root)
	}
	g.collect()
	g.track()
	for _, v := range g.under[1:] {
		if v.Axis() == dom {
			move(v)
		}
	}
	if g.root.Axis() != dom {
		move(g.root)
	}
	for _, v := range g.under[1:] {
		if v.Axis() != dom {
			move(v)
		}
	}
}

// collect gathers the root and the views of the target section, or of the
// touched one before a target is known.
func (g *Gesture) collect() {
	i, ok := g.c.Target()
	if !ok {
		i, ok = g.c.TouchSection()
	}
	if !ok || i >= len(g.c.Sections()) {
		i = -1
	}
	prev := g.under
	g.under = []*ScrollView{g.root}
	g.section = i
	if i >= 0 {
		sec := g.c.Sections()[i]
		if v, ok := sec.Container().(*ScrollView); ok {
			g.under = append(g.under, v)
		}
		if v, ok := sec.ActivePage().(*ScrollView); ok {
			g.under = append(g.under, v)
		}
	}
	for _, v := range prev {
		if !slices.Contains(g.under, v) {
			v.ClearTouch()
		}
	}
}

// current returns the section whose views were collected, or nil when a
// layout since then has removed it.
func (g *Gesture) current() Section {
	if g.section < 0 || g.section >= len(g.c.Sections()) {
		return nil
	}
	return g.c.Sections()[g.section]
}

func (g *Gesture) release(v *ScrollView) {
	a := v.Axis()
	center := a.Extent(v.ViewportSize()) / 2
	p := a.WithMain(Point{}, center-a.Main(g.last)*g.Projection)
	v.SetTouch(a.Cross().WithMain(p, a.Cross().Main(g.finger)))
}

// track updates each view's touch location from the finger position while
// the finger is down.
func (g *Gesture) track() {
	if !g.active {
		return
	}
	g.root.SetTouch(g.finger)
	sec := g.current()
	if sec == nil {
		return
	}
	ax := g.c.Axis()
	top := sec.Start() - ax.Main(g.root.Offset())
	local := ax.WithMain(g.finger, ax.Main(g.finger)-top)
	for _, v := range g.under[1:] {
		v.SetTouch(local)
	}
}
