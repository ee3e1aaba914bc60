package segscroll

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Coordinator routes a drag gesture across the root list, the pages
// container of a segment section and that section's active page, so that
// exactly one of them consumes each scroll delta.
//
// Regions report every offset change through OnScroll after it has been
// applied; the coordinator corrects the regions that were not allowed to
// move. All methods must be called from the UI goroutine: a Coordinator is
// not safe for concurrent use.
//
// usage:
//
//	c := segscroll.New(segscroll.PageOwnsOverscrollAtRootEdge, segscroll.Vertical)
//	if err := c.Attach(rootView); err != nil { ... }
//	c.LayoutDidFinish(sections)
//	c.BeginGesture(touch)
//	c.OnScroll(region, previousOffset) // for every offset change
//	c.EndGesture()
type Coordinator struct {
	policy BouncePolicy
	axis   Axis
	eps    float64
	log    *zap.Logger

	root     Region
	sections []Section
	visible  []int

	perms  Permissions
	lock   axisLock
	touch  touchState
	target int // index into sections, -1 when only the root may move
	dir    int // last direction seen on the locked axis

	// event in flight
	busy     bool
	reporter Region
	previous Point
}

type axisLock struct {
	set  bool
	axis Axis
}

type touchState struct {
	active  bool
	section int
	inPage  bool
	page    int // page index under the finger, -1 until a container reports one
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger handoffs are reported to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithEpsilon sets the tolerance for edge comparisons. Non-positive values
// keep the default.
func WithEpsilon(eps float64) Option {
	return func(c *Coordinator) {
		if eps > 0 {
			c.eps = eps
		}
	}
}

// New returns a coordinator for a root list scrolling along axis.
// An unknown policy falls back to RootOwnsOverscroll.
func New(policy BouncePolicy, axis Axis, opts ...Option) *Coordinator {
	if !policy.valid() {
		policy = RootOwnsOverscroll
	}
	c := &Coordinator{
		policy: policy,
		axis:   axis,
		eps:    DefaultEpsilon,
		log:    zap.NewNop(),
		target: -1,
		perms:  Grant(LevelRoot),
		touch:  touchState{section: -1, page: -1},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.Stringer("policy", c.policy), zap.Stringer("axis", c.axis))
	return c
}

var errNoRoot = errors.New("root region is nil")

// Attach sets the root list. The root must scroll along the coordinator's axis.
func (c *Coordinator) Attach(root Region) error {
	if root == nil {
		return errNoRoot
	}
	if root.Axis() != c.axis {
		return fmt.Errorf("root scrolls %s, coordinator expects %s", root.Axis(), c.axis)
	}
	c.root = root
	c.Reset()
	c.refreshVisible()
	return nil
}

// Detach drops the root. Events received afterwards are ignored.
func (c *Coordinator) Detach() {
	c.root = nil
	c.Reset()
}

// Policy returns the bounce policy chosen at construction.
func (c *Coordinator) Policy() BouncePolicy { return c.policy }

// Axis returns the root axis.
func (c *Coordinator) Axis() Axis { return c.axis }

// Permissions returns the current permission state.
func (c *Coordinator) Permissions() Permissions { return c.perms }

// Target returns the index of the section currently eligible to receive
// the gesture.
func (c *Coordinator) Target() (int, bool) {
	return c.target, c.target >= 0
}

// TouchSection returns the section under the finger when the gesture began.
func (c *Coordinator) TouchSection() (int, bool) {
	if !c.touch.active || c.touch.section < 0 {
		return -1, false
	}
	return c.touch.section, true
}

// LockedAxis returns the axis the current gesture is locked to.
func (c *Coordinator) LockedAxis() (Axis, bool) {
	return c.lock.axis, c.lock.set
}

// VisibleSections returns the sections intersecting the root's visible
// span, in order, as of the last layout or scroll event.
func (c *Coordinator) VisibleSections() []int {
	return slices.Clone(c.visible)
}

// Sections returns the sections known since the last layout.
func (c *Coordinator) Sections() []Section {
	return c.sections
}

// Reset clears all per-gesture state.
func (c *Coordinator) Reset() {
	c.lock = axisLock{}
	c.touch = touchState{section: -1, page: -1}
	c.target = -1
	c.dir = 0
	c.perms = Grant(LevelRoot)
}

// LayoutDidFinish re-enumerates the segment sections. Call it whenever the
// root's layout has been recomputed.
func (c *Coordinator) LayoutDidFinish(sections []Section) {
	c.sections = append(c.sections[:0], sections...)
	if c.touch.section >= len(c.sections) {
		c.touch = touchState{section: -1, page: -1}
	}
	if c.target >= len(c.sections) {
		c.setTarget(-1)
		c.grant(Grant(LevelRoot), "layout")
	}
	c.refreshVisible()
	c.log.Debug("layout finished", zap.Int("sections", len(c.sections)), zap.Ints("visible", c.visible))
}

// Watch re-enumerates sections whenever list changes and returns a
// function that stops watching.
func (c *Coordinator) Watch(list *SectionList) func() {
	c.LayoutDidFinish(list.Sections())
	return list.Subscribe(func(Change) {
		c.LayoutDidFinish(list.Sections())
	})
}

// BeginGesture starts a drag at location, given in the root's viewport
// coordinates. The axis lock is reset and permissions are derived again.
func (c *Coordinator) BeginGesture(location Point) {
	c.Reset()
	if c.root == nil {
		return
	}
	at := c.axis.Main(c.root.Offset()) + c.axis.Main(location)
	c.touch = touchState{active: true, section: c.sectionAt(at), page: -1}
	if c.touch.section >= 0 {
		c.touch.inPage = c.sections[c.touch.section].ActivePage() != nil
	}
	c.target = c.touch.section
	c.perms = Grant(derive(c.chainFor(c.target, c.axis), 0, c.eps))
	c.log.Debug("gesture began",
		zap.Float64("at", at),
		zap.Int("section", c.touch.section),
		zap.Stringer("owner", c.perms))
}

// EndGesture ends the drag. A container that owned the drag settles on the
// page under the finger; otherwise the axis lock is kept so inertial
// scrolling continues through the same routing without a touch section.
func (c *Coordinator) EndGesture() {
	if c.root != nil && c.perms.Container && c.target >= 0 {
		c.settle(c.target)
		c.lock = axisLock{}
		c.perms = Grant(LevelRoot)
	}
	c.touch = touchState{section: -1, page: -1}
	c.log.Debug("gesture ended", zap.Stringer("owner", c.perms))
}

// settle moves the container of section i onto its target page.
func (c *Coordinator) settle(i int) {
	sec := c.sections[i]
	ct := sec.Container()
	if ct == nil {
		return
	}
	idx := c.targetPage(i)
	a := ct.Axis()
	off := boundsOf(ct).Clamp(float64(idx) * a.Extent(ct.ViewportSize()))
	ct.SetOffset(a.WithMain(ct.Offset(), off))
	if s, ok := sec.(PageSettler); ok {
		s.SettlePage(idx)
	}
	c.log.Debug("container settled", zap.Int("section", i), zap.Int("page", idx))
}

// OnScroll must be called by every region after its offset changed from
// previous. Offsets written back by the coordinator do not re-dispatch.
func (c *Coordinator) OnScroll(region Region, previous Point) {
	if c.root == nil || region == nil || c.busy {
		return
	}
	delta := region.Offset().Sub(previous)
	if delta == (Point{}) {
		return
	}
	c.busy, c.reporter, c.previous = true, region, previous
	defer func() {
		c.busy, c.reporter = false, nil
	}()

	if !c.lock.set {
		ax := Vertical
		if abs(delta.X) > abs(delta.Y) {
			ax = Horizontal
		}
		c.lockAxis(ax, sign(ax.Main(delta), 0))
	}

	ax := c.lock.axis
	if region.Axis() != ax {
		c.crossAxis(region, previous)
		return
	}
	dir := sign(ax.Main(delta), 0)
	if dir == 0 {
		return
	}
	c.dir = dir
	c.findScrollableTarget(dir)

	if region == c.root {
		c.rootDidScroll(previous, dir)
		return
	}
	level, sec := c.classify(region)
	switch {
	case sec < 0:
		// not one of ours
	case sec != c.target:
		c.ignore(region, previous)
	case level == LevelPage:
		c.pageDidScroll(region, previous, dir)
	case level == LevelContainer:
		c.containerDidScroll(region, previous, dir)
	}
}

func (c *Coordinator) lockAxis(ax Axis, dir int) {
	c.lock = axisLock{set: true, axis: ax}
	c.dir = dir
	c.findScrollableTarget(dir)
	c.perms = Grant(derive(c.settledChain(c.target, ax), dir, c.eps))
	c.log.Debug("axis locked", zap.Stringer("axis", ax), zap.Int("dir", dir), zap.Stringer("owner", c.perms))
}

// crossAxis reverts an event perpendicular to the locked axis. When no
// level on the locked axis owns the gesture, permissions are derived again
// so a diagonal drag resolves once it straightens out.
func (c *Coordinator) crossAxis(region Region, previous Point) {
	c.revert(region, previous)
	ch := c.settledChain(c.target, c.lock.axis)
	if len(ch) > 0 && find(ch, c.perms.Owner()) < 0 {
		c.grant(Grant(derive(ch, c.dir, c.eps)), "cross-axis")
	}
}

// classify finds the section owning region and its level.
func (c *Coordinator) classify(region Region) (Level, int) {
	for i, sec := range c.sections {
		if pg := sec.ActivePage(); pg != nil && pg == region {
			return LevelPage, i
		}
		if ct := sec.Container(); ct != nil && ct == region {
			return LevelContainer, i
		}
	}
	return LevelRoot, -1
}

// sectionAt returns the section whose span contains the root content
// position at, or -1.
func (c *Coordinator) sectionAt(at float64) int {
	for i, sec := range c.sections {
		if at >= sec.Start() && at < sec.End() {
			return i
		}
	}
	return -1
}

func (c *Coordinator) setTarget(t int) {
	if t == c.target {
		return
	}
	c.log.Debug("target changed", zap.Int("from", c.target), zap.Int("to", t))
	c.target = t
}

func (c *Coordinator) grant(p Permissions, reason string) {
	if p == c.perms {
		return
	}
	c.log.Debug("handoff",
		zap.Stringer("from", c.perms),
		zap.Stringer("to", p),
		zap.String("reason", reason),
		zap.Int("section", c.target))
	c.perms = p
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
