package segscroll

// ScrollView is a Region backed by plain geometry. It stands in for a
// platform scroll view: Drag applies finger motion with rubber-band
// resistance past the edges and reports the change to the observer, while
// SetOffset is the silent write used by the coordinator.
type ScrollView struct {
	Name string

	axis     Axis
	offset   Point
	raw      float64 // undamped position along the axis while dragging
	content  Size
	viewport Size
	insets   EdgeInsets

	touch    Point // finger position in viewport coordinates
	touching bool

	// OnScroll is called after Drag or a Scroll* method moved the view.
	OnScroll func(v *ScrollView, previous Point)
}

// NewScrollView creates a view scrolling along axis.
func NewScrollView(name string, axis Axis, viewport, content Size) *ScrollView {
	return &ScrollView{Name: name, axis: axis, viewport: viewport, content: content}
}

func (v *ScrollView) Axis() Axis         { return v.axis }
func (v *ScrollView) Offset() Point      { return v.offset }
func (v *ScrollView) ContentSize() Size  { return v.content }
func (v *ScrollView) ViewportSize() Size { return v.viewport }
func (v *ScrollView) Insets() EdgeInsets { return v.insets }

// SetOffset writes the offset without notifying the observer.
func (v *ScrollView) SetOffset(p Point) {
	v.offset = p
	v.raw = v.axis.Main(p)
}

// TouchLocation returns the finger position in content coordinates.
func (v *ScrollView) TouchLocation() (Point, bool) {
	if !v.touching {
		return Point{}, false
	}
	return v.touch.Add(v.offset), true
}

// SetTouch places the finger at p, in viewport coordinates.
func (v *ScrollView) SetTouch(p Point) {
	v.touch = p
	v.touching = true
}

// ClearTouch lifts the finger.
func (v *ScrollView) ClearTouch() {
	v.touching = false
}

// SetInsets sets the edge insets. The current offset is left alone.
func (v *ScrollView) SetInsets(in EdgeInsets) {
	v.insets = in
}

// SetContentSize updates the content size, clamping the offset into the
// new range.
func (v *ScrollView) SetContentSize(s Size) {
	v.content = s
	v.clamp()
}

// SetViewport updates the viewport size, clamping the offset into the new
// range.
func (v *ScrollView) SetViewport(s Size) {
	v.viewport = s
	v.clamp()
}

// Bounds returns the offset range along the view's axis.
func (v *ScrollView) Bounds() Bounds {
	return boundsOf(v)
}

// Position returns the offset along the view's axis.
func (v *ScrollView) Position() float64 {
	return v.axis.Main(v.offset)
}

// MaxScroll returns the largest offset reachable without overscroll.
func (v *ScrollView) MaxScroll() float64 {
	return v.Bounds().Max
}

// Overscroll returns how far the view sits past its edges: positive past
// the end, negative before the start, zero inside.
func (v *ScrollView) Overscroll() float64 {
	b := v.Bounds()
	p := v.Position()
	switch {
	case p > b.Max:
		return p - b.Max
	case p < b.Min:
		return p - b.Min
	}
	return 0
}

// Drag moves the content by d along the axis as a finger would, damping
// motion past the edges, and notifies the observer.
func (v *ScrollView) Drag(d float64) {
	if d == 0 {
		return
	}
	prev := v.offset
	v.raw += d
	b := v.Bounds()
	dim := v.axis.Extent(v.viewport)
	pos := v.raw
	switch {
	case pos > b.Max:
		pos = b.Max + RubberBand(pos-b.Max, dim)
	case pos < b.Min:
		pos = b.Min + RubberBand(pos-b.Min, dim)
	}
	v.offset = v.axis.WithMain(v.offset, pos)
	v.notify(prev)
}

// ScrollTo moves to pos, clamped to the valid range, and notifies the observer.
func (v *ScrollView) ScrollTo(pos float64) {
	prev := v.offset
	v.SetOffset(v.axis.WithMain(v.offset, v.Bounds().Clamp(pos)))
	v.notify(prev)
}

// ScrollBy moves by d, clamped to the valid range.
func (v *ScrollView) ScrollBy(d float64) {
	v.ScrollTo(v.Position() + d)
}

// ScrollToStart scrolls to the first offset.
func (v *ScrollView) ScrollToStart() {
	v.ScrollTo(v.Bounds().Min)
}

// ScrollToEnd scrolls to the last offset.
func (v *ScrollView) ScrollToEnd() {
	v.ScrollTo(v.Bounds().Max)
}

// PageForward scrolls by one viewport.
func (v *ScrollView) PageForward() {
	v.ScrollBy(v.axis.Extent(v.viewport))
}

// PageBack scrolls back by one viewport.
func (v *ScrollView) PageBack() {
	v.ScrollBy(-v.axis.Extent(v.viewport))
}

// Settle snaps an overscrolled view back to its nearest edge without
// notifying, as the end of a rubber-band animation would.
func (v *ScrollView) Settle() {
	v.clamp()
}

func (v *ScrollView) clamp() {
	v.SetOffset(v.axis.WithMain(v.offset, v.Bounds().Clamp(v.Position())))
}

func (v *ScrollView) notify(prev Point) {
	if v.OnScroll != nil && prev != v.offset {
		v.OnScroll(v, prev)
	}
}
