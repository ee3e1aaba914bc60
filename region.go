package segscroll

// Region is one scrollable nesting level: the root list, a pages container
// or a page. Implementations must not call back into the coordinator from
// SetOffset; corrections written by the coordinator are final.
type Region interface {
	Axis() Axis
	Offset() Point
	SetOffset(Point)
	ContentSize() Size
	ViewportSize() Size
	Insets() EdgeInsets

	// TouchLocation is the active drag's location in the region's content
	// coordinates. ok is false when no drag is tracking this region.
	TouchLocation() (p Point, ok bool)
}

// Section is a segment section of the root list: a span of the root's
// content hosting a paged container whose active page may scroll on its own.
type Section interface {
	// Start and End are the section's span along the root axis, in root
	// content coordinates.
	Start() float64
	End() float64

	Container() Region
	// ActivePage is nil when the current page is not scrollable.
	ActivePage() Region

	PagesAxis() Axis
	CurrentPage() int
	PageCount() int
}

// PageSettler is implemented by sections that want to know which page a
// container drag settled on.
type PageSettler interface {
	SettlePage(index int)
}
