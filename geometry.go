package segscroll

import (
	"fmt"
	"math"
	"strings"
)

// Axis is the direction a region scrolls along.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

// String returns the text form used by config files and flags.
func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// ParseAxis accepts "vertical"/"v" and "horizontal"/"h".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v", "y":
		return Vertical, nil
	case "horizontal", "h", "x":
		return Horizontal, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// Main returns the component of p along the axis.
func (a Axis) Main(p Point) float64 {
	if a == Vertical {
		return p.Y
	}
	return p.X
}

// WithMain returns p with its component along the axis replaced by v.
func (a Axis) WithMain(p Point, v float64) Point {
	if a == Vertical {
		p.Y = v
	} else {
		p.X = v
	}
	return p
}

// Extent returns the size along the axis.
func (a Axis) Extent(s Size) float64 {
	if a == Vertical {
		return s.H
	}
	return s.W
}

// Point is a scroll offset or a location in content coordinates.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// EdgeInsets pad the scrollable range of a region.
type EdgeInsets struct {
	Top, Left, Bottom, Right float64
}

// Leading is the inset before content along the axis (top or left).
func (e EdgeInsets) Leading(a Axis) float64 {
	if a == Vertical {
		return e.Top
	}
	return e.Left
}

// Trailing is the inset after content along the axis (bottom or right).
func (e EdgeInsets) Trailing(a Axis) float64 {
	if a == Vertical {
		return e.Bottom
	}
	return e.Right
}

// Bounds is the valid offset range of a region along one axis.
type Bounds struct {
	Min, Max float64
}

// Clamp limits v to the bounds.
func (b Bounds) Clamp(v float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, v))
}

// Edge returns Max when moving forward and Min otherwise.
func (b Bounds) Edge(dir int) float64 {
	if dir > 0 {
		return b.Max
	}
	return b.Min
}

// Span returns the scrollable distance.
func (b Bounds) Span() float64 {
	return b.Max - b.Min
}

// boundsOf computes the offset range of r along its own axis.
// The leading inset allows scrolling before zero, the trailing inset past
// the end of content; content shorter than the viewport does not scroll.
func boundsOf(r Region) Bounds {
	a := r.Axis()
	in := r.Insets()
	lo := -in.Leading(a)
	hi := a.Extent(r.ContentSize()) - a.Extent(r.ViewportSize()) + in.Trailing(a)
	if hi < lo {
		hi = lo
	}
	return Bounds{Min: lo, Max: hi}
}

// DefaultEpsilon is the tolerance for "at edge" comparisons, in points.
const DefaultEpsilon = 0.5

// near reports whether a and b are within eps of each other.
func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// beyond reports whether v lies past edge in direction dir by more than eps.
func beyond(v, edge float64, dir int, eps float64) bool {
	return (v-edge)*float64(dir) > eps
}

// reached reports whether v is at or past edge in direction dir.
func reached(v, edge float64, dir int, eps float64) bool {
	return (v-edge)*float64(dir) >= -eps
}

// hasRoom reports whether v can still move in direction dir inside b.
func hasRoom(v float64, b Bounds, dir int, eps float64) bool {
	if dir > 0 {
		return v < b.Max-eps
	}
	if dir < 0 {
		return v > b.Min+eps
	}
	return false
}

// sign returns -1, 0 or 1, treating magnitudes under eps as zero.
func sign(v, eps float64) int {
	switch {
	case v > eps:
		return 1
	case v < -eps:
		return -1
	}
	return 0
}

// rubberBandCoefficient matches the resistance of platform scroll views.
const rubberBandCoefficient = 0.55

// RubberBand maps a raw overshoot distance to the damped distance shown
// past an edge, for a viewport of the given dimension along the axis.
func RubberBand(overshoot, dimension float64) float64 {
	if dimension <= 0 || overshoot == 0 {
		return 0
	}
	neg := overshoot < 0
	x := math.Abs(overshoot)
	d := (1 - 1/(x*rubberBandCoefficient/dimension+1)) * dimension
	if neg {
		return -d
	}
	return d
}
