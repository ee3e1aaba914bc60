package segscroll

import (
	"fmt"
	"strings"
)

// BouncePolicy decides which nesting level may rubber-band past the outer
// edges of the composite view. Intermediate section boundaries never bounce.
type BouncePolicy uint8

const (
	// RootOwnsOverscroll lets the outermost level on the drag axis bounce;
	// pages are clamped to their own edges.
	RootOwnsOverscroll BouncePolicy = iota
	// PageOwnsOverscrollAtRootEdge lets the active page bounce, but only
	// once every outer level is pinned at its edge.
	PageOwnsOverscrollAtRootEdge
	// PageOwnsOverscrollOnTouch lets the active page bounce at its own edge
	// whenever the touch began inside it, without handing back to the root.
	PageOwnsOverscrollOnTouch
)

var policyNames = [...]string{
	RootOwnsOverscroll:           "root",
	PageOwnsOverscrollAtRootEdge: "page-at-root-edge",
	PageOwnsOverscrollOnTouch:    "page-on-touch",
}

func (p BouncePolicy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return fmt.Sprintf("BouncePolicy(%d)", uint8(p))
}

// ParsePolicy accepts the names printed by String.
func ParsePolicy(s string) (BouncePolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range policyNames {
		if s == name {
			return BouncePolicy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown bounce policy %q (want one of %s)", s, strings.Join(policyNames[:], ", "))
}

func (p BouncePolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *BouncePolicy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p BouncePolicy) valid() bool {
	return int(p) < len(policyNames)
}

// edgeContext describes the moment the innermost page reaches an edge.
type edgeContext struct {
	extremity   bool // first page of first section going back, last of last going forward
	outerPinned bool // no outer level has room in the direction of travel
	touchInPage bool // the gesture began inside this page
}

// outerOwnsEdge reports whether the outermost level may bounce.
func (p BouncePolicy) outerOwnsEdge() bool {
	return p == RootOwnsOverscroll
}

// pageOwnsEdge reports whether the page may bounce in the given situation.
func (p BouncePolicy) pageOwnsEdge(c edgeContext) bool {
	if !c.extremity {
		return false
	}
	switch p {
	case PageOwnsOverscrollAtRootEdge:
		return c.outerPinned
	case PageOwnsOverscrollOnTouch:
		return c.touchInPage
	}
	return false
}
