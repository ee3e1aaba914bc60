package segscroll

import (
	"math"
	"testing"
)

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in   string
		want Axis
	}{
		{"vertical", Vertical},
		{"V", Vertical},
		{" y ", Vertical},
		{"horizontal", Horizontal},
		{"h", Horizontal},
		{"X", Horizontal},
	}
	for _, tt := range tests {
		got, err := ParseAxis(tt.in)
		if err != nil {
			t.Errorf("ParseAxis(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAxis(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}

	if _, err := ParseAxis("diagonal"); err == nil {
		t.Error("expected error for unknown axis")
	}
}

func TestAxisText(t *testing.T) {
	var a Axis
	if err := a.UnmarshalText([]byte("horizontal")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != Horizontal {
		t.Errorf("expected horizontal, got %s", a)
	}
	b, _ := a.MarshalText()
	if string(b) != "horizontal" {
		t.Errorf("expected 'horizontal', got %q", b)
	}
	if Axis(7).String() != "Axis(7)" {
		t.Errorf("expected 'Axis(7)', got %q", Axis(7).String())
	}
}

func TestAxisComponents(t *testing.T) {
	p := Point{X: 3, Y: 4}

	if Vertical.Main(p) != 4 || Horizontal.Main(p) != 3 {
		t.Errorf("expected main components 4 and 3, got %v and %v", Vertical.Main(p), Horizontal.Main(p))
	}
	if got := Vertical.WithMain(p, 9); got != (Point{X: 3, Y: 9}) {
		t.Errorf("expected {3 9}, got %v", got)
	}
	if got := Horizontal.WithMain(p, 9); got != (Point{X: 9, Y: 4}) {
		t.Errorf("expected {9 4}, got %v", got)
	}
	if Vertical.Cross() != Horizontal || Horizontal.Cross() != Vertical {
		t.Error("expected cross axes to swap")
	}
	s := Size{W: 10, H: 20}
	if Vertical.Extent(s) != 20 || Horizontal.Extent(s) != 10 {
		t.Errorf("expected extents 20 and 10, got %v and %v", Vertical.Extent(s), Horizontal.Extent(s))
	}
}

func TestBoundsOf(t *testing.T) {
	t.Run("plain content", func(t *testing.T) {
		v := NewScrollView("v", Vertical, Size{W: 100, H: 200}, Size{W: 100, H: 1000})
		if b := boundsOf(v); b != (Bounds{Min: 0, Max: 800}) {
			t.Errorf("expected [0,800], got %v", b)
		}
	})

	t.Run("insets extend both ends", func(t *testing.T) {
		v := NewScrollView("v", Vertical, Size{W: 100, H: 200}, Size{W: 100, H: 1000})
		v.SetInsets(EdgeInsets{Top: 20, Bottom: 30, Left: 99})
		if b := boundsOf(v); b != (Bounds{Min: -20, Max: 830}) {
			t.Errorf("expected [-20,830], got %v", b)
		}
	})

	t.Run("short content does not scroll", func(t *testing.T) {
		v := NewScrollView("h", Horizontal, Size{W: 100, H: 200}, Size{W: 40, H: 200})
		b := boundsOf(v)
		if b.Span() != 0 {
			t.Errorf("expected empty span, got %v", b)
		}
	})
}

func TestBounds(t *testing.T) {
	b := Bounds{Min: 0, Max: 100}
	if b.Clamp(-5) != 0 || b.Clamp(105) != 100 || b.Clamp(50) != 50 {
		t.Error("expected clamp to limit to [0,100]")
	}
	if b.Edge(1) != 100 || b.Edge(-1) != 0 {
		t.Errorf("expected edges 100 and 0, got %v and %v", b.Edge(1), b.Edge(-1))
	}
}

func TestEdgeHelpers(t *testing.T) {
	b := Bounds{Min: 0, Max: 100}
	eps := DefaultEpsilon

	if !hasRoom(99, b, 1, eps) {
		t.Error("expected room at 99 moving forward")
	}
	if hasRoom(99.6, b, 1, eps) {
		t.Error("expected no room within epsilon of max")
	}
	if hasRoom(0.4, b, -1, eps) {
		t.Error("expected no room within epsilon of min")
	}
	if hasRoom(50, b, 0, eps) {
		t.Error("expected no room without a direction")
	}

	if !reached(99.6, 100, 1, eps) || reached(99, 100, 1, eps) {
		t.Error("expected reached to honour epsilon")
	}
	if !reached(-3, 0, -1, eps) {
		t.Error("expected overshoot past min to count as reached")
	}
	if !beyond(101, 100, 1, eps) || beyond(100.4, 100, 1, eps) {
		t.Error("expected beyond to need more than epsilon")
	}

	if sign(0.3, eps) != 0 || sign(2, eps) != 1 || sign(-2, eps) != -1 {
		t.Error("expected sign to treat small values as zero")
	}
}

func TestRubberBand(t *testing.T) {
	if RubberBand(0, 100) != 0 {
		t.Error("expected no overshoot for zero input")
	}
	if RubberBand(50, 0) != 0 {
		t.Error("expected no overshoot for empty viewport")
	}

	got := RubberBand(100, 100)
	want := (1 - 1/1.55) * 100
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
	if RubberBand(-100, 100) != -got {
		t.Error("expected rubber band to be symmetric")
	}

	prev := 0.0
	for _, x := range []float64{1, 10, 100, 1000, 10000} {
		d := RubberBand(x, 100)
		if d <= prev || d >= x || d >= 100 {
			t.Errorf("overshoot %v: expected damped, increasing value below 100, got %v", x, d)
		}
		prev = d
	}
}
