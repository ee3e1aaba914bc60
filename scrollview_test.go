package segscroll

import "testing"

func newList() *ScrollView {
	return NewScrollView("list", Vertical, Size{W: 100, H: 200}, Size{W: 100, H: 1000})
}

func TestScrollViewDrag(t *testing.T) {
	t.Run("notifies with previous offset", func(t *testing.T) {
		v := newList()
		var calls int
		var prev Point
		v.OnScroll = func(_ *ScrollView, p Point) {
			calls++
			prev = p
		}
		v.Drag(30)
		v.Drag(20)

		if v.Position() != 50 {
			t.Errorf("expected offset 50, got %v", v.Position())
		}
		if calls != 2 {
			t.Errorf("expected 2 notifications, got %d", calls)
		}
		if prev.Y != 30 {
			t.Errorf("expected previous offset 30, got %v", prev.Y)
		}
	})

	t.Run("zero delta is ignored", func(t *testing.T) {
		v := newList()
		called := false
		v.OnScroll = func(*ScrollView, Point) { called = true }
		v.Drag(0)
		if called {
			t.Error("expected no notification")
		}
	})

	t.Run("rubber bands past the end", func(t *testing.T) {
		v := newList()
		v.SetOffset(Point{Y: 800})
		v.Drag(100)

		want := 800 + RubberBand(100, 200)
		if v.Position() != want {
			t.Errorf("expected %v, got %v", want, v.Position())
		}
		if v.Overscroll() <= 0 || v.Overscroll() >= 100 {
			t.Errorf("expected damped positive overscroll, got %v", v.Overscroll())
		}
	})

	t.Run("rubber bands before the start", func(t *testing.T) {
		v := newList()
		v.Drag(-40)
		if v.Position() >= 0 || v.Position() <= -40 {
			t.Errorf("expected damped negative offset, got %v", v.Position())
		}
	})

	t.Run("returning from overscroll is undamped", func(t *testing.T) {
		v := newList()
		v.SetOffset(Point{Y: 800})
		v.Drag(50)
		v.Drag(-50)
		if v.Position() != 800 {
			t.Errorf("expected 800, got %v", v.Position())
		}
	})

	t.Run("silent set resets the drag origin", func(t *testing.T) {
		v := newList()
		v.Drag(10)
		v.SetOffset(Point{Y: 100})
		v.Drag(10)
		if v.Position() != 110 {
			t.Errorf("expected 110, got %v", v.Position())
		}
	})
}

func TestScrollViewScrollTo(t *testing.T) {
	v := newList()
	var calls int
	v.OnScroll = func(*ScrollView, Point) { calls++ }

	v.ScrollTo(5000)
	if v.Position() != 800 {
		t.Errorf("expected clamp to 800, got %v", v.Position())
	}
	v.ScrollToStart()
	if v.Position() != 0 {
		t.Errorf("expected 0, got %v", v.Position())
	}
	v.PageForward()
	if v.Position() != 200 {
		t.Errorf("expected one page at 200, got %v", v.Position())
	}
	v.PageBack()
	v.PageBack()
	if v.Position() != 0 {
		t.Errorf("expected 0, got %v", v.Position())
	}
	v.ScrollToEnd()
	if v.Position() != v.MaxScroll() {
		t.Errorf("expected %v, got %v", v.MaxScroll(), v.Position())
	}
	// the second PageBack from 0 does not move
	if calls != 5 {
		t.Errorf("expected 5 notifications, got %d", calls)
	}
}

func TestScrollViewSettle(t *testing.T) {
	v := newList()
	called := false
	v.OnScroll = func(*ScrollView, Point) { called = true }
	v.SetOffset(Point{Y: 830})
	v.Settle()

	if v.Position() != 800 {
		t.Errorf("expected 800, got %v", v.Position())
	}
	if called {
		t.Error("expected settle to be silent")
	}
}

func TestScrollViewResize(t *testing.T) {
	v := newList()
	v.SetOffset(Point{Y: 700})
	v.SetContentSize(Size{W: 100, H: 500})
	if v.Position() != 300 {
		t.Errorf("expected offset clamped to 300, got %v", v.Position())
	}
	v.SetViewport(Size{W: 100, H: 600})
	if v.Position() != 0 {
		t.Errorf("expected offset clamped to 0, got %v", v.Position())
	}
}

func TestScrollViewTouch(t *testing.T) {
	v := newList()
	if _, ok := v.TouchLocation(); ok {
		t.Error("expected no touch")
	}

	v.SetOffset(Point{Y: 150})
	v.SetTouch(Point{X: 10, Y: 20})
	p, ok := v.TouchLocation()
	if !ok {
		t.Fatal("expected touch")
	}
	if p != (Point{X: 10, Y: 170}) {
		t.Errorf("expected {10 170}, got %v", p)
	}

	v.ClearTouch()
	if _, ok := v.TouchLocation(); ok {
		t.Error("expected touch cleared")
	}
}
