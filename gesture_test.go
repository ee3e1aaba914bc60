package segscroll

import "testing"

func bareRoot(t *testing.T) (*Coordinator, *ScrollView, *Gesture) {
	t.Helper()
	c := New(RootOwnsOverscroll, Vertical)
	root := newList()
	if err := c.Attach(root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Bind(c, root)
	return c, root, NewGesture(c, root)
}

func TestGestureLifecycle(t *testing.T) {
	_, root, g := bareRoot(t)

	g.Move(0, -10)
	if root.Position() != 0 {
		t.Errorf("expected no motion before begin, got %v", root.Position())
	}

	g.Begin(Point{X: 50, Y: 100})
	if !g.Active() {
		t.Fatal("expected active gesture")
	}
	if loc, ok := root.TouchLocation(); !ok || loc != (Point{X: 50, Y: 100}) {
		t.Errorf("expected root touch at {50 100}, got %v (%v)", loc, ok)
	}

	g.Move(0, -10)
	g.Move(0, -5)
	if root.Position() != 15 {
		t.Errorf("expected root at 15, got %v", root.Position())
	}
	if g.Finger() != (Point{X: 50, Y: 85}) {
		t.Errorf("expected finger at {50 85}, got %v", g.Finger())
	}
	if loc, _ := root.TouchLocation(); loc.Y != 100 {
		t.Errorf("expected content location to follow the finger at 100, got %v", loc.Y)
	}

	g.End()
	if g.Active() {
		t.Error("expected gesture ended")
	}
	if _, ok := root.TouchLocation(); ok {
		t.Error("expected touch cleared on end")
	}
	if len(g.Under()) != 1 || g.Under()[0] != root {
		t.Errorf("expected only the root under the finger, got %d views", len(g.Under()))
	}
}

func TestGestureFling(t *testing.T) {
	t.Run("decays until slow", func(t *testing.T) {
		_, root, g := bareRoot(t)
		n := g.Fling(0, -10, 100)
		if n != 59 {
			t.Errorf("expected 59 frames, got %d", n)
		}
		if root.Position() <= 150 || root.Position() >= 200 {
			t.Errorf("expected root between 150 and 200, got %v", root.Position())
		}
	})

	t.Run("frame limit", func(t *testing.T) {
		_, _, g := bareRoot(t)
		if n := g.Fling(0, -10, 10); n != 10 {
			t.Errorf("expected 10 frames, got %d", n)
		}
	})

	t.Run("settles overscroll", func(t *testing.T) {
		_, root, g := bareRoot(t)
		root.SetOffset(Point{Y: 790})
		g.Fling(0, -20, 30)
		if root.Position() != 800 {
			t.Errorf("expected root settled at 800, got %v", root.Position())
		}
	})

	t.Run("ends an active drag", func(t *testing.T) {
		_, _, g := bareRoot(t)
		g.Begin(Point{X: 10, Y: 10})
		g.Fling(0, -1, 1)
		if g.Active() {
			t.Error("expected fling to end the drag")
		}
	})
}

func TestGestureSurvivesSectionRemoval(t *testing.T) {
	t.Run("end right after removal", func(t *testing.T) {
		h := build(t, threeSections(RootOwnsOverscroll))
		scrollTo(h.Root, 800)
		h.Gesture.Begin(Point{X: 50, Y: 50})
		h.List.RemoveAt(2)
		h.Gesture.End()

		if h.Gesture.Active() {
			t.Error("expected gesture ended")
		}
		if len(h.Gesture.Under()) != 1 {
			t.Errorf("expected only the root left under the finger, got %d views", len(h.Gesture.Under()))
		}
	})

	t.Run("drag continues after removal", func(t *testing.T) {
		h := build(t, threeSections(RootOwnsOverscroll))
		scrollTo(h.Root, 800)
		g := h.Gesture
		g.Begin(Point{X: 50, Y: 50}) // inside section 2
		g.Move(0, -10)
		if !h.Coordinator.Permissions().Page {
			t.Fatalf("expected page to own the drag, got %s", h.Coordinator.Permissions())
		}

		h.List.RemoveAt(2)
		if !h.Coordinator.Permissions().Root {
			t.Errorf("expected root permission after the target went away, got %s", h.Coordinator.Permissions())
		}

		g.Move(0, 10)
		g.Move(0, 10)
		g.End()
		if got := h.Root.Position(); got != 780 {
			t.Errorf("expected root at 780, got %v", got)
		}
		if _, ok := h.Coordinator.Target(); ok {
			t.Error("expected no target")
		}
	})
}
