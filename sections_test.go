package segscroll

import "testing"

func pagedSection(start float64, pages ...*ScrollView) *PageSection {
	ct := NewScrollView("pages", Horizontal, Size{W: 100, H: 200}, Size{W: 100 * float64(len(pages)), H: 200})
	return NewPageSection(start, 200, ct, pages...)
}

func TestPageSection(t *testing.T) {
	t.Run("span", func(t *testing.T) {
		s := pagedSection(100, nil)
		if s.Start() != 100 || s.End() != 300 {
			t.Errorf("expected [100,300), got [%v,%v)", s.Start(), s.End())
		}
		s.Move(50, 80)
		if s.Start() != 50 || s.End() != 130 {
			t.Errorf("expected [50,130), got [%v,%v)", s.Start(), s.End())
		}
	})

	t.Run("static page has no active region", func(t *testing.T) {
		s := pagedSection(0, nil, newList())
		if s.ActivePage() != nil {
			t.Error("expected nil active page")
		}
		s.SelectPage(1)
		if s.ActivePage() == nil {
			t.Error("expected scrolling active page")
		}
	})

	t.Run("select moves container and reports", func(t *testing.T) {
		s := pagedSection(0, newList(), newList(), newList())
		var got []int
		s.OnPage = func(i int) { got = append(got, i) }

		s.SelectPage(2)
		s.SelectPage(2)
		s.SelectPage(7)

		if s.CurrentPage() != 2 {
			t.Errorf("expected page 2, got %d", s.CurrentPage())
		}
		if s.ContainerView().Position() != 200 {
			t.Errorf("expected container at 200, got %v", s.ContainerView().Position())
		}
		if len(got) != 1 || got[0] != 2 {
			t.Errorf("expected one change to 2, got %v", got)
		}
	})

	t.Run("no container", func(t *testing.T) {
		s := NewPageSection(0, 100, nil, newList())
		if s.Container() != nil {
			t.Error("expected nil container region")
		}
		if s.PagesAxis() != Horizontal {
			t.Errorf("expected horizontal default, got %s", s.PagesAxis())
		}
		if s.Page(3) != nil || s.Page(-1) != nil {
			t.Error("expected nil for out of range pages")
		}
	})
}

func TestSectionList(t *testing.T) {
	a, b, c := pagedSection(0), pagedSection(200), pagedSection(400)

	t.Run("Add and Insert", func(t *testing.T) {
		l := NewSectionList()
		l.Add(a).Add(c)
		l.Insert(1, b)

		if l.Len() != 3 {
			t.Errorf("expected len 3, got %d", l.Len())
		}
		if l.At(0) != a || l.At(1) != b || l.At(2) != c {
			t.Error("expected [a,b,c]")
		}
		if l.At(3) != nil {
			t.Error("expected nil out of range")
		}
	})

	t.Run("RemoveAt", func(t *testing.T) {
		l := NewSectionList(a, b, c)
		l.RemoveAt(1)
		l.RemoveAt(9)

		if l.Len() != 2 || l.At(0) != a || l.At(1) != c {
			t.Errorf("expected [a,c], got %v", l.Sections())
		}
	})

	t.Run("Subscribe", func(t *testing.T) {
		l := NewSectionList()
		var changes []Change
		unsub := l.Subscribe(func(ch Change) { changes = append(changes, ch) })

		l.Add(a)
		l.Relayout()
		l.Set([]Section{b, c})
		l.Clear()
		unsub()
		l.Add(a)

		want := []ChangeType{ChangeAdd, ChangeUpdate, ChangeSet, ChangeClear}
		if len(changes) != len(want) {
			t.Fatalf("expected %d changes, got %d", len(want), len(changes))
		}
		for i, ct := range want {
			if changes[i].Type != ct {
				t.Errorf("change %d: expected type %d, got %d", i, ct, changes[i].Type)
			}
		}
	})
}

func TestWatch(t *testing.T) {
	c := New(RootOwnsOverscroll, Vertical)
	root := newList()
	if err := c.Attach(root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := NewSectionList(pagedSection(100, newList()))
	stop := c.Watch(l)

	if len(c.Sections()) != 1 {
		t.Fatalf("expected 1 section after watch, got %d", len(c.Sections()))
	}
	l.Add(pagedSection(400, newList()))
	if len(c.Sections()) != 2 {
		t.Errorf("expected 2 sections, got %d", len(c.Sections()))
	}

	stop()
	l.RemoveAt(0)
	if len(c.Sections()) != 2 {
		t.Errorf("expected coordinator to ignore changes after stop, got %d", len(c.Sections()))
	}
}
