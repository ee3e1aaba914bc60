package segscroll

// PageSection is a Section made of ScrollViews: one pages container and one
// view per page. A nil page is static and never scrolls.
type PageSection struct {
	start, end float64
	container  *ScrollView
	pages      []*ScrollView
	current    int

	// OnPage is called when the visible page changes.
	OnPage func(index int)
}

// NewPageSection creates a section spanning [start, start+extent) of the
// root content.
func NewPageSection(start, extent float64, container *ScrollView, pages ...*ScrollView) *PageSection {
	return &PageSection{
		start:     start,
		end:       start + extent,
		container: container,
		pages:     pages,
	}
}

func (s *PageSection) Start() float64 { return s.start }
func (s *PageSection) End() float64   { return s.end }

// Move places the section at a new span after a layout pass.
func (s *PageSection) Move(start, extent float64) {
	s.start, s.end = start, start+extent
}

// Container returns the pages container, or nil.
func (s *PageSection) Container() Region {
	if s.container == nil {
		return nil
	}
	return s.container
}

// ActivePage returns the view of the current page, or nil if it is static.
func (s *PageSection) ActivePage() Region {
	if p := s.Page(s.current); p != nil {
		return p
	}
	return nil
}

// Page returns the view of page i, or nil.
func (s *PageSection) Page(i int) *ScrollView {
	if i < 0 || i >= len(s.pages) {
		return nil
	}
	return s.pages[i]
}

// ContainerView returns the concrete container view.
func (s *PageSection) ContainerView() *ScrollView {
	return s.container
}

func (s *PageSection) PagesAxis() Axis {
	if s.container == nil {
		return Horizontal
	}
	return s.container.Axis()
}

func (s *PageSection) CurrentPage() int { return s.current }
func (s *PageSection) PageCount() int   { return len(s.pages) }

// SelectPage shows page i, moving the container without notifying.
func (s *PageSection) SelectPage(i int) {
	if i < 0 || i >= len(s.pages) {
		return
	}
	if s.container != nil {
		a := s.container.Axis()
		off := s.container.Bounds().Clamp(float64(i) * a.Extent(s.container.ViewportSize()))
		s.container.SetOffset(a.WithMain(s.container.Offset(), off))
	}
	s.SettlePage(i)
}

// SettlePage records that the container came to rest on page i.
func (s *PageSection) SettlePage(i int) {
	if i < 0 || i >= len(s.pages) || i == s.current {
		return
	}
	s.current = i
	if s.OnPage != nil {
		s.OnPage(i)
	}
}

// SectionList is an ordered, observable list of sections. Coordinators
// watching it re-enumerate their sections on every change.
type SectionList struct {
	items     []Section
	listeners []func(Change)
}

// Change describes a modification to a SectionList.
type Change struct {
	Type  ChangeType
	Index int
}

type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeUpdate
	ChangeRemove
	ChangeClear
	ChangeSet // full replacement
)

// NewSectionList creates a list holding sections.
func NewSectionList(sections ...Section) *SectionList {
	return &SectionList{items: sections}
}

// Sections returns all sections in order.
func (l *SectionList) Sections() []Section {
	return l.items
}

// Len returns the number of sections.
func (l *SectionList) Len() int {
	return len(l.items)
}

// At returns section i, or nil if out of bounds.
func (l *SectionList) At(i int) Section {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Set replaces all sections.
func (l *SectionList) Set(sections []Section) *SectionList {
	l.items = sections
	l.notify(Change{Type: ChangeSet})
	return l
}

// Add appends a section.
func (l *SectionList) Add(s Section) *SectionList {
	l.items = append(l.items, s)
	l.notify(Change{Type: ChangeAdd, Index: len(l.items) - 1})
	return l
}

// Insert inserts a section at index i.
func (l *SectionList) Insert(i int, s Section) *SectionList {
	i = max(0, min(i, len(l.items)))
	l.items = append(l.items[:i], append([]Section{s}, l.items[i:]...)...)
	l.notify(Change{Type: ChangeAdd, Index: i})
	return l
}

// RemoveAt removes the section at index i.
func (l *SectionList) RemoveAt(i int) *SectionList {
	if i < 0 || i >= len(l.items) {
		return l
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.notify(Change{Type: ChangeRemove, Index: i})
	return l
}

// Relayout reports that section geometry changed without the list changing.
func (l *SectionList) Relayout() {
	l.notify(Change{Type: ChangeUpdate, Index: -1})
}

// Clear removes all sections.
func (l *SectionList) Clear() *SectionList {
	l.items = l.items[:0]
	l.notify(Change{Type: ChangeClear})
	return l
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (l *SectionList) Subscribe(fn func(Change)) func() {
	l.listeners = append(l.listeners, fn)
	idx := len(l.listeners) - 1
	return func() {
		// zero out rather than reorder so other indices stay valid
		l.listeners[idx] = nil
	}
}

func (l *SectionList) notify(c Change) {
	for _, fn := range l.listeners {
		if fn != nil {
			fn(c)
		}
	}
}
