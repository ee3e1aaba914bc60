package segscroll

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"
)

//go:embed scenario.yaml
var DefaultScenario []byte

// Scenario describes a composite view and a gesture script to replay on it.
type Scenario struct {
	Config   `yaml:",inline"`
	Root     RootSpec      `yaml:"root"`
	Sections []SectionSpec `yaml:"sections"`
	Steps    []Step        `yaml:"steps"`
}

// RootSpec is the geometry of the root list.
type RootSpec struct {
	Width   float64    `yaml:"width"`
	Height  float64    `yaml:"height"`
	Content float64    `yaml:"content"` // along the root axis; grown to fit sections
	Offset  float64    `yaml:"offset"`
	Insets  InsetsSpec `yaml:"insets"`
}

type InsetsSpec struct {
	Top    float64 `yaml:"top"`
	Left   float64 `yaml:"left"`
	Bottom float64 `yaml:"bottom"`
	Right  float64 `yaml:"right"`
}

// SectionSpec is one segment section. The pages container fills the
// section span and the cross extent of the root viewport.
type SectionSpec struct {
	Name      string     `yaml:"name"`
	Start     float64    `yaml:"start"`
	Extent    float64    `yaml:"extent"`
	PagesAxis *Axis      `yaml:"pages_axis"` // default: across the root axis
	Page      int        `yaml:"page"`
	Pages     []PageSpec `yaml:"pages"`
}

// PageSpec is one page. Content is the page's scrollable length along its
// axis; zero makes the page static.
type PageSpec struct {
	Name    string  `yaml:"name"`
	Axis    *Axis   `yaml:"axis"` // default: the root axis
	Content float64 `yaml:"content"`
	Offset  float64 `yaml:"offset"`
}

// Step is one scripted action. Exactly one of the action fields is set.
type Step struct {
	Begin  *PointSpec `yaml:"begin"`
	Move   *PointSpec `yaml:"move"`
	End    bool       `yaml:"end"`
	Fling  *PointSpec `yaml:"fling"`
	Select *Selection `yaml:"select"`
	Layout bool       `yaml:"layout"`

	Repeat int `yaml:"repeat"` // for move, default 1
	Frames int `yaml:"frames"` // for fling, default 120
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p PointSpec) Point() Point { return Point{p.X, p.Y} }

type Selection struct {
	Section int `yaml:"section"`
	Page    int `yaml:"page"`
}

// Op names the action of a step.
func (s Step) Op() string {
	switch {
	case s.Begin != nil:
		return "begin"
	case s.Move != nil:
		return "move"
	case s.End:
		return "end"
	case s.Fling != nil:
		return "fling"
	case s.Select != nil:
		return "select"
	case s.Layout:
		return "layout"
	}
	return ""
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read scenario: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScenario decodes and validates a scenario. Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	s := &Scenario{Config: DefaultConfig()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports every problem in the scenario at once.
func (s *Scenario) Validate() error {
	err := s.Config.Validate()
	if s.Root.Width <= 0 || s.Root.Height <= 0 {
		err = multierr.Append(err, errors.New("root: width and height must be positive"))
	}
	prevEnd := 0.0
	for i, sec := range s.Sections {
		if sec.Extent <= 0 {
			err = multierr.Append(err, fmt.Errorf("sections[%d]: extent must be positive", i))
		}
		if sec.Start < prevEnd {
			err = multierr.Append(err, fmt.Errorf("sections[%d]: starts at %v inside the previous section", i, sec.Start))
		}
		prevEnd = sec.Start + sec.Extent
		if len(sec.Pages) == 0 {
			err = multierr.Append(err, fmt.Errorf("sections[%d]: needs at least one page", i))
		}
		if sec.Page < 0 || (len(sec.Pages) > 0 && sec.Page >= len(sec.Pages)) {
			err = multierr.Append(err, fmt.Errorf("sections[%d]: page %d out of range", i, sec.Page))
		}
		for j, pg := range sec.Pages {
			if pg.Content < 0 {
				err = multierr.Append(err, fmt.Errorf("sections[%d].pages[%d]: content must not be negative", i, j))
			}
		}
	}
	for i, st := range s.Steps {
		n := 0
		for _, set := range [...]bool{st.Begin != nil, st.Move != nil, st.End, st.Fling != nil, st.Select != nil, st.Layout} {
			if set {
				n++
			}
		}
		if n != 1 {
			err = multierr.Append(err, fmt.Errorf("steps[%d]: want exactly one action, got %d", i, n))
		}
		if sel := st.Select; sel != nil && (sel.Section < 0 || sel.Section >= len(s.Sections)) {
			err = multierr.Append(err, fmt.Errorf("steps[%d]: select section %d out of range", i, sel.Section))
		}
	}
	return err
}

// Harness is a built scenario: the views, the coordinator wired to them and
// a gesture driver.
type Harness struct {
	Coordinator *Coordinator
	Root        *ScrollView
	Sections    []*PageSection
	List        *SectionList
	Gesture     *Gesture

	unwatch func()
}

// Build creates the views described by the scenario and wires a
// coordinator to them.
func (s *Scenario) Build(log *zap.Logger) (*Harness, error) {
	ax := s.Axis
	viewport := Size{W: s.Root.Width, H: s.Root.Height}
	cross := ax.Cross().Extent(viewport)

	content := s.Root.Content
	for _, sec := range s.Sections {
		content = max(content, sec.Start+sec.Extent)
	}
	root := NewScrollView("root", ax, viewport, sizeAlong(ax, content, cross))
	root.SetInsets(EdgeInsets(s.Root.Insets))
	root.SetOffset(ax.WithMain(Point{}, root.Bounds().Clamp(s.Root.Offset)))

	c := s.Config.NewCoordinator(log)
	if err := c.Attach(root); err != nil {
		return nil, fmt.Errorf("unable to attach root: %w", err)
	}

	h := &Harness{Coordinator: c, Root: root, List: NewSectionList()}
	views := []*ScrollView{root}
	for i, spec := range s.Sections {
		pagesAxis := ax.Cross()
		if spec.PagesAxis != nil {
			pagesAxis = *spec.PagesAxis
		}
		frame := sizeAlong(ax, spec.Extent, cross)
		pageExtent := pagesAxis.Extent(frame)
		ct := NewScrollView(nameOr(spec.Name, fmt.Sprintf("section%d", i)), pagesAxis, frame,
			sizeAlong(pagesAxis, pageExtent*float64(len(spec.Pages)), pagesAxis.Cross().Extent(frame)))
		views = append(views, ct)

		pages := make([]*ScrollView, len(spec.Pages))
		for j, ps := range spec.Pages {
			if ps.Content <= 0 {
				continue
			}
			pa := ax
			if ps.Axis != nil {
				pa = *ps.Axis
			}
			pg := NewScrollView(nameOr(ps.Name, fmt.Sprintf("%s.page%d", ct.Name, j)), pa, frame,
				sizeAlong(pa, ps.Content, pa.Cross().Extent(frame)))
			pg.SetOffset(pa.WithMain(Point{}, pg.Bounds().Clamp(ps.Offset)))
			pages[j] = pg
			views = append(views, pg)
		}
		sec := NewPageSection(spec.Start, spec.Extent, ct, pages...)
		sec.SelectPage(spec.Page)
		h.Sections = append(h.Sections, sec)
		h.List.Add(sec)
	}

	Bind(c, views...)
	h.unwatch = c.Watch(h.List)
	h.Gesture = NewGesture(c, root)
	return h, nil
}

// Close stops the coordinator from watching the section list.
func (h *Harness) Close() {
	if h.unwatch != nil {
		h.unwatch()
		h.unwatch = nil
	}
	h.Coordinator.Detach()
}

// Frame is the state of a harness after one step.
type Frame struct {
	Step     int            `yaml:"step"`
	Op       string         `yaml:"op"`
	Root     float64        `yaml:"root"`
	Owner    string         `yaml:"owner"`
	Target   int            `yaml:"target"`
	Sections []SectionFrame `yaml:"sections"`
}

type SectionFrame struct {
	Container float64 `yaml:"container"`
	Page      int     `yaml:"page"`
	Offset    float64 `yaml:"offset"` // active page offset, zero when static
}

// Snapshot captures the harness state.
func (h *Harness) Snapshot() Frame {
	t, _ := h.Coordinator.Target()
	f := Frame{
		Root:   h.Root.Position(),
		Owner:  h.Coordinator.Permissions().String(),
		Target: t,
	}
	for _, sec := range h.Sections {
		sf := SectionFrame{Page: sec.CurrentPage()}
		if ct := sec.ContainerView(); ct != nil {
			sf.Container = ct.Position()
		}
		if pg := sec.Page(sec.CurrentPage()); pg != nil {
			sf.Offset = pg.Position()
		}
		f.Sections = append(f.Sections, sf)
	}
	return f
}

// Apply performs one step.
func (h *Harness) Apply(st Step) {
	switch {
	case st.Begin != nil:
		h.Gesture.Begin(st.Begin.Point())
	case st.Move != nil:
		for range max(1, st.Repeat) {
			h.Gesture.Move(st.Move.X, st.Move.Y)
		}
	case st.End:
		h.Gesture.End()
	case st.Fling != nil:
		frames := st.Frames
		if frames <= 0 {
			frames = 120
		}
		h.Gesture.Fling(st.Fling.X, st.Fling.Y, frames)
	case st.Select != nil:
		h.Sections[st.Select.Section].SelectPage(st.Select.Page)
		h.List.Relayout()
	case st.Layout:
		h.List.Relayout()
	}
}

// Run replays the scenario's steps and returns a frame per step.
func (s *Scenario) Run(log *zap.Logger) ([]Frame, error) {
	h, err := s.Build(log)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	frames := make([]Frame, 0, len(s.Steps))
	for i, st := range s.Steps {
		h.Apply(st)
		f := h.Snapshot()
		f.Step, f.Op = i, st.Op()
		frames = append(frames, f)
	}
	return frames, nil
}

func sizeAlong(a Axis, main, cross float64) Size {
	if a == Vertical {
		return Size{W: cross, H: main}
	}
	return Size{W: main, H: cross}
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
