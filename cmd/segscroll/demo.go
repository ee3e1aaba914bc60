package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/kungfusheep/segscroll"
)

const statusLines = 2

var policies = []segscroll.BouncePolicy{
	segscroll.RootOwnsOverscroll,
	segscroll.PageOwnsOverscrollAtRootEdge,
	segscroll.PageOwnsOverscrollOnTouch,
}

// cell styles, indexed by cellKind and page
var (
	blankStyle  = lipgloss.NewStyle()
	fillerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pageStyles  = []lipgloss.Style{
		lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("255")),
		lipgloss.NewStyle().Background(lipgloss.Color("58")).Foreground(lipgloss.Color("255")),
		lipgloss.NewStyle().Background(lipgloss.Color("89")).Foreground(lipgloss.Color("255")),
		lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("255")),
	}
	statusStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const (
	styleBlank = -2
	styleFill  = -1
)

func runDemo(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("demo needs a terminal")
	}
	s, err := loadScenario(e, cmd)
	if err != nil {
		return err
	}
	if s.Axis != segscroll.Vertical {
		return fmt.Errorf("demo draws vertical root lists only, scenario scrolls %s", s.Axis)
	}
	if cmd.Bool("fit") {
		if w, h, err := terminalSize(os.Stdout); err == nil {
			s.Root.Width = float64(w)
			s.Root.Height = float64(max(1, h-statusLines))
		} else {
			e.log.Warn("Unable to get terminal size, keeping scenario size", zap.Error(err))
		}
	}

	m := &demo{s: s, log: e.log}
	if err := m.rebuild(); err != nil {
		return err
	}
	defer func() { m.h.Close() }()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("demo failed: %w", err)
	}
	return m.err
}

// demo draws a scenario's composite view and feeds mouse drags to its
// gesture driver.
type demo struct {
	s   *segscroll.Scenario
	h   *segscroll.Harness
	log *zap.Logger
	err error

	last segscroll.Point // previous mouse position
	vel  segscroll.Point // latest drag delta, used as release velocity
}

func (m *demo) rebuild() error {
	if m.h != nil {
		m.h.Close()
	}
	h, err := m.s.Build(m.log)
	if err != nil {
		return err
	}
	m.h = h
	m.log.Info("Composite built", zap.Stringer("policy", m.s.Policy), zap.Int("sections", len(h.Sections)))
	return nil
}

func (m *demo) Init() tea.Cmd {
	return nil
}

func (m *demo) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.turnPage(-1)
		case "right", "l":
			m.turnPage(1)
		case "p":
			m.s.Policy = policies[(int(m.s.Policy)+1)%len(policies)]
			fallthrough
		case "r":
			if err := m.rebuild(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

func (m *demo) mouse(msg tea.MouseMsg) {
	g := m.h.Gesture
	p := segscroll.Point{X: float64(msg.X), Y: float64(msg.Y)}
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress {
			return
		}
		// wheel up reveals earlier content, as a finger moving down would
		dy := 1.0
		if msg.Button == tea.MouseButtonWheelDown {
			dy = -1
		}
		g.Begin(p)
		g.Move(0, dy)
		g.Fling(0, dy, 4)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		g.Begin(p)
		m.last, m.vel = p, segscroll.Point{}
	case msg.Action == tea.MouseActionMotion && g.Active():
		d := p.Sub(m.last)
		m.last = p
		if d != (segscroll.Point{}) {
			g.Move(d.X, d.Y)
			m.vel = d
		}
	case msg.Action == tea.MouseActionRelease && g.Active():
		g.Fling(m.vel.X, m.vel.Y, 30)
	}
}

// turnPage pages the first visible section.
func (m *demo) turnPage(d int) {
	vis := m.h.Coordinator.VisibleSections()
	if len(vis) == 0 {
		return
	}
	sec := m.h.Sections[vis[0]]
	sec.SelectPage(sec.CurrentPage() + d)
	m.h.List.Relayout()
}

func (m *demo) View() string {
	width, height := int(m.s.Root.Width), int(m.s.Root.Height)
	var b strings.Builder
	for y := range height {
		m.row(&b, y, width)
		b.WriteByte('\n')
	}
	b.WriteString(m.status(width))
	return b.String()
}

// row renders one viewport line, grouping runs of cells that share a style.
func (m *demo) row(b *strings.Builder, y, width int) {
	var run []rune
	cur := styleBlank
	flush := func() {
		if len(run) > 0 {
			b.WriteString(styleOf(cur).Render(string(run)))
			run = run[:0]
		}
	}
	for x := range width {
		r, st := m.cell(x, y)
		if st != cur {
			flush()
			cur = st
		}
		run = append(run, r)
	}
	flush()
}

func styleOf(i int) lipgloss.Style {
	switch i {
	case styleBlank:
		return blankStyle
	case styleFill:
		return fillerStyle
	}
	return pageStyles[i%len(pageStyles)]
}

// cell resolves what the root viewport shows at (x, y) by walking down
// through the section, its pages container and the page.
func (m *demo) cell(x, y int) (rune, int) {
	root := m.h.Root
	p := root.Offset().Add(segscroll.Point{X: float64(x), Y: float64(y)})
	if p.Y < 0 || p.Y >= root.ContentSize().H {
		return ' ', styleBlank
	}
	for i, sec := range m.h.Sections {
		if p.Y < sec.Start() || p.Y >= sec.End() {
			continue
		}
		ct := sec.ContainerView()
		a := ct.Axis()
		c := segscroll.Point{X: p.X, Y: p.Y - sec.Start()}.Add(ct.Offset())
		extent := a.Extent(ct.ViewportSize())
		j := int(math.Floor(a.Main(c) / extent))
		if j < 0 || j >= sec.PageCount() {
			return ' ', styleBlank
		}
		q := a.WithMain(c, a.Main(c)-float64(j)*extent)
		st := i + j
		label := m.s.Sections[i].Pages[j].Name
		if label == "" {
			label = "page " + strconv.Itoa(j)
		}
		pg := sec.Page(j)
		if pg == nil {
			return glyph(label+" (static)", int(q.Y), int(q.X)), st
		}
		q = q.Add(pg.Offset())
		pa := pg.Axis()
		if pa.Main(q) < 0 || pa.Main(q) >= pa.Extent(pg.ContentSize()) {
			return ' ', st
		}
		return glyph(label, int(math.Floor(q.Y)), int(math.Floor(q.X))), st
	}
	return glyph("row", int(math.Floor(p.Y)), int(math.Floor(p.X))), styleFill
}

// glyph is the character at col of a labelled content line. A ruler every
// ten columns makes sideways motion visible.
func glyph(label string, line, col int) rune {
	text := []rune(" " + runewidth.Truncate(label, 24, "…") + " " + strconv.Itoa(line))
	if col >= 0 && col < len(text) {
		return text[col]
	}
	if col%10 == 0 {
		return '|'
	}
	return ' '
}

func (m *demo) status(width int) string {
	c := m.h.Coordinator
	target := "-"
	if t, ok := c.Target(); ok {
		target = strconv.Itoa(t)
	}
	lock := "-"
	if a, ok := c.LockedAxis(); ok {
		lock = a.String()
	}
	line := fmt.Sprintf(" policy %s  owner %s  target %s  lock %s  root %.1f",
		c.Policy(), c.Permissions(), target, lock, m.h.Root.Position())
	help := " drag: mouse  pages: left/right  policy: p  reset: r  quit: q"
	return statusStyle.Render(runewidth.FillRight(runewidth.Truncate(line, width, "…"), width)) + "\n" +
		helpStyle.Render(runewidth.Truncate(help, width, "…"))
}
