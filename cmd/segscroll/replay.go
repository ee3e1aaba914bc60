package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/kungfusheep/segscroll"
)

// loadScenario reads the scenario named by the first argument, or the
// built-in one, and applies command line overrides to it.
func loadScenario(e *env, cmd *cli.Command) (*segscroll.Scenario, error) {
	var (
		s   *segscroll.Scenario
		err error
	)
	if name := cmd.Args().First(); len(name) > 0 {
		s, err = segscroll.LoadScenario(name)
	} else {
		s, err = segscroll.ParseScenario(segscroll.DefaultScenario)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load scenario: %w", err)
	}
	if err := applyOverrides(&s.Config, cmd); err != nil {
		return nil, err
	}
	if cmd.Args().Len() > 1 {
		e.log.Warn("Malformed command line, too many scenarios", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	return s, nil
}

func runReplay(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	s, err := loadScenario(e, cmd)
	if err != nil {
		return err
	}
	e.log.Info("Replaying scenario",
		zap.Stringer("policy", s.Policy),
		zap.Stringer("axis", s.Axis),
		zap.Int("sections", len(s.Sections)),
		zap.Int("steps", len(s.Steps)))

	frames, err := s.Run(e.log)
	if err != nil {
		return err
	}
	if cmd.Bool("table") {
		fmt.Println(frameTable(frames, len(s.Sections)))
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(frames); err != nil {
		return fmt.Errorf("unable to write frames: %w", err)
	}
	return enc.Close()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	ownerStyles = map[string]lipgloss.Style{
		"root":      cellStyle.Foreground(lipgloss.Color("12")),
		"container": cellStyle.Foreground(lipgloss.Color("11")),
		"page":      cellStyle.Foreground(lipgloss.Color("10")),
	}
)

func frameTable(frames []segscroll.Frame, sections int) *table.Table {
	headers := []string{"step", "op", "owner", "target", "root"}
	for i := range sections {
		headers = append(headers, fmt.Sprintf("s%d page", i), fmt.Sprintf("s%d offsets", i))
	}
	rows := make([][]string, 0, len(frames))
	for _, f := range frames {
		target := "-"
		if f.Target >= 0 {
			target = strconv.Itoa(f.Target)
		}
		row := []string{strconv.Itoa(f.Step), f.Op, f.Owner, target, num(f.Root)}
		for _, sf := range f.Sections {
			row = append(row, strconv.Itoa(sf.Page), strings.Join([]string{num(sf.Container), num(sf.Offset)}, " / "))
		}
		rows = append(rows, row)
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(rows) {
				if st, ok := ownerStyles[rows[row][2]]; ok {
					return st
				}
			}
			return cellStyle
		})
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
