package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/termtouch/internal/pool"
	"github.com/Gaurav-Gosain/termtouch/internal/terminal"
	"github.com/Gaurav-Gosain/termtouch/internal/theme"
)

type cellClass int

const (
	cellPlain cellClass = iota
	cellSelected
	cellSelecting
)

func (snap Snapshot) classify(p terminal.Point) cellClass {
	if snap.Selecting.Range.Contains(p) {
		return cellSelecting
	}
	for _, sel := range snap.Selections {
		if sel.Range.Contains(p) {
			return cellSelected
		}
	}
	return cellPlain
}

// Render draws the snapshot with the current theme: the grid inside a
// rounded border with selections highlighted, then a status line and the
// keyboard bar when the keyboard is open.
func (snap Snapshot) Render() string {
	selBg, selFg := theme.SelectionColors()
	ingBg, ingFg := theme.SelectingColors()
	styles := map[cellClass]lipgloss.Style{
		cellPlain:     lipgloss.NewStyle().Foreground(theme.TerminalFg()),
		cellSelected:  lipgloss.NewStyle().Background(selBg).Foreground(selFg),
		cellSelecting: lipgloss.NewStyle().Background(ingBg).Foreground(ingFg),
	}

	lines := make([]string, 0, len(snap.Rows))
	run := pool.GetStringBuilder()
	defer pool.PutStringBuilder(run)

	runes := pool.GetRuneSlice()
	defer pool.PutRuneSlice(runes)

	for i, row := range snap.Rows {
		var line strings.Builder
		*runes = (*runes)[:0]
		for _, r := range row {
			*runes = append(*runes, r)
		}
		class := cellPlain

		for col := range snap.Width {
			r := ' '
			if col < len(*runes) {
				r = (*runes)[col]
			}
			c := snap.classify(terminal.Point{Column: col, Row: snap.Visible + i})
			if c != class && run.Len() > 0 {
				line.WriteString(styles[class].Render(run.String()))
				run.Reset()
			}
			class = c
			run.WriteRune(r)
		}
		if run.Len() > 0 {
			line.WriteString(styles[class].Render(run.String()))
			run.Reset()
		}
		lines = append(lines, line.String())
	}

	grid := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border(snap.KeyboardOpen)).
		Render(strings.Join(lines, "\n"))

	parts := []string{grid, snap.statusLine()}
	if snap.KeyboardOpen {
		parts = append(parts, snap.keyboardBar())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (snap Snapshot) statusLine() string {
	dim := lipgloss.NewStyle().Foreground(theme.StatusFg())
	accent := lipgloss.NewStyle().Foreground(theme.StatusAccent()).Bold(true)

	fields := []string{
		accent.Render(snap.State.String()),
		dim.Render(fmt.Sprintf("row %d/%d", snap.Visible, snap.Max)),
	}
	if snap.Scrolling {
		fields = append(fields, accent.Render("scrolling"))
	}
	if n := len(snap.Selections); n > 0 {
		fields = append(fields, dim.Render(fmt.Sprintf("%d selected", n)))
	}
	return strings.Join(fields, dim.Render(" · "))
}

func (snap Snapshot) keyboardBar() string {
	bg, fg := theme.KeyboardBar()
	caretBg, caretFg := theme.KeyboardCaret()
	bar := lipgloss.NewStyle().Background(bg).Foreground(fg)
	caret := lipgloss.NewStyle().Background(caretBg).Foreground(caretFg)

	text := bar.Render("$ " + snap.KeyboardText)
	// Pad so the bar spans the grid and its border.
	pad := snap.Width + 2 - lipgloss.Width(text) - 1
	if pad < 0 {
		pad = 0
	}
	return text + caret.Render(" ") + bar.Render(strings.Repeat(" ", pad))
}
