package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/termtouch/internal/config"
	"github.com/Gaurav-Gosain/termtouch/internal/theme"
)

// View returns the rendered view.
func (m *Model) View() tea.View {
	var view tea.View

	content := m.render()
	if m.ShowHelp {
		content = m.renderHelp()
	}
	view.SetContent(lipgloss.Sprint(content))

	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true

	return view
}

func (m *Model) render() string {
	snap := m.session.Snapshot()
	parts := []string{snap.Render()}
	if !snap.KeyboardOpen {
		// Keep the layout steady while the keyboard bar is hidden.
		parts = append(parts, "")
	}
	parts = append(parts, m.hintLine())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) hintLine() string {
	dim := lipgloss.NewStyle().Foreground(theme.HelpGray())

	if m.notice != "" {
		return lipgloss.NewStyle().Foreground(theme.StatusAccent()).Render(m.notice)
	}

	hints := []string{"? gestures", "ctrl+c quit"}
	if m.session.Keyboard.IsOpen() {
		hints = []string{"enter run", "esc dismiss", "right-drag ↑↓ history", "ctrl+c quit"}
	}
	line := dim.Render(strings.Join(hints, " · "))

	if stats := m.recorder.GetStats(); stats.IsRecording {
		rec := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).
			Render(fmt.Sprintf("● REC %d", stats.CommandCount))
		line = rec + "  " + line
	}
	return line
}

// renderHelp lists the gestures that apply to the current keyboard state.
func (m *Model) renderHelp() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.HelpKeyBadge()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	sections := config.FilterGestures(config.GetGestures(m.cfg), m.session.Keyboard.IsOpen())

	var rows [][]string
	for _, section := range sections {
		for _, g := range section.Bindings {
			rows = append(rows, []string{g.Gesture, g.Description})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.HelpBorder())).
		Headers("Gesture", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})

	footer := lipgloss.NewStyle().Foreground(theme.HelpGray()).Italic(true).Render("press ? or esc to close")
	box := lipgloss.JoinVertical(lipgloss.Left, t.Render(), footer)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}
