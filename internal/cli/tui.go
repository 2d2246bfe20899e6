package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// YearPickerModel - Interactive scope selection
// =============================================================================

// YearSelection holds the result of the year picker. Year zero means the
// whole corpus was selected.
type YearSelection struct {
	Year int
}

// YearPickerModel is the bubbletea model for choosing a corpus scope: the
// whole corpus or one of the available years.
type YearPickerModel struct {
	Years    []int // available years, as reported by the corpus
	Cursor   int
	Selected *YearSelection
}

// NewYearPickerModel creates a picker over the given years. Entry 0 is
// always "all years".
func NewYearPickerModel(years []int) YearPickerModel {
	return YearPickerModel{Years: years}
}

func (m YearPickerModel) Init() tea.Cmd {
	return nil
}

func (m YearPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Years) {
				m.Cursor++
			}
		case "enter":
			sel := YearSelection{}
			if m.Cursor > 0 {
				sel.Year = m.Years[m.Cursor-1]
			}
			m.Selected = &sel
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m YearPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Scope"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	labels := make([]string, 0, len(m.Years)+1)
	labels = append(labels, "all years")
	for _, y := range m.Years {
		labels = append(labels, fmt.Sprintf("%d", y))
	}

	for i, label := range labels {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + label
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(labels))))

	return b.String()
}

// pickYear runs the interactive year picker and returns the chosen scope.
// A zero year means the whole corpus; ok is false when the user quit.
func pickYear(years []int) (int, bool, error) {
	model, err := tea.NewProgram(NewYearPickerModel(years)).Run()
	if err != nil {
		return 0, false, fmt.Errorf("run year picker: %w", err)
	}
	picker, ok := model.(YearPickerModel)
	if !ok || picker.Selected == nil {
		return 0, false, nil
	}
	return picker.Selected.Year, true, nil
}
