package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestYearPickerSelectsAll(t *testing.T) {
	m := NewYearPickerModel([]int{2025, 2024})

	next, _ := m.Update(key("enter"))
	picker := next.(YearPickerModel)

	if picker.Selected == nil || picker.Selected.Year != 0 {
		t.Errorf("Selected = %+v, want all-years (0)", picker.Selected)
	}
}

func TestYearPickerSelectsYear(t *testing.T) {
	m := NewYearPickerModel([]int{2025, 2024})

	var model tea.Model = m
	model, _ = model.(YearPickerModel).Update(key("down"))
	model, _ = model.(YearPickerModel).Update(key("down"))
	model, _ = model.(YearPickerModel).Update(key("enter"))

	picker := model.(YearPickerModel)
	if picker.Selected == nil || picker.Selected.Year != 2024 {
		t.Errorf("Selected = %+v, want 2024", picker.Selected)
	}
}

func TestYearPickerCursorBounds(t *testing.T) {
	m := NewYearPickerModel([]int{2025})

	var model tea.Model = m
	model, _ = model.(YearPickerModel).Update(key("up"))
	if model.(YearPickerModel).Cursor != 0 {
		t.Error("cursor must not go above the first entry")
	}

	model, _ = model.(YearPickerModel).Update(key("down"))
	model, _ = model.(YearPickerModel).Update(key("down"))
	if model.(YearPickerModel).Cursor != 1 {
		t.Errorf("cursor = %d, want clamped to last entry", model.(YearPickerModel).Cursor)
	}
}

func TestYearPickerQuitWithoutSelection(t *testing.T) {
	m := NewYearPickerModel([]int{2025})
	next, cmd := m.Update(key("esc"))

	if next.(YearPickerModel).Selected != nil {
		t.Error("esc must not select")
	}
	if cmd == nil {
		t.Error("esc should quit")
	}
}

func TestYearPickerView(t *testing.T) {
	m := NewYearPickerModel([]int{2025, 2024})
	view := m.View()

	for _, want := range []string{"Select Scope", "all years", "2025", "2024"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
