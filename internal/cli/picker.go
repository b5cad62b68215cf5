package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wordgrove/wordgrove/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DirectionPickerModel - Interactive direction selection
// =============================================================================

// directionChoice pairs a direction value with a short description for the list.
type directionChoice struct {
	Value       string
	Description string
}

// directionChoices lists the selectable projection directions in display order.
var directionChoices = []directionChoice{
	{string(layout.DirectionTB), "top to bottom, root at the top"},
	{string(layout.DirectionBT), "bottom to top, root at the bottom"},
	{string(layout.DirectionLR), "left to right, root on the left"},
	{string(layout.DirectionRL), "right to left, root on the right"},
	{string(layout.DirectionRadial), "concentric rings, root at the center"},
}

// DirectionPickerModel is the bubbletea model for interactive direction selection.
type DirectionPickerModel struct {
	Choices  []directionChoice
	Cursor   int
	Selected string
}

// NewDirectionPickerModel creates a picker with the cursor on the current direction.
func NewDirectionPickerModel(current string) DirectionPickerModel {
	m := DirectionPickerModel{Choices: directionChoices}
	for i, c := range m.Choices {
		if c.Value == strings.ToUpper(strings.TrimSpace(current)) {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m DirectionPickerModel) Init() tea.Cmd {
	return nil
}

func (m DirectionPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Choices[m.Cursor].Value
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DirectionPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Direction"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, c := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-8s %s", cursor, c.Value, listDimStyle.Render(c.Description))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickDirection runs the interactive picker and returns the chosen direction.
// If the user quits without selecting, the current direction is kept.
func pickDirection(current string) (string, error) {
	model, err := tea.NewProgram(NewDirectionPickerModel(current)).Run()
	if err != nil {
		return "", fmt.Errorf("run direction picker: %w", err)
	}
	m, ok := model.(DirectionPickerModel)
	if !ok || m.Selected == "" {
		return current, nil
	}
	return m.Selected, nil
}
