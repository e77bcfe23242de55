package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m PickerModel) View() string {
	if m.choice != "" || m.aborted {
		return ""
	}

	title := titleStyle.Render("Multiple network interfaces found")
	body := infoStyle.Render(m.table.View())
	help := helpStyle.Render("↑/↓ move • enter select • 1-9 pick • a all • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, help) + "\n"
}
