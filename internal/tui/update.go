package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"ifaddr/internal/selection"
)

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch key := msg.String(); key {
		case "q", "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit

		case "a":
			m.choice = selection.All
			return m, tea.Quit

		case "enter":
			if cursor := m.table.Cursor(); cursor < len(m.names) {
				m.choice = strconv.Itoa(cursor + 1)
			} else {
				m.choice = selection.All
			}
			return m, tea.Quit

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			// Digits beyond the list are ignored rather than rejected.
			if n, _ := strconv.Atoi(key); n <= len(m.names) {
				m.choice = key
				return m, tea.Quit
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
