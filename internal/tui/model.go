package tui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ifaddr/internal/selection"
)

// ErrAborted is returned when the user quits the picker without choosing.
var ErrAborted = fmt.Errorf("%w: aborted", selection.ErrInvalidSelection)

// PickerModel lets the user choose one interface, or all of them.
type PickerModel struct {
	names   []string
	table   table.Model
	choice  string
	aborted bool
}

func NewPickerModel(names []string) PickerModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Interface", Width: 20},
	}

	rows := make([]table.Row, 0, len(names)+1)
	for i, name := range names {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), name})
	}
	rows = append(rows, table.Row{"a", selection.All})

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		// header and its border take two lines
		table.WithHeight(min(len(rows), 10)+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return PickerModel{
		names: append([]string(nil), names...),
		table: t,
	}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Choice returns the selection in the form selection.Decide accepts: a 1-based
// ordinal or "all". ok is false until the user has chosen.
func (m PickerModel) Choice() (choice string, ok bool) {
	return m.choice, m.choice != "" && !m.aborted
}

// Pick runs the picker on the given terminal streams and returns the choice.
func Pick(names []string, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(NewPickerModel(names), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running picker: %w", err)
	}

	choice, ok := final.(PickerModel).Choice()
	if !ok {
		return "", ErrAborted
	}
	return choice, nil
}
