// Package reporting collects the resolver's findings and writes them as text
// lines or a JSON document.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"ifaddr/internal/models"
)

const (
	LabelChromeOS = "Chrome OS IP Address"
	LabelVM       = "Linux VM IP Address"
)

// InterfaceLabel is the label used when every interface is reported in turn.
func InterfaceLabel(name string) string {
	return name + " IP Address"
}

type kind int

const (
	kindEntry kind = iota
	kindWarning
	kindError
)

type event struct {
	kind    kind
	entry   Entry
	message string
}

// Entry is one discovered address.
type Entry struct {
	Label     string         `json:"label"`
	Interface string         `json:"interface"`
	Address   models.Address `json:"address"`
	Class     string         `json:"class"`
}

// Report keeps findings in the order they happened.
type Report struct {
	events []event
}

// Add records an address.
func (r *Report) Add(label, iface string, addr models.Address) {
	r.events = append(r.events, event{kind: kindEntry, entry: Entry{
		Label:     label,
		Interface: iface,
		Address:   addr,
		Class:     addr.Class().String(),
	}})
}

func (r *Report) Warnf(format string, args ...any) {
	r.events = append(r.events, event{kind: kindWarning, message: fmt.Sprintf(format, args...)})
}

func (r *Report) Errorf(format string, args ...any) {
	r.events = append(r.events, event{kind: kindError, message: fmt.Sprintf(format, args...)})
}

func (r *Report) Entries() []Entry {
	var out []Entry
	for _, e := range r.events {
		if e.kind == kindEntry {
			out = append(out, e.entry)
		}
	}
	return out
}

func (r *Report) messages(k kind) []string {
	out := []string{}
	for _, e := range r.events {
		if e.kind == k {
			out = append(out, e.message)
		}
	}
	return out
}

func (r *Report) Warnings() []string { return r.messages(kindWarning) }
func (r *Report) Errors() []string   { return r.messages(kindError) }

// WriteText prints one line per finding. Colours are only used when w is a
// terminal that supports them.
func WriteText(w io.Writer, r *Report) error {
	re := lipgloss.NewRenderer(w)
	warnStyle := re.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle := re.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	addrStyle := re.NewStyle().Bold(true)

	for _, e := range r.events {
		var line string
		switch e.kind {
		case kindEntry:
			line = fmt.Sprintf("%s: %s", e.entry.Label, addrStyle.Render(e.entry.Address.String()))
		case kindWarning:
			line = warnStyle.Render("Warning: " + e.message)
		case kindError:
			line = errStyle.Render("Error: " + e.message)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type document struct {
	Entries  []Entry  `json:"entries"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// WriteJSON prints the whole report as a single indented JSON document.
func WriteJSON(w io.Writer, r *Report) error {
	doc := document{
		Entries:  r.Entries(),
		Warnings: r.Warnings(),
		Errors:   r.Errors(),
	}
	if doc.Entries == nil {
		doc.Entries = []Entry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
