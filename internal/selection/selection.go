// Package selection decides which interface to report on when the user did
// not name one.
package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned for a choice that is not an ordinal in range
// or "all".
var ErrInvalidSelection = errors.New("invalid selection")

// All is the choice that reports every interface in turn.
const All = "all"

// Kind tags a Decision.
type Kind int

const (
	KindNone Kind = iota
	KindSelected
	KindAmbiguous
	KindAll
)

func (k Kind) String() string {
	switch k {
	case KindSelected:
		return "selected"
	case KindAmbiguous:
		return "ambiguous"
	case KindAll:
		return "all"
	}
	return "none"
}

// Decision is the outcome of the selection policy.
type Decision struct {
	Kind Kind
	// Name is set for KindSelected.
	Name string
	// Names is set for KindAmbiguous and KindAll.
	Names []string
}

func Selected(name string) Decision { return Decision{Kind: KindSelected, Name: name} }

func Ambiguous(names []string) Decision {
	return Decision{Kind: KindAmbiguous, Names: append([]string(nil), names...)}
}

func None() Decision { return Decision{Kind: KindNone} }

// Decide applies the policy to the candidate names. With no candidates it
// returns None; with one it selects it without looking at choice; with several
// it needs choice, a 1-based ordinal or "all", and returns Ambiguous while
// choice is empty.
func Decide(names []string, choice string) (Decision, error) {
	switch len(names) {
	case 0:
		return None(), nil
	case 1:
		return Selected(names[0]), nil
	}

	choice = strings.TrimSpace(choice)
	if choice == "" {
		return Ambiguous(names), nil
	}

	if strings.EqualFold(choice, All) {
		return Decision{Kind: KindAll, Names: append([]string(nil), names...)}, nil
	}

	n, err := parseOrdinal(choice)
	if err != nil || n < 1 || n > len(names) {
		return Ambiguous(names), fmt.Errorf("%w: %q, expected 1-%d or %q", ErrInvalidSelection, choice, len(names), All)
	}
	return Selected(names[n-1]), nil
}

// parseOrdinal accepts plain decimal digits only: no sign, no leading zero.
func parseOrdinal(s string) (int, error) {
	if s[0] == '0' {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// Menu renders the ordinal-numbered list shown to the user.
func Menu(names []string) string {
	var b strings.Builder
	for i, name := range names {
		fmt.Fprintf(&b, "%d) %s\n", i+1, name)
	}
	fmt.Fprintf(&b, "Select an interface [1-%d] or %q: ", len(names), All)
	return b.String()
}
