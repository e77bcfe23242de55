package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"ifaddr/internal/selection"
	"ifaddr/internal/tui"
)

// LinePrompter prints the numbered menu to out and reads one line from in.
func LinePrompter(in io.Reader, out io.Writer) Prompter {
	reader := bufio.NewReader(in)

	return func(names []string) (string, error) {
		if _, err := fmt.Fprint(out, selection.Menu(names)); err != nil {
			return "", err
		}

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("%w: no answer read: %v", selection.ErrInvalidSelection, err)
		}
		return strings.TrimSpace(line), nil
	}
}

// TerminalPrompter runs the interactive picker when stdin and stderr are
// terminals and falls back to LinePrompter otherwise.
func TerminalPrompter(stdin, stderr *os.File) Prompter {
	if isatty.IsTerminal(stdin.Fd()) && isatty.IsTerminal(stderr.Fd()) {
		return func(names []string) (string, error) {
			return tui.Pick(names, stdin, stderr)
		}
	}
	return LinePrompter(stdin, stderr)
}
