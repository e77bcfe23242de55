package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifaddr/internal/selection"
)

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	prompt := LinePrompter(strings.NewReader("2\n"), &out)

	choice, err := prompt([]string{"eth0", "wlan0"})
	require.NoError(t, err)
	assert.Equal(t, "2", choice)
	assert.Equal(t, selection.Menu([]string{"eth0", "wlan0"}), out.String())
}

func TestLinePrompterNoNewline(t *testing.T) {
	choice, err := LinePrompter(strings.NewReader("all"), &bytes.Buffer{})([]string{"eth0", "wlan0"})
	require.NoError(t, err)
	assert.Equal(t, "all", choice)
}

func TestLinePrompterEOF(t *testing.T) {
	_, err := LinePrompter(strings.NewReader(""), &bytes.Buffer{})([]string{"eth0", "wlan0"})
	assert.ErrorIs(t, err, selection.ErrInvalidSelection)
}
