package reporting

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifaddr/internal/models"
)

func sampleReport() *Report {
	r := &Report{}
	r.Add(LabelChromeOS, "eth0", models.Address{100, 115, 92, 25})
	r.Warnf("interface %s is DOWN", "wlan0")
	r.Add(LabelVM, "lxdbr0", models.Address{10, 0, 3, 1})
	r.Errorf("no IPv4 address found on %s", "eth1")
	return r
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport()))

	assert.Equal(t, `Chrome OS IP Address: 100.115.92.25
Warning: interface wlan0 is DOWN
Linux VM IP Address: 10.0.3.1
Error: no IPv4 address found on eth1
`, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var doc struct {
		Entries []struct {
			Label     string `json:"label"`
			Interface string `json:"interface"`
			Address   string `json:"address"`
			Class     string `json:"class"`
		} `json:"entries"`
		Warnings []string `json:"warnings"`
		Errors   []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "100.115.92.25", doc.Entries[0].Address)
	assert.Equal(t, "PUBLIC", doc.Entries[0].Class)
	assert.Equal(t, "PRIVATE", doc.Entries[1].Class)
	assert.Equal(t, []string{"interface wlan0 is DOWN"}, doc.Warnings)
	assert.Equal(t, []string{"no IPv4 address found on eth1"}, doc.Errors)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &Report{}))
	assert.JSONEq(t, `{"entries":[],"warnings":[],"errors":[]}`, buf.String())
}

func TestInterfaceLabel(t *testing.T) {
	assert.Equal(t, "eth0 IP Address", InterfaceLabel("eth0"))
}
