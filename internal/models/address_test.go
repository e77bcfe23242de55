package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("192.168.1.10")
	require.NoError(t, err)
	assert.Equal(t, Address{192, 168, 1, 10}, a)
	assert.Equal(t, "192.168.1.10", a.String())

	for _, in := range []string{
		"",
		"1.2.3",
		"1.2.3.4.5",
		"172.300.0.1",
		"256.0.0.1",
		"01.2.3.4",
		"1..3.4",
		"-1.2.3.4",
		"+1.2.3.4",
		"a.b.c.d",
		"1.2.3.4 ",
		"1234.1.1.1",
	} {
		_, err := ParseAddress(in)
		assert.ErrorIs(t, err, ErrInvalidAddress, "input %q", in)
	}
}

func TestIsPrivateRanges(t *testing.T) {
	for second := 0; second <= 255; second++ {
		for _, last := range []int{0, 1, 128, 255} {
			ok, err := IsPrivate(fmt.Sprintf("10.%d.%d.%d", second, last, last))
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = IsPrivate(fmt.Sprintf("192.168.%d.%d", second, last))
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = IsPrivate(fmt.Sprintf("172.%d.%d.%d", second, last, last))
			require.NoError(t, err)
			assert.Equal(t, second >= 16 && second <= 31, ok, "172.%d.x.x", second)
		}
	}
}

func TestIsPrivateBoundaries(t *testing.T) {
	for _, tc := range []struct {
		addr    string
		private bool
	}{
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"172.15.255.255", false},
		{"172.16.0.0", true},
		{"172.31.255.255", true},
		{"172.32.0.0", false},
		{"172.90.0.1", false},
		{"172.96.1.1", false},
		{"9.255.255.255", false},
		{"11.0.0.0", false},
		{"192.167.255.255", false},
		{"192.169.0.0", false},
		{"127.0.0.1", false},
	} {
		t.Run(tc.addr, func(t *testing.T) {
			ok, err := IsPrivate(tc.addr)
			require.NoError(t, err)
			assert.Equal(t, tc.private, ok)
		})
	}
}

func TestIsPrivateMalformed(t *testing.T) {
	ok, err := IsPrivate("10.0.0.256")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAddressClass(t *testing.T) {
	assert.Equal(t, ClassPrivate, Address{10, 0, 0, 1}.Class())
	assert.Equal(t, ClassPublic, Address{8, 8, 8, 8}.Class())
	assert.Equal(t, "PRIVATE", ClassPrivate.String())
	assert.Equal(t, "PUBLIC", ClassPublic.String())
}

func TestInterfaceFirstIPv4(t *testing.T) {
	addrs := []Address{{127, 0, 0, 1}, {10, 0, 0, 2}, {10, 0, 0, 3}}
	iface := NewInterface("eth0", StateUp, false, addrs)

	// Mutating the input must not leak into the snapshot.
	addrs[1] = Address{1, 1, 1, 1}

	a, ok := iface.FirstIPv4()
	require.True(t, ok)
	assert.Equal(t, Address{10, 0, 0, 2}, a)

	_, ok = NewInterface("eth1", StateUp, false, nil).FirstIPv4()
	assert.False(t, ok)
}
