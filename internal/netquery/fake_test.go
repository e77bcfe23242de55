package netquery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifaddr/internal/models"
)

func TestFake(t *testing.T) {
	f := NewFake().
		AddLoopback("lo", "127.0.0.1").
		Add("eth0", models.StateUp, "10.0.0.2")

	links, err := f.Links(context.Background())
	require.NoError(t, err)
	assert.Len(t, links, 2)

	addrs, err := f.IPv4Addrs(context.Background(), "eth0")
	require.NoError(t, err)
	assert.Equal(t, []models.Address{{10, 0, 0, 2}}, addrs)

	_, err = f.Link(context.Background(), "wlan0")
	assert.ErrorIs(t, err, ErrLinkNotFound)

	f.Err = errors.New("netlink socket closed")
	_, err = f.Links(context.Background())
	assert.ErrorIs(t, err, f.Err)
	assert.Equal(t, 4, f.Calls())

	f.Err = nil
	broken := errors.New("device busy")
	f.Fail("eth0", broken)
	_, err = f.Link(context.Background(), "eth0")
	assert.ErrorIs(t, err, broken)
	_, err = f.IPv4Addrs(context.Background(), "eth0")
	assert.ErrorIs(t, err, broken)
	_, err = f.Links(context.Background())
	assert.NoError(t, err)

	assert.Panics(t, func() { NewFake().Add("eth1", models.StateUp, "300.1.1.1") })
}
