package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"ifaddr/internal/models"
	"ifaddr/internal/netquery"
)

func newResolver(t *testing.T, q netquery.Query) *Resolver {
	return New(q, zaptest.NewLogger(t))
}

func TestListInterfaces(t *testing.T) {
	q := netquery.NewFake().
		Add("wlan0", models.StateUp, "192.168.1.5").
		AddLoopback("lo", "127.0.0.1").
		Add("eth0", models.StateDown)

	names, err := newResolver(t, q).ListInterfaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"eth0", "wlan0"}, names)
}

func TestListInterfacesEmpty(t *testing.T) {
	q := netquery.NewFake().AddLoopback("lo", "127.0.0.1")

	_, err := newResolver(t, q).ListInterfaces(context.Background())
	assert.ErrorIs(t, err, ErrNoInterfacesFound)
}

func TestListInterfacesBackendError(t *testing.T) {
	q := netquery.NewFake()
	q.Err = errors.New("permission denied")

	_, err := newResolver(t, q).ListInterfaces(context.Background())
	assert.ErrorIs(t, err, q.Err)
	assert.NotErrorIs(t, err, ErrNoInterfacesFound)
}

func TestState(t *testing.T) {
	q := netquery.NewFake().
		Add("eth0", models.StateUp).
		Add("eth1", models.StateDown).
		Add("eth2", models.StateUnknown)
	r := newResolver(t, q)

	for name, want := range map[string]models.State{
		"eth0": models.StateUp,
		"eth1": models.StateDown,
		"eth2": models.StateDown,
	} {
		got, err := r.State(context.Background(), name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	_, err := r.State(context.Background(), "eth9")
	assert.ErrorIs(t, err, ErrInterfaceNotFound)
}

func TestIPv4(t *testing.T) {
	q := netquery.NewFake().
		Add("eth0", models.StateUp, "127.0.0.2", "100.115.92.2", "100.115.92.3").
		Add("eth1", models.StateUp)
	r := newResolver(t, q)

	a, ok, err := r.IPv4(context.Background(), "eth0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "100.115.92.2", a.String())

	_, ok, err = r.IPv4(context.Background(), "eth1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = r.IPv4(context.Background(), "eth9")
	assert.ErrorIs(t, err, ErrInterfaceNotFound)
}

func TestLookup(t *testing.T) {
	q := netquery.NewFake().
		Add("eth0", models.StateUp, "10.0.0.4").
		Add("eth1", models.StateDown, "10.0.0.5").
		Add("eth2", models.StateUp)
	r := newResolver(t, q)

	a, err := r.Lookup(context.Background(), "eth0")
	require.NoError(t, err)
	assert.Equal(t, models.Address{10, 0, 0, 4}, a)

	_, err = r.Lookup(context.Background(), "eth1")
	assert.ErrorIs(t, err, ErrInterfaceDown)

	_, err = r.Lookup(context.Background(), "eth2")
	assert.ErrorIs(t, err, ErrNoAddressFound)

	_, err = r.Lookup(context.Background(), "eth3")
	assert.ErrorIs(t, err, ErrInterfaceNotFound)
}

func TestSnapshotIsFresh(t *testing.T) {
	q := netquery.NewFake().Add("eth0", models.StateUp, "10.0.0.4")
	r := newResolver(t, q)

	_, err := r.Snapshot(context.Background(), "eth0")
	require.NoError(t, err)
	_, err = r.Snapshot(context.Background(), "eth0")
	require.NoError(t, err)

	// link + addresses, twice: nothing is cached
	assert.Equal(t, 4, q.Calls())
}

func TestSnapshotDownSkipsAddresses(t *testing.T) {
	q := netquery.NewFake().Add("eth1", models.StateDown, "10.0.0.5")

	iface, err := newResolver(t, q).Snapshot(context.Background(), "eth1")
	require.NoError(t, err)
	assert.False(t, iface.IsUp())
	assert.Empty(t, iface.Addresses())
	assert.Equal(t, 1, q.Calls())
}

func TestLookupDownSkipsAddresses(t *testing.T) {
	q := netquery.NewFake().Add("eth1", models.StateDown, "10.0.0.5")

	_, err := newResolver(t, q).Lookup(context.Background(), "eth1")
	assert.ErrorIs(t, err, ErrInterfaceDown)
	assert.Equal(t, 1, q.Calls())
}

func TestInterfaceError(t *testing.T) {
	q := netquery.NewFake().Add("eth1", models.StateDown)

	_, err := newResolver(t, q).Lookup(context.Background(), "eth1")

	var ie *InterfaceError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "eth1", ie.Name)
	assert.Equal(t, "eth1: interface is down", err.Error())
}
