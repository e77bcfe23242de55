//go:build linux

package netquery

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vishvananda/netlink"

	"ifaddr/internal/models"
)

func TestNetlinkToLink(t *testing.T) {
	for _, tc := range []struct {
		name  string
		attrs netlink.LinkAttrs
		want  Link
	}{
		{
			name:  "up",
			attrs: netlink.LinkAttrs{Name: "eth0", Flags: net.FlagUp | net.FlagBroadcast | net.FlagMulticast},
			want:  Link{Name: "eth0", State: models.StateUp},
		},
		{
			name:  "down",
			attrs: netlink.LinkAttrs{Name: "ifb0", Flags: net.FlagBroadcast},
			want:  Link{Name: "ifb0", State: models.StateDown},
		},
		{
			name:  "loopback flag",
			attrs: netlink.LinkAttrs{Name: "lo", Flags: net.FlagUp | net.FlagLoopback},
			want:  Link{Name: "lo", State: models.StateUp, Loopback: true},
		},
		{
			name:  "loopback encap",
			attrs: netlink.LinkAttrs{Name: "lo", EncapType: "loopback"},
			want:  Link{Name: "lo", State: models.StateDown, Loopback: true},
		},
		{
			name:  "running but administratively down",
			attrs: netlink.LinkAttrs{Name: "wlan0", Flags: net.FlagRunning, OperState: netlink.OperUp},
			want:  Link{Name: "wlan0", State: models.StateDown},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, toLink(&netlink.Device{LinkAttrs: tc.attrs}))
		})
	}
}
