// Package pcapquery lists interfaces through libpcap's device enumeration.
package pcapquery

import (
	"context"
	"fmt"
	"net"

	"github.com/google/gopacket/pcap"
	"go.uber.org/zap"

	"ifaddr/internal/models"
	"ifaddr/internal/netquery"
)

// Flags from pcap/pcap.h; gopacket exposes the raw bitmask only.
const (
	ifLoopback = 0x00000001
	ifUp       = 0x00000002
)

// Devices returns the devices libpcap can see.
type Devices func() ([]pcap.Interface, error)

// Known reports whether the kernel has a network interface of that name.
type Known func(name string) bool

func kernelKnows(name string) bool {
	_, err := net.InterfaceByName(name)
	return err == nil
}

// Query implements netquery.Query on top of pcap.FindAllDevs.
type Query struct {
	devices Devices
	known   Known
	logger  *zap.Logger
}

func New(logger *zap.Logger) *Query {
	return NewWithDevices(logger, pcap.FindAllDevs, kernelKnows)
}

// NewWithDevices replaces device enumeration and the kernel lookup, for tests.
func NewWithDevices(logger *zap.Logger, devices Devices, known Known) *Query {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Query{devices: devices, known: known, logger: logger}
}

// interfaces drops capture-only devices (any, nflog, nfqueue, dbus-*, usbmon*,
// bluetooth-monitor) that libpcap lists but the kernel has no interface for.
func (q *Query) interfaces() ([]pcap.Interface, error) {
	devs, err := q.devices()
	if err != nil {
		return nil, fmt.Errorf("could not list devices: %v", err)
	}

	out := make([]pcap.Interface, 0, len(devs))
	for _, d := range devs {
		if !q.known(d.Name) {
			q.logger.Debug("skipping capture-only device", zap.String("device", d.Name))
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func toLink(d pcap.Interface) netquery.Link {
	state := models.StateDown
	if d.Flags&ifUp != 0 {
		state = models.StateUp
	}
	return netquery.Link{
		Name:     d.Name,
		State:    state,
		Loopback: d.Flags&ifLoopback != 0,
	}
}

func (q *Query) find(name string) (pcap.Interface, error) {
	devs, err := q.interfaces()
	if err != nil {
		return pcap.Interface{}, err
	}
	for _, d := range devs {
		if d.Name == name {
			return d, nil
		}
	}
	return pcap.Interface{}, fmt.Errorf("%s: %w", name, netquery.ErrLinkNotFound)
}

func (q *Query) Links(ctx context.Context) ([]netquery.Link, error) {
	devs, err := q.interfaces()
	if err != nil {
		return nil, err
	}
	q.logger.Debug("pcap devices", zap.Int("count", len(devs)))

	links := make([]netquery.Link, 0, len(devs))
	for _, d := range devs {
		links = append(links, toLink(d))
	}
	return links, nil
}

func (q *Query) Link(ctx context.Context, name string) (netquery.Link, error) {
	d, err := q.find(name)
	if err != nil {
		return netquery.Link{}, err
	}
	return toLink(d), nil
}

func (q *Query) IPv4Addrs(ctx context.Context, name string) ([]models.Address, error) {
	d, err := q.find(name)
	if err != nil {
		return nil, err
	}

	var addrs []models.Address
	for _, a := range d.Addresses {
		if v4, ok := models.AddressFrom4(a.IP.To4()); ok {
			addrs = append(addrs, v4)
		}
	}
	return addrs, nil
}
