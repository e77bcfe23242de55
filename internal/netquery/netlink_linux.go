//go:build linux

package netquery

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
	"go.uber.org/zap"

	"ifaddr/internal/models"
)

// Netlink queries the kernel directly over rtnetlink.
type Netlink struct {
	logger *zap.Logger
}

// NewNetlink returns the netlink backend.
func NewNetlink(logger *zap.Logger) (*Netlink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Netlink{logger: logger}, nil
}

func toLink(l netlink.Link) Link {
	attrs := l.Attrs()

	state := models.StateDown
	if attrs.Flags&net.FlagUp != 0 {
		state = models.StateUp
	}
	return Link{
		Name:     attrs.Name,
		State:    state,
		Loopback: attrs.Flags&net.FlagLoopback != 0 || attrs.EncapType == "loopback",
	}
}

func (q *Netlink) Links(ctx context.Context) ([]Link, error) {
	q.logger.Debug("listing links")

	nl, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("error listing links: %w", err)
	}

	links := make([]Link, 0, len(nl))
	for _, l := range nl {
		links = append(links, toLink(l))
	}
	return links, nil
}

func (q *Netlink) linkByName(name string) (netlink.Link, error) {
	l, err := netlink.LinkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", name, ErrLinkNotFound)
		}
		return nil, fmt.Errorf("error getting %s interface: %w", name, err)
	}
	return l, nil
}

func (q *Netlink) Link(ctx context.Context, name string) (Link, error) {
	l, err := q.linkByName(name)
	if err != nil {
		return Link{}, err
	}
	return toLink(l), nil
}

func (q *Netlink) IPv4Addrs(ctx context.Context, name string) ([]models.Address, error) {
	l, err := q.linkByName(name)
	if err != nil {
		return nil, err
	}

	nl, err := netlink.AddrList(l, netlink.FAMILY_V4)
	if err != nil {
		return nil, fmt.Errorf("error listing addresses of %s: %w", name, err)
	}
	q.logger.Debug("listed addresses", zap.String("link", name), zap.Int("count", len(nl)))

	addrs := make([]models.Address, 0, len(nl))
	for _, a := range nl {
		if a.IPNet == nil {
			continue
		}
		if v4, ok := models.AddressFrom4(a.IP.To4()); ok {
			addrs = append(addrs, v4)
		}
	}
	return addrs, nil
}
