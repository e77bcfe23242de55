// Package netquery abstracts the operating system's network configuration:
// which links exist, whether they are up, and which IPv4 addresses they carry.
package netquery

import (
	"context"
	"errors"

	"ifaddr/internal/models"
)

var (
	// ErrLinkNotFound is returned when the OS does not know the requested link.
	ErrLinkNotFound = errors.New("link not found")
	// ErrUnsupported is returned by backends that cannot run on this platform.
	ErrUnsupported = errors.New("backend not supported on this platform")
)

// Link is what a backend reports about one network device.
type Link struct {
	Name     string
	State    models.State
	Loopback bool
}

// Query is the narrow capability the resolver needs from the OS.
type Query interface {
	// Links returns every link known to the OS, loopback included.
	Links(ctx context.Context) ([]Link, error)
	// Link returns a single link or ErrLinkNotFound.
	Link(ctx context.Context, name string) (Link, error)
	// IPv4Addrs returns the IPv4 addresses bound to the link, in kernel order.
	IPv4Addrs(ctx context.Context, name string) ([]models.Address, error)
}

func findLink(links []Link, name string) (Link, bool) {
	for _, l := range links {
		if l.Name == name {
			return l, true
		}
	}
	return Link{}, false
}
