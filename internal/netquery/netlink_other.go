//go:build !linux

package netquery

import (
	"context"

	"go.uber.org/zap"

	"ifaddr/internal/models"
)

// Netlink is only available on Linux.
type Netlink struct{}

func NewNetlink(logger *zap.Logger) (*Netlink, error) {
	return nil, ErrUnsupported
}

func (q *Netlink) Links(ctx context.Context) ([]Link, error) { return nil, ErrUnsupported }

func (q *Netlink) Link(ctx context.Context, name string) (Link, error) {
	return Link{}, ErrUnsupported
}

func (q *Netlink) IPv4Addrs(ctx context.Context, name string) ([]models.Address, error) {
	return nil, ErrUnsupported
}
