// Package backend selects a netquery implementation by name.
package backend

import (
	"fmt"

	"go.uber.org/zap"

	"ifaddr/internal/config"
	"ifaddr/internal/netquery"
	"ifaddr/internal/netquery/pcapquery"
)

// New constructs the named backend.
func New(name string, logger *zap.Logger) (netquery.Query, error) {
	switch name {
	case config.BackendNetlink, "":
		q, err := netquery.NewNetlink(logger)
		if err != nil {
			return nil, err
		}
		return q, nil
	case config.BackendIPRoute:
		return netquery.NewIPRoute(logger), nil
	case config.BackendPcap:
		return pcapquery.New(logger), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
