// Package discovery resolves interfaces and their IPv4 addresses from a
// netquery backend.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"ifaddr/internal/models"
	"ifaddr/internal/netquery"
)

var (
	ErrInterfaceNotFound = errors.New("interface not found")
	ErrInterfaceDown     = errors.New("interface is down")
	ErrNoAddressFound    = errors.New("no IPv4 address found on interface")
	ErrNoInterfacesFound = errors.New("no network interfaces found")
)

// InterfaceError ties a failure to the interface it concerns.
type InterfaceError struct {
	Name string
	Err  error
}

func (e *InterfaceError) Error() string { return e.Name + ": " + e.Err.Error() }

func (e *InterfaceError) Unwrap() error { return e.Err }

// Resolver answers questions about host interfaces. It holds no state between
// calls; every call queries the backend again.
type Resolver struct {
	query  netquery.Query
	logger *zap.Logger
}

// New returns a Resolver backed by q.
func New(q netquery.Query, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{query: q, logger: logger}
}

func wrapNotFound(name string, err error) error {
	if errors.Is(err, netquery.ErrLinkNotFound) {
		return &InterfaceError{Name: name, Err: ErrInterfaceNotFound}
	}
	return err
}

// ListInterfaces returns the names of all non-loopback interfaces, sorted.
func (r *Resolver) ListInterfaces(ctx context.Context) ([]string, error) {
	links, err := r.query.Links(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list interfaces: %w", err)
	}

	names := make([]string, 0, len(links))
	for _, l := range links {
		if l.Loopback {
			continue
		}
		names = append(names, l.Name)
	}
	sort.Strings(names)

	r.logger.Debug("enumerated interfaces", zap.Strings("names", names))

	if len(names) == 0 {
		return nil, ErrNoInterfacesFound
	}
	return names, nil
}

// State returns StateUp or StateDown for the named interface.
func (r *Resolver) State(ctx context.Context, name string) (models.State, error) {
	l, err := r.query.Link(ctx, name)
	if err != nil {
		return models.StateUnknown, wrapNotFound(name, err)
	}
	if l.State == models.StateUp {
		return models.StateUp, nil
	}
	return models.StateDown, nil
}

// IPv4 returns the first non-loopback IPv4 address of the interface. ok is
// false, with a nil error, when the interface has none.
func (r *Resolver) IPv4(ctx context.Context, name string) (addr models.Address, ok bool, err error) {
	addrs, err := r.query.IPv4Addrs(ctx, name)
	if err != nil {
		return models.Address{}, false, wrapNotFound(name, err)
	}

	for _, a := range addrs {
		if !a.IsLoopback() {
			return a, true, nil
		}
	}
	return models.Address{}, false, nil
}

// Snapshot builds an immutable view of one interface: its state and, when it
// is up, its IPv4 addresses.
func (r *Resolver) Snapshot(ctx context.Context, name string) (models.Interface, error) {
	l, err := r.query.Link(ctx, name)
	if err != nil {
		return models.Interface{}, wrapNotFound(name, err)
	}

	if l.State != models.StateUp {
		return models.NewInterface(l.Name, models.StateDown, l.Loopback, nil), nil
	}

	addrs, err := r.query.IPv4Addrs(ctx, name)
	if err != nil {
		return models.Interface{}, wrapNotFound(name, err)
	}
	return models.NewInterface(l.Name, models.StateUp, l.Loopback, addrs), nil
}

// Lookup checks state and extracts the address in the order callers must
// follow: a DOWN interface yields ErrInterfaceDown without touching its
// addresses, an address-less one yields ErrNoAddressFound.
func (r *Resolver) Lookup(ctx context.Context, name string) (models.Address, error) {
	state, err := r.State(ctx, name)
	if err != nil {
		return models.Address{}, err
	}
	if state != models.StateUp {
		return models.Address{}, &InterfaceError{Name: name, Err: ErrInterfaceDown}
	}

	a, ok, err := r.IPv4(ctx, name)
	if err != nil {
		return models.Address{}, err
	}
	if !ok {
		return models.Address{}, &InterfaceError{Name: name, Err: ErrNoAddressFound}
	}

	r.logger.Debug("resolved address", zap.String("interface", name), zap.Stringer("address", a))
	return a, nil
}
