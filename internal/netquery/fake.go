package netquery

import (
	"context"
	"fmt"
	"sync"

	"ifaddr/internal/models"
)

// Fake is an in-memory Query used in tests.
type Fake struct {
	mu    sync.Mutex
	links []Link
	addrs map[string][]models.Address
	calls int
	fail  map[string]error

	// Err, when set, is returned from every call.
	Err error
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{addrs: make(map[string][]models.Address), fail: make(map[string]error)}
}

// Add registers a link and its addresses. Addresses are given as dotted quads
// and must be valid.
func (f *Fake) Add(name string, state models.State, addrs ...string) *Fake {
	return f.add(Link{Name: name, State: state}, addrs)
}

// AddLoopback registers a loopback link.
func (f *Fake) AddLoopback(name string, addrs ...string) *Fake {
	return f.add(Link{Name: name, State: models.StateUp, Loopback: true}, addrs)
}

func (f *Fake) add(l Link, addrs []string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.links = append(f.links, l)
	for _, s := range addrs {
		a, err := models.ParseAddress(s)
		if err != nil {
			panic(fmt.Errorf("fake link %s: %w", l.Name, err))
		}
		f.addrs[l.Name] = append(f.addrs[l.Name], a)
	}
	return f
}

// Fail makes every query about the named link return err.
func (f *Fake) Fail(name string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fail[name] = err
	return f
}

// Calls returns how many queries have been made.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *Fake) Links(ctx context.Context) ([]Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.Err != nil {
		return nil, f.Err
	}
	return append([]Link(nil), f.links...), nil
}

func (f *Fake) Link(ctx context.Context, name string) (Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.Err != nil {
		return Link{}, f.Err
	}
	if err := f.fail[name]; err != nil {
		return Link{}, err
	}
	l, ok := findLink(f.links, name)
	if !ok {
		return Link{}, fmt.Errorf("%s: %w", name, ErrLinkNotFound)
	}
	return l, nil
}

func (f *Fake) IPv4Addrs(ctx context.Context, name string) ([]models.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.Err != nil {
		return nil, f.Err
	}
	if err := f.fail[name]; err != nil {
		return nil, err
	}
	if _, ok := findLink(f.links, name); !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrLinkNotFound)
	}
	return append([]models.Address(nil), f.addrs[name]...), nil
}
