package models

// State is the administrative state of an interface.
type State int

const (
	StateUnknown State = iota
	StateUp
	StateDown
)

func (s State) String() string {
	switch s {
	case StateUp:
		return "UP"
	case StateDown:
		return "DOWN"
	}
	return "UNKNOWN"
}

// Interface is a point-in-time snapshot of a network interface.
type Interface struct {
	name      string
	state     State
	loopback  bool
	addresses []Address
}

// NewInterface builds a snapshot. The address slice is copied.
func NewInterface(name string, state State, loopback bool, addrs []Address) Interface {
	return Interface{
		name:      name,
		state:     state,
		loopback:  loopback,
		addresses: append([]Address(nil), addrs...),
	}
}

func (i Interface) Name() string     { return i.name }
func (i Interface) State() State     { return i.state }
func (i Interface) IsLoopback() bool { return i.loopback }
func (i Interface) IsUp() bool       { return i.state == StateUp }

// Addresses returns a copy of the bound IPv4 addresses.
func (i Interface) Addresses() []Address {
	return append([]Address(nil), i.addresses...)
}

// FirstIPv4 returns the first non-loopback address.
func (i Interface) FirstIPv4() (Address, bool) {
	for _, a := range i.addresses {
		if !a.IsLoopback() {
			return a, true
		}
	}
	return Address{}, false
}
