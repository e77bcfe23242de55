package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAddress is returned for anything that is not a dotted-quad IPv4 address.
var ErrInvalidAddress = errors.New("invalid IPv4 address")

// Class is the derived classification of an Address.
type Class int

const (
	ClassPublic Class = iota
	ClassPrivate
)

func (c Class) String() string {
	if c == ClassPrivate {
		return "PRIVATE"
	}
	return "PUBLIC"
}

// Address is an IPv4 address held as its four octets.
type Address [4]byte

// ParseAddress parses a dotted-quad string such as "192.168.1.10".
// It rejects empty fields, signs, leading zeros and octets above 255.
func ParseAddress(s string) (Address, error) {
	var a Address

	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	for i, p := range parts {
		if p == "" || len(p) > 3 || (len(p) > 1 && p[0] == '0') {
			return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
			}
		}
		v, err := strconv.Atoi(p)
		if err != nil || v > 255 {
			return a, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		a[i] = byte(v)
	}

	return a, nil
}

// AddressFrom4 converts a 4-byte slice, as returned by net.IP.To4, into an Address.
func AddressFrom4(b []byte) (Address, bool) {
	var a Address
	if len(b) != 4 {
		return a, false
	}
	copy(a[:], b)
	return a, true
}

func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a[0], a[1], a[2], a[3])
}

// IsLoopback reports whether the address is in 127.0.0.0/8.
func (a Address) IsLoopback() bool {
	return a[0] == 127
}

// IsPrivate reports whether the address is in one of the RFC1918 blocks.
func (a Address) IsPrivate() bool {
	switch {
	case a[0] == 10:
		return true
	case a[0] == 172 && a[1] >= 16 && a[1] <= 31:
		return true
	case a[0] == 192 && a[1] == 168:
		return true
	}
	return false
}

func (a Address) Class() Class {
	if a.IsPrivate() {
		return ClassPrivate
	}
	return ClassPublic
}

// MarshalText lets addresses appear as strings in JSON reports.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// IsPrivate parses s and reports whether it is an RFC1918 address.
func IsPrivate(s string) (bool, error) {
	a, err := ParseAddress(s)
	if err != nil {
		return false, err
	}
	return a.IsPrivate(), nil
}
