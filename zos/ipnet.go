package zos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"

	"github.com/pkg/errors"
)

const (
	ipv4MaskLen = net.IPv4len
	ipv6MaskLen = net.IPv6len
)

var (
	// ErrMissingIP is returned for an IPNet without address
	ErrMissingIP = errors.New("ip is not set")
	// ErrMaskFamily is returned when the mask length does not match the address family
	ErrMaskFamily = errors.New("mask length does not match address family")
	// ErrMaskNotCanonical is returned when the mask is not a prefix mask
	ErrMaskNotCanonical = errors.New("mask is not a prefix mask")
)

// IPNet is an ip address with its network mask. The mask has 4 bytes for
// ipv4 addresses and 16 bytes for ipv6 addresses.
type IPNet struct {
	IP   net.IP `json:"ip"`
	Mask Octets `json:"mask"`
}

// NewIPNet creates an IPNet from a net.IPNet
func NewIPNet(n net.IPNet) IPNet {
	return IPNet{IP: n.IP.To16(), Mask: Octets(n.Mask)}
}

// ParseIPNet parses a CIDR notation into an IPNet keeping the host part of the address
func ParseIPNet(txt string) (IPNet, error) {
	ip, ipNet, err := net.ParseCIDR(txt)
	if err != nil {
		return IPNet{}, errors.Wrapf(err, "failed to parse ip net '%s'", txt)
	}
	return IPNet{IP: ip.To16(), Mask: Octets(ipNet.Mask)}, nil
}

// MustParseIPNet is like ParseIPNet but panics on error
func MustParseIPNet(txt string) IPNet {
	n, err := ParseIPNet(txt)
	if err != nil {
		panic(err)
	}
	return n
}

// IsV4 checks if the address is an ipv4 address
func (n IPNet) IsV4() bool {
	return n.IP.To4() != nil
}

// Nil checks if the ip net is not set
func (n IPNet) Nil() bool {
	return len(n.IP) == 0 && len(n.Mask) == 0
}

// Check verifies that address and mask belong to the same family
func (n IPNet) Check() error {
	if len(n.IP) == 0 {
		return ErrMissingIP
	}

	want := ipv6MaskLen
	if n.IsV4() {
		want = ipv4MaskLen
	}

	if len(n.Mask) != want {
		return errors.Wrapf(ErrMaskFamily, "got %d bytes for %s", len(n.Mask), n.IP)
	}

	if ones, bits := net.IPMask(n.Mask).Size(); ones == 0 && bits == 0 {
		return ErrMaskNotCanonical
	}

	return nil
}

// IPNet returns the standard library representation
func (n IPNet) IPNet() net.IPNet {
	ip := n.IP
	if v4 := ip.To4(); v4 != nil && len(n.Mask) == ipv4MaskLen {
		ip = v4
	}
	return net.IPNet{IP: ip, Mask: net.IPMask(n.Mask)}
}

// Network returns the masked network of the ip net
func (n IPNet) Network() net.IPNet {
	ipNet := n.IPNet()
	return net.IPNet{IP: ipNet.IP.Mask(ipNet.Mask), Mask: ipNet.Mask}
}

// Overlaps checks if two ip nets share any address
func (n IPNet) Overlaps(o IPNet) bool {
	a, b := n.Network(), o.Network()
	if a.IP == nil || b.IP == nil {
		return false
	}
	return a.Contains(b.IP) || b.Contains(a.IP)
}

// Equal checks if both ip nets hold the same address and mask
func (n IPNet) Equal(o IPNet) bool {
	return n.IP.Equal(o.IP) && bytes.Equal(n.Mask, o.Mask)
}

// String returns the CIDR notation of the ip net
func (n IPNet) String() string {
	if n.Nil() {
		return ""
	}
	ones, bits := net.IPMask(n.Mask).Size()
	if bits == 0 {
		return fmt.Sprintf("%s/%x", n.IP, []byte(n.Mask))
	}
	return fmt.Sprintf("%s/%d", n.IP, ones)
}

// MarshalJSON implements json.Marshaler
func (n IPNet) MarshalJSON() ([]byte, error) {
	type ipNet IPNet
	v := ipNet(n)
	if v.Mask == nil {
		v.Mask = Octets{}
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler. Unknown fields and masks that do
// not fit the address family are rejected.
func (n *IPNet) UnmarshalJSON(data []byte) error {
	type ipNet IPNet
	var v ipNet

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	if len(v.IP) != 0 {
		if err := IPNet(v).Check(); err != nil && !errors.Is(err, ErrMaskNotCanonical) {
			return &FieldError{Field: "mask", Err: err}
		}
	}

	*n = IPNet(v)
	return nil
}
