package p2p

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

// PeerAddress is a single network address entry as carried inside a
// version message (no leading time field) or an addr message (with a
// leading time field). Addresses are always written on the wire in
// their 16-byte IPv6 form; an IPv4 address is mapped into the low four
// bytes of that form.
//
// Static and Connected are local address-book bookkeeping, not part of
// the wire encoding: Static marks a manually configured peer that
// should never be relayed onward, and Connected marks one this process
// currently has a live connection to.
type PeerAddress struct {
	Time      uint32 // seconds since epoch; zero when embedded in a version message
	Services  uint64
	IP        net.IP
	Port      uint16
	Static    bool
	Connected bool
}

const peerAddressBytes = 30 // time(4) + services(8) + ip(16) + port(2)

// Bytes encodes the addr-message form: a leading 4-byte time field
// followed by the fixed 26-byte body.
func (a PeerAddress) Bytes() []byte {
	out := make([]byte, peerAddressBytes)
	binary.LittleEndian.PutUint32(out[0:4], a.Time)
	a.encodeBody(out[4:])
	return out
}

// BytesNoTime encodes the version-message form: the 26-byte body with
// no time field.
func (a PeerAddress) BytesNoTime() []byte {
	out := make([]byte, peerAddressBytes-4)
	a.encodeBody(out)
	return out
}

func (a PeerAddress) encodeBody(out []byte) {
	binary.LittleEndian.PutUint64(out[0:8], a.Services)
	ip := a.IP.To16()
	if ip == nil {
		ip = make([]byte, 16)
	}
	copy(out[8:24], ip)
	binary.BigEndian.PutUint16(out[24:26], a.Port)
}

// ParsePeerAddress decodes the addr-message form (with a leading time
// field) from buf.
func ParsePeerAddress(buf *bytesutil.Buffer) (PeerAddress, error) {
	var a PeerAddress
	t, err := buf.GetUint32LE()
	if err != nil {
		return a, fmt.Errorf("p2p: peer address time: %w", err)
	}
	a.Time = t
	body, err := buf.GetBytes(peerAddressBytes - 4)
	if err != nil {
		return a, fmt.Errorf("p2p: peer address body: %w", err)
	}
	return decodeBody(a.Time, body)
}

// ParsePeerAddressNoTime decodes the version-message form (no time
// field) from buf.
func ParsePeerAddressNoTime(buf *bytesutil.Buffer) (PeerAddress, error) {
	body, err := buf.GetBytes(peerAddressBytes - 4)
	if err != nil {
		return PeerAddress{}, fmt.Errorf("p2p: peer address body: %w", err)
	}
	return decodeBody(0, body)
}

func decodeBody(t uint32, body []byte) (PeerAddress, error) {
	if len(body) != peerAddressBytes-4 {
		return PeerAddress{}, fmt.Errorf("p2p: short peer address body")
	}
	services := binary.LittleEndian.Uint64(body[0:8])
	ip := make(net.IP, 16)
	copy(ip, body[8:24])
	port := binary.BigEndian.Uint16(body[24:26])
	return PeerAddress{Time: t, Services: services, IP: ip, Port: port}, nil
}

// String renders the address in host:port form, unwrapping an
// IPv4-in-IPv6 mapped address back to dotted-quad.
func (a PeerAddress) String() string {
	ip := a.IP
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	return fmt.Sprintf("%s:%d", ip.String(), a.Port)
}
