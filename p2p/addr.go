package p2p

import (
	"fmt"
	"time"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

// MaxAddrEntriesOnWire bounds how many entries this library will
// decode from a single addr message.
const MaxAddrEntriesOnWire = 1000

// MaxAddrEntriesToSend caps how many entries EncodeAddrPayload accepts,
// a tighter outbound courtesy limit than the inbound decode cap.
const MaxAddrEntriesToSend = 250

// addrStaleAfter is how old an address's timestamp may be before it is
// no longer worth building into or accepting out of an addr message.
const addrStaleAfter = 15 * time.Minute

// EncodeAddrPayload serializes an addr body: a var-int count followed
// by that many 30-byte time-prefixed address entries. Entries flagged
// Static, and entries older than fifteen minutes relative to now, are
// dropped before encoding rather than relayed. It rejects lists still
// longer than MaxAddrEntriesToSend after that filtering.
func EncodeAddrPayload(addrs []PeerAddress, now time.Time) ([]byte, error) {
	cutoff := now.Add(-addrStaleAfter).Unix()
	filtered := make([]PeerAddress, 0, len(addrs))
	for _, a := range addrs {
		if a.Static {
			continue
		}
		if int64(a.Time) < cutoff {
			continue
		}
		filtered = append(filtered, a)
	}
	if len(filtered) > MaxAddrEntriesToSend {
		return nil, coreErr(ErrMalformed, fmt.Sprintf("addr: %d entries exceeds send limit %d", len(filtered), MaxAddrEntriesToSend))
	}
	buf := bytesutil.NewWriteBuffer(9 + peerAddressBytes*len(filtered))
	buf.PutVarInt(uint64(len(filtered)))
	for _, a := range filtered {
		buf.PutBytes(a.Bytes())
	}
	return buf.Bytes(), nil
}

// DecodeAddrPayload parses an addr body, capped at
// MaxAddrEntriesOnWire, then discards any entry older than fifteen
// minutes relative to now.
func DecodeAddrPayload(payload []byte, now time.Time) ([]PeerAddress, error) {
	buf := bytesutil.NewBuffer(payload)
	n, err := buf.GetVarInt()
	if err != nil {
		return nil, fmt.Errorf("p2p: addr: count: %w", err)
	}
	if n > MaxAddrEntriesOnWire {
		return nil, coreErr(ErrMalformed, fmt.Sprintf("addr: %d entries exceeds maximum %d", n, MaxAddrEntriesOnWire))
	}
	cutoff := now.Add(-addrStaleAfter).Unix()
	out := make([]PeerAddress, 0, n)
	for i := uint64(0); i < n; i++ {
		a, err := ParsePeerAddress(buf)
		if err != nil {
			return nil, fmt.Errorf("p2p: addr: entry %d: %w", i, err)
		}
		if int64(a.Time) < cutoff {
			continue
		}
		out = append(out, a)
	}
	if buf.Remaining() > 0 {
		return nil, coreErr(ErrMalformed, "addr: trailing bytes")
	}
	return out, nil
}
