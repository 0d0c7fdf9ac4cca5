package p2p

import (
	"fmt"
	"unicode/utf8"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

const (
	// MinSupportedVersion is the lowest peer protocol version this
	// library knows how to decode a version message for. Callers
	// enforce their own configured floor via NetParams.MinPeerVersion.
	MinSupportedVersion = 31402
	// MaxUserAgentBytes bounds the var-string user-agent field this
	// library will allocate for.
	MaxUserAgentBytes = 256
)

// VersionPayload is the body of a version message: protocol
// parameters exchanged before a connection is usable.
type VersionPayload struct {
	ProtocolVersion int32
	Services        uint64
	Timestamp       int64
	AddrRecv        PeerAddress
	AddrFrom        PeerAddress
	Nonce           uint64
	UserAgent       string
	StartHeight     int32
	// Relay is absent on protocol versions below 70001; HasRelay
	// records whether it was present on the wire so a peer's omission
	// is tolerated rather than treated as truncation.
	Relay    bool
	HasRelay bool
}

// EncodeVersionPayload serializes v in wire order.
func EncodeVersionPayload(v VersionPayload) ([]byte, error) {
	if len(v.UserAgent) > MaxUserAgentBytes {
		return nil, coreErr(ErrMalformed, "version: user agent too long")
	}
	if !utf8.ValidString(v.UserAgent) {
		return nil, coreErr(ErrMalformed, "version: user agent must be UTF-8")
	}

	buf := bytesutil.NewWriteBuffer(86 + len(v.UserAgent))
	buf.PutInt32LE(v.ProtocolVersion)
	buf.PutUint64LE(v.Services)
	buf.PutInt64LE(v.Timestamp)
	buf.PutBytes(v.AddrRecv.BytesNoTime())
	buf.PutBytes(v.AddrFrom.BytesNoTime())
	buf.PutUint64LE(v.Nonce)
	buf.PutVarString(v.UserAgent)
	buf.PutInt32LE(v.StartHeight)
	if v.HasRelay {
		if v.Relay {
			buf.PutUint8(1)
		} else {
			buf.PutUint8(0)
		}
	}
	return buf.Bytes(), nil
}

// DecodeVersionPayload parses a version message body. A version below
// protocol 70001 may omit the trailing relay byte; its absence is
// recorded in HasRelay rather than rejected.
func DecodeVersionPayload(payload []byte) (*VersionPayload, error) {
	buf := bytesutil.NewBuffer(payload)
	var v VersionPayload

	proto, err := buf.GetInt32LE()
	if err != nil {
		return nil, fmt.Errorf("p2p: version: protocol_version: %w", err)
	}
	v.ProtocolVersion = proto

	services, err := buf.GetUint64LE()
	if err != nil {
		return nil, fmt.Errorf("p2p: version: services: %w", err)
	}
	v.Services = services

	ts, err := buf.GetInt64LE()
	if err != nil {
		return nil, fmt.Errorf("p2p: version: timestamp: %w", err)
	}
	v.Timestamp = ts

	addrRecv, err := ParsePeerAddressNoTime(buf)
	if err != nil {
		return nil, fmt.Errorf("p2p: version: addr_recv: %w", err)
	}
	v.AddrRecv = addrRecv

	addrFrom, err := ParsePeerAddressNoTime(buf)
	if err != nil {
		return nil, fmt.Errorf("p2p: version: addr_from: %w", err)
	}
	v.AddrFrom = addrFrom

	nonce, err := buf.GetUint64LE()
	if err != nil {
		return nil, fmt.Errorf("p2p: version: nonce: %w", err)
	}
	v.Nonce = nonce

	ua, err := buf.GetVarString(MaxUserAgentBytes)
	if err != nil {
		return nil, fmt.Errorf("p2p: version: user_agent: %w", err)
	}
	if !utf8.ValidString(ua) {
		return nil, coreErr(ErrMalformed, "version: user_agent must be UTF-8")
	}
	v.UserAgent = ua

	startHeight, err := buf.GetInt32LE()
	if err != nil {
		return nil, fmt.Errorf("p2p: version: start_height: %w", err)
	}
	v.StartHeight = startHeight

	if buf.Remaining() > 0 {
		relay, err := buf.GetUint8()
		if err != nil {
			return nil, fmt.Errorf("p2p: version: relay: %w", err)
		}
		if relay != 0 && relay != 1 {
			return nil, coreErr(ErrMalformed, "version: relay must be 0 or 1")
		}
		v.Relay = relay == 1
		v.HasRelay = true
	} else {
		v.Relay = true
	}

	if buf.Remaining() > 0 {
		return nil, coreErr(ErrMalformed, "version: trailing bytes")
	}

	return &v, nil
}
