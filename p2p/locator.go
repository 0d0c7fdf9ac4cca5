package p2p

import (
	"fmt"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

// MaxLocatorHashes bounds the block locator carried by getblocks and
// getheaders.
const MaxLocatorHashes = 500

// LocatorPayload is the shared body shape of getblocks and
// getheaders: a protocol version, a set of locator hashes ordered from
// most to least recent, and an optional stop hash.
type LocatorPayload struct {
	ProtocolVersion uint32
	Locator         []chainhash.Hash
	StopHash        chainhash.Hash
}

func encodeLocatorPayload(p LocatorPayload) ([]byte, error) {
	if len(p.Locator) > MaxLocatorHashes {
		return nil, fmt.Errorf("p2p: locator: %d hashes exceeds maximum %d", len(p.Locator), MaxLocatorHashes)
	}
	buf := bytesutil.NewWriteBuffer(4 + 9 + 32*len(p.Locator) + 32)
	buf.PutUint32LE(p.ProtocolVersion)
	buf.PutVarInt(uint64(len(p.Locator)))
	for _, h := range p.Locator {
		buf.PutBytes(h.ToWire())
	}
	buf.PutBytes(p.StopHash.ToWire())
	return buf.Bytes(), nil
}

func decodeLocatorPayload(command string, payload []byte) (*LocatorPayload, error) {
	buf := bytesutil.NewBuffer(payload)
	version, err := buf.GetUint32LE()
	if err != nil {
		return nil, fmt.Errorf("p2p: %s: protocol_version: %w", command, err)
	}
	n, err := buf.GetVarInt()
	if err != nil {
		return nil, fmt.Errorf("p2p: %s: count: %w", command, err)
	}
	if n > MaxLocatorHashes {
		return nil, coreErr(ErrMalformed, fmt.Sprintf("%s: %d hashes exceeds maximum %d", command, n, MaxLocatorHashes))
	}
	locator := make([]chainhash.Hash, 0, n)
	for i := uint64(0); i < n; i++ {
		wire, err := buf.GetBytes(32)
		if err != nil {
			return nil, fmt.Errorf("p2p: %s: locator hash %d: %w", command, i, err)
		}
		h, err := chainhash.NewHashFromWire(wire)
		if err != nil {
			return nil, fmt.Errorf("p2p: %s: locator hash %d: %w", command, i, err)
		}
		locator = append(locator, h)
	}
	stopWire, err := buf.GetBytes(32)
	if err != nil {
		return nil, fmt.Errorf("p2p: %s: stop_hash: %w", command, err)
	}
	stop, err := chainhash.NewHashFromWire(stopWire)
	if err != nil {
		return nil, fmt.Errorf("p2p: %s: stop_hash: %w", command, err)
	}
	if buf.Remaining() > 0 {
		return nil, coreErr(ErrMalformed, fmt.Sprintf("%s: trailing bytes", command))
	}
	return &LocatorPayload{ProtocolVersion: version, Locator: locator, StopHash: stop}, nil
}

// EncodeGetBlocksPayload serializes a getblocks body.
func EncodeGetBlocksPayload(p LocatorPayload) ([]byte, error) { return encodeLocatorPayload(p) }

// DecodeGetBlocksPayload parses a getblocks body.
func DecodeGetBlocksPayload(payload []byte) (*LocatorPayload, error) {
	return decodeLocatorPayload(CmdGetBlocks, payload)
}

// EncodeGetHeadersPayload serializes a getheaders body.
func EncodeGetHeadersPayload(p LocatorPayload) ([]byte, error) { return encodeLocatorPayload(p) }

// DecodeGetHeadersPayload parses a getheaders body.
func DecodeGetHeadersPayload(payload []byte) (*LocatorPayload, error) {
	return decodeLocatorPayload(CmdGetHeaders, payload)
}
