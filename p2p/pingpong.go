package p2p

import (
	"fmt"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

// EncodePingPayload serializes a ping body: an 8-byte nonce.
func EncodePingPayload(nonce uint64) []byte {
	buf := bytesutil.NewWriteBuffer(8)
	buf.PutUint64LE(nonce)
	return buf.Bytes()
}

// DecodePingPayload parses a ping body.
func DecodePingPayload(payload []byte) (uint64, error) {
	buf := bytesutil.NewBuffer(payload)
	nonce, err := buf.GetUint64LE()
	if err != nil {
		return 0, fmt.Errorf("p2p: ping: nonce: %w", err)
	}
	if buf.Remaining() > 0 {
		return 0, fmt.Errorf("p2p: ping: trailing bytes")
	}
	return nonce, nil
}

// EncodePongPayload serializes a pong body: the nonce echoed from the
// ping being answered.
func EncodePongPayload(nonce uint64) []byte {
	return EncodePingPayload(nonce)
}

// DecodePongPayload parses a pong body.
func DecodePongPayload(payload []byte) (uint64, error) {
	return DecodePingPayload(payload)
}
