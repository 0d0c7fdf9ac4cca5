package p2p

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chain"
)

// MaxHeadersEntries bounds a headers message.
const MaxHeadersEntries = 2000

// EncodeHeadersPayload serializes a headers body: a var-int count
// followed by that many (80-byte header, zero transaction count)
// pairs.
func EncodeHeadersPayload(headers []chain.BlockHeader) ([]byte, error) {
	if len(headers) > MaxHeadersEntries {
		return nil, fmt.Errorf("p2p: headers: %d entries exceeds maximum %d", len(headers), MaxHeadersEntries)
	}
	buf := bytesutil.NewWriteBuffer(9 + 81*len(headers))
	buf.PutVarInt(uint64(len(headers)))
	for _, h := range headers {
		buf.PutBytes(h.Bytes())
		buf.PutVarInt(0)
	}
	return buf.Bytes(), nil
}

// DecodeHeadersPayload parses a headers body, validating each header's
// proof of work against maxTarget and rejecting timestamps further
// than two hours past now.
func DecodeHeadersPayload(payload []byte, maxTarget *big.Int, now time.Time) ([]chain.BlockHeader, error) {
	buf := bytesutil.NewBuffer(payload)
	n, err := buf.GetVarInt()
	if err != nil {
		return nil, fmt.Errorf("p2p: headers: count: %w", err)
	}
	if n > MaxHeadersEntries {
		return nil, coreErr(ErrMalformed, fmt.Sprintf("headers: %d entries exceeds maximum %d", n, MaxHeadersEntries))
	}
	out := make([]chain.BlockHeader, 0, n)
	for i := uint64(0); i < n; i++ {
		h, err := chain.ParseBlockHeader(buf, maxTarget, now)
		if err != nil {
			return nil, fmt.Errorf("p2p: headers: entry %d: %w", i, err)
		}
		txCount, err := buf.GetVarInt()
		if err != nil {
			return nil, fmt.Errorf("p2p: headers: entry %d: transaction count: %w", i, err)
		}
		if txCount != 0 {
			return nil, coreErr(ErrMalformed, fmt.Sprintf("headers: entry %d: transaction count must be zero", i))
		}
		out = append(out, *h)
	}
	if buf.Remaining() > 0 {
		return nil, coreErr(ErrMalformed, "headers: trailing bytes")
	}
	return out, nil
}
