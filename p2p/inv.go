package p2p

import (
	"fmt"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chain"
)

// MaxInvEntries bounds an inv or notfound message.
const MaxInvEntries = 1000

// MaxGetDataEntries bounds a getdata message, which is allowed to
// request more items than a single inv announcement may carry.
const MaxGetDataEntries = 50000

// EncodeInvPayload serializes an inv or notfound body: a var-int count
// followed by that many 36-byte inventory vectors.
func EncodeInvPayload(vecs []chain.InvVect) []byte {
	buf := bytesutil.NewWriteBuffer(9 + 36*len(vecs))
	buf.PutVarInt(uint64(len(vecs)))
	for _, v := range vecs {
		buf.PutBytes(v.Bytes())
	}
	return buf.Bytes()
}

func decodeInvPayload(payload []byte, max uint64) ([]chain.InvVect, error) {
	buf := bytesutil.NewBuffer(payload)
	n, err := buf.GetVarInt()
	if err != nil {
		return nil, fmt.Errorf("p2p: inv: count: %w", err)
	}
	if n > max {
		return nil, coreErr(ErrMalformed, fmt.Sprintf("inv: entry count %d exceeds maximum %d", n, max))
	}
	vecs := make([]chain.InvVect, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := chain.ParseInvVect(buf)
		if err != nil {
			return nil, fmt.Errorf("p2p: inv: entry %d: %w", i, err)
		}
		vecs = append(vecs, v)
	}
	if buf.Remaining() > 0 {
		return nil, coreErr(ErrMalformed, "inv: trailing bytes")
	}
	return vecs, nil
}

// DecodeInvPayload parses an inv or notfound body, capped at
// MaxInvEntries.
func DecodeInvPayload(payload []byte) ([]chain.InvVect, error) {
	return decodeInvPayload(payload, MaxInvEntries)
}

// EncodeGetDataPayload serializes a getdata body, which shares inv's
// wire shape but a looser count cap.
func EncodeGetDataPayload(vecs []chain.InvVect) []byte {
	return EncodeInvPayload(vecs)
}

// DecodeGetDataPayload parses a getdata body, capped at
// MaxGetDataEntries.
func DecodeGetDataPayload(payload []byte) ([]chain.InvVect, error) {
	return decodeInvPayload(payload, MaxGetDataEntries)
}

// EncodeNotFoundPayload serializes a notfound body.
func EncodeNotFoundPayload(vecs []chain.InvVect) []byte {
	return EncodeInvPayload(vecs)
}

// DecodeNotFoundPayload parses a notfound body.
func DecodeNotFoundPayload(payload []byte) ([]chain.InvVect, error) {
	return decodeInvPayload(payload, MaxInvEntries)
}
