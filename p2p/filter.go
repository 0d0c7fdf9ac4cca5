package p2p

import (
	"fmt"

	"github.com/ScripterRon/bitcoincore/bloom"
	"github.com/ScripterRon/bitcoincore/bytesutil"
)

// MaxFilterAddDataBytes bounds a single filteradd element.
const MaxFilterAddDataBytes = 520

// EncodeFilterLoadPayload serializes a filterload body.
func EncodeFilterLoadPayload(f *bloom.Filter) []byte {
	return f.Encode()
}

// DecodeFilterLoadPayload parses a filterload body.
func DecodeFilterLoadPayload(payload []byte) (*bloom.Filter, error) {
	buf := bytesutil.NewBuffer(payload)
	f, err := bloom.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("p2p: filterload: %w", err)
	}
	if buf.Remaining() > 0 {
		return nil, coreErr(ErrMalformed, "filterload: trailing bytes")
	}
	return f, nil
}

// EncodeFilterAddPayload serializes a filteradd body: a var-int
// length followed by the raw element.
func EncodeFilterAddPayload(data []byte) ([]byte, error) {
	if len(data) > MaxFilterAddDataBytes {
		return nil, fmt.Errorf("p2p: filteradd: element exceeds %d bytes", MaxFilterAddDataBytes)
	}
	buf := bytesutil.NewWriteBuffer(9 + len(data))
	buf.PutVarBytes(data)
	return buf.Bytes(), nil
}

// DecodeFilterAddPayload parses a filteradd body.
func DecodeFilterAddPayload(payload []byte) ([]byte, error) {
	buf := bytesutil.NewBuffer(payload)
	data, err := buf.GetVarBytes(MaxFilterAddDataBytes)
	if err != nil {
		return nil, fmt.Errorf("p2p: filteradd: %w", err)
	}
	if buf.Remaining() > 0 {
		return nil, coreErr(ErrMalformed, "filteradd: trailing bytes")
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
