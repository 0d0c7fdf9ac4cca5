package p2p

import (
	"fmt"
	"unicode/utf8"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

// MaxRejectReasonBytes bounds the human-readable reason string.
const MaxRejectReasonBytes = 111

// RejectPayload explains why a peer dropped a previously sent
// message. Hash is only present when Message is "tx" or "block".
type RejectPayload struct {
	Message string
	Code    byte
	Reason  string
	Hash    *chainhash.Hash
}

// EncodeRejectPayload serializes a reject body.
func EncodeRejectPayload(r RejectPayload) ([]byte, error) {
	if r.Message == "" {
		return nil, coreErr(ErrMalformed, "reject: empty message")
	}
	if len(r.Reason) > MaxRejectReasonBytes {
		return nil, coreErr(ErrMalformed, "reject: reason too long")
	}
	if !utf8.ValidString(r.Reason) {
		return nil, coreErr(ErrMalformed, "reject: reason must be UTF-8")
	}
	buf := bytesutil.NewWriteBuffer(9 + len(r.Message) + 1 + 9 + len(r.Reason) + 32)
	buf.PutVarString(r.Message)
	buf.PutUint8(r.Code)
	buf.PutVarString(r.Reason)
	if r.Hash != nil {
		if r.Message != CmdTx && r.Message != CmdBlock {
			return nil, coreErr(ErrInvalid, "reject: hash only valid for tx or block")
		}
		buf.PutBytes(r.Hash.ToWire())
	}
	return buf.Bytes(), nil
}

// DecodeRejectPayload parses a reject body, reading the trailing hash
// field only when Message is "tx" or "block".
func DecodeRejectPayload(payload []byte) (*RejectPayload, error) {
	buf := bytesutil.NewBuffer(payload)
	msg, err := buf.GetVarString(CommandBytes)
	if err != nil {
		return nil, fmt.Errorf("p2p: reject: message: %w", err)
	}
	code, err := buf.GetUint8()
	if err != nil {
		return nil, fmt.Errorf("p2p: reject: code: %w", err)
	}
	reason, err := buf.GetVarString(MaxRejectReasonBytes)
	if err != nil {
		return nil, fmt.Errorf("p2p: reject: reason: %w", err)
	}
	if !utf8.ValidString(reason) {
		return nil, coreErr(ErrMalformed, "reject: reason must be UTF-8")
	}
	r := &RejectPayload{Message: msg, Code: code, Reason: reason}
	if msg == CmdTx || msg == CmdBlock {
		wire, err := buf.GetBytes(32)
		if err != nil {
			return nil, fmt.Errorf("p2p: reject: hash: %w", err)
		}
		h, err := chainhash.NewHashFromWire(wire)
		if err != nil {
			return nil, fmt.Errorf("p2p: reject: hash: %w", err)
		}
		r.Hash = &h
	}
	if buf.Remaining() > 0 {
		return nil, coreErr(ErrMalformed, "reject: trailing bytes")
	}
	return r, nil
}
