package p2p

import (
	"fmt"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/ecc"
)

// MaxAlertPayloadBytes bounds the opaque signed alert payload.
const MaxAlertPayloadBytes = 8192

// AlertPayload is the legacy broadcast-alert message: an opaque,
// serialized payload plus a signature over it. This library treats
// the inner payload as opaque bytes; callers that need the structured
// fields (id, expiration, cancel set, min/max version, comment) decode
// them separately once the signature has checked out.
type AlertPayload struct {
	Payload   []byte
	Signature []byte
}

// EncodeAlertPayload serializes an alert body.
func EncodeAlertPayload(a AlertPayload) []byte {
	buf := bytesutil.NewWriteBuffer(9 + len(a.Payload) + 9 + len(a.Signature))
	buf.PutVarBytes(a.Payload)
	buf.PutVarBytes(a.Signature)
	return buf.Bytes()
}

// DecodeAlertPayload parses an alert body.
func DecodeAlertPayload(payload []byte) (*AlertPayload, error) {
	buf := bytesutil.NewBuffer(payload)
	body, err := buf.GetVarBytes(MaxAlertPayloadBytes)
	if err != nil {
		return nil, fmt.Errorf("p2p: alert: payload: %w", err)
	}
	sig, err := buf.GetVarBytes(520)
	if err != nil {
		return nil, fmt.Errorf("p2p: alert: signature: %w", err)
	}
	if buf.Remaining() > 0 {
		return nil, coreErr(ErrMalformed, "alert: trailing bytes")
	}
	a := &AlertPayload{Payload: make([]byte, len(body)), Signature: make([]byte, len(sig))}
	copy(a.Payload, body)
	copy(a.Signature, sig)
	return a, nil
}

// Verify reports whether Signature is a valid DER signature over the
// double-SHA-256 of Payload under the given trusted key. The dispatcher
// passes every decoded alert to Listener.OnAlert without verifying it;
// the listener calls Verify to decide whether to act on it.
func (a *AlertPayload) Verify(key *ecc.PublicKey) bool {
	digest := bytesutil.DoubleSha256(a.Payload)
	sig, err := ecc.ParseDERSignature(a.Signature)
	if err != nil {
		return false
	}
	return ecc.Verify(key, digest, sig)
}
