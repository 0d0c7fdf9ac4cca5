package p2p

import (
	"testing"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/ecc"
)

func TestAlertPayloadRoundTripAndVerify(t *testing.T) {
	key, err := ecc.GeneratePrivateKey(true)
	if err != nil {
		t.Fatal(err)
	}
	body := []byte("urgent: upgrade before block 600000")
	digest := bytesutil.DoubleSha256(body)
	sig := ecc.Sign(key, digest)

	a := AlertPayload{Payload: body, Signature: sig.DER()}
	raw := EncodeAlertPayload(a)
	back, err := DecodeAlertPayload(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Verify(key.PubKey()) {
		t.Fatal("expected signature to verify")
	}
}

func TestAlertPayloadRejectsTamperedPayload(t *testing.T) {
	key, err := ecc.GeneratePrivateKey(true)
	if err != nil {
		t.Fatal(err)
	}
	body := []byte("original")
	digest := bytesutil.DoubleSha256(body)
	sig := ecc.Sign(key, digest)

	a := AlertPayload{Payload: []byte("tampered"), Signature: sig.DER()}
	if a.Verify(key.PubKey()) {
		t.Fatal("expected tampered payload to fail verification")
	}
}
