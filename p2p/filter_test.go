package p2p

import (
	"bytes"
	"testing"

	"github.com/ScripterRon/bitcoincore/bloom"
)

func TestFilterLoadPayloadRoundTrip(t *testing.T) {
	f, err := bloom.NewFilter(100, 0.01, 5, bloom.UpdateAll)
	if err != nil {
		t.Fatal(err)
	}
	f.Add([]byte("alpha"))
	raw := EncodeFilterLoadPayload(f)
	back, err := DecodeFilterLoadPayload(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Contains([]byte("alpha")) {
		t.Fatal("expected loaded filter to contain added element")
	}
}

func TestFilterAddPayloadRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte{0xab}, 64)
	raw, err := EncodeFilterAddPayload(data)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeFilterAddPayload(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, data) {
		t.Fatal("round trip mismatch")
	}
}

func TestFilterAddPayloadRejectsOversizeElement(t *testing.T) {
	data := bytes.Repeat([]byte{0xab}, MaxFilterAddDataBytes+1)
	if _, err := EncodeFilterAddPayload(data); err == nil {
		t.Fatal("expected oversize element to be rejected")
	}
}
