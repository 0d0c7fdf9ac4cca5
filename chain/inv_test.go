package chain

import (
	"bytes"
	"testing"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

func TestInvVectRoundTrip(t *testing.T) {
	var h chainhash.Hash
	copy(h[:], bytes.Repeat([]byte{0x77}, 32))
	v := InvVect{Type: InvBlock, Hash: h}

	raw := v.Bytes()
	if len(raw) != 36 {
		t.Fatalf("expected 36-byte encoding, got %d", len(raw))
	}
	back, err := ParseInvVect(bytesutil.NewBuffer(raw))
	if err != nil {
		t.Fatal(err)
	}
	if back != v {
		t.Fatal("round trip mismatch")
	}
}
