package chainhash

import (
	"bytes"
	"testing"
)

func TestWireRoundTrip(t *testing.T) {
	natural := make([]byte, Size)
	for i := range natural {
		natural[i] = byte(i)
	}
	h, err := NewHash(natural)
	if err != nil {
		t.Fatal(err)
	}
	wire := h.ToWire()
	back, err := NewHashFromWire(wire)
	if err != nil {
		t.Fatal(err)
	}
	if back != h {
		t.Fatalf("round trip mismatch: got %s want %s", back, h)
	}
	if !bytes.Equal(wire, Reverse(natural)) {
		t.Fatal("wire form is not the byte-reverse of natural order")
	}
}

func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func TestStringRoundTrip(t *testing.T) {
	h, err := NewHashFromStr("000000000000000000005e14e00b81c260d5d63b1d670e0adf9553d19d7f75d4")
	if err != nil {
		t.Fatal(err)
	}
	if h.String() != "000000000000000000005e14e00b81c260d5d63b1d670e0adf9553d19d7f75d4" {
		t.Fatalf("String() = %s", h)
	}
}

func TestZeroHash(t *testing.T) {
	var h Hash
	if !h.IsZero() {
		t.Fatal("default Hash value should be zero")
	}
	if !ZeroHash.IsZero() {
		t.Fatal("ZeroHash should be zero")
	}
}

func TestLess(t *testing.T) {
	small, _ := NewHash(append(make([]byte, 31), 0x01))
	big, _ := NewHash(append(make([]byte, 31), 0x02))
	if !small.Less(big) {
		t.Fatal("expected small < big")
	}
	if big.Less(small) {
		t.Fatal("expected big !< small")
	}
}

func TestNewHashWrongLength(t *testing.T) {
	if _, err := NewHash([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for wrong length")
	}
}
