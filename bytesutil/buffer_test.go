package bytesutil

import (
	"bytes"
	"testing"
)

func TestVarIntBoundaries(t *testing.T) {
	cases := []struct {
		name string
		v    uint64
		want []byte
	}{
		{"single-byte-max", 0xFC, []byte{0xFC}},
		{"u16-min", 0xFD, []byte{0xFD, 0xFD, 0x00}},
		{"u16-max", 0xFFFF, []byte{0xFD, 0xFF, 0xFF}},
		{"u32-min", 0x10000, []byte{0xFE, 0x00, 0x00, 0x01, 0x00}},
		{"u64-min", 0x100000000, []byte{0xFF, 0, 0, 0, 0, 1, 0, 0, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EncodeVarInt(c.v)
			if !bytes.Equal(got, c.want) {
				t.Fatalf("EncodeVarInt(%d) = %x, want %x", c.v, got, c.want)
			}
			if len(got) != VarIntLen(c.v) {
				t.Fatalf("VarIntLen(%d) = %d, want %d", c.v, VarIntLen(c.v), len(got))
			}
			buf := NewBuffer(got)
			back, err := buf.GetVarInt()
			if err != nil {
				t.Fatalf("GetVarInt: %v", err)
			}
			if back != c.v {
				t.Fatalf("round trip: got %d, want %d", back, c.v)
			}
		})
	}
}

func TestVarIntRejectsNonMinimal(t *testing.T) {
	cases := [][]byte{
		{0xFD, 0x00, 0x00}, // 0 encoded as 3 bytes
		{0xFD, 0xFC, 0x00}, // 0xFC encoded as 3 bytes
		{0xFE, 0xFF, 0xFF, 0x00, 0x00}, // 0xFFFF encoded as 5 bytes
		{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00}, // 0xFFFFFFFF encoded as 9 bytes
	}
	for _, raw := range cases {
		buf := NewBuffer(raw)
		if _, err := buf.GetVarInt(); err != ErrNonMinimalVarInt {
			t.Fatalf("GetVarInt(%x): expected ErrNonMinimalVarInt, got %v", raw, err)
		}
	}
}

func TestGetterEndOfData(t *testing.T) {
	buf := NewBuffer([]byte{0x01, 0x02})
	if _, err := buf.GetUint32LE(); err != ErrEndOfData {
		t.Fatalf("expected ErrEndOfData, got %v", err)
	}
}

func TestVarBytesRoundTrip(t *testing.T) {
	w := NewWriteBuffer(0)
	w.PutVarBytes([]byte("hello, bitcoin"))
	r := NewBuffer(w.Bytes())
	got, err := r.GetVarBytes(MaxVarIntPrefixedLen)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello, bitcoin" {
		t.Fatalf("got %q", got)
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	w := NewWriteBuffer(0)
	w.PutUint8(0xAB)
	w.PutUint16LE(0x1234)
	w.PutUint32LE(0xDEADBEEF)
	w.PutUint64LE(0x0123456789ABCDEF)
	w.PutInt32LE(-1)

	r := NewBuffer(w.Bytes())
	if v, _ := r.GetUint8(); v != 0xAB {
		t.Fatalf("uint8 = %x", v)
	}
	if v, _ := r.GetUint16LE(); v != 0x1234 {
		t.Fatalf("uint16 = %x", v)
	}
	if v, _ := r.GetUint32LE(); v != 0xDEADBEEF {
		t.Fatalf("uint32 = %x", v)
	}
	if v, _ := r.GetUint64LE(); v != 0x0123456789ABCDEF {
		t.Fatalf("uint64 = %x", v)
	}
	if v, _ := r.GetInt32LE(); v != -1 {
		t.Fatalf("int32 = %d", v)
	}
}

func TestDoubleSha256AndHash160(t *testing.T) {
	// Known vector: double-SHA256("") is the empty-string checksum used
	// by the envelope for a zero-length payload.
	d := DoubleSha256(nil)
	if got := d[:4]; !bytes.Equal(got, []byte{0x5d, 0xf6, 0xe0, 0xe2}) {
		t.Fatalf("double-sha256('') checksum = %x, want 5df6e0e2", got)
	}
}

func TestReverse(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	out := Reverse(in)
	if !bytes.Equal(out, []byte{4, 3, 2, 1}) {
		t.Fatalf("Reverse = %v", out)
	}
	if in[0] != 1 {
		t.Fatal("Reverse mutated its input")
	}
}

func TestBase58CheckRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0x11}, 20)
	s := Base58CheckEncode(0x00, payload)
	ver, got, err := Base58CheckDecode(s)
	if err != nil {
		t.Fatal(err)
	}
	if ver != 0x00 || !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: ver=%x payload=%x", ver, got)
	}
}

func TestBase58CheckDetectsCorruption(t *testing.T) {
	s := Base58CheckEncode(0x00, []byte{1, 2, 3, 4})
	corrupted := []byte(s)
	if corrupted[0] == 'a' {
		corrupted[0] = 'b'
	} else {
		corrupted[0] = 'a'
	}
	if _, _, err := Base58CheckDecode(string(corrupted)); err == nil {
		t.Fatal("expected checksum error")
	}
}
