package bloom

import (
	"crypto/rand"
	"testing"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

func TestFilterLaw(t *testing.T) {
	f, err := NewFilter(1000, 0.001, 12345, UpdateAll)
	if err != nil {
		t.Fatal(err)
	}
	inserted := make([][]byte, 1000)
	for i := range inserted {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			t.Fatal(err)
		}
		inserted[i] = b
		f.Add(b)
	}
	for _, b := range inserted {
		if !f.Contains(b) {
			t.Fatal("inserted element reported as absent")
		}
	}

	falsePositives := 0
	trials := 10000
	for i := 0; i < trials; i++ {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			t.Fatal(err)
		}
		if f.Contains(b) {
			falsePositives++
		}
	}
	rate := float64(falsePositives) / float64(trials)
	if rate > 0.01 {
		t.Fatalf("false positive rate %.4f exceeds 0.01", rate)
	}
}

func TestFilterClear(t *testing.T) {
	f, err := NewFilter(10, 0.01, 1, UpdateNone)
	if err != nil {
		t.Fatal(err)
	}
	f.Add([]byte("hello"))
	if !f.Contains([]byte("hello")) {
		t.Fatal("expected element present before clear")
	}
	f.Clear()
	if f.Contains([]byte("hello")) {
		t.Fatal("expected element absent after clear")
	}
}

func TestFilterEncodeDecodeRoundTrip(t *testing.T) {
	f, err := NewFilter(2, 0.0005, 0xDEADBEEF, UpdateP2PubkeyOnly)
	if err != nil {
		t.Fatal(err)
	}
	f.Add([]byte("alpha"))
	f.Add([]byte("beta"))

	wire := f.Encode()
	back, err := Decode(bytesutil.NewBuffer(wire))
	if err != nil {
		t.Fatal(err)
	}
	if back.HashFuncs() != f.HashFuncs() || back.Tweak() != f.Tweak() || back.UpdateMode != f.UpdateMode {
		t.Fatal("decoded filter parameters mismatch")
	}
	if !back.Contains([]byte("alpha")) || !back.Contains([]byte("beta")) {
		t.Fatal("decoded filter lost inserted elements")
	}
}

func TestFilterCapsRejected(t *testing.T) {
	oversizedBits := make([]byte, MaxFilterBytes+1)
	if _, err := NewFilterFromBytes(oversizedBits, 1, 0, UpdateNone); err != ErrFilterTooLarge {
		t.Fatalf("expected ErrFilterTooLarge, got %v", err)
	}
	if _, err := NewFilterFromBytes([]byte{0}, MaxHashFuncs+1, 0, UpdateNone); err != ErrTooManyHashFuncs {
		t.Fatalf("expected ErrTooManyHashFuncs, got %v", err)
	}
}
