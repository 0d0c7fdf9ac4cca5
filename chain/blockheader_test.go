package chain

import (
	"math/big"
	"testing"
	"time"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

func maxTestTarget() *big.Int {
	// 0x207fffff is the test network's maximum (easiest) compact target,
	// chosen here so a satisfying nonce is found within a handful of tries.
	return DecodeCompactTarget(0x207fffff)
}

func TestHeaderRoundTripAndPoW(t *testing.T) {
	limit := maxTestTarget()
	header := &BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.ZeroHash,
		MerkleRoot: chainhash.ZeroHash,
		Timestamp:  uint32(time.Now().Unix()),
		Bits:       0x207fffff,
		Nonce:      0,
	}
	// Mine a header whose hash meets the test network's easy target;
	// this always terminates quickly at this difficulty.
	for {
		if header.CheckProofOfWork(limit) == nil {
			break
		}
		header.Nonce++
	}

	raw := header.Bytes()
	buf := bytesutil.NewWriteBuffer(len(raw))
	buf.PutBytes(raw)
	parsed, err := ParseBlockHeader(bytesutil.NewBuffer(buf.Bytes()), limit, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Hash() != header.Hash() {
		t.Fatal("hash mismatch after round trip")
	}
}

func TestHeaderRejectsFutureTimestamp(t *testing.T) {
	limit := maxTestTarget()
	header := &BlockHeader{Bits: 0x207fffff, Timestamp: uint32(time.Now().Add(3 * time.Hour).Unix())}
	for header.CheckProofOfWork(limit) != nil {
		header.Nonce++
	}
	raw := header.Bytes()
	_, err := ParseBlockHeader(bytesutil.NewBuffer(raw), limit, time.Now())
	if err == nil {
		t.Fatal("expected rejection of a header more than two hours in the future")
	}
}

func TestHeaderRejectsTargetAboveLimit(t *testing.T) {
	header := &BlockHeader{Bits: 0x1d00ffff}
	tooLowLimit := big.NewInt(1)
	if err := header.CheckProofOfWork(tooLowLimit); err == nil {
		t.Fatal("expected rejection when target exceeds the network's proof-of-work limit")
	}
}

func TestDecodeCompactTargetKnownValue(t *testing.T) {
	target := DecodeCompactTarget(0x1d00ffff)
	want := new(big.Int).Lsh(big.NewInt(0x00ffff), 8*(0x1d-3))
	if target.Cmp(want) != 0 {
		t.Fatalf("target = %s, want %s", target, want)
	}
}
