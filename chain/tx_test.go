package chain

import (
	"bytes"
	"testing"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
	"github.com/ScripterRon/bitcoincore/ecc"
	"github.com/ScripterRon/bitcoincore/script"
)

func TestTxRoundTrip(t *testing.T) {
	tx := sampleTx()
	raw := tx.Bytes()
	back, err := ParseTx(bytesutil.NewBuffer(raw))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Bytes(), raw) {
		t.Fatal("round trip did not reproduce identical bytes")
	}
}

func TestCoinbaseDetection(t *testing.T) {
	tx := &Tx{
		Version: 1,
		Inputs: []TxIn{{
			PrevOut: OutPoint{Hash: chainhash.ZeroHash, Index: 0xffffffff},
			Script:  []byte{0x04, 0xde, 0xad, 0xbe, 0xef},
		}},
		Outputs: []TxOut{{Value: 50 * 1e8, Script: []byte{0x01}}},
	}
	if !tx.IsCoinbase() {
		t.Fatal("expected coinbase transaction")
	}
	raw := tx.Bytes()
	back, err := ParseTx(bytesutil.NewBuffer(raw))
	if err != nil {
		t.Fatal(err)
	}
	if !back.IsCoinbase() {
		t.Fatal("expected round-tripped coinbase transaction")
	}
	if back.Hash() != tx.Hash() {
		t.Fatal("hash mismatch after round trip")
	}
}

func TestNormalizedIDStableUnderScriptMalleability(t *testing.T) {
	tx := sampleTx()
	id1 := tx.NormalizedID()
	tx.Inputs[0].Script = append([]byte{}, tx.Inputs[0].Script...)
	tx.Inputs[0].Script = append(tx.Inputs[0].Script, 0xFF)
	id2 := tx.NormalizedID()
	if id1 != id2 {
		t.Fatal("normalized ID changed after mutating an input script")
	}
	if tx.Hash() == id1 {
		t.Fatal("full hash should differ from normalized ID once mutated")
	}
}

func TestSignatureHashAllModes(t *testing.T) {
	priv, err := ecc.GeneratePrivateKey(true)
	if err != nil {
		t.Fatal(err)
	}
	connectedScript := script.PayToPubKeyHash(priv.PubKey().Hash160())

	tx := sampleTx()
	modes := []script.SigHashType{
		script.SigHashAll,
		script.SigHashNone,
		script.SigHashSingle,
		script.SigHashAll | script.SigHashAnyoneCanPay,
		script.SigHashNone | script.SigHashAnyoneCanPay,
		script.SigHashSingle | script.SigHashAnyoneCanPay,
	}
	for _, mode := range modes {
		digest, err := ComputeSignatureHash(tx, 0, connectedScript, mode)
		if err != nil {
			t.Fatalf("mode %x: %v", mode, err)
		}
		sig := ecc.Sign(priv, digest)
		if !ecc.Verify(priv.PubKey(), digest, sig) {
			t.Fatalf("mode %x: signature failed to verify", mode)
		}
	}
}

func TestSignatureHashSingleOutOfRangeIsError(t *testing.T) {
	tx := &Tx{
		Version: 1,
		Inputs:  []TxIn{{PrevOut: OutPoint{Hash: chainhash.ZeroHash, Index: 0}}, {PrevOut: OutPoint{Hash: chainhash.ZeroHash, Index: 1}}},
		Outputs: []TxOut{{Value: 1}},
	}
	if _, err := ComputeSignatureHash(tx, 1, nil, script.SigHashSingle); err == nil {
		t.Fatal("expected error for SIGHASH_SINGLE with input index >= output count")
	}
}

func TestSignatureBuilderProducesVerifiableSpend(t *testing.T) {
	priv, err := ecc.GeneratePrivateKey(true)
	if err != nil {
		t.Fatal(err)
	}
	pubScript := script.PayToPubKeyHash(priv.PubKey().Hash160())

	tx := &Tx{
		Version: 1,
		Inputs:  []TxIn{{PrevOut: OutPoint{Hash: chainhash.ZeroHash, Index: 0}, Sequence: 0xffffffff}},
		Outputs: []TxOut{{Value: 100, Script: []byte{0x51}}},
	}
	builder := NewSignatureBuilder(tx, []ConnectedOutput{{Script: pubScript, Value: 1000}}, script.SigHashAll)
	if err := builder.SignInput(0, priv); err != nil {
		t.Fatal(err)
	}

	digest, err := ComputeSignatureHash(tx, 0, pubScript, script.SigHashAll)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := script.VerifySignatureScript(tx.Inputs[0].Script, pubScript, digest, func(sig, pubkey, sigHashType []byte) bool {
		der, err := ecc.ParseDERSignature(sig)
		if err != nil {
			return false
		}
		pk, err := ecc.NewPublicKeyFromBytes(pubkey)
		if err != nil {
			return false
		}
		return ecc.Verify(pk, digest, der)
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected the built scriptSig to verify against its output")
	}
}

func sampleTx() *Tx {
	var h chainhash.Hash
	copy(h[:], bytes.Repeat([]byte{0x11}, 32))
	return &Tx{
		Version: 1,
		Inputs: []TxIn{
			{PrevOut: OutPoint{Hash: h, Index: 0}, Script: []byte{0x01, 0x02}, Sequence: 0xffffffff},
		},
		Outputs: []TxOut{
			{Value: 5000000000, Script: []byte{0x76, 0xa9, 0x14}},
		},
		LockTime: 0,
	}
}
