package ecc

import (
	"bytes"
	"testing"
)

func TestKeyPairAddressRoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey(true)
	if err != nil {
		t.Fatal(err)
	}
	pub := priv.PubKey()
	addr := pub.Address(0x00)
	if len(addr) == 0 {
		t.Fatal("empty address")
	}

	parsedPub, err := NewPublicKeyFromBytes(pub.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if parsedPub.Address(0x00) != addr {
		t.Fatal("address mismatch after public key round trip")
	}
}

func TestDumpedPrivateKeyRoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey(true)
	if err != nil {
		t.Fatal(err)
	}
	dumped := priv.DumpedPrivateKey(0x80)
	back, err := ParseDumpedPrivateKey(dumped, 0x80)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Bytes(), priv.Bytes()) || !back.IsCompressed() {
		t.Fatal("dumped private key round trip mismatch")
	}
}

func TestSignVerifyAndRecover(t *testing.T) {
	priv, err := GeneratePrivateKey(true)
	if err != nil {
		t.Fatal(err)
	}
	var digest [32]byte
	copy(digest[:], bytes.Repeat([]byte{0xAB}, 32))

	sig := Sign(priv, digest)
	if !Verify(priv.PubKey(), digest, sig) {
		t.Fatal("signature failed to verify")
	}

	der := sig.DER()
	parsed, err := ParseDERSignature(der)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(priv.PubKey(), digest, parsed) {
		t.Fatal("parsed DER signature failed to verify")
	}
}

func TestCompactSignatureRecovery(t *testing.T) {
	priv, err := GeneratePrivateKey(true)
	if err != nil {
		t.Fatal(err)
	}
	var digest [32]byte
	copy(digest[:], bytes.Repeat([]byte{0x42}, 32))

	sig := SignCompact(priv, digest)
	if len(sig) != 65 {
		t.Fatalf("compact signature length = %d, want 65", len(sig))
	}
	recovered, compressed, err := RecoverCompact(sig, digest)
	if err != nil {
		t.Fatal(err)
	}
	if !compressed {
		t.Fatal("expected compressed flag to round trip")
	}
	if !bytes.Equal(recovered.Bytes(), priv.PubKey().Bytes()) {
		t.Fatal("recovered public key does not match signer")
	}
}

func TestSignAndVerifyMessage(t *testing.T) {
	priv, err := GeneratePrivateKey(true)
	if err != nil {
		t.Fatal(err)
	}
	addr := priv.PubKey().Address(0x00)
	sig := SignMessage(priv, "hello bitcoin")

	ok, err := VerifyMessage("hello bitcoin", sig, addr, 0x00)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected message signature to verify")
	}

	ok, err = VerifyMessage("tampered message", sig, addr, 0x00)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("tampered message should not verify")
	}
}

func TestEncryptedPrivateKeyRoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey(false)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := EncryptPrivateKey(priv, "correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}
	back, err := enc.Decrypt("correct horse battery staple", false)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Bytes(), priv.Bytes()) {
		t.Fatal("decrypted scalar mismatch")
	}
	if _, err := enc.Decrypt("wrong passphrase", false); err == nil {
		t.Fatal("expected decrypt failure with wrong passphrase")
	}
}
