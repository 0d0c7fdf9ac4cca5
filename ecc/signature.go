package ecc

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

// ErrInvalidSignature is returned when a DER byte string cannot be
// decoded as a valid, canonical ECDSA signature.
var ErrInvalidSignature = errors.New("ecc: invalid signature encoding")

// Signature is a secp256k1 ECDSA signature in (R, S) form, always kept
// in canonical low-S form once produced by Sign.
type Signature struct {
	inner *ecdsa.Signature
}

// Sign produces a deterministic (RFC 6979) ECDSA signature over digest
// using k. The result is already in canonical low-S form.
func Sign(k *PrivateKey, digest [32]byte) *Signature {
	return &Signature{inner: ecdsa.Sign(k.scalar, digest[:])}
}

// Verify reports whether sig is a valid signature over digest by p.
func Verify(p *PublicKey, digest [32]byte, sig *Signature) bool {
	return sig.inner.Verify(digest[:], p.point)
}

// DER returns the BER/DER encoding of the signature.
func (s *Signature) DER() []byte {
	return s.inner.Serialize()
}

// ParseDERSignature decodes and canonicalizes a DER-encoded signature.
// Decred's parser already enforces strict DER and low-S; a signature
// that parses is canonical by construction.
func ParseDERSignature(der []byte) (*Signature, error) {
	sig, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	return &Signature{inner: sig}, nil
}

// SignCompact produces the 65-byte compact signature format used for
// message signing: one header byte encoding the recovery id and the
// compression preference, followed by 32-byte R and 32-byte S.
func SignCompact(k *PrivateKey, digest [32]byte) []byte {
	return ecdsa.SignCompact(k.scalar, digest[:], k.compressed)
}

// RecoverCompact recovers the public key implied by a 65-byte compact
// signature over digest, along with the compression flag it encoded.
func RecoverCompact(sig []byte, digest [32]byte) (*PublicKey, bool, error) {
	pub, compressed, err := ecdsa.RecoverCompact(sig, digest[:])
	if err != nil {
		return nil, false, ErrRecoveryFailed
	}
	return &PublicKey{point: pub, compressed: compressed}, compressed, nil
}

// signedMessageHeader is prepended to every message before hashing, so
// that a signature over a message can never be replayed as a signature
// over a raw transaction digest.
const signedMessageHeader = "Bitcoin Signed Message:\n"

// SignMessage signs an arbitrary text message in the conventional way:
// the header and the message are each var-length-string framed,
// concatenated, and double-SHA-256 hashed before signing.
func SignMessage(k *PrivateKey, message string) []byte {
	digest := hashSignedMessage(message)
	return SignCompact(k, digest)
}

// VerifyMessage recovers the address that produced sig over message and
// reports whether it equals the given address under addressVersion.
func VerifyMessage(message string, sig []byte, address string, addressVersion byte) (bool, error) {
	digest := hashSignedMessage(message)
	pub, _, err := RecoverCompact(sig, digest)
	if err != nil {
		return false, err
	}
	return pub.Address(addressVersion) == address, nil
}

func hashSignedMessage(message string) [32]byte {
	buf := bytesutil.NewWriteBuffer(0)
	buf.PutVarString(signedMessageHeader)
	buf.PutVarString(message)
	return bytesutil.DoubleSha256(buf.Bytes())
}
