// Package ecc implements the secp256k1 key pairs, DER signatures, and
// address/wallet-import encodings used to authorize spends and to sign
// and verify arbitrary messages.
package ecc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

var (
	// ErrInvalidPrivateKey is returned when a scalar does not lie in the
	// valid secp256k1 private key range.
	ErrInvalidPrivateKey = errors.New("ecc: invalid private key")
	// ErrInvalidPublicKey is returned when a byte string is not a valid
	// compressed or uncompressed secp256k1 public key encoding.
	ErrInvalidPublicKey = errors.New("ecc: invalid public key encoding")
	// ErrNoPrivateKey is returned by operations that require the private
	// half of a KeyPair that holds only a public key.
	ErrNoPrivateKey = errors.New("ecc: key pair has no private key")
	// ErrRecoveryFailed is returned when public-key recovery from a
	// signature does not yield a point on the curve.
	ErrRecoveryFailed = errors.New("ecc: public key recovery failed")
)

// PublicKey wraps a secp256k1 point along with the compression
// preference to use when serializing it.
type PublicKey struct {
	point      *secp256k1.PublicKey
	compressed bool
}

// PrivateKey wraps a secp256k1 scalar. The zero value is not valid; use
// GeneratePrivateKey or NewPrivateKeyFromScalar.
type PrivateKey struct {
	scalar     *secp256k1.PrivateKey
	compressed bool
}

// KeyPair bundles a private key (optional), its public key, a creation
// time, and an optional encrypted form of the private key. A KeyPair
// with a nil Private but non-nil Encrypted represents a watching key
// whose private material is locked behind a passphrase.
type KeyPair struct {
	Private   *PrivateKey
	Public    *PublicKey
	Created   time.Time
	Encrypted *EncryptedPrivateKey
}

// GeneratePrivateKey draws a new random secp256k1 scalar.
func GeneratePrivateKey(compressed bool) (*PrivateKey, error) {
	scalar, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{scalar: scalar, compressed: compressed}, nil
}

// NewPrivateKeyFromScalar builds a PrivateKey from a 32-byte big-endian
// scalar, rejecting zero and values at or above the curve order.
func NewPrivateKeyFromScalar(b []byte, compressed bool) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, ErrInvalidPrivateKey
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow || s.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	scalar := secp256k1.NewPrivateKey(&s)
	return &PrivateKey{scalar: scalar, compressed: compressed}, nil
}

// Bytes returns the 32-byte big-endian scalar.
func (k *PrivateKey) Bytes() []byte {
	b := k.scalar.Serialize()
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// PubKey derives the public key corresponding to k.
func (k *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{point: k.scalar.PubKey(), compressed: k.compressed}
}

// IsCompressed reports whether keys derived from k should serialize
// their public form in compressed encoding.
func (k *PrivateKey) IsCompressed() bool { return k.compressed }

// NewPublicKeyFromBytes parses a compressed (33-byte) or uncompressed
// (65-byte) SEC1 public key encoding.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	point, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	compressed := len(b) == 33
	return &PublicKey{point: point, compressed: compressed}, nil
}

// Bytes serializes the public key in its preferred (compressed or
// uncompressed) form.
func (p *PublicKey) Bytes() []byte {
	if p.compressed {
		b := p.point.SerializeCompressed()
		return b[:]
	}
	b := p.point.SerializeUncompressed()
	return b[:]
}

// IsCompressed reports the key's serialization preference.
func (p *PublicKey) IsCompressed() bool { return p.compressed }

// Hash160 returns RIPEMD-160(SHA-256(pubkey)), the payload of a P2PKH
// address.
func (p *PublicKey) Hash160() [20]byte {
	return bytesutil.Hash160(p.Bytes())
}

// Address returns the Base58Check address for this public key under
// the given address version byte.
func (p *PublicKey) Address(addressVersion byte) string {
	h := p.Hash160()
	return bytesutil.Base58CheckEncode(addressVersion, h[:])
}

// DumpedPrivateKey returns the Base58Check wallet-import-format string
// for k: version byte, 32-byte scalar, and (if compressed) a trailing
// 0x01 flag byte.
func (k *PrivateKey) DumpedPrivateKey(dumpVersion byte) string {
	payload := k.Bytes()
	if k.compressed {
		payload = append(payload, 0x01)
	}
	return bytesutil.Base58CheckEncode(dumpVersion, payload)
}

// ParseDumpedPrivateKey decodes a wallet-import-format string, checking
// it against the expected version byte.
func ParseDumpedPrivateKey(s string, dumpVersion byte) (*PrivateKey, error) {
	version, payload, err := bytesutil.Base58CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if version != dumpVersion {
		return nil, ErrInvalidPrivateKey
	}
	switch len(payload) {
	case 32:
		return NewPrivateKeyFromScalar(payload, false)
	case 33:
		if payload[32] != 0x01 {
			return nil, ErrInvalidPrivateKey
		}
		return NewPrivateKeyFromScalar(payload[:32], true)
	default:
		return nil, ErrInvalidPrivateKey
	}
}

// EncryptedPrivateKey holds an AES-256-CBC-encrypted private key
// scalar. The encryption key is double-SHA-256(salt || SHA-256(passphrase)).
type EncryptedPrivateKey struct {
	Ciphertext []byte
	IV         []byte
	Salt       []byte
}

// EncryptPrivateKey encrypts k's scalar under passphrase, generating a
// random salt and IV.
func EncryptPrivateKey(k *PrivateKey, passphrase string) (*EncryptedPrivateKey, error) {
	salt := make([]byte, 8)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}
	key := deriveKey(salt, passphrase)
	plain := pkcs7Pad(k.Bytes(), aes.BlockSize)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	cipherText := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(cipherText, plain)
	return &EncryptedPrivateKey{Ciphertext: cipherText, IV: iv, Salt: salt}, nil
}

// Decrypt recovers the plaintext private key using passphrase.
func (e *EncryptedPrivateKey) Decrypt(passphrase string, compressed bool) (*PrivateKey, error) {
	key := deriveKey(e.Salt, passphrase)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	if len(e.Ciphertext) == 0 || len(e.Ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidPrivateKey
	}
	plain := make([]byte, len(e.Ciphertext))
	cipher.NewCBCDecrypter(block, e.IV).CryptBlocks(plain, e.Ciphertext)
	scalar, err := pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromScalar(scalar, compressed)
}

func deriveKey(salt []byte, passphrase string) [32]byte {
	passHash := bytesutil.Sha256([]byte(passphrase))
	combined := append(append([]byte{}, salt...), passHash[:]...)
	return bytesutil.DoubleSha256(combined)
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	padLen := blockSize - len(b)%blockSize
	pad := make([]byte, padLen)
	for i := range pad {
		pad[i] = byte(padLen)
	}
	return append(append([]byte{}, b...), pad...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, errors.New("ecc: invalid padded length")
	}
	padLen := int(b[len(b)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(b) {
		return nil, errors.New("ecc: invalid pkcs7 padding")
	}
	for _, v := range b[len(b)-padLen:] {
		if int(v) != padLen {
			return nil, errors.New("ecc: invalid pkcs7 padding")
		}
	}
	return b[:len(b)-padLen], nil
}
