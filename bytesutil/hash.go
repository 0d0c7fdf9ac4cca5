// Package bytesutil provides the wire-level byte primitives shared by the
// chain and p2p packages: fixed-width little-endian integers, the
// canonical variable-length integer codec, length-prefixed strings, and
// the hash/encoding helpers the protocol builds on.
package bytesutil

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for address hashing, not a TLS cipher suite

	"github.com/mr-tron/base58"
)

// Sha256 returns the single SHA-256 digest of b.
func Sha256(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// DoubleSha256 returns SHA-256(SHA-256(b)), the digest used for block and
// transaction hashes and for message checksums.
func DoubleSha256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// Hash160 returns RIPEMD-160(SHA-256(b)), the digest used for P2PKH
// address hashes.
func Hash160(b []byte) [20]byte {
	first := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(first[:])
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Reverse returns a new slice with the bytes of b in reverse order. It
// never mutates b. Used to convert between the protocol's natural
// (big-endian) hash display order and its little-endian wire order.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// Base58CheckEncode encodes payload with a leading version byte and a
// trailing 4-byte double-SHA-256 checksum, per the Base58Check convention.
func Base58CheckEncode(version byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+4)
	buf = append(buf, version)
	buf = append(buf, payload...)
	checksum := DoubleSha256(buf)
	buf = append(buf, checksum[:4]...)
	return base58.Encode(buf)
}

// Base58CheckDecode decodes a Base58Check string, verifying the checksum,
// and returns the version byte and payload.
func Base58CheckDecode(s string) (version byte, payload []byte, err error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return 0, nil, err
	}
	if len(decoded) < 5 {
		return 0, nil, errShortBase58
	}
	body := decoded[:len(decoded)-4]
	checksum := decoded[len(decoded)-4:]
	want := DoubleSha256(body)
	for i := 0; i < 4; i++ {
		if checksum[i] != want[i] {
			return 0, nil, errBadChecksum
		}
	}
	return body[0], body[1:], nil
}
