// Package chainhash defines the 256-bit hash value type shared by the
// chain and p2p packages. A Hash is held internally in natural
// (big-endian) byte order; the wire form used by the protocol is the
// reverse of that, and the display form is the hex encoding of the
// natural order, matching how block and transaction IDs are printed.
package chainhash

import (
	"encoding/hex"
	"errors"
	"math/big"
)

// Size is the number of bytes in a Hash.
const Size = 32

var errWrongLength = errors.New("chainhash: wrong byte length for hash")

// Hash is a double-SHA-256 digest, held in natural (big-endian) order.
type Hash [Size]byte

// ZeroHash is the all-zero sentinel value used for the previous-block
// hash of a genesis header and for coinbase input outpoints.
var ZeroHash Hash

// NewHash copies b into a new Hash. b must be exactly Size bytes.
func NewHash(b []byte) (Hash, error) {
	var h Hash
	if len(b) != Size {
		return h, errWrongLength
	}
	copy(h[:], b)
	return h, nil
}

// NewHashFromWire builds a Hash from its little-endian wire encoding,
// reversing it into natural order.
func NewHashFromWire(wire []byte) (Hash, error) {
	var h Hash
	if len(wire) != Size {
		return h, errWrongLength
	}
	for i := 0; i < Size; i++ {
		h[i] = wire[Size-1-i]
	}
	return h, nil
}

// ToWire returns the little-endian wire encoding of h.
func (h Hash) ToWire() []byte {
	out := make([]byte, Size)
	for i := 0; i < Size; i++ {
		out[i] = h[Size-1-i]
	}
	return out
}

// IsZero reports whether h is the all-zero sentinel.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// String returns the big-endian hex display form, the conventional form
// for block and transaction IDs.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// NewHashFromStr parses a big-endian hex display string into a Hash.
func NewHashFromStr(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	return NewHash(b)
}

// Bytes returns a copy of the hash in natural (big-endian) order.
func (h Hash) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, h[:])
	return out
}

// Int returns h interpreted as an unsigned big-endian integer, used to
// compare a block hash against a decoded proof-of-work target.
func (h Hash) Int() *big.Int {
	return new(big.Int).SetBytes(h[:])
}

// Less reports whether h orders before other when both are viewed as
// big-endian unsigned integers.
func (h Hash) Less(other Hash) bool {
	return h.Int().Cmp(other.Int()) < 0
}
