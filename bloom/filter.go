// Package bloom implements the probabilistic element filter a peer
// installs via filterload/filteradd/filterclear to request a reduced,
// privacy-trading transaction feed.
package bloom

import (
	"errors"
	"math"

	"github.com/spaolacci/murmur3"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

// MaxFilterBytes is the largest filter byte array a peer may install.
const MaxFilterBytes = 36000

// MaxHashFuncs is the largest hash-function count a peer may request.
const MaxHashFuncs = 50

// DefaultFalsePositiveRate is used by callers that do not have a
// specific rate requirement of their own.
const DefaultFalsePositiveRate = 0.0005

// seedMultiplier is the constant the reference implementation mixes
// into each hash function's seed to decorrelate the per-index hashes
// produced from a single tweak.
const seedMultiplier = 0xFBA4C795

// UpdateFlag selects which kind of a matching output also triggers
// automatic insertion of that output's outpoint into the filter.
type UpdateFlag uint8

const (
	// UpdateNone never auto-inserts outpoints.
	UpdateNone UpdateFlag = iota
	// UpdateAll auto-inserts the outpoint of every matching output.
	UpdateAll
	// UpdateP2PubkeyOnly auto-inserts the outpoint only when the
	// matching output is a bare pay-to-pubkey or multisig script.
	UpdateP2PubkeyOnly
)

var (
	// ErrFilterTooLarge is returned when a filter's byte array exceeds
	// MaxFilterBytes.
	ErrFilterTooLarge = errors.New("bloom: filter exceeds maximum size")
	// ErrTooManyHashFuncs is returned when a hash-function count
	// exceeds MaxHashFuncs.
	ErrTooManyHashFuncs = errors.New("bloom: hash function count exceeds maximum")
	// ErrEmptyFilter is returned by NewFilter when N is not positive.
	ErrEmptyFilter = errors.New("bloom: element count must be positive")
)

// Filter is a Bloom filter as installed on a peer: a bit array backed
// by bytes, a hash-function count, a random tweak, and an update mode
// describing which matches also feed the filter.
type Filter struct {
	bits       []byte
	hashFuncs  uint32
	tweak      uint32
	UpdateMode UpdateFlag
}

// NewFilter sizes a filter for an expected element count n and a
// target false-positive rate p, per the standard Bloom-filter sizing
// formulas, clamped to the protocol's size caps.
func NewFilter(n int, p float64, tweak uint32, mode UpdateFlag) (*Filter, error) {
	if n <= 0 {
		return nil, ErrEmptyFilter
	}
	if p <= 0 {
		p = DefaultFalsePositiveRate
	}
	bits := int(math.Ceil(-1 * float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	maxBits := MaxFilterBytes * 8
	if bits > maxBits {
		bits = maxBits
	}
	if bits < 8 {
		bits = 8
	}
	hashFuncs := int(math.Floor(float64(bits) / float64(n) * math.Ln2))
	if hashFuncs > MaxHashFuncs {
		hashFuncs = MaxHashFuncs
	}
	if hashFuncs < 1 {
		hashFuncs = 1
	}
	return &Filter{
		bits:       make([]byte, (bits+7)/8),
		hashFuncs:  uint32(hashFuncs),
		tweak:      tweak,
		UpdateMode: mode,
	}, nil
}

// NewFilterFromBytes builds a Filter from raw wire fields, as decoded
// from a filterload message.
func NewFilterFromBytes(bits []byte, hashFuncs, tweak uint32, mode UpdateFlag) (*Filter, error) {
	if len(bits) > MaxFilterBytes {
		return nil, ErrFilterTooLarge
	}
	if hashFuncs > MaxHashFuncs {
		return nil, ErrTooManyHashFuncs
	}
	cp := make([]byte, len(bits))
	copy(cp, bits)
	return &Filter{bits: cp, hashFuncs: hashFuncs, tweak: tweak, UpdateMode: mode}, nil
}

func (f *Filter) bitIndex(hashNum uint32, data []byte) uint32 {
	seed := hashNum*seedMultiplier + f.tweak
	h := murmur3.Sum32WithSeed(data, seed)
	return h % uint32(len(f.bits)*8)
}

// Add inserts data into the filter.
func (f *Filter) Add(data []byte) {
	for i := uint32(0); i < f.hashFuncs; i++ {
		idx := f.bitIndex(i, data)
		f.bits[idx/8] |= 1 << (idx % 8)
	}
}

// Contains reports whether data may have been inserted. False
// positives are possible; false negatives are not.
func (f *Filter) Contains(data []byte) bool {
	for i := uint32(0); i < f.hashFuncs; i++ {
		idx := f.bitIndex(i, data)
		if f.bits[idx/8]&(1<<(idx%8)) == 0 {
			return false
		}
	}
	return true
}

// Clear zeroes every bit in the filter without changing its size or
// parameters. The p2p filterclear handler does not call it; it removes
// the peer's filter instead.
func (f *Filter) Clear() {
	for i := range f.bits {
		f.bits[i] = 0
	}
}

// HashFuncs returns the configured hash-function count.
func (f *Filter) HashFuncs() uint32 { return f.hashFuncs }

// Tweak returns the configured tweak value.
func (f *Filter) Tweak() uint32 { return f.tweak }

// Encode serializes the filter as sent in a filterload message:
// var-int length, filter bytes, 4-byte hash-func count, 4-byte tweak,
// 1-byte update flags.
func (f *Filter) Encode() []byte {
	buf := bytesutil.NewWriteBuffer(len(f.bits) + 9)
	buf.PutVarBytes(f.bits)
	buf.PutUint32LE(f.hashFuncs)
	buf.PutUint32LE(f.tweak)
	buf.PutUint8(uint8(f.UpdateMode))
	return buf.Bytes()
}

// Decode parses a filterload payload produced by Encode.
func Decode(buf *bytesutil.Buffer) (*Filter, error) {
	bits, err := buf.GetVarBytes(MaxFilterBytes)
	if err != nil {
		return nil, err
	}
	hashFuncs, err := buf.GetUint32LE()
	if err != nil {
		return nil, err
	}
	tweak, err := buf.GetUint32LE()
	if err != nil {
		return nil, err
	}
	flag, err := buf.GetUint8()
	if err != nil {
		return nil, err
	}
	return NewFilterFromBytes(bits, hashFuncs, tweak, UpdateFlag(flag))
}
