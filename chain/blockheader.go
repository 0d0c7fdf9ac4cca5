package chain

import (
	"math/big"
	"time"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

// maxTimeDrift is how far into the future a block's timestamp may lie
// relative to the local clock before it is rejected.
const maxTimeDrift = 2 * time.Hour

// BlockHeader is the 80-byte block header: version, previous block
// hash, Merkle root, time, compact target, and nonce. Height, on-chain
// status, and cumulative work are tracked by the chain layer that
// connects headers together, not by this type.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// Bytes returns the canonical 80-byte header encoding.
func (h *BlockHeader) Bytes() []byte {
	buf := bytesutil.NewWriteBuffer(80)
	buf.PutInt32LE(h.Version)
	buf.PutBytes(h.PrevBlock.ToWire())
	buf.PutBytes(h.MerkleRoot.ToWire())
	buf.PutUint32LE(h.Timestamp)
	buf.PutUint32LE(h.Bits)
	buf.PutUint32LE(h.Nonce)
	return buf.Bytes()
}

// Hash returns the header hash: double-SHA-256 of Bytes(), reversed
// into display order.
func (h *BlockHeader) Hash() chainhash.Hash {
	digest := bytesutil.DoubleSha256(h.Bytes())
	hash, _ := chainhash.NewHashFromWire(digest[:])
	return hash
}

const headerSize = 80

// ParseBlockHeader decodes an 80-byte block header and validates its
// proof of work and timestamp against powLimit and the current clock.
func ParseBlockHeader(buf *bytesutil.Buffer, powLimit *big.Int, now time.Time) (*BlockHeader, error) {
	raw, err := buf.GetBytes(headerSize)
	if err != nil {
		return nil, err
	}
	inner := bytesutil.NewBuffer(raw)

	version, err := inner.GetInt32LE()
	if err != nil {
		return nil, err
	}
	prevWire, err := inner.GetBytes(chainhash.Size)
	if err != nil {
		return nil, err
	}
	prevBlock, err := chainhash.NewHashFromWire(prevWire)
	if err != nil {
		return nil, err
	}
	merkleWire, err := inner.GetBytes(chainhash.Size)
	if err != nil {
		return nil, err
	}
	merkleRoot, err := chainhash.NewHashFromWire(merkleWire)
	if err != nil {
		return nil, err
	}
	timestamp, err := inner.GetUint32LE()
	if err != nil {
		return nil, err
	}
	bits, err := inner.GetUint32LE()
	if err != nil {
		return nil, err
	}
	nonce, err := inner.GetUint32LE()
	if err != nil {
		return nil, err
	}

	h := &BlockHeader{
		Version:    version,
		PrevBlock:  prevBlock,
		MerkleRoot: merkleRoot,
		Timestamp:  timestamp,
		Bits:       bits,
		Nonce:      nonce,
	}

	if err := h.CheckProofOfWork(powLimit); err != nil {
		return nil, err
	}
	if time.Unix(int64(timestamp), 0).After(now.Add(maxTimeDrift)) {
		return nil, chainErr(ErrInvalidPoW, "block timestamp too far in the future")
	}
	return h, nil
}

// DecodeCompactTarget expands the 32-bit compact ("nBits") target
// encoding into a full-precision big integer.
func DecodeCompactTarget(bits uint32) *big.Int {
	exponent := bits >> 24
	mantissa := bits & 0x007fffff
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		return big.NewInt(int64(mantissa))
	}
	target := big.NewInt(int64(mantissa))
	target.Lsh(target, 8*uint(exponent-3))
	return target
}

// CheckProofOfWork reports whether the header's own stated target is
// in range and whether the header's hash meets that target. It does
// not consult any external difficulty-retargeting rule.
func (h *BlockHeader) CheckProofOfWork(powLimit *big.Int) error {
	target := DecodeCompactTarget(h.Bits)
	if target.Sign() <= 0 {
		return chainErr(ErrInvalidPoW, "target is non-positive")
	}
	if target.Cmp(powLimit) > 0 {
		return chainErr(ErrInvalidPoW, "target exceeds proof-of-work limit")
	}
	hashInt := h.Hash().Int()
	if hashInt.Cmp(target) > 0 {
		return chainErr(ErrInvalidPoW, "block hash does not meet its target")
	}
	return nil
}
