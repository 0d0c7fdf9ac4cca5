package p2p

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chain"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

// MaxBlockSizeBytes bounds a decoded block payload, independent of the
// larger envelope-level MaxPayloadBytes ceiling.
const MaxBlockSizeBytes = 1 * 1024 * 1024

// EncodeTxPayload serializes a tx body: the transaction's canonical
// encoding, unchanged.
func EncodeTxPayload(tx *chain.Tx) []byte {
	return tx.Bytes()
}

// DecodeTxPayload parses a tx body.
func DecodeTxPayload(payload []byte) (*chain.Tx, error) {
	buf := bytesutil.NewBuffer(payload)
	tx, err := chain.ParseTx(buf)
	if err != nil {
		return nil, fmt.Errorf("p2p: tx: %w", err)
	}
	if buf.Remaining() > 0 {
		hash := tx.Hash()
		return nil, coreErrTxHash(ErrMalformed, "tx: trailing bytes", [32]byte(hash))
	}
	return tx, nil
}

// EncodeBlockPayload serializes a block body: the block's canonical
// encoding, unchanged.
func EncodeBlockPayload(b *chain.Block) []byte {
	return b.Bytes()
}

// DecodeBlockPayload parses a block body, validating proof of work and
// timestamp drift against maxTarget and now.
func DecodeBlockPayload(payload []byte, maxTarget *big.Int, now time.Time) (*chain.Block, error) {
	if len(payload) > MaxBlockSizeBytes {
		return nil, coreErr(ErrMalformed, "block: payload exceeds maximum block size")
	}
	buf := bytesutil.NewBuffer(payload)
	b, err := chain.ParseBlock(buf, maxTarget, now)
	if err != nil {
		return nil, fmt.Errorf("p2p: block: %w", err)
	}
	if buf.Remaining() > 0 {
		hash := b.Header.Hash()
		return nil, coreErrHash(ErrMalformed, "block: trailing bytes", [32]byte(hash))
	}
	return b, nil
}

// EncodeMerkleBlockPayload serializes a merkleblock body: the block
// header followed by the partial Merkle branch.
func EncodeMerkleBlockPayload(header chain.BlockHeader, branch *chain.MerkleBranch) []byte {
	buf := bytesutil.NewWriteBuffer(80 + 64)
	buf.PutBytes(header.Bytes())
	buf.PutBytes(branch.Encode())
	return buf.Bytes()
}

// DecodeMerkleBlockPayload parses a merkleblock body, reconstructs the
// Merkle root from the partial tree, and rejects the message if it
// does not match the header's MerkleRoot. matched carries the
// transaction hashes the partial tree proved membership for.
func DecodeMerkleBlockPayload(payload []byte, maxTarget *big.Int, now time.Time) (header chain.BlockHeader, branch *chain.MerkleBranch, matched []chainhash.Hash, err error) {
	buf := bytesutil.NewBuffer(payload)
	hdr, err := chain.ParseBlockHeader(buf, maxTarget, now)
	if err != nil {
		return chain.BlockHeader{}, nil, nil, fmt.Errorf("p2p: merkleblock: header: %w", err)
	}
	branch, err = chain.ParseMerkleBranch(buf)
	if err != nil {
		return chain.BlockHeader{}, nil, nil, fmt.Errorf("p2p: merkleblock: branch: %w", err)
	}
	if buf.Remaining() > 0 {
		return chain.BlockHeader{}, nil, nil, coreErr(ErrMalformed, "merkleblock: trailing bytes")
	}
	root, matched, err := branch.Extract()
	if err != nil {
		return chain.BlockHeader{}, nil, nil, fmt.Errorf("p2p: merkleblock: extract: %w", err)
	}
	if root != hdr.MerkleRoot {
		headerHash := hdr.Hash()
		return chain.BlockHeader{}, nil, nil, coreErrHash(ErrInvalid, "merkleblock: reconstructed root does not match header", [32]byte(headerHash))
	}
	return *hdr, branch, matched, nil
}
