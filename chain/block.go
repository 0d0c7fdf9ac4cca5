package chain

import (
	"math/big"
	"time"

	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

// Block is a full block: its header and transactions. The Merkle root
// implied by Transactions is computed lazily and cached on first use.
type Block struct {
	Header       BlockHeader
	Transactions []*Tx

	merkleRoot *chainhash.Hash
}

// MerkleRoot returns the Merkle root of the block's transactions,
// computing and caching it on first call.
func (b *Block) MerkleRoot() chainhash.Hash {
	if b.merkleRoot == nil {
		leaves := make([]chainhash.Hash, len(b.Transactions))
		for i, tx := range b.Transactions {
			leaves[i] = tx.Hash()
		}
		root := MerkleRoot(leaves)
		b.merkleRoot = &root
	}
	return *b.merkleRoot
}

// VerifyMerkleRoot reports whether the block's transactions hash to
// the Merkle root recorded in its header.
func (b *Block) VerifyMerkleRoot() bool {
	return b.MerkleRoot() == b.Header.MerkleRoot
}

// Bytes returns the canonical block encoding: the header followed by
// a var-int transaction count and the transactions themselves.
func (b *Block) Bytes() []byte {
	buf := bytesutil.NewWriteBuffer(1024)
	buf.PutBytes(b.Header.Bytes())
	buf.PutVarInt(uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		buf.PutBytes(tx.Bytes())
	}
	return buf.Bytes()
}

const maxBlockTransactions = 4_000_000

// ParseBlock decodes a full block, validating its header's proof of
// work and timestamp the same way ParseBlockHeader does.
func ParseBlock(buf *bytesutil.Buffer, powLimit *big.Int, now time.Time) (*Block, error) {
	header, err := ParseBlockHeader(buf, powLimit, now)
	if err != nil {
		return nil, err
	}
	count, err := buf.GetVarInt()
	if err != nil {
		return nil, err
	}
	if count > maxBlockTransactions {
		return nil, chainErr(ErrParse, "transaction count exceeds maximum")
	}
	txs := make([]*Tx, 0, count)
	for i := uint64(0); i < count; i++ {
		tx, err := ParseTx(buf)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return &Block{Header: *header, Transactions: txs}, nil
}
