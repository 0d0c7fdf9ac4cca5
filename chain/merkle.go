package chain

import (
	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

// BuildMerkleTree returns every layer of the Merkle tree over leaves,
// starting with the leaves themselves and ending with a single-element
// layer holding the root. An odd layer duplicates its last element
// before pairing, matching the historical Bitcoin construction.
func BuildMerkleTree(leaves []chainhash.Hash) [][]chainhash.Hash {
	if len(leaves) == 0 {
		return [][]chainhash.Hash{{chainhash.ZeroHash}}
	}
	layers := [][]chainhash.Hash{append([]chainhash.Hash{}, leaves...)}
	current := layers[0]
	for len(current) > 1 {
		if len(current)%2 == 1 {
			current = append(current, current[len(current)-1])
		}
		next := make([]chainhash.Hash, 0, len(current)/2)
		for i := 0; i < len(current); i += 2 {
			next = append(next, hashPair(current[i], current[i+1]))
		}
		layers = append(layers, next)
		current = next
	}
	return layers
}

// MerkleRoot returns the root of the Merkle tree over leaves.
func MerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	layers := BuildMerkleTree(leaves)
	return layers[len(layers)-1][0]
}

func hashPair(left, right chainhash.Hash) chainhash.Hash {
	buf := bytesutil.NewWriteBuffer(64)
	buf.PutBytes(left.ToWire())
	buf.PutBytes(right.ToWire())
	digest := bytesutil.DoubleSha256(buf.Bytes())
	h, _ := chainhash.NewHashFromWire(digest[:])
	return h
}

// treeWidth returns the number of distinct (pre-duplication) nodes at
// traversal height above the leaves, for a tree over n leaves.
func treeWidth(n, height int) int {
	return (n + (1 << uint(height)) - 1) >> uint(height)
}

// MerkleBranch is the partial Merkle tree carried by a merkleblock
// message: enough hashes and flag bits to prove which transactions
// matched a filter without transmitting the whole block.
type MerkleBranch struct {
	TotalTransactions uint32
	Hashes            []chainhash.Hash
	Flags             []byte
}

// NewMerkleBranch builds a partial Merkle tree over leaves, where
// matched[i] reports whether leaf i should be provable by the branch.
// It performs the standard depth-first traversal: at each node it
// emits a flag bit (whether the subtree rooted there contains a
// match), and emits the node's hash whenever the flag is zero or the
// node is a leaf on a matched path.
func NewMerkleBranch(leaves []chainhash.Hash, matched []bool) *MerkleBranch {
	n := len(leaves)
	if n == 0 {
		return &MerkleBranch{TotalTransactions: 0}
	}
	layers := BuildMerkleTree(leaves)
	height := len(layers) - 1

	b := &builder{layers: layers, n: n, matched: matched}
	b.visit(height, 0)

	return &MerkleBranch{
		TotalTransactions: uint32(n),
		Hashes:            b.hashes,
		Flags:             packBits(b.flags),
	}
}

type builder struct {
	layers  [][]chainhash.Hash
	n       int
	matched []bool
	hashes  []chainhash.Hash
	flags   []bool
}

func (b *builder) visit(height, pos int) bool {
	start, end := leafSpan(b.n, height, pos)
	parentOfMatch := false
	for i := start; i < end; i++ {
		if i < len(b.matched) && b.matched[i] {
			parentOfMatch = true
			break
		}
	}
	b.flags = append(b.flags, parentOfMatch)

	if height == 0 || !parentOfMatch {
		b.hashes = append(b.hashes, b.layers[height][pos])
		return parentOfMatch
	}

	b.visit(height-1, pos*2)
	if pos*2+1 < treeWidth(b.n, height-1) {
		b.visit(height-1, pos*2+1)
	}
	return parentOfMatch
}

func leafSpan(n, height, pos int) (int, int) {
	span := 1 << uint(height)
	start := pos * span
	end := start + span
	if end > n {
		end = n
	}
	return start, end
}

func packBits(flags []bool) []byte {
	out := make([]byte, (len(flags)+7)/8)
	for i, f := range flags {
		if f {
			out[i/8] |= 1 << (uint(i) % 8)
		}
	}
	return out
}

// Extract walks the partial tree and returns the Merkle root implied
// by it together with the matched leaf hashes, in leaf order.
func (br *MerkleBranch) Extract() (chainhash.Hash, []chainhash.Hash, error) {
	n := int(br.TotalTransactions)
	if n == 0 {
		return chainhash.ZeroHash, nil, nil
	}
	height := merkleHeight(n)
	maxFlags := len(br.Flags) * 8
	flags := make([]bool, maxFlags)
	for i := 0; i < maxFlags; i++ {
		flags[i] = br.Flags[i/8]&(1<<(uint(i)%8)) != 0
	}

	e := &extractor{flags: flags, hashes: br.Hashes, n: n}
	root, err := e.visit(height, 0)
	if err != nil {
		return chainhash.ZeroHash, nil, err
	}
	if e.hashIdx != len(e.hashes) {
		return chainhash.ZeroHash, nil, chainErr(ErrInvalidMerkle, "unused hashes in partial branch")
	}
	return root, e.matches, nil
}

func merkleHeight(n int) int {
	height := 0
	for treeWidth(n, height) > 1 {
		height++
	}
	return height
}

type extractor struct {
	flags   []bool
	hashes  []chainhash.Hash
	n       int
	flagIdx int
	hashIdx int
	matches []chainhash.Hash
}

func (e *extractor) visit(height, pos int) (chainhash.Hash, error) {
	if e.flagIdx >= len(e.flags) {
		return chainhash.ZeroHash, chainErr(ErrInvalidMerkle, "ran out of flag bits")
	}
	parentOfMatch := e.flags[e.flagIdx]
	e.flagIdx++

	if height == 0 || !parentOfMatch {
		if e.hashIdx >= len(e.hashes) {
			return chainhash.ZeroHash, chainErr(ErrInvalidMerkle, "ran out of hashes")
		}
		h := e.hashes[e.hashIdx]
		e.hashIdx++
		if height == 0 && parentOfMatch {
			e.matches = append(e.matches, h)
		}
		return h, nil
	}

	left, err := e.visit(height-1, pos*2)
	if err != nil {
		return chainhash.ZeroHash, err
	}
	right := left
	if pos*2+1 < treeWidth(e.n, height-1) {
		right, err = e.visit(height-1, pos*2+1)
		if err != nil {
			return chainhash.ZeroHash, err
		}
	}
	return hashPair(left, right), nil
}

// Encode serializes the partial Merkle branch as carried by a
// merkleblock message: 4-byte transaction count, var-int hash count,
// the hashes, var-int flag-byte count, the flag bytes.
func (br *MerkleBranch) Encode() []byte {
	buf := bytesutil.NewWriteBuffer(64)
	buf.PutUint32LE(br.TotalTransactions)
	buf.PutVarInt(uint64(len(br.Hashes)))
	for _, h := range br.Hashes {
		buf.PutBytes(h.ToWire())
	}
	buf.PutVarBytes(br.Flags)
	return buf.Bytes()
}

// ParseMerkleBranch decodes a partial Merkle branch produced by Encode.
func ParseMerkleBranch(buf *bytesutil.Buffer) (*MerkleBranch, error) {
	total, err := buf.GetUint32LE()
	if err != nil {
		return nil, err
	}
	hashCount, err := buf.GetVarInt()
	if err != nil {
		return nil, err
	}
	hashes := make([]chainhash.Hash, 0, hashCount)
	for i := uint64(0); i < hashCount; i++ {
		wire, err := buf.GetBytes(chainhash.Size)
		if err != nil {
			return nil, err
		}
		h, err := chainhash.NewHashFromWire(wire)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	flags, err := buf.GetVarBytes(bytesutil.MaxVarIntPrefixedLen)
	if err != nil {
		return nil, err
	}
	return &MerkleBranch{TotalTransactions: total, Hashes: hashes, Flags: flags}, nil
}
