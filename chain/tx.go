// Package chain implements the Bitcoin transaction and block data
// model: canonical serialization, hashing, signature-hash construction,
// Merkle trees and partial branches, and block header proof-of-work
// validation.
package chain

import (
	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/chainhash"
)

// OutPoint identifies a spent output by its transaction hash and
// output index.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// TxIn is a transaction input: the outpoint it spends, the unlocking
// script, and a sequence number.
type TxIn struct {
	PrevOut  OutPoint
	Script   []byte
	Sequence uint32
}

// TxOut is a transaction output: a value in the smallest monetary unit
// and a locking script.
type TxOut struct {
	Value  uint64
	Script []byte
}

// Tx is a full transaction: version, inputs, outputs, and lock time.
type Tx struct {
	Version  int32
	Inputs   []TxIn
	Outputs  []TxOut
	LockTime uint32
}

// IsCoinbase reports whether tx is a coinbase transaction: exactly one
// input whose outpoint hash is all-zero and whose index is the
// maximum uint32 value.
func (tx *Tx) IsCoinbase() bool {
	if len(tx.Inputs) != 1 {
		return false
	}
	in := tx.Inputs[0]
	return in.PrevOut.Hash.IsZero() && in.PrevOut.Index == 0xffffffff
}

// Bytes returns the canonical serialization used both for hashing and
// for the tx wire message: version, var-int input count, inputs,
// var-int output count, outputs, lock time.
func (tx *Tx) Bytes() []byte {
	buf := bytesutil.NewWriteBuffer(256)
	tx.encode(buf)
	return buf.Bytes()
}

func (tx *Tx) encode(buf *bytesutil.Buffer) {
	buf.PutInt32LE(tx.Version)
	buf.PutVarInt(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		encodeOutPoint(buf, in.PrevOut)
		buf.PutVarBytes(in.Script)
		buf.PutUint32LE(in.Sequence)
	}
	buf.PutVarInt(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		encodeTxOut(buf, out)
	}
	buf.PutUint32LE(tx.LockTime)
}

func encodeOutPoint(buf *bytesutil.Buffer, op OutPoint) {
	buf.PutBytes(op.Hash.ToWire())
	buf.PutUint32LE(op.Index)
}

func encodeTxOut(buf *bytesutil.Buffer, out TxOut) {
	buf.PutUint64LE(out.Value)
	buf.PutVarBytes(out.Script)
}

// Hash returns the transaction hash: double-SHA-256 of Bytes(),
// byte-reversed into display order.
func (tx *Tx) Hash() chainhash.Hash {
	digest := bytesutil.DoubleSha256(tx.Bytes())
	h, _ := chainhash.NewHashFromWire(digest[:])
	return h
}

// NormalizedID hashes only the outpoints and outputs, leaving out
// input scripts and sequences, so it is stable under third-party
// mutation of a transaction's unlocking scripts (input malleability).
// Coinbase transactions have no meaningful outpoints, so they are
// omitted entirely rather than normalized. Unlike Bytes(), the
// outpoint and output lists are raw-concatenated with no var-int
// count prefix.
func (tx *Tx) NormalizedID() chainhash.Hash {
	buf := bytesutil.NewWriteBuffer(256)
	if !tx.IsCoinbase() {
		for _, in := range tx.Inputs {
			encodeOutPoint(buf, in.PrevOut)
		}
	}
	for _, out := range tx.Outputs {
		encodeTxOut(buf, out)
	}
	digest := bytesutil.DoubleSha256(buf.Bytes())
	h, _ := chainhash.NewHashFromWire(digest[:])
	return h
}

const maxTxSize = 4 * 1024 * 1024

// ParseTx decodes a transaction from its canonical wire encoding.
func ParseTx(buf *bytesutil.Buffer) (*Tx, error) {
	version, err := buf.GetInt32LE()
	if err != nil {
		return nil, err
	}
	inputCount, err := buf.GetVarInt()
	if err != nil {
		return nil, err
	}
	inputs := make([]TxIn, 0, inputCount)
	for i := uint64(0); i < inputCount; i++ {
		in, err := parseTxIn(buf)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	outputCount, err := buf.GetVarInt()
	if err != nil {
		return nil, err
	}
	outputs := make([]TxOut, 0, outputCount)
	for i := uint64(0); i < outputCount; i++ {
		out, err := parseTxOut(buf)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	lockTime, err := buf.GetUint32LE()
	if err != nil {
		return nil, err
	}
	return &Tx{Version: version, Inputs: inputs, Outputs: outputs, LockTime: lockTime}, nil
}

func parseOutPoint(buf *bytesutil.Buffer) (OutPoint, error) {
	wire, err := buf.GetBytes(chainhash.Size)
	if err != nil {
		return OutPoint{}, err
	}
	h, err := chainhash.NewHashFromWire(wire)
	if err != nil {
		return OutPoint{}, err
	}
	index, err := buf.GetUint32LE()
	if err != nil {
		return OutPoint{}, err
	}
	return OutPoint{Hash: h, Index: index}, nil
}

func parseTxIn(buf *bytesutil.Buffer) (TxIn, error) {
	prevOut, err := parseOutPoint(buf)
	if err != nil {
		return TxIn{}, err
	}
	script, err := buf.GetVarBytes(maxTxSize)
	if err != nil {
		return TxIn{}, err
	}
	sequence, err := buf.GetUint32LE()
	if err != nil {
		return TxIn{}, err
	}
	return TxIn{PrevOut: prevOut, Script: script, Sequence: sequence}, nil
}

func parseTxOut(buf *bytesutil.Buffer) (TxOut, error) {
	value, err := buf.GetUint64LE()
	if err != nil {
		return TxOut{}, err
	}
	script, err := buf.GetVarBytes(maxTxSize)
	if err != nil {
		return TxOut{}, err
	}
	return TxOut{Value: value, Script: script}, nil
}
