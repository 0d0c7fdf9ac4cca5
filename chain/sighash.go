package chain

import (
	"github.com/ScripterRon/bitcoincore/bytesutil"
	"github.com/ScripterRon/bitcoincore/script"
)

// sighashPlaceholderValue is the wire value ("-1" as an unsigned
// 64-bit quantity) substituted for every output before the signed
// position under SIGHASH_SINGLE.
const sighashPlaceholderValue = ^uint64(0)

// ComputeSignatureHash builds the digest that ECDSA signs for input
// inputIndex of tx, given the script of the output it spends and the
// requested signature-hash type. It follows the construction: write
// version, the (possibly replaced/blanked) input list, the
// type-dependent output list, and lock time, then append the 4-byte
// sighash type and double-SHA-256 the result.
func ComputeSignatureHash(tx *Tx, inputIndex int, connectedScript []byte, hashType script.SigHashType) ([32]byte, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return [32]byte{}, chainErr(ErrInvalidSigHash, "input index out of range")
	}
	base := hashType.Base()
	if base == script.SigHashSingle && inputIndex >= len(tx.Outputs) {
		return [32]byte{}, chainErr(ErrInvalidSigHash, "SIGHASH_SINGLE index exceeds output count")
	}

	buf := bytesutil.NewWriteBuffer(256)
	buf.PutInt32LE(tx.Version)

	if hashType.HasAnyoneCanPay() {
		buf.PutVarInt(1)
		in := tx.Inputs[inputIndex]
		encodeOutPoint(buf, in.PrevOut)
		buf.PutVarBytes(connectedScript)
		buf.PutUint32LE(in.Sequence)
	} else {
		buf.PutVarInt(uint64(len(tx.Inputs)))
		for i, in := range tx.Inputs {
			encodeOutPoint(buf, in.PrevOut)
			if i == inputIndex {
				buf.PutVarBytes(connectedScript)
			} else {
				buf.PutVarBytes(nil)
			}
			switch {
			case i == inputIndex:
				buf.PutUint32LE(in.Sequence)
			case base == script.SigHashAll:
				buf.PutUint32LE(in.Sequence)
			default:
				buf.PutUint32LE(0)
			}
		}
	}

	switch base {
	case script.SigHashAll:
		buf.PutVarInt(uint64(len(tx.Outputs)))
		for _, out := range tx.Outputs {
			encodeTxOut(buf, out)
		}
	case script.SigHashNone:
		buf.PutVarInt(0)
	case script.SigHashSingle:
		buf.PutVarInt(uint64(inputIndex + 1))
		for i := 0; i <= inputIndex; i++ {
			if i == inputIndex {
				encodeTxOut(buf, tx.Outputs[i])
			} else {
				buf.PutUint64LE(sighashPlaceholderValue)
				buf.PutVarBytes(nil)
			}
		}
	default:
		return [32]byte{}, chainErr(ErrInvalidSigHash, "unrecognized base sighash type")
	}

	buf.PutUint32LE(tx.LockTime)
	buf.PutUint32LE(uint32(hashType))

	return bytesutil.DoubleSha256(buf.Bytes()), nil
}
