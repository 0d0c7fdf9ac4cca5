package chain

import (
	"github.com/ScripterRon/bitcoincore/ecc"
	"github.com/ScripterRon/bitcoincore/script"
)

// ConnectedOutput describes the output a transaction input spends,
// the information ComputeSignatureHash needs to build the correct
// digest for that input.
type ConnectedOutput struct {
	Script []byte
	Value  uint64
}

// SignatureBuilder signs each of a transaction's inputs against the
// outputs they spend, installing a standard P2PKH scriptSig built from
// the DER signature, the sighash-type byte, and the signer's public
// key.
type SignatureBuilder struct {
	Tx       *Tx
	Outputs  []ConnectedOutput
	HashType script.SigHashType
}

// NewSignatureBuilder starts a signing session for tx against the
// given connected outputs, one per input in the same order, using
// hashType for every input signed through SignInput.
func NewSignatureBuilder(tx *Tx, outputs []ConnectedOutput, hashType script.SigHashType) *SignatureBuilder {
	return &SignatureBuilder{Tx: tx, Outputs: outputs, HashType: hashType}
}

// SignInput computes the signature hash for inputIndex, signs it with
// key, and installs the resulting P2PKH scriptSig on that input.
func (b *SignatureBuilder) SignInput(inputIndex int, key *ecc.PrivateKey) error {
	if inputIndex < 0 || inputIndex >= len(b.Outputs) {
		return chainErr(ErrInvalidSigHash, "input index has no connected output")
	}
	digest, err := ComputeSignatureHash(b.Tx, inputIndex, b.Outputs[inputIndex].Script, b.HashType)
	if err != nil {
		return err
	}
	sig := ecc.Sign(key, digest)
	sigWithType := append(sig.DER(), byte(b.HashType))
	b.Tx.Inputs[inputIndex].Script = script.SignatureScript(sigWithType, key.PubKey().Bytes())
	return nil
}

// SignAll signs every input in order using the corresponding key from
// keys, which must have the same length as the builder's input list.
func (b *SignatureBuilder) SignAll(keys []*ecc.PrivateKey) error {
	if len(keys) != len(b.Tx.Inputs) {
		return chainErr(ErrInvalidSigHash, "key count does not match input count")
	}
	for i, key := range keys {
		if err := b.SignInput(i, key); err != nil {
			return err
		}
	}
	return nil
}
