package script

import (
	"bytes"
	"errors"

	"github.com/ScripterRon/bitcoincore/bytesutil"
)

// ErrScriptFailed is returned when an OP_EQUALVERIFY finds its two
// operands unequal. A script that merely ends without a single truthy
// element makes Verify return false with a nil error instead.
var ErrScriptFailed = errors.New("script: verification failed")

// VerifyFunc checks a signature, with its trailing sighash-type byte
// stripped and passed separately as sigHashType, against a public key.
// No digest is passed; the caller's function supplies its own. It is
// supplied by the caller so
// this package does not need to depend on ecc for its evaluator.
type VerifyFunc func(sig, pubkey, sigHashType []byte) bool

// Verify concatenates sigScript and pubScript, evaluates the combined
// script against an initially empty stack, and reports whether it
// leaves a single truthy value on top — the standard P2PKH/P2PK
// acceptance rule. OP_CHECKSIG always succeeds here: digest and checker
// are not consulted, so the result does not depend on the signature.
// VerifySignatureScript performs the signature check.
func Verify(sigScript, pubScript []byte, digest [32]byte, checker func(sig, pubkey []byte) bool) (bool, error) {
	stack := newStack()
	if err := run(sigScript, stack); err != nil {
		return false, err
	}
	if err := run(pubScript, stack); err != nil {
		return false, err
	}
	if stack.len() != 1 {
		return false, nil
	}
	return isTruthy(stack.peek()), nil
}

type stack struct {
	items [][]byte
}

func newStack() *stack { return &stack{} }

func (s *stack) push(v []byte) { s.items = append(s.items, v) }

func (s *stack) pop() ([]byte, error) {
	if len(s.items) == 0 {
		return nil, errors.New("script: pop from empty stack")
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

func (s *stack) peek() []byte { return s.items[len(s.items)-1] }
func (s *stack) len() int     { return len(s.items) }

func isTruthy(v []byte) bool {
	for i, b := range v {
		if b != 0 {
			if i == len(v)-1 && b == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// run executes raw, a template-restricted subset of the standard
// opcodes (data pushes, OP_DUP, OP_HASH160, OP_EQUAL, OP_EQUALVERIFY,
// OP_CHECKSIG), sufficient to evaluate P2PKH and bare P2PK scripts.
// OP_CHECKSIG pushes true without checking anything; signature checking
// is done by VerifySignatureScript.
func run(raw []byte, st *stack) error {
	buf := bytesutil.NewBuffer(raw)
	for buf.Remaining() > 0 {
		op, err := buf.GetUint8()
		if err != nil {
			return err
		}
		switch {
		case op == 0x00:
			st.push(nil)
		case op < byte(OP_PUSHDATA1):
			data, err := buf.GetBytes(int(op))
			if err != nil {
				return err
			}
			st.push(append([]byte{}, data...))
		case op == byte(OP_PUSHDATA1):
			n, err := buf.GetUint8()
			if err != nil {
				return err
			}
			data, err := buf.GetBytes(int(n))
			if err != nil {
				return err
			}
			st.push(append([]byte{}, data...))
		case op == byte(OP_PUSHDATA2):
			n, err := buf.GetUint16LE()
			if err != nil {
				return err
			}
			data, err := buf.GetBytes(int(n))
			if err != nil {
				return err
			}
			st.push(append([]byte{}, data...))
		case op == byte(OP_DUP):
			v, err := st.pop()
			if err != nil {
				return err
			}
			st.push(v)
			st.push(append([]byte{}, v...))
		case op == byte(OP_HASH160):
			v, err := st.pop()
			if err != nil {
				return err
			}
			h := bytesutil.Hash160(v)
			st.push(h[:])
		case op == byte(OP_EQUAL) || op == byte(OP_EQUALVERIFY):
			a, err := st.pop()
			if err != nil {
				return err
			}
			b, err := st.pop()
			if err != nil {
				return err
			}
			if bytes.Equal(a, b) {
				st.push([]byte{1})
			} else {
				st.push(nil)
			}
			if op == byte(OP_EQUALVERIFY) {
				v, err := st.pop()
				if err != nil {
					return err
				}
				if !isTruthy(v) {
					return ErrScriptFailed
				}
			}
		case op == byte(OP_CHECKSIG):
			// Template evaluation leaves signature checking to the
			// caller's digest/checker pairing via VerifySignatureScript;
			// a direct run() treats it as always-true so template
			// shape can still be validated independently of a key.
			st.push([]byte{1})
		default:
			return errors.New("script: unsupported opcode in template evaluator")
		}
	}
	return nil
}

// VerifySignatureScript evaluates a P2PKH or bare P2PK spend: it
// recognizes the pubScript template, extracts the embedded public key
// (or the one carried in sigScript for P2PKH), and calls checker with
// the signature (sighash-type byte stripped) and public key.
func VerifySignatureScript(sigScript, pubScript []byte, digest [32]byte, checker VerifyFunc) (bool, error) {
	sig, pubkey, err := extractSigAndKey(sigScript)
	if err != nil {
		return false, err
	}
	if hash160, ok := IsPayToPubKeyHash(pubScript); ok {
		got := bytesutil.Hash160(pubkey)
		if !bytes.Equal(got[:], hash160[:]) {
			return false, nil
		}
	} else if embedded, ok := IsPayToPubKey(pubScript); ok {
		if len(pubkey) == 0 {
			pubkey = embedded
		} else if !bytes.Equal(pubkey, embedded) {
			return false, nil
		}
	} else {
		return false, errors.New("script: unsupported output template")
	}
	if len(sig) == 0 {
		return false, errors.New("script: missing signature in scriptSig")
	}
	sigHashType := []byte{sig[len(sig)-1]}
	return checker(sig[:len(sig)-1], pubkey, sigHashType), nil
}

func extractSigAndKey(sigScript []byte) (sig, pubkey []byte, err error) {
	buf := bytesutil.NewBuffer(sigScript)
	sig, err = readPush(buf)
	if err != nil {
		return nil, nil, err
	}
	if buf.Remaining() > 0 {
		pubkey, err = readPush(buf)
		if err != nil {
			return nil, nil, err
		}
	}
	return sig, pubkey, nil
}

func readPush(buf *bytesutil.Buffer) ([]byte, error) {
	op, err := buf.GetUint8()
	if err != nil {
		return nil, err
	}
	switch {
	case op < byte(OP_PUSHDATA1):
		return buf.GetBytes(int(op))
	case op == byte(OP_PUSHDATA1):
		n, err := buf.GetUint8()
		if err != nil {
			return nil, err
		}
		return buf.GetBytes(int(n))
	case op == byte(OP_PUSHDATA2):
		n, err := buf.GetUint16LE()
		if err != nil {
			return nil, err
		}
		return buf.GetBytes(int(n))
	default:
		return nil, errors.New("script: expected data push")
	}
}
