package p2p

import "fmt"

// ErrorCode classifies a core failure the way the dispatcher's failure
// taxonomy expects: distinguishing decode failures, semantic
// violations, protocol-floor failures, and configuration misuse so
// callers can decide the right listener callback or reject code.
type ErrorCode string

const (
	// ErrEndOfData means a decoder ran out of bytes; the message is
	// rejected and never recovered locally.
	ErrEndOfData ErrorCode = "END_OF_DATA"
	// ErrMalformed means a size exceeded a documented cap, a
	// variable-length field was too long, or magic/checksum/command
	// framing was wrong.
	ErrMalformed ErrorCode = "MALFORMED"
	// ErrInvalid means a semantic invariant was violated.
	ErrInvalid ErrorCode = "INVALID"
	// ErrObsolete means the peer's protocol version is below the
	// configured floor.
	ErrObsolete ErrorCode = "OBSOLETE"
	// ErrNonStandard means the peer lacks a required service.
	ErrNonStandard ErrorCode = "NON_STANDARD"
	// ErrCryptographicFailure means a signing, verification, or
	// encryption operation failed.
	ErrCryptographicFailure ErrorCode = "CRYPTOGRAPHIC_FAILURE"
	// ErrConfiguration means Configure was called incorrectly or was
	// never called before use; fatal to the process.
	ErrConfiguration ErrorCode = "CONFIGURATION"
)

// CoreError is the typed failure this package's decoders and
// validators return. It carries a description, a reason code, a
// severity-scaled ban score delta, and an optional hash for failures
// tied to a specific block (Hash) or transaction (TxHash).
type CoreError struct {
	Code     ErrorCode
	Msg      string
	BanDelta int
	Hash     *[32]byte
	TxHash   *[32]byte
}

func (e *CoreError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// banDeltaForCode gives each ErrorCode its default ban-score severity.
// Obsolete and NonStandard carry no ban delta of their own because §7
// disconnects those peers immediately rather than scoring them.
func banDeltaForCode(code ErrorCode) int {
	switch code {
	case ErrEndOfData:
		return 10
	case ErrMalformed:
		return 20
	case ErrInvalid:
		return 20
	case ErrCryptographicFailure:
		return 50
	case ErrObsolete, ErrNonStandard, ErrConfiguration:
		return 0
	default:
		return 10
	}
}

func coreErr(code ErrorCode, msg string) error {
	return &CoreError{Code: code, Msg: msg, BanDelta: banDeltaForCode(code)}
}

func coreErrHash(code ErrorCode, msg string, hash [32]byte) error {
	return &CoreError{Code: code, Msg: msg, BanDelta: banDeltaForCode(code), Hash: &hash}
}

func coreErrTxHash(code ErrorCode, msg string, hash [32]byte) error {
	return &CoreError{Code: code, Msg: msg, BanDelta: banDeltaForCode(code), TxHash: &hash}
}

// disconnectsImmediately reports whether a CoreError of this code
// should end the connection regardless of accumulated ban score, per
// §7's treatment of obsolete and non-standard peers.
func (e *CoreError) disconnectsImmediately() bool {
	return e != nil && (e.Code == ErrObsolete || e.Code == ErrNonStandard)
}

// RejectCodeFor maps a CoreError's classification onto the wire reject
// reason code a peer-facing rejection should carry.
func RejectCodeFor(err error) byte {
	ce, ok := err.(*CoreError)
	if !ok {
		return RejectMalformed
	}
	switch ce.Code {
	case ErrMalformed, ErrEndOfData:
		return RejectMalformed
	case ErrInvalid, ErrCryptographicFailure:
		return RejectInvalid
	case ErrObsolete:
		return RejectObsolete
	case ErrNonStandard:
		return RejectNonstandard
	default:
		return RejectMalformed
	}
}
