package bytesutil

import "errors"

var (
	errShortBase58  = errors.New("bytesutil: base58check payload too short")
	errBadChecksum  = errors.New("bytesutil: base58check checksum mismatch")
	errEndOfData    = errors.New("bytesutil: end of data")
	errNonMinimal   = errors.New("bytesutil: non-minimal var-int encoding")
	errStringTooBig = errors.New("bytesutil: length-prefixed string too long")
)

// ErrEndOfData is returned by every Buffer getter when fewer bytes remain
// than the operation requires. It corresponds to the EndOfData error
// category in the library's failure taxonomy.
var ErrEndOfData = errEndOfData

// ErrNonMinimalVarInt is returned by Buffer.GetVarInt when the encoding is not
// the shortest possible representation of the decoded value.
var ErrNonMinimalVarInt = errNonMinimal
