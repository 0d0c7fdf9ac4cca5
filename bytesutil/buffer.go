package bytesutil

import "encoding/binary"

// MaxVarIntPrefixedLen bounds how large a var-int-prefixed byte string or
// UTF-8 string this package will allocate for in one shot, protecting
// against a peer declaring an enormous length and never sending the
// bytes. Callers that need a tighter, command-specific bound should check
// the decoded length themselves before calling GetVarString/GetVarBytes.
const MaxVarIntPrefixedLen = 32 * 1024 * 1024

// Buffer is a single mutable byte cursor used for both encoding and
// decoding. Put* methods append to the underlying slice; Get* methods
// read from the current position and advance it. All Get* methods return
// ErrEndOfData when the requested width exceeds the remaining bytes.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer wraps b for reading. The returned Buffer does not copy b; the
// caller must not mutate b afterward.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{data: b}
}

// NewWriteBuffer returns an empty Buffer sized for at least capHint bytes,
// ready for Put* calls.
func NewWriteBuffer(capHint int) *Buffer {
	return &Buffer{data: make([]byte, 0, capHint)}
}

// Bytes returns the full underlying byte slice (from position 0, not the
// current cursor position).
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Pos returns the current read/write cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int {
	if b.pos >= len(b.data) {
		return 0
	}
	return len(b.data) - b.pos
}

// Skip advances the read cursor by n bytes without returning them. It
// fails with ErrEndOfData if fewer than n bytes remain.
func (b *Buffer) Skip(n int) error {
	if n < 0 || b.Remaining() < n {
		return ErrEndOfData
	}
	b.pos += n
	return nil
}

func (b *Buffer) getExact(n int) ([]byte, error) {
	if n < 0 || b.Remaining() < n {
		return nil, ErrEndOfData
	}
	start := b.pos
	b.pos += n
	return b.data[start:b.pos], nil
}

// GetBytes reads and returns the next n bytes, advancing the cursor. The
// returned slice aliases the underlying buffer; callers that need to
// retain it beyond the buffer's lifetime should copy it.
func (b *Buffer) GetBytes(n int) ([]byte, error) {
	return b.getExact(n)
}

// PutBytes appends raw bytes without any length prefix.
func (b *Buffer) PutBytes(p []byte) {
	b.data = append(b.data, p...)
}

// GetUint8 reads one byte.
func (b *Buffer) GetUint8() (uint8, error) {
	v, err := b.getExact(1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// PutUint8 appends one byte.
func (b *Buffer) PutUint8(v uint8) {
	b.data = append(b.data, v)
}

// GetUint16LE reads a little-endian uint16.
func (b *Buffer) GetUint16LE() (uint16, error) {
	v, err := b.getExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(v), nil
}

// PutUint16LE appends a little-endian uint16.
func (b *Buffer) PutUint16LE(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// GetUint32LE reads a little-endian uint32.
func (b *Buffer) GetUint32LE() (uint32, error) {
	v, err := b.getExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(v), nil
}

// PutUint32LE appends a little-endian uint32.
func (b *Buffer) PutUint32LE(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// GetUint32BE reads a big-endian uint32 (used for wire magic numbers).
func (b *Buffer) GetUint32BE() (uint32, error) {
	v, err := b.getExact(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(v), nil
}

// PutUint32BE appends a big-endian uint32.
func (b *Buffer) PutUint32BE(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// GetInt32LE reads a little-endian, two's-complement int32.
func (b *Buffer) GetInt32LE() (int32, error) {
	v, err := b.GetUint32LE()
	return int32(v), err
}

// PutInt32LE appends a little-endian, two's-complement int32.
func (b *Buffer) PutInt32LE(v int32) {
	b.PutUint32LE(uint32(v))
}

// GetUint64LE reads a little-endian uint64.
func (b *Buffer) GetUint64LE() (uint64, error) {
	v, err := b.getExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(v), nil
}

// PutUint64LE appends a little-endian uint64.
func (b *Buffer) PutUint64LE(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// GetInt64LE reads a little-endian, two's-complement int64.
func (b *Buffer) GetInt64LE() (int64, error) {
	v, err := b.GetUint64LE()
	return int64(v), err
}

// PutInt64LE appends a little-endian, two's-complement int64.
func (b *Buffer) PutInt64LE(v int64) {
	b.PutUint64LE(uint64(v))
}

// GetVarInt reads a canonical variable-length integer and rejects
// non-minimal encodings, per the peer-facing decision recorded in
// DESIGN.md.
func (b *Buffer) GetVarInt() (uint64, error) {
	return b.getVarInt(true)
}

// GetVarIntPermissive reads a variable-length integer without rejecting
// non-minimal encodings. It exists for internal, non-peer-facing uses
// where the source bytes are never attacker-controlled.
func (b *Buffer) GetVarIntPermissive() (uint64, error) {
	return b.getVarInt(false)
}

func (b *Buffer) getVarInt(enforceMinimal bool) (uint64, error) {
	tag, err := b.GetUint8()
	if err != nil {
		return 0, err
	}
	switch {
	case tag < 0xFD:
		return uint64(tag), nil
	case tag == 0xFD:
		v, err := b.GetUint16LE()
		if err != nil {
			return 0, err
		}
		if enforceMinimal && v < 0xFD {
			return 0, ErrNonMinimalVarInt
		}
		return uint64(v), nil
	case tag == 0xFE:
		v, err := b.GetUint32LE()
		if err != nil {
			return 0, err
		}
		if enforceMinimal && v <= 0xFFFF {
			return 0, ErrNonMinimalVarInt
		}
		return uint64(v), nil
	default: // 0xFF
		v, err := b.GetUint64LE()
		if err != nil {
			return 0, err
		}
		if enforceMinimal && v <= 0xFFFFFFFF {
			return 0, ErrNonMinimalVarInt
		}
		return v, nil
	}
}

// PutVarInt appends the canonical variable-length encoding of v.
func (b *Buffer) PutVarInt(v uint64) {
	b.data = append(b.data, EncodeVarInt(v)...)
}

// EncodeVarInt returns the canonical variable-length encoding of v
// without requiring a Buffer.
func EncodeVarInt(v uint64) []byte {
	switch {
	case v <= 0xFC:
		return []byte{byte(v)}
	case v <= 0xFFFF:
		out := make([]byte, 3)
		out[0] = 0xFD
		binary.LittleEndian.PutUint16(out[1:], uint16(v))
		return out
	case v <= 0xFFFFFFFF:
		out := make([]byte, 5)
		out[0] = 0xFE
		binary.LittleEndian.PutUint32(out[1:], uint32(v))
		return out
	default:
		out := make([]byte, 9)
		out[0] = 0xFF
		binary.LittleEndian.PutUint64(out[1:], v)
		return out
	}
}

// VarIntLen returns the number of bytes EncodeVarInt(v) would produce.
func VarIntLen(v uint64) int {
	switch {
	case v <= 0xFC:
		return 1
	case v <= 0xFFFF:
		return 3
	case v <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}

// GetVarBytes reads a var-int length prefix followed by that many raw
// bytes.
func (b *Buffer) GetVarBytes(maxLen uint64) ([]byte, error) {
	n, err := b.GetVarInt()
	if err != nil {
		return nil, err
	}
	if n > maxLen {
		return nil, errStringTooBig
	}
	return b.getExact(int(n))
}

// PutVarBytes appends a var-int length prefix followed by p.
func (b *Buffer) PutVarBytes(p []byte) {
	b.PutVarInt(uint64(len(p)))
	b.PutBytes(p)
}

// GetVarString reads a var-int-length-prefixed UTF-8 string.
func (b *Buffer) GetVarString(maxLen uint64) (string, error) {
	raw, err := b.GetVarBytes(maxLen)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// PutVarString appends a var-int-length-prefixed UTF-8 string.
func (b *Buffer) PutVarString(s string) {
	b.PutVarBytes([]byte(s))
}
