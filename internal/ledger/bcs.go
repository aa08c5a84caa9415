package ledger

import (
	"bytes"
	"encoding/binary"
)

// Encoder is a minimal BCS (binary canonical serialization) writer covering
// the subset needed for entry-function transactions and authenticators.
// All integers are little-endian; lengths are ULEB128 prefixed.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Uleb128 writes an unsigned LEB128 length/variant tag.
func (e *Encoder) Uleb128(v uint32) *Encoder {
	for v >= 0x80 {
		e.buf.WriteByte(byte(v&0x7f) | 0x80)
		v >>= 7
	}
	e.buf.WriteByte(byte(v))

	return e
}

// U8 writes a single byte.
func (e *Encoder) U8(v uint8) *Encoder {
	e.buf.WriteByte(v)

	return e
}

// U64 writes a little-endian uint64.
func (e *Encoder) U64(v uint64) *Encoder {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])

	return e
}

// Bool writes a canonical bool byte.
func (e *Encoder) Bool(v bool) *Encoder {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}

	return e
}

// FixedBytes writes raw bytes without a length prefix.
func (e *Encoder) FixedBytes(b []byte) *Encoder {
	e.buf.Write(b)

	return e
}

// Bytes writes a ULEB128 length-prefixed byte vector.
func (e *Encoder) Bytes(b []byte) *Encoder {
	e.Uleb128(uint32(len(b)))
	e.buf.Write(b)

	return e
}

// String writes a ULEB128 length-prefixed UTF-8 string.
func (e *Encoder) String(s string) *Encoder {
	return e.Bytes([]byte(s))
}

// Encoded returns the accumulated bytes.
func (e *Encoder) Encoded() []byte {
	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())

	return out
}
