package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Writer accumulates the binary form of a file in memory.
type Writer struct {
	buf bytes.Buffer
	enc Encoding
}

// NewWriter returns an empty Writer that encodes strings with enc.
func NewWriter(enc Encoding) *Writer {
	return &Writer{enc: enc}
}

// PutByte appends one byte.
func (w *Writer) PutByte(b byte) {
	w.buf.WriteByte(b)
}

// PutBytes appends b verbatim.
func (w *Writer) PutBytes(b []byte) {
	w.buf.Write(b)
}

// PutInt32 appends a little-endian int32.
func (w *Writer) PutInt32(v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

// PutString appends s in length-prefixed form.
//
// Postcondition: Returns an error only when s cannot be represented in the encoding.
func (w *Writer) PutString(s string) error {
	enc, err := w.enc.codec().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return fmt.Errorf("wire: encoding %q as %s: %w", s, w.enc, err)
	}
	w.PutInt32(int32(len(enc) + 1))
	w.buf.Write(enc)
	w.buf.WriteByte(0x00)
	return nil
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// Bytes returns the accumulated output. The slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Encoding returns the string encoding in use.
func (w *Writer) Encoding() Encoding { return w.enc }
