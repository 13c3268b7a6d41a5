package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/cory-johannsen/wodi/internal/werr"
)

// Reader is a forward-only cursor over an in-memory byte slice.
// Every failure is a *werr.FormatError carrying the offset where the read started.
type Reader struct {
	buf []byte
	off int
	enc Encoding
}

// NewReader returns a Reader positioned at the start of b.
//
// Precondition: b must not be modified while the Reader is in use.
func NewReader(b []byte, enc Encoding) *Reader {
	return &Reader{buf: b, enc: enc}
}

// ReadAll drains src into memory and returns a Reader over it.
//
// Postcondition: Returns a Reader positioned at offset 0 or a non-nil error.
func ReadAll(src io.Reader, enc Encoding) (*Reader, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("wire: reading stream: %w", err)
	}
	return NewReader(b, enc), nil
}

// Offset returns the absolute position of the next byte to be read.
func (r *Reader) Offset() int { return r.off }

// Len returns the total size of the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// Encoding returns the string encoding in use.
func (r *Reader) Encoding() Encoding { return r.enc }

func (r *Reader) need(n int, what string) error {
	if n < 0 || r.Remaining() < n {
		return werr.Format(r.off, fmt.Sprintf("reading %s: need %d bytes, %d remain", what, n, r.Remaining()), io.ErrUnexpectedEOF)
	}
	return nil
}

// ReadByte reads one byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1, "byte"); err != nil {
		return 0, err
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if err := r.need(1, "byte"); err != nil {
		return 0, err
	}
	return r.buf[r.off], nil
}

// ReadBytes reads exactly n bytes. The returned slice aliases the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n, "bytes"); err != nil {
		return nil, err
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadInt32 reads a little-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	if err := r.need(4, "int32"); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	return v, nil
}

// ReadCount reads an int32 element count and checks it against [0, max].
func (r *Reader) ReadCount(what string, max int) (int, error) {
	start := r.off
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > max {
		return 0, werr.Format(start, fmt.Sprintf("%s count %d outside [0, %d]", what, n, max), nil)
	}
	return int(n), nil
}

// ReadString reads a length-prefixed string. A zero length yields "".
func (r *Reader) ReadString() (string, error) {
	start := r.off
	n, err := r.ReadInt32()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if n < 0 {
		return "", werr.Format(start, fmt.Sprintf("negative string length %d", n), nil)
	}
	raw, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	if raw[len(raw)-1] != 0x00 {
		return "", werr.Format(start, "string is not NUL terminated", nil)
	}
	body := raw[:len(raw)-1]
	if r.enc.String() == UTF8.name {
		if !utf8.Valid(body) {
			return "", werr.Format(start, "string is not valid utf-8", nil)
		}
		return string(body), nil
	}
	s, err := r.enc.codec().NewDecoder().Bytes(body)
	if err != nil {
		return "", werr.Format(start, "decoding "+r.enc.String()+" string", err)
	}
	// The decoder substitutes U+FFFD for invalid sequences; that text would not
	// re-encode to the stored bytes.
	if bytes.ContainsRune(s, utf8.RuneError) {
		return "", werr.Format(start, "string is not valid "+r.enc.String(), nil)
	}
	return string(s), nil
}

// Expect consumes len(want) bytes and fails unless they equal want.
func (r *Reader) Expect(want []byte, what string) error {
	start := r.off
	got, err := r.ReadBytes(len(want))
	if err != nil {
		return werr.Format(start, what+" truncated", io.ErrUnexpectedEOF)
	}
	if !bytes.Equal(got, want) {
		for i := range want {
			if got[i] != want[i] {
				return werr.Format(start+i, fmt.Sprintf("%s mismatch: want 0x%02X, got 0x%02X", what, want[i], got[i]), nil)
			}
		}
	}
	return nil
}
