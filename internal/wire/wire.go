// Package wire provides the byte-level cursor used by every codec in this module.
//
// All multi-byte integers are little-endian. Strings are length-prefixed: an int32 byte
// count that includes a trailing NUL, the encoded bytes, then the NUL itself.
package wire

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding selects the character set used for length-prefixed strings.
type Encoding struct {
	name string
	enc  encoding.Encoding
}

var (
	// ShiftJIS is the editor's native string encoding.
	ShiftJIS = Encoding{name: "shift_jis", enc: japanese.ShiftJIS}
	// UTF8 is used by projects saved in UTF-8 mode.
	UTF8 = Encoding{name: "utf-8", enc: unicode.UTF8}
)

// ParseEncoding resolves a configuration name to an Encoding.
//
// Postcondition: Returns ShiftJIS or UTF8, or a non-nil error for unknown names.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "_")) {
	case "shift_jis", "sjis", "":
		return ShiftJIS, nil
	case "utf_8", "utf8":
		return UTF8, nil
	}
	return Encoding{}, fmt.Errorf("wire: unknown string encoding %q", name)
}

// String returns the configuration name of the encoding.
func (e Encoding) String() string {
	if e.enc == nil {
		return ShiftJIS.name
	}
	return e.name
}

func (e Encoding) codec() encoding.Encoding {
	if e.enc == nil {
		return ShiftJIS.enc
	}
	return e.enc
}

// Version identifies an editor file format revision, in hundredths (2.24 is 224).
type Version int

const (
	V1_31 Version = 131
	V2_00 Version = 200
	V2_10 Version = 210
	V2_20 Version = 220
	V2_24 Version = 224
	V3_00 Version = 300
)

// Latest is the newest format revision this module writes.
const Latest = V3_00

// ParseVersion parses a "major.minor" version string such as "2.24".
//
// Postcondition: Returns a positive Version or a non-nil error.
func ParseVersion(s string) (Version, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return 0, fmt.Errorf("wire: version %q must be major.minor", s)
	}
	ma, err := strconv.Atoi(major)
	if err != nil || ma < 1 {
		return 0, fmt.Errorf("wire: invalid major version in %q", s)
	}
	if len(minor) != 2 {
		return 0, fmt.Errorf("wire: minor version in %q must have two digits", s)
	}
	mi, err := strconv.Atoi(minor)
	if err != nil || mi < 0 {
		return 0, fmt.Errorf("wire: invalid minor version in %q", s)
	}
	return Version(ma*100 + mi), nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%02d", int(v)/100, int(v)%100)
}

// PackBytes combines four bytes into one numeric slot, b[0] being least significant.
func PackBytes(b [4]byte) int32 {
	return int32(binary.LittleEndian.Uint32(b[:]))
}

// UnpackBytes splits a numeric slot into its four bytes, least significant first.
func UnpackBytes(v int32) [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	return b
}
