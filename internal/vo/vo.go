// Package vo provides range-validated scalar value objects.
//
// A value object can only be obtained through its constructor, which rejects
// values outside the kind's inclusive range with a *werr.RangeError (or a
// *werr.TextError for string rules). Value objects are immutable and compare
// with ==. The zero value of every kind is valid and wraps 0 or "".
package vo

import (
	"strconv"
	"strings"

	"github.com/cory-johannsen/wodi/internal/werr"
)

type intKind interface {
	bounds() (name string, min, max int)
}

// Int is a range-checked integer of kind K.
type Int[K intKind] struct {
	v int
}

func newInt[K intKind](v int) (Int[K], error) {
	var k K
	name, min, max := k.bounds()
	if err := werr.CheckRange(name, min, max, v); err != nil {
		return Int[K]{}, err
	}
	return Int[K]{v: v}, nil
}

// Int returns the wrapped value.
func (i Int[K]) Int() int { return i.v }

// Int32 returns the wrapped value as stored on the wire.
func (i Int[K]) Int32() int32 { return int32(i.v) }

func (i Int[K]) String() string { return strconv.Itoa(i.v) }

// Bounds returns the inclusive range accepted for this kind.
func (i Int[K]) Bounds() (min, max int) {
	var k K
	_, min, max = k.bounds()
	return min, max
}

type textKind interface {
	rules() (name string, multiline bool, maxBytes int)
}

// Text is a rule-checked string of kind K.
type Text[K textKind] struct {
	s string
}

func newText[K textKind](s string) (Text[K], error) {
	var k K
	name, multiline, maxBytes := k.rules()
	if !multiline && strings.ContainsAny(s, "\r\n") {
		return Text[K]{}, werr.Text(name, "must not contain a newline", s)
	}
	if maxBytes > 0 && len(s) > maxBytes {
		return Text[K]{}, werr.Text(name, "must be at most "+strconv.Itoa(maxBytes)+" bytes", s)
	}
	return Text[K]{s: s}, nil
}

func (t Text[K]) String() string { return t.s }

// Must panics if err is non-nil and returns v otherwise. It is intended for literals
// known to be valid.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
