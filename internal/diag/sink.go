// Package diag defines the diagnostics sink the codec reports non-fatal warnings to.
package diag

import "go.uber.org/zap"

// Sink receives warnings that do not block an operation, such as values inside a
// hard range but outside its recommended safety range.
//
// *zap.Logger satisfies Sink.
type Sink interface {
	Warn(msg string, fields ...zap.Field)
}

// Nop returns a Sink that discards everything.
func Nop() Sink {
	return zap.NewNop()
}

// Or returns s, or Nop when s is nil.
//
// Postcondition: the result is never nil.
func Or(s Sink) Sink {
	if s == nil {
		return Nop()
	}
	return s
}
