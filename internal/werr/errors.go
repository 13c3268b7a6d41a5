// Package werr defines the error taxonomy shared by the codec packages.
//
// Every structured error type matches one sentinel through errors.Is so callers
// can branch on the category without caring about the concrete type.
package werr

import (
	"errors"
	"fmt"
)

var (
	// ErrRange reports a scalar outside its hard [min, max] range.
	ErrRange = errors.New("value out of range")
	// ErrCapacity reports a collection mutation that would violate its capacity bounds.
	ErrCapacity = errors.New("capacity violated")
	// ErrNull reports a nil value passed where one is required.
	ErrNull = errors.New("nil value")
	// ErrIndex reports an index outside valid bounds.
	ErrIndex = errors.New("index out of range")
	// ErrFormat reports decoded bytes that do not match the expected layout.
	ErrFormat = errors.New("malformed data")
	// ErrClassification reports an integer that no variable address kind claims.
	ErrClassification = errors.New("unclassifiable variable address")
	// ErrUnknownCommand reports an event command code with no registered variant.
	ErrUnknownCommand = errors.New("unknown event command code")
	// ErrOperation reports an arithmetic operation whose result is invalid.
	ErrOperation = errors.New("invalid operation")
)

// RangeError reports a value outside [Min, Max] for the named parameter.
type RangeError struct {
	Param string
	Min   int
	Max   int
	Value int
}

// Range constructs a RangeError.
func Range(param string, min, max, value int) *RangeError {
	return &RangeError{Param: param, Min: min, Max: max, Value: value}
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be in [%d, %d], got %d", e.Param, e.Min, e.Max, e.Value)
}

// Is reports whether target is ErrRange.
func (e *RangeError) Is(target error) bool { return target == ErrRange }

// TextError reports a string value violating a text rule such as "no newline".
type TextError struct {
	Param string
	Rule  string
	Value string
}

// Text constructs a TextError. It matches ErrRange.
func Text(param, rule, value string) *TextError {
	return &TextError{Param: param, Rule: rule, Value: value}
}

func (e *TextError) Error() string {
	return fmt.Sprintf("%s %s, got %q", e.Param, e.Rule, e.Value)
}

// Is reports whether target is ErrRange.
func (e *TextError) Is(target error) bool { return target == ErrRange }

// CapacityError reports a mutation that would push Count outside [Min, Max].
type CapacityError struct {
	Op    string
	Count int
	Delta int
	Min   int
	Max   int
}

// Capacity constructs a CapacityError.
func Capacity(op string, count, delta, min, max int) *CapacityError {
	return &CapacityError{Op: op, Count: count, Delta: delta, Min: min, Max: max}
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: count %d%+d leaves capacity range [%d, %d]",
		e.Op, e.Count, e.Delta, e.Min, e.Max)
}

// Is reports whether target is ErrCapacity.
func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }

// IndexError reports an index outside [Min, Max].
type IndexError struct {
	Param string
	Index int
	Min   int
	Max   int
}

// Index constructs an IndexError.
func Index(param string, index, min, max int) *IndexError {
	return &IndexError{Param: param, Index: index, Min: min, Max: max}
}

func (e *IndexError) Error() string {
	if e.Max < e.Min {
		return fmt.Sprintf("%s %d: no valid index", e.Param, e.Index)
	}
	return fmt.Sprintf("%s must be in [%d, %d], got %d", e.Param, e.Min, e.Max, e.Index)
}

// Is reports whether target is ErrIndex.
func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// NullError reports a nil argument.
type NullError struct {
	Param string
}

// Null constructs a NullError.
func Null(param string) *NullError {
	return &NullError{Param: param}
}

func (e *NullError) Error() string {
	return fmt.Sprintf("%s must not be nil", e.Param)
}

// Is reports whether target is ErrNull.
func (e *NullError) Is(target error) bool { return target == ErrNull }

// FormatError reports malformed input at an absolute byte offset.
// Err, when set, is the underlying cause.
type FormatError struct {
	Offset int
	Msg    string
	Err    error
}

// Format constructs a FormatError.
func Format(offset int, msg string, err error) *FormatError {
	return &FormatError{Offset: offset, Msg: msg, Err: err}
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("offset %d (0x%X): %s: %v", e.Offset, e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("offset %d (0x%X): %s", e.Offset, e.Offset, e.Msg)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error { return e.Err }

// ClassificationError reports a raw address value that belongs to no kind.
type ClassificationError struct {
	Value int
}

// Classification constructs a ClassificationError.
func Classification(value int) *ClassificationError {
	return &ClassificationError{Value: value}
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%d does not belong to any variable address kind", e.Value)
}

// Is reports whether target is ErrClassification.
func (e *ClassificationError) Is(target error) bool { return target == ErrClassification }

// OperationError reports an operation whose result failed validation.
type OperationError struct {
	Op  string
	Err error
}

// Operation constructs an OperationError.
func Operation(op string, err error) *OperationError {
	return &OperationError{Op: op, Err: err}
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Is reports whether target is ErrOperation.
func (e *OperationError) Is(target error) bool { return target == ErrOperation }

// Unwrap returns the validation failure.
func (e *OperationError) Unwrap() error { return e.Err }

// CheckRange returns a RangeError when value is outside [min, max].
func CheckRange(param string, min, max, value int) error {
	if value < min || value > max {
		return Range(param, min, max, value)
	}
	return nil
}

// CheckIndex returns an IndexError when index is outside [0, count-1].
func CheckIndex(param string, index, count int) error {
	if index < 0 || index >= count {
		return Index(param, index, 0, count-1)
	}
	return nil
}
