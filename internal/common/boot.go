// Package common models common events: reusable event scripts with a boot
// condition, argument descriptors, self-variable names and an optional return value.
package common

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/werr"
)

// BootType decides when a common event starts.
type BootType byte

const (
	BootCalledOnly BootType = iota
	BootAuto
	BootParallel
	BootParallelAlways
)

var bootTypeNames = []string{"CalledOnly", "Auto", "Parallel", "ParallelAlways"}

func (b BootType) String() string {
	if int(b) < len(bootTypeNames) {
		return bootTypeNames[b]
	}
	return fmt.Sprintf("BootType(%d)", byte(b))
}

// DefaultBootLeft is the variable a fresh boot condition compares.
const DefaultBootLeft int32 = 2000000

// BootCondition starts an automatic or parallel common event while
// LeftSide Operator RightSide holds.
type BootCondition struct {
	Type      BootType
	Operator  event.NumberOperator
	LeftSide  int32
	RightSide int32
}

// NewBootCondition returns the default condition: called only, 2000000 > 0.
func NewBootCondition() BootCondition {
	return BootCondition{LeftSide: DefaultBootLeft}
}

// Validate reports an out-of-range type or operator.
func (b BootCondition) Validate() error {
	if int(b.Type) >= len(bootTypeNames) {
		return werr.Range("BootType", 0, len(bootTypeNames)-1, int(b.Type))
	}
	if _, err := event.ParseNumberOperator(byte(b.Operator)); err != nil {
		return err
	}
	return nil
}

func (b BootCondition) packed() byte {
	return byte(b.Operator)<<4 | byte(b.Type)
}

func unpackBoot(v byte) BootCondition {
	return BootCondition{Type: BootType(v & 0x0F), Operator: event.NumberOperator(v >> 4)}
}

// LabelColor is the colour of a common event in the editor's list.
type LabelColor int32

const (
	LabelBlack LabelColor = iota
	LabelRed
	LabelBlue
	LabelGreen
	LabelPurple
	LabelYellow
	LabelGray
)

var labelColorNames = []string{"Black", "Red", "Blue", "Green", "Purple", "Yellow", "Gray"}

func (c LabelColor) String() string {
	if c >= 0 && int(c) < len(labelColorNames) {
		return labelColorNames[c]
	}
	return fmt.Sprintf("LabelColor(%d)", int32(c))
}

// ParseLabelColor converts a stored colour code.
func ParseLabelColor(v int32) (LabelColor, error) {
	if v < 0 || int(v) >= len(labelColorNames) {
		return 0, werr.Range("LabelColor", 0, len(labelColorNames)-1, int(v))
	}
	return LabelColor(v), nil
}
