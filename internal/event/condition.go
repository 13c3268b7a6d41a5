package event

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/collection"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// MaxConditions is the largest number of clauses one conditional branch holds.
const MaxConditions = 3

const flagElseCase = 0x10

// NumberOperator compares the two sides of a numeric condition.
type NumberOperator byte

const (
	NumberGreater NumberOperator = iota
	NumberGreaterOrEqual
	NumberEqual
	NumberLessOrEqual
	NumberLess
	NumberNotEqual
	NumberBitAnd
)

var numberOperatorNames = []string{">", ">=", "==", "<=", "<", "!=", "&"}

func (o NumberOperator) String() string {
	if int(o) < len(numberOperatorNames) {
		return numberOperatorNames[o]
	}
	return fmt.Sprintf("NumberOperator(%d)", byte(o))
}

// ParseNumberOperator converts the low nibble of a condition flag.
func ParseNumberOperator(b byte) (NumberOperator, error) {
	if int(b) >= len(numberOperatorNames) {
		return 0, werr.Range("NumberOperator", 0, len(numberOperatorNames)-1, int(b))
	}
	return NumberOperator(b), nil
}

// ConditionNumber is one clause of a numeric conditional branch.
type ConditionNumber struct {
	Left     int32
	Right    int32
	Operator NumberOperator
	// IsNotReferX treats Right as a literal even when it lies in a variable address band.
	IsNotReferX bool
}

func (c ConditionNumber) flag() int32 {
	return wire.PackBytes([4]byte{byte(c.Operator) | boolByte(c.IsNotReferX, 0x10)})
}

func (c *ConditionNumber) setFlag(v int32) error {
	if err := checkReserved("condition flag", v, 0x1F); err != nil {
		return err
	}
	hi, lo := nibbles(v)
	op, err := ParseNumberOperator(lo)
	if err != nil {
		return err
	}
	c.Operator = op
	c.IsNotReferX = hi != 0
	return nil
}

func newConditions[T any]() *collection.Collection[T] {
	var zero T
	c, err := collection.New(collection.Bounds[T]{
		Min:         1,
		Max:         MaxConditions,
		MakeDefault: func() T { return zero },
	})
	if err != nil {
		panic(fmt.Sprintf("event: condition bounds: %v", err))
	}
	return c
}

// resize grows or shrinks c to n elements, keeping the leading ones.
func resize[T any](c *collection.Collection[T], name string, n int) error {
	if err := werr.CheckRange(name, c.Min(), c.Max(), n); err != nil {
		return err
	}
	var zero T
	for c.Count() < n {
		if err := c.Add(zero); err != nil {
			return err
		}
	}
	if c.Count() > n {
		return c.RemoveRange(n, c.Count()-n)
	}
	return nil
}

// ConditionNumberStart opens a branch on up to three numeric clauses, with an
// optional else branch.
type ConditionNumberStart struct {
	base
	IsElseCase bool
	conditions *collection.Collection[ConditionNumber]
}

// NewConditionNumberStart returns a branch holding conds.
//
// Precondition: 1 <= len(conds) <= MaxConditions.
func NewConditionNumberStart(conds ...ConditionNumber) (*ConditionNumberStart, error) {
	c := &ConditionNumberStart{conditions: newConditions[ConditionNumber]()}
	if len(conds) == 0 {
		return c, nil
	}
	if err := c.SetConditions(conds); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ConditionNumberStart) Code() Code { return CodeConditionNumberStart }

// Conditions returns a copy of the clauses.
func (c *ConditionNumberStart) Conditions() []ConditionNumber { return c.conditions.Items() }

// SetConditions replaces every clause.
func (c *ConditionNumberStart) SetConditions(conds []ConditionNumber) error {
	if err := werr.CheckRange("condition count", 1, MaxConditions, len(conds)); err != nil {
		return err
	}
	if err := resize(c.conditions, "condition count", len(conds)); err != nil {
		return err
	}
	for i, cond := range conds {
		if err := c.conditions.Set(i, cond); err != nil {
			return err
		}
	}
	return nil
}

func (c *ConditionNumberStart) header() int32 {
	return wire.PackBytes([4]byte{byte(c.conditions.Count()) | boolByte(c.IsElseCase, flagElseCase)})
}

func (c *ConditionNumberStart) setHeader(v int32) error {
	if err := checkReserved("condition header", v, 0x1F); err != nil {
		return err
	}
	hi, lo := nibbles(v)
	if err := resize(c.conditions, "condition count", int(lo)); err != nil {
		return err
	}
	c.IsElseCase = hi != 0
	return nil
}

func (c *ConditionNumberStart) numberFields() []numberField {
	fields := []numberField{{name: "Header", get: c.header, set: c.setHeader}}
	for i := range c.conditions.Count() {
		fields = append(fields,
			conditionField(c.conditions, i, "Left",
				func(v ConditionNumber) int32 { return v.Left },
				func(v *ConditionNumber, x int32) error { v.Left = x; return nil }),
			conditionField(c.conditions, i, "Right",
				func(v ConditionNumber) int32 { return v.Right },
				func(v *ConditionNumber, x int32) error { v.Right = x; return nil }),
			conditionField(c.conditions, i, "Flag",
				ConditionNumber.flag,
				(*ConditionNumber).setFlag),
		)
	}
	return fields
}

// conditionField addresses one numeric part of clause i.
func conditionField[T any](list *collection.Collection[T], i int, name string, get func(T) int32, set func(*T, int32) error) numberField {
	return numberField{
		name: fmt.Sprintf("Condition[%d].%s", i, name),
		get: func() int32 {
			v, _ := list.Get(i)
			return get(v)
		},
		set: func(x int32) error {
			v, err := list.Get(i)
			if err != nil {
				return err
			}
			if err := set(&v, x); err != nil {
				return err
			}
			return list.Set(i, v)
		},
	}
}

// StringOperator compares the two sides of a string condition.
type StringOperator byte

const (
	StringEqual StringOperator = iota
	StringNotEqual
	StringContains
	StringStartsWith
)

var stringOperatorNames = []string{"==", "!=", "contains", "starts with"}

func (o StringOperator) String() string {
	if int(o) < len(stringOperatorNames) {
		return stringOperatorNames[o]
	}
	return fmt.Sprintf("StringOperator(%d)", byte(o))
}

// ParseStringOperator converts the low nibble of a string condition flag.
func ParseStringOperator(b byte) (StringOperator, error) {
	if int(b) >= len(stringOperatorNames) {
		return 0, werr.Range("StringOperator", 0, len(stringOperatorNames)-1, int(b))
	}
	return StringOperator(b), nil
}

// ConditionString is one clause of a string conditional branch. The right side is
// either the literal Right or the string variable at RightVariable.
type ConditionString struct {
	Left            int32
	RightVariable   int32
	Operator        StringOperator
	RightIsVariable bool
	Right           string
}

func (c ConditionString) flag() int32 {
	return wire.PackBytes([4]byte{byte(c.Operator) | boolByte(c.RightIsVariable, 0x10)})
}

func (c *ConditionString) setFlag(v int32) error {
	if err := checkReserved("condition flag", v, 0x1F); err != nil {
		return err
	}
	hi, lo := nibbles(v)
	op, err := ParseStringOperator(lo)
	if err != nil {
		return err
	}
	c.Operator = op
	c.RightIsVariable = hi != 0
	return nil
}

// ConditionStringStart opens a branch on up to three string clauses.
type ConditionStringStart struct {
	base
	IsElseCase bool
	conditions *collection.Collection[ConditionString]
}

// NewConditionStringStart returns a branch holding conds.
//
// Precondition: 1 <= len(conds) <= MaxConditions.
func NewConditionStringStart(conds ...ConditionString) (*ConditionStringStart, error) {
	c := &ConditionStringStart{conditions: newConditions[ConditionString]()}
	if len(conds) == 0 {
		return c, nil
	}
	if err := c.SetConditions(conds); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ConditionStringStart) Code() Code { return CodeConditionStringStart }

// Conditions returns a copy of the clauses.
func (c *ConditionStringStart) Conditions() []ConditionString { return c.conditions.Items() }

// SetConditions replaces every clause.
func (c *ConditionStringStart) SetConditions(conds []ConditionString) error {
	if err := werr.CheckRange("condition count", 1, MaxConditions, len(conds)); err != nil {
		return err
	}
	if err := resize(c.conditions, "condition count", len(conds)); err != nil {
		return err
	}
	for i, cond := range conds {
		if err := c.conditions.Set(i, cond); err != nil {
			return err
		}
	}
	return nil
}

func (c *ConditionStringStart) header() int32 {
	return wire.PackBytes([4]byte{byte(c.conditions.Count()) | boolByte(c.IsElseCase, flagElseCase)})
}

func (c *ConditionStringStart) setHeader(v int32) error {
	if err := checkReserved("condition header", v, 0x1F); err != nil {
		return err
	}
	hi, lo := nibbles(v)
	if err := resize(c.conditions, "condition count", int(lo)); err != nil {
		return err
	}
	c.IsElseCase = hi != 0
	return nil
}

func (c *ConditionStringStart) numberFields() []numberField {
	fields := []numberField{{name: "Header", get: c.header, set: c.setHeader}}
	for i := range c.conditions.Count() {
		fields = append(fields,
			conditionField(c.conditions, i, "Left",
				func(v ConditionString) int32 { return v.Left },
				func(v *ConditionString, x int32) error { v.Left = x; return nil }),
			conditionField(c.conditions, i, "RightVariable",
				func(v ConditionString) int32 { return v.RightVariable },
				func(v *ConditionString, x int32) error { v.RightVariable = x; return nil }),
			conditionField(c.conditions, i, "Flag",
				ConditionString.flag,
				(*ConditionString).setFlag),
		)
	}
	return fields
}

func (c *ConditionStringStart) stringFields() []stringField {
	fields := make([]stringField, 0, c.conditions.Count())
	for i := range c.conditions.Count() {
		fields = append(fields, stringField{
			name: fmt.Sprintf("Condition[%d].Right", i),
			get: func() string {
				v, _ := c.conditions.Get(i)
				return v.Right
			},
			set: func(s string) error {
				v, err := c.conditions.Get(i)
				if err != nil {
					return err
				}
				v.Right = s
				return c.conditions.Set(i, v)
			},
		})
	}
	return fields
}
