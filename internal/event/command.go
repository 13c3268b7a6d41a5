// Package event models event commands: tagged, variable-length records whose
// numeric and string field counts are computed from their own state.
//
// Numeric field 0 of every command is its Code. The remaining fields are exposed
// through the package-level accessors NumberVariable, SetNumberVariable,
// StringVariable and SetStringVariable, which dispatch to the variant's field table.
// Field tables are rebuilt on every access, so setting a flag immediately changes
// the counts reported afterwards.
package event

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/charamove"
	"github.com/cory-johannsen/wodi/internal/vo"
	"github.com/cory-johannsen/wodi/internal/werr"
)

// Command is one event command. The set of implementations is closed to this package.
type Command interface {
	Code() Code
	Indent() int
	// SetIndent sets the nesting depth shown in the editor.
	SetIndent(v int) error
	Owner() address.Owner
	// ActionEntry returns the embedded move script, or nil when the command has none.
	ActionEntry() *charamove.ActionEntry

	numberFields() []numberField
	stringFields() []stringField
	setActionEntry(e *charamove.ActionEntry) error
	attach(o address.Owner)
}

type numberField struct {
	name string
	get  func() int32
	set  func(int32) error
}

type stringField struct {
	name string
	get  func() string
	set  func(string) error
}

// base carries the state every command shares.
type base struct {
	indent vo.Indent
	owner  address.Owner
}

func (b *base) Indent() int { return b.indent.Int() }

func (b *base) SetIndent(v int) error {
	i, err := vo.NewIndent(v)
	if err != nil {
		return err
	}
	b.indent = i
	return nil
}

func (b *base) Owner() address.Owner                { return b.owner }
func (b *base) ActionEntry() *charamove.ActionEntry { return nil }
func (b *base) numberFields() []numberField         { return nil }
func (b *base) stringFields() []stringField         { return nil }
func (b *base) attach(o address.Owner)              { b.owner = o }

func (b *base) setActionEntry(*charamove.ActionEntry) error {
	return fmt.Errorf("command does not carry an action entry")
}

// NumberVariableCount returns the number of numeric fields, including the code slot.
func NumberVariableCount(c Command) int {
	return 1 + len(c.numberFields())
}

// StringVariableCount returns the number of string fields.
func StringVariableCount(c Command) int {
	return len(c.stringFields())
}

// NumberVariable returns numeric field i. Field 0 is the command code.
func NumberVariable(c Command, i int) (int32, error) {
	if i == 0 {
		return int32(c.Code()), nil
	}
	fields := c.numberFields()
	if err := werr.CheckIndex("number variable index", i, len(fields)+1); err != nil {
		return 0, err
	}
	return fields[i-1].get(), nil
}

// SetNumberVariable sets numeric field i. Field 0 only accepts the command's own code.
func SetNumberVariable(c Command, i int, v int32) error {
	if i == 0 {
		if Code(v) != c.Code() {
			return werr.Range("command code", int(c.Code()), int(c.Code()), int(v))
		}
		return nil
	}
	fields := c.numberFields()
	if err := werr.CheckIndex("number variable index", i, len(fields)+1); err != nil {
		return err
	}
	f := fields[i-1]
	if err := f.set(v); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	return nil
}

// StringVariable returns string field i.
func StringVariable(c Command, i int) (string, error) {
	fields := c.stringFields()
	if err := werr.CheckIndex("string variable index", i, len(fields)); err != nil {
		return "", err
	}
	return fields[i].get(), nil
}

// SetStringVariable sets string field i.
func SetStringVariable(c Command, i int, v string) error {
	fields := c.stringFields()
	if err := werr.CheckIndex("string variable index", i, len(fields)); err != nil {
		return err
	}
	f := fields[i]
	if err := f.set(v); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	return nil
}

// NumberVariables returns every numeric field in index order.
func NumberVariables(c Command) []int32 {
	out := []int32{int32(c.Code())}
	for _, f := range c.numberFields() {
		out = append(out, f.get())
	}
	return out
}

// StringVariables returns every string field in index order.
func StringVariables(c Command) []string {
	var out []string
	for _, f := range c.stringFields() {
		out = append(out, f.get())
	}
	return out
}

func intField(name string, p *int32) numberField {
	return numberField{name: name, get: func() int32 { return *p }, set: func(v int32) error {
		*p = v
		return nil
	}}
}

func rangedField(name string, p *int32, min, max int) numberField {
	return numberField{name: name, get: func() int32 { return *p }, set: func(v int32) error {
		if err := werr.CheckRange(name, min, max, int(v)); err != nil {
			return err
		}
		*p = v
		return nil
	}}
}

func textField(name string, p *string) stringField {
	return stringField{name: name, get: func() string { return *p }, set: func(v string) error {
		*p = v
		return nil
	}}
}

func lineField(name string, p *string) stringField {
	return stringField{name: name, get: func() string { return *p }, set: func(v string) error {
		if strings.ContainsAny(v, "\r\n") {
			return werr.Text(name, "must not contain a newline", v)
		}
		*p = v
		return nil
	}}
}

// nibbles splits the low byte of a packed slot into its high and low halves.
func nibbles(v int32) (hi, lo byte) {
	b := byte(v)
	return b >> 4, b & 0x0F
}

// checkReserved rejects set bits outside mask in a packed slot.
func checkReserved(name string, v int32, mask uint32) error {
	if uint32(v)&^mask != 0 {
		return fmt.Errorf("%s: unsupported bits 0x%08X", name, uint32(v)&^mask)
	}
	return nil
}

func boolByte(b bool, bit byte) byte {
	if b {
		return bit
	}
	return 0
}
