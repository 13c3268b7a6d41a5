package event

import (
	"fmt"
	"slices"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/charamove"
)

// Raw preserves a command whose opcode or sub-variant has no typed model. Its
// fields are kept verbatim so that it re-encodes byte for byte. Registered
// families without a typed layout decode to Raw under every policy; unregistered
// opcodes do so only under PolicyRaw.
type Raw struct {
	base
	code  Code
	nums  []int32
	strs  []string
	entry *charamove.ActionEntry
}

// NewRaw returns a Raw command. nums excludes the code slot.
func NewRaw(code Code, nums []int32, strs []string) *Raw {
	return &Raw{code: code, nums: slices.Clone(nums), strs: slices.Clone(strs)}
}

func (c *Raw) Code() Code                          { return c.code }
func (c *Raw) ActionEntry() *charamove.ActionEntry { return c.entry }

func (c *Raw) setActionEntry(e *charamove.ActionEntry) error {
	if e != nil {
		e.Attach(c.owner)
	}
	c.entry = e
	return nil
}

func (c *Raw) attach(o address.Owner) {
	c.owner = o
	if c.entry != nil {
		c.entry.Attach(o)
	}
}

func (c *Raw) numberFields() []numberField {
	fields := make([]numberField, len(c.nums))
	for i := range c.nums {
		fields[i] = intField(fmt.Sprintf("Raw[%d]", i+1), &c.nums[i])
	}
	return fields
}

func (c *Raw) stringFields() []stringField {
	fields := make([]stringField, len(c.strs))
	for i := range c.strs {
		fields[i] = textField(fmt.Sprintf("Raw[%d]", i), &c.strs[i])
	}
	return fields
}

// positional returns the verbatim form of the record whose numeric fields are nums.
func positional(nums []int32) *Raw {
	return NewRaw(Code(nums[0]), nums[1:], nil)
}

// opaque is the factory of a family whose records are all kept verbatim.
func opaque(nums []int32) (Command, bool) {
	return positional(nums), true
}
