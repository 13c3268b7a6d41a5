package charamove

import (
	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/werr"
)

// selfSlots is the number of self variables a move command may address.
const selfSlots = 10

// ValueChange assigns or adds an operand to the variable at Target.
//
// Target is limited to the owner's own self variables (slots 0-9) and normal
// variables. A self-variable address written in the other aggregate kind's band is
// remapped into the owner's band; re-attaching to a different owner remaps again.
type ValueChange struct {
	ownerTag
	code    Code
	target  int32
	operand int32
}

// NewAssignValue returns an AssignValue command for an unattached owner.
func NewAssignValue(target, value int32) (*ValueChange, error) {
	return newValueChange(CodeAssignValue, target, value)
}

// NewAddValue returns an AddValue command for an unattached owner.
func NewAddValue(target, value int32) (*ValueChange, error) {
	return newValueChange(CodeAddValue, target, value)
}

func newValueChange(code Code, target, value int32) (*ValueChange, error) {
	c := &ValueChange{code: code, operand: value}
	if err := c.SetTarget(target); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ValueChange) Code() Code      { return c.code }
func (c *ValueChange) ValueCount() int { return 2 }

// Target returns the destination address.
func (c *ValueChange) Target() int32 { return c.target }

// Operand returns the value assigned or added.
func (c *ValueChange) Operand() int32 { return c.operand }

// SetOperand replaces the value assigned or added.
func (c *ValueChange) SetOperand(v int32) { c.operand = v }

// SetTarget validates v against the current owner and stores it, remapped if needed.
func (c *ValueChange) SetTarget(v int32) error {
	resolved, err := resolveTarget(c.owner, int(v))
	if err != nil {
		return err
	}
	c.target = int32(resolved)
	return nil
}

func (c *ValueChange) Value(i int) (int32, error) {
	if err := werr.CheckIndex("value index", i, 2); err != nil {
		return 0, err
	}
	if i == 0 {
		return c.target, nil
	}
	return c.operand, nil
}

func (c *ValueChange) SetValue(i int, v int32) error {
	if err := werr.CheckIndex("value index", i, 2); err != nil {
		return err
	}
	if i == 0 {
		return c.SetTarget(v)
	}
	c.operand = v
	return nil
}

func (c *ValueChange) attach(o address.Owner) {
	c.owner = o
	// Every accepted target is remappable, so the error is unreachable.
	if resolved, err := resolveTarget(o, int(c.target)); err == nil {
		c.target = int32(resolved)
	}
}

func resolveTarget(owner address.Owner, v int) (int, error) {
	mapSelf := address.KindThisMapEventVariable.Range()
	commonSelf := address.KindThisCommonEventVariable.Range()
	normal := address.KindNormalNumberVariable.Range()

	switch {
	case normal.Contains(v):
		return v, nil
	case v >= mapSelf.Min && v < mapSelf.Min+selfSlots:
		if owner == address.OwnerCommonEvent {
			return v - mapSelf.Min + commonSelf.Min, nil
		}
		return v, nil
	case v >= commonSelf.Min && v < commonSelf.Min+selfSlots:
		if owner == address.OwnerMapEvent {
			return v - commonSelf.Min + mapSelf.Min, nil
		}
		return v, nil
	}
	return 0, werr.Range("TargetAddress", mapSelf.Min, normal.Max, v)
}
