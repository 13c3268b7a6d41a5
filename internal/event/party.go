package event

import (
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// Exec codes stored in byte 0 of the PartyGraphic option slot.
const (
	partyExecRemoveMember  byte = 0x00
	partyExecInsert        byte = 0x01
	partyExecReplace       byte = 0x02
	partyExecRemoveGraphic byte = 0x03
)

const flagTargetingValue = 0x01

// Graphic names a party member graphic either by file name or, when
// IsTargetingValue is set, by a number or variable address.
type Graphic struct {
	IsTargetingValue bool
	Value            int32
	File             string
}

func partyOption(exec byte, targeting bool) int32 {
	return wire.PackBytes([4]byte{exec, boolByte(targeting, flagTargetingValue)})
}

// setPartyOption checks the exec code of v against want and returns the targeting flag.
func setPartyOption(v int32, want byte) (bool, error) {
	if err := checkReserved("PartyGraphic option", v, 0x01_0F); err != nil {
		return false, err
	}
	b := wire.UnpackBytes(v)
	if b[0] != want {
		return false, werr.Range("PartyGraphic exec code", int(want), int(want), int(b[0]))
	}
	return b[1]&flagTargetingValue != 0, nil
}

func (g *Graphic) valueFields() []numberField {
	if !g.IsTargetingValue {
		return nil
	}
	return []numberField{intField("Graphic", &g.Value)}
}

func (g *Graphic) fileFields() []stringField {
	if g.IsTargetingValue {
		return nil
	}
	return []stringField{textField("Graphic", &g.File)}
}

// PartyGraphicInsert inserts a graphic before the MemberID-th party member.
// The field counts follow Graphic.IsTargetingValue.
type PartyGraphicInsert struct {
	base
	MemberID int32
	Graphic
}

func (c *PartyGraphicInsert) Code() Code { return CodePartyGraphic }

func (c *PartyGraphicInsert) numberFields() []numberField {
	fields := []numberField{
		{name: "Option", get: func() int32 { return partyOption(partyExecInsert, c.IsTargetingValue) }, set: func(v int32) (err error) {
			c.IsTargetingValue, err = setPartyOption(v, partyExecInsert)
			return err
		}},
		intField("MemberID", &c.MemberID),
	}
	return append(fields, c.valueFields()...)
}

func (c *PartyGraphicInsert) stringFields() []stringField { return c.fileFields() }

// PartyGraphicReplace replaces the graphic of the MemberID-th party member.
type PartyGraphicReplace struct {
	base
	MemberID int32
	Graphic
}

func (c *PartyGraphicReplace) Code() Code { return CodePartyGraphic }

func (c *PartyGraphicReplace) numberFields() []numberField {
	fields := []numberField{
		{name: "Option", get: func() int32 { return partyOption(partyExecReplace, c.IsTargetingValue) }, set: func(v int32) (err error) {
			c.IsTargetingValue, err = setPartyOption(v, partyExecReplace)
			return err
		}},
		intField("MemberID", &c.MemberID),
	}
	return append(fields, c.valueFields()...)
}

func (c *PartyGraphicReplace) stringFields() []stringField { return c.fileFields() }

// PartyGraphicRemoveGraphic removes every party member using the graphic. The
// member slot is only serialized alongside a targeted value.
type PartyGraphicRemoveGraphic struct {
	base
	Graphic
	memberSlot int32
}

func (c *PartyGraphicRemoveGraphic) Code() Code { return CodePartyGraphic }

func (c *PartyGraphicRemoveGraphic) numberFields() []numberField {
	fields := []numberField{
		{name: "Option", get: func() int32 { return partyOption(partyExecRemoveGraphic, c.IsTargetingValue) }, set: func(v int32) (err error) {
			c.IsTargetingValue, err = setPartyOption(v, partyExecRemoveGraphic)
			return err
		}},
	}
	if c.IsTargetingValue {
		fields = append(fields, intField("MemberSlot", &c.memberSlot))
	}
	return append(fields, c.valueFields()...)
}

func (c *PartyGraphicRemoveGraphic) stringFields() []stringField { return c.fileFields() }

// PartyGraphicRemoveMember removes the MemberID-th party member.
type PartyGraphicRemoveMember struct {
	base
	MemberID int32
}

func (c *PartyGraphicRemoveMember) Code() Code { return CodePartyGraphic }

func (c *PartyGraphicRemoveMember) numberFields() []numberField {
	return []numberField{
		{name: "Option", get: func() int32 { return partyOption(partyExecRemoveMember, false) }, set: func(v int32) error {
			targeting, err := setPartyOption(v, partyExecRemoveMember)
			if err == nil && targeting {
				err = werr.Range("PartyGraphic targeting flag", 0, 0, 1)
			}
			return err
		}},
		intField("MemberID", &c.MemberID),
	}
}

// newPartyGraphic selects the variant from the exec code in nums[1].
func newPartyGraphic(nums []int32) (Command, bool) {
	if len(nums) < 2 {
		return &PartyGraphicRemoveMember{}, true
	}
	switch wire.UnpackBytes(nums[1])[0] {
	case partyExecRemoveMember:
		return &PartyGraphicRemoveMember{}, true
	case partyExecInsert:
		return &PartyGraphicInsert{}, true
	case partyExecReplace:
		return &PartyGraphicReplace{}, true
	case partyExecRemoveGraphic:
		return &PartyGraphicRemoveGraphic{}, true
	}
	return positional(nums), true
}
