package event

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/charamove"
	"github.com/cory-johannsen/wodi/internal/collection"
	"github.com/cory-johannsen/wodi/internal/vo"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// MaxChoices is the largest number of options one ChoiceStart offers.
const MaxChoices = 10

// CancelSeparateBranch routes a cancelled choice to its own CancelStart branch.
const CancelSeparateBranch = 11

// ChoiceStart shows a list of choices, each followed by a ForkStart branch.
// Cancel is 0 when cancelling is disabled, the 1-based choice it selects, or
// CancelSeparateBranch.
type ChoiceStart struct {
	base
	cancel  int
	choices *collection.Collection[string]
}

// NewChoiceStart returns a ChoiceStart offering choices with cancelling disabled.
//
// Precondition: 1 <= len(choices) <= MaxChoices.
func NewChoiceStart(choices ...string) (*ChoiceStart, error) {
	c := newChoiceStart()
	if len(choices) == 0 {
		return c, nil
	}
	if err := c.SetChoices(choices); err != nil {
		return nil, err
	}
	return c, nil
}

func newChoiceStart() *ChoiceStart {
	l, err := collection.New(collection.Bounds[string]{
		Min:         1,
		Max:         MaxChoices,
		MakeDefault: func() string { return "" },
	})
	if err != nil {
		panic(fmt.Sprintf("event: choice bounds: %v", err))
	}
	return &ChoiceStart{choices: l}
}

func (c *ChoiceStart) Code() Code { return CodeChoiceStart }

// Choices returns a copy of the choice texts.
func (c *ChoiceStart) Choices() []string { return c.choices.Items() }

// Cancel returns the cancel behaviour.
func (c *ChoiceStart) Cancel() int { return c.cancel }

// SetChoices replaces every choice text.
//
// Precondition: the current cancel behaviour remains valid for the new count.
func (c *ChoiceStart) SetChoices(choices []string) error {
	if err := werr.CheckRange("choice count", 1, MaxChoices, len(choices)); err != nil {
		return err
	}
	if err := checkCancel(c.cancel, len(choices)); err != nil {
		return err
	}
	if err := resize(c.choices, "choice count", len(choices)); err != nil {
		return err
	}
	for i, s := range choices {
		if err := c.choices.Set(i, s); err != nil {
			return err
		}
	}
	return nil
}

// SetCancel replaces the cancel behaviour.
func (c *ChoiceStart) SetCancel(v int) error {
	if err := checkCancel(v, c.choices.Count()); err != nil {
		return err
	}
	c.cancel = v
	return nil
}

func checkCancel(v, count int) error {
	if v == CancelSeparateBranch {
		return nil
	}
	return werr.CheckRange("Cancel", 0, count, v)
}

func (c *ChoiceStart) header() int32 {
	return wire.PackBytes([4]byte{byte(c.choices.Count()), byte(c.cancel)})
}

func (c *ChoiceStart) setHeader(v int32) error {
	if err := checkReserved("choice header", v, 0xFF_FF); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	n, cancel := int(b[0]), int(b[1])
	if err := checkCancel(cancel, n); err != nil {
		return err
	}
	if err := resize(c.choices, "choice count", n); err != nil {
		return err
	}
	c.cancel = cancel
	return nil
}

func (c *ChoiceStart) numberFields() []numberField {
	return []numberField{{name: "Header", get: c.header, set: c.setHeader}}
}

func (c *ChoiceStart) stringFields() []stringField {
	fields := make([]stringField, 0, c.choices.Count())
	for i := range c.choices.Count() {
		fields = append(fields, stringField{
			name: fmt.Sprintf("Choice[%d]", i),
			get: func() string {
				s, _ := c.choices.Get(i)
				return s
			},
			set: func(s string) error { return c.choices.Set(i, s) },
		})
	}
	return fields
}

// MaxArgs is the largest number of numeric or string arguments a call passes.
const MaxArgs = 4

// commonEventIDOffset is added to a literal common event id in the call target slot.
const commonEventIDOffset = 500000

const flagHasReturn = 0x01

// CallArgs are the arguments and return binding shared by both call commands.
// Only the first NumberArgCount / StringArgCount entries are serialized.
type CallArgs struct {
	NumberArgs     [MaxArgs]int32
	StringArgs     [MaxArgs]string
	HasReturn      bool
	ReturnVariable int32

	numberArgCount int
	stringArgCount int
}

// ArgCounts returns how many numeric and string arguments are passed.
func (a *CallArgs) ArgCounts() (numbers, strings int) {
	return a.numberArgCount, a.stringArgCount
}

// SetArgCounts changes how many arguments are passed.
func (a *CallArgs) SetArgCounts(numbers, strings int) error {
	n, err := vo.NewCommonEventArgCount(numbers)
	if err != nil {
		return err
	}
	s, err := vo.NewCommonEventArgCount(strings)
	if err != nil {
		return err
	}
	a.numberArgCount, a.stringArgCount = n.Int(), s.Int()
	return nil
}

func (a *CallArgs) option() int32 {
	return wire.PackBytes([4]byte{
		byte(a.numberArgCount) | byte(a.stringArgCount)<<4,
		boolByte(a.HasReturn, flagHasReturn),
	})
}

func (a *CallArgs) setOption(v int32) error {
	if err := checkReserved("call option", v, 0x01_FF); err != nil {
		return err
	}
	b := wire.UnpackBytes(v)
	hi, lo := nibbles(v)
	if err := a.SetArgCounts(int(lo), int(hi)); err != nil {
		return err
	}
	a.HasReturn = b[1]&flagHasReturn != 0
	return nil
}

func (a *CallArgs) numberFields() []numberField {
	fields := []numberField{{name: "Option", get: a.option, set: a.setOption}}
	for i := range a.numberArgCount {
		fields = append(fields, intField(fmt.Sprintf("NumberArgs[%d]", i), &a.NumberArgs[i]))
	}
	if a.HasReturn {
		fields = append(fields, intField("ReturnVariable", &a.ReturnVariable))
	}
	return fields
}

func (a *CallArgs) stringFields() []stringField {
	fields := make([]stringField, 0, a.stringArgCount)
	for i := range a.stringArgCount {
		fields = append(fields, textField(fmt.Sprintf("StringArgs[%d]", i), &a.StringArgs[i]))
	}
	return fields
}

// CallCommonEventByID runs the common event identified by Target. Target is
// 500000 plus a literal id, or a variable address holding the id.
type CallCommonEventByID struct {
	base
	CallArgs
	Target int32
}

// NewCallCommonEventByID returns a call of common event id without arguments.
func NewCallCommonEventByID(id vo.CommonEventID) *CallCommonEventByID {
	return &CallCommonEventByID{Target: commonEventIDOffset + id.Int32()}
}

func (c *CallCommonEventByID) Code() Code { return CodeCallCommonEventByID }

// EventID returns the literal id the call targets, or false when Target is a
// variable address.
func (c *CallCommonEventByID) EventID() (vo.CommonEventID, bool) {
	id, err := vo.NewCommonEventID(int(c.Target) - commonEventIDOffset)
	if err != nil {
		return vo.CommonEventID{}, false
	}
	return id, true
}

func (c *CallCommonEventByID) numberFields() []numberField {
	return append([]numberField{intField("Target", &c.Target)}, c.CallArgs.numberFields()...)
}

func (c *CallCommonEventByID) stringFields() []stringField {
	return c.CallArgs.stringFields()
}

// CallCommonEventByName runs the common event whose name is EventName.
type CallCommonEventByName struct {
	base
	CallArgs
	EventName string
	reserved  int32
}

func (c *CallCommonEventByName) Code() Code { return CodeCallCommonEventByName }

func (c *CallCommonEventByName) numberFields() []numberField {
	slot := numberField{name: "Reserved", get: func() int32 { return c.reserved }, set: func(v int32) error {
		if v != 0 {
			return werr.Range("Reserved", 0, 0, int(v))
		}
		return nil
	}}
	return append([]numberField{slot}, c.CallArgs.numberFields()...)
}

func (c *CallCommonEventByName) stringFields() []stringField {
	return append([]stringField{lineField("EventName", &c.EventName)}, c.CallArgs.stringFields()...)
}

// Move route targets other than a map event id.
const (
	MoveTargetThisEvent int32 = -1
	MoveTargetHero      int32 = -2
)

// MoveRoute applies a movement script to Target: a map event id, one of the
// MoveTarget constants, or a variable address.
type MoveRoute struct {
	base
	Target int32
	entry  *charamove.ActionEntry
}

// NewMoveRoute returns a MoveRoute for target with an empty script.
func NewMoveRoute(target int32) *MoveRoute {
	return &MoveRoute{Target: target, entry: charamove.NewActionEntry()}
}

func (c *MoveRoute) Code() Code                          { return CodeMoveRoute }
func (c *MoveRoute) ActionEntry() *charamove.ActionEntry { return c.entry }

// SetActionEntry replaces the script and attaches it to the command's owner.
func (c *MoveRoute) SetActionEntry(e *charamove.ActionEntry) error {
	return c.setActionEntry(e)
}

func (c *MoveRoute) setActionEntry(e *charamove.ActionEntry) error {
	if e == nil {
		return werr.Null("ActionEntry")
	}
	e.Attach(c.owner)
	c.entry = e
	return nil
}

func (c *MoveRoute) attach(o address.Owner) {
	c.owner = o
	c.entry.Attach(o)
}

func (c *MoveRoute) numberFields() []numberField {
	return []numberField{intField("Target", &c.Target)}
}
