package common

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/collection"
	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/vo"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// CommonEvent is one reusable event script.
//
// Every mutator validates its input and leaves the event unchanged on error.
type CommonEvent struct {
	id             vo.CommonEventID
	boot           BootCondition
	numberArgCount vo.CommonEventArgCount
	stringArgCount vo.CommonEventArgCount
	name           vo.CommonEventName
	commands       *event.List
	description    vo.CommonEventDescription
	memo           vo.CommonEventMemo
	args           *SpecialArgDesc
	color          LabelColor
	selfNames      *SelfVariableNames
	footer         vo.FooterString
	ret            ReturnValue
}

// New returns an empty common event: a single blank command, default boot
// condition, unnamed arguments and no return value.
func New(id vo.CommonEventID) *CommonEvent {
	cmds, err := event.NewList()
	if err != nil {
		panic(fmt.Sprintf("common: empty command list: %v", err))
	}
	cmds.Attach(address.OwnerCommonEvent)
	return &CommonEvent{
		id:        id,
		boot:      NewBootCondition(),
		commands:  cmds,
		args:      NewSpecialArgDesc(),
		selfNames: NewSelfVariableNames(),
		ret:       NoReturn(),
	}
}

func (c *CommonEvent) ID() vo.CommonEventID          { return c.id }
func (c *CommonEvent) SetID(id vo.CommonEventID)     { c.id = id }
func (c *CommonEvent) BootCondition() BootCondition  { return c.boot }
func (c *CommonEvent) Name() vo.CommonEventName      { return c.name }
func (c *CommonEvent) Commands() *event.List         { return c.commands }
func (c *CommonEvent) Memo() vo.CommonEventMemo      { return c.memo }
func (c *CommonEvent) SpecialArgs() *SpecialArgDesc  { return c.args }
func (c *CommonEvent) LabelColor() LabelColor        { return c.color }
func (c *CommonEvent) SelfNames() *SelfVariableNames { return c.selfNames }
func (c *CommonEvent) Footer() vo.FooterString       { return c.footer }
func (c *CommonEvent) ReturnValue() ReturnValue      { return c.ret }

func (c *CommonEvent) Description() vo.CommonEventDescription { return c.description }

// ArgCounts returns how many numeric and string arguments the event takes.
func (c *CommonEvent) ArgCounts() (numbers, strings int) {
	return c.numberArgCount.Int(), c.stringArgCount.Int()
}

// SetArgCounts changes how many numeric and string arguments the event takes.
//
// Precondition: both counts lie in [0, 4].
func (c *CommonEvent) SetArgCounts(numbers, strings int) error {
	n, err := vo.NewCommonEventArgCount(numbers)
	if err != nil {
		return err
	}
	s, err := vo.NewCommonEventArgCount(strings)
	if err != nil {
		return err
	}
	c.numberArgCount, c.stringArgCount = n, s
	return nil
}

// SetBootCondition replaces the boot condition.
func (c *CommonEvent) SetBootCondition(b BootCondition) error {
	if err := b.Validate(); err != nil {
		return err
	}
	c.boot = b
	return nil
}

// SetName replaces the event name.
func (c *CommonEvent) SetName(s string) error {
	n, err := vo.NewCommonEventName(s)
	if err != nil {
		return err
	}
	c.name = n
	return nil
}

// SetDescription replaces the one-line description.
func (c *CommonEvent) SetDescription(s string) error {
	d, err := vo.NewCommonEventDescription(s)
	if err != nil {
		return err
	}
	c.description = d
	return nil
}

// SetMemo replaces the free-form memo.
func (c *CommonEvent) SetMemo(s string) error {
	m, err := vo.NewCommonEventMemo(s)
	if err != nil {
		return err
	}
	c.memo = m
	return nil
}

// SetFooter replaces the footer string.
func (c *CommonEvent) SetFooter(s string) error {
	f, err := vo.NewFooterString(s)
	if err != nil {
		return err
	}
	c.footer = f
	return nil
}

// SetLabelColor replaces the list colour.
func (c *CommonEvent) SetLabelColor(color LabelColor) error {
	if _, err := ParseLabelColor(int32(color)); err != nil {
		return err
	}
	c.color = color
	return nil
}

// SetCommands replaces the command body and attaches it to this common event.
//
// Precondition: l is non-nil. An event.List always holds at least one command.
func (c *CommonEvent) SetCommands(l *event.List) error {
	if l == nil {
		return werr.Null("commands")
	}
	l.Attach(address.OwnerCommonEvent)
	c.commands = l
	return nil
}

// SetSpecialArgs replaces the argument descriptors.
func (c *CommonEvent) SetSpecialArgs(a *SpecialArgDesc) error {
	if a == nil {
		return werr.Null("special args")
	}
	c.args = a
	return nil
}

// SetSelfNames replaces the self-variable names.
func (c *CommonEvent) SetSelfNames(n *SelfVariableNames) error {
	if n == nil {
		return werr.Null("self variable names")
	}
	c.selfNames = n
	return nil
}

// SetReturnValue replaces the return binding.
func (c *CommonEvent) SetReturnValue(r ReturnValue) { c.ret = r }

// MaxEvents is the largest number of common events one file holds.
const MaxEvents = 10000

// List is the ordered set of common events of a project.
type List struct {
	*collection.Collection[*CommonEvent]
}

// NewList returns a List holding events.
//
// Precondition: len(events) <= MaxEvents; no nil entries.
func NewList(events ...*CommonEvent) (*List, error) {
	if events == nil {
		events = []*CommonEvent{}
	}
	c, err := collection.From(collection.Bounds[*CommonEvent]{
		Min:         0,
		Max:         MaxEvents,
		MakeDefault: func() *CommonEvent { return New(vo.CommonEventID{}) },
	}, events)
	if err != nil {
		return nil, fmt.Errorf("common: building event list: %w", err)
	}
	return &List{Collection: c}, nil
}

// Data is the decoded content of a CommonEvent.dat file.
type Data struct {
	Events *List
	// Version is the format revision the events were read in, or are to be written in.
	Version wire.Version
}

// NewData returns empty data in the latest format.
func NewData() *Data {
	l, err := NewList()
	if err != nil {
		panic(fmt.Sprintf("common: empty event list: %v", err))
	}
	return &Data{Events: l, Version: wire.Latest}
}
