package charamove

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/collection"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// MaxCommands is the largest number of move commands one ActionEntry may hold.
const MaxCommands = 9999

// Option bits of an ActionEntry.
const (
	optionRepeat            byte = 0x01
	optionSkipIfBlocked     byte = 0x02
	optionWaitForCompletion byte = 0x04
)

var commandTerminator = []byte{0x01, 0x00}

// List is the ordered move script of an ActionEntry. Inserted commands inherit
// the list's owner.
type List struct {
	*collection.Collection[Command]
	owner address.Owner
}

// NewList returns a List holding cmds.
//
// Precondition: len(cmds) <= MaxCommands; no nil entries.
func NewList(cmds ...Command) (*List, error) {
	l := &List{}
	if cmds == nil {
		cmds = []Command{}
	}
	c, err := collection.From(collection.Bounds[Command]{
		Min:         0,
		Max:         MaxCommands,
		MakeDefault: func() Command { return &Step{code: CodeMoveDown} },
	}, cmds, collection.Hooks[Command]{
		OnSet:    func(_ int, _, item Command) { item.attach(l.owner) },
		OnInsert: func(_ int, item Command) { item.attach(l.owner) },
	})
	if err != nil {
		return nil, fmt.Errorf("charamove: building move list: %w", err)
	}
	l.Collection = c
	return l, nil
}

// Owner returns the aggregate kind the list is attached to.
func (l *List) Owner() address.Owner { return l.owner }

func (l *List) attach(o address.Owner) {
	l.owner = o
	for _, cmd := range l.All() {
		cmd.attach(o)
	}
}

// ActionEntry is a movement script with its playback options.
type ActionEntry struct {
	Repeat            bool
	SkipIfBlocked     bool
	WaitForCompletion bool

	commands *List
	owner    address.Owner
}

// NewActionEntry returns an entry with no options and an empty script.
func NewActionEntry() *ActionEntry {
	l, err := NewList()
	if err != nil {
		panic(fmt.Sprintf("charamove: empty move list: %v", err))
	}
	return &ActionEntry{commands: l}
}

// Commands returns the move script.
func (a *ActionEntry) Commands() *List { return a.commands }

// SetCommands replaces the move script and attaches it to the entry's owner.
func (a *ActionEntry) SetCommands(l *List) error {
	if l == nil {
		return werr.Null("commands")
	}
	l.attach(a.owner)
	a.commands = l
	return nil
}

// Owner returns the aggregate kind the entry is attached to.
func (a *ActionEntry) Owner() address.Owner { return a.owner }

// Attach tags the entry and its whole script with owner. Containers call it when the
// entry is placed under a new aggregate.
func (a *ActionEntry) Attach(owner address.Owner) {
	a.owner = owner
	a.commands.attach(owner)
}

func (a *ActionEntry) option() byte {
	var b byte
	if a.Repeat {
		b |= optionRepeat
	}
	if a.SkipIfBlocked {
		b |= optionSkipIfBlocked
	}
	if a.WaitForCompletion {
		b |= optionWaitForCompletion
	}
	return b
}

// Encode appends the binary form: option byte, int32 command count, commands.
func (a *ActionEntry) Encode(w *wire.Writer) {
	w.PutByte(a.option())
	w.PutInt32(int32(a.commands.Count()))
	for _, cmd := range a.commands.All() {
		EncodeCommand(w, cmd)
	}
}

// EncodeCommand appends one move command: code, value count, values, terminator.
func EncodeCommand(w *wire.Writer, cmd Command) {
	w.PutByte(byte(cmd.Code()))
	n := cmd.ValueCount()
	w.PutByte(byte(n))
	for i := 0; i < n; i++ {
		v, _ := cmd.Value(i)
		w.PutInt32(v)
	}
	w.PutBytes(commandTerminator)
}

// Decode reads an ActionEntry and attaches it to owner.
//
// Postcondition: Returns a fully populated entry or a *werr.FormatError.
func Decode(r *wire.Reader, owner address.Owner) (*ActionEntry, error) {
	start := r.Offset()
	opt, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if opt&^(optionRepeat|optionSkipIfBlocked|optionWaitForCompletion) != 0 {
		return nil, werr.Format(start, fmt.Sprintf("unknown action entry option bits 0x%02X", opt), nil)
	}
	n, err := r.ReadCount("move command", MaxCommands)
	if err != nil {
		return nil, err
	}
	cmds := make([]Command, 0, n)
	for i := 0; i < n; i++ {
		cmd, err := DecodeCommand(r, owner)
		if err != nil {
			return nil, fmt.Errorf("move command %d: %w", i, err)
		}
		cmds = append(cmds, cmd)
	}
	l, err := NewList(cmds...)
	if err != nil {
		return nil, werr.Format(start, "building move list", err)
	}
	a := &ActionEntry{
		Repeat:            opt&optionRepeat != 0,
		SkipIfBlocked:     opt&optionSkipIfBlocked != 0,
		WaitForCompletion: opt&optionWaitForCompletion != 0,
		commands:          l,
	}
	a.Attach(owner)
	return a, nil
}

// DecodeCommand reads one move command, validating it against owner. A value the
// owner would remap, such as a map event self variable in a common event script,
// is rejected so the stored bytes are never rewritten.
func DecodeCommand(r *wire.Reader, owner address.Owner) (Command, error) {
	start := r.Offset()
	code, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	cmd, err := New(Code(code))
	if err != nil {
		return nil, werr.Format(start, fmt.Sprintf("unknown move command code 0x%02X", code), nil)
	}
	cmd.attach(owner)
	count, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if int(count) != cmd.ValueCount() {
		return nil, werr.Format(start+1, fmt.Sprintf("%s carries %d values, want %d", cmd.Code(), count, cmd.ValueCount()), nil)
	}
	for i := 0; i < int(count); i++ {
		at := r.Offset()
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		if err := cmd.SetValue(i, v); err != nil {
			return nil, werr.Format(at, fmt.Sprintf("%s value %d", cmd.Code(), i), err)
		}
		if got, _ := cmd.Value(i); got != v {
			return nil, werr.Format(at, fmt.Sprintf("%s value %d: %d belongs to another event kind (as %s it reads %d)", cmd.Code(), i, v, owner, got), nil)
		}
	}
	if err := r.Expect(commandTerminator, "move command terminator"); err != nil {
		return nil, err
	}
	return cmd, nil
}
