package event

import (
	"fmt"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/collection"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// List capacity bounds.
const (
	ListMin = 1
	ListMax = 999999
)

// List is the command body of an event. It is never empty; Clear leaves a
// single Blank. Commands placed in the list inherit its owner.
type List struct {
	*collection.Collection[Command]
	owner address.Owner
}

// NewList returns a List holding cmds, or a single Blank when cmds is empty.
//
// Precondition: len(cmds) <= ListMax; no nil entries.
func NewList(cmds ...Command) (*List, error) {
	l := &List{}
	bounds := collection.Bounds[Command]{
		Min:         ListMin,
		Max:         ListMax,
		MakeDefault: func() Command { return NewBlank() },
		Equal:       func(a, b Command) bool { return a == b },
	}
	hooks := collection.Hooks[Command]{
		OnSet:    func(_ int, _, item Command) { item.attach(l.owner) },
		OnInsert: func(_ int, item Command) { item.attach(l.owner) },
	}
	var (
		c   *collection.Collection[Command]
		err error
	)
	if len(cmds) == 0 {
		c, err = collection.New(bounds, hooks)
	} else {
		c, err = collection.From(bounds, cmds, hooks)
	}
	if err != nil {
		return nil, fmt.Errorf("event: building command list: %w", err)
	}
	l.Collection = c
	return l, nil
}

// Owner returns the aggregate kind the list is attached to.
func (l *List) Owner() address.Owner { return l.owner }

// Attach tags the list and every command in it, including embedded move scripts,
// with owner.
func (l *List) Attach(owner address.Owner) {
	l.owner = owner
	for _, cmd := range l.All() {
		cmd.attach(owner)
	}
}

// Encode appends every command in order.
func (l *List) Encode(w *wire.Writer) error {
	for i, cmd := range l.All() {
		if err := Encode(w, cmd); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}

// DecodeList reads n commands and returns them as a List attached to owner.
//
// Precondition: ListMin <= n <= ListMax.
func (d *Decoder) DecodeList(r *wire.Reader, n int, owner address.Owner) (*List, error) {
	if err := werr.CheckRange("event command count", ListMin, ListMax, n); err != nil {
		return nil, err
	}
	cmds := make([]Command, 0, n)
	for i := 0; i < n; i++ {
		cmd, err := d.decode(r, owner)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		cmds = append(cmds, cmd)
	}
	l, err := NewList(cmds...)
	if err != nil {
		return nil, err
	}
	l.Attach(owner)
	return l, nil
}
