// Package collection provides an ordered collection whose element count is held
// inside a fixed [Min, Max] range for its whole lifetime.
//
// Structural mutations are routed through four primitives (set, insert, remove,
// clear), each of which notifies the registered Hooks exactly once per element.
// Read operations never call hooks.
package collection

import (
	"iter"
	"reflect"
	"slices"
	"strconv"

	"github.com/cory-johannsen/wodi/internal/werr"
)

// Bounds describes the capacity contract of one concrete collection type.
type Bounds[T any] struct {
	// Min is the smallest permitted element count.
	Min int
	// Max is the largest permitted element count.
	Max int
	// MakeDefault builds the item used to pad the collection up to Min.
	MakeDefault func() T
	// Equal compares items for Remove, IndexOf and Contains. When nil, items are
	// compared with ==, which panics for non-comparable dynamic types.
	Equal func(a, b T) bool
}

// Hooks are notified after each primitive mutation. Nil members are skipped.
type Hooks[T any] struct {
	OnSet    func(index int, old, item T)
	OnInsert func(index int, item T)
	OnRemove func(index int, item T)
	OnClear  func()
}

// Collection is an ordered, index-addressable sequence of non-nil items whose
// Count always lies within its Bounds.
//
// A Collection is not safe for concurrent use.
type Collection[T any] struct {
	bounds Bounds[T]
	items  []T
	hooks  []Hooks[T]
}

func (b Bounds[T]) validate() error {
	if b.Min < 0 {
		return werr.Range("Min", 0, b.Max, b.Min)
	}
	if b.Max < b.Min {
		return werr.Range("Max", b.Min, int(^uint(0)>>1), b.Max)
	}
	if b.MakeDefault == nil {
		return werr.Null("MakeDefault")
	}
	return nil
}

// New returns a collection padded to b.Min with default items.
//
// Precondition: 0 <= b.Min <= b.Max and b.MakeDefault non-nil.
// Postcondition: Count() == b.Min and the insert hook fired b.Min times, or a non-nil error.
func New[T any](b Bounds[T], hooks ...Hooks[T]) (*Collection[T], error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	c := &Collection[T]{bounds: b, items: make([]T, 0, b.Min), hooks: hooks}
	for i := 0; i < b.Min; i++ {
		item := b.MakeDefault()
		if isNil(item) {
			return nil, werr.Null("MakeDefault()")
		}
		c.insertItem(i, item)
	}
	return c, nil
}

// From returns a collection holding items in order.
//
// Precondition: len(items) within [b.Min, b.Max]; no nil items.
// Postcondition: Count() == len(items) and the insert hook fired once per item, or a non-nil error.
func From[T any](b Bounds[T], items []T, hooks ...Hooks[T]) (*Collection[T], error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, werr.Null("items")
	}
	for i, item := range items {
		if isNil(item) {
			return nil, werr.Null("items[" + strconv.Itoa(i) + "]")
		}
	}
	if len(items) < b.Min || len(items) > b.Max {
		return nil, werr.Capacity("From", 0, len(items), b.Min, b.Max)
	}
	c := &Collection[T]{bounds: b, items: make([]T, 0, len(items)), hooks: hooks}
	for i, item := range items {
		c.insertItem(i, item)
	}
	return c, nil
}

// AddHooks registers additional hooks for subsequent mutations.
func (c *Collection[T]) AddHooks(h Hooks[T]) {
	c.hooks = append(c.hooks, h)
}

// Count returns the number of items.
func (c *Collection[T]) Count() int { return len(c.items) }

// Min returns the minimum capacity.
func (c *Collection[T]) Min() int { return c.bounds.Min }

// Max returns the maximum capacity.
func (c *Collection[T]) Max() int { return c.bounds.Max }

// Get returns the item at index.
func (c *Collection[T]) Get(index int) (T, error) {
	if err := werr.CheckIndex("index", index, len(c.items)); err != nil {
		var zero T
		return zero, err
	}
	return c.items[index], nil
}

// Set replaces the item at index.
//
// Postcondition: on error the collection is unchanged.
func (c *Collection[T]) Set(index int, item T) error {
	if isNil(item) {
		return werr.Null("item")
	}
	if err := werr.CheckIndex("index", index, len(c.items)); err != nil {
		return err
	}
	c.setItem(index, item)
	return nil
}

// Add appends item.
func (c *Collection[T]) Add(item T) error {
	return c.Insert(len(c.items), item)
}

// AddRange appends items in order.
func (c *Collection[T]) AddRange(items []T) error {
	return c.InsertRange(len(c.items), items)
}

// Insert places item at index; index may equal Count.
//
// Postcondition: on error the collection is unchanged.
func (c *Collection[T]) Insert(index int, item T) error {
	if isNil(item) {
		return werr.Null("item")
	}
	if err := werr.CheckIndex("index", index, len(c.items)+1); err != nil {
		return err
	}
	if err := c.checkGrow("Insert", 1); err != nil {
		return err
	}
	c.insertItem(index, item)
	return nil
}

// InsertRange places items starting at index; index may equal Count.
//
// Postcondition: on error the collection is unchanged; otherwise the insert hook
// fired len(items) times.
func (c *Collection[T]) InsertRange(index int, items []T) error {
	if items == nil {
		return werr.Null("items")
	}
	for i, item := range items {
		if isNil(item) {
			return werr.Null("items[" + strconv.Itoa(i) + "]")
		}
	}
	if err := werr.CheckIndex("index", index, len(c.items)+1); err != nil {
		return err
	}
	if err := c.checkGrow("InsertRange", len(items)); err != nil {
		return err
	}
	for i, item := range items {
		c.insertItem(index+i, item)
	}
	return nil
}

// Remove deletes the first item equal to item.
//
// Postcondition: Returns (false, nil) when item is absent, or a CapacityError
// when removal would drop Count below Min.
func (c *Collection[T]) Remove(item T) (bool, error) {
	if isNil(item) {
		return false, werr.Null("item")
	}
	index := c.IndexOf(item)
	if index < 0 {
		return false, nil
	}
	if err := c.checkShrink("Remove", 1); err != nil {
		return false, err
	}
	c.removeItem(index)
	return true, nil
}

// RemoveAt deletes the item at index.
func (c *Collection[T]) RemoveAt(index int) error {
	if err := werr.CheckIndex("index", index, len(c.items)); err != nil {
		return err
	}
	if err := c.checkShrink("RemoveAt", 1); err != nil {
		return err
	}
	c.removeItem(index)
	return nil
}

// RemoveRange deletes count items starting at index.
func (c *Collection[T]) RemoveRange(index, count int) error {
	if err := werr.CheckIndex("index", index, len(c.items)); err != nil {
		return err
	}
	if err := werr.CheckRange("count", 0, len(c.items)-index, count); err != nil {
		return err
	}
	if err := c.checkShrink("RemoveRange", count); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		c.removeItem(index)
	}
	return nil
}

// Clear removes every item and pads back to Min with default items. The defaults
// are built first; a nil default leaves the collection untouched.
//
// Postcondition: Count() == Min(); the clear hook fired once, then the insert hook
// Min times. On error no hook fired.
func (c *Collection[T]) Clear() error {
	defaults := make([]T, c.bounds.Min)
	for i := range defaults {
		defaults[i] = c.bounds.MakeDefault()
		if isNil(defaults[i]) {
			return werr.Null("MakeDefault()")
		}
	}
	c.clearItems()
	for i, item := range defaults {
		c.insertItem(i, item)
	}
	return nil
}

// GetRange returns a copy of count items starting at index.
func (c *Collection[T]) GetRange(index, count int) ([]T, error) {
	if err := werr.CheckIndex("index", index, len(c.items)+1); err != nil {
		return nil, err
	}
	if err := werr.CheckRange("count", 0, len(c.items)-index, count); err != nil {
		return nil, err
	}
	return slices.Clone(c.items[index : index+count]), nil
}

// IndexOf returns the index of the first item equal to item, or -1.
func (c *Collection[T]) IndexOf(item T) int {
	return slices.IndexFunc(c.items, func(v T) bool { return c.equal(v, item) })
}

// Contains reports whether an item equal to item is present.
func (c *Collection[T]) Contains(item T) bool {
	return c.IndexOf(item) >= 0
}

// CopyTo copies every item into dst starting at dst[at].
func (c *Collection[T]) CopyTo(dst []T, at int) error {
	if dst == nil {
		return werr.Null("dst")
	}
	if err := werr.CheckRange("at", 0, len(dst)-len(c.items), at); err != nil {
		return err
	}
	copy(dst[at:], c.items)
	return nil
}

// Items returns a copy of the items.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

// All iterates over index, item pairs.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range c.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (c *Collection[T]) checkGrow(op string, n int) error {
	if len(c.items)+n > c.bounds.Max {
		return werr.Capacity(op, len(c.items), n, c.bounds.Min, c.bounds.Max)
	}
	return nil
}

func (c *Collection[T]) checkShrink(op string, n int) error {
	if len(c.items)-n < c.bounds.Min {
		return werr.Capacity(op, len(c.items), -n, c.bounds.Min, c.bounds.Max)
	}
	return nil
}

func (c *Collection[T]) equal(a, b T) bool {
	if c.bounds.Equal != nil {
		return c.bounds.Equal(a, b)
	}
	return any(a) == any(b)
}

func (c *Collection[T]) setItem(index int, item T) {
	old := c.items[index]
	c.items[index] = item
	for _, h := range c.hooks {
		if h.OnSet != nil {
			h.OnSet(index, old, item)
		}
	}
}

func (c *Collection[T]) insertItem(index int, item T) {
	c.items = slices.Insert(c.items, index, item)
	for _, h := range c.hooks {
		if h.OnInsert != nil {
			h.OnInsert(index, item)
		}
	}
}

func (c *Collection[T]) removeItem(index int) {
	item := c.items[index]
	c.items = slices.Delete(c.items, index, index+1)
	for _, h := range c.hooks {
		if h.OnRemove != nil {
			h.OnRemove(index, item)
		}
	}
}

func (c *Collection[T]) clearItems() {
	clear(c.items)
	c.items = c.items[:0]
	for _, h := range c.hooks {
		if h.OnClear != nil {
			h.OnClear()
		}
	}
}

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
