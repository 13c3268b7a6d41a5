package event

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/charamove"
	"github.com/cory-johannsen/wodi/internal/diag"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// Policy decides what the decoder does with an opcode that has no model.
type Policy int

const (
	// PolicyFail aborts the read with a FormatError wrapping werr.ErrUnknownCommand.
	PolicyFail Policy = iota
	// PolicyRaw keeps the record verbatim as a *Raw and logs a warning.
	PolicyRaw
)

// ParsePolicy converts a configuration value ("fail" or "raw").
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "fail", "":
		return PolicyFail, nil
	case "raw":
		return PolicyRaw, nil
	}
	return 0, fmt.Errorf("unknown command policy %q", s)
}

func (p Policy) String() string {
	if p == PolicyRaw {
		return "raw"
	}
	return "fail"
}

const (
	entryAbsent  byte = 0x00
	entryPresent byte = 0x01
)

// Decoder reads event commands from a wire.Reader.
type Decoder struct {
	registry *Registry
	policy   Policy
	sink     diag.Sink
}

// NewDecoder returns a Decoder. A nil registry selects DefaultRegistry and a nil
// sink discards warnings.
func NewDecoder(reg *Registry, policy Policy, sink diag.Sink) *Decoder {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Decoder{registry: reg, policy: policy, sink: diag.Or(sink)}
}

// Decode reads one command: numeric count byte, numeric fields (field 0 is the
// code), indent byte, string count byte, strings, then the action entry flag and
// the action entry when the flag is set.
//
// Postcondition: Returns a fully populated, unattached command or an error
// matching werr.ErrFormat that carries the offset of the offending field.
func (d *Decoder) Decode(r *wire.Reader) (Command, error) {
	return d.decode(r, address.OwnerNone)
}

// decode reads one command whose action entry is validated against owner.
func (d *Decoder) decode(r *wire.Reader, owner address.Owner) (Command, error) {
	start := r.Offset()
	n, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, werr.Format(start, "event command has no code field", nil)
	}
	nums := make([]int32, n)
	offsets := make([]int, n)
	for i := range nums {
		offsets[i] = r.Offset()
		if nums[i], err = r.ReadInt32(); err != nil {
			return nil, err
		}
	}
	code := Code(nums[0])

	cmd, ok := d.registry.Lookup(nums)
	if !ok {
		if d.policy != PolicyRaw {
			return nil, werr.Format(offsets[0], fmt.Sprintf("event command %s", code), werr.ErrUnknownCommand)
		}
		d.sink.Warn("unknown event command preserved verbatim",
			zap.Int32("code", nums[0]),
			zap.Int("offset", offsets[0]),
		)
		cmd = NewRaw(code, nums[1:], nil)
	}

	for i := 1; i < len(nums); i++ {
		if err := SetNumberVariable(cmd, i, nums[i]); err != nil {
			return nil, werr.Format(offsets[i], fmt.Sprintf("%s number field %d", code, i), err)
		}
	}
	if got := NumberVariableCount(cmd); got != len(nums) {
		return nil, werr.Format(start, fmt.Sprintf("%s declares %d number fields, layout has %d", code, len(nums), got), nil)
	}

	indentAt := r.Offset()
	indent, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if err := cmd.SetIndent(int(indent)); err != nil {
		return nil, werr.Format(indentAt, fmt.Sprintf("%s indent", code), err)
	}

	countAt := r.Offset()
	sn, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if raw, isRaw := cmd.(*Raw); isRaw {
		raw.strs = make([]string, sn)
	}
	if want := StringVariableCount(cmd); int(sn) != want {
		return nil, werr.Format(countAt, fmt.Sprintf("%s declares %d string fields, layout has %d", code, sn, want), nil)
	}
	for i := 0; i < int(sn); i++ {
		at := r.Offset()
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if err := SetStringVariable(cmd, i, s); err != nil {
			return nil, werr.Format(at, fmt.Sprintf("%s string field %d", code, i), err)
		}
	}

	if err := d.decodeActionEntry(r, cmd, owner); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (d *Decoder) decodeActionEntry(r *wire.Reader, cmd Command, owner address.Owner) error {
	at := r.Offset()
	flag, err := r.ReadByte()
	if err != nil {
		return err
	}
	switch flag {
	case entryAbsent:
		if cmd.ActionEntry() != nil {
			return werr.Format(at, fmt.Sprintf("%s requires an action entry", cmd.Code()), nil)
		}
		return nil
	case entryPresent:
		entry, err := charamove.Decode(r, owner)
		if err != nil {
			return fmt.Errorf("%s action entry: %w", cmd.Code(), err)
		}
		if err := cmd.setActionEntry(entry); err != nil {
			return werr.Format(at, fmt.Sprintf("%s action entry", cmd.Code()), err)
		}
		return nil
	}
	return werr.Format(at, fmt.Sprintf("action entry flag 0x%02X", flag), nil)
}

// Encode appends the binary form of c.
func Encode(w *wire.Writer, c Command) error {
	if c == nil {
		return werr.Null("command")
	}
	nums := NumberVariables(c)
	if len(nums) > 0xFF {
		return werr.Range("number field count", 1, 0xFF, len(nums))
	}
	w.PutByte(byte(len(nums)))
	for _, v := range nums {
		w.PutInt32(v)
	}
	w.PutByte(byte(c.Indent()))

	strs := StringVariables(c)
	if len(strs) > 0xFF {
		return werr.Range("string field count", 0, 0xFF, len(strs))
	}
	w.PutByte(byte(len(strs)))
	for i, s := range strs {
		if err := w.PutString(s); err != nil {
			return fmt.Errorf("%s string field %d: %w", c.Code(), i, err)
		}
	}

	entry := c.ActionEntry()
	if entry == nil {
		w.PutByte(entryAbsent)
		return nil
	}
	w.PutByte(entryPresent)
	entry.Encode(w)
	return nil
}

// IsUnknownCommand reports whether err was caused by an unregistered opcode.
func IsUnknownCommand(err error) bool {
	return errors.Is(err, werr.ErrUnknownCommand)
}
