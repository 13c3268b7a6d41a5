package common

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/diag"
	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/vo"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// Record markers.
const (
	markerStart       byte = 0x8E
	markerArgsEnd     byte = 0x90
	markerSelfEnd     byte = 0x91
	markerReturnBlock byte = 0x92
)

const argSlots = 2 * ArgsPerKind

// Encode appends ev in the layout of version. Formats before 2.00 have no
// return block; a return binding set on ev is then dropped with a warning to sink.
func Encode(w *wire.Writer, ev *CommonEvent, version wire.Version, sink diag.Sink) error {
	if ev == nil {
		return werr.Null("common event")
	}
	w.PutByte(markerStart)
	w.PutInt32(ev.id.Int32())
	w.PutByte(ev.boot.packed())
	w.PutInt32(ev.boot.LeftSide)
	w.PutInt32(ev.boot.RightSide)
	w.PutByte(byte(ev.numberArgCount.Int()))
	w.PutByte(byte(ev.stringArgCount.Int()))
	if err := w.PutString(ev.name.String()); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	w.PutInt32(int32(ev.commands.Count()))
	if err := ev.commands.Encode(w); err != nil {
		return err
	}
	if err := w.PutString(ev.description.String()); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	if err := w.PutString(ev.memo.String()); err != nil {
		return fmt.Errorf("memo: %w", err)
	}
	if err := encodeArgs(w, ev.args); err != nil {
		return err
	}
	w.PutByte(markerArgsEnd)
	w.PutInt32(int32(ev.color))
	w.PutInt32(SelfVariableCount)
	for i, n := range ev.selfNames.All() {
		if err := w.PutString(n.String()); err != nil {
			return fmt.Errorf("self variable %d name: %w", i, err)
		}
	}
	w.PutByte(markerSelfEnd)
	if err := w.PutString(ev.footer.String()); err != nil {
		return fmt.Errorf("footer: %w", err)
	}
	if version < wire.V2_00 {
		if ev.ret.IsReturn() || ev.ret.Description.String() != "" {
			diag.Or(sink).Warn("return value dropped for format without return block",
				zap.Int("id", ev.id.Int()),
				zap.Stringer("version", version),
			)
		}
		w.PutByte(markerSelfEnd)
		return nil
	}
	w.PutByte(markerReturnBlock)
	if err := w.PutString(ev.ret.Description.String()); err != nil {
		return fmt.Errorf("return description: %w", err)
	}
	w.PutInt32(int32(ev.ret.Index()))
	w.PutByte(markerReturnBlock)
	return nil
}

func encodeArgs(w *wire.Writer, args *SpecialArgDesc) error {
	descs := args.all()
	w.PutInt32(argSlots)
	for i, d := range descs {
		if err := w.PutString(d.name.String()); err != nil {
			return fmt.Errorf("argument %d name: %w", i, err)
		}
	}
	w.PutInt32(argSlots)
	for _, d := range descs {
		w.PutByte(byte(d.argType))
	}
	w.PutInt32(argSlots)
	for i, d := range descs {
		texts := d.caseDescriptions()
		w.PutInt32(int32(len(texts)))
		for j, s := range texts {
			if err := w.PutString(s); err != nil {
				return fmt.Errorf("argument %d case %d: %w", i, j, err)
			}
		}
	}
	w.PutInt32(argSlots)
	for _, d := range descs {
		nums := d.caseNumbers()
		w.PutInt32(int32(len(nums)))
		for _, n := range nums {
			w.PutInt32(n)
		}
	}
	w.PutInt32(ArgsPerKind)
	for _, d := range args.numbers.All() {
		w.PutInt32(d.InitValue)
	}
	return nil
}

// Decode reads one common event and reports which format family its trailer
// belongs to: V1_31 for the short trailer, V2_00 for the return block.
//
// Postcondition: on error the reader position is unspecified.
func Decode(r *wire.Reader, dec *event.Decoder) (*CommonEvent, wire.Version, error) {
	start := r.Offset()
	if err := r.Expect([]byte{markerStart}, "common event marker"); err != nil {
		return nil, 0, err
	}
	rawID, err := r.ReadInt32()
	if err != nil {
		return nil, 0, err
	}
	id, err := vo.NewCommonEventID(int(rawID))
	if err != nil {
		return nil, 0, werr.Format(start+1, "common event id", err)
	}
	ev := New(id)

	off := r.Offset()
	packed, err := r.ReadByte()
	if err != nil {
		return nil, 0, err
	}
	boot := unpackBoot(packed)
	if boot.LeftSide, err = r.ReadInt32(); err != nil {
		return nil, 0, err
	}
	if boot.RightSide, err = r.ReadInt32(); err != nil {
		return nil, 0, err
	}
	if err := ev.SetBootCondition(boot); err != nil {
		return nil, 0, werr.Format(off, "boot condition", err)
	}

	off = r.Offset()
	counts, err := r.ReadBytes(2)
	if err != nil {
		return nil, 0, err
	}
	if err := ev.SetArgCounts(int(counts[0]), int(counts[1])); err != nil {
		return nil, 0, werr.Format(off, "argument counts", err)
	}

	if err := readText(r, "name", ev.SetName); err != nil {
		return nil, 0, err
	}

	off = r.Offset()
	n, err := r.ReadCount("event command", event.ListMax)
	if err != nil {
		return nil, 0, err
	}
	if n < event.ListMin {
		return nil, 0, werr.Format(off, "event command count", werr.Range("event command count", event.ListMin, event.ListMax, n))
	}
	cmds, err := dec.DecodeList(r, n, address.OwnerCommonEvent)
	if err != nil {
		return nil, 0, fmt.Errorf("common event %d: %w", id.Int(), err)
	}
	if err := ev.SetCommands(cmds); err != nil {
		return nil, 0, err
	}

	if err := readText(r, "description", ev.SetDescription); err != nil {
		return nil, 0, err
	}
	if err := readText(r, "memo", ev.SetMemo); err != nil {
		return nil, 0, err
	}
	if err := decodeArgs(r, ev.args); err != nil {
		return nil, 0, fmt.Errorf("common event %d: %w", id.Int(), err)
	}

	if err := r.Expect([]byte{markerArgsEnd}, "argument block end marker"); err != nil {
		return nil, 0, err
	}
	off = r.Offset()
	rawColor, err := r.ReadInt32()
	if err != nil {
		return nil, 0, err
	}
	color, err := ParseLabelColor(rawColor)
	if err != nil {
		return nil, 0, werr.Format(off, "label color", err)
	}
	ev.color = color

	if err := expectCount(r, "self variable name", SelfVariableCount); err != nil {
		return nil, 0, err
	}
	for i := 0; i < SelfVariableCount; i++ {
		off = r.Offset()
		s, err := r.ReadString()
		if err != nil {
			return nil, 0, err
		}
		if err := ev.selfNames.SetName(i, s); err != nil {
			return nil, 0, werr.Format(off, fmt.Sprintf("self variable %d name", i), err)
		}
	}
	if err := r.Expect([]byte{markerSelfEnd}, "self variable end marker"); err != nil {
		return nil, 0, err
	}
	if err := readText(r, "footer", ev.SetFooter); err != nil {
		return nil, 0, err
	}

	off = r.Offset()
	trailer, err := r.ReadByte()
	if err != nil {
		return nil, 0, err
	}
	switch trailer {
	case markerSelfEnd:
		return ev, wire.V1_31, nil
	case markerReturnBlock:
	default:
		return nil, 0, werr.Format(off, fmt.Sprintf("unexpected trailer byte 0x%02X", trailer), nil)
	}

	desc, err := r.ReadString()
	if err != nil {
		return nil, 0, err
	}
	off = r.Offset()
	index, err := r.ReadInt32()
	if err != nil {
		return nil, 0, err
	}
	ret, err := NewReturnValue(int(index), desc)
	if err != nil {
		return nil, 0, werr.Format(off, "return value", err)
	}
	ev.ret = ret
	if err := r.Expect([]byte{markerReturnBlock}, "return block end marker"); err != nil {
		return nil, 0, err
	}
	return ev, wire.V2_00, nil
}

func decodeArgs(r *wire.Reader, args *SpecialArgDesc) error {
	descs := args.all()

	if err := expectCount(r, "argument name", argSlots); err != nil {
		return err
	}
	for i, d := range descs {
		if err := readText(r, fmt.Sprintf("argument %d name", i), d.SetName); err != nil {
			return err
		}
	}

	if err := expectCount(r, "argument type", argSlots); err != nil {
		return err
	}
	for i, d := range descs {
		off := r.Offset()
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		t, err := ParseArgType(b)
		if err != nil {
			return werr.Format(off, fmt.Sprintf("argument %d type", i), err)
		}
		d.argType = t
	}

	texts := make([][]string, argSlots)
	if err := expectCount(r, "argument case description", argSlots); err != nil {
		return err
	}
	for i := range descs {
		n, err := r.ReadCount("argument case description", maxCases)
		if err != nil {
			return err
		}
		texts[i] = make([]string, n)
		for j := range texts[i] {
			if texts[i][j], err = r.ReadString(); err != nil {
				return err
			}
		}
	}

	if err := expectCount(r, "argument case number", argSlots); err != nil {
		return err
	}
	for i, d := range descs {
		off := r.Offset()
		n, err := r.ReadCount("argument case number", maxCases+3)
		if err != nil {
			return err
		}
		nums := make([]int32, n)
		for j := range nums {
			if nums[j], err = r.ReadInt32(); err != nil {
				return err
			}
		}
		if err := d.setCaseLists(nums, texts[i]); err != nil {
			return werr.Format(off, fmt.Sprintf("argument %d cases", i), err)
		}
	}

	if err := expectCount(r, "argument initial value", ArgsPerKind); err != nil {
		return err
	}
	for _, d := range args.numbers.All() {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		d.InitValue = v
	}
	return nil
}

// maxCases bounds the case lists of one argument.
const maxCases = 999999

func expectCount(r *wire.Reader, what string, want int) error {
	off := r.Offset()
	n, err := r.ReadInt32()
	if err != nil {
		return err
	}
	if int(n) != want {
		return werr.Format(off, fmt.Sprintf("%s count is %d, want %d", what, n, want), nil)
	}
	return nil
}

func readText(r *wire.Reader, what string, set func(string) error) error {
	off := r.Offset()
	s, err := r.ReadString()
	if err != nil {
		return err
	}
	if err := set(s); err != nil {
		return werr.Format(off, what, err)
	}
	return nil
}
