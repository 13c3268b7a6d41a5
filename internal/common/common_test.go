package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/vo"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

func encodeEvent(t *testing.T, ev *CommonEvent, v wire.Version) []byte {
	t.Helper()
	w := wire.NewWriter(wire.UTF8)
	require.NoError(t, Encode(w, ev, v, nil))
	return w.Bytes()
}

func decodeEvent(t *testing.T, b []byte) (*CommonEvent, wire.Version) {
	t.Helper()
	r := wire.NewReader(b, wire.UTF8)
	ev, v, err := Decode(r, event.NewDecoder(nil, event.PolicyFail, nil))
	require.NoError(t, err)
	assert.Zero(t, r.Remaining())
	return ev, v
}

// sampleEvent exercises every section of the record.
func sampleEvent(t *testing.T) *CommonEvent {
	t.Helper()
	ev := New(vo.Must(vo.NewCommonEventID(12)))
	require.NoError(t, ev.SetName("Shop"))
	require.NoError(t, ev.SetDescription("opens the shop"))
	require.NoError(t, ev.SetMemo("line one\nline two"))
	require.NoError(t, ev.SetFooter(""))
	require.NoError(t, ev.SetArgCounts(2, 1))
	require.NoError(t, ev.SetLabelColor(LabelGreen))
	require.NoError(t, ev.SetBootCondition(BootCondition{
		Type: BootParallel, Operator: event.NumberLessOrEqual, LeftSide: 2000010, RightSide: 3,
	}))

	w := &event.Wait{Frames: 30}
	require.NoError(t, w.SetIndent(1))
	cmds, err := event.NewList(
		event.NewMessage("welcome"),
		w,
		&event.SetVariable{Left: 1600001, Right1: 7, Right1IsNumber: true},
		event.NewBlank(),
	)
	require.NoError(t, err)
	require.NoError(t, ev.SetCommands(cmds))

	args := ev.SpecialArgs()
	item, err := args.NumberArg(0)
	require.NoError(t, err)
	require.NoError(t, item.SetName("item"))
	require.NoError(t, item.SetDatabase(DBReference{Kind: event.DBChangeable, TypeID: 4, UseAdditionalItems: true}))
	require.NoError(t, item.SetCases([]ArgCase{{Number: -1, Description: vo.Must(vo.NewArgCaseDescription("none"))}}))
	item.InitValue = -1

	mode, err := args.NumberArg(1)
	require.NoError(t, err)
	require.NoError(t, mode.SetName("mode"))
	require.NoError(t, mode.SetType(ArgManual))
	require.NoError(t, mode.SetCases([]ArgCase{
		{Number: 0, Description: vo.Must(vo.NewArgCaseDescription("buy"))},
		{Number: 1, Description: vo.Must(vo.NewArgCaseDescription("sell"))},
	}))

	greeting, err := args.StringArg(0)
	require.NoError(t, err)
	require.NoError(t, greeting.SetName("greeting"))

	require.NoError(t, ev.SelfNames().SetName(0, "gold"))
	require.NoError(t, ev.SelfNames().SetName(99, "last"))

	ret, err := NewReturnValue(5, "price")
	require.NoError(t, err)
	ev.SetReturnValue(ret)
	return ev
}

func TestNew_Defaults(t *testing.T) {
	ev := New(vo.Must(vo.NewCommonEventID(3)))
	assert.Equal(t, 3, ev.ID().Int())
	assert.Equal(t, NewBootCondition(), ev.BootCondition())
	assert.Equal(t, 1, ev.Commands().Count())
	assert.Equal(t, address.OwnerCommonEvent, ev.Commands().Owner())
	assert.False(t, ev.ReturnValue().IsReturn())
	assert.Equal(t, -1, ev.ReturnValue().Index())
	assert.Equal(t, SelfVariableCount, ev.SelfNames().Count())
	n, s := ev.ArgCounts()
	assert.Zero(t, n)
	assert.Zero(t, s)
}

func TestEncode_Prefix(t *testing.T) {
	ev := New(vo.Must(vo.NewCommonEventID(3)))
	got := encodeEvent(t, ev, wire.Latest)

	want := []byte{
		0x8E,
		0x03, 0x00, 0x00, 0x00, // id
		0x00,                   // called only, operator >
		0x80, 0x84, 0x1E, 0x00, // 2000000
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, // argument counts
		0x00, 0x00, 0x00, 0x00, // name
		0x01, 0x00, 0x00, 0x00, // one command
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // blank
	}
	require.Greater(t, len(got), len(want))
	assert.Equal(t, want, got[:len(want)])
	assert.Equal(t, []byte{0x92, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x92}, got[len(got)-10:])
}

func TestRoundTrip_FullEvent(t *testing.T) {
	ev := sampleEvent(t)
	b := encodeEvent(t, ev, wire.V2_24)

	got, v := decodeEvent(t, b)
	assert.Equal(t, wire.V2_00, v)
	assert.Equal(t, b, encodeEvent(t, got, v))

	assert.Equal(t, "Shop", got.Name().String())
	assert.Equal(t, "line one\nline two", got.Memo().String())
	assert.Equal(t, LabelGreen, got.LabelColor())
	assert.Equal(t, ev.BootCondition(), got.BootCondition())
	assert.Equal(t, 4, got.Commands().Count())
	assert.Equal(t, 5, got.ReturnValue().Index())
	assert.Equal(t, "price", got.ReturnValue().Description.String())

	item, err := got.SpecialArgs().NumberArg(0)
	require.NoError(t, err)
	assert.Equal(t, ArgReferDatabase, item.Type())
	assert.Equal(t, DBReference{Kind: event.DBChangeable, TypeID: 4, UseAdditionalItems: true}, item.Database())
	assert.Equal(t, int32(-1), item.InitValue)
	require.Len(t, item.Cases(), 1)
	assert.Equal(t, "none", item.Cases()[0].Description.String())

	mode, err := got.SpecialArgs().NumberArg(1)
	require.NoError(t, err)
	assert.Equal(t, ArgManual, mode.Type())
	assert.Len(t, mode.Cases(), 2)

	last, err := got.SelfNames().Get(99)
	require.NoError(t, err)
	assert.Equal(t, "last", last.String())
}

func TestEncode_Before200DropsReturnValue(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ev := sampleEvent(t)

	w := wire.NewWriter(wire.UTF8)
	require.NoError(t, Encode(w, ev, wire.V1_31, zap.New(core)))
	b := w.Bytes()
	assert.Equal(t, []byte{0x91, 0x00, 0x00, 0x00, 0x00, 0x91}, b[len(b)-6:])

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Contains(t, entry.Message, "return value dropped")
	assert.EqualValues(t, 12, entry.ContextMap()["id"])

	got, v := decodeEvent(t, b)
	assert.Equal(t, wire.V1_31, v)
	assert.False(t, got.ReturnValue().IsReturn())
	assert.Equal(t, b, encodeEvent(t, got, v))
}

func TestEncode_Before200WithoutReturnIsQuiet(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	w := wire.NewWriter(wire.UTF8)
	require.NoError(t, Encode(w, New(vo.CommonEventID{}), wire.V1_31, zap.New(core)))
	assert.Zero(t, logs.Len())
}

func TestDecode_Errors(t *testing.T) {
	good := encodeEvent(t, New(vo.Must(vo.NewCommonEventID(1))), wire.Latest)

	// color, 100 empty self-variable names, 0x91, footer, return block
	colorAt := len(good) - 423
	require.Equal(t, byte(0x90), good[colorAt-1])

	type errCase struct {
		name   string
		mutate func(b []byte) []byte
		offset int
	}
	cases := []errCase{
		{"bad start marker", func(b []byte) []byte { b[0] = 0x8F; return b }, 0},
		{"bad boot operator", func(b []byte) []byte { b[5] = 0x70; return b }, 5},
		{"argument count above four", func(b []byte) []byte { b[14] = 5; return b }, 14},
		{"zero commands", func(b []byte) []byte { b[20] = 0; return b }, 20},
		{"label color", func(b []byte) []byte { b[colorAt] = 7; return b }, colorAt},
		{"bad trailer", func(b []byte) []byte { b[len(b)-10] = 0x93; return b }, len(good) - 10},
		{"truncated", func(b []byte) []byte { return b[:len(b)-1] }, len(good) - 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.mutate(append([]byte(nil), good...))
			_, _, err := Decode(wire.NewReader(b, wire.UTF8), event.NewDecoder(nil, event.PolicyFail, nil))
			require.Error(t, err)
			var fe *werr.FormatError
			require.True(t, errors.As(err, &fe), err.Error())
			assert.Equal(t, tc.offset, fe.Offset)
		})
	}
}

func TestSetters_Validate(t *testing.T) {
	ev := New(vo.CommonEventID{})

	assert.ErrorIs(t, ev.SetArgCounts(5, 0), werr.ErrRange)
	assert.ErrorIs(t, ev.SetArgCounts(0, -1), werr.ErrRange)
	assert.ErrorIs(t, ev.SetCommands(nil), werr.ErrNull)
	assert.ErrorIs(t, ev.SetLabelColor(LabelColor(7)), werr.ErrRange)
	assert.ErrorIs(t, ev.SetName("a\nb"), werr.ErrRange)
	assert.ErrorIs(t, ev.SetBootCondition(BootCondition{Type: 4}), werr.ErrRange)
	assert.ErrorIs(t, ev.SelfNames().SetName(100, "x"), werr.ErrRange)

	_, err := NewReturnValue(100, "")
	assert.ErrorIs(t, err, werr.ErrRange)

	n, s := ev.ArgCounts()
	assert.Zero(t, n)
	assert.Zero(t, s)
	assert.Empty(t, ev.Name().String())
}

func TestSetCommands_AttachesOwner(t *testing.T) {
	ev := New(vo.CommonEventID{})
	cmds, err := event.NewList(event.NewBlank())
	require.NoError(t, err)
	require.NoError(t, ev.SetCommands(cmds))
	assert.Equal(t, address.OwnerCommonEvent, cmds.Owner())
}

func TestSpecialArgDesc_FixedSize(t *testing.T) {
	args := NewSpecialArgDesc()
	_, err := args.NumberArg(5)
	assert.ErrorIs(t, err, werr.ErrRange)
	_, err = args.StringArg(-1)
	assert.ErrorIs(t, err, werr.ErrRange)
	assert.Len(t, args.all(), 2*ArgsPerKind)
}

func TestList_Capacity(t *testing.T) {
	l, err := NewList()
	require.NoError(t, err)
	assert.Zero(t, l.Count())
	assert.Equal(t, MaxEvents, l.Max())
	require.NoError(t, l.Add(New(vo.CommonEventID{})))
	assert.ErrorIs(t, l.Add(nil), werr.ErrNull)
}

func TestPropertyCommonEventRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ev := New(vo.Must(vo.NewCommonEventID(rapid.IntRange(0, 9999).Draw(t, "id"))))
		require.NoError(t, ev.SetName(rapid.StringMatching(`[a-zA-Z0-9 ]{0,12}`).Draw(t, "name")))
		require.NoError(t, ev.SetArgCounts(rapid.IntRange(0, 4).Draw(t, "nums"), rapid.IntRange(0, 4).Draw(t, "strs")))
		require.NoError(t, ev.SetLabelColor(LabelColor(rapid.IntRange(0, 6).Draw(t, "color"))))
		require.NoError(t, ev.SetBootCondition(BootCondition{
			Type:      BootType(rapid.IntRange(0, 3).Draw(t, "boot")),
			Operator:  event.NumberOperator(rapid.IntRange(0, 6).Draw(t, "op")),
			LeftSide:  rapid.Int32().Draw(t, "left"),
			RightSide: rapid.Int32().Draw(t, "right"),
		}))
		idx := rapid.IntRange(-1, 99).Draw(t, "ret")
		ret, err := NewReturnValue(idx, "")
		require.NoError(t, err)
		ev.SetReturnValue(ret)
		version := rapid.SampledFrom([]wire.Version{wire.V1_31, wire.V2_00, wire.V3_00}).Draw(t, "version")

		w := wire.NewWriter(wire.UTF8)
		require.NoError(t, Encode(w, ev, version, nil))
		r := wire.NewReader(w.Bytes(), wire.UTF8)
		got, v, err := Decode(r, event.NewDecoder(nil, event.PolicyFail, nil))
		require.NoError(t, err)

		w2 := wire.NewWriter(wire.UTF8)
		require.NoError(t, Encode(w2, got, v, nil))
		assert.Equal(t, w.Bytes(), w2.Bytes())
		assert.Equal(t, ev.BootCondition(), got.BootCondition())
	})
}
