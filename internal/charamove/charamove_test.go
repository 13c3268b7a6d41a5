package charamove

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wodi/internal/address"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

func attachedAssign(t *testing.T, owner address.Owner) *ValueChange {
	t.Helper()
	c, err := NewAssignValue(2000000, 0)
	require.NoError(t, err)
	c.attach(owner)
	return c
}

func TestAssignValue_MapEventOwner(t *testing.T) {
	tests := []struct {
		target  int32
		want    int32
		wantErr bool
	}{
		{999999, 0, true},
		{1000000, 0, true},
		{1099999, 0, true},
		{1100000, 1100000, false},
		{1100009, 1100009, false},
		{1100010, 0, true},
		{1600000, 1100000, false},
		{1600009, 1100009, false},
		{1600010, 0, true},
		{1999999, 0, true},
		{2000000, 2000000, false},
		{2099999, 2099999, false},
		{2100000, 0, true},
	}
	for _, tt := range tests {
		c := attachedAssign(t, address.OwnerMapEvent)
		err := c.SetTarget(tt.target)
		if tt.wantErr {
			assert.ErrorIs(t, err, werr.ErrRange, "target %d", tt.target)
			continue
		}
		require.NoError(t, err, "target %d", tt.target)
		assert.Equal(t, tt.want, c.Target(), "target %d", tt.target)
	}
}

func TestAssignValue_CommonEventOwner(t *testing.T) {
	tests := []struct {
		target  int32
		want    int32
		wantErr bool
	}{
		{1100000, 1600000, false},
		{1100009, 1600009, false},
		{1100010, 0, true},
		{1600000, 1600000, false},
		{1600009, 1600009, false},
		{1600010, 0, true},
		{2000000, 2000000, false},
		{2100000, 0, true},
	}
	for _, tt := range tests {
		c := attachedAssign(t, address.OwnerCommonEvent)
		err := c.SetTarget(tt.target)
		if tt.wantErr {
			assert.ErrorIs(t, err, werr.ErrRange, "target %d", tt.target)
			continue
		}
		require.NoError(t, err, "target %d", tt.target)
		assert.Equal(t, tt.want, c.Target(), "target %d", tt.target)
	}
}

func TestAssignValue_RemapsOnAttach(t *testing.T) {
	c, err := NewAssignValue(1100003, 7)
	require.NoError(t, err)
	assert.Equal(t, int32(1100003), c.Target())

	c.attach(address.OwnerCommonEvent)
	assert.Equal(t, int32(1600003), c.Target())
	c.attach(address.OwnerMapEvent)
	assert.Equal(t, int32(1100003), c.Target())
	assert.Equal(t, int32(7), c.Operand())
}

func TestList_PropagatesOwnerToLaterAdds(t *testing.T) {
	entry := NewActionEntry()
	entry.Attach(address.OwnerCommonEvent)

	c, err := NewAddValue(1100001, 1)
	require.NoError(t, err)
	require.NoError(t, entry.Commands().Add(c))
	assert.Equal(t, address.OwnerCommonEvent, c.Owner())
	assert.Equal(t, int32(1600001), c.Target())

	l, err := NewList(&Step{code: CodeMoveUp})
	require.NoError(t, err)
	require.NoError(t, entry.SetCommands(l))
	first, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, address.OwnerCommonEvent, first.Owner())
	assert.ErrorIs(t, entry.SetCommands(nil), werr.ErrNull)
}

func TestParamRanges(t *testing.T) {
	_, err := NewParam(CodeSetMoveSpeed, 7)
	assert.ErrorIs(t, err, werr.ErrRange)
	p, err := NewParam(CodeWait, 30)
	require.NoError(t, err)
	v, err := p.Value(0)
	require.NoError(t, err)
	assert.Equal(t, int32(30), v)
	_, err = p.Value(1)
	assert.ErrorIs(t, err, werr.ErrIndex)
	_, err = NewParam(CodeMoveDown, 0)
	assert.ErrorIs(t, err, werr.ErrRange)
	_, err = NewStep(CodeWait)
	assert.ErrorIs(t, err, werr.ErrRange)
}

func sampleEntry(t *testing.T) *ActionEntry {
	t.Helper()
	up, err := NewStep(CodeMoveUp)
	require.NoError(t, err)
	wait, err := NewParam(CodeWait, 15)
	require.NoError(t, err)
	jump, err := NewJump(-2, 3)
	require.NoError(t, err)
	assign, err := NewAssignValue(1600002, 42)
	require.NoError(t, err)
	l, err := NewList(up, wait, jump, assign)
	require.NoError(t, err)
	e := NewActionEntry()
	e.Repeat = true
	e.WaitForCompletion = true
	require.NoError(t, e.SetCommands(l))
	e.Attach(address.OwnerCommonEvent)
	return e
}

func TestActionEntry_Binary(t *testing.T) {
	e := sampleEntry(t)
	w := wire.NewWriter(wire.ShiftJIS)
	e.Encode(w)

	want := []byte{
		0x05,                   // repeat | wait for completion
		0x04, 0x00, 0x00, 0x00, // four commands
		0x04, 0x00, 0x01, 0x00, // MoveUp
		0x21, 0x01, 0x0F, 0x00, 0x00, 0x00, 0x01, 0x00, // Wait 15
		0x16, 0x02, 0xFE, 0xFF, 0xFF, 0xFF, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, // Jump -2, 3
		0x1C, 0x02, 0x02, 0x6A, 0x18, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x01, 0x00, // AssignValue 1600002 = 42
	}
	assert.Equal(t, want, w.Bytes())

	got, err := Decode(wire.NewReader(w.Bytes(), wire.ShiftJIS), address.OwnerCommonEvent)
	require.NoError(t, err)
	assert.Equal(t, e.Repeat, got.Repeat)
	assert.Equal(t, e.SkipIfBlocked, got.SkipIfBlocked)
	assert.Equal(t, e.WaitForCompletion, got.WaitForCompletion)
	assert.Equal(t, e.Commands().Items(), got.Commands().Items())
	assert.Equal(t, address.OwnerCommonEvent, got.Owner())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		offset int
	}{
		{"unknown option", []byte{0x80, 0, 0, 0, 0}, 0},
		{"unknown code", []byte{0x00, 1, 0, 0, 0, 0xEE, 0x00, 0x01, 0x00}, 5},
		{"wrong value count", []byte{0x00, 1, 0, 0, 0, 0x04, 0x01, 0x01, 0x00}, 6},
		{"bad terminator", []byte{0x00, 1, 0, 0, 0, 0x04, 0x00, 0x02, 0x00}, 7},
		{"value out of range", []byte{0x00, 1, 0, 0, 0, 0x1E, 0x01, 0x09, 0, 0, 0, 0x01, 0x00}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(wire.NewReader(tt.data, wire.ShiftJIS), address.OwnerNone)
			var fe *werr.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.offset, fe.Offset)
		})
	}
}

func TestDecode_SelfVariableOfOtherEventKind(t *testing.T) {
	// AssignValue 1100003 = 5: a map event self variable
	data := []byte{0x00, 1, 0, 0, 0, 0x1C, 0x02, 0xE3, 0xC8, 0x10, 0x00, 0x05, 0, 0, 0, 0x01, 0x00}

	_, err := Decode(wire.NewReader(data, wire.ShiftJIS), address.OwnerCommonEvent)
	var fe *werr.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 7, fe.Offset)

	for _, owner := range []address.Owner{address.OwnerNone, address.OwnerMapEvent} {
		got, err := Decode(wire.NewReader(data, wire.ShiftJIS), owner)
		require.NoError(t, err, owner.String())
		w := wire.NewWriter(wire.ShiftJIS)
		got.Encode(w)
		assert.Equal(t, data, w.Bytes(), owner.String())
	}
}

func TestPropertyActionEntryRoundTrip(t *testing.T) {
	codes := make([]Code, 0, len(codeSpecs))
	for c := range codeSpecs {
		codes = append(codes, c)
	}
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		cmds := make([]Command, 0, n)
		for i := 0; i < n; i++ {
			code := rapid.SampledFrom(codes).Draw(t, "code")
			cmd, err := New(code)
			if err != nil {
				t.Fatal(err)
			}
			cmds = append(cmds, cmd)
		}
		l, err := NewList(cmds...)
		if err != nil {
			t.Fatal(err)
		}
		e := NewActionEntry()
		e.SkipIfBlocked = rapid.Bool().Draw(t, "skip")
		if err := e.SetCommands(l); err != nil {
			t.Fatal(err)
		}
		w := wire.NewWriter(wire.ShiftJIS)
		e.Encode(w)
		got, err := Decode(wire.NewReader(w.Bytes(), wire.ShiftJIS), address.OwnerNone)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		w2 := wire.NewWriter(wire.ShiftJIS)
		got.Encode(w2)
		if string(w.Bytes()) != string(w2.Bytes()) {
			t.Fatalf("round trip mismatch")
		}
	})
}
