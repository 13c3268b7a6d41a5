package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wodi/internal/werr"
)

func newObservedSink() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core), logs
}

func TestClassify_EveryKindBoundary(t *testing.T) {
	for _, k := range Kinds() {
		r := k.Range()
		for _, v := range []int{r.Min, r.Max} {
			a, err := Classify(v, nil)
			require.NoError(t, err, "%s %d", k, v)
			assert.Equal(t, k, a.Kind(), "value %d", v)
			assert.Equal(t, v, a.Int())
		}
	}
}

func TestClassify_Gaps(t *testing.T) {
	for _, v := range []int{-1, 0, 999999, 1100010, 1600100, 1999999, 3100000, 7999999, 9190010, 9899999, 16000000, 1200000000, 1400000000} {
		_, err := Classify(v, nil)
		assert.ErrorIs(t, err, werr.ErrClassification, "value %d", v)
	}
}

func TestClassify_KindsAreDisjoint(t *testing.T) {
	kinds := Kinds()
	for i, a := range kinds {
		for _, b := range kinds[i+1:] {
			ra, rb := a.Range(), b.Range()
			overlap := ra.Min <= rb.Max && rb.Min <= ra.Max
			assert.False(t, overlap, "%s overlaps %s", a, b)
		}
	}
}

func TestNew_RejectsOutOfKind(t *testing.T) {
	_, err := NewSystemVariable(8999999, nil)
	assert.ErrorIs(t, err, werr.ErrRange)
	_, err = NewThisMapEventVariable(1100010, nil)
	assert.ErrorIs(t, err, werr.ErrRange)
	a, err := NewThisMapEventVariable(1100009, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, ThisMapEventIndex(a).Int())
}

func TestSafetyRangeWarnsButAccepts(t *testing.T) {
	sink, logs := newObservedSink()

	a, err := NewNormalNumberVariable(2050000, sink)
	require.NoError(t, err)
	assert.Equal(t, 2050000, a.Int())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "variable address outside safety range", entry.Message)
	assert.Equal(t, "NormalNumberVariable", entry.ContextMap()["kind"])
	assert.Equal(t, int64(2050000), entry.ContextMap()["value"])

	_, err = NewNormalNumberVariable(2000010, sink)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.Len())

	_, err = Classify(3050000, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, logs.Len())
}

func TestSystemVariable_WholeRangeIsSafe(t *testing.T) {
	sink, logs := newObservedSink()
	for _, v := range []int{9000000, 9009999, 9010000, 9050000, 9099999} {
		a, err := NewSystemVariable(v, sink)
		require.NoError(t, err)
		assert.Equal(t, v, a.Int())
	}
	assert.Zero(t, logs.Len())
	assert.True(t, KindSystemVariable.Range().Safe(9099999))
}

func TestAddSub_Revalidate(t *testing.T) {
	a, err := NewSystemVariable(9000010, nil)
	require.NoError(t, err)

	b, err := a.Add(5)
	require.NoError(t, err)
	assert.Equal(t, 9000015, b.Int())
	assert.Equal(t, 5, b.Distance(a))

	c, err := b.Sub(15)
	require.NoError(t, err)
	assert.Equal(t, 9000000, c.Int())

	_, err = c.Sub(1)
	assert.ErrorIs(t, err, werr.ErrOperation)
	assert.ErrorIs(t, err, werr.ErrRange)

	top, err := NewSystemVariable(9099999, nil)
	require.NoError(t, err)
	_, err = top.Add(1)
	assert.ErrorIs(t, err, werr.ErrOperation)
}

func TestCrossKindDiffAndEqual(t *testing.T) {
	sys, err := Classify(9000000, nil)
	require.NoError(t, err)
	self, err := Classify(1100000, nil)
	require.NoError(t, err)
	assert.Equal(t, 7900000, Diff(sys, self))
	assert.Equal(t, -7900000, Diff(self, sys))
	assert.False(t, Equal(sys, self))

	again, err := NewSystemVariable(9000000, nil)
	require.NoError(t, err)
	assert.True(t, Equal(sys, again))
	assert.Equal(t, sys, VariableAddress(again))
}

func TestDecomposition(t *testing.T) {
	me, err := NewMapEventVariable(1012345, nil)
	require.NoError(t, err)
	id, idx := MapEventParts(me)
	assert.Equal(t, 1234, id.Int())
	assert.Equal(t, 5, idx.Int())

	ce, err := NewCommonEventVariable(15012345, nil)
	require.NoError(t, err)
	cid, cidx := CommonEventParts(ce)
	assert.Equal(t, 123, cid.Int())
	assert.Equal(t, 45, cidx.Int())

	sp, err := NewSpareNumberVariable(2312345, nil)
	require.NoError(t, err)
	set, sidx := SpareNumberParts(sp)
	assert.Equal(t, 3, set)
	assert.Equal(t, 12345, sidx.Int())

	r, err := NewRandomNumber(8000100, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, RandomMax(r).Int())

	db, err := Classify(1102003004, nil)
	require.NoError(t, err)
	typ, data, item, err := DBParts(db)
	require.NoError(t, err)
	assert.Equal(t, 2, typ.Int())
	assert.Equal(t, 30, data.Int())
	assert.Equal(t, 4, item.Int())

	_, _, _, err = DBParts(r)
	assert.ErrorIs(t, err, werr.ErrOperation)
}

func TestSelfVariableRange(t *testing.T) {
	r, ok := SelfVariableRange(OwnerMapEvent)
	require.True(t, ok)
	assert.Equal(t, 1100000, r.Min)
	r, ok = SelfVariableRange(OwnerCommonEvent)
	require.True(t, ok)
	assert.Equal(t, 1600000, r.Min)
	_, ok = SelfVariableRange(OwnerNone)
	assert.False(t, ok)
}

// Property-based tests

func TestPropertyClassifyMatchesKindRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(-10, 1400000000).Draw(t, "v")
		a, err := Classify(v, nil)
		k, ok := KindOf(v)
		if !ok {
			if err == nil {
				t.Fatalf("%d classified as %s", v, a.Kind())
			}
			return
		}
		if err != nil {
			t.Fatalf("%d: %v", v, err)
		}
		if a.Kind() != k || !k.Range().Contains(v) || a.Int() != v {
			t.Fatalf("%d classified as %s", v, a.Kind())
		}
	})
}

func TestPropertyAddStaysInKind(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(2000000, 2099999).Draw(t, "v")
		n := rapid.IntRange(-200000, 200000).Draw(t, "n")
		a, err := NewNormalNumberVariable(v, nil)
		if err != nil {
			t.Fatal(err)
		}
		b, err := a.Add(n)
		inRange := v+n >= 2000000 && v+n <= 2099999
		if inRange != (err == nil) {
			t.Fatalf("%d + %d: err=%v", v, n, err)
		}
		if err == nil && b.Distance(a) != n {
			t.Fatalf("distance %d, want %d", b.Distance(a), n)
		}
	})
}
