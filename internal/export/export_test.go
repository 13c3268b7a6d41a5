package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/wodi/internal/charamove"
	"github.com/cory-johannsen/wodi/internal/common"
	"github.com/cory-johannsen/wodi/internal/datfile"
	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/export"
	"github.com/cory-johannsen/wodi/internal/vo"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// fakeSource serves fixed data per path.
type fakeSource struct {
	data map[string]*common.Data
	read []string
}

func (f *fakeSource) ReadFile(path string) (*common.Data, error) {
	f.read = append(f.read, path)
	d, ok := f.data[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return d, nil
}

func sampleData(t *testing.T) *common.Data {
	t.Helper()
	ev := common.New(vo.Must(vo.NewCommonEventID(7)))
	require.NoError(t, ev.SetName("Walk"))
	require.NoError(t, ev.SetArgCounts(1, 0))
	require.NoError(t, ev.SelfNames().SetName(3, "steps"))
	ret, err := common.NewReturnValue(3, "steps taken")
	require.NoError(t, err)
	ev.SetReturnValue(ret)

	arg, err := ev.SpecialArgs().NumberArg(0)
	require.NoError(t, err)
	require.NoError(t, arg.SetName("distance"))
	arg.InitValue = 4

	jump, err := charamove.NewJump(1, -1)
	require.NoError(t, err)
	script, err := charamove.NewList(jump)
	require.NoError(t, err)
	route := event.NewMoveRoute(event.MoveTargetHero)
	entry := charamove.NewActionEntry()
	entry.Repeat = true
	require.NoError(t, entry.SetCommands(script))
	require.NoError(t, route.SetActionEntry(entry))

	cmds, err := event.NewList(event.NewMessage("go"), route, event.NewBlank())
	require.NoError(t, err)
	require.NoError(t, ev.SetCommands(cmds))

	d := common.NewData()
	require.NoError(t, d.Events.Add(ev))
	return d
}

func TestFromData(t *testing.T) {
	doc := export.FromData(sampleData(t))
	assert.Equal(t, "3.00", doc.Version)
	require.Len(t, doc.Events, 1)

	ev := doc.Events[0]
	assert.Equal(t, 7, ev.ID)
	assert.Equal(t, "Walk", ev.Name)
	assert.Equal(t, "Black", ev.LabelColor)
	assert.Equal(t, export.BootDoc{Type: "CalledOnly", Operator: event.NumberOperator(0).String(), Left: 2000000}, ev.Boot)
	assert.Equal(t, map[int]string{3: "steps"}, ev.SelfVariables)
	assert.Equal(t, &export.ReturnDoc{SelfVariable: 3, Description: "steps taken"}, ev.Return)

	require.Len(t, ev.NumberArgs, 1)
	assert.Empty(t, ev.StringArgs)
	assert.Equal(t, "distance", ev.NumberArgs[0].Name)
	require.NotNil(t, ev.NumberArgs[0].Init)
	assert.Equal(t, int32(4), *ev.NumberArgs[0].Init)

	require.Len(t, ev.Commands, 3)
	assert.Equal(t, export.CommandDoc{Code: 101, Name: "Message", Strings: []string{"go"}}, ev.Commands[0])
	move := ev.Commands[1].Move
	require.NotNil(t, move)
	assert.True(t, move.Repeat)
	require.Len(t, move.Steps, 1)
	assert.Equal(t, []int32{1, -1}, move.Steps[0].Values)
}

func TestMarshal_Indent(t *testing.T) {
	doc := export.FromData(sampleData(t))
	out, err := export.Marshal(doc, 4)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n    - id: 7\n")

	back, err := export.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "CommonEvent.yaml", export.OutputName("/data/CommonEvent.dat"))
	assert.Equal(t, "noext.yaml", export.OutputName("noext"))
}

func TestExporter_Run_WritesOneDocumentPerFile(t *testing.T) {
	src := &fakeSource{data: map[string]*common.Data{
		"a/first.dat":  sampleData(t),
		"b/second.dat": common.NewData(),
	}}
	core, logs := observer.New(zap.InfoLevel)
	outDir := filepath.Join(t.TempDir(), "yaml")

	err := export.New(src, 2, zap.New(core)).Run(context.Background(), []string{"a/first.dat", "b/second.dat"}, outDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/first.dat", "b/second.dat"}, src.read)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	b, err := os.ReadFile(filepath.Join(outDir, "first.yaml"))
	require.NoError(t, err)
	doc, err := export.Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, "Walk", doc.Events[0].Name)

	assert.Equal(t, 2, logs.FilterMessage("exported common events").Len())
}

func TestExporter_Run_StopsOnSourceError(t *testing.T) {
	src := &fakeSource{data: map[string]*common.Data{}}
	err := export.New(src, 2, nil).Run(context.Background(), []string{"missing.dat", "other.dat"}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.dat")
	assert.Equal(t, []string{"missing.dat"}, src.read)
}

func TestExporter_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &fakeSource{}
	err := export.New(src, 2, nil).Run(ctx, []string{"x.dat"}, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, src.read)
}

func TestExporter_Run_WithDatfileReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, datfile.FileName)
	opts := datfile.Options{Encoding: wire.UTF8}
	require.NoError(t, datfile.NewWriter(opts).WriteFile(path, sampleData(t)))

	outDir := filepath.Join(dir, "out")
	require.NoError(t, export.New(datfile.NewReader(opts), 2, nil).Run(context.Background(), []string{path}, outDir))

	b, err := os.ReadFile(filepath.Join(outDir, "CommonEvent.yaml"))
	require.NoError(t, err)
	doc, err := export.Unmarshal(b)
	require.NoError(t, err)
	require.Len(t, doc.Events, 1)
	assert.Equal(t, "2.00", doc.Version)
}

func TestPropertyMarshalRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := common.NewData()
		n := rapid.IntRange(0, 5).Draw(t, "events")
		for i := 0; i < n; i++ {
			ev := common.New(vo.Must(vo.NewCommonEventID(i)))
			if err := ev.SetName(rapid.StringMatching(`[a-z ]{0,10}`).Draw(t, "name")); err != nil {
				t.Fatalf("name: %v", err)
			}
			if err := d.Events.Add(ev); err != nil {
				t.Fatalf("add: %v", err)
			}
		}
		doc := export.FromData(d)
		out, err := export.Marshal(doc, rapid.IntRange(2, 8).Draw(t, "indent"))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		back, err := export.Unmarshal(out)
		if err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		assert.Equal(t, doc, back)
	})
}
