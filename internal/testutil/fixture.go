// Package testutil provides test helpers that build common event fixtures
// from the model and write them to disk.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cory-johannsen/wodi/internal/common"
	"github.com/cory-johannsen/wodi/internal/datfile"
	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/vo"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// SampleData builds n common events with ids 0..n-1. Event i is named name and
// runs a comment, a wait of i frames and a blank line.
//
// Precondition: 0 <= n <= common.MaxEvents.
// Postcondition: Returns data tagged with version, or fails the test.
func SampleData(t *testing.T, n int, name string, version wire.Version) *common.Data {
	t.Helper()
	d := common.NewData()
	d.Version = version
	for i := 0; i < n; i++ {
		ev := common.New(vo.Must(vo.NewCommonEventID(i)))
		if err := ev.SetName(name); err != nil {
			t.Fatalf("naming event %d: %v", i, err)
		}
		cmds, err := event.NewList(event.NewComment("step"), &event.Wait{Frames: int32(i)}, event.NewBlank())
		if err != nil {
			t.Fatalf("building commands of event %d: %v", i, err)
		}
		if err := ev.SetCommands(cmds); err != nil {
			t.Fatalf("setting commands of event %d: %v", i, err)
		}
		if err := d.Events.Add(ev); err != nil {
			t.Fatalf("adding event %d: %v", i, err)
		}
	}
	return d
}

// WriteDatFile writes d to dir/name with opts and returns the path.
//
// Precondition: dir must exist.
// Postcondition: Returns the path of a decodable file, or fails the test.
func WriteDatFile(t *testing.T, dir, name string, d *common.Data, opts datfile.Options) string {
	t.Helper()
	start := time.Now()
	path := filepath.Join(dir, name)
	if err := datfile.NewWriter(opts).WriteFile(path, d); err != nil {
		t.Fatalf("writing fixture %s: %v [%s]", path, err, time.Since(start))
	}
	return path
}
