// Package datfile reads and writes CommonEvent.dat, the file holding every common
// event of a project.
//
// A file is the fixed header, an int32 event count, the events, then the footer byte.
package datfile

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wodi/internal/common"
	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// FileName is the name the editor gives the file inside a project's data directory.
const FileName = "CommonEvent.dat"

var (
	header = []byte{0x00, 0x57, 0x00, 0x00, 0x4F, 0x4C, 0x00, 0x46, 0x43, 0x00, 0x8F}
	footer = []byte{0x8F}
)

// Header returns a copy of the file header.
func Header() []byte { return append([]byte(nil), header...) }

// Footer returns a copy of the file footer.
func Footer() []byte { return append([]byte(nil), footer...) }

// Options configures a Reader or Writer. The zero value reads and writes Shift-JIS,
// fails on unknown commands, keeps the version found in the data and runs one worker.
type Options struct {
	// Version forces the format written. Zero writes Data.Version, or wire.Latest
	// when that is also zero. Readers use it as the version of a file with no events.
	Version wire.Version
	// Encoding is the string encoding; the zero value is Shift-JIS.
	Encoding wire.Encoding
	// Policy decides what happens to command codes the registry does not know.
	Policy event.Policy
	// Registry resolves command codes. Nil selects event.DefaultRegistry.
	Registry *event.Registry
	// Workers bounds the files processed concurrently by ReadFiles and WriteFiles.
	Workers int
	// Logger receives codec warnings and per-file debug records. Nil discards them.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

// Result is the outcome of one asynchronous read or write. ID correlates it with
// the driver's log records.
type Result struct {
	ID   uuid.UUID
	Path string
	Data *common.Data
	Err  error
}
