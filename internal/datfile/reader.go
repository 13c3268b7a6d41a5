package datfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/wodi/internal/common"
	"github.com/cory-johannsen/wodi/internal/event"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// Reader decodes CommonEvent.dat files. It holds no per-read state and is safe
// for concurrent use.
type Reader struct {
	opts   Options
	dec    *event.Decoder
	logger *zap.Logger
}

// NewReader returns a Reader configured by opts.
func NewReader(opts Options) *Reader {
	logger := opts.logger()
	return &Reader{
		opts:   opts,
		dec:    event.NewDecoder(opts.Registry, opts.Policy, logger),
		logger: logger,
	}
}

// Read drains src and decodes it.
//
// Postcondition: Returns complete data or a nil Data and a non-nil error.
func (r *Reader) Read(src io.Reader) (*common.Data, error) {
	wr, err := wire.ReadAll(src, r.opts.Encoding)
	if err != nil {
		return nil, err
	}
	return r.decode(wr)
}

// Decode decodes an in-memory file image.
//
// Postcondition: Returns complete data or a nil Data and an error matching
// werr.ErrFormat whose offset locates the fault.
func (r *Reader) Decode(b []byte) (*common.Data, error) {
	return r.decode(wire.NewReader(b, r.opts.Encoding))
}

func (r *Reader) decode(wr *wire.Reader) (*common.Data, error) {
	if err := wr.Expect(header, "file header"); err != nil {
		return nil, err
	}
	n, err := wr.ReadCount("common event", common.MaxEvents)
	if err != nil {
		return nil, err
	}

	events := make([]*common.CommonEvent, 0, n)
	var version wire.Version
	for i := 0; i < n; i++ {
		start := wr.Offset()
		ev, v, err := common.Decode(wr, r.dec)
		if err != nil {
			return nil, fmt.Errorf("datfile: common event %d: %w", i, err)
		}
		if i > 0 && v != version {
			return nil, werr.Format(start, fmt.Sprintf("common event %d is format %s, earlier events are %s", i, v, version), nil)
		}
		version = v
		events = append(events, ev)
	}

	if err := wr.Expect(footer, "file footer"); err != nil {
		return nil, err
	}
	if wr.Remaining() > 0 {
		return nil, werr.Format(wr.Offset(), fmt.Sprintf("%d bytes after file footer", wr.Remaining()), nil)
	}

	if n == 0 {
		version = r.opts.Version
		if version == 0 {
			version = wire.Latest
		}
	}
	list, err := common.NewList(events...)
	if err != nil {
		return nil, err
	}
	return &common.Data{Events: list, Version: version}, nil
}

// ReadFile reads and decodes the file at path.
func (r *Reader) ReadFile(path string) (*common.Data, error) {
	return r.readFile(uuid.New(), path)
}

func (r *Reader) readFile(id uuid.UUID, path string) (*common.Data, error) {
	began := time.Now()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("datfile: reading %s: %w", path, err)
	}
	data, err := r.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("datfile: decoding %s: %w", path, err)
	}
	r.logger.Debug("read common events",
		zap.String("path", path),
		zap.Stringer("read_id", id),
		zap.Int("events", data.Events.Count()),
		zap.Int("bytes", len(b)),
		zap.Stringer("version", data.Version),
		zap.Duration("elapsed", time.Since(began)),
	)
	return data, nil
}

// ReadFileAsync reads path on a new goroutine. The channel receives exactly one
// Result and is then closed. A context cancelled before the read starts yields
// ctx.Err().
func (r *Reader) ReadFileAsync(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)
	id := uuid.New()
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- Result{ID: id, Path: path, Err: err}
			return
		}
		data, err := r.readFile(id, path)
		out <- Result{ID: id, Path: path, Data: data, Err: err}
	}()
	return out
}

// ReadFiles reads every path with at most Options.Workers files in flight.
//
// Postcondition: On success the i-th result belongs to paths[i]. On the first
// failure the remaining reads are abandoned and the error is returned.
func (r *Reader) ReadFiles(ctx context.Context, paths []string) ([]*common.Data, error) {
	out := make([]*common.Data, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.workers())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := r.ReadFile(path)
			if err != nil {
				return err
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
