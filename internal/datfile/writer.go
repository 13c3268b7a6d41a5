package datfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/wodi/internal/common"
	"github.com/cory-johannsen/wodi/internal/werr"
	"github.com/cory-johannsen/wodi/internal/wire"
)

// Writer encodes CommonEvent.dat files. It is safe for concurrent use.
type Writer struct {
	opts   Options
	logger *zap.Logger
}

// NewWriter returns a Writer configured by opts.
func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts, logger: opts.logger()}
}

// Version returns the format Encode uses for d.
func (w *Writer) Version(d *common.Data) wire.Version {
	switch {
	case w.opts.Version != 0:
		return w.opts.Version
	case d != nil && d.Version != 0:
		return d.Version
	}
	return wire.Latest
}

// Encode returns the file image of d.
//
// Precondition: d and d.Events are non-nil.
func (w *Writer) Encode(d *common.Data) ([]byte, error) {
	if d == nil {
		return nil, werr.Null("data")
	}
	if d.Events == nil {
		return nil, werr.Null("events")
	}
	version := w.Version(d)
	ww := wire.NewWriter(w.opts.Encoding)
	ww.PutBytes(header)
	ww.PutInt32(int32(d.Events.Count()))
	for i, ev := range d.Events.All() {
		if err := common.Encode(ww, ev, version, w.logger); err != nil {
			return nil, fmt.Errorf("datfile: common event %d: %w", i, err)
		}
	}
	ww.PutBytes(footer)
	return ww.Bytes(), nil
}

// Write encodes d and writes it to dst. Nothing is written when encoding fails.
func (w *Writer) Write(dst io.Writer, d *common.Data) error {
	b, err := w.Encode(d)
	if err != nil {
		return err
	}
	if _, err := dst.Write(b); err != nil {
		return fmt.Errorf("datfile: writing: %w", err)
	}
	return nil
}

// WriteFile encodes d into path. The file is replaced atomically: the image goes
// to a temporary file in the same directory which is then renamed over path.
func (w *Writer) WriteFile(path string, d *common.Data) error {
	return w.writeFile(uuid.New(), path, d)
}

func (w *Writer) writeFile(id uuid.UUID, path string, d *common.Data) error {
	began := time.Now()
	b, err := w.Encode(d)
	if err != nil {
		return fmt.Errorf("datfile: encoding %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("datfile: creating temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("datfile: writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("datfile: closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("datfile: replacing %s: %w", path, err)
	}
	w.logger.Debug("wrote common events",
		zap.String("path", path),
		zap.Stringer("write_id", id),
		zap.Int("events", d.Events.Count()),
		zap.Int("bytes", len(b)),
		zap.Stringer("version", w.Version(d)),
		zap.Duration("elapsed", time.Since(began)),
	)
	return nil
}

// WriteFileAsync writes d to path on a new goroutine. The channel receives exactly
// one Result, carrying d, and is then closed.
func (w *Writer) WriteFileAsync(ctx context.Context, path string, d *common.Data) <-chan Result {
	out := make(chan Result, 1)
	id := uuid.New()
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- Result{ID: id, Path: path, Data: d, Err: err}
			return
		}
		out <- Result{ID: id, Path: path, Data: d, Err: w.writeFile(id, path, d)}
	}()
	return out
}

// Job is one file for WriteFiles.
type Job struct {
	Path string
	Data *common.Data
}

// WriteFiles writes every job with at most Options.Workers files in flight and
// returns the first failure.
func (w *Writer) WriteFiles(ctx context.Context, jobs []Job) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.workers())
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.WriteFile(job.Path, job.Data)
		})
	}
	return g.Wait()
}
