// Package main provides wodicodec, a command-line front end for CommonEvent.dat files.
//
// Modes:
//
//	verify   decode and re-encode every file; fail unless the bytes are identical
//	rewrite  decode every file and write it back, optionally in another format version
//	dump     export every file as a YAML document
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/wodi/internal/config"
	"github.com/cory-johannsen/wodi/internal/datfile"
	"github.com/cory-johannsen/wodi/internal/export"
	"github.com/cory-johannsen/wodi/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wodicodec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", "verify", "operation: verify, rewrite or dump")
	configPath := fs.String("config", "", "optional path to configuration file")
	outputDir := fs.String("output", "", "output directory (rewrite: defaults to in place; dump: overrides export.output_dir)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "usage: wodicodec -mode verify|rewrite|dump [-config <file>] [-output <dir>] <file>...")
		return 2
	}

	var (
		cfg config.Config
		err error
	)
	if *configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Logging, "wodicodec")
	if err != nil {
		fmt.Fprintf(stderr, "initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	opts, err := codecOptions(cfg.Codec, observability.CodecLogger(logger, cfg.Codec))
	if err != nil {
		fmt.Fprintf(stderr, "codec settings: %v\n", err)
		return 1
	}

	start := time.Now()
	switch *mode {
	case "verify":
		err = verify(ctx, opts, paths, stdout)
	case "rewrite":
		err = rewrite(ctx, opts, paths, *outputDir)
	case "dump":
		dir := cfg.Export.OutputDir
		if *outputDir != "" {
			dir = *outputDir
		}
		err = export.New(datfile.NewReader(opts), cfg.Export.Indent, logger).Run(ctx, paths, dir)
	default:
		fmt.Fprintf(stderr, "unknown mode %q (supported: verify, rewrite, dump)\n", *mode)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	logger.Info("done",
		zap.String("mode", *mode),
		zap.Int("files", len(paths)),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return 0
}

func codecOptions(c config.CodecConfig, logger *zap.Logger) (datfile.Options, error) {
	version, err := c.Version()
	if err != nil {
		return datfile.Options{}, err
	}
	policy, err := c.Policy()
	if err != nil {
		return datfile.Options{}, err
	}
	enc, err := c.TextEncoding()
	if err != nil {
		return datfile.Options{}, err
	}
	return datfile.Options{
		Version:  version,
		Encoding: enc,
		Policy:   policy,
		Workers:  c.Workers,
		Logger:   logger,
	}, nil
}

// errMismatch marks files whose re-encoding differs from the original.
var errMismatch = errors.New("verification failed")

// verify checks every file independently and reports each outcome on out.
func verify(ctx context.Context, opts datfile.Options, paths []string, out io.Writer) error {
	r := datfile.NewReader(opts)
	w := datfile.NewWriter(opts)

	var (
		mu     sync.Mutex
		failed int
	)
	report := func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s: %v\n", path, err)
			return
		}
		fmt.Fprintf(out, "ok    %s\n", path)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report(path, verifyFile(r, w, path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errMismatch, failed, len(paths))
	}
	return nil
}

func verifyFile(r *datfile.Reader, w *datfile.Writer, path string) error {
	orig, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	data, err := r.Decode(orig)
	if err != nil {
		return err
	}
	again, err := w.Encode(data)
	if err != nil {
		return err
	}
	if at := firstDifference(orig, again); at >= 0 {
		return fmt.Errorf("re-encoding differs at offset %d (%d bytes read, %d written)", at, len(orig), len(again))
	}
	return nil
}

// firstDifference returns the first offset where a and b differ, or -1.
func firstDifference(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func rewrite(ctx context.Context, opts datfile.Options, paths []string, outputDir string) error {
	data, err := datfile.NewReader(opts).ReadFiles(ctx, paths)
	if err != nil {
		return err
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", outputDir, err)
		}
	}
	jobs := make([]datfile.Job, len(paths))
	for i, path := range paths {
		dst := path
		if outputDir != "" {
			dst = filepath.Join(outputDir, filepath.Base(path))
		}
		jobs[i] = datfile.Job{Path: dst, Data: data[i]}
	}
	return datfile.NewWriter(opts).WriteFiles(ctx, jobs)
}
