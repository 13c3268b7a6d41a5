// Package export writes decoded common events as YAML documents for review and diffing.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/wodi/internal/common"
)

// Source loads the common events stored at path. *datfile.Reader satisfies it.
type Source interface {
	ReadFile(path string) (*common.Data, error)
}

// Marshal renders doc as YAML with the given indentation width.
//
// Precondition: indent >= 1.
func Marshal(doc Document, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("export: encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("export: encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a document produced by Marshal.
func Unmarshal(b []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Document{}, fmt.Errorf("export: decoding yaml: %w", err)
	}
	return doc, nil
}

// OutputName returns the YAML file name for an input path: its base name with
// the extension replaced by .yaml.
func OutputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".yaml"
}

// Exporter converts CommonEvent.dat files into YAML documents.
type Exporter struct {
	source Source
	indent int
	logger *zap.Logger
}

// New constructs an Exporter backed by the given Source.
//
// Precondition: source must be non-nil; indent >= 1.
// Postcondition: returns a non-nil Exporter.
func New(source Source, indent int, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{source: source, indent: indent, logger: logger}
}

// Run loads every path, validates each rendering, and writes it to outputDir as
// OutputName(path).
//
// Precondition: outputDir must exist or be creatable.
// Postcondition: one YAML document per path is written to outputDir, or an error
// is returned. Documents written before the failure are kept.
func (ex *Exporter) Run(ctx context.Context, paths []string, outputDir string) error {
	overall := time.Now()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		t0 := time.Now()

		data, err := ex.source.ReadFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		doc := FromData(data)
		out, err := Marshal(doc, ex.indent)
		if err != nil {
			return fmt.Errorf("serialising %s: %w", path, err)
		}

		// Validate output is loadable before writing.
		back, err := Unmarshal(out)
		if err != nil {
			return fmt.Errorf("%s failed validation: %w", path, err)
		}
		if len(back.Events) != len(doc.Events) {
			return fmt.Errorf("%s failed validation: %d events rendered, %d read back", path, len(doc.Events), len(back.Events))
		}

		outPath := filepath.Join(outputDir, OutputName(path))
		if err := os.WriteFile(outPath, out, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		ex.logger.Info("exported common events",
			zap.String("path", path),
			zap.String("output", outPath),
			zap.Int("events", len(doc.Events)),
			zap.Duration("elapsed", time.Since(t0).Round(time.Millisecond)),
		)
	}

	ex.logger.Info("export finished",
		zap.Int("files", len(paths)),
		zap.Duration("elapsed", time.Since(overall).Round(time.Millisecond)),
	)
	return nil
}
