package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wodi/internal/datfile"
	"github.com/cory-johannsen/wodi/internal/testutil"
	"github.com/cory-johannsen/wodi/internal/wire"
)

func writeSample(t *testing.T, dir, name string, version wire.Version) string {
	t.Helper()
	return testutil.WriteDatFile(t, dir, name, testutil.SampleData(t, 2, "sample", version), datfile.Options{})
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("WODI_LOGGING_LEVEL", "error")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t, "-mode", "verify")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: wodicodec")

	code, _, stderr = runCLI(t, "-mode", "explode", "x.dat")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown mode")
}

func TestRun_Verify(t *testing.T) {
	dir := t.TempDir()
	good := writeSample(t, dir, "good.dat", wire.V2_24)
	old := writeSample(t, dir, "old.dat", wire.V1_31)

	code, stdout, stderr := runCLI(t, "-mode", "verify", good, old)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "ok    "+good)
	assert.Contains(t, stdout, "ok    "+old)
}

func TestRun_VerifyReportsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	good := writeSample(t, dir, "good.dat", wire.V2_24)
	bad := filepath.Join(dir, "bad.dat")
	require.NoError(t, os.WriteFile(bad, []byte{0x00, 0x57}, 0o644))

	code, stdout, stderr := runCLI(t, "-mode", "verify", good, bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "ok    "+good)
	assert.Contains(t, stdout, "FAIL  "+bad)
	assert.Contains(t, stderr, "1 of 2 files")
}

func TestRun_RewriteToOldFormat(t *testing.T) {
	dir := t.TempDir()
	src := writeSample(t, dir, "CommonEvent.dat", wire.V2_24)
	outDir := filepath.Join(dir, "out")

	cfgPath := filepath.Join(dir, "wodi.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("codec:\n  target_version: \"1.31\"\n"), 0o644))

	code, _, stderr := runCLI(t, "-mode", "rewrite", "-config", cfgPath, "-output", outDir, src)
	require.Equal(t, 0, code, stderr)

	d, err := datfile.NewReader(datfile.Options{}).ReadFile(filepath.Join(outDir, "CommonEvent.dat"))
	require.NoError(t, err)
	assert.Equal(t, wire.V1_31, d.Version)
	assert.Equal(t, 2, d.Events.Count())
}

func TestRun_Dump(t *testing.T) {
	dir := t.TempDir()
	src := writeSample(t, dir, "CommonEvent.dat", wire.V2_24)
	outDir := filepath.Join(dir, "yaml")

	code, _, stderr := runCLI(t, "-mode", "dump", "-output", outDir, src)
	require.Equal(t, 0, code, stderr)

	b, err := os.ReadFile(filepath.Join(outDir, "CommonEvent.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: sample")
}

func TestRun_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "wodi.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("codec:\n  workers: 0\n"), 0o644))
	code, _, stderr := runCLI(t, "-config", cfgPath, "x.dat")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "codec.workers")
}

func TestFirstDifference(t *testing.T) {
	assert.Equal(t, -1, firstDifference([]byte{1, 2}, []byte{1, 2}))
	assert.Equal(t, 1, firstDifference([]byte{1, 2}, []byte{1, 3}))
	assert.Equal(t, 2, firstDifference([]byte{1, 2}, []byte{1, 2, 3}))
}
