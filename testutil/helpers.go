package testutil

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kbukum/subprocess/logger"
)

// RequireBinary skips the test when the named binary is not on PATH.
// Pipeline tests lean on common POSIX tools; CI images without them
// should skip, not fail.
func RequireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("binary %q not available: %v", name, err)
	}
}

// WriteTempFile writes contents to a fresh file under t.TempDir and
// returns its path. The file is removed with the test's temp dir.
func WriteTempFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("cannot write temp file: %v", err)
	}
	return path
}

// CapturedLogger returns a debug-level logger writing JSON into the
// returned buffer, for asserting on emitted fields.
func CapturedLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
	return logger.FromZerolog(zl), &buf
}
