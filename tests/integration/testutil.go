// Package integration provides end-to-end tests that drive the built tabula
// binary against real database files.
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// tabulaBin is the path to the built tabula binary.
	tabulaBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv provides an isolated test environment with its own config and
// data directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment. config is written to
// config.yaml when non-empty.
func NewTestEnv(t *testing.T, config string) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build tabula: %v", buildErr)
	}
	if tabulaBin == "" {
		t.Fatal("tabula binary not built (tabulaBin is empty)")
	}

	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if config != "" {
		if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(config), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: filepath.Join(tempDir, "data"),
	}
}

// CmdResult holds the result of a tabula command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunTabula executes the tabula CLI with the given arguments.
func (e *TestEnv) RunTabula(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(tabulaBin, allArgs...)
	cmd.Env = append(os.Environ(), "TABULA_FORMAT=", "TABULA_ROW_LIMIT=")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.t.Fatalf("failed to run tabula: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunTabula executes the tabula CLI and fails the test if it returns
// non-zero.
func (e *TestEnv) MustRunTabula(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunTabula(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("tabula %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Snapshot mirrors the JSON emitted by "tabula rows --format json".
type Snapshot struct {
	Table   string `json:"table"`
	Columns []struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	} `json:"columns"`
	Rows [][]string `json:"rows"`
}
