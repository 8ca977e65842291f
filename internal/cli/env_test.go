package cli

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestLoader(t *testing.T, args []string, override string) *EnvLoader {
	t.Helper()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	loader := AddEnvFlag(fs, "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	loader.lookupEnv = func(key string) string {
		if key == EnvFileOverride {
			return override
		}
		return ""
	}
	loader.notify = io.Discard
	return loader
}

func TestCandidatesOrder(t *testing.T) {
	t.Parallel()

	loader := newTestLoader(t, []string{"--env", "configs/prod.env"}, "/etc/shabdsetu.env")
	got := loader.candidates()
	want := []string{"/etc/shabdsetu.env", "configs/prod.env", "prod.env", ".env"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates() = %v, want %v", got, want)
	}
}

func TestCandidatesDeduplicatesDefault(t *testing.T) {
	t.Parallel()

	loader := newTestLoader(t, nil, "")
	got := loader.candidates()
	if want := []string{".env"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates() = %v, want %v", got, want)
	}
}

// Load mutates the process environment, so this test is not parallel.
func TestLoadPrefersOverrideFile(t *testing.T) {
	dir := t.TempDir()
	overridePath := filepath.Join(dir, "override.env")
	flagPath := filepath.Join(dir, "flag.env")
	if err := os.WriteFile(overridePath, []byte("SHABDSETU_CLI_TEST=override\n"), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if err := os.WriteFile(flagPath, []byte("SHABDSETU_CLI_TEST=flag\n"), 0o600); err != nil {
		t.Fatalf("write flag file: %v", err)
	}
	t.Setenv("SHABDSETU_CLI_TEST", "")

	loader := newTestLoader(t, []string{"--env", flagPath}, overridePath)
	got, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != overridePath {
		t.Fatalf("Load() = %q, want %q", got, overridePath)
	}
	if v := os.Getenv("SHABDSETU_CLI_TEST"); v != "override" {
		t.Fatalf("SHABDSETU_CLI_TEST = %q, want override", v)
	}
}

func TestLoadReportsMissingFiles(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope", "missing.env")
	loader := newTestLoader(t, []string{"--env", missing}, "")
	loader.defaultPath = filepath.Join(t.TempDir(), "also-missing.env")

	_, err := loader.Load()
	if !errors.Is(err, ErrNoEnvFile) {
		t.Fatalf("Load() error = %v, want ErrNoEnvFile", err)
	}
}
