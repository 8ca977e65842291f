// Package cli holds flag helpers shared by the shabdsetu subcommands.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileOverride names a .env file that wins over the --env flag.
const EnvFileOverride = "SHABDSETU_ENV_FILE"

const defaultEnvPath = ".env"

// ErrNoEnvFile is returned when none of the candidate files could be loaded.
var ErrNoEnvFile = errors.New("no env file loaded")

// EnvLoader resolves the .env file for a subcommand. A missing file is not
// fatal; process environment variables still apply.
type EnvLoader struct {
	requested   *string
	defaultPath string
	lookupEnv   func(string) string
	notify      io.Writer
}

// AddEnvFlag registers --env on fs.
func AddEnvFlag(fs *flag.FlagSet, defaultPath string) *EnvLoader {
	if fs == nil {
		fs = flag.CommandLine
	}
	defaultPath = strings.TrimSpace(defaultPath)
	if defaultPath == "" {
		defaultPath = defaultEnvPath
	}
	return &EnvLoader{
		requested:   fs.String("env", defaultPath, "Path to the .env file (overridden by "+EnvFileOverride+")"),
		defaultPath: defaultPath,
		lookupEnv:   os.Getenv,
		notify:      os.Stderr,
	}
}

// Load overlays the first loadable candidate onto the process environment
// and returns its path.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	candidates := l.candidates()
	for _, path := range candidates {
		if err := godotenv.Overload(path); err != nil {
			continue
		}
		l.printf("loaded environment from %s\n", path)
		return path, nil
	}
	return "", fmt.Errorf("%w: tried %s", ErrNoEnvFile, strings.Join(candidates, ", "))
}

// candidates lists paths in load order without duplicates: the override
// variable, the flag value, its basename, then the default.
func (l *EnvLoader) candidates() []string {
	var ordered []string
	seen := make(map[string]struct{})
	add := func(path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		ordered = append(ordered, path)
	}

	if l.lookupEnv != nil {
		add(l.lookupEnv(EnvFileOverride))
	}
	requested := l.defaultPath
	if l.requested != nil && strings.TrimSpace(*l.requested) != "" {
		requested = *l.requested
	}
	add(requested)
	add(filepath.Base(strings.TrimSpace(requested)))
	add(l.defaultPath)
	return ordered
}

func (l *EnvLoader) printf(format string, args ...any) {
	if l.notify == nil {
		return
	}
	fmt.Fprintf(l.notify, format, args...)
}
