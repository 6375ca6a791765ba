// internal/config/source.go
//
// Source discovery and format dispatch.
//
// Context
// -------
// Exactly one source feeds the resolver:
//
//  1. The first of discord-dashboard.config.{json,js,ts} found in the
//     resolver directory, in that order.
//  2. Otherwise, when the env fallback is on, DBD_* environment variables
//     (after an optional `.env` file in the same directory).
//
// Every failure is a CRITICAL ConfigurationError wrapping one of the
// sentinels in errors.go.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"

	"github.com/discord-dashboard/core/internal/fault"
)

// Candidates is the fixed discovery order.
var Candidates = []string{
	"discord-dashboard.config.json",
	"discord-dashboard.config.js",
	"discord-dashboard.config.ts",
}

const (
	// SourceEnv names the environment source in Resolved.Source.
	SourceEnv = "env"

	envPrefix = "DBD_"
)

// envKeys maps DBD_* variables onto the nested schema.  Anything else with
// the prefix (DBD_TEST, for one) is outside the schema and skipped.
var envKeys = map[string]string{
	"DBD_PORT":             "server.port",
	"DBD_LOG_FILE":         "logs.file",
	"DBD_LOG_LEVEL":        "logs.level",
	"DBD_LOG_SAVE_TO_FILE": "logs.saveToFile",
}

var (
	critical     = fault.Details{Priority: fault.Critical}
	errNotObject = errors.New("top level is not an object")
)

/*──────────────────────────── discovery ───────────────────────────────────*/

// Locate returns the first candidate file present in the resolver
// directory.  Absence of every candidate is reported through ok, not as an
// error.
func (r *Resolver) Locate() (path string, ok bool) {
	for _, name := range Candidates {
		p := filepath.Join(r.dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

/*──────────────────────────── loading ─────────────────────────────────────*/

// Load reads one file and returns its raw tree.  The extension alone
// decides how; unsupported extensions are rejected before any read.
func (r *Resolver) Load(path string) (map[string]any, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return loadJSON(path)
	case ".js", ".ts":
		if !r.scripts {
			return nil, fault.Configuration(
				fmt.Sprintf("Refusing to evaluate %s: script configuration is disabled", path),
				critical,
			).Wrap(ErrScriptDisabled)
		}
		return loadScript(path)
	default:
		return nil, fault.Configuration(
			fmt.Sprintf("Unsupported configuration format %q (%s)", ext, path),
			critical,
		).Wrap(ErrUnsupportedFormat)
	}
}

// LoadSource locates and loads the raw source.  It returns the source name
// (a file path or SourceEnv) alongside the tree.
func (r *Resolver) LoadSource() (string, map[string]any, error) {
	if path, ok := r.Locate(); ok {
		raw, err := r.Load(path)
		return path, raw, err
	}
	if !r.envFallback {
		return "", nil, fault.Configuration(
			fmt.Sprintf("No configuration file found in %s (looked for %s)",
				r.dir, strings.Join(Candidates, ", ")),
			critical,
		).Wrap(ErrSourceNotFound)
	}
	raw, err := r.loadEnv()
	return SourceEnv, raw, err
}

func loadJSON(path string) (map[string]any, error) {
	b, err := file.Provider(path).ReadBytes()
	if err != nil {
		return nil, loadFailure(path, err)
	}
	raw, err := json.Parser().Unmarshal(b)
	if err != nil {
		return nil, loadFailure(path, err)
	}
	if raw == nil {
		return nil, loadFailure(path, errNotObject)
	}
	return raw, nil
}

// loadEnv reads DBD_* variables.  A `.env` file next to the candidates is
// loaded first; godotenv never overrides variables already set.
func (r *Resolver) loadEnv() (map[string]any, error) {
	dotenv := filepath.Join(r.dir, ".env")
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, loadFailure(dotenv, err)
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, loadFailure(SourceEnv, err)
	}
	return k.Raw(), nil
}

func loadFailure(source string, err error) error {
	return fault.Configuration(
		fmt.Sprintf("Could not load configuration from %s: %v", source, err),
		critical,
	).Wrap(errors.Join(ErrLoadFailure, err))
}
