// internal/config/loader_test.go
//
// Unit-tests for Resolver.Resolve and the Provider cache.
//
// Context
// -------
// Each test works in its own temp directory, so discovery never sees the
// repository's working directory.  Env-dependent tests clear DBD_* first.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/discord-dashboard/core/internal/metrics"
)

func TestResolve_EmptySourceEqualsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, jsonName, `{}`)

	res, err := NewResolver(dir, WithDefaults(testDefaults())).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(res.Tree(), testDefaults()) {
		t.Fatalf("tree = %#v, want defaults", res.Tree())
	}
	cfg := res.Config()
	if cfg.Server.Port != 3000 || cfg.Logs.File != "d.log" || cfg.Logs.Level != LevelDevelopment {
		t.Fatalf("typed config = %+v", cfg)
	}
}

func TestResolve_PortOnly(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, jsonName, `{"server":{"port":8080}}`)

	res, err := NewResolver(dir, WithDefaults(testDefaults())).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := map[string]any{
		"server": map[string]any{"port": float64(8080)},
		"logs":   map[string]any{"file": "d.log", "level": "DEVELOPMENT"},
	}
	if !reflect.DeepEqual(res.Tree(), want) {
		t.Fatalf("tree = %#v, want %#v", res.Tree(), want)
	}
	if res.Source() != p {
		t.Fatalf("source = %q, want %q", res.Source(), p)
	}
	if res.Lookup("server.port") != float64(8080) {
		t.Fatalf("Lookup(server.port) = %#v", res.Lookup("server.port"))
	}
}

func TestResolve_CanonicalDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, jsonName, `{"server":{"port":8080}}`)

	res, err := NewResolver(dir).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Config{
		Server: Server{Port: 8080},
		Logs:   Logs{File: DefaultLogFile, Level: DefaultLevel, SaveToFile: false},
	}
	if res.Config() != want {
		t.Fatalf("config = %+v, want %+v", res.Config(), want)
	}
}

func TestResolve_TreeIsACopy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, jsonName, `{}`)

	res, err := NewResolver(dir).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	res.Tree()["server"].(map[string]any)["port"] = 1
	if res.Lookup("server.port") != DefaultPort {
		t.Fatalf("Resolved was mutated through Tree()")
	}
}

func TestResolve_EnvStringsDecode(t *testing.T) {
	clearDBDEnv(t)
	t.Setenv("DBD_PORT", "8080")
	t.Setenv("DBD_LOG_SAVE_TO_FILE", "true")

	res, err := NewResolver(t.TempDir()).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Source() != SourceEnv {
		t.Fatalf("source = %q, want env", res.Source())
	}
	if got := res.Config(); got.Server.Port != 8080 || !got.Logs.SaveToFile {
		t.Fatalf("config = %+v", got)
	}
}

func TestResolve_UndecodableValue(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, jsonName, `{"server":{"port":"not-a-port"}}`)

	_, err := NewResolver(dir).Resolve()
	assertCritical(t, err, ErrInvalidValue)
}

func TestResolve_Metrics(t *testing.T) {
	dir := t.TempDir()
	okBefore := testutil.ToFloat64(metrics.ConfigResolutionsTotal)
	errBefore := testutil.ToFloat64(metrics.ConfigResolveErrorsTotal)

	if _, err := NewResolver(dir, WithEnvFallback(false)).Resolve(); err == nil {
		t.Fatalf("expected error without a source")
	}
	writeFile(t, dir, jsonName, `{}`)
	if _, err := NewResolver(dir).Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := testutil.ToFloat64(metrics.ConfigResolutionsTotal) - okBefore; got != 1 {
		t.Errorf("resolutions delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.ConfigResolveErrorsTotal) - errBefore; got != 1 {
		t.Errorf("resolve errors delta = %v, want 1", got)
	}
}

/*──────────────────────────── provider ────────────────────────────────────*/

func TestProvider_CachesFirstResolution(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, jsonName, `{"server":{"port":8080}}`)
	provider := NewProvider(NewResolver(dir))

	first, err := provider.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Neither a changed nor a removed source is observed after the first Get.
	writeFile(t, dir, jsonName, `{"server":{"port":9090}}`)
	if err := os.Remove(p); err != nil {
		t.Fatalf("remove: %v", err)
	}

	second, err := provider.Get()
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if first != second || second.Config().Server.Port != 8080 {
		t.Fatalf("provider did not return the cached value")
	}
}

func TestProvider_RetriesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	provider := NewProvider(NewResolver(dir, WithEnvFallback(false)))

	if _, err := provider.Get(); !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("first Get error = %v, want ErrSourceNotFound", err)
	}

	writeFile(t, dir, jsonName, `{"server":{"port":7070}}`)
	res, err := provider.Get()
	if err != nil {
		t.Fatalf("Get after writing source: %v", err)
	}
	if res.Config().Server.Port != 7070 {
		t.Fatalf("port = %d, want 7070", res.Config().Server.Port)
	}
}

func TestProvider_ConcurrentFirstAccess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, jsonName, `{"server":{"port":8080}}`)
	provider := NewProvider(NewResolver(dir))

	const n = 16
	results := make([]*Resolved, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := provider.Get()
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("goroutine %d saw a different Resolved", i)
		}
	}
}

func TestNewResolver_DefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	r := NewResolver("")
	if r.dir != wd {
		t.Fatalf("dir = %q, want %q", r.dir, wd)
	}
	if !reflect.DeepEqual(r.Defaults(), DefaultValues()) {
		t.Fatalf("defaults = %#v", r.Defaults())
	}
	if filepath.Dir(filepath.Join(r.dir, Candidates[0])) != wd {
		t.Fatalf("candidates are not resolved against the working directory")
	}
}
