package config

import (
	"errors"
	"testing"
)

func TestLoadScript_ModuleExports(t *testing.T) {
	p := writeFile(t, t.TempDir(), jsName, `
/** @type {import('@discord-dashboard/core').IConfig} */
module.exports = {
  server: {
    port: 3000,
  },
  logs: {
    saveToFile: true,
    file: 'discord-dashboard.log',
    level: 'DEVELOPMENT',
  },
};
`)

	raw, err := NewResolver("", WithScriptLoading(true)).Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := asInt(Lookup(raw, "server.port")); !ok || got != 3000 {
		t.Fatalf("server.port = %#v, want 3000", Lookup(raw, "server.port"))
	}
	if got := Lookup(raw, "logs.saveToFile"); got != true {
		t.Fatalf("logs.saveToFile = %#v", got)
	}
}

func TestLoadScript_DefaultExportSpellings(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		tsName:        "const port = 4000\nexport default { server: { port } }\n",
		"exports.js":  "exports.default = { server: { port: 4000 } }\n",
		"computed.js": "const base = 2000\nmodule.exports = { server: { port: base * 2 } }\n",
	}
	r := NewResolver(dir, WithScriptLoading(true))
	for name, body := range cases {
		raw, err := r.Load(writeFile(t, dir, name, body))
		if err != nil {
			t.Errorf("%s: Load: %v", name, err)
			continue
		}
		if got, ok := asInt(Lookup(raw, "server.port")); !ok || got != 4000 {
			t.Errorf("%s: server.port = %#v, want 4000", name, Lookup(raw, "server.port"))
		}
	}
}

func TestLoadScript_Failures(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"syntax.js":    "module.exports = { server: ",
		"throws.js":    "throw new Error('nope')",
		"scalar.js":    "module.exports = 42",
		"undefined.js": "module.exports = undefined",
		"typed.ts":     "const port: number = 1\nexport default { server: { port } }\n",
	}
	r := NewResolver(dir, WithScriptLoading(true))
	for name, body := range cases {
		_, err := r.Load(writeFile(t, dir, name, body))
		if !errors.Is(err, ErrLoadFailure) {
			t.Errorf("%s: error = %v, want ErrLoadFailure", name, err)
		}
	}
}

func TestLoadScript_NoRequire(t *testing.T) {
	p := writeFile(t, t.TempDir(), jsName, "const fs = require('fs')\nmodule.exports = {}\n")

	_, err := NewResolver("", WithScriptLoading(true)).Load(p)
	if !errors.Is(err, ErrLoadFailure) {
		t.Fatalf("error = %v, want ErrLoadFailure for require()", err)
	}
}

// asInt accepts either numeric form goja exports.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), n == float64(int64(n))
	default:
		return 0, false
	}
}
