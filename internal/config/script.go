// internal/config/script.go
//
// Opt-in loader for script configuration files.
//
// Context
// -------
// A `.js` or `.ts` candidate is evaluated in an isolated goja runtime with
// a CommonJS-style `module`/`exports` pair.  The object left in
// `module.exports` is the raw tree.  Two ES-module spellings are accepted:
//
//   • `export default { … }`       – rewritten to `module.exports = …`.
//   • `exports.default = { … }`    – unwrapped after evaluation.
//
// Notes
// -----
//   • No `require`, no file system, no network.  The runtime only sees the
//     script text.
//   • TypeScript is evaluated as JavaScript, so type annotations fail with
//     a load error.
//   • The Resolver only calls this when WithScriptLoading(true) was given.

package config

import (
	"os"
	"regexp"

	"github.com/dop251/goja"
)

var exportDefault = regexp.MustCompile(`(?m)^\s*export\s+default\s+`)

func loadScript(path string) (map[string]any, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, loadFailure(path, err)
	}

	vm := goja.New()
	module := vm.NewObject()
	exports := vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, loadFailure(path, err)
	}
	if err := vm.Set("module", module); err != nil {
		return nil, loadFailure(path, err)
	}
	if err := vm.Set("exports", exports); err != nil {
		return nil, loadFailure(path, err)
	}

	code := exportDefault.ReplaceAllString(string(src), "module.exports = ")
	if _, err := vm.RunScript(path, code); err != nil {
		return nil, loadFailure(path, err)
	}

	raw, ok := module.Get("exports").Export().(map[string]any)
	if !ok {
		return nil, loadFailure(path, errNotObject)
	}
	if def, ok := raw["default"].(map[string]any); ok && len(raw) == 1 {
		raw = def
	}
	return raw, nil
}

