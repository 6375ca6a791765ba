// internal/config/tree.go
//
// Operations on untyped configuration trees.
//
// A tree is a nested map[string]any as produced by the JSON parser, the
// script loader, or the env provider.  Three operations live here:
//
//   • MergeDefaults  – fill every default path, never overwrite a value.
//   • SchemaPaths    – list the dotted paths a default tree defines.
//   • Lookup         – read one dotted path.

package config

import (
	"sort"
	"strings"

	kmaps "github.com/knadh/koanf/maps"
)

// MergeDefaults returns a deep copy of raw in which every path defined by
// defaults is present.  A nil or missing key takes the default (an empty map
// for nested defaults, then filled recursively).  Non-nil values in raw are
// kept, including scalars sitting where defaults expect a section.
func MergeDefaults(raw, defaults map[string]any) map[string]any {
	out := copyTree(raw)
	fill(out, defaults)
	return out
}

func fill(dst, defaults map[string]any) {
	for key, def := range defaults {
		defSection, defIsSection := def.(map[string]any)

		cur, ok := dst[key]
		if !ok || cur == nil {
			if defIsSection {
				section := make(map[string]any, len(defSection))
				dst[key] = section
				fill(section, defSection)
				continue
			}
			dst[key] = def
			continue
		}

		if curSection, ok := cur.(map[string]any); ok && defIsSection {
			fill(curSection, defSection)
		}
	}
}

// SchemaPaths lists one dotted path per leaf of schema, plus one per empty
// section.  Keys are visited depth-first in sorted order.
func SchemaPaths(schema map[string]any) []string {
	var paths []string
	walk(schema, "", &paths)
	return paths
}

func walk(node map[string]any, prefix string, paths *[]string) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if section, ok := node[k].(map[string]any); ok && len(section) > 0 {
			walk(section, path, paths)
			continue
		}
		*paths = append(*paths, path)
	}
}

// Lookup returns the value at a dotted path, or nil when any segment is
// missing or not a section.
func Lookup(tree map[string]any, path string) any {
	if tree == nil || path == "" {
		return nil
	}
	return kmaps.Search(tree, strings.Split(path, "."))
}

func copyTree(tree map[string]any) map[string]any {
	if tree == nil {
		return map[string]any{}
	}
	return kmaps.Copy(tree)
}
