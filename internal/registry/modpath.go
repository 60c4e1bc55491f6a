package registry

import (
	"path/filepath"
	"strings"
)

// ModulePath translates a file path under root into a dotted module
// identifier: "examples/subclass/dog.go" becomes "examples.subclass.dog".
// It returns false when path is outside root, when the remainder still
// contains '.', '#' or '~' after the suffix is removed, or when nothing is
// left.
func ModulePath(root, path, suffix string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	rel = strings.TrimLeft(filepath.ToSlash(rel), "/")
	if suffix != "" && len(rel) >= len(suffix) && strings.EqualFold(rel[len(rel)-len(suffix):], suffix) {
		rel = rel[:len(rel)-len(suffix)]
	}

	if strings.ContainsAny(rel, ".#~") {
		return "", false
	}

	id := strings.TrimSpace(strings.ReplaceAll(rel, "/", "."))
	if id == "" {
		return "", false
	}
	return id, true
}
