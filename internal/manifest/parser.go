package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Parse reads a manifest file, fills in defaults and resolves relative
// roots against the manifest's directory. It does not validate the file
// against the schema; use Load for that.
func Parse(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path %s: %w", path, err)
	}
	data, err := readFile(abs)
	if err != nil {
		return nil, err
	}

	m, err := parseTyped[Manifest](data, abs)
	if err != nil {
		return nil, err
	}
	m.Path = abs

	dir := filepath.Dir(abs)
	for i := range m.Registries {
		applyDefaults(&m.Registries[i], dir)
	}
	return m, nil
}

// Load validates the manifest against the schema, then parses it.
func Load(path string) (*Manifest, error) {
	result, err := ValidateFile(path)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}
	return Parse(path)
}

// Registry returns the registry called name, or the first one when name is
// empty.
func (m *Manifest) Registry(name string) (*Registry, error) {
	if len(m.Registries) == 0 {
		return nil, fmt.Errorf("manifest %s declares no registries", m.Path)
	}
	if name == "" {
		return &m.Registries[0], nil
	}
	for i := range m.Registries {
		if m.Registries[i].Name == name {
			return &m.Registries[i], nil
		}
	}
	return nil, fmt.Errorf("registry %q not found in %s (available: %s)", name, m.Path, strings.Join(m.Names(), ", "))
}

// Names returns the registry names in declaration order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Registries))
	for i, r := range m.Registries {
		names[i] = r.Name
	}
	return names
}

// SplitDefault splits a "unit.id:TypeName" reference.
func SplitDefault(ref string) (unitID, typeName string, err error) {
	unitID, typeName, ok := strings.Cut(ref, ":")
	if !ok || unitID == "" || typeName == "" {
		return "", "", fmt.Errorf("default %q must look like unit.id:TypeName", ref)
	}
	return unitID, typeName, nil
}

func applyDefaults(r *Registry, dir string) {
	if r.DiscoveryRoot == "" {
		r.DiscoveryRoot = DefaultDiscoveryRoot
	}
	r.DiscoveryRoot = resolve(dir, r.DiscoveryRoot)
	r.SearchRoot = resolve(dir, r.SearchRoot)

	if r.Pattern == "" {
		r.Pattern = DefaultPattern
	}
	if r.Suffix == "" {
		r.Suffix = DefaultSuffix
	}
	if r.Loader == "" {
		r.Loader = DefaultLoader
	}
	if r.Order == "" {
		r.Order = DefaultOrder
	}
	if r.OnDuplicate == "" {
		r.OnDuplicate = DefaultOnDuplicate
	}
}

func resolve(dir, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

// parseTyped unmarshals YAML data into a typed manifest struct.
func parseTyped[T any](data []byte, path string) (*T, error) {
	var m T
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
