package unit

import (
	"fmt"
	"plugin"
)

// MembersSymbol is the symbol a Go plugin exports to describe its members.
// It must be a []Member variable or a func() []Member.
const MembersSymbol = "Members"

// symbolTable is the part of *plugin.Plugin the loader needs.
type symbolTable interface {
	Lookup(name string) (plugin.Symbol, error)
}

// PluginLoader loads units compiled with -buildmode=plugin. Go plugins can
// never be closed, so PluginLoader does not implement Unload.
type PluginLoader struct {
	open func(path string) (symbolTable, error)
}

// NewPluginLoader returns a loader backed by the standard plugin package.
func NewPluginLoader() *PluginLoader {
	return &PluginLoader{open: openPlugin}
}

func openPlugin(path string) (symbolTable, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Load opens the plugin at path and reads its Members symbol.
func (l *PluginLoader) Load(id, path string) ([]Member, error) {
	table, err := l.open(path)
	if err != nil {
		return nil, fmt.Errorf("opening plugin %s: %w", path, err)
	}

	sym, err := table.Lookup(MembersSymbol)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", path, err)
	}

	var members []Member
	switch v := sym.(type) {
	case *[]Member:
		members = *v
	case func() []Member:
		members = v()
	default:
		return nil, fmt.Errorf("plugin %s: symbol %s has unsupported type %T", path, MembersSymbol, sym)
	}

	out := make([]Member, len(members))
	for i, m := range members {
		if m.Origin == "" {
			m.Origin = id
		}
		out[i] = m
	}
	return out, nil
}
