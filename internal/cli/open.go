package cli

import (
	"fmt"

	"github.com/agentx-labs/productor/internal/manifest"
	"github.com/agentx-labs/productor/internal/registry"
	"github.com/agentx-labs/productor/internal/unit"
)

// openRegistry builds the registry selected by --manifest and --registry.
// Implementations are returned as any since contracts differ per registry.
func openRegistry(extra ...registry.Option) (*registry.Registry[string, any], *manifest.Registry, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, nil, err
	}
	def, err := m.Registry(registryName)
	if err != nil {
		return nil, nil, err
	}

	contract, err := lookupContract(def.Contract)
	if err != nil {
		return nil, nil, err
	}
	ordering, err := registry.ParseOrdering(def.Order)
	if err != nil {
		return nil, nil, err
	}
	policy, err := registry.ParseDuplicatePolicy(def.OnDuplicate)
	if err != nil {
		return nil, nil, err
	}

	opts := []registry.Option{
		registry.WithPattern(def.Pattern),
		registry.WithSuffix(def.Suffix),
		registry.WithOrdering(ordering),
		registry.WithDuplicatePolicy(policy),
		registry.WithLogger(logger.With("registry", def.Name)),
		registry.WithTracer(provider.Tracer()),
	}

	switch def.Loader {
	case manifest.LoaderPlugin:
		opts = append(opts, registry.WithLoader(unit.NewPluginLoader()))
	default:
		opts = append(opts, registry.WithLoader(unit.Default))
	}

	if def.Default != "" {
		unitID, typeName, err := manifest.SplitDefault(def.Default)
		if err != nil {
			return nil, nil, err
		}
		member, ok := unit.Default.Lookup(unitID, typeName)
		if !ok || member.Kind != unit.KindType {
			return nil, nil, fmt.Errorf("default %s: no type %s registered by unit %s", def.Default, typeName, unitID)
		}
		opts = append(opts, registry.WithDefault(member.Type))
	}

	r, err := registry.New[string, any](def.DiscoveryRoot, def.SearchRoot, contract, append(opts, extra...)...)
	if err != nil {
		return nil, nil, fmt.Errorf("opening registry %s: %w", def.Name, err)
	}
	logger.Debug("opened registry", "registry", def.Name, "root", r.SearchRoot(), "contract", contract)
	return r, def, nil
}
