package manifest

// Loader names.
const (
	LoaderCatalog = "catalog"
	LoaderPlugin  = "plugin"
)

// Defaults applied to registries that omit a field.
const (
	DefaultDiscoveryRoot = "."
	DefaultPattern       = "*.go"
	DefaultSuffix        = ".go"
	DefaultLoader        = LoaderCatalog
	DefaultOrder         = "natural"
	DefaultOnDuplicate   = "overwrite"
)

// Manifest is a parsed productor.yaml.
type Manifest struct {
	Registries []Registry `yaml:"registries"`

	// Path is the absolute path the manifest was read from.
	Path string `yaml:"-"`
}

// Registry describes one discovery registry.
type Registry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Contract    string `yaml:"contract"`

	// DiscoveryRoot and SearchRoot are absolute after parsing; relative
	// values in the file resolve against the manifest's directory.
	DiscoveryRoot string `yaml:"discovery_root,omitempty"`
	SearchRoot    string `yaml:"search_root"`

	Pattern     string `yaml:"pattern,omitempty"`
	Suffix      string `yaml:"suffix,omitempty"`
	Loader      string `yaml:"loader,omitempty"`
	Default     string `yaml:"default,omitempty"` // "unit.id:TypeName"
	Order       string `yaml:"order,omitempty"`
	OnDuplicate string `yaml:"on_duplicate,omitempty"`
}
