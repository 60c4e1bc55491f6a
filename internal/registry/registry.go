package registry

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentx-labs/productor/internal/unit"
)

const (
	// DefaultPattern matches Go source files.
	DefaultPattern = "*.go"
	// DefaultSuffix is stripped from file names before translation.
	DefaultSuffix = ".go"

	tracerName = "github.com/agentx-labs/productor/internal/registry"
)

// Loader turns a translated unit into the members it exports.
type Loader interface {
	Load(id, path string) ([]unit.Member, error)
}

// Unloader is implemented by loaders that can release a unit once the
// registry no longer references it.
type Unloader interface {
	Unload(id, path string)
}

type settings struct {
	fallback    reflect.Type
	pattern     string
	suffix      string
	loader      Loader
	logger      *log.Logger
	tracer      trace.Tracer
	ordering    Ordering
	onDuplicate DuplicatePolicy
	rnd         *rand.Rand
}

// Option configures a Registry.
type Option func(*settings)

// WithDefault sets the implementation returned when a lookup finds nothing.
func WithDefault(t reflect.Type) Option {
	return func(s *settings) { s.fallback = t }
}

// WithPattern sets the glob matched against file base names.
func WithPattern(pattern string) Option {
	return func(s *settings) { s.pattern = pattern }
}

// WithSuffix sets the extension stripped during path translation.
func WithSuffix(suffix string) Option {
	return func(s *settings) { s.suffix = suffix }
}

// WithLoader replaces the unit loader. The default is unit.Default.
func WithLoader(l Loader) Option {
	return func(s *settings) { s.loader = l }
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithTracer sets the tracer used for discovery pass spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *settings) { s.tracer = t }
}

// WithOrdering sets the key ordering used by Latest and Keys.
func WithOrdering(o Ordering) Option {
	return func(s *settings) { s.ordering = o }
}

// WithDuplicatePolicy sets how key collisions between units are resolved.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(s *settings) { s.onDuplicate = p }
}

// WithRand sets the random source used by Random.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.rnd = r }
}

// Registry indexes the implementations of a contract found under a search
// root, keyed by K and usable as T.
type Registry[K Key, T any] struct {
	settings

	discoveryRoot string
	searchRoot    string
	contract      *Contract
	match         glob.Glob

	entries     map[K]reflect.Type
	sourceOf    map[K]Unit
	loaded      map[string]struct{}
	diagnostics []Diagnostic
}

// New creates an empty registry. Module identifiers are derived relative to
// discoveryRoot; files are searched for under searchRoot. Nothing is loaded
// until the first lookup or Scan.
func New[K Key, T any](discoveryRoot, searchRoot string, contract *Contract, opts ...Option) (*Registry[K, T], error) {
	s := settings{
		pattern: DefaultPattern,
		suffix:  DefaultSuffix,
		loader:  unit.Default,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if contract == nil {
		return nil, fmt.Errorf("%w: contract is required", ErrInvalidConfig)
	}
	if s.loader == nil {
		return nil, fmt.Errorf("%w: loader is required", ErrInvalidConfig)
	}

	discoveryRoot, err := filepath.Abs(discoveryRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: discovery root: %w", ErrInvalidConfig, err)
	}
	searchRoot, err = filepath.Abs(searchRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: search root: %w", ErrInvalidConfig, err)
	}
	info, err := os.Stat(searchRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: search root: %w", ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: search root %s is not a directory", ErrInvalidConfig, searchRoot)
	}

	match, err := glob.Compile(s.pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidConfig, s.pattern, err)
	}

	if s.fallback != nil && !instantiable[T](s.fallback) {
		return nil, fmt.Errorf("%w: default %s cannot be used as %s", ErrInvalidConfig, s.fallback, reflect.TypeFor[T]())
	}

	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "productor", Level: log.WarnLevel})
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}

	return &Registry[K, T]{
		settings:      s,
		discoveryRoot: discoveryRoot,
		searchRoot:    searchRoot,
		contract:      contract,
		match:         match,
		entries:       make(map[K]reflect.Type),
		sourceOf:      make(map[K]Unit),
		loaded:        make(map[string]struct{}),
	}, nil
}

// DiscoveryRoot returns the absolute root module identifiers are relative to.
func (r *Registry[K, T]) DiscoveryRoot() string { return r.discoveryRoot }

// SearchRoot returns the absolute directory that is walked.
func (r *Registry[K, T]) SearchRoot() string { return r.searchRoot }

// Contract returns the capability contract.
func (r *Registry[K, T]) Contract() *Contract { return r.contract }
