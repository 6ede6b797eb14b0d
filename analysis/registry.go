package analysis

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a fresh analysis instance with its requirements declared.
type Factory func() Analysis

// Registry maps analysis names to factories. Names are unique and
// case-sensitive; a second registration under an existing name fails with
// DuplicateAnalysisError. Registration happens once at startup; the registry
// is read-only thereafter from the orchestration perspective. Thread-safe.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty analysis registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("analysis name cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("factory for analysis %q cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.factories[name]; dup {
		return &DuplicateAnalysisError{Name: name}
	}
	r.factories[name] = f
	return nil
}

// MustRegister is Register for startup paths where a duplicate name is a
// programming error.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	return f, ok
}

// New creates a fresh instance of the named analysis. It returns
// ErrUnknownAnalysis when the name is not registered.
func (r *Registry) New(name string) (Analysis, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAnalysis, name)
	}
	return f(), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered analyses.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// The three process-wide registries, one per analysis category. Concrete
// analysis packages expose an explicit Register function taking one of
// these; startup code calls it so that registration order is visible rather
// than hidden in import side effects.
var (
	// ImageAnalyses holds analyses operating on a single acquisition.
	ImageAnalyses = NewRegistry()
	// DatasetAnalyses holds analyses operating on a whole dataset.
	DatasetAnalyses = NewRegistry()
	// ProgressionAnalyses holds analyses operating on a time progression
	// of datasets.
	ProgressionAnalyses = NewRegistry()
)
