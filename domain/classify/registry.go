package classify

import (
	"sort"
	"sync"
)

// Registry resolves model names to classifiers. The scoring pipeline looks
// up the classifier for the requested model name at pass time, so models
// can be registered independently of pipeline construction.
type Registry struct {
	classifiers map[string]Classifier
	mu          sync.RWMutex
}

// NewRegistry creates an empty classifier registry.
func NewRegistry() *Registry {
	return &Registry{
		classifiers: make(map[string]Classifier),
	}
}

// Register registers a classifier under its model name.
func (r *Registry) Register(c Classifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classifiers[c.ModelName()] = c
}

// Classifier returns the classifier for a model name.
func (r *Registry) Classifier(modelName string) (Classifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classifiers[modelName]
	return c, ok
}

// ModelNames returns all registered model names, sorted.
func (r *Registry) ModelNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classifiers))
	for name := range r.classifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
