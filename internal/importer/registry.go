package importer

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[EntityType]EntitySpec)
	registryMu sync.RWMutex
)

// Register adds an entity spec to the registry.
// Panics if the entity type is already registered or the spec is incomplete;
// registration happens at init time, so failing loudly is the right call.
func Register(spec EntitySpec) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[spec.Type]; exists {
		panic(fmt.Sprintf("entity spec already registered: %s", spec.Type))
	}
	if len(spec.Aliases) == 0 || spec.Assemble == nil {
		panic(fmt.Sprintf("incomplete entity spec: %s", spec.Type))
	}

	registry[spec.Type] = spec
}

// Spec returns the registered spec for an entity type.
func Spec(entityType EntityType) (EntitySpec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	spec, ok := registry[entityType]
	return spec, ok
}

// Specs returns all registered entity specs, sorted by type for consistent
// ordering.
func Specs() []EntitySpec {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]EntitySpec, 0, len(registry))
	for _, spec := range registry {
		result = append(result, spec)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Type < result[j].Type
	})

	return result
}
