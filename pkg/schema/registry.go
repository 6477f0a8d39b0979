package schema

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry maps names to record kinds and named types. Descriptors live in an
// arena of slots addressed by stable indices; names and tags index into it.
//
// Declaration takes the write lock; once declaration is done the registry is
// only read.
type Registry struct {
	mu    sync.RWMutex
	slots []Type
	names map[string]int
	kinds map[string]*Kind
	tags  map[string]*Kind
}

var defaultRegistry = NewRegistry()

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]int),
		kinds: make(map[string]*Kind),
		tags:  make(map[string]*Kind),
	}
}

// DefaultRegistry returns the process-wide registry used by Define and Defer.
func DefaultRegistry() *Registry { return defaultRegistry }

// Define starts the declaration of a record kind in the default registry.
func Define(name string) *Builder { return defaultRegistry.Define(name) }

// Define starts the declaration of a record kind in r.
func (r *Registry) Define(name string) *Builder {
	return &Builder{reg: r, name: name}
}

// Defer creates a reference to a name declared in r, now or later.
func (r *Registry) Defer(name string, opts ...Option) *DeferredType {
	return &DeferredType{base: base{buildMeta(opts)}, name: name, reg: r}
}

// RegisterType names a non-record type so that Defer can refer to it.
// A previous declaration under the same name is replaced.
func (r *Registry) RegisterType(name string, t Type) error {
	if name == "" {
		return fmt.Errorf("%w: type name cannot be empty", ErrSchema)
	}
	if t == nil {
		return fmt.Errorf("%w: type %q is nil", ErrSchema, name)
	}
	if _, ok := t.(*RecordType); ok {
		return fmt.Errorf("%w: record types are registered through Define", ErrSchema)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kinds[name]; ok {
		return fmt.Errorf("%w: %q already names a record kind", ErrSchema, name)
	}
	r.put(name, t)
	return nil
}

func (r *Registry) registerKind(k *Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.kinds[k.name]; ok {
		slog.Debug("schema: kind redefined", "kind", k.name)
		if r.tags[old.tag] == old {
			delete(r.tags, old.tag)
		}
	}
	k.slot = r.put(k.name, &RecordType{kind: k})
	r.kinds[k.name] = k
	r.tags[k.tag] = k
}

func (r *Registry) put(name string, t Type) int {
	r.slots = append(r.slots, t)
	slot := len(r.slots) - 1
	r.names[name] = slot
	return slot
}

// Lookup returns the type declared under name.
func (r *Registry) Lookup(name string) (Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.names[name]
	if !ok {
		return nil, fmt.Errorf("%w: no kind or type named %q", ErrLookup, name)
	}
	return r.slots[slot], nil
}

// Kind returns the record kind declared under name.
func (r *Registry) Kind(name string) (*Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// KindByTag returns the record kind whose markup tag is tag.
func (r *Registry) KindByTag(tag string) (*Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.tags[tag]
	return k, ok
}

// Kinds returns all record kinds sorted by name.
func (r *Registry) Kinds() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		result = append(result, k)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].name < result[j].name })
	return result
}

// Types returns the named non-record types.
func (r *Registry) Types() map[string]Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[string]Type)
	for name, slot := range r.names {
		if _, isKind := r.kinds[name]; isKind {
			continue
		}
		result[name] = r.slots[slot]
	}
	return result
}
