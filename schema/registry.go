package schema

import (
	"errors"
	"sync"

	"github.com/syssam/fieldgate"
	"github.com/syssam/fieldgate/schema/attr"
)

// Registry holds the compiled models of a deployment, keyed by UID.
// Lookups are read-locked; Reset swaps the whole set atomically, which
// is how file watchers apply reloaded definitions. The registry is
// always passed explicitly; there is no ambient default.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Model
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*Model)}
}

// Add registers the given models. Registering a UID twice is an error.
func (r *Registry) Add(models ...*Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range models {
		if _, ok := r.models[m.uid]; ok {
			return fieldgate.NewSchemaError(m.uid, "", errors.New("model already registered"))
		}
		r.models[m.uid] = m
		r.order = append(r.order, m.uid)
	}
	return nil
}

// MustAdd is like Add but panics on error.
func (r *Registry) MustAdd(models ...*Model) {
	if err := r.Add(models...); err != nil {
		panic(err)
	}
}

// Reset replaces the registered models with the given set.
func (r *Registry) Reset(models ...*Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = make(map[string]*Model, len(models))
	r.order = r.order[:0]
	for _, m := range models {
		if _, ok := r.models[m.uid]; !ok {
			r.order = append(r.order, m.uid)
		}
		r.models[m.uid] = m
	}
}

// Model returns the model registered under uid, and whether it exists.
// Registry implements Lookup.
func (r *Registry) Model(uid string) (*Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[uid]
	return m, ok
}

// MustModel is like Model but panics with an UnknownModelError when the
// UID is not registered.
func (r *Registry) MustModel(uid string) *Model {
	m, ok := r.Model(uid)
	if !ok {
		panic(fieldgate.NewUnknownModelError(uid))
	}
	return m
}

// Models returns the registered models in registration order.
func (r *Registry) Models() []*Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Model, 0, len(r.order))
	for _, uid := range r.order {
		out = append(out, r.models[uid])
	}
	return out
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

// Validate checks referential consistency: every relation and component
// target, and every dynamic-zone component, must resolve to a
// registered model. All problems are collected and returned together.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var errs []error
	for _, uid := range r.order {
		m := r.models[uid]
		for _, a := range m.attrs {
			switch a.kind {
			case attr.KindRelation, attr.KindComponent:
				if _, ok := r.models[a.target]; !ok {
					errs = append(errs, fieldgate.NewSchemaError(uid, a.name,
						fieldgate.NewUnknownModelError(a.target)))
				}
			case attr.KindDynamicZone:
				for _, cuid := range a.components {
					if _, ok := r.models[cuid]; !ok {
						errs = append(errs, fieldgate.NewSchemaError(uid, a.name,
							fieldgate.NewUnknownModelError(cuid)))
					}
				}
			case attr.KindScalar:
			}
		}
	}
	return fieldgate.NewAggregateError(errs...)
}

var _ Lookup = (*Registry)(nil)
