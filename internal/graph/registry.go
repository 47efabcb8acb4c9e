package graph

import "github.com/DeusData/javagraph/internal/entity"

// Registry indexes a complete corpus for call resolution: every entity by
// qualified name, and every class-like entity's simple name mapped to its
// qualified name. Both indexes are built from the full entity list before
// any lookup, which makes resolution independent of file processing order.
//
// A Registry is scoped to one resolution call; it is never shared between
// corpora, so independent corpora can be resolved concurrently.
type Registry struct {
	// exact maps qualified name -> entity. Overloads share a qualified
	// name; the first occurrence wins, which is enough for existence
	// checks and reverse-edge targets.
	exact map[string]*entity.Entity
	// classes maps class-like simple name -> qualified name. Simple-name
	// collisions are last-write-wins, mirroring the field-type index.
	classes map[string]string
}

// NewRegistry indexes the complete entity list.
func NewRegistry(entities []*entity.Entity) *Registry {
	r := &Registry{
		exact:   make(map[string]*entity.Entity, len(entities)),
		classes: make(map[string]string),
	}
	for _, e := range entities {
		if _, ok := r.exact[e.QualifiedName]; !ok {
			r.exact[e.QualifiedName] = e
		}
		if e.Kind.ClassLike() {
			r.classes[e.Name] = e.QualifiedName
		}
	}
	return r
}

// Lookup returns the entity registered under a qualified name.
func (r *Registry) Lookup(qualifiedName string) (*entity.Entity, bool) {
	e, ok := r.exact[qualifiedName]
	return e, ok
}

// ClassQN returns the qualified name of a class-like entity by simple name.
func (r *Registry) ClassQN(simpleName string) (string, bool) {
	qn, ok := r.classes[simpleName]
	return qn, ok
}

// Size returns the number of qualified names in the registry.
func (r *Registry) Size() int {
	return len(r.exact)
}
