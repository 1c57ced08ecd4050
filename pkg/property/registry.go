package property

import (
	"fmt"
	"sort"
)

// Registry holds the set of known properties and their metadata. A registry
// is built once, up front, and read concurrently afterwards; Register must
// not be called once resolution has started.
type Registry struct {
	byName     map[string]*Definition
	byID       []*Definition
	names      []string
	inherited  []string
	namesDirty bool
}

// NewRegistry returns a registry pre-populated with the built-in property
// set.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Definition, 64)}
	registerBuiltins(r)
	return r
}

// Register adds a property definition and assigns it a dense ID. The
// default value is normalized to reference the stored definition.
// Registering a name twice is an error.
func (r *Registry) Register(def Definition) (*Definition, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("property registration with empty name")
	}
	if _, exists := r.byName[def.Name]; exists {
		return nil, fmt.Errorf("property %q registered twice", def.Name)
	}
	stored := def
	stored.ID = ID(len(r.byID))
	if stored.Keywords != nil {
		stored.keywordNames = make([]string, len(stored.Keywords))
		for name, index := range stored.Keywords {
			if index >= 0 && index < len(stored.keywordNames) {
				stored.keywordNames[index] = name
			}
		}
	}
	stored.Default.Definition = &stored
	r.byName[stored.Name] = &stored
	r.byID = append(r.byID, &stored)
	r.namesDirty = true
	return &stored, nil
}

// Lookup returns the definition for a property name, or nil if the name is
// not registered.
func (r *Registry) Lookup(name string) *Definition {
	return r.byName[name]
}

// ByID returns the definition for a dense ID, or nil if out of range.
func (r *Registry) ByID(id ID) *Definition {
	if id < 0 || int(id) >= len(r.byID) {
		return nil
	}
	return r.byID[id]
}

// Len returns the number of registered properties; IDs range over [0, Len).
func (r *Registry) Len() int {
	return len(r.byID)
}

// Names returns all registered property names in sorted order. The returned
// slice is shared; callers must not modify it.
func (r *Registry) Names() []string {
	r.refreshNameLists()
	return r.names
}

// InheritedNames returns the sorted names of all inherited properties. The
// returned slice is shared; callers must not modify it.
func (r *Registry) InheritedNames() []string {
	r.refreshNameLists()
	return r.inherited
}

func (r *Registry) refreshNameLists() {
	if !r.namesDirty {
		return
	}
	r.names = r.names[:0]
	r.inherited = r.inherited[:0]
	for name, def := range r.byName {
		r.names = append(r.names, name)
		if def.Inherited {
			r.inherited = append(r.inherited, name)
		}
	}
	sort.Strings(r.names)
	sort.Strings(r.inherited)
	r.namesDirty = false
}
