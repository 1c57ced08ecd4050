package style

import "github.com/go-drift/styling/pkg/property"

// DefinitionIterator walks the (name, value) pairs a definition resolves
// under a fixed set of active pseudo-classes: every base entry first, then
// for each conditional name bucket the first branch (in specificity order)
// the active set satisfies.
//
// The sequence is lazy, finite and restartable via [Definition.Iterate]. The
// active pseudo-class list is referenced, not copied; the caller must keep
// it alive and unchanged for the iterator's lifetime. The definition itself
// is immutable, so no other invalidation applies.
type DefinitionIterator struct {
	def    *Definition
	active []string

	baseIndex int
	condIndex int
}

// Iterate returns an iterator positioned before the first entry.
func (d *Definition) Iterate(pseudoClasses []string) *DefinitionIterator {
	return &DefinitionIterator{def: d, active: pseudoClasses}
}

// Next advances to the next entry. requirement is the pseudo-class
// requirement the entry was conditional on, nil for base entries. ok=false
// terminates the sequence.
func (it *DefinitionIterator) Next() (name string, value property.Property, requirement []string, ok bool) {
	if it.def == nil {
		return "", property.Property{}, nil, false
	}
	if it.baseIndex < len(it.def.baseNames) {
		name = it.def.baseNames[it.baseIndex]
		it.baseIndex++
		return name, it.def.base[name], nil, true
	}
	for it.condIndex < len(it.def.conditionalNames) {
		name = it.def.conditionalNames[it.condIndex]
		it.condIndex++
		for _, branch := range it.def.conditional[name] {
			if requirementSatisfied(branch.requirement, it.active) {
				return name, branch.value, branch.requirement, true
			}
		}
	}
	return "", property.Property{}, nil, false
}

// Iterator walks every (name, value) pair currently resolvable on an
// element: local overrides first, then definition entries not shadowed by a
// local override. Restartable via [ElementStyle.Iterate]; mutating the
// element's style state invalidates it.
type Iterator struct {
	style      *ElementStyle
	localNames []string
	localIndex int
	definition *DefinitionIterator
}

// Next advances to the next entry. ok=false terminates the sequence.
func (it *Iterator) Next() (name string, value property.Property, ok bool) {
	if it.localIndex < len(it.localNames) {
		name = it.localNames[it.localIndex]
		it.localIndex++
		return name, it.style.local[name], true
	}
	for {
		name, value, _, ok = it.definition.Next()
		if !ok {
			return "", property.Property{}, false
		}
		if _, shadowed := it.style.local[name]; !shadowed {
			return name, value, true
		}
	}
}
