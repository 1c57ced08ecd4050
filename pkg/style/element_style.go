package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-drift/styling/pkg/errors"
	"github.com/go-drift/styling/pkg/property"
)

// ElementStyle holds one element's style state: local property overrides,
// active classes and pseudo-classes, the current compiled definition and the
// pending dirty set. It owns property lookup, dynamic-state mutation,
// transition interception and computed-value resolution.
type ElementStyle struct {
	registry *property.Registry
	element  Element
	resolver DefinitionResolver
	host     TransitionHost

	// local is the inline override set, allocated on first SetProperty.
	local         map[string]property.Property
	classes       []string
	pseudoClasses []string

	definition      *Definition
	definitionDirty bool

	dirty DirtySet
}

// NewElementStyle creates the style state for one element. New elements
// start with every property dirty and the definition pending resolution.
// resolver and host may be nil: without a resolver no rules ever match, and
// without a host every value change snaps immediately.
func NewElementStyle(registry *property.Registry, el Element, resolver DefinitionResolver, host TransitionHost) *ElementStyle {
	return &ElementStyle{
		registry:        registry,
		element:         el,
		resolver:        resolver,
		host:            host,
		definitionDirty: true,
		dirty:           AllDirty(),
	}
}

// Registry returns the property registry this style resolves against.
func (s *ElementStyle) Registry() *property.Registry {
	return s.registry
}

// Definition returns the current compiled definition, possibly nil. The
// reference stays owned by the style state.
func (s *ElementStyle) Definition() *Definition {
	return s.definition
}

// Release drops the style state's definition reference. Call when the
// owning element is destroyed.
func (s *ElementStyle) Release() {
	s.definition.Release()
	s.definition = nil
}

// --- Property lookup ---------------------------------------------------

// getLocalProperty resolves name against an explicit override set and
// definition. Shared by before/after evaluation during transition
// interception.
func getLocalProperty(name string, local map[string]property.Property, def *Definition, pseudoClasses []string) (property.Property, bool) {
	if p, ok := local[name]; ok {
		return p, true
	}
	return def.GetProperty(name, pseudoClasses)
}

// getProperty resolves name with full fallback: override set, definition,
// then for inherited properties the nearest ancestor's local value (its
// override or definition value, not its fully cascaded value), then the
// registry default.
func (s *ElementStyle) getProperty(name string, local map[string]property.Property, def *Definition, pseudoClasses []string) (property.Property, bool) {
	if p, ok := getLocalProperty(name, local, def, pseudoClasses); ok {
		return p, true
	}

	meta := s.registry.Lookup(name)
	if meta == nil {
		return property.Property{}, false
	}

	// Inherited properties read the nearest ancestor's local value only.
	// Ancestors' own inheritance and defaults are deliberately not
	// consulted; computed values are the shape inheritance flows through.
	if meta.Inherited && s.element != nil {
		for parent := s.element.Parent(); parent != nil; parent = parent.Parent() {
			if p, ok := parent.Style().GetLocalProperty(name); ok {
				return p, true
			}
		}
	}

	return meta.Default, true
}

// GetProperty resolves one property on this element: local override, then
// the definition branch matching the active pseudo-classes, then for
// inherited properties the nearest ancestor's local value, then the registry
// default. ok=false only for unregistered names with no declared value.
func (s *ElementStyle) GetProperty(name string) (property.Property, bool) {
	return s.getProperty(name, s.local, s.definition, s.pseudoClasses)
}

// GetLocalProperty resolves name against this element's own declarations
// only: the local override set, then the definition. No inheritance or
// default fallback.
func (s *ElementStyle) GetLocalProperty(name string) (property.Property, bool) {
	return getLocalProperty(name, s.local, s.definition, s.pseudoClasses)
}

// LocalProperties returns the inline override set, nil until the first
// SetProperty. Callers must not mutate it.
func (s *ElementStyle) LocalProperties() map[string]property.Property {
	return s.local
}

// Iterate returns an iterator over every (name, value) pair currently
// resolvable on this element: local overrides first, then unshadowed
// definition entries under the active pseudo-classes. Style mutations
// invalidate the iterator.
func (s *ElementStyle) Iterate() *Iterator {
	localNames := make([]string, 0, len(s.local))
	for name := range s.local {
		localNames = append(localNames, name)
	}
	sort.Strings(localNames)
	return &Iterator{
		style:      s,
		localNames: localNames,
		definition: s.definition.Iterate(s.pseudoClasses),
	}
}

// --- Local overrides -----------------------------------------------------

// SetProperty parses declaration text and records it as a local override.
// Malformed text or an unregistered name leaves the override set untouched,
// notifies the error sink and returns the failure.
func (s *ElementStyle) SetProperty(name, value string) error {
	meta := s.registry.Lookup(name)
	if meta == nil {
		err := fmt.Errorf("unregistered property %q", name)
		errors.Report(&errors.StyleError{Op: "style.SetProperty", Kind: errors.KindParsing, Property: name, Err: err})
		return err
	}
	parsed, err := property.ParseValue(meta, value)
	if err != nil {
		errors.Report(&errors.StyleError{
			Op: "style.SetProperty", Kind: errors.KindParsing, Property: name,
			Err: fmt.Errorf("syntax error in declaration %q: %w", name+": "+value, err),
		})
		return err
	}
	return s.SetPropertyValue(name, parsed)
}

// SetPropertyValue records a pre-parsed value as a local override. The value
// is re-bound to this registry's metadata for the name; unregistered names
// fail.
func (s *ElementStyle) SetPropertyValue(name string, value property.Property) error {
	meta := s.registry.Lookup(name)
	if meta == nil {
		return fmt.Errorf("unregistered property %q", name)
	}
	value.Definition = meta
	if s.local == nil {
		s.local = make(map[string]property.Property)
	}
	s.local[name] = value
	s.DirtyProperty(name)
	return nil
}

// RemoveProperty deletes a local override. No-op when absent.
func (s *ElementStyle) RemoveProperty(name string) {
	if _, ok := s.local[name]; !ok {
		return
	}
	delete(s.local, name)
	s.DirtyProperty(name)
}

// --- Classes ---------------------------------------------------------------

// SetClass activates or deactivates a class. Class changes can alter which
// rules match this element and, through combinators, its descendants, so any
// change marks the whole subtree's definitions dirty.
func (s *ElementStyle) SetClass(name string, activate bool) {
	index := -1
	for i, c := range s.classes {
		if c == name {
			index = i
			break
		}
	}
	switch {
	case activate && index < 0:
		s.classes = append(s.classes, name)
		s.DirtyDefinition()
	case !activate && index >= 0:
		s.classes = append(s.classes[:index], s.classes[index+1:]...)
		s.DirtyDefinition()
	}
}

// IsClassSet reports whether a class is active.
func (s *ElementStyle) IsClassSet(name string) bool {
	for _, c := range s.classes {
		if c == name {
			return true
		}
	}
	return false
}

// SetClassNames replaces the entire class list from a space-separated
// string.
func (s *ElementStyle) SetClassNames(names string) {
	s.classes = s.classes[:0]
	for _, name := range strings.Fields(names) {
		s.classes = append(s.classes, name)
	}
	s.DirtyDefinition()
}

// GetClassNames returns the active classes as a space-separated string.
func (s *ElementStyle) GetClassNames() string {
	return strings.Join(s.classes, " ")
}

// Classes returns the active class list. Callers must not modify it.
func (s *ElementStyle) Classes() []string {
	return s.classes
}

// --- Pseudo-classes ----------------------------------------------------

// SetPseudoClass activates or deactivates a pseudo-class. The definition
// already encodes every pseudo-class branch, so no re-match happens; instead
// the affected property names are computed, run through transition
// interception, and the remainder marked dirty. Volatile pseudo-classes
// additionally dirty font state or descendant definitions.
func (s *ElementStyle) SetPseudoClass(pseudoClass string, activate bool) {
	before := len(s.pseudoClasses)
	pseudoClassesBefore := append([]string(nil), s.pseudoClasses...)

	if activate {
		s.pseudoClasses = append(s.pseudoClasses, pseudoClass)
	} else {
		// Duplicates are tolerated on activation, so deactivation loops
		// until the name is gone.
		for i := 0; i < len(s.pseudoClasses); {
			if s.pseudoClasses[i] == pseudoClass {
				s.pseudoClasses = append(s.pseudoClasses[:i], s.pseudoClasses[i+1:]...)
			} else {
				i++
			}
		}
	}

	if len(s.pseudoClasses) == before {
		return
	}

	if s.element != nil {
		s.element.DirtyDecorators(false)
	}

	if s.definition == nil {
		return
	}

	delta := make(NameSet)
	s.definition.DefinedPropertiesChanged(delta, s.pseudoClasses, pseudoClass)

	s.transitionPropertyChanges(delta, s.definition, s.definition, pseudoClassesBefore, s.pseudoClasses)
	s.dirty.InsertSet(delta)

	switch s.definition.PseudoClassVolatility(pseudoClass) {
	case VolatilityFont:
		if s.element != nil {
			s.element.DirtyFont()
		}
	case VolatilityStructure:
		s.dirtyChildDefinitions()
	}
}

// IsPseudoClassSet reports whether a pseudo-class is active.
func (s *ElementStyle) IsPseudoClassSet(pseudoClass string) bool {
	for _, pc := range s.pseudoClasses {
		if pc == pseudoClass {
			return true
		}
	}
	return false
}

// ActivePseudoClasses returns the active pseudo-class list. Callers must
// not modify it.
func (s *ElementStyle) ActivePseudoClasses() []string {
	return s.pseudoClasses
}

// --- Definition lifecycle ---------------------------------------------

// DirtyDefinition marks this element's and every descendant's definition
// for re-resolution on the next update pass.
func (s *ElementStyle) DirtyDefinition() {
	s.definitionDirty = true
	s.dirtyChildDefinitions()
}

func (s *ElementStyle) dirtyChildDefinitions() {
	if s.element == nil {
		return
	}
	for i := 0; i < s.element.NumChildren(); i++ {
		s.element.Child(i).Style().DirtyDefinition()
	}
}

// UpdateDefinition re-resolves the element's definition if it was marked
// dirty. When the resolved definition differs by identity from the current
// one, the symmetric set of affected property names is run through
// transition interception and the remainder marked dirty; the old reference
// is released and decorators forced to re-evaluate. An identical resolution
// just discards the redundant reference.
func (s *ElementStyle) UpdateDefinition() {
	if !s.definitionDirty {
		return
	}
	s.definitionDirty = false

	var newDefinition *Definition
	if s.resolver != nil {
		newDefinition = s.resolver.ResolveDefinition(s.element)
	}

	// A nil resolution takes the swap branch too, so definition-less
	// elements still get their decorators re-evaluated.
	if newDefinition != s.definition || newDefinition == nil {
		delta := make(NameSet)
		s.definition.DefinedProperties(delta, s.pseudoClasses)
		newDefinition.DefinedProperties(delta, s.pseudoClasses)

		s.transitionPropertyChanges(delta, s.definition, newDefinition, s.pseudoClasses, s.pseudoClasses)

		s.definition.Release()
		s.definition = newDefinition

		s.dirty.InsertSet(delta)
		if s.element != nil {
			s.element.DirtyDecorators(true)
		}
	} else {
		newDefinition.Release()
	}
}

// --- Dirtying ----------------------------------------------------------

// DirtyProperty marks a single property for recomputation.
func (s *ElementStyle) DirtyProperty(name string) {
	s.dirty.Insert(name)
}

// DirtyProperties marks a set of properties for recomputation.
func (s *ElementStyle) DirtyProperties(names NameSet) {
	s.dirty.InsertSet(names)
}

// DirtyInheritedProperties records inherited properties dirtied by an
// ancestor's recomputation.
func (s *ElementStyle) DirtyInheritedProperties(names []string) {
	s.dirty.InsertList(names)
}

// AnyPropertiesDirty reports whether the next ComputeValues call has work.
func (s *ElementStyle) AnyPropertiesDirty() bool {
	return !s.dirty.Empty()
}

// DirtyRemProperties dirties every property on this element and its
// descendants whose currently resolved value uses rem units. Triggered when
// the document's base font size changes, which is state outside any single
// element, hence the subtree walk.
func (s *ElementStyle) DirtyRemProperties() {
	s.dirtyUnitProperties(property.UnitRem)
}

// DirtyDpProperties dirties every property on this element and its
// descendants whose currently resolved value uses dp units. Triggered when
// the device pixel ratio changes.
func (s *ElementStyle) DirtyDpProperties() {
	s.dirtyUnitProperties(property.UnitDp)
}

func (s *ElementStyle) dirtyUnitProperties(unit property.Unit) {
	for _, name := range s.registry.Names() {
		if p, ok := s.GetProperty(name); ok && p.Unit == unit {
			s.dirty.Insert(name)
		}
	}
	if s.element == nil {
		return
	}
	for i := 0; i < s.element.NumChildren(); i++ {
		s.element.Child(i).Style().dirtyUnitProperties(unit)
	}
}
