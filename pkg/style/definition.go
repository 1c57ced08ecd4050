package style

import (
	"sort"
	"sync/atomic"

	"github.com/go-drift/styling/pkg/property"
)

// PseudoClassVolatility classifies what kind of cached state toggling a
// pseudo-class invalidates.
type PseudoClassVolatility int

const (
	// VolatilityStable means toggling the pseudo-class has no side effects
	// beyond the affected property values.
	VolatilityStable PseudoClassVolatility = iota
	// VolatilityFont means toggling the pseudo-class may change font
	// effects, so font state must be rebuilt.
	VolatilityFont
	// VolatilityStructure means toggling the pseudo-class may change which
	// rules match descendant elements, so their definitions must be
	// re-resolved.
	VolatilityStructure
)

func (v PseudoClassVolatility) String() string {
	switch v {
	case VolatilityFont:
		return "font-volatile"
	case VolatilityStructure:
		return "structure-volatile"
	default:
		return "stable"
	}
}

// conditionalProperty is one pseudo-class-conditional branch for a property.
type conditionalProperty struct {
	requirement []string
	value       property.Property
}

// conditionalDecorators is one pseudo-class-conditional decorator override
// set.
type conditionalDecorators struct {
	requirement []string
	decorators  map[string]Decorator
}

// Definition holds the cascaded property values and instanced decorators for
// one matched-rule signature. It is immutable once initialised and shared by
// reference count across every element whose matched rules are identical;
// immutability is what makes the unsynchronized sharing safe.
type Definition struct {
	refs atomic.Int32

	// base holds the unconditional cascade result.
	base      map[string]property.Property
	baseNames []string // sorted, for deterministic iteration

	// conditional holds per-name branch lists in specificity order; the
	// first satisfied branch wins. Ordering is established by the rule
	// resolver and preserved verbatim.
	conditional      map[string][]conditionalProperty
	conditionalNames []string // sorted

	decorators        map[string]Decorator
	pseudoDecorators  []conditionalDecorators
	fontEffects       map[string]Decorator
	pseudoFontEffects []conditionalDecorators

	volatility           map[string]PseudoClassVolatility
	structurallyVolatile bool
}

// NewDefinition compiles a definition from rules ordered most specific
// first. structurallyVolatile marks definitions built from rules whose
// matching depends on sibling structure; volatilePseudoClasses lists
// pseudo-classes whose toggling can change which rules match descendants.
//
// Construction is total: it always yields a usable definition, possibly an
// empty one. The returned definition carries one reference for the caller.
func NewDefinition(rules []Rule, volatilePseudoClasses []string, structurallyVolatile bool, decorators, fontEffects *FactoryRegistry) *Definition {
	d := &Definition{
		base:                 make(map[string]property.Property),
		conditional:          make(map[string][]conditionalProperty),
		volatility:           make(map[string]PseudoClassVolatility),
		structurallyVolatile: structurallyVolatile,
	}
	d.refs.Store(1)

	for _, pc := range volatilePseudoClasses {
		d.volatility[pc] = VolatilityStructure
	}

	// Rules arrive most specific first: the first writer of a base value
	// wins, and conditional branches keep arrival order so a front-to-back
	// scan honors specificity.
	for _, rule := range rules {
		if len(rule.PseudoClasses) == 0 {
			for name, value := range rule.Properties {
				if _, taken := d.base[name]; !taken {
					d.base[name] = value
				}
			}
			continue
		}
		requirement := append([]string(nil), rule.PseudoClasses...)
		for name, value := range rule.Properties {
			d.conditional[name] = append(d.conditional[name], conditionalProperty{
				requirement: requirement,
				value:       value,
			})
		}
	}

	d.baseNames = sortedMapNames(d.base)
	d.conditionalNames = make([]string, 0, len(d.conditional))
	for name := range d.conditional {
		d.conditionalNames = append(d.conditionalNames, name)
	}
	sort.Strings(d.conditionalNames)

	d.instanceDecorators(rules, decorators, fontEffects)
	return d
}

// instanceDecorators merges the rules' decorator and font-effect
// declarations per distinct pseudo-class combination and instances each set
// once through the external factories. Pseudo-classes declaring font effects
// are classified font-volatile unless already structure-volatile.
func (d *Definition) instanceDecorators(rules []Rule, decorators, fontEffects *FactoryRegistry) {
	d.decorators = instanceSet(rules, decorators, nil, func(r Rule) map[string]DecoratorDeclaration { return r.Decorators })
	d.fontEffects = instanceSet(rules, fontEffects, nil, func(r Rule) map[string]DecoratorDeclaration { return r.FontEffects })

	for _, rule := range rules {
		if len(rule.PseudoClasses) == 0 {
			continue
		}
		if len(rule.Decorators) > 0 {
			d.pseudoDecorators = append(d.pseudoDecorators, conditionalDecorators{
				requirement: append([]string(nil), rule.PseudoClasses...),
				decorators:  instanceSet(rules, decorators, rule.PseudoClasses, func(r Rule) map[string]DecoratorDeclaration { return r.Decorators }),
			})
		}
		if len(rule.FontEffects) > 0 {
			d.pseudoFontEffects = append(d.pseudoFontEffects, conditionalDecorators{
				requirement: append([]string(nil), rule.PseudoClasses...),
				decorators:  instanceSet(rules, fontEffects, rule.PseudoClasses, func(r Rule) map[string]DecoratorDeclaration { return r.FontEffects }),
			})
			for _, pc := range rule.PseudoClasses {
				if d.volatility[pc] != VolatilityStructure {
					d.volatility[pc] = VolatilityFont
				}
			}
		}
	}
}

// instanceSet instances the declarations visible under one pseudo-class
// combination: the unconditional declarations overlaid with the combination's
// own. requirement nil selects the default state.
func instanceSet(rules []Rule, registry *FactoryRegistry, requirement []string, pick func(Rule) map[string]DecoratorDeclaration) map[string]Decorator {
	var merged map[string]DecoratorDeclaration
	// Least specific first so more specific declarations overwrite.
	for i := len(rules) - 1; i >= 0; i-- {
		rule := rules[i]
		applies := len(rule.PseudoClasses) == 0 ||
			(requirement != nil && requirementSatisfied(rule.PseudoClasses, requirement))
		if !applies {
			continue
		}
		for name, decl := range pick(rule) {
			if merged == nil {
				merged = make(map[string]DecoratorDeclaration)
			}
			merged[name] = decl
		}
	}
	if len(merged) == 0 {
		return nil
	}
	instanced := make(map[string]Decorator, len(merged))
	for name, decl := range merged {
		if dec := registry.Instance(decl.Type, decl.Properties); dec != nil {
			instanced[name] = dec
		}
	}
	return instanced
}

// Retain adds a reference for a new owning element.
func (d *Definition) Retain() *Definition {
	if d != nil {
		d.refs.Add(1)
	}
	return d
}

// Release drops one reference. Safe on nil.
func (d *Definition) Release() {
	if d != nil {
		d.refs.Add(-1)
	}
}

// refCount is exposed for tests.
func (d *Definition) refCount() int32 {
	return d.refs.Load()
}

// GetProperty returns the value defined for name under the given active
// pseudo-classes: the first conditional branch (in specificity order) whose
// requirement is satisfied, else the base value, else ok=false.
func (d *Definition) GetProperty(name string, pseudoClasses []string) (property.Property, bool) {
	if d == nil {
		return property.Property{}, false
	}
	for _, branch := range d.conditional[name] {
		if requirementSatisfied(branch.requirement, pseudoClasses) {
			return branch.value, true
		}
	}
	if p, ok := d.base[name]; ok {
		return p, true
	}
	return property.Property{}, false
}

// DefinedProperties collects every property name resolvable under the given
// active pseudo-classes into names.
func (d *Definition) DefinedProperties(names NameSet, pseudoClasses []string) {
	if d == nil {
		return
	}
	for name := range d.base {
		names.Add(name)
	}
	for name, branches := range d.conditional {
		for _, branch := range branches {
			if requirementSatisfied(branch.requirement, pseudoClasses) {
				names.Add(name)
				break
			}
		}
	}
}

// DefinedPropertiesChanged collects the property names that can change when
// the given pseudo-class is toggled: names with a conditional branch that
// mentions the pseudo-class and whose remaining requirements are satisfied
// by the element's (post-change) active set. This keeps invalidation on a
// single toggle far smaller than re-evaluating every defined property.
func (d *Definition) DefinedPropertiesChanged(names NameSet, pseudoClasses []string, changed string) {
	if d == nil {
		return
	}
	for name, branches := range d.conditional {
		for _, branch := range branches {
			if !requirementMentions(branch.requirement, changed) {
				continue
			}
			restSatisfied := true
			for _, req := range branch.requirement {
				if req == changed {
					continue
				}
				if !requirementSatisfied([]string{req}, pseudoClasses) {
					restSatisfied = false
					break
				}
			}
			if restSatisfied {
				names.Add(name)
				break
			}
		}
	}
}

// PseudoClassVolatility returns the static classification of a pseudo-class
// computed at construction time.
func (d *Definition) PseudoClassVolatility(pseudoClass string) PseudoClassVolatility {
	if d == nil {
		return VolatilityStable
	}
	return d.volatility[pseudoClass]
}

// IsStructurallyVolatile reports whether this definition was built from
// rules whose matching depends on sibling structure.
func (d *Definition) IsStructurallyVolatile() bool {
	return d != nil && d.structurallyVolatile
}

// Decorators returns the decorator set effective under the given active
// pseudo-classes: the first satisfied pseudo-class override in specificity
// order, else the default set. May be nil.
func (d *Definition) Decorators(pseudoClasses []string) map[string]Decorator {
	if d == nil {
		return nil
	}
	for _, override := range d.pseudoDecorators {
		if requirementSatisfied(override.requirement, pseudoClasses) {
			return override.decorators
		}
	}
	return d.decorators
}

// FontEffects returns the font-effect set effective under the given active
// pseudo-classes. May be nil.
func (d *Definition) FontEffects(pseudoClasses []string) map[string]Decorator {
	if d == nil {
		return nil
	}
	for _, override := range d.pseudoFontEffects {
		if requirementSatisfied(override.requirement, pseudoClasses) {
			return override.decorators
		}
	}
	return d.fontEffects
}

func sortedMapNames(m map[string]property.Property) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
