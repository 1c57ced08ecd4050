// Package sheet loads CSS-like style sheets and resolves them into compiled
// style definitions.
//
// The package is the rule-resolution collaborator of package style: it owns
// selector matching, specificity ordering and the definition cache. Source
// text is parsed with douceur. Selectors support tag, #id, .class,
// [attribute] and :pseudo-class parts with the descendant combinator.
//
// Definitions are deduplicated by matched-rule signature: every element
// matching the same rules in the same order shares one reference-counted
// definition.
package sheet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/go-drift/styling/pkg/errors"
	"github.com/go-drift/styling/pkg/property"
	"github.com/go-drift/styling/pkg/style"
)

// Queryable is the element surface selector matching needs on top of tree
// navigation.
type Queryable interface {
	style.Element
	Tag() string
	ID() string
	Attribute(name string) (string, bool)
}

// Declaration property names that declare decorators rather than values.
const (
	decoratorKey  = "decorator"
	fontEffectKey = "font-effect"
)

// rule is one parsed source rule bound to a single selector.
type rule struct {
	selector    *selector
	sourceOrder int

	properties  map[string]property.Property
	decorators  map[string]style.DecoratorDeclaration
	fontEffects map[string]style.DecoratorDeclaration
}

// StyleSheet holds parsed rules and the compiled definition cache. It
// implements style.DefinitionResolver.
type StyleSheet struct {
	registry    *property.Registry
	decorators  *style.FactoryRegistry
	fontEffects *style.FactoryRegistry

	rules []*rule

	// volatilePseudoClasses are dynamic pseudo-classes tested on ancestor
	// selector compounds anywhere in the sheet. Toggling one can change
	// descendants' matches, so every definition classifies them
	// structure-volatile. Sheet-wide is coarser than per-path but keeps the
	// classification static and cache-friendly.
	volatilePseudoClasses []string

	cache map[string]*style.Definition
}

// New returns an empty style sheet resolving against the given registry.
func New(registry *property.Registry) *StyleSheet {
	return &StyleSheet{
		registry:    registry,
		decorators:  style.NewFactoryRegistry(),
		fontEffects: style.NewFactoryRegistry(),
		cache:       make(map[string]*style.Definition),
	}
}

// Decorators returns the decorator factory registry.
func (s *StyleSheet) Decorators() *style.FactoryRegistry {
	return s.decorators
}

// FontEffects returns the font-effect factory registry.
func (s *StyleSheet) FontEffects() *style.FactoryRegistry {
	return s.fontEffects
}

// LoadString parses CSS source and appends its rules to the sheet. Rules
// with unsupported selectors and malformed declarations are reported to the
// error sink and skipped; the rest of the sheet still loads. Loading after
// definitions have been resolved is not supported: the cache would go stale.
func (s *StyleSheet) LoadString(source string) error {
	parsed, err := parser.Parse(source)
	if err != nil {
		return fmt.Errorf("parsing style sheet: %w", err)
	}

	volatile := make(map[string]bool)
	for _, pc := range s.volatilePseudoClasses {
		volatile[pc] = true
	}

	for _, sourceRule := range parsed.Rules {
		if sourceRule.Kind != css.QualifiedRule || len(sourceRule.Selectors) == 0 {
			// At-rules (media queries etc.) are out of scope.
			continue
		}
		for _, selectorText := range sourceRule.Selectors {
			sel, err := parseSelector(selectorText)
			if err != nil {
				errors.Report(&errors.StyleError{
					Op: "sheet.LoadString", Kind: errors.KindParsing,
					Err: fmt.Errorf("selector %q: %w", selectorText, err),
				})
				continue
			}
			r := &rule{selector: sel, sourceOrder: len(s.rules)}
			s.extractDeclarations(r, sourceRule.Declarations)
			s.rules = append(s.rules, r)
			sel.ancestorStatePseudoClasses(volatile)
		}
	}

	s.volatilePseudoClasses = s.volatilePseudoClasses[:0]
	for pc := range volatile {
		s.volatilePseudoClasses = append(s.volatilePseudoClasses, pc)
	}
	sort.Strings(s.volatilePseudoClasses)
	return nil
}

// extractDeclarations splits a rule's declarations into property values and
// decorator/font-effect declarations. Decorators are declared as
// "decorator: <type>", with parameters supplied by declarations prefixed
// "<type>-"; parameters are passed to factories as raw strings.
func (s *StyleSheet) extractDeclarations(r *rule, declarations []*css.Declaration) {
	declared := make(map[string]string, len(declarations))
	for _, decl := range declarations {
		declared[strings.ToLower(strings.TrimSpace(decl.Property))] = strings.TrimSpace(decl.Value)
	}

	paramPrefixes := make(map[string]bool)
	for _, key := range []string{decoratorKey, fontEffectKey} {
		if typ, ok := declared[key]; ok {
			paramPrefixes[typ+"-"] = true
		}
	}

	instanceDecl := func(typ string) style.DecoratorDeclaration {
		params := make(map[string]property.Property)
		prefix := typ + "-"
		for name, value := range declared {
			if strings.HasPrefix(name, prefix) {
				params[strings.TrimPrefix(name, prefix)] = property.Str(value)
			}
		}
		return style.DecoratorDeclaration{Type: typ, Properties: params}
	}

	for name, value := range declared {
		switch {
		case name == decoratorKey:
			if r.decorators == nil {
				r.decorators = make(map[string]style.DecoratorDeclaration)
			}
			r.decorators[value] = instanceDecl(value)
		case name == fontEffectKey:
			if r.fontEffects == nil {
				r.fontEffects = make(map[string]style.DecoratorDeclaration)
			}
			r.fontEffects[value] = instanceDecl(value)
		case hasParamPrefix(name, paramPrefixes):
			// Consumed as a decorator parameter above.
		default:
			meta := s.registry.Lookup(name)
			if meta == nil {
				errors.Report(&errors.StyleError{
					Op: "sheet.LoadString", Kind: errors.KindParsing, Property: name,
					Err: fmt.Errorf("unregistered property"),
				})
				continue
			}
			parsed, err := property.ParseValue(meta, value)
			if err != nil {
				errors.Report(&errors.StyleError{
					Op: "sheet.LoadString", Kind: errors.KindParsing, Property: name, Err: err,
				})
				continue
			}
			if r.properties == nil {
				r.properties = make(map[string]property.Property)
			}
			r.properties[name] = parsed
		}
	}
}

func hasParamPrefix(name string, prefixes map[string]bool) bool {
	for prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// ResolveDefinition matches the sheet's rules against an element and returns
// the compiled definition for the match set, retained for the caller. The
// definition is shared with every element carrying the same signature.
// Returns nil for elements that expose no query surface or match nothing.
func (s *StyleSheet) ResolveDefinition(el style.Element) *style.Definition {
	q, ok := el.(Queryable)
	if !ok {
		return nil
	}

	matched := make([]*rule, 0, 8)
	for _, r := range s.rules {
		if r.selector.matches(q) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	// Most specific first; source order breaks ties in favor of later
	// rules.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].selector.specificity != matched[j].selector.specificity {
			return matched[i].selector.specificity > matched[j].selector.specificity
		}
		return matched[i].sourceOrder > matched[j].sourceOrder
	})

	signature := matchSignature(matched)
	if def, ok := s.cache[signature]; ok {
		return def.Retain()
	}

	structurallyVolatile := false
	styleRules := make([]style.Rule, len(matched))
	for i, r := range matched {
		styleRules[i] = style.Rule{
			PseudoClasses: r.selector.subject().statePseudoClasses,
			Properties:    r.properties,
			Decorators:    r.decorators,
			FontEffects:   r.fontEffects,
		}
		if r.selector.usesStructure() {
			structurallyVolatile = true
		}
	}

	def := style.NewDefinition(styleRules, s.volatilePseudoClasses, structurallyVolatile, s.decorators, s.fontEffects)
	s.cache[signature] = def
	return def.Retain()
}

// matchSignature keys the cache by the exact ordered match set.
func matchSignature(matched []*rule) string {
	var b strings.Builder
	for i, r := range matched {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(r.sourceOrder))
	}
	return b.String()
}

// Release drops the sheet's own references to every cached definition. Call
// when the sheet is discarded; elements keep their definitions alive through
// their own references.
func (s *StyleSheet) Release() {
	for signature, def := range s.cache {
		def.Release()
		delete(s.cache, signature)
	}
}
