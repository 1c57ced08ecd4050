package style

import (
	"testing"

	"github.com/go-drift/styling/pkg/property"
)

func TestGetPropertyPrecedence(t *testing.T) {
	registry := property.NewRegistry()
	def := NewDefinition([]Rule{
		{Properties: ruleProps(registry, "color", "red", "width", "10px")},
	}, nil, false, nil, nil)
	el := newTestElement(registry, &staticResolver{def: def}, nil)
	el.styleState.UpdateDefinition()

	// Local override beats the definition.
	if err := el.styleState.SetProperty("color", "blue"); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if p, _ := el.styleState.GetProperty("color"); p.Color() != property.RGB(0, 0, 255) {
		t.Errorf("color = %v, want local blue", p.Color())
	}

	// Unshadowed names read the definition.
	if p, _ := el.styleState.GetProperty("width"); p.Float() != 10 {
		t.Errorf("width = %v, want 10", p.Float())
	}

	// Removing the override falls back to the definition.
	el.styleState.RemoveProperty("color")
	if p, _ := el.styleState.GetProperty("color"); p.Color() != property.RGB(255, 0, 0) {
		t.Errorf("color after remove = %v, want red", p.Color())
	}

	// Undeclared names fall back to the registry default.
	if p, _ := el.styleState.GetProperty("display"); p.KeywordIndex() != property.DisplayInline {
		t.Errorf("display = %v, want default inline", p)
	}
}

func TestGetPropertyInheritance(t *testing.T) {
	registry := property.NewRegistry()
	root := newTestElement(registry, nil, nil)
	middle := root.appendChild(registry, nil, nil)
	leaf := middle.appendChild(registry, nil, nil)

	root.styleState.SetProperty("color", "red")

	// Inherited names read the nearest ancestor's local value.
	if p, _ := leaf.styleState.GetProperty("color"); p.Color() != property.RGB(255, 0, 0) {
		t.Errorf("leaf color = %v, want inherited red", p.Color())
	}

	// A nearer ancestor shadows a farther one.
	middle.styleState.SetProperty("color", "blue")
	if p, _ := leaf.styleState.GetProperty("color"); p.Color() != property.RGB(0, 0, 255) {
		t.Errorf("leaf color = %v, want middle blue", p.Color())
	}

	// Non-inherited names skip ancestors and take the default.
	root.styleState.SetProperty("width", "40px")
	if p, _ := leaf.styleState.GetProperty("width"); p.KeywordIndex() != property.KeywordAuto {
		t.Errorf("leaf width = %v, want default auto", p)
	}

	// GetLocalProperty never consults ancestors.
	if _, ok := leaf.styleState.GetLocalProperty("color"); ok {
		t.Error("GetLocalProperty should not inherit")
	}
}

func TestSetPropertyErrors(t *testing.T) {
	registry := property.NewRegistry()
	el := newTestElement(registry, nil, nil)
	el.styleState.dirty.Clear()

	if err := el.styleState.SetProperty("no-such-property", "1px"); err == nil {
		t.Error("expected error for unregistered property")
	}
	if err := el.styleState.SetProperty("width", "bogus"); err == nil {
		t.Error("expected error for malformed value")
	}
	// Failed sets leave no override and no dirt behind.
	if el.styleState.LocalProperties() != nil {
		t.Error("failed SetProperty should not create overrides")
	}
	if el.styleState.AnyPropertiesDirty() {
		t.Error("failed SetProperty should not dirty anything")
	}

	if err := el.styleState.SetProperty("width", "5px"); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if !el.styleState.AnyPropertiesDirty() {
		t.Error("successful SetProperty should dirty the property")
	}
}

func TestClasses(t *testing.T) {
	registry := property.NewRegistry()
	el := newTestElement(registry, nil, nil)

	el.styleState.SetClass("menu", true)
	el.styleState.SetClass("menu", true)
	el.styleState.SetClass("wide", true)
	if !el.styleState.IsClassSet("menu") || !el.styleState.IsClassSet("wide") {
		t.Error("classes not set")
	}
	if got := el.styleState.GetClassNames(); got != "menu wide" {
		t.Errorf("GetClassNames = %q", got)
	}

	el.styleState.SetClass("menu", false)
	if el.styleState.IsClassSet("menu") {
		t.Error("class not removed")
	}

	el.styleState.SetClassNames("a b c")
	if got := len(el.styleState.Classes()); got != 3 {
		t.Errorf("Classes len = %d", got)
	}
}

func TestSetPseudoClassDelta(t *testing.T) {
	registry := property.NewRegistry()
	def := NewDefinition([]Rule{
		{PseudoClasses: []string{"hover"}, Properties: ruleProps(registry, "color", "blue")},
		{Properties: ruleProps(registry, "color", "red", "width", "10px")},
	}, nil, false, nil, nil)
	el := newTestElement(registry, &staticResolver{def: def}, nil)
	el.styleState.UpdateDefinition()
	el.styleState.dirty.Clear()

	el.styleState.SetPseudoClass("hover", true)

	if !el.styleState.IsPseudoClassSet("hover") {
		t.Fatal("hover not active")
	}
	if !el.styleState.dirty.Contains("color") {
		t.Error("color should be dirty after hover")
	}
	if el.styleState.dirty.Contains("width") {
		t.Error("width has no hover branch and should stay clean")
	}
	if p, _ := el.styleState.GetProperty("color"); p.Color() != property.RGB(0, 0, 255) {
		t.Errorf("hover color = %v, want blue", p.Color())
	}

	// Deactivating resolves back to the base value.
	el.styleState.dirty.Clear()
	el.styleState.SetPseudoClass("hover", false)
	if !el.styleState.dirty.Contains("color") {
		t.Error("color should be dirty after unhover")
	}
	if p, _ := el.styleState.GetProperty("color"); p.Color() != property.RGB(255, 0, 0) {
		t.Errorf("base color = %v, want red", p.Color())
	}

	// Removing an inactive pseudo-class is a no-op.
	el.styleState.dirty.Clear()
	el.styleState.SetPseudoClass("hover", false)
	if el.styleState.AnyPropertiesDirty() {
		t.Error("redundant deactivation should not dirty")
	}
}

func TestSetPseudoClassVolatility(t *testing.T) {
	registry := property.NewRegistry()
	effects := NewFactoryRegistry()
	effects.Register("shadow", func(map[string]property.Property) (Decorator, error) { return struct{}{}, nil })
	def := NewDefinition([]Rule{
		{PseudoClasses: []string{"hover"}, FontEffects: map[string]DecoratorDeclaration{"glow": {Type: "shadow"}}},
		{Properties: ruleProps(registry, "color", "red")},
	}, []string{"checked"}, false, NewFactoryRegistry(), effects)

	el := newTestElement(registry, &staticResolver{def: def}, nil)
	child := el.appendChild(registry, &staticResolver{def: def}, nil)
	el.styleState.UpdateDefinition()
	child.styleState.UpdateDefinition()

	el.styleState.SetPseudoClass("hover", true)
	if el.fontDirtyCount != 1 {
		t.Errorf("fontDirtyCount = %d, want 1", el.fontDirtyCount)
	}

	el.styleState.SetPseudoClass("checked", true)
	if !child.styleState.definitionDirty {
		t.Error("structure-volatile toggle should dirty child definitions")
	}
	if el.decoratorsDirtyCount == 0 {
		t.Error("pseudo toggles should dirty decorators")
	}
}

func TestUpdateDefinition(t *testing.T) {
	registry := property.NewRegistry()
	defA := NewDefinition([]Rule{{Properties: ruleProps(registry, "color", "red")}}, nil, false, nil, nil)
	defB := NewDefinition([]Rule{{Properties: ruleProps(registry, "width", "7px")}}, nil, false, nil, nil)

	resolver := &staticResolver{def: defA}
	el := newTestElement(registry, resolver, nil)

	el.styleState.UpdateDefinition()
	if el.styleState.Definition() != defA {
		t.Fatal("definition not adopted")
	}
	// The test's construction ref plus the element's adopted ref.
	if defA.refCount() != 2 {
		t.Errorf("defA refCount = %d, want 2", defA.refCount())
	}

	// A clean element does not re-resolve.
	el.styleState.UpdateDefinition()
	if defA.refCount() != 2 {
		t.Errorf("redundant update changed refCount to %d", defA.refCount())
	}

	// Same definition resolved again: redundant reference released.
	el.styleState.DirtyDefinition()
	el.styleState.UpdateDefinition()
	if defA.refCount() != 2 {
		t.Errorf("identical re-resolution refCount = %d, want 2", defA.refCount())
	}

	// Definition swap: both old and new names land in the dirty set and
	// the old reference is dropped.
	el.styleState.dirty.Clear()
	el.structuralDirty = false
	resolver.def = defB
	el.styleState.DirtyDefinition()
	el.styleState.UpdateDefinition()

	if el.styleState.Definition() != defB {
		t.Fatal("definition not swapped")
	}
	if defA.refCount() != 1 {
		t.Errorf("old definition refCount = %d, want 1", defA.refCount())
	}
	if !el.styleState.dirty.Contains("color") || !el.styleState.dirty.Contains("width") {
		t.Errorf("swap dirty = %v", el.styleState.dirty.List())
	}
	if !el.structuralDirty {
		t.Error("definition swap should dirty decorators structurally")
	}
}

func TestUpdateDefinitionNilResolution(t *testing.T) {
	registry := property.NewRegistry()

	// No resolver: resolution yields nil, which still forces decorator
	// re-evaluation.
	el := newTestElement(registry, nil, nil)
	el.styleState.UpdateDefinition()
	if el.styleState.Definition() != nil {
		t.Fatal("definition should stay nil without a resolver")
	}
	if !el.structuralDirty {
		t.Error("nil resolution should dirty decorators structurally")
	}

	// Dropping an existing definition to nil releases it and dirties both
	// the affected names and the decorators.
	def := NewDefinition([]Rule{{Properties: ruleProps(registry, "color", "red")}}, nil, false, nil, nil)
	resolver := &nilAfterFirstResolver{def: def}
	el2 := newTestElement(registry, resolver, nil)
	el2.styleState.UpdateDefinition()
	if el2.styleState.Definition() != def {
		t.Fatal("definition not adopted")
	}
	el2.styleState.dirty.Clear()
	el2.structuralDirty = false

	el2.styleState.DirtyDefinition()
	el2.styleState.UpdateDefinition()
	if el2.styleState.Definition() != nil {
		t.Fatal("definition should be dropped")
	}
	if def.refCount() != 1 {
		t.Errorf("dropped definition refCount = %d, want 1", def.refCount())
	}
	if !el2.styleState.dirty.Contains("color") {
		t.Errorf("drop dirty = %v, missing color", el2.styleState.dirty.List())
	}
	if !el2.structuralDirty {
		t.Error("dropping the definition should dirty decorators structurally")
	}
}

// nilAfterFirstResolver resolves the definition once, then nothing.
type nilAfterFirstResolver struct {
	def      *Definition
	resolved bool
}

func (r *nilAfterFirstResolver) ResolveDefinition(Element) *Definition {
	if r.resolved {
		return nil
	}
	r.resolved = true
	return r.def.Retain()
}

func TestIterateShadowing(t *testing.T) {
	registry := property.NewRegistry()
	def := NewDefinition([]Rule{
		{Properties: ruleProps(registry, "color", "red", "width", "10px")},
	}, nil, false, nil, nil)
	el := newTestElement(registry, &staticResolver{def: def}, nil)
	el.styleState.UpdateDefinition()
	el.styleState.SetProperty("color", "blue")

	seen := make(map[string]property.Property)
	for it := el.styleState.Iterate(); ; {
		name, p, ok := it.Next()
		if !ok {
			break
		}
		if _, dup := seen[name]; dup {
			t.Errorf("name %q yielded twice", name)
		}
		seen[name] = p
	}

	if seen["color"].Color() != property.RGB(0, 0, 255) {
		t.Errorf("iterated color = %v, want local blue", seen["color"].Color())
	}
	if seen["width"].Float() != 10 {
		t.Errorf("iterated width = %v", seen["width"].Float())
	}
}
