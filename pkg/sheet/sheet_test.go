package sheet

import (
	"testing"

	"github.com/go-drift/styling/pkg/dom"
	"github.com/go-drift/styling/pkg/property"
	"github.com/go-drift/styling/pkg/style"
)

func newTestDocument(t *testing.T, css string) (*dom.Document, *StyleSheet, *property.Registry) {
	t.Helper()
	registry := property.NewRegistry()
	s := New(registry)
	if err := s.LoadString(css); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	t.Cleanup(s.Release)
	return dom.NewDocument(registry, s, nil), s, registry
}

func TestResolveDefinitionSpecificity(t *testing.T) {
	doc, _, _ := newTestDocument(t, `
		div { color: green; width: 1px; }
		.menu { color: red; }
		#nav { color: blue; }
	`)

	div := doc.NewElement("div")
	doc.Root().AppendChild(div)
	div.Style().SetClassNames("menu")
	doc.UpdateStyles(nil)

	// Class beats tag.
	if p, _ := div.Style().GetProperty("color"); p.Color() != property.RGB(255, 0, 0) {
		t.Errorf("color = %v, want class red", p.Color())
	}
	// Width falls through from the tag rule.
	if p, _ := div.Style().GetProperty("width"); p.Float() != 1 {
		t.Errorf("width = %v, want 1", p.Float())
	}

	// ID beats class.
	div.SetID("nav")
	doc.UpdateStyles(nil)
	if p, _ := div.Style().GetProperty("color"); p.Color() != property.RGB(0, 0, 255) {
		t.Errorf("color = %v, want id blue", p.Color())
	}
}

func TestResolveDefinitionSourceOrder(t *testing.T) {
	doc, _, _ := newTestDocument(t, `
		div { width: 1px; }
		div { width: 2px; }
	`)
	div := doc.NewElement("div")
	doc.Root().AppendChild(div)
	doc.UpdateStyles(nil)

	if p, _ := div.Style().GetProperty("width"); p.Float() != 2 {
		t.Errorf("width = %v, later rule should win ties", p.Float())
	}
}

func TestResolveDefinitionSharing(t *testing.T) {
	doc, _, _ := newTestDocument(t, `div.item { color: red; }`)

	a := doc.NewElement("div")
	b := doc.NewElement("div")
	a.Style().SetClassNames("item")
	b.Style().SetClassNames("item")
	doc.Root().AppendChild(a)
	doc.Root().AppendChild(b)
	doc.UpdateStyles(nil)

	if a.Style().Definition() == nil {
		t.Fatal("no definition resolved")
	}
	if a.Style().Definition() != b.Style().Definition() {
		t.Error("identical match sets should share one definition")
	}

	// A different match set gets its own definition.
	c := doc.NewElement("div")
	doc.Root().AppendChild(c)
	doc.UpdateStyles(nil)
	if c.Style().Definition() == a.Style().Definition() {
		t.Error("different match sets must not share")
	}
	if c.Style().Definition() != nil {
		t.Error("no rule matches a classless div")
	}
}

func TestResolveDefinitionPseudoClassBranches(t *testing.T) {
	doc, _, _ := newTestDocument(t, `
		button { color: red; }
		button:hover { color: blue; }
	`)
	button := doc.NewElement("button")
	doc.Root().AppendChild(button)
	doc.UpdateStyles(nil)

	if p, _ := button.Style().GetProperty("color"); p.Color() != property.RGB(255, 0, 0) {
		t.Fatalf("base color = %v", p.Color())
	}

	// The hover branch is part of the same definition: no re-resolution.
	before := button.Style().Definition()
	button.Style().SetPseudoClass("hover", true)
	if p, _ := button.Style().GetProperty("color"); p.Color() != property.RGB(0, 0, 255) {
		t.Errorf("hover color = %v, want blue", p.Color())
	}
	doc.UpdateStyles(nil)
	if button.Style().Definition() != before {
		t.Error("pseudo toggle must not swap the definition")
	}
}

func TestResolveDefinitionDescendantSelectors(t *testing.T) {
	doc, _, _ := newTestDocument(t, `
		div.menu span { color: red; }
	`)
	menu := doc.NewElement("div")
	menu.Style().SetClassNames("menu")
	span := doc.NewElement("span")
	other := doc.NewElement("span")
	doc.Root().AppendChild(menu)
	menu.AppendChild(span)
	doc.Root().AppendChild(other)
	doc.UpdateStyles(nil)

	if p, _ := span.Style().GetProperty("color"); p.Color() != property.RGB(255, 0, 0) {
		t.Errorf("descendant span color = %v", p.Color())
	}
	if other.Style().Definition() != nil {
		t.Error("span outside .menu should match nothing")
	}
}

func TestResolveDefinitionAttributeSelectors(t *testing.T) {
	doc, _, _ := newTestDocument(t, `
		input[type=text] { width: 5px; }
		input[disabled] { opacity: 0.5; }
	`)
	text := doc.NewElement("input")
	text.SetAttribute("type", "text")
	checkbox := doc.NewElement("input")
	checkbox.SetAttribute("type", "checkbox")
	checkbox.SetAttribute("disabled", "")
	doc.Root().AppendChild(text)
	doc.Root().AppendChild(checkbox)
	doc.UpdateStyles(nil)

	if p, _ := text.Style().GetProperty("width"); p.Float() != 5 {
		t.Errorf("text width = %v", p.Float())
	}
	if p, _ := checkbox.Style().GetProperty("opacity"); p.Float() != 0.5 {
		t.Errorf("checkbox opacity = %v", p.Float())
	}
	if p, _ := checkbox.Style().GetProperty("width"); p.Unit == property.UnitPx {
		t.Errorf("checkbox width should not match [type=text], got %v", p)
	}
}

func TestResolveDefinitionStructuralPseudoClasses(t *testing.T) {
	doc, _, _ := newTestDocument(t, `
		li:first-child { color: red; }
		li:last-child { color: blue; }
	`)
	first := doc.NewElement("li")
	middle := doc.NewElement("li")
	last := doc.NewElement("li")
	doc.Root().AppendChild(first)
	doc.Root().AppendChild(middle)
	doc.Root().AppendChild(last)
	doc.UpdateStyles(nil)

	if p, _ := first.Style().GetProperty("color"); p.Color() != property.RGB(255, 0, 0) {
		t.Errorf("first color = %v", p.Color())
	}
	if p, _ := last.Style().GetProperty("color"); p.Color() != property.RGB(0, 0, 255) {
		t.Errorf("last color = %v", p.Color())
	}
	if middle.Style().Definition() != nil {
		t.Error("middle li should match nothing")
	}
	if !first.Style().Definition().IsStructurallyVolatile() {
		t.Error("structural selector should mark the definition volatile")
	}
}

func TestVolatilePseudoClasses(t *testing.T) {
	doc, s, _ := newTestDocument(t, `
		div { display: block; }
		div:hover span { color: blue; }
		span { color: red; }
	`)
	if len(s.volatilePseudoClasses) != 1 || s.volatilePseudoClasses[0] != "hover" {
		t.Fatalf("volatile pseudo classes = %v", s.volatilePseudoClasses)
	}

	div := doc.NewElement("div")
	span := doc.NewElement("span")
	doc.Root().AppendChild(div)
	div.AppendChild(span)
	doc.UpdateStyles(nil)

	if p, _ := span.Style().GetProperty("color"); p.Color() != property.RGB(255, 0, 0) {
		t.Fatalf("initial span color = %v", p.Color())
	}
	if div.Style().Definition().PseudoClassVolatility("hover") != style.VolatilityStructure {
		t.Fatal("hover should be structure-volatile")
	}

	// Hovering the div changes which rules match the span.
	div.Style().SetPseudoClass("hover", true)
	doc.UpdateStyles(nil)
	if p, _ := span.Style().GetProperty("color"); p.Color() != property.RGB(0, 0, 255) {
		t.Errorf("hovered span color = %v, want blue", p.Color())
	}

	div.Style().SetPseudoClass("hover", false)
	doc.UpdateStyles(nil)
	if p, _ := span.Style().GetProperty("color"); p.Color() != property.RGB(255, 0, 0) {
		t.Errorf("unhovered span color = %v, want red", p.Color())
	}
}

func TestDecoratorDeclarations(t *testing.T) {
	registry := property.NewRegistry()
	s := New(registry)
	defer s.Release()

	type gradient struct {
		direction string
	}
	s.Decorators().Register("gradient", func(declared map[string]property.Property) (style.Decorator, error) {
		return &gradient{direction: declared["direction"].String()}, nil
	})

	err := s.LoadString(`
		div {
			color: red;
			decorator: gradient;
			gradient-direction: vertical;
		}
	`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	doc := dom.NewDocument(registry, s, nil)
	div := doc.NewElement("div")
	doc.Root().AppendChild(div)
	doc.UpdateStyles(nil)

	def := div.Style().Definition()
	if def == nil {
		t.Fatal("no definition")
	}
	decorators := def.Decorators(nil)
	g, ok := decorators["gradient"].(*gradient)
	if !ok {
		t.Fatalf("decorators = %v", decorators)
	}
	if g.direction != "vertical" {
		t.Errorf("direction = %q", g.direction)
	}
	// Parameter declarations are not properties.
	if _, ok := div.Style().GetLocalProperty("gradient-direction"); ok {
		t.Error("decorator parameters must not leak as properties")
	}
}

func TestLoadStringSkipsBadInput(t *testing.T) {
	registry := property.NewRegistry()
	s := New(registry)
	defer s.Release()

	err := s.LoadString(`
		a > b { color: red; }
		div { color: notacolor; no-such-prop: 1; width: 4px; }
	`)
	if err != nil {
		t.Fatalf("LoadString should skip bad entries, got %v", err)
	}

	doc := dom.NewDocument(registry, s, nil)
	div := doc.NewElement("div")
	doc.Root().AppendChild(div)
	doc.UpdateStyles(nil)

	if p, _ := div.Style().GetProperty("width"); p.Float() != 4 {
		t.Errorf("width = %v, the good declaration should survive", p.Float())
	}
	if p, _ := div.Style().GetProperty("color"); p.Color() != property.ColorBlack {
		t.Errorf("color = %v, bad declaration should fall back to default", p.Color())
	}
}
