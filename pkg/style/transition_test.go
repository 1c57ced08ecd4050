package style

import (
	"testing"
	"time"

	"github.com/go-drift/styling/pkg/property"
)

func hoverColorDefinition(t *testing.T, registry *property.Registry, transition string) *Definition {
	t.Helper()
	base := ruleProps(registry, "color", "red", "width", "10px")
	if transition != "" {
		base[property.TransitionKey] = mustParse(registry, property.TransitionKey, transition)
	}
	return NewDefinition([]Rule{
		{PseudoClasses: []string{"hover"}, Properties: ruleProps(registry, "color", "blue", "width", "20px")},
		{Properties: base},
	}, nil, false, nil, nil)
}

func TestTransitionInterception(t *testing.T) {
	registry := property.NewRegistry()
	host := &recordingHost{accept: true}
	def := hoverColorDefinition(t, registry, "color 0.2s ease-in")
	el := newTestElement(registry, &staticResolver{def: def}, host)
	el.styleState.UpdateDefinition()
	el.styleState.dirty.Clear()

	el.styleState.SetPseudoClass("hover", true)

	// color was accepted for animation and withheld from the dirty set;
	// width changes too but is uncovered and snaps.
	if len(host.started) != 1 {
		t.Fatalf("started = %d transitions, want 1", len(host.started))
	}
	got := host.started[0]
	if got.name != "color" {
		t.Errorf("transitioned %q, want color", got.name)
	}
	if got.from.Color() != property.RGB(255, 0, 0) || got.to.Color() != property.RGB(0, 0, 255) {
		t.Errorf("from/to = %v/%v", got.from.Color(), got.to.Color())
	}
	if el.styleState.dirty.Contains("color") {
		t.Error("accepted property should not be dirty")
	}
	if !el.styleState.dirty.Contains("width") {
		t.Error("uncovered property should still be dirty")
	}
}

func TestTransitionDeclined(t *testing.T) {
	registry := property.NewRegistry()
	host := &recordingHost{accept: false}
	def := hoverColorDefinition(t, registry, "color 0.2s")
	el := newTestElement(registry, &staticResolver{def: def}, host)
	el.styleState.UpdateDefinition()
	el.styleState.dirty.Clear()

	el.styleState.SetPseudoClass("hover", true)

	if len(host.started) != 1 {
		t.Fatalf("host not consulted")
	}
	if !el.styleState.dirty.Contains("color") {
		t.Error("declined property must snap and stay dirty")
	}
}

func TestTransitionAllForm(t *testing.T) {
	registry := property.NewRegistry()
	host := &recordingHost{accept: true}
	def := hoverColorDefinition(t, registry, "all 0.3s ease")
	el := newTestElement(registry, &staticResolver{def: def}, host)
	el.styleState.UpdateDefinition()
	el.styleState.dirty.Clear()

	el.styleState.SetPseudoClass("hover", true)

	if len(host.started) != 2 {
		t.Fatalf("started = %d, want both changing properties", len(host.started))
	}
	for _, st := range host.started {
		if st.name != "color" && st.name != "width" {
			t.Errorf("unexpected transitioned property %q", st.name)
		}
	}
	if el.styleState.AnyPropertiesDirty() {
		t.Errorf("all accepted, dirty = %v", el.styleState.dirty.List())
	}
}

func TestTransitionSkipsEqualValues(t *testing.T) {
	registry := property.NewRegistry()
	host := &recordingHost{accept: true}
	// The hover branch redeclares the same color; no value change, no offer.
	def := NewDefinition([]Rule{
		{PseudoClasses: []string{"hover"}, Properties: ruleProps(registry, "color", "red")},
		{Properties: ruleProps(registry, "color", "red", property.TransitionKey, "color 1s")},
	}, nil, false, nil, nil)
	el := newTestElement(registry, &staticResolver{def: def}, host)
	el.styleState.UpdateDefinition()
	el.styleState.dirty.Clear()

	el.styleState.SetPseudoClass("hover", true)
	if len(host.started) != 0 {
		t.Errorf("equal values offered for transition: %v", host.started)
	}
}

func TestTransitionNoneAndNoHost(t *testing.T) {
	registry := property.NewRegistry()

	// Declared "none" disables interception entirely.
	host := &recordingHost{accept: true}
	def := hoverColorDefinition(t, registry, "none")
	el := newTestElement(registry, &staticResolver{def: def}, host)
	el.styleState.UpdateDefinition()
	el.styleState.dirty.Clear()
	el.styleState.SetPseudoClass("hover", true)
	if len(host.started) != 0 {
		t.Error("transition none should suppress offers")
	}
	if !el.styleState.dirty.Contains("color") {
		t.Error("color should snap under transition none")
	}

	// Without a host everything snaps.
	def2 := hoverColorDefinition(t, registry, "color 0.2s")
	el2 := newTestElement(registry, &staticResolver{def: def2}, nil)
	el2.styleState.UpdateDefinition()
	el2.styleState.dirty.Clear()
	el2.styleState.SetPseudoClass("hover", true)
	if !el2.styleState.dirty.Contains("color") {
		t.Error("hostless styles must snap")
	}
}

func TestTransitionOnDefinitionSwap(t *testing.T) {
	registry := property.NewRegistry()
	host := &recordingHost{accept: true}
	defA := NewDefinition([]Rule{
		{Properties: ruleProps(registry, "color", "red", "width", "10px", property.TransitionKey, "color 0.2s")},
	}, nil, false, nil, nil)
	defB := NewDefinition([]Rule{
		{Properties: ruleProps(registry, "color", "blue", "width", "20px", property.TransitionKey, "color 0.2s")},
	}, nil, false, nil, nil)

	resolver := &staticResolver{def: defA}
	el := newTestElement(registry, resolver, host)
	el.styleState.UpdateDefinition()
	el.styleState.dirty.Clear()

	resolver.def = defB
	el.styleState.DirtyDefinition()
	el.styleState.UpdateDefinition()

	if len(host.started) != 1 || host.started[0].name != "color" {
		t.Fatalf("started = %+v, want one color transition", host.started)
	}
	got := host.started[0]
	if got.from.Color() != property.RGB(255, 0, 0) || got.to.Color() != property.RGB(0, 0, 255) {
		t.Errorf("from/to = %v/%v", got.from.Color(), got.to.Color())
	}
	if el.styleState.dirty.Contains("color") {
		t.Error("transitioned property should be withheld from the swap's dirty set")
	}
	if !el.styleState.dirty.Contains("width") {
		t.Error("undeclared property in the same swap should snap")
	}
}

func TestTransitionTimingPassedThrough(t *testing.T) {
	registry := property.NewRegistry()
	var seen property.Transition
	host := &funcHost{fn: func(tr property.Transition) bool {
		seen = tr
		return true
	}}
	def := hoverColorDefinition(t, registry, "color 250ms 50ms ease-out")
	el := newTestElement(registry, &staticResolver{def: def}, host)
	el.styleState.UpdateDefinition()
	el.styleState.dirty.Clear()

	el.styleState.SetPseudoClass("hover", true)
	if seen.Duration != 250*time.Millisecond || seen.Delay != 50*time.Millisecond || seen.Curve != "ease-out" {
		t.Errorf("timing = %+v", seen)
	}
}

type funcHost struct {
	fn func(property.Transition) bool
}

func (h *funcHost) StartTransition(_ Element, tr property.Transition, _, _ property.Property) bool {
	return h.fn(tr)
}
