package style

import (
	"github.com/go-drift/styling/pkg/property"
)

// testElement is a minimal tree node for exercising the engine without the
// dom package.
type testElement struct {
	parent   *testElement
	children []*testElement
	document *testElement

	styleState *ElementStyle
	computed   ComputedValues

	cbWidth, cbHeight float64
	pixelRatio        float64

	fontDirtyCount       int
	decoratorsDirtyCount int
	structuralDirty      bool
}

func newTestElement(registry *property.Registry, resolver DefinitionResolver, host TransitionHost) *testElement {
	el := &testElement{
		computed:   DefaultComputedValues,
		cbWidth:    1000,
		cbHeight:   500,
		pixelRatio: 1,
	}
	el.document = el
	el.styleState = NewElementStyle(registry, el, resolver, host)
	return el
}

func (e *testElement) appendChild(registry *property.Registry, resolver DefinitionResolver, host TransitionHost) *testElement {
	child := newTestElement(registry, resolver, host)
	child.parent = e
	child.document = e.document
	e.children = append(e.children, child)
	return child
}

func (e *testElement) Parent() Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *testElement) NumChildren() int    { return len(e.children) }
func (e *testElement) Child(i int) Element { return e.children[i] }

func (e *testElement) OwnerDocument() Element {
	if e.document == nil {
		return nil
	}
	return e.document
}

func (e *testElement) Style() *ElementStyle            { return e.styleState }
func (e *testElement) ComputedValues() *ComputedValues { return &e.computed }

func (e *testElement) ContainingBlock() (float64, float64) { return e.cbWidth, e.cbHeight }
func (e *testElement) LineHeight() float64                 { return e.computed.LineHeight.Value }
func (e *testElement) PixelRatio() float64                 { return e.pixelRatio }

func (e *testElement) DirtyFont() { e.fontDirtyCount++ }

func (e *testElement) DirtyDecorators(structuralChange bool) {
	e.decoratorsDirtyCount++
	if structuralChange {
		e.structuralDirty = true
	}
}

// compute runs one parent-before-children value pass over the subtree.
func (e *testElement) compute(pixelRatio float64) {
	var parentValues *ComputedValues
	if e.parent != nil {
		parentValues = &e.parent.computed
	}
	var docValues *ComputedValues
	if e.document != nil {
		docValues = &e.document.computed
	}
	e.styleState.ComputeValues(&e.computed, parentValues, docValues, false, pixelRatio)
	for _, child := range e.children {
		child.compute(pixelRatio)
	}
}

// staticResolver returns the same definition for every element.
type staticResolver struct {
	def *Definition
}

func (r *staticResolver) ResolveDefinition(Element) *Definition {
	return r.def.Retain()
}

// recordingHost records transition offers and accepts or declines them all.
type recordingHost struct {
	accept  bool
	started []startedTransition
}

type startedTransition struct {
	name     string
	from, to property.Property
}

func (h *recordingHost) StartTransition(el Element, tr property.Transition, from, to property.Property) bool {
	h.started = append(h.started, startedTransition{name: tr.Name, from: from, to: to})
	return h.accept
}

// mustParse parses a declaration against the registry or fails hard.
func mustParse(registry *property.Registry, name, value string) property.Property {
	meta := registry.Lookup(name)
	if meta == nil {
		panic("unregistered property " + name)
	}
	p, err := property.ParseValue(meta, value)
	if err != nil {
		panic(err)
	}
	return p
}

// ruleProps builds a rule property map from name/value declaration pairs.
func ruleProps(registry *property.Registry, pairs ...string) map[string]property.Property {
	if len(pairs)%2 != 0 {
		panic("ruleProps needs name/value pairs")
	}
	m := make(map[string]property.Property, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i]] = mustParse(registry, pairs[i], pairs[i+1])
	}
	return m
}
