// Package dom provides a minimal element tree for the styling engine and
// the update driver that walks it.
//
// The tree carries only what style resolution consumes: tag/id/class/
// attribute state, parent/child navigation, per-element computed values and
// the dirtying hooks. Layout and rendering live elsewhere.
package dom

import (
	"github.com/go-drift/styling/pkg/property"
	"github.com/go-drift/styling/pkg/style"
)

// Document is the root of an element tree. It owns the shared resolution
// collaborators: the property registry, the rule resolver and the transition
// host.
type Document struct {
	registry *property.Registry
	resolver style.DefinitionResolver
	host     style.TransitionHost

	root       *Element
	pixelRatio float64

	// Width and Height are the default containing block for elements
	// without an explicit one.
	Width  float64
	Height float64
}

// NewDocument creates a document with the given collaborators. resolver and
// host may be nil. The root element is created immediately with tag "body".
func NewDocument(registry *property.Registry, resolver style.DefinitionResolver, host style.TransitionHost) *Document {
	doc := &Document{
		registry:   registry,
		resolver:   resolver,
		host:       host,
		pixelRatio: 1,
	}
	doc.root = doc.newElement("body")
	return doc
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// PixelRatio returns the density-independent pixel ratio in effect.
func (d *Document) PixelRatio() float64 {
	return d.pixelRatio
}

// SetPixelRatio changes the density-independent pixel ratio and dirties
// every dp-relative property in the tree.
func (d *Document) SetPixelRatio(ratio float64) {
	if ratio == d.pixelRatio {
		return
	}
	d.pixelRatio = ratio
	d.root.Style().DirtyDpProperties()
}

// DirtyRemProperties dirties every rem-relative property in the tree. Call
// after changing the document's base font size.
func (d *Document) DirtyRemProperties() {
	d.root.Style().DirtyRemProperties()
}

// NewElement creates a detached element owned by this document.
func (d *Document) NewElement(tag string) *Element {
	return d.newElement(tag)
}

func (d *Document) newElement(tag string) *Element {
	el := &Element{
		tag:      tag,
		document: d,
		computed: style.DefaultComputedValues,

		valuesAreDefaultInitialized: true,
	}
	el.styleState = style.NewElementStyle(d.registry, el, d.resolver, d.host)
	return el
}

// UpdateStyles runs one style update pass: a pre-order walk resolving
// definitions and computing values, parents strictly before children so
// inherited copies are fresh. visit, if non-nil, receives every element
// whose values were recomputed along with the dirty set that was applied.
func (d *Document) UpdateStyles(visit func(el *Element, applied style.DirtySet)) {
	d.updateElement(d.root, nil, visit)
}

func (d *Document) updateElement(el *Element, parentValues *style.ComputedValues, visit func(*Element, style.DirtySet)) {
	el.styleState.UpdateDefinition()

	docValues := d.root.ComputedValues()
	applied := el.styleState.ComputeValues(&el.computed, parentValues, docValues, el.valuesAreDefaultInitialized, d.pixelRatio)
	el.valuesAreDefaultInitialized = false
	if !applied.Empty() && visit != nil {
		visit(el, applied)
	}

	for _, child := range el.children {
		d.updateElement(child, &el.computed, visit)
	}
}

// Element is one node of the tree. It implements style.Element.
type Element struct {
	tag        string
	id         string
	attributes map[string]string

	document *Document
	parent   *Element
	children []*Element

	styleState *style.ElementStyle
	computed   style.ComputedValues

	valuesAreDefaultInitialized bool

	containingBlockWidth  float64
	containingBlockHeight float64
	hasContainingBlock    bool

	fontDirty       bool
	decoratorsDirty bool
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.tag
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	return e.id
}

// SetID changes the element's id and re-resolves the subtree's definitions.
func (e *Element) SetID(id string) {
	if e.id == id {
		return
	}
	e.id = id
	e.styleState.DirtyDefinition()
}

// Attribute returns a named attribute value.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attributes[name]
	return v, ok
}

// SetAttribute sets a named attribute and re-resolves the subtree's
// definitions, since attribute selectors may match differently.
func (e *Element) SetAttribute(name, value string) {
	if e.attributes == nil {
		e.attributes = make(map[string]string)
	}
	if old, ok := e.attributes[name]; ok && old == value {
		return
	}
	e.attributes[name] = value
	e.styleState.DirtyDefinition()
}

// AppendChild attaches a detached element as the last child.
func (e *Element) AppendChild(child *Element) {
	child.parent = e
	e.children = append(e.children, child)
	// Matching can depend on ancestors and siblings; resolve the new
	// subtree from scratch.
	child.styleState.DirtyDefinition()
}

// RemoveChild detaches a child, releasing its subtree's definition
// references.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			child.releaseSubtree()
			return
		}
	}
}

func (e *Element) releaseSubtree() {
	e.styleState.Release()
	for _, child := range e.children {
		child.releaseSubtree()
	}
}

// SetContainingBlock overrides the containing block dimensions layout has
// determined for this element.
func (e *Element) SetContainingBlock(width, height float64) {
	e.containingBlockWidth = width
	e.containingBlockHeight = height
	e.hasContainingBlock = true
}

// --- style.Element -------------------------------------------------------

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() style.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// Child returns the i-th child.
func (e *Element) Child(i int) style.Element {
	return e.children[i]
}

// OwnerDocument returns the document's root element.
func (e *Element) OwnerDocument() style.Element {
	if e.document == nil || e.document.root == nil {
		return nil
	}
	return e.document.root
}

// Style returns the element's style state.
func (e *Element) Style() *style.ElementStyle {
	return e.styleState
}

// ComputedValues returns the element's resolved value record.
func (e *Element) ComputedValues() *style.ComputedValues {
	return &e.computed
}

// ContainingBlock returns the dimensions percentages resolve against: the
// explicit override if layout set one, else the document dimensions.
func (e *Element) ContainingBlock() (width, height float64) {
	if e.hasContainingBlock {
		return e.containingBlockWidth, e.containingBlockHeight
	}
	return e.document.Width, e.document.Height
}

// LineHeight returns the element's resolved line height.
func (e *Element) LineHeight() float64 {
	return e.computed.LineHeight.Value
}

// PixelRatio returns the document's pixel ratio.
func (e *Element) PixelRatio() float64 {
	return e.document.pixelRatio
}

// DirtyFont flags the element's font state for rebuilding.
func (e *Element) DirtyFont() {
	e.fontDirty = true
}

// DirtyDecorators flags the element's decorators for re-evaluation.
func (e *Element) DirtyDecorators(structuralChange bool) {
	e.decoratorsDirty = true
	if structuralChange {
		for _, child := range e.children {
			child.DirtyDecorators(true)
		}
	}
}

// FontDirty reports and clears the font-dirty flag.
func (e *Element) FontDirty() bool {
	dirty := e.fontDirty
	e.fontDirty = false
	return dirty
}

// DecoratorsDirty reports and clears the decorators-dirty flag.
func (e *Element) DecoratorsDirty() bool {
	dirty := e.decoratorsDirty
	e.decoratorsDirty = false
	return dirty
}
