package style

import "github.com/go-drift/styling/pkg/property"

// Element is the navigation and notification surface the engine consumes
// from the element tree. The tree itself lives outside this package; only
// structure, computed-value storage and a few dirtying hooks are required.
type Element interface {
	// Parent returns the parent element, or nil at the root.
	Parent() Element
	// NumChildren returns the number of child elements.
	NumChildren() int
	// Child returns the i-th child element.
	Child(i int) Element
	// OwnerDocument returns the document root element, or nil if detached.
	OwnerDocument() Element

	// Style returns the element's style state.
	Style() *ElementStyle
	// ComputedValues returns the element's resolved value record. It
	// persists across recomputations and is updated in place.
	ComputedValues() *ComputedValues

	// ContainingBlock returns the dimensions percentages of box properties
	// resolve against.
	ContainingBlock() (width, height float64)
	// LineHeight returns the element's current line height in pixels.
	LineHeight() float64
	// PixelRatio returns the density-independent pixel ratio in effect for
	// this element.
	PixelRatio() float64

	// DirtyFont tells the element its font state may have changed.
	DirtyFont()
	// DirtyDecorators tells the element its decorators must be re-evaluated.
	// structuralChange is set when the definition itself was swapped.
	DirtyDecorators(structuralChange bool)
}

// DefinitionResolver matches an element's tag/id/class/attribute state
// against style rules and returns the compiled definition, retained for the
// caller. It may return a definition shared with other elements, the
// element's current definition (a redundant reference the caller releases),
// or nil when nothing matches.
type DefinitionResolver interface {
	ResolveDefinition(el Element) *Definition
}

// TransitionHost is the entry point of the animation subsystem. The engine
// hands over properties whose value change is covered by the element's
// transition declaration; an accepted property is animated instead of
// snapping to its new value.
type TransitionHost interface {
	// StartTransition begins animating one property from one value to
	// another. It returns false to decline, in which case the value is
	// applied immediately.
	StartTransition(el Element, tr property.Transition, from, to property.Property) bool
}
