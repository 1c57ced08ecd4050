package style

import (
	"fmt"

	"github.com/go-drift/styling/pkg/errors"
	"github.com/go-drift/styling/pkg/property"
)

// RelativeTarget selects the base quantity a percentage or scalar value
// resolves against. Different properties scale against different bases:
// width percentages against the containing block's width, font-size
// percentages against the parent's font size, and so on.
type RelativeTarget int

// RelativeTarget values.
const (
	RelativeNone RelativeTarget = iota
	RelativeContainingBlockWidth
	RelativeContainingBlockHeight
	RelativeFontSize
	RelativeParentFontSize
	RelativeLineHeight
)

// resolveContext returns the quantities length computation needs on this
// element.
func (s *ElementStyle) resolveContext() computeContext {
	ctx := computeContext{
		fontSize:    DefaultComputedValues.FontSize,
		docFontSize: DefaultComputedValues.FontSize,
		pixelRatio:  1,
	}
	if s.element == nil {
		return ctx
	}
	ctx.fontSize = s.element.ComputedValues().FontSize
	ctx.pixelRatio = s.element.PixelRatio()
	if doc := s.element.OwnerDocument(); doc != nil {
		ctx.docFontSize = doc.ComputedValues().FontSize
	}
	return ctx
}

// ResolveNumberLengthPercentage resolves a number, length or percentage
// value to pixels. Lengths resolve absolutely; numbers and em values scale
// the target base directly and percentages scale it by a hundredth.
//
// Em values are not absolute when the target is the parent font size: there
// they scale the parent's font size like a number, which is the font-size
// property's own semantics.
func (s *ElementStyle) ResolveNumberLengthPercentage(p property.Property, target RelativeTarget) float64 {
	if p.IsZero() {
		errors.Report(&errors.StyleError{
			Op: "style.ResolveNumberLengthPercentage", Kind: errors.KindInternal,
			Err: fmt.Errorf("resolving empty property"),
		})
		return 0
	}

	if p.Unit&property.UnitLength != 0 && !(p.Unit == property.UnitEm && target == RelativeParentFontSize) {
		ctx := s.resolveContext()
		return computeLength(p, &ctx)
	}

	var base float64
	switch target {
	case RelativeNone:
		base = 1
	case RelativeContainingBlockWidth:
		if s.element != nil {
			base, _ = s.element.ContainingBlock()
		}
	case RelativeContainingBlockHeight:
		if s.element != nil {
			_, base = s.element.ContainingBlock()
		}
	case RelativeFontSize:
		if s.element != nil {
			base = s.element.ComputedValues().FontSize
		}
	case RelativeParentFontSize:
		if s.element != nil && s.element.Parent() != nil {
			base = s.element.Parent().ComputedValues().FontSize
		}
	case RelativeLineHeight:
		if s.element != nil {
			base = s.element.LineHeight()
		}
	}

	var scale float64
	switch p.Unit {
	case property.UnitEm, property.UnitNumber:
		scale = p.Float()
	case property.UnitPercent:
		scale = p.Float() * 0.01
	}

	return base * scale
}

// ResolveLengthPercentage resolves a length or percentage value to pixels,
// scaling percentages against the supplied base value. Callers must supply a
// length-percent property; anything else is a precondition violation.
func (s *ElementStyle) ResolveLengthPercentage(p property.Property, base float64) float64 {
	if p.IsZero() || p.Unit&(property.UnitLengthPercent) == 0 {
		errors.Report(&errors.StyleError{
			Op: "style.ResolveLengthPercentage", Kind: errors.KindInternal,
			Err: fmt.Errorf("resolving non-length property %v", p),
		})
		return 0
	}
	ctx := s.resolveContext()
	computed := computeLengthPercentage(p, &ctx)
	if computed.Type == LengthPercentagePercent {
		return computed.Value * 0.01 * base
	}
	return computed.Value
}
