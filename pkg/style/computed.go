package style

import "github.com/go-drift/styling/pkg/property"

// Enumerations for computed keyword values. The numeric values match the
// keyword table indices registered in the property package so conversion is
// a cast.

// Display is the computed display mode.
type Display uint8

// Display values.
const (
	DisplayNone Display = iota
	DisplayBlock
	DisplayInline
	DisplayInlineBlock
)

// Position is the computed positioning scheme.
type Position uint8

// Position values.
const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

// Overflow is the computed overflow behavior per axis.
type Overflow uint8

// Overflow values.
const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowAuto
	OverflowScroll
)

// Visibility is the computed visibility.
type Visibility uint8

// Visibility values.
const (
	VisibilityVisible Visibility = iota
	VisibilityHidden
)

// FontStyle is the computed font slant.
type FontStyle uint8

// FontStyle values.
const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

// FontWeight is the computed font weight.
type FontWeight uint8

// FontWeight values.
const (
	FontWeightNormal FontWeight = iota
	FontWeightBold
)

// TextAlign is the computed text alignment.
type TextAlign uint8

// TextAlign values.
const (
	TextAlignLeft TextAlign = iota
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
)

// WhiteSpace is the computed whitespace handling.
type WhiteSpace uint8

// WhiteSpace values.
const (
	WhiteSpaceNormal WhiteSpace = iota
	WhiteSpacePre
	WhiteSpaceNowrap
	WhiteSpacePreWrap
	WhiteSpacePreLine
)

// PointerEvents is the computed pointer-event handling.
type PointerEvents uint8

// PointerEvents values.
const (
	PointerEventsAuto PointerEvents = iota
	PointerEventsNone
)

// LengthPercentageType discriminates LengthPercentage values.
type LengthPercentageType uint8

// LengthPercentage kinds. Auto only occurs in LengthPercentageAuto fields.
const (
	LengthPercentageLength LengthPercentageType = iota
	LengthPercentagePercent
	LengthPercentageAutoKind
)

// LengthPercentage is a computed value that is either an absolute pixel
// length or a percentage left for layout to resolve against its base.
type LengthPercentage struct {
	Type  LengthPercentageType
	Value float64 // pixels for Length, 0-100 for Percent
}

// Length constructs an absolute LengthPercentage.
func Length(px float64) LengthPercentage {
	return LengthPercentage{Type: LengthPercentageLength, Value: px}
}

// LengthPercentageAuto additionally admits the auto keyword.
type LengthPercentageAuto struct {
	Type  LengthPercentageType
	Value float64
}

// Auto constructs the auto value.
func Auto() LengthPercentageAuto {
	return LengthPercentageAuto{Type: LengthPercentageAutoKind}
}

// IsAuto reports whether the value is the auto keyword.
func (l LengthPercentageAuto) IsAuto() bool {
	return l.Type == LengthPercentageAutoKind
}

// ZIndex is the computed z-index: auto or a number.
type ZIndex struct {
	Auto  bool
	Value float64
}

// LineHeightInheritType discriminates how a line-height propagates to
// children.
type LineHeightInheritType uint8

const (
	// LineHeightInheritNumber propagates a multiplier applied to each
	// child's own font size.
	LineHeightInheritNumber LineHeightInheritType = iota
	// LineHeightInheritLength propagates the resolved pixel length.
	LineHeightInheritLength
)

// LineHeight is the computed line height. Numeric and percentage
// declarations inherit as a factor of the inheriting element's font size;
// length declarations inherit their resolved length directly.
type LineHeight struct {
	// Value is the resolved pixel height for this element.
	Value float64
	// InheritType selects how children inherit this value.
	InheritType LineHeightInheritType
	// InheritValue is the multiplier for number-type inheritance.
	InheritValue float64
}

// VerticalAlignType is the kind of computed vertical alignment.
type VerticalAlignType uint8

// VerticalAlign kinds. Length covers resolved length and percentage
// declarations.
const (
	VerticalAlignBaseline VerticalAlignType = iota
	VerticalAlignMiddle
	VerticalAlignTop
	VerticalAlignBottom
	VerticalAlignSub
	VerticalAlignSuper
	VerticalAlignLength
)

// VerticalAlign is the computed vertical alignment.
type VerticalAlign struct {
	Type VerticalAlignType
	// Value is the pixel offset for VerticalAlignLength.
	Value float64
}

// ClipType is the kind of computed clipping.
type ClipType uint8

// Clip kinds.
const (
	ClipAuto ClipType = iota
	ClipNone
	ClipAlways
	ClipNumber
)

// Clip is the computed clipping mode; Depth counts ancestor levels for
// ClipNumber.
type Clip struct {
	Type  ClipType
	Depth int
}

// ComputedValues is the fully resolved, absolute, typed per-property record
// produced by resolution and consumed by layout. One record persists per
// element and is updated in place across recomputations.
type ComputedValues struct {
	MarginTop    LengthPercentageAuto
	MarginRight  LengthPercentageAuto
	MarginBottom LengthPercentageAuto
	MarginLeft   LengthPercentageAuto

	PaddingTop    LengthPercentage
	PaddingRight  LengthPercentage
	PaddingBottom LengthPercentage
	PaddingLeft   LengthPercentage

	BorderTopWidth    float64
	BorderRightWidth  float64
	BorderBottomWidth float64
	BorderLeftWidth   float64

	BorderTopColor    property.Color
	BorderRightColor  property.Color
	BorderBottomColor property.Color
	BorderLeftColor   property.Color

	Display  Display
	Position Position
	Top      LengthPercentageAuto
	Right    LengthPercentageAuto
	Bottom   LengthPercentageAuto
	Left     LengthPercentageAuto
	ZIndex   ZIndex

	Width     LengthPercentageAuto
	MinWidth  LengthPercentage
	MaxWidth  LengthPercentageAuto
	Height    LengthPercentageAuto
	MinHeight LengthPercentage
	MaxHeight LengthPercentageAuto

	LineHeight    LineHeight
	VerticalAlign VerticalAlign

	OverflowX  Overflow
	OverflowY  Overflow
	Clip       Clip
	Visibility Visibility

	BackgroundColor property.Color
	Color           property.Color
	ImageColor      property.Color
	Opacity         float64

	FontFamily string
	FontStyle  FontStyle
	FontWeight FontWeight
	FontSize   float64

	TextAlign     TextAlign
	WhiteSpace    WhiteSpace
	Cursor        string
	PointerEvents PointerEvents

	ScrollbarMargin float64

	Transition property.TransitionList

	// Custom holds raw values of registered custom properties, keyed by
	// name. These have no typed field; consumers interpret them.
	Custom map[string]property.Property
}

// DefaultComputedValues is the baseline record every from-scratch recompute
// starts from. It mirrors the registry defaults for a 12px root font.
var DefaultComputedValues = ComputedValues{
	MarginTop:    LengthPercentageAuto{},
	MarginRight:  LengthPercentageAuto{},
	MarginBottom: LengthPercentageAuto{},
	MarginLeft:   LengthPercentageAuto{},

	Display:  DisplayInline,
	Position: PositionStatic,
	Top:      Auto(),
	Right:    Auto(),
	Bottom:   Auto(),
	Left:     Auto(),
	ZIndex:   ZIndex{Auto: true},

	Width:     Auto(),
	MaxWidth:  Auto(),
	Height:    Auto(),
	MaxHeight: Auto(),

	LineHeight: LineHeight{Value: 12 * 1.2, InheritType: LineHeightInheritNumber, InheritValue: 1.2},

	BackgroundColor: property.ColorTransparent,
	Color:           property.ColorBlack,
	ImageColor:      property.ColorWhite,
	Opacity:         1,

	FontSize: 12,

	Transition: property.TransitionList{None: true},
}
