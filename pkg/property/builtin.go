package property

// Names of properties the engine dispatches on directly.
const (
	FontSize      = "font-size"
	LineHeight    = "line-height"
	VerticalAlign = "vertical-align"
	TransitionKey = "transition"
)

// Display keyword indices.
const (
	DisplayNone = iota
	DisplayBlock
	DisplayInline
	DisplayInlineBlock
)

// Position keyword indices.
const (
	PositionStatic = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

// Overflow keyword indices.
const (
	OverflowVisible = iota
	OverflowHidden
	OverflowAuto
	OverflowScroll
)

// Visibility keyword indices.
const (
	VisibilityVisible = iota
	VisibilityHidden
)

// Font style keyword indices.
const (
	FontStyleNormal = iota
	FontStyleItalic
)

// Font weight keyword indices.
const (
	FontWeightNormal = iota
	FontWeightBold
)

// Text align keyword indices.
const (
	TextAlignLeft = iota
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
)

// White space keyword indices.
const (
	WhiteSpaceNormal = iota
	WhiteSpacePre
	WhiteSpaceNowrap
	WhiteSpacePreWrap
	WhiteSpacePreLine
)

// Pointer events keyword indices.
const (
	PointerEventsAuto = iota
	PointerEventsNone
)

// Vertical align keyword indices. Length and percentage values are also
// accepted; the keyword form covers the named alignments.
const (
	VerticalAlignBaseline = iota
	VerticalAlignMiddle
	VerticalAlignTop
	VerticalAlignBottom
	VerticalAlignSub
	VerticalAlignSuper
)

// Clip keyword indices. A numeric value clips to that many ancestor levels.
const (
	ClipAuto = iota
	ClipNone
	ClipAlways
)

// KeywordAuto is the keyword index for the generic "auto"/"none" keyword on
// box properties (margins, dimensions, z-index).
const KeywordAuto = 0

func registerBuiltins(r *Registry) {
	auto := map[string]int{"auto": KeywordAuto}
	none := map[string]int{"none": KeywordAuto}

	box := func(name string, def Property, units Unit, keywords map[string]int) {
		r.mustRegister(Definition{Name: name, Units: units, Default: def, Keywords: keywords})
	}
	inheritedProp := func(name string, def Property, units Unit, keywords map[string]int) {
		r.mustRegister(Definition{Name: name, Inherited: true, Units: units, Default: def, Keywords: keywords})
	}

	for _, side := range []string{"top", "right", "bottom", "left"} {
		box("margin-"+side, Px(0), UnitLengthPercent|UnitKeyword, auto)
		box("padding-"+side, Px(0), UnitLengthPercent, nil)
		box("border-"+side+"-width", Px(0), UnitLength, nil)
		box("border-"+side+"-color", Col(ColorBlack), UnitColor, nil)
		box(side, Keyword(KeywordAuto), UnitLengthPercent|UnitKeyword, auto)
	}

	box("display", Keyword(DisplayInline), UnitKeyword, map[string]int{
		"none": DisplayNone, "block": DisplayBlock,
		"inline": DisplayInline, "inline-block": DisplayInlineBlock,
	})
	box("position", Keyword(PositionStatic), UnitKeyword, map[string]int{
		"static": PositionStatic, "relative": PositionRelative,
		"absolute": PositionAbsolute, "fixed": PositionFixed,
	})
	box("z-index", Keyword(KeywordAuto), UnitNumber|UnitKeyword, auto)

	box("width", Keyword(KeywordAuto), UnitLengthPercent|UnitKeyword, auto)
	box("height", Keyword(KeywordAuto), UnitLengthPercent|UnitKeyword, auto)
	box("min-width", Px(0), UnitLengthPercent, nil)
	box("min-height", Px(0), UnitLengthPercent, nil)
	box("max-width", Keyword(KeywordAuto), UnitLengthPercent|UnitKeyword, none)
	box("max-height", Keyword(KeywordAuto), UnitLengthPercent|UnitKeyword, none)

	inheritedProp(LineHeight, Num(1.2, UnitNumber), UnitNumberLengthPercent, nil)
	box(VerticalAlign, Keyword(VerticalAlignBaseline), UnitLengthPercent|UnitKeyword, map[string]int{
		"baseline": VerticalAlignBaseline, "middle": VerticalAlignMiddle,
		"top": VerticalAlignTop, "bottom": VerticalAlignBottom,
		"sub": VerticalAlignSub, "super": VerticalAlignSuper,
	})

	overflow := map[string]int{
		"visible": OverflowVisible, "hidden": OverflowHidden,
		"auto": OverflowAuto, "scroll": OverflowScroll,
	}
	box("overflow-x", Keyword(OverflowVisible), UnitKeyword, overflow)
	box("overflow-y", Keyword(OverflowVisible), UnitKeyword, overflow)
	box("clip", Keyword(ClipAuto), UnitNumber|UnitKeyword, map[string]int{
		"auto": ClipAuto, "none": ClipNone, "always": ClipAlways,
	})
	box("visibility", Keyword(VisibilityVisible), UnitKeyword, map[string]int{
		"visible": VisibilityVisible, "hidden": VisibilityHidden,
	})

	box("background-color", Col(ColorTransparent), UnitColor, nil)
	inheritedProp("color", Col(ColorBlack), UnitColor, nil)
	inheritedProp("image-color", Col(ColorWhite), UnitColor, nil)
	inheritedProp("opacity", Num(1, UnitNumber), UnitNumber, nil)

	inheritedProp("font-family", Str(""), UnitString, nil)
	inheritedProp("font-style", Keyword(FontStyleNormal), UnitKeyword, map[string]int{
		"normal": FontStyleNormal, "italic": FontStyleItalic,
	})
	inheritedProp("font-weight", Keyword(FontWeightNormal), UnitKeyword, map[string]int{
		"normal": FontWeightNormal, "bold": FontWeightBold,
	})
	inheritedProp(FontSize, Px(12), UnitLengthPercent, nil)

	inheritedProp("text-align", Keyword(TextAlignLeft), UnitKeyword, map[string]int{
		"left": TextAlignLeft, "right": TextAlignRight,
		"center": TextAlignCenter, "justify": TextAlignJustify,
	})
	inheritedProp("white-space", Keyword(WhiteSpaceNormal), UnitKeyword, map[string]int{
		"normal": WhiteSpaceNormal, "pre": WhiteSpacePre, "nowrap": WhiteSpaceNowrap,
		"pre-wrap": WhiteSpacePreWrap, "pre-line": WhiteSpacePreLine,
	})
	inheritedProp("cursor", Str(""), UnitString, nil)
	inheritedProp("pointer-events", Keyword(PointerEventsAuto), UnitKeyword, map[string]int{
		"auto": PointerEventsAuto, "none": PointerEventsNone,
	})

	box("scrollbar-margin", Px(0), UnitLength, nil)
	box(TransitionKey, Property{Value: TransitionList{None: true}, Unit: UnitTransition}, UnitTransition, nil)
}

// mustRegister is used for the built-in table, where a duplicate is a bug.
func (r *Registry) mustRegister(def Definition) {
	if _, err := r.Register(def); err != nil {
		panic(err)
	}
}
