package style

import (
	"strings"
	"sync"

	"github.com/go-drift/styling/pkg/property"
)

// computeContext carries the per-element quantities unit resolution needs.
type computeContext struct {
	fontSize    float64
	docFontSize float64
	pixelRatio  float64
}

// computeLength resolves a length-unit property to pixels.
func computeLength(p property.Property, c *computeContext) float64 {
	v := p.Float()
	switch p.Unit {
	case property.UnitPx, property.UnitNumber:
		return v
	case property.UnitDp:
		return v * c.pixelRatio
	case property.UnitEm:
		return v * c.fontSize
	case property.UnitRem:
		return v * c.docFontSize
	default:
		return 0
	}
}

func computeLengthPercentage(p property.Property, c *computeContext) LengthPercentage {
	if p.Unit == property.UnitPercent {
		return LengthPercentage{Type: LengthPercentagePercent, Value: p.Float()}
	}
	return Length(computeLength(p, c))
}

func computeLengthPercentageAuto(p property.Property, c *computeContext) LengthPercentageAuto {
	switch p.Unit {
	case property.UnitKeyword:
		return Auto()
	case property.UnitPercent:
		return LengthPercentageAuto{Type: LengthPercentagePercent, Value: p.Float()}
	default:
		return LengthPercentageAuto{Type: LengthPercentageLength, Value: computeLength(p, c)}
	}
}

// computeFontSize resolves font-size. Em and percent here scale the parent's
// font size, not the element's own, which is why font-size resolves before
// every other length on the element.
func computeFontSize(p property.Property, parent, document *ComputedValues, pixelRatio float64) float64 {
	parentSize := DefaultComputedValues.FontSize
	if parent != nil {
		parentSize = parent.FontSize
	}
	docSize := DefaultComputedValues.FontSize
	if document != nil {
		docSize = document.FontSize
	}
	v := p.Float()
	switch p.Unit {
	case property.UnitPercent:
		return parentSize * v * 0.01
	case property.UnitEm:
		return parentSize * v
	case property.UnitRem:
		return docSize * v
	case property.UnitDp:
		return v * pixelRatio
	default:
		return v
	}
}

// computeLineHeight resolves line-height. Numbers and percentages resolve
// against the element's own font size and remember the factor for
// inheritance; lengths resolve and inherit directly.
func computeLineHeight(p property.Property, c *computeContext) LineHeight {
	switch p.Unit {
	case property.UnitNumber:
		factor := p.Float()
		return LineHeight{Value: c.fontSize * factor, InheritType: LineHeightInheritNumber, InheritValue: factor}
	case property.UnitPercent:
		factor := p.Float() * 0.01
		return LineHeight{Value: c.fontSize * factor, InheritType: LineHeightInheritNumber, InheritValue: factor}
	default:
		return LineHeight{Value: computeLength(p, c), InheritType: LineHeightInheritLength}
	}
}

// computeVerticalAlign resolves vertical-align. Percentages scale the
// element's own line height.
func computeVerticalAlign(p property.Property, lineHeight float64, c *computeContext) VerticalAlign {
	switch p.Unit {
	case property.UnitKeyword:
		return VerticalAlign{Type: VerticalAlignType(p.KeywordIndex())}
	case property.UnitPercent:
		return VerticalAlign{Type: VerticalAlignLength, Value: p.Float() * 0.01 * lineHeight}
	default:
		return VerticalAlign{Type: VerticalAlignLength, Value: computeLength(p, c)}
	}
}

func computeClip(p property.Property) Clip {
	if p.Unit == property.UnitKeyword {
		return Clip{Type: ClipType(p.KeywordIndex())}
	}
	return Clip{Type: ClipNumber, Depth: int(p.Float())}
}

// applyFunc converts one raw property into its typed field on the record.
type applyFunc func(v *ComputedValues, p property.Property, c *computeContext)

// applyByName maps built-in property names to conversion functions.
// font-size and line-height are resolved ahead of the main pass and have no
// entry here.
var applyByName = map[string]applyFunc{
	"margin-top": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.MarginTop = computeLengthPercentageAuto(p, c)
	},
	"margin-right": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.MarginRight = computeLengthPercentageAuto(p, c)
	},
	"margin-bottom": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.MarginBottom = computeLengthPercentageAuto(p, c)
	},
	"margin-left": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.MarginLeft = computeLengthPercentageAuto(p, c)
	},

	"padding-top": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.PaddingTop = computeLengthPercentage(p, c)
	},
	"padding-right": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.PaddingRight = computeLengthPercentage(p, c)
	},
	"padding-bottom": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.PaddingBottom = computeLengthPercentage(p, c)
	},
	"padding-left": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.PaddingLeft = computeLengthPercentage(p, c)
	},

	"border-top-width": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.BorderTopWidth = computeLength(p, c)
	},
	"border-right-width": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.BorderRightWidth = computeLength(p, c)
	},
	"border-bottom-width": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.BorderBottomWidth = computeLength(p, c)
	},
	"border-left-width": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.BorderLeftWidth = computeLength(p, c)
	},

	"border-top-color":    func(v *ComputedValues, p property.Property, _ *computeContext) { v.BorderTopColor = p.Color() },
	"border-right-color":  func(v *ComputedValues, p property.Property, _ *computeContext) { v.BorderRightColor = p.Color() },
	"border-bottom-color": func(v *ComputedValues, p property.Property, _ *computeContext) { v.BorderBottomColor = p.Color() },
	"border-left-color":   func(v *ComputedValues, p property.Property, _ *computeContext) { v.BorderLeftColor = p.Color() },

	"display": func(v *ComputedValues, p property.Property, _ *computeContext) { v.Display = Display(p.KeywordIndex()) },
	"position": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.Position = Position(p.KeywordIndex())
	},

	"top": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.Top = computeLengthPercentageAuto(p, c)
	},
	"right": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.Right = computeLengthPercentageAuto(p, c)
	},
	"bottom": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.Bottom = computeLengthPercentageAuto(p, c)
	},
	"left": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.Left = computeLengthPercentageAuto(p, c)
	},

	"z-index": func(v *ComputedValues, p property.Property, _ *computeContext) {
		if p.Unit == property.UnitKeyword {
			v.ZIndex = ZIndex{Auto: true}
		} else {
			v.ZIndex = ZIndex{Value: p.Float()}
		}
	},

	"width": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.Width = computeLengthPercentageAuto(p, c)
	},
	"min-width": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.MinWidth = computeLengthPercentage(p, c)
	},
	"max-width": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.MaxWidth = computeLengthPercentageAuto(p, c)
	},
	"height": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.Height = computeLengthPercentageAuto(p, c)
	},
	"min-height": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.MinHeight = computeLengthPercentage(p, c)
	},
	"max-height": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.MaxHeight = computeLengthPercentageAuto(p, c)
	},

	property.VerticalAlign: func(v *ComputedValues, p property.Property, c *computeContext) {
		v.VerticalAlign = computeVerticalAlign(p, v.LineHeight.Value, c)
	},

	"overflow-x": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.OverflowX = Overflow(p.KeywordIndex())
	},
	"overflow-y": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.OverflowY = Overflow(p.KeywordIndex())
	},
	"clip": func(v *ComputedValues, p property.Property, _ *computeContext) { v.Clip = computeClip(p) },
	"visibility": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.Visibility = Visibility(p.KeywordIndex())
	},

	"background-color": func(v *ComputedValues, p property.Property, _ *computeContext) { v.BackgroundColor = p.Color() },
	"color":            func(v *ComputedValues, p property.Property, _ *computeContext) { v.Color = p.Color() },
	"image-color":      func(v *ComputedValues, p property.Property, _ *computeContext) { v.ImageColor = p.Color() },
	"opacity":          func(v *ComputedValues, p property.Property, _ *computeContext) { v.Opacity = p.Float() },

	"font-family": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.FontFamily = strings.ToLower(p.String())
	},
	"font-style": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.FontStyle = FontStyle(p.KeywordIndex())
	},
	"font-weight": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.FontWeight = FontWeight(p.KeywordIndex())
	},

	"text-align": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.TextAlign = TextAlign(p.KeywordIndex())
	},
	"white-space": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.WhiteSpace = WhiteSpace(p.KeywordIndex())
	},
	"cursor": func(v *ComputedValues, p property.Property, _ *computeContext) { v.Cursor = p.String() },
	"pointer-events": func(v *ComputedValues, p property.Property, _ *computeContext) {
		v.PointerEvents = PointerEvents(p.KeywordIndex())
	},

	"scrollbar-margin": func(v *ComputedValues, p property.Property, c *computeContext) {
		v.ScrollbarMargin = computeLength(p, c)
	},

	property.TransitionKey: func(v *ComputedValues, p property.Property, _ *computeContext) { v.Transition = p.Transitions() },
}

// dispatchTables caches, per registry, the apply functions indexed by dense
// property ID. IDs beyond the table or without a function take the
// string-keyed custom path.
var dispatchTables sync.Map // *property.Registry -> []applyFunc

func dispatchTable(reg *property.Registry) []applyFunc {
	if cached, ok := dispatchTables.Load(reg); ok {
		table := cached.([]applyFunc)
		if len(table) == reg.Len() {
			return table
		}
	}
	table := make([]applyFunc, reg.Len())
	for id := 0; id < reg.Len(); id++ {
		def := reg.ByID(property.ID(id))
		table[id] = applyByName[def.Name]
	}
	dispatchTables.Store(reg, table)
	return table
}

// applyProperty routes one raw value into the record, through the ID table
// for built-ins or the custom map otherwise.
func applyProperty(v *ComputedValues, table []applyFunc, name string, p property.Property, c *computeContext) {
	if p.Definition != nil {
		id := int(p.Definition.ID)
		if id >= 0 && id < len(table) && table[id] != nil {
			table[id](v, p, c)
			return
		}
	} else if fn := applyByName[name]; fn != nil {
		fn(v, p, c)
		return
	}
	if v.Custom == nil {
		v.Custom = make(map[string]property.Property)
	}
	v.Custom[name] = p
}

// ComputeValues resolves every pending dirty property into values and
// returns the dirty set that was consumed; an empty set means nothing was
// done. parent and document may be nil at the tree root.
//
// Resolution order matters: font-size first (em values on this element scale
// its own font size, while font-size's own em scales the parent's), then
// line-height (vertical-align scales it), then the inherited baseline copy,
// then a single pass over the merged local and definition view.
//
// The caller must compute parents before children in each update pass;
// inherited dirty names are pushed into children's pending sets, to be
// consumed on their own next call.
func (s *ElementStyle) ComputeValues(values *ComputedValues, parent, document *ComputedValues, valuesAreDefaultInitialized bool, pixelRatio float64) DirtySet {
	if s.dirty.Empty() {
		return DirtySet{}
	}

	fontSizeBefore := values.FontSize
	lineHeightBefore := values.LineHeight.Value

	// Freshly created elements already hold the default record; everyone
	// else recomputes from the shared baseline.
	if !valuesAreDefaultInitialized {
		custom := values.Custom
		*values = DefaultComputedValues
		if custom != nil {
			clear(custom)
			values.Custom = custom
		}
	}

	// Font-size first: every other em on this element depends on it.
	if p, ok := s.GetLocalProperty(property.FontSize); ok {
		values.FontSize = computeFontSize(p, parent, document, pixelRatio)
	} else if parent != nil {
		values.FontSize = parent.FontSize
	}
	if fontSizeBefore != values.FontSize {
		// A changed font size can re-scale any em-relative value; dirty
		// everything rather than hunting for em users. Recomputation is
		// idempotent, so the over-approximation is only a cost, not a bug.
		s.dirty.InsertAll()
	}

	ctx := computeContext{
		fontSize:    values.FontSize,
		docFontSize: DefaultComputedValues.FontSize,
		pixelRatio:  pixelRatio,
	}
	if document != nil {
		ctx.docFontSize = document.FontSize
	}

	// Line-height second: vertical-align scales it.
	if p, ok := s.GetLocalProperty(property.LineHeight); ok {
		values.LineHeight = computeLineHeight(p, &ctx)
	} else if parent != nil {
		if parent.LineHeight.InheritType == LineHeightInheritNumber {
			factor := parent.LineHeight.InheritValue
			values.LineHeight = LineHeight{Value: ctx.fontSize * factor, InheritType: LineHeightInheritNumber, InheritValue: factor}
		} else {
			values.LineHeight = parent.LineHeight
		}
	}
	if lineHeightBefore != values.LineHeight.Value {
		s.dirty.Insert(property.VerticalAlign)
	}

	// Inherited baseline: copied wholesale, overwritten below by anything
	// this element declares itself.
	if parent != nil {
		values.Color = parent.Color
		values.ImageColor = parent.ImageColor
		values.Opacity = parent.Opacity

		values.FontFamily = parent.FontFamily
		values.FontStyle = parent.FontStyle
		values.FontWeight = parent.FontWeight

		values.TextAlign = parent.TextAlign
		values.WhiteSpace = parent.WhiteSpace
		values.Cursor = parent.Cursor
		values.PointerEvents = parent.PointerEvents
	}

	table := dispatchTable(s.registry)
	for it := s.Iterate(); ; {
		name, p, ok := it.Next()
		if !ok {
			break
		}
		if name == property.FontSize || name == property.LineHeight {
			continue
		}
		applyProperty(values, table, name, p, &ctx)
	}

	// Pass inherited dirty names on to the children's pending sets; they
	// will be consumed when the driver visits each child.
	var dirtyInherited []string
	if s.dirty.All() {
		dirtyInherited = s.registry.InheritedNames()
	} else {
		for _, name := range s.dirty.List() {
			if meta := s.registry.Lookup(name); meta != nil && meta.Inherited {
				dirtyInherited = append(dirtyInherited, name)
			}
		}
	}
	if len(dirtyInherited) > 0 && s.element != nil {
		for i := 0; i < s.element.NumChildren(); i++ {
			s.element.Child(i).Style().DirtyInheritedProperties(dirtyInherited)
		}
	}

	consumed := s.dirty
	s.dirty = DirtySet{}
	return consumed
}
