package property

import "fmt"

// Property is a raw, unit-tagged style value together with a reference to
// its registry metadata. Properties are immutable once constructed and are
// copied by value; sharing one between elements is safe.
type Property struct {
	// Value holds the raw value: float64 for numeric units, int for
	// keywords, Color, string, or TransitionList.
	Value any
	// Unit tags the interpretation of Value. A zero Unit marks the empty
	// property.
	Unit Unit
	// Definition points at the registry metadata the value was parsed
	// against. Nil for custom properties outside the registry.
	Definition *Definition
}

// Num constructs a numeric property with the given unit.
func Num(value float64, unit Unit) Property {
	return Property{Value: value, Unit: unit}
}

// Px constructs a pixel-length property.
func Px(value float64) Property {
	return Property{Value: value, Unit: UnitPx}
}

// Keyword constructs a keyword property from a keyword table index.
func Keyword(index int) Property {
	return Property{Value: index, Unit: UnitKeyword}
}

// Col constructs a color property.
func Col(c Color) Property {
	return Property{Value: c, Unit: UnitColor}
}

// Str constructs a string property.
func Str(s string) Property {
	return Property{Value: s, Unit: UnitString}
}

// IsZero reports whether the property is the empty value.
func (p Property) IsZero() bool {
	return p.Unit == UnitUnknown
}

// Float returns the numeric value, or 0 if the value is not numeric.
func (p Property) Float() float64 {
	if f, ok := p.Value.(float64); ok {
		return f
	}
	return 0
}

// KeywordIndex returns the keyword table index, or -1 if the value is not a
// keyword.
func (p Property) KeywordIndex() int {
	if k, ok := p.Value.(int); ok && p.Unit == UnitKeyword {
		return k
	}
	return -1
}

// Color returns the color value, or transparent if the value is not a color.
func (p Property) Color() Color {
	if c, ok := p.Value.(Color); ok {
		return c
	}
	return ColorTransparent
}

// String returns the string value for string properties, otherwise a debug
// rendering of the value.
func (p Property) String() string {
	if s, ok := p.Value.(string); ok {
		return s
	}
	switch p.Unit {
	case UnitUnknown:
		return ""
	case UnitKeyword:
		if p.Definition != nil {
			if name := p.Definition.keywordName(p.KeywordIndex()); name != "" {
				return name
			}
		}
		return fmt.Sprintf("keyword(%d)", p.KeywordIndex())
	case UnitColor:
		return p.Color().String()
	case UnitPercent:
		return fmt.Sprintf("%g%%", p.Float())
	case UnitNumber:
		return fmt.Sprintf("%g", p.Float())
	case UnitTransition:
		return "transition"
	default:
		return fmt.Sprintf("%g%s", p.Float(), p.Unit)
	}
}

// Transitions returns the transition list value, or the zero list if the
// value is not a transition list.
func (p Property) Transitions() TransitionList {
	if t, ok := p.Value.(TransitionList); ok {
		return t
	}
	return TransitionList{}
}

// Equal reports whether two properties carry the same unit and value.
// Registry metadata is not compared.
func (p Property) Equal(other Property) bool {
	if p.Unit != other.Unit {
		return false
	}
	if a, ok := p.Value.(TransitionList); ok {
		b, ok := other.Value.(TransitionList)
		return ok && a.Equal(b)
	}
	return p.Value == other.Value
}
