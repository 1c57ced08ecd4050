package property

import "strings"

// Unit tags the interpretation of a Property's raw value. Units are bit
// flags so registry metadata can describe a set of allowed units.
type Unit uint32

const (
	// UnitUnknown marks an empty or invalid property.
	UnitUnknown Unit = 0

	// UnitNumber is a unit-less scalar.
	UnitNumber Unit = 1 << iota
	// UnitPx is a length in raw pixels.
	UnitPx
	// UnitDp is a length in density-independent pixels.
	UnitDp
	// UnitEm is a length relative to the element's font size.
	UnitEm
	// UnitRem is a length relative to the document's font size.
	UnitRem
	// UnitPercent is a scalar relative to a property-specific base value.
	UnitPercent
	// UnitKeyword is an index into the property's keyword table.
	UnitKeyword
	// UnitColor is an ARGB color.
	UnitColor
	// UnitString is an uninterpreted string.
	UnitString
	// UnitTransition is a parsed transition list.
	UnitTransition
)

// Composite unit sets used in registry metadata.
const (
	UnitLength              = UnitPx | UnitDp | UnitEm | UnitRem
	UnitLengthPercent       = UnitLength | UnitPercent
	UnitNumberLengthPercent = UnitNumber | UnitLengthPercent
)

// Has reports whether u contains all bits of flag.
func (u Unit) Has(flag Unit) bool {
	return u&flag == flag
}

func (u Unit) String() string {
	switch u {
	case UnitNumber:
		return "number"
	case UnitPx:
		return "px"
	case UnitDp:
		return "dp"
	case UnitEm:
		return "em"
	case UnitRem:
		return "rem"
	case UnitPercent:
		return "%"
	case UnitKeyword:
		return "keyword"
	case UnitColor:
		return "color"
	case UnitString:
		return "string"
	case UnitTransition:
		return "transition"
	case UnitUnknown:
		return "unknown"
	}
	var parts []string
	for _, f := range []struct {
		unit Unit
		name string
	}{
		{UnitNumber, "number"}, {UnitPx, "px"}, {UnitDp, "dp"}, {UnitEm, "em"},
		{UnitRem, "rem"}, {UnitPercent, "%"}, {UnitKeyword, "keyword"},
		{UnitColor, "color"}, {UnitString, "string"}, {UnitTransition, "transition"},
	} {
		if u.Has(f.unit) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// suffixUnits maps declaration suffixes to numeric units, longest first so
// that "rem" is not consumed as "em".
var suffixUnits = []struct {
	suffix string
	unit   Unit
}{
	{"rem", UnitRem},
	{"px", UnitPx},
	{"dp", UnitDp},
	{"em", UnitEm},
	{"%", UnitPercent},
}
