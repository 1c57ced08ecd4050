package property

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseValue parses declaration text into a Property validated against the
// definition's allowed units. Malformed or disallowed values return an
// error and the zero Property.
func ParseValue(def *Definition, raw string) (Property, error) {
	if def == nil {
		return Property{}, fmt.Errorf("parse value: nil property definition")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Property{}, fmt.Errorf("%s: empty value", def.Name)
	}

	if def.Units.Has(UnitTransition) {
		list, err := ParseTransitionList(raw)
		if err != nil {
			return Property{}, fmt.Errorf("%s: %w", def.Name, err)
		}
		return Property{Value: list, Unit: UnitTransition, Definition: def}, nil
	}

	if def.Keywords != nil {
		if index, ok := def.Keywords[strings.ToLower(raw)]; ok {
			return Property{Value: index, Unit: UnitKeyword, Definition: def}, nil
		}
	}

	if def.Units&UnitColor != 0 {
		c, err := ParseColor(raw)
		if err != nil {
			return Property{}, fmt.Errorf("%s: %w", def.Name, err)
		}
		return Property{Value: c, Unit: UnitColor, Definition: def}, nil
	}

	if def.Units&(UnitNumberLengthPercent) != 0 {
		p, err := parseNumeric(raw)
		if err != nil {
			return Property{}, fmt.Errorf("%s: %w", def.Name, err)
		}
		if def.Units&p.Unit == 0 {
			return Property{}, fmt.Errorf("%s: unit %s not allowed", def.Name, p.Unit)
		}
		p.Definition = def
		return p, nil
	}

	if def.Units&UnitString != 0 {
		return Property{Value: raw, Unit: UnitString, Definition: def}, nil
	}

	return Property{}, fmt.Errorf("%s: invalid value %q", def.Name, raw)
}

func parseNumeric(raw string) (Property, error) {
	unit := UnitNumber
	number := raw
	for _, s := range suffixUnits {
		if strings.HasSuffix(raw, s.suffix) {
			unit = s.unit
			number = strings.TrimSpace(raw[:len(raw)-len(s.suffix)])
			break
		}
	}
	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Property{}, fmt.Errorf("invalid numeric value %q", raw)
	}
	return Property{Value: f, Unit: unit}, nil
}
