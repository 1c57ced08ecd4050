package property

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlProperty is the on-disk shape of one custom property registration.
type yamlProperty struct {
	Inherited bool     `yaml:"inherited,omitempty"`
	Units     []string `yaml:"units"`
	Default   string   `yaml:"default"`
	Keywords  []string `yaml:"keywords,omitempty"`
}

var yamlUnits = map[string]Unit{
	"number":                UnitNumber,
	"px":                    UnitPx,
	"dp":                    UnitDp,
	"em":                    UnitEm,
	"rem":                   UnitRem,
	"percent":               UnitPercent,
	"keyword":               UnitKeyword,
	"color":                 UnitColor,
	"string":                UnitString,
	"length":                UnitLength,
	"length-percent":        UnitLengthPercent,
	"number-length-percent": UnitNumberLengthPercent,
}

// RegisterYAML registers custom properties described by a YAML table:
//
//	glow-color:
//	  inherited: true
//	  units: [color]
//	  default: "transparent"
//	glow-radius:
//	  units: [length]
//	  default: "0px"
//
// Each default is parsed with the property's own unit rules. Registration
// stops at the first invalid entry.
func (r *Registry) RegisterYAML(data []byte) error {
	var table map[string]yamlProperty
	if err := yaml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("property table: %w", err)
	}
	// Deterministic order so duplicate-name errors are stable.
	for _, name := range sortedKeys(table) {
		entry := table[name]
		def := Definition{Name: name, Inherited: entry.Inherited}
		for _, u := range entry.Units {
			unit, ok := yamlUnits[strings.ToLower(u)]
			if !ok {
				return fmt.Errorf("property %q: unknown unit %q", name, u)
			}
			def.Units |= unit
		}
		if len(entry.Keywords) > 0 {
			def.Units |= UnitKeyword
			def.Keywords = make(map[string]int, len(entry.Keywords))
			for i, kw := range entry.Keywords {
				def.Keywords[strings.ToLower(kw)] = i
			}
		}
		parsed, err := ParseValue(&def, entry.Default)
		if err != nil {
			return fmt.Errorf("property %q: default: %w", name, err)
		}
		def.Default = parsed
		if _, err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(table map[string]yamlProperty) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
