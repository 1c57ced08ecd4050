package property

// ID is a dense index assigned to a property at registration time. Hot
// resolution paths dispatch on IDs through tables rather than on names.
type ID int

// InvalidID marks a property with no registry entry.
const InvalidID ID = -1

// Definition is the registry metadata for one property: its default value,
// whether it inherits down the element tree, and which units a declaration
// may carry.
type Definition struct {
	// Name is the declaration name, e.g. "margin-top".
	Name string
	// ID is the dense index assigned by the registry.
	ID ID
	// Inherited marks the property as inheriting from ancestor elements.
	Inherited bool
	// Units is the set of units a parsed value may carry.
	Units Unit
	// Default is the value used when no rule, override or ancestor supplies
	// one.
	Default Property
	// Keywords maps accepted keyword spellings to keyword indices. Nil when
	// the property accepts no keywords.
	Keywords map[string]int

	keywordNames []string
}

// keywordName returns the spelling for a keyword index, or "".
func (d *Definition) keywordName(index int) string {
	if d == nil || index < 0 || index >= len(d.keywordNames) {
		return ""
	}
	return d.keywordNames[index]
}
