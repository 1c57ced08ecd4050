package style

import "github.com/go-drift/styling/pkg/property"

// Rule is one matched style rule as delivered by the rule resolver. The
// engine does not match selectors itself; it trusts the resolver to supply
// rules in specificity order, most specific first.
type Rule struct {
	// PseudoClasses is the rule's pseudo-class requirement: every listed
	// pseudo-class must be active on the element for the rule to apply.
	// Empty for unconditional rules.
	PseudoClasses []string
	// Properties maps property names to their parsed declared values.
	Properties map[string]property.Property
	// Decorators maps decorator names to declarations.
	Decorators map[string]DecoratorDeclaration
	// FontEffects maps font-effect names to declarations.
	FontEffects map[string]DecoratorDeclaration
}

// requirementSatisfied reports whether every pseudo-class in requirement is
// present in active. An empty requirement is always satisfied.
func requirementSatisfied(requirement, active []string) bool {
	for _, req := range requirement {
		found := false
		for _, a := range active {
			if a == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// requirementMentions reports whether the requirement names the given
// pseudo-class.
func requirementMentions(requirement []string, pseudoClass string) bool {
	for _, req := range requirement {
		if req == pseudoClass {
			return true
		}
	}
	return false
}
