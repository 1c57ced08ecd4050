package sheet

import (
	"fmt"
	"strings"

	"github.com/go-drift/styling/pkg/style"
)

// structuralPseudoClasses are selector pseudo-classes evaluated against tree
// structure rather than element state. Rules using them make the resulting
// definitions structurally volatile.
var structuralPseudoClasses = map[string]bool{
	"first-child": true,
	"last-child":  true,
	"only-child":  true,
	"empty":       true,
}

// compound is one compound selector: an optional tag plus id/class/
// attribute/pseudo-class conditions that must all hold on a single element.
type compound struct {
	tag        string
	id         string
	classes    []string
	attributes []attributeCondition
	// statePseudoClasses are dynamic pseudo-classes (hover, focus, ...).
	statePseudoClasses []string
	// structuralPseudoClasses are tree-structure tests.
	structuralPseudoClasses []string
}

type attributeCondition struct {
	name  string
	value string
	// exact requires the value to match; otherwise presence suffices.
	exact bool
}

// selector is a descendant-combinator chain. The last compound is the
// subject; preceding compounds must match ancestors in order.
type selector struct {
	chain       []compound
	specificity int
}

func (sel *selector) subject() *compound {
	return &sel.chain[len(sel.chain)-1]
}

// parseSelector parses a selector such as "div.menu#nav:hover li.item". Only
// descendant combinators are supported; child/sibling combinators are
// rejected.
func parseSelector(text string) (*selector, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	sel := &selector{}
	for _, field := range fields {
		if field == ">" || field == "+" || field == "~" {
			return nil, fmt.Errorf("unsupported combinator %q", field)
		}
		comp, spec, err := parseCompound(field)
		if err != nil {
			return nil, err
		}
		sel.chain = append(sel.chain, comp)
		sel.specificity += spec
	}
	return sel, nil
}

func parseCompound(text string) (compound, int, error) {
	var comp compound
	specificity := 0
	rest := text

	// Leading tag or universal selector.
	end := strings.IndexAny(rest, ".#:[")
	head := rest
	if end >= 0 {
		head = rest[:end]
		rest = rest[end:]
	} else {
		rest = ""
	}
	if head != "" && head != "*" {
		comp.tag = head
		specificity += 1
	}

	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		var token string
		switch marker {
		case '[':
			close := strings.IndexByte(rest, ']')
			if close < 0 {
				return compound{}, 0, fmt.Errorf("unterminated attribute selector in %q", text)
			}
			token, rest = rest[:close], rest[close+1:]
			cond := attributeCondition{name: token}
			if eq := strings.IndexByte(token, '='); eq >= 0 {
				cond.name = token[:eq]
				cond.value = strings.Trim(token[eq+1:], `"'`)
				cond.exact = true
			}
			if cond.name == "" {
				return compound{}, 0, fmt.Errorf("empty attribute selector in %q", text)
			}
			comp.attributes = append(comp.attributes, cond)
			specificity += 1000
			continue
		default:
			end := strings.IndexAny(rest, ".#:[")
			if end >= 0 {
				token, rest = rest[:end], rest[end:]
			} else {
				token, rest = rest, ""
			}
		}
		if token == "" {
			return compound{}, 0, fmt.Errorf("dangling %q in selector %q", string(marker), text)
		}
		switch marker {
		case '.':
			comp.classes = append(comp.classes, token)
			specificity += 1000
		case '#':
			comp.id = token
			specificity += 1000000
		case ':':
			if structuralPseudoClasses[token] {
				comp.structuralPseudoClasses = append(comp.structuralPseudoClasses, token)
			} else {
				comp.statePseudoClasses = append(comp.statePseudoClasses, token)
			}
			specificity += 1000
		}
	}
	return comp, specificity, nil
}

// matchesElement tests a compound's static conditions against an element.
// Subject state pseudo-classes are not tested here; they become conditional
// branches in the compiled definition instead.
func (c *compound) matchesElement(el Queryable, includeStatePseudoClasses bool) bool {
	if c.tag != "" && c.tag != el.Tag() {
		return false
	}
	if c.id != "" && c.id != el.ID() {
		return false
	}
	for _, class := range c.classes {
		if !el.Style().IsClassSet(class) {
			return false
		}
	}
	for _, cond := range c.attributes {
		v, ok := el.Attribute(cond.name)
		if !ok || (cond.exact && v != cond.value) {
			return false
		}
	}
	for _, pc := range c.structuralPseudoClasses {
		if !matchStructural(pc, el) {
			return false
		}
	}
	if includeStatePseudoClasses {
		for _, pc := range c.statePseudoClasses {
			if !el.Style().IsPseudoClassSet(pc) {
				return false
			}
		}
	}
	return true
}

func matchStructural(pseudoClass string, el Queryable) bool {
	parent, _ := el.Parent().(Queryable)
	switch pseudoClass {
	case "first-child":
		return parent != nil && parent.NumChildren() > 0 && parent.Child(0) == style.Element(el)
	case "last-child":
		return parent != nil && parent.NumChildren() > 0 && parent.Child(parent.NumChildren()-1) == style.Element(el)
	case "only-child":
		return parent != nil && parent.NumChildren() == 1
	case "empty":
		return el.NumChildren() == 0
	default:
		return false
	}
}

// matches tests the whole chain: the subject compound against el (static
// conditions only), ancestor compounds against el's ancestors in order with
// their dynamic pseudo-classes evaluated at match time. Ancestor pseudo
// state baked into the match is what makes those pseudo-classes
// structure-volatile.
func (sel *selector) matches(el Queryable) bool {
	if !sel.subject().matchesElement(el, false) {
		return false
	}
	ancestorIndex := len(sel.chain) - 2
	ancestor, _ := el.Parent().(Queryable)
	for ancestorIndex >= 0 {
		if ancestor == nil {
			return false
		}
		if sel.chain[ancestorIndex].matchesElement(ancestor, true) {
			ancestorIndex--
		}
		ancestor, _ = ancestor.Parent().(Queryable)
	}
	return true
}

// usesStructure reports whether any compound in the chain tests tree
// structure.
func (sel *selector) usesStructure() bool {
	for i := range sel.chain {
		if len(sel.chain[i].structuralPseudoClasses) > 0 {
			return true
		}
	}
	return false
}

// ancestorStatePseudoClasses collects dynamic pseudo-classes tested on
// ancestor compounds. Toggling these on an element can change which rules
// match its descendants.
func (sel *selector) ancestorStatePseudoClasses(out map[string]bool) {
	for i := 0; i < len(sel.chain)-1; i++ {
		for _, pc := range sel.chain[i].statePseudoClasses {
			out[pc] = true
		}
	}
}
