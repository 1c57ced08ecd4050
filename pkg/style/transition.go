package style

import "github.com/go-drift/styling/pkg/property"

// transitionPropertyChanges runs transition interception over a candidate
// property-name delta before it is merged into the dirty set. The element's
// transition declaration is resolved against the "after" state; for each
// covered candidate whose value actually changes between the before and
// after states, the change is offered to the transition host. Accepted
// properties are removed from the delta: they will be animated over time
// rather than snapped. Declining, equal values, and uncovered properties all
// leave the delta untouched.
func (s *ElementStyle) transitionPropertyChanges(delta NameSet, oldDef, newDef *Definition, pseudoBefore, pseudoAfter []string) {
	if s.host == nil || s.element == nil || oldDef == nil || newDef == nil || len(delta) == 0 {
		return
	}

	declared, ok := getLocalProperty(property.TransitionKey, s.local, newDef, pseudoAfter)
	if !ok {
		return
	}
	list := declared.Transitions()
	if list.None {
		return
	}

	startTransition := func(tr property.Transition) bool {
		from, okFrom := s.getProperty(tr.Name, s.local, oldDef, pseudoBefore)
		to, okTo := s.getProperty(tr.Name, nil, newDef, pseudoAfter)
		if !okFrom || !okTo || from.Equal(to) {
			return false
		}
		return s.host.StartTransition(s.element, tr, from, to)
	}

	if list.All {
		timing := list.Transitions[0]
		for _, name := range delta.Sorted() {
			timing.Name = name
			if startTransition(timing) {
				delete(delta, name)
			}
		}
		return
	}

	for _, tr := range list.Transitions {
		if !delta.Contains(tr.Name) {
			continue
		}
		if startTransition(tr) {
			delete(delta, tr.Name)
		}
	}
}
