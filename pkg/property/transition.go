package property

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Transition describes one entry of a transition declaration: which property
// to animate and how.
type Transition struct {
	// Name is the target property name, or "all" in the list's All form.
	Name string
	// Duration is how long the transition runs.
	Duration time.Duration
	// Delay postpones the start of the transition.
	Delay time.Duration
	// Curve names the easing curve (linear, ease, ease-in, ease-out,
	// ease-in-out). Resolved by the animation runtime.
	Curve string
}

// TransitionList is the parsed value of the transition property.
type TransitionList struct {
	// None disables transitions entirely.
	None bool
	// All applies Transitions[0]'s timing to every changing property.
	All bool
	// Transitions holds per-property entries, or a single timing entry when
	// All is set.
	Transitions []Transition
}

// Equal reports whether two transition lists are identical.
func (l TransitionList) Equal(other TransitionList) bool {
	if l.None != other.None || l.All != other.All || len(l.Transitions) != len(other.Transitions) {
		return false
	}
	for i := range l.Transitions {
		if l.Transitions[i] != other.Transitions[i] {
			return false
		}
	}
	return true
}

var transitionCurves = map[string]bool{
	"linear":      true,
	"ease":        true,
	"ease-in":     true,
	"ease-out":    true,
	"ease-in-out": true,
}

// ParseTransitionList parses a transition shorthand such as
// "color 0.2s ease-in, width 0.5s" or "all 0.3s" or "none".
func ParseTransitionList(raw string) (TransitionList, error) {
	raw = strings.TrimSpace(raw)
	if raw == "none" || raw == "" {
		return TransitionList{None: true}, nil
	}
	var list TransitionList
	for _, entry := range strings.Split(raw, ",") {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			return TransitionList{}, fmt.Errorf("empty transition entry in %q", raw)
		}
		tr := Transition{Name: fields[0], Curve: "linear"}
		durationSeen := false
		for _, field := range fields[1:] {
			if transitionCurves[field] {
				tr.Curve = field
				continue
			}
			d, err := parseSeconds(field)
			if err != nil {
				return TransitionList{}, fmt.Errorf("invalid transition timing %q", field)
			}
			if !durationSeen {
				tr.Duration = d
				durationSeen = true
			} else {
				tr.Delay = d
			}
		}
		if !durationSeen {
			return TransitionList{}, fmt.Errorf("transition %q has no duration", tr.Name)
		}
		if tr.Name == "all" {
			list.All = true
			list.Transitions = []Transition{tr}
			return list, nil
		}
		list.Transitions = append(list.Transitions, tr)
	}
	return list, nil
}

func parseSeconds(field string) (time.Duration, error) {
	var scale time.Duration
	switch {
	case strings.HasSuffix(field, "ms"):
		field, scale = field[:len(field)-2], time.Millisecond
	case strings.HasSuffix(field, "s"):
		field, scale = field[:len(field)-1], time.Second
	default:
		return 0, fmt.Errorf("missing time suffix")
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid time value")
	}
	return time.Duration(f * float64(scale)), nil
}
