package animation

import (
	"math"
	"sync"
	"time"

	"github.com/go-drift/styling/pkg/property"
	"github.com/go-drift/styling/pkg/style"
)

// TransitionRunner plays property transitions. It implements
// style.TransitionHost: accepted property changes are withheld from the
// element's dirty set by the caller and animated here instead.
//
// Drive the runner by calling Tick once per frame, then updating styles;
// each tick writes interpolated local values, and the final tick removes the
// override so the settled value shows through from the definition.
type TransitionRunner struct {
	mu     sync.Mutex
	active []*activeTransition
}

type activeTransition struct {
	element  style.Element
	name     string
	from, to property.Property
	curve    Curve
	start    time.Time
	delay    time.Duration
	duration time.Duration
}

// NewTransitionRunner returns an empty runner.
func NewTransitionRunner() *TransitionRunner {
	return &TransitionRunner{}
}

// StartTransition accepts a property change for animation. It returns false
// when the change cannot be animated (zero duration, or values that do not
// interpolate), in which case the change applies immediately.
//
// Starting a transition for a property already in flight retargets it: the
// new transition begins from the current interpolated value.
func (r *TransitionRunner) StartTransition(el style.Element, tr property.Transition, from, to property.Property) bool {
	if el == nil || tr.Duration <= 0 || !canInterpolate(from, to) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := Now()
	next := &activeTransition{
		element:  el,
		name:     tr.Name,
		from:     from,
		to:       to,
		curve:    CurveByName(tr.Curve),
		start:    now,
		delay:    tr.Delay,
		duration: tr.Duration,
	}
	for i, at := range r.active {
		if at.element == el && at.name == tr.Name {
			next.from = at.valueAt(now)
			r.active[i] = next
			return true
		}
	}
	r.active = append(r.active, next)
	return true
}

// Tick advances every transition to the current clock time, writing
// interpolated values into element styles. Finished transitions remove their
// local override and drop out. Returns true while transitions remain.
func (r *TransitionRunner) Tick() bool {
	r.mu.Lock()
	running := r.active
	r.active = r.active[:0]
	r.mu.Unlock()

	now := Now()
	var remaining []*activeTransition
	for _, at := range running {
		if now.Sub(at.start) >= at.delay+at.duration {
			at.element.Style().RemoveProperty(at.name)
			continue
		}
		at.element.Style().SetPropertyValue(at.name, at.valueAt(now))
		remaining = append(remaining, at)
	}

	r.mu.Lock()
	r.active = append(r.active, remaining...)
	n := len(r.active)
	r.mu.Unlock()
	return n > 0
}

// Cancel drops every transition targeting the element without touching its
// properties. Call when an element leaves the tree.
func (r *TransitionRunner) Cancel(el style.Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.active[:0]
	for _, at := range r.active {
		if at.element != el {
			kept = append(kept, at)
		}
	}
	r.active = kept
}

// Active returns the number of transitions in flight.
func (r *TransitionRunner) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

func (at *activeTransition) valueAt(now time.Time) property.Property {
	elapsed := now.Sub(at.start) - at.delay
	if elapsed <= 0 {
		return at.from
	}
	t := float64(elapsed) / float64(at.duration)
	if t >= 1 {
		return at.to
	}
	return interpolate(at.from, at.to, at.curve(t))
}

func canInterpolate(from, to property.Property) bool {
	if from.IsZero() || to.IsZero() || from.Unit != to.Unit {
		return false
	}
	switch {
	case property.UnitNumberLengthPercent.Has(from.Unit), from.Unit == property.UnitColor, from.Unit == property.UnitKeyword:
		return true
	default:
		return false
	}
}

func interpolate(from, to property.Property, t float64) property.Property {
	switch {
	case property.UnitNumberLengthPercent.Has(from.Unit):
		v := from.Float() + (to.Float()-from.Float())*t
		return property.Property{Value: v, Unit: to.Unit, Definition: to.Definition}
	case from.Unit == property.UnitColor:
		return property.Property{Value: lerpColor(from.Color(), to.Color(), t), Unit: property.UnitColor, Definition: to.Definition}
	default:
		// Discrete values snap at the midpoint.
		if t < 0.5 {
			return from
		}
		return to
	}
}

func lerpColor(from, to property.Color, t float64) property.Color {
	fr, fg, fb, fa := from.RGBAF()
	tr, tg, tb, ta := to.RGBAF()
	channel := func(a, b float64) uint8 {
		return uint8(math.Round((a + (b-a)*t) * 255))
	}
	return property.RGBA(channel(fr, tr), channel(fg, tg), channel(fb, tb), channel(fa, ta))
}
