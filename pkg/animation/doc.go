// Package animation runs property transitions.
//
// [TransitionRunner] implements the transition host consumed by package
// style: when a definition or pseudo-class change alters a property that the
// element declares a transition for, the runner takes the change over and
// plays it out by writing interpolated local values on each [TransitionRunner.Tick].
// When a transition finishes, the local override is removed and the target
// value shows through from the definition again.
//
// Easing follows the CSS timing-function names. [CubicBezier] builds custom
// curves; [Ease], [EaseIn], [EaseOut], [EaseInOut] and [LinearCurve] are the
// standard ones.
//
// Time comes from the package clock, replaceable with [SetClock] for
// deterministic tests.
package animation
