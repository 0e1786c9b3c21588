// Package anim provides the small numeric toolkit used by the laserflow
// animation: random ranges, interpolation, easing curves, call rate
// limiting and device capability heuristics.
//
// All numeric helpers are pure. The only stateful values are
// [Debouncer] and the function returned by [Throttle], each of which owns
// one piece of private state.
package anim
