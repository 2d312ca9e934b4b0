// Package engine is the simulation host the time scale panel controls.
//
// An [Engine] owns the two global settings ([Engine.TimeScale] and
// [Engine.TargetFrameRate]) and a play mode. In play mode each [Engine.Frame]
// converts a slice of wall time into scaled simulation time and integrates
// it in fixed steps; in edit mode nothing moves.
//
// The engine coerces settings it cannot honor: a frame rate of 0 means
// uncapped, caps above Config.MaxFrameRate are clamped, and time scales are
// clamped to [0, MaxHostTimeScale].
package engine
