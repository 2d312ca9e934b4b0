// Package timescale eases the simulation time scale toward a target and
// steps the target frame rate cap.
//
// A [Controller] sits between a display surface and a [Host] that owns two
// global settings (time scale and frame rate cap) plus a flag saying whether
// the simulation is actively playing:
//
//	ctrl := timescale.New(host, timescale.NewSystemClock())
//	ctrl.SetTargetTimeScale(0.3)
//	// once per rendered frame:
//	ctrl.Advance(clock.Now())
//
// While the host is idle every change is written through immediately. While
// it is simulating, time scale changes are linearly interpolated over
// [TransitionDuration] seconds and frame rate changes land on the next
// Advance.
//
// # Thread Safety
//
// A Controller is driven from a single loop and is NOT safe for concurrent
// use.
package timescale
