// Package trace replays scripted panel input against an engine without a
// terminal and records what the panel would have shown on every tick.
//
// A [Script] is a YAML timeline:
//
//	name: brake
//	rate: 60
//	duration: 2
//	events:
//	  - {at: 0, kind: play}
//	  - {at: 0.5, kind: time_scale, value: 0}
//	  - {at: 1.0, kind: frame_rate, value: 30}
//
// [Run] drives a timescale.Controller on a manual clock so results are
// deterministic; [Store] saves samples as CSV next to JSON metadata.
package trace
