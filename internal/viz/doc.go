// Package viz renders stored flight runs in the terminal.
//
// [Model] is a Bubble Tea program that replays a [dynamo.Result] sample by
// sample. It draws the ground track on a Braille [Canvas] next to an
// asciigraph chart of the selected state.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	[ ]   - Step backward/forward one sample
//	Tab   - Cycle the charted state
//	+ -   - Change playback speed
//	R     - Restart from the first sample
//	?     - Toggle help
//	Q     - Quit
package viz
