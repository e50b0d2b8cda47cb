// Package engine drives dotpatina's render and apply operations.
//
// An apply moves through these states:
//
//	Loaded -> Rendered -> Diffed -> Confirmed -> Applied
//	                             \-> Declined
//	                             \-> NoChanges
//
// Loading and rendering fail before anything is shown. Once targets are
// being written, the first failing file stops the run and earlier writes
// are kept.
package engine
