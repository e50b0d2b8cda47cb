// Package diff computes and formats line diffs between the current content
// of a target file and its newly rendered content.
//
// The formatted diff keeps only the lines near a change. Each shown line
// reads
//
//	<marker> <old#> <new#> | <content>
//
// where the marker is "+", "-" or a space. Runs of unchanged lines further
// than four lines from any change collapse into a single
// "... N unchanged lines" marker.
package diff
