// Package expander renders a function set once per coordinate of a platform.
//
// Blocks are emitted units-major, pins-minor, separated by one blank line.
// Every block must declare the set's functions in order and identifiers must
// be unique across the run; otherwise Generate fails and returns no output.
package expander
