// Package widget implements the stateful controls of the configuration
// surface without reference to any renderer.
//
// Every control reads its value through a Value, which is either owned by
// the control (uncontrolled) or sourced from a parent (controlled). The mode
// is fixed when the control is built and never switches afterwards:
//
//   - Uncontrolled: the control holds the value, Write replaces it and then
//     notifies the parent.
//   - Controlled: Read always returns what the parent supplies; Write only
//     notifies, and the parent must store the new value for Read to change.
//
// Selection composes a Value with an open/closed state machine, a
// pointer.Document listener that closes the overlay on outside activation,
// and layout.ComputePosition for anchoring the overlay under its trigger.
// Toggle is a binary Value. FileAcceptor validates submitted files against
// a set of MIME types and holds at most one accepted file.
//
// Controls are not safe for concurrent use; drive them from a single event
// loop.
package widget
