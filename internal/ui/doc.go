// Package ui contains the Bubble Tea program that renders the simulator
// configuration form.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (keys, mouse, probe results, backend updates).
//   - Keyboard input goes to the open overlay first, then to global bindings,
//     then to the focused field (internal/ui/input.go).
//   - Pointer presses are hit-tested against regions recorded by the last
//     View call (internal/ui/mouse.go). The derivation trigger consumes its
//     own presses; every other press is dispatched to the pointer.Document so
//     an open overlay can close on outside activation.
//
// State ownership:
//   - The Model owns the form.SimulatorConfig. The derivation selection and
//     the logging toggle read from it and write back through their change
//     callbacks; the file acceptors report accepted paths the same way.
//   - Opening the overlay returns a placement function that runs as a
//     placeOverlayMsg, after the render that shows the open state.
//
// Background work:
//   - File probing and payload encoding run through the internal/ui/command
//     bus. A backend.Watcher polls accepted files; its events surface as
//     warnings on the affected card.
package ui
