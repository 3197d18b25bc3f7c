package widget

import (
	"errors"
	"fmt"
)

// ErrNoSelection is raised when a selection part is built without the
// Selection it belongs to.
var ErrNoSelection = errors.New("selection part used outside a selection")

func mustSelection(part string, s *Selection) {
	if s == nil {
		panic(fmt.Errorf("%s: %w", part, ErrNoSelection))
	}
}
