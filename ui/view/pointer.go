package view

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// pointer returns the widget-local position of a bound mouse event.
func pointer(e *Event) (int, int) {
	if e == nil {
		return 0, 0
	}
	return e.X, e.Y
}

// wheelIn reports whether a <MouseWheel> event rolled away from the user.
func wheelIn(e *Event) bool {
	return e != nil && e.Delta > 0
}
