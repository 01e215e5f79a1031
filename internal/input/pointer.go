package input

// PointerEvent is a pointer position in window units, top-left origin, with
// the size of the surface it happened on.
type PointerEvent struct {
	X, Y          float32
	Button        Button // for down and up events
	Width, Height float32
}

// ScrollEvent is a wheel or trackpad scroll at the pointer position. Positive
// DY scrolls up / away from the user.
type ScrollEvent struct {
	X, Y          float32
	DX, DY        float32
	Width, Height float32
}

// PointerListener receives pointer events. Returning true consumes the event
// so listeners registered earlier do not see it.
type PointerListener interface {
	PointerDown(e PointerEvent) bool
	PointerMove(e PointerEvent) bool
	PointerUp(e PointerEvent) bool
	Scroll(e ScrollEvent) bool
}
