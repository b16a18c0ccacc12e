package core

type EventKind int

const (
	EventButton EventKind = iota
	EventMotion
)

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// DragButton is the button that drives the orbit controller.
const DragButton = MouseButtonLeft

type InputEvent struct {
	Kind    EventKind
	Button  MouseButton
	Pressed bool
	DX, DY  float32
}

// Input turns platform callbacks into queued events. The platform layer only
// reports absolute cursor positions, so motion deltas are derived here.
type Input struct {
	MouseX, MouseY float64
	hasCursor      bool

	events []InputEvent
}

func NewInput() *Input {
	return &Input{events: make([]InputEvent, 0, 64)}
}

func (in *Input) MouseButton(button MouseButton, pressed bool) {
	in.events = append(in.events, InputEvent{Kind: EventButton, Button: button, Pressed: pressed})
}

// CursorPos records an absolute cursor sample. The first sample only seeds
// the position and produces no event.
func (in *Input) CursorPos(x, y float64) {
	if !in.hasCursor {
		in.MouseX, in.MouseY = x, y
		in.hasCursor = true
		return
	}
	dx := x - in.MouseX
	dy := y - in.MouseY
	in.MouseX, in.MouseY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	in.events = append(in.events, InputEvent{Kind: EventMotion, DX: float32(dx), DY: float32(dy)})
}

// Pending reports how many events are queued.
func (in *Input) Pending() int {
	return len(in.events)
}

// Drain hands every queued event to fn in arrival order and empties the queue.
func (in *Input) Drain(fn func(InputEvent)) {
	for _, ev := range in.events {
		fn(ev)
	}
	in.events = in.events[:0]
}
