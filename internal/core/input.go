package core

// InputKind distinguishes the input events delivered to the controlled actor.
type InputKind int

const (
	InputButtonDown InputKind = iota
	InputButtonUp
	InputAxis
)

// String returns a human-readable name for the input kind.
func (k InputKind) String() string {
	switch k {
	case InputButtonDown:
		return "ButtonDown"
	case InputButtonUp:
		return "ButtonUp"
	case InputAxis:
		return "Axis"
	default:
		return "Unknown"
	}
}

// InputEvent is a single named input change. Names are game-defined
// ("left", "jump") and come from the key binding table, not raw keys.
type InputEvent struct {
	Kind  InputKind
	Name  string
	Value float64 // Axis position in [-1, 1]; unused for buttons
}

// InputFrame collects the input events gathered between two ticks, in the
// order they arrived.
type InputFrame struct {
	Events []InputEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// ButtonDown records a button press.
func (f *InputFrame) ButtonDown(name string) {
	f.Events = append(f.Events, InputEvent{Kind: InputButtonDown, Name: name})
}

// ButtonUp records a button release.
func (f *InputFrame) ButtonUp(name string) {
	f.Events = append(f.Events, InputEvent{Kind: InputButtonUp, Name: name})
}

// Axis records an axis change.
func (f *InputFrame) Axis(name string, value float64) {
	f.Events = append(f.Events, InputEvent{Kind: InputAxis, Name: name, Value: value})
}

// Empty reports whether no events were recorded.
func (f InputFrame) Empty() bool {
	return len(f.Events) == 0
}

// Clear resets the frame for the next tick, keeping the backing array.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Bindings maps physical key names to game button names.
type Bindings map[string]string

// Button returns the button bound to key, if any.
func (b Bindings) Button(key string) (string, bool) {
	name, ok := b[key]
	return name, ok
}

// Joystick axis dead zone and saturation thresholds.
const (
	axisDeadZone   = 0x1000
	axisSaturation = 0x7000
)

// AxisValue maps a raw signed 16-bit joystick reading to [-1, 1] with a
// dead zone around the center and saturation near the extremes.
func AxisValue(raw int16) float64 {
	v := int(raw)
	switch {
	case v < -axisSaturation:
		return -1
	case v < -axisDeadZone:
		return float64(v+axisDeadZone) / float64(axisSaturation-axisDeadZone)
	case v > axisSaturation:
		return 1
	case v > axisDeadZone:
		return float64(v-axisDeadZone) / float64(axisSaturation-axisDeadZone)
	default:
		return 0
	}
}
