// Package button turns a GPIO input and its edge callback into a debounced
// press-event stream. The pin's default wiring applies: pulled up, falling
// edge on press, so a plain momentary switch to ground needs no parameters.
package button

import (
	"time"

	"gpiokit/gpio"
	"gpiokit/x/mathx"
	"gpiokit/x/timex"
)

// maxDebounceMs caps configuration typos; nobody debounces for a minute.
const maxDebounceMs = 60_000

// Event is one accepted press edge.
type Event struct {
	Pressed bool
	TSms    int64
}

type Params struct {
	// ActiveLow marks pressed == line low. True matches the pull-up default
	// wiring and is what you want for a switch to ground.
	ActiveLow  bool
	DebounceMs int
	QueueLen   int
}

// Device owns one input pin and the callback registered on it.
type Device struct {
	pin        *gpio.Pin
	activeLow  bool
	debounceMs int64

	// lastMs is touched only from the dispatch context.
	lastMs int64

	events chan Event
}

// New configures pin as an input whose falling edges feed Events.
func New(pin *gpio.Pin, p Params) (*Device, error) {
	if p.QueueLen <= 0 {
		p.QueueLen = 8
	}
	d := &Device{
		pin:        pin,
		activeLow:  p.ActiveLow,
		debounceMs: int64(mathx.Clamp(p.DebounceMs, 0, maxDebounceMs)),
		events:     make(chan Event, p.QueueLen),
	}
	err := pin.Configure(gpio.Config{
		Mode:        gpio.ModeInput,
		Callback:    onEdge,
		CallbackArg: d,
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Events delivers accepted presses. A slow consumer loses events rather than
// stalling the dispatch context.
func (d *Device) Events() <-chan Event { return d.events }

// Pause masks further edges; the registration stays.
func (d *Device) Pause() error { return d.pin.DisableInterrupt() }

// Resume unmasks edges after a Pause.
func (d *Device) Resume() error { return d.pin.EnableInterrupt() }

// Pressed polls the current logical state.
func (d *Device) Pressed() bool {
	level := d.pin.Read()
	if d.activeLow {
		level = level.Invert()
	}
	return bool(level)
}

// onEdge runs on the dispatch context.
func onEdge(arg any) {
	d := arg.(*Device)
	now := timex.NowMs()
	if d.lastMs != 0 && now-d.lastMs < d.debounceMs {
		return
	}
	d.lastMs = now

	select {
	case d.events <- Event{Pressed: d.Pressed(), TSms: now}:
	default:
	}
}

// Debounce reports the accepted window, for callers sizing their own
// timeouts.
func (d *Device) Debounce() time.Duration {
	return time.Duration(d.debounceMs) * time.Millisecond
}
