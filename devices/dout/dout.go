// Package dout drives a logical output (LED, enable line, relay) over a
// GPIO output, folding active-low wiring out of the caller's view.
package dout

import "gpiokit/gpio"

type Params struct {
	ActiveLow bool
	Initial   bool // logical, before active-low folding
}

// Device owns one output pin.
type Device struct {
	pin       *gpio.Pin
	activeLow bool
}

// New configures pin as an output at the logical initial level.
func New(pin *gpio.Pin, p Params) (*Device, error) {
	level := gpio.Level(p.Initial)
	if p.ActiveLow {
		level = level.Invert()
	}
	if err := pin.Configure(gpio.Config{Mode: gpio.ModeOutput, Initial: level}); err != nil {
		return nil, err
	}
	return &Device{pin: pin, activeLow: p.ActiveLow}, nil
}

// Set drives the logical state.
func (d *Device) Set(on bool) error {
	level := gpio.Level(on)
	if d.activeLow {
		level = level.Invert()
	}
	return d.pin.Write(level)
}

// Toggle flips the last commanded state.
func (d *Device) Toggle() error { return d.pin.Toggle() }

// Get reads the logical state from the wire.
func (d *Device) Get() bool {
	level := d.pin.Read()
	if d.activeLow {
		level = level.Invert()
	}
	return bool(level)
}

func (d *Device) Pin() *gpio.Pin { return d.pin }
