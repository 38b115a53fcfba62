//go:build !rp2040 && !rp2350

// Command simdemo walks the pin lifecycle against the simulated backend:
// configure, write, toggle, then a button press delivered through the
// dispatch service. Handy for eyeballing the HAL on a workstation.
package main

import (
	"fmt"
	"time"

	"gpiokit/config"
	"gpiokit/devices/button"
	"gpiokit/gpio"
	"gpiokit/pinmap"
	"gpiokit/platform/sim"
)

const plan = `{
  "pins": [
    {"name": "BUILTIN_LED", "mode": "output", "initial": "low"},
    {"name": "enable", "pin": 14, "mode": "output", "initial": "high"}
  ]
}`

func main() {
	backend := sim.New()
	chip := gpio.NewChip(backend)

	p, err := config.Parse([]byte(plan))
	if err != nil {
		fmt.Println("plan:", err)
		return
	}
	pins, err := p.Apply(chip, nil)
	if err != nil {
		fmt.Println("apply:", err)
		return
	}

	led := pins["BUILTIN_LED"]
	fmt.Printf("led (gpio %d) boots %v\n", led.Number(), led.Read())
	_ = led.Write(gpio.High)
	_ = led.Toggle()
	fmt.Printf("after write high + toggle: %v\n", led.Read())

	btn, err := button.New(chip.Pin(pinmap.D27), button.Params{ActiveLow: true, DebounceMs: 10})
	if err != nil {
		fmt.Println("button:", err)
		return
	}

	// Poke the line the way a finger would.
	backend.Drive(pinmap.D27, gpio.Low)
	select {
	case ev := <-btn.Events():
		fmt.Printf("button event: pressed=%v ts=%d\n", ev.Pressed, ev.TSms)
	case <-time.After(time.Second):
		fmt.Println("no button event (unexpected)")
	}
	backend.Release(pinmap.D27)

	fmt.Printf("dispatch installed=%v drops=%d\n",
		chip.Dispatch().Installed(), chip.Dispatch().Drops())
}
