//go:build rp2040 || rp2350

// Command pico-blinky: GPIO bring-up demo for RP2040/Pico.
//
// Build/flash (TinyGo):
//
//	tinygo flash -target pico ./cmd/pico-blinky
//
// Wiring: onboard LED on GP25; a momentary button from GP22 to ground
// (internal pull-up supplies the idle-high level).
package main

import (
	"time"

	"gpiokit/config"
	"gpiokit/devices/button"
	"gpiokit/gpio"
	"gpiokit/platform"
)

const plan = `{
  "pins": [
    {"name": "led", "pin": 25, "mode": "output", "initial": "low"}
  ]
}`

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("== gpiokit: pico blinky ==")

	chip := gpio.NewChip(platform.NewBackend())

	p, err := config.Parse([]byte(plan))
	if err != nil {
		println("plan:", err.Error())
		return
	}
	pins, err := p.Apply(chip, nil)
	if err != nil {
		println("apply:", err.Error())
		return
	}
	led := pins["led"]

	btn, err := button.New(chip.Pin(22), button.Params{ActiveLow: true, DebounceMs: 30})
	if err != nil {
		println("button:", err.Error())
		return
	}

	go func() {
		for ev := range btn.Events() {
			if ev.Pressed {
				println("button pressed")
			}
		}
	}()

	for {
		if err := led.Toggle(); err != nil {
			println("toggle:", err.Error())
		}
		time.Sleep(500 * time.Millisecond)
	}
}
