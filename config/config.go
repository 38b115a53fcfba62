// Package config turns an embedded JSON pin plan into configured pins.
// A plan names each line, says which way it points, and for outputs what
// level it boots at; interrupt callbacks are attached through hooks at
// apply time, since a function cannot live in JSON.
package config

import (
	"encoding/json"

	"gpiokit/errcode"
	"gpiokit/gpio"
	"gpiokit/pinmap"
)

// Plan is the bring-up description for a board's pins.
type Plan struct {
	Pins []PinPlan `json:"pins"`
}

// PinPlan declares one line. Name doubles as the handle key and, when Pin is
// absent, as the pinmap lookup key.
type PinPlan struct {
	Name    string `json:"name"`
	Pin     *int   `json:"pin,omitempty"`     // physical number; wins over Name
	Mode    string `json:"mode"`              // "input" | "output"
	Initial string `json:"initial,omitempty"` // "low" | "high", outputs only
}

// Hook supplies the callback wiring for a named input at apply time.
type Hook struct {
	Callback gpio.Callback
	Arg      any
}

// Parse decodes and validates a plan.
func Parse(raw []byte) (Plan, error) {
	var p Plan
	if err := json.Unmarshal(raw, &p); err != nil {
		return Plan{}, &errcode.E{C: errcode.InvalidPayload, Op: "parse", Err: err}
	}
	seen := map[string]bool{}
	for _, pp := range p.Pins {
		if pp.Name == "" {
			return Plan{}, &errcode.E{C: errcode.InvalidParams, Op: "parse", Msg: "pin entry without a name"}
		}
		if seen[pp.Name] {
			return Plan{}, &errcode.E{C: errcode.InvalidParams, Op: "parse", Msg: "duplicate pin name " + pp.Name}
		}
		seen[pp.Name] = true
		switch pp.Mode {
		case "input", "output":
		default:
			return Plan{}, &errcode.E{C: errcode.InvalidMode, Op: "parse", Msg: pp.Name + ": mode " + pp.Mode}
		}
		switch pp.Initial {
		case "", "low", "high":
		default:
			return Plan{}, &errcode.E{C: errcode.InvalidParams, Op: "parse", Msg: pp.Name + ": initial " + pp.Initial}
		}
		if _, err := pp.resolve(); err != nil {
			return Plan{}, err
		}
	}
	return p, nil
}

func (pp PinPlan) resolve() (int, error) {
	n := pinmap.NoPin
	if pp.Pin != nil {
		n = *pp.Pin
	} else if mapped, ok := pinmap.ByName(pp.Name); ok {
		n = mapped
	}
	if !pinmap.Valid(n) {
		return pinmap.NoPin, &errcode.E{C: errcode.UnknownPin, Op: "resolve", Msg: pp.Name}
	}
	return n, nil
}

// Apply configures every planned pin on chip and returns the handles keyed
// by name. Inputs named in hooks are configured with that callback; the rest
// become polled inputs. The first failure aborts the bring-up.
func (p Plan) Apply(chip *gpio.Chip, hooks map[string]Hook) (map[string]*gpio.Pin, error) {
	pins := make(map[string]*gpio.Pin, len(p.Pins))
	for _, pp := range p.Pins {
		n, err := pp.resolve()
		if err != nil {
			return nil, err
		}
		cfg := gpio.Config{}
		switch pp.Mode {
		case "output":
			cfg.Mode = gpio.ModeOutput
			if pp.Initial == "high" {
				cfg.Initial = gpio.High
			}
		case "input":
			cfg.Mode = gpio.ModeInput
			if h, ok := hooks[pp.Name]; ok {
				cfg.Callback = h.Callback
				cfg.CallbackArg = h.Arg
			}
		}
		pin := chip.Pin(n)
		if err := pin.Configure(cfg); err != nil {
			return nil, err
		}
		pins[pp.Name] = pin
	}
	return pins, nil
}
