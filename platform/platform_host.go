//go:build !rp2040 && !rp2350

package platform

import (
	"gpiokit/gpio"
	"gpiokit/platform/sim"
)

// NewBackend returns the host backend: a simulated GPIO fabric.
func NewBackend() gpio.Backend { return sim.New() }
