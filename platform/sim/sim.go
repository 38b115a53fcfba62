// Package sim is an in-memory gpio.Backend for host builds, demos and
// integration tests. It models direction, bias, trigger selection, levels
// and interrupt masking, and lets the caller drive lines and fire edges the
// way external hardware would.
package sim

import (
	"sync"

	"gpiokit/errcode"
	"gpiokit/gpio"
)

type line struct {
	dir     gpio.Mode
	pull    gpio.Pull
	trig    gpio.Edge
	level   gpio.Level
	driven  bool // an external Drive overrides the bias
	masked  bool
	handler func()
}

// Backend simulates one GPIO fabric.
type Backend struct {
	mu        sync.Mutex
	lines     map[int]*line
	installed bool

	// Installs counts InstallService calls, for tests asserting the
	// at-most-once contract.
	Installs int
}

func New() *Backend {
	return &Backend{lines: map[int]*line{}}
}

func (b *Backend) line(pin int) *line {
	l, ok := b.lines[pin]
	if !ok {
		l = &line{}
		b.lines[pin] = l
	}
	return l
}

func (b *Backend) SetDirection(pin int, mode gpio.Mode) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.line(pin).dir = mode
	return nil
}

func (b *Backend) SetPull(pin int, pull gpio.Pull) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.line(pin)
	l.pull = pull
	if l.dir == gpio.ModeInput && !l.driven {
		l.level = biasLevel(pull)
	}
	return nil
}

func (b *Backend) SetTrigger(pin int, edge gpio.Edge) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.line(pin).trig = edge
	return nil
}

func (b *Backend) WriteLevel(pin int, level gpio.Level) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.line(pin)
	if l.dir != gpio.ModeOutput {
		return &errcode.E{C: errcode.InvalidParams, Op: "write_level", Msg: "pin is not an output"}
	}
	l.level = level
	return nil
}

func (b *Backend) ReadLevel(pin int) gpio.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.line(pin).level
}

func (b *Backend) InstallService(flags uint) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Installs++
	b.installed = true
	return nil
}

func (b *Backend) RegisterHandler(pin int, fn func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.installed {
		return &errcode.E{C: errcode.Error, Op: "register_handler", Msg: "dispatch service not installed"}
	}
	b.line(pin).handler = fn
	return nil
}

func (b *Backend) Mask(pin int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.line(pin).masked = true
	return nil
}

func (b *Backend) Unmask(pin int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.line(pin).masked = false
	return nil
}

// Drive sets the level as if an external circuit drove the line. A
// transition matching the armed trigger on an unmasked pin invokes the
// registered handler, like the hardware interrupt matrix would.
func (b *Backend) Drive(pin int, level gpio.Level) {
	b.mu.Lock()
	l := b.line(pin)
	old := l.level
	l.level = level
	l.driven = true
	h := l.handler
	fire := h != nil && !l.masked && old != level && edgeMatches(l.trig, level)
	b.mu.Unlock()

	if fire {
		h()
	}
}

// Release removes the external drive; an input settles back to its bias.
func (b *Backend) Release(pin int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.line(pin)
	l.driven = false
	if l.dir == gpio.ModeInput {
		l.level = biasLevel(l.pull)
	}
}

func biasLevel(pull gpio.Pull) gpio.Level {
	if pull == gpio.PullUp {
		return gpio.High
	}
	return gpio.Low
}

func edgeMatches(trig gpio.Edge, newLevel gpio.Level) bool {
	switch trig {
	case gpio.EdgeRising:
		return newLevel == gpio.High
	case gpio.EdgeFalling:
		return newLevel == gpio.Low
	case gpio.EdgeBoth:
		return true
	default:
		return false
	}
}

var _ gpio.Backend = (*Backend)(nil)
