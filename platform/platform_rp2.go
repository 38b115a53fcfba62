//go:build rp2040 || rp2350

package platform

import (
	"machine"
	"sync"

	"gpiokit/errcode"
	"gpiokit/gpio"
)

// NewBackend returns the RP2-series backend over the machine package.
func NewBackend() gpio.Backend { return newRP2Backend() }

const rp2MaxPin = 29

// rp2Backend adapts the machine package's combined pin configuration to the
// split direction/pull/trigger primitives: the desired state is accumulated
// per pin and applied whenever a piece changes.
type rp2Backend struct {
	mu    sync.Mutex
	lines map[int]*rp2Line
}

type rp2Line struct {
	dir     gpio.Mode
	pull    gpio.Pull
	trig    gpio.Edge
	handler func()
	masked  bool
}

func newRP2Backend() *rp2Backend {
	return &rp2Backend{lines: map[int]*rp2Line{}}
}

func (b *rp2Backend) line(pin int) (*rp2Line, error) {
	if pin < 0 || pin > rp2MaxPin {
		return nil, errcode.UnknownPin
	}
	l, ok := b.lines[pin]
	if !ok {
		l = &rp2Line{}
		b.lines[pin] = l
	}
	return l, nil
}

func (b *rp2Backend) SetDirection(pin int, mode gpio.Mode) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.dir = mode
	b.apply(pin, l)
	return nil
}

func (b *rp2Backend) SetPull(pin int, pull gpio.Pull) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.pull = pull
	b.apply(pin, l)
	return nil
}

func (b *rp2Backend) apply(pin int, l *rp2Line) {
	var mode machine.PinMode
	switch l.dir {
	case gpio.ModeOutput:
		mode = machine.PinOutput
	case gpio.ModeInput:
		switch l.pull {
		case gpio.PullUp:
			mode = machine.PinInputPullup
		case gpio.PullDown:
			mode = machine.PinInputPulldown
		default:
			mode = machine.PinInput
		}
	default:
		return
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: mode})
}

func (b *rp2Backend) SetTrigger(pin int, edge gpio.Edge) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.trig = edge
	if l.handler != nil && !l.masked {
		return b.arm(pin, l)
	}
	return nil
}

func (b *rp2Backend) WriteLevel(pin int, level gpio.Level) error {
	if pin < 0 || pin > rp2MaxPin {
		return errcode.UnknownPin
	}
	machine.Pin(pin).Set(bool(level))
	return nil
}

func (b *rp2Backend) ReadLevel(pin int) gpio.Level {
	if pin < 0 || pin > rp2MaxPin {
		return gpio.Low
	}
	return gpio.Level(machine.Pin(pin).Get())
}

// InstallService is a no-op on RP2: the machine runtime owns the vector
// table and per-pin IRQ routing is armed in RegisterHandler.
func (b *rp2Backend) InstallService(flags uint) error { return nil }

func (b *rp2Backend) RegisterHandler(pin int, fn func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.handler = fn
	l.masked = false
	return b.arm(pin, l)
}

func (b *rp2Backend) arm(pin int, l *rp2Line) error {
	change := pinChange(l.trig)
	if change == 0 || l.handler == nil {
		return nil
	}
	fn := l.handler
	return machine.Pin(pin).SetInterrupt(change, func(machine.Pin) { fn() })
}

func (b *rp2Backend) Mask(pin int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.masked = true
	return machine.Pin(pin).SetInterrupt(0, nil)
}

func (b *rp2Backend) Unmask(pin int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.masked = false
	return b.arm(pin, l)
}

func pinChange(e gpio.Edge) machine.PinChange {
	switch e {
	case gpio.EdgeRising:
		return machine.PinRising
	case gpio.EdgeFalling:
		return machine.PinFalling
	case gpio.EdgeBoth:
		return machine.PinToggle
	default:
		return 0
	}
}
