//go:build linux

// Package linuxgpio provides a gpio.Backend over the Linux GPIO character
// device, by way of mkch's gpio package. Use it on single-board computers
// where the MCU-style register backend does not apply:
//
//	backend := linuxgpio.New("/dev/gpiochip0")
//
// The v1 character-device ABI exposes no bias control, so SetPull records
// the request and leaves the line at the board's default bias.
package linuxgpio

import (
	"sync"
	"sync/atomic"

	mkch "github.com/mkch/gpio"

	"gpiokit/errcode"
	"gpiokit/gpio"
)

const consumer = "gpiokit"

// Backend drives one GPIO chip device.
type Backend struct {
	devicePath string

	mu    sync.Mutex
	lines map[int]*line
}

type line struct {
	dir  gpio.Mode
	trig gpio.Edge

	// plain is the value line (input or output); events replaces it once a
	// handler is armed.
	plain  *mkch.Line
	events *mkch.LineWithEvent

	handler func()
	masked  atomic.Bool
}

func New(devicePath string) *Backend {
	return &Backend{devicePath: devicePath, lines: map[int]*line{}}
}

func (b *Backend) line(pin int) (*line, error) {
	if pin < 0 {
		return nil, errcode.UnknownPin
	}
	l, ok := b.lines[pin]
	if !ok {
		l = &line{}
		b.lines[pin] = l
	}
	return l, nil
}

func (b *Backend) SetDirection(pin int, mode gpio.Mode) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.dir = mode
	l.closeLines()

	// The chip handle is only needed while opening a line.
	chip, err := mkch.OpenChip(b.devicePath)
	if err != nil {
		return err
	}
	defer chip.Close()

	flag := mkch.Input
	if mode == gpio.ModeOutput {
		flag = mkch.Output
	}
	opened, err := chip.OpenLine(uint32(pin), 0, flag, consumer)
	if err != nil {
		return err
	}
	l.plain = opened
	return nil
}

// SetPull is a recorded no-op: the v1 chardev ABI cannot program bias.
func (b *Backend) SetPull(pin int, pull gpio.Pull) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.line(pin)
	return err
}

func (b *Backend) SetTrigger(pin int, edge gpio.Edge) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.trig = edge
	if l.handler != nil {
		return b.armLocked(pin, l)
	}
	return nil
}

func (b *Backend) WriteLevel(pin int, level gpio.Level) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	if l.plain == nil || l.dir != gpio.ModeOutput {
		return &errcode.E{C: errcode.InvalidParams, Op: "write_level", Msg: "line is not an output"}
	}
	var v byte
	if level == gpio.High {
		v = 1
	}
	return l.plain.SetValue(v)
}

func (b *Backend) ReadLevel(pin int) gpio.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return gpio.Low
	}
	var v byte
	switch {
	case l.events != nil:
		v, _ = l.events.Value()
	case l.plain != nil:
		v, _ = l.plain.Value()
	}
	return gpio.Level(v != 0)
}

// InstallService is a no-op: event delivery is per line, armed in
// RegisterHandler.
func (b *Backend) InstallService(flags uint) error { return nil }

func (b *Backend) RegisterHandler(pin int, fn func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.handler = fn
	l.masked.Store(false)
	return b.armLocked(pin, l)
}

// armLocked swaps the plain input line for an event-capable one and starts
// its monitor. The monitor exits when the line's event channel closes.
func (b *Backend) armLocked(pin int, l *line) error {
	if l.handler == nil || l.trig == gpio.EdgeNone {
		return nil
	}
	l.closeLines()

	chip, err := mkch.OpenChip(b.devicePath)
	if err != nil {
		return err
	}
	defer chip.Close()

	eventFlag := mkch.BothEdges
	switch l.trig {
	case gpio.EdgeRising:
		eventFlag = mkch.RisingEdge
	case gpio.EdgeFalling:
		eventFlag = mkch.FallingEdge
	}
	opened, err := chip.OpenLineWithEvents(uint32(pin), mkch.Input, eventFlag, consumer)
	if err != nil {
		return err
	}
	l.events = opened

	fn := l.handler
	masked := &l.masked
	go func() {
		for range opened.Events() {
			if !masked.Load() {
				fn()
			}
		}
	}()
	return nil
}

// Mask gates the monitor; the kernel keeps producing events, they are just
// not forwarded.
func (b *Backend) Mask(pin int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.masked.Store(true)
	return nil
}

func (b *Backend) Unmask(pin int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, err := b.line(pin)
	if err != nil {
		return err
	}
	l.masked.Store(false)
	return nil
}

// Close releases every open line.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.lines {
		l.closeLines()
	}
	return nil
}

func (l *line) closeLines() {
	if l.plain != nil {
		_ = l.plain.Close()
		l.plain = nil
	}
	if l.events != nil {
		_ = l.events.Close()
		l.events = nil
	}
}

var _ gpio.Backend = (*Backend)(nil)
