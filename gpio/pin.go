package gpio

import "gpiokit/errcode"

// Chip ties a platform backend to the dispatch service routing its edge
// interrupts. Create one per physical backend and hand out Pins from it.
type Chip struct {
	backend Backend
	disp    *Dispatcher
}

func NewChip(b Backend) *Chip {
	return &Chip{backend: b, disp: newDispatcher(b)}
}

// Pin returns an unconfigured handle for physical pin number n. Resolve n
// through a pin-numbering table (e.g. package pinmap) before calling; the
// core never interprets it.
func (c *Chip) Pin(n int) *Pin {
	return &Pin{chip: c, num: n}
}

// Dispatch exposes the chip's dispatch service for inspection (install
// state, drop counter).
func (c *Chip) Dispatch() *Dispatcher { return c.disp }

// Config declares how a pin is to be set up.
type Config struct {
	Mode Mode

	// Initial is the level driven the moment an output is configured, so the
	// line never floats between setup and the first intentional write.
	// Ignored for inputs. Zero value is Low.
	Initial Level

	// Callback, if set on an input, is registered with the dispatch service
	// and invoked with CallbackArg on every falling edge. Nil is a normal
	// state: the pin becomes a polled input with no interrupt wiring.
	Callback    Callback
	CallbackArg any
}

// Pin is one physical GPIO line: its identity, configured mode, last
// commanded level, and, for inputs, its interrupt mask state.
type Pin struct {
	chip *Chip
	num  int
	mode Mode

	// level is the last commanded output level. It mirrors hardware after a
	// successful Write and is what Toggle inverts.
	level Level

	// irqEnabled tracks the mask state; the dispatch service owns the
	// registered callback and its argument.
	irqEnabled bool
}

func (p *Pin) Number() int { return p.num }
func (p *Pin) Mode() Mode  { return p.mode }

// InterruptEnabled reports whether edge notifications are currently
// unmasked. Meaningful only for inputs configured with a callback.
func (p *Pin) InterruptEnabled() bool { return p.irqEnabled }

// Configure performs the pin's one-time hardware setup. A pin is configured
// exactly once; a second call fails with already_configured rather than
// silently rewiring the line. Backend failures abort setup and propagate.
func (p *Pin) Configure(cfg Config) error {
	if p.mode != ModeUnconfigured {
		return &errcode.E{C: errcode.AlreadyConfigured, Op: "configure"}
	}
	switch cfg.Mode {
	case ModeOutput:
		return p.configureOutput(cfg)
	case ModeInput:
		return p.configureInput(cfg)
	default:
		return &errcode.E{C: errcode.InvalidMode, Op: "configure"}
	}
}

func (p *Pin) configureOutput(cfg Config) error {
	b := p.chip.backend
	if err := b.SetDirection(p.num, ModeOutput); err != nil {
		return platformErr("configure", err)
	}
	if err := b.SetPull(p.num, PullNone); err != nil {
		return platformErr("configure", err)
	}
	if err := b.SetTrigger(p.num, EdgeNone); err != nil {
		return platformErr("configure", err)
	}
	if err := b.WriteLevel(p.num, cfg.Initial); err != nil {
		return platformErr("configure", err)
	}
	p.mode = ModeOutput
	p.level = cfg.Initial
	return nil
}

func (p *Pin) configureInput(cfg Config) error {
	b := p.chip.backend
	if err := b.SetDirection(p.num, ModeInput); err != nil {
		return platformErr("configure", err)
	}
	// Inputs come up pulled high, never floating: the default wiring is
	// idle-high, active-low.
	if err := b.SetPull(p.num, PullUp); err != nil {
		return platformErr("configure", err)
	}
	registered := false
	if cfg.Callback != nil {
		if err := p.chip.disp.install(); err != nil {
			return err
		}
		if err := p.chip.disp.register(p.num, cfg.Callback, cfg.CallbackArg); err != nil {
			return err
		}
		registered = true
	}
	// Arm the trigger last: registration happens-before the hardware can
	// fire, so no edge is ever delivered for an unregistered pin.
	if err := b.SetTrigger(p.num, EdgeFalling); err != nil {
		// The pin stays unconfigured, so it must not hold its dispatch slot:
		// a retry would otherwise be refused as pin_in_use forever.
		if registered {
			p.chip.disp.unregister(p.num)
		}
		return platformErr("configure", err)
	}
	p.mode = ModeInput
	p.irqEnabled = registered
	return nil
}

// Write commits level to the line and records it as the commanded level.
func (p *Pin) Write(level Level) error {
	if p.mode != ModeOutput {
		return &errcode.E{C: errcode.WrongMode, Op: "write"}
	}
	if err := p.chip.backend.WriteLevel(p.num, level); err != nil {
		return platformErr("write", err)
	}
	p.level = level
	return nil
}

// Read returns the hardware-reported level. Legal in any mode; on an output
// it reads the wire rather than the cached command, so an externally forced
// line is visible. An unreadable pin is platform-fatal, not recoverable, so
// there is no error return.
func (p *Pin) Read() Level {
	return p.chip.backend.ReadLevel(p.num)
}

// Toggle drives the inverse of the last commanded level. It deliberately
// does not read-modify-write the wire: toggling is defined against "my last
// command", so an externally driven line cannot skew the result.
func (p *Pin) Toggle() error {
	if p.mode != ModeOutput {
		return &errcode.E{C: errcode.WrongMode, Op: "toggle"}
	}
	return p.Write(p.level.Invert())
}

// EnableInterrupt unmasks edge notifications for an input pin.
func (p *Pin) EnableInterrupt() error {
	if p.mode != ModeInput {
		return &errcode.E{C: errcode.WrongMode, Op: "enable_interrupt"}
	}
	if err := p.chip.backend.Unmask(p.num); err != nil {
		return platformErr("enable_interrupt", err)
	}
	p.irqEnabled = true
	return nil
}

// DisableInterrupt masks future edges. The registration and its argument
// stay in place for a later enable, and a callback already dispatching is
// not aborted.
func (p *Pin) DisableInterrupt() error {
	if p.mode != ModeInput {
		return &errcode.E{C: errcode.WrongMode, Op: "disable_interrupt"}
	}
	if err := p.chip.backend.Mask(p.num); err != nil {
		return platformErr("disable_interrupt", err)
	}
	p.irqEnabled = false
	return nil
}

func platformErr(op string, err error) error {
	return &errcode.E{C: errcode.PlatformFailure, Op: op, Err: err}
}
