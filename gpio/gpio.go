// Package gpio is the pin-level hardware abstraction: configuring a line as
// input or output, driving and reading its logical level, and routing edge
// interrupts to per-pin callbacks. Platform specifics live behind the
// Backend capability interface; providers are in the platform packages.
package gpio

// Level is the logical state of a digital line, independent of voltage.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Invert returns the opposite level.
func (l Level) Invert() Level { return !l }

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// Mode is a pin's configured direction.
type Mode uint8

const (
	ModeUnconfigured Mode = iota
	ModeInput
	ModeOutput
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeOutput:
		return "output"
	default:
		return "unconfigured"
	}
}

// Pull selects the internal bias resistor on an input.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Edge selects which transitions the hardware reports.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// Callback is invoked on a qualifying edge with the argument that was
// registered alongside it. It runs on the dispatch context, never on the
// goroutine that configured the pin; keep it short and hand real work to a
// task of your own. The argument may be read concurrently with application
// code; coordinating that is the caller's contract, not this layer's.
type Callback func(arg any)

// Backend is the narrow capability surface a platform must provide. Pin
// numbers are physical identifiers from a pin-numbering table; the core
// passes them through without interpretation. Errors are opaque platform
// codes and are propagated verbatim to the operation that triggered them.
type Backend interface {
	SetDirection(pin int, mode Mode) error
	SetPull(pin int, pull Pull) error
	SetTrigger(pin int, edge Edge) error

	WriteLevel(pin int, level Level) error
	ReadLevel(pin int) Level

	// InstallService performs the platform's one-time global registration of
	// the edge-dispatch mechanism. flags are platform-defined.
	InstallService(flags uint) error
	// RegisterHandler attaches fn to pin; the platform invokes fn from its
	// interrupt context on every armed edge. fn must not block.
	RegisterHandler(pin int, fn func()) error
	// Mask and Unmask gate future edge notifications for pin without
	// touching its registration.
	Mask(pin int) error
	Unmask(pin int) error
}
