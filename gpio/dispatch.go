package gpio

import (
	"sync"
	"sync/atomic"

	"gpiokit/errcode"
)

// isrQueueLen bounds the ISR-side handoff queue. Overflow drops the edge and
// bumps a counter; the interrupt context is never blocked.
const isrQueueLen = 64

// Dispatcher routes hardware edge events to the callback registered for the
// pin that fired. One dispatcher exists per Chip; it is installed lazily by
// the first input pin configured with a callback and stays installed for the
// life of the process. There is no teardown.
type Dispatcher struct {
	backend Backend

	mu        sync.Mutex
	installed bool
	entries   map[int]dispatchEntry

	isrQ  chan int // pin numbers, written from interrupt context
	drops uint32
}

type dispatchEntry struct {
	cb  Callback
	arg any
}

func newDispatcher(b Backend) *Dispatcher {
	return &Dispatcher{
		backend: b,
		entries: map[int]dispatchEntry{},
		isrQ:    make(chan int, isrQueueLen),
	}
}

// install performs the one-time platform registration and starts the
// dispatch context. Any number of configuring pins may race here; the mutex
// serialises them and only the first call does real work.
func (d *Dispatcher) install() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.installed {
		return nil
	}
	if err := d.backend.InstallService(0); err != nil {
		return &errcode.E{C: errcode.PlatformFailure, Op: "install", Err: err}
	}
	go d.run()
	d.installed = true
	return nil
}

// register associates pin with cb and arg. A pin never silently replaces an
// existing registration; reconfiguring is an explicit, separate act. The
// table entry is written before the platform handler is attached, so an edge
// that fires immediately after attachment always finds its callback.
func (d *Dispatcher) register(pin int, cb Callback, arg any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.entries[pin]; ok {
		return &errcode.E{C: errcode.PinInUse, Op: "register"}
	}
	d.entries[pin] = dispatchEntry{cb: cb, arg: arg}

	// Runs in the platform's interrupt context: capture the pin number and
	// hand off without blocking.
	handler := func() {
		select {
		case d.isrQ <- pin:
		default:
			atomic.AddUint32(&d.drops, 1)
		}
	}
	if err := d.backend.RegisterHandler(pin, handler); err != nil {
		delete(d.entries, pin)
		return &errcode.E{C: errcode.PlatformFailure, Op: "register", Err: err}
	}
	return nil
}

// unregister removes pin's table entry so a later register can claim the pin
// again. The backend handler may stay attached; run skips pins with no entry,
// and a re-register replaces the handler.
func (d *Dispatcher) unregister(pin int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, pin)
}

// run is the dispatch context. A single consumer, so edges on one pin are
// delivered in hardware-trigger order; no ordering holds between pins.
func (d *Dispatcher) run() {
	for pin := range d.isrQ {
		d.mu.Lock()
		e, ok := d.entries[pin]
		d.mu.Unlock()
		if !ok {
			continue
		}
		e.cb(e.arg)
	}
}

// Installed reports whether the one-time platform installation has happened.
func (d *Dispatcher) Installed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.installed
}

// Drops reports edges discarded because the handoff queue was full.
func (d *Dispatcher) Drops() uint32 { return atomic.LoadUint32(&d.drops) }
