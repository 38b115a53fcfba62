package gpio

import (
	"sync"
	"testing"
	"time"

	"gpiokit/errcode"
)

func recvArg(t *testing.T, ch <-chan any, d time.Duration) (any, bool) {
	t.Helper()
	select {
	case v := <-ch:
		return v, true
	case <-time.After(d):
		return nil, false
	}
}

func TestInstallIdempotent(t *testing.T) {
	b := newFakeBackend()
	c := NewChip(b)

	for _, n := range []int{21, 22} {
		p := c.Pin(n)
		err := p.Configure(Config{Mode: ModeInput, Callback: func(any) {}})
		if err != nil {
			t.Fatalf("configure pin %d: %v", n, err)
		}
	}
	if b.installs != 1 {
		t.Fatalf("platform installs: want 1, got %d", b.installs)
	}
	// Direct re-entry is a no-op too.
	if err := c.Dispatch().install(); err != nil {
		t.Fatalf("re-install: %v", err)
	}
	if b.installs != 1 {
		t.Fatalf("platform installs after re-entry: want 1, got %d", b.installs)
	}
}

func TestInstallSerializedAcrossGoroutines(t *testing.T) {
	b := newFakeBackend()
	d := NewChip(b).Dispatch()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.install(); err != nil {
				t.Errorf("install: %v", err)
			}
		}()
	}
	wg.Wait()
	if b.installs != 1 {
		t.Fatalf("racing installs: want exactly 1, got %d", b.installs)
	}
}

func TestCallbackInvokedOnceWithArg(t *testing.T) {
	b := newFakeBackend()
	c := NewChip(b)

	got := make(chan any, 4)
	arg := &struct{ tag string }{tag: "button0"}

	p := c.Pin(22)
	err := p.Configure(Config{
		Mode:        ModeInput,
		Callback:    func(a any) { got <- a },
		CallbackArg: arg,
	})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if !p.InterruptEnabled() {
		t.Fatal("interrupt not enabled after configure with callback")
	}

	// Pull-up idles the line high; drive it low for a falling edge.
	b.drive(22, Low)

	v, ok := recvArg(t, got, 100*time.Millisecond)
	if !ok {
		t.Fatal("callback not invoked")
	}
	if v != arg {
		t.Fatalf("callback arg: want the registered value, got %v", v)
	}
	if _, ok := recvArg(t, got, 20*time.Millisecond); ok {
		t.Fatal("callback invoked more than once for a single edge")
	}
}

func TestDisableInterruptMasksFutureEdges(t *testing.T) {
	b := newFakeBackend()
	c := NewChip(b)

	got := make(chan any, 4)
	p := c.Pin(27)
	err := p.Configure(Config{Mode: ModeInput, Callback: func(a any) { got <- a }})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}

	b.drive(27, Low)
	if _, ok := recvArg(t, got, 100*time.Millisecond); !ok {
		t.Fatal("expected first edge to deliver")
	}

	if err := p.DisableInterrupt(); err != nil {
		t.Fatalf("disable_interrupt: %v", err)
	}
	if p.InterruptEnabled() {
		t.Fatal("InterruptEnabled still true after disable")
	}
	b.drive(27, High)
	b.drive(27, Low)
	if _, ok := recvArg(t, got, 30*time.Millisecond); ok {
		t.Fatal("edge delivered while masked")
	}

	// Masking is reversible and keeps the registration.
	if err := p.EnableInterrupt(); err != nil {
		t.Fatalf("enable_interrupt: %v", err)
	}
	b.drive(27, High)
	b.drive(27, Low)
	if _, ok := recvArg(t, got, 100*time.Millisecond); !ok {
		t.Fatal("edge not delivered after re-enable")
	}
}

func TestNoCrossPinDispatch(t *testing.T) {
	b := newFakeBackend()
	c := NewChip(b)

	got1 := make(chan any, 4)
	got2 := make(chan any, 4)

	p1 := c.Pin(18)
	if err := p1.Configure(Config{Mode: ModeInput, Callback: func(a any) { got1 <- a }, CallbackArg: 18}); err != nil {
		t.Fatalf("configure p1: %v", err)
	}
	p2 := c.Pin(19)
	if err := p2.Configure(Config{Mode: ModeInput, Callback: func(a any) { got2 <- a }, CallbackArg: 19}); err != nil {
		t.Fatalf("configure p2: %v", err)
	}

	b.drive(18, Low)
	if v, ok := recvArg(t, got1, 100*time.Millisecond); !ok || v != 18 {
		t.Fatalf("pin 18 delivery: ok=%v v=%v", ok, v)
	}
	if _, ok := recvArg(t, got2, 20*time.Millisecond); ok {
		t.Fatal("pin 18 edge leaked to pin 19's callback")
	}

	b.drive(19, Low)
	if v, ok := recvArg(t, got2, 100*time.Millisecond); !ok || v != 19 {
		t.Fatalf("pin 19 delivery: ok=%v v=%v", ok, v)
	}
	if _, ok := recvArg(t, got1, 20*time.Millisecond); ok {
		t.Fatal("pin 19 edge leaked to pin 18's callback")
	}
}

func TestRegisterRefusesSilentReplacement(t *testing.T) {
	b := newFakeBackend()
	c := NewChip(b)

	p := c.Pin(25)
	if err := p.Configure(Config{Mode: ModeInput, Callback: func(any) {}}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	// A fresh handle for the same physical pin must not steal the callback.
	q := c.Pin(25)
	err := q.Configure(Config{Mode: ModeInput, Callback: func(any) {}})
	if errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("want pin_in_use, got %v", err)
	}
}

func TestEdgesDeliveredInTriggerOrder(t *testing.T) {
	b := newFakeBackend()
	c := NewChip(b)

	got := make(chan any, 16)
	p := c.Pin(9)
	if err := p.Configure(Config{Mode: ModeInput, Callback: func(a any) { got <- a }}); err != nil {
		t.Fatalf("configure: %v", err)
	}

	const edges = 5
	for i := 0; i < edges; i++ {
		b.drive(9, Low)
		b.drive(9, High)
	}
	for i := 0; i < edges; i++ {
		if _, ok := recvArg(t, got, 100*time.Millisecond); !ok {
			t.Fatalf("edge %d not delivered", i)
		}
	}
	if _, ok := recvArg(t, got, 20*time.Millisecond); ok {
		t.Fatal("more deliveries than falling edges")
	}
}
