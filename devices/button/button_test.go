package button

import (
	"testing"
	"time"

	"gpiokit/gpio"
	"gpiokit/platform/sim"
)

func recvEvent(t *testing.T, ch <-chan Event, d time.Duration) (Event, bool) {
	t.Helper()
	select {
	case ev := <-ch:
		return ev, true
	case <-time.After(d):
		return Event{}, false
	}
}

// press simulates a full press/release on an idle-high line.
func press(b *sim.Backend, pin int) {
	b.Drive(pin, gpio.Low)
	b.Drive(pin, gpio.High)
}

func TestPressDeliversEvent(t *testing.T) {
	b := sim.New()
	d, err := New(gpio.NewChip(b).Pin(27), Params{ActiveLow: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Hold the button down so the dispatch-side poll sees it pressed.
	b.Drive(27, gpio.Low)
	ev, ok := recvEvent(t, d.Events(), 100*time.Millisecond)
	if !ok {
		t.Fatal("no event for press")
	}
	if !ev.Pressed {
		t.Fatalf("active-low press should report pressed, got %+v", ev)
	}
	if ev.TSms == 0 {
		t.Fatal("event missing timestamp")
	}
}

func TestDebounceSwallowsChatter(t *testing.T) {
	b := sim.New()
	d, err := New(gpio.NewChip(b).Pin(14), Params{ActiveLow: true, DebounceMs: 50})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// A bouncy contact: several falling edges inside the window.
	press(b, 14)
	press(b, 14)
	press(b, 14)

	if _, ok := recvEvent(t, d.Events(), 100*time.Millisecond); !ok {
		t.Fatal("first edge not delivered")
	}
	if _, ok := recvEvent(t, d.Events(), 30*time.Millisecond); ok {
		t.Fatal("bounce leaked through the debounce window")
	}

	time.Sleep(60 * time.Millisecond)
	press(b, 14)
	if _, ok := recvEvent(t, d.Events(), 100*time.Millisecond); !ok {
		t.Fatal("press after the window not delivered")
	}
}

func TestPauseResume(t *testing.T) {
	b := sim.New()
	d, err := New(gpio.NewChip(b).Pin(5), Params{ActiveLow: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := d.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	press(b, 5)
	if _, ok := recvEvent(t, d.Events(), 30*time.Millisecond); ok {
		t.Fatal("event delivered while paused")
	}

	if err := d.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	press(b, 5)
	if _, ok := recvEvent(t, d.Events(), 100*time.Millisecond); !ok {
		t.Fatal("event not delivered after resume")
	}
}

func TestPressedPollsTheWire(t *testing.T) {
	b := sim.New()
	d, err := New(gpio.NewChip(b).Pin(9), Params{ActiveLow: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if d.Pressed() {
		t.Fatal("idle pulled-up line should read not-pressed")
	}
	b.Drive(9, gpio.Low)
	if !d.Pressed() {
		t.Fatal("held-low line should read pressed")
	}
}
