package core

import (
	"testing"
	"time"
)

func testSettings() Settings {
	s := DefaultSettings()
	// Slow ticks by default so tests control state transitions explicitly;
	// loop-driven tests override the interval.
	s.TickInterval = time.Hour
	return s
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind, wait time.Duration) {
	t.Helper()

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received", kind)
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}

// testPlayer builds a joined player outside any hub, for engine-level tests.
func testPlayer(id string, segments []Point, dir Point, food Point) *Player {
	p := NewPlayer(id)
	p.Name = id
	p.Snake = segments
	p.Direction = dir
	p.Food = food
	p.Alive = true
	return p
}
