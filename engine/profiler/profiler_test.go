package profiler

import (
	"testing"
	"time"
)

func TestTickQuietWithinInterval(t *testing.T) {
	p := NewProfiler()
	for i := 0; i < 3; i++ {
		if p.Tick() {
			t.Fatal("expected no log before the interval elapses")
		}
	}
}

func TestTickLogsAfterInterval(t *testing.T) {
	p := NewProfiler()
	p.updateInterval = 10 * time.Millisecond

	p.Tick()
	time.Sleep(15 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("expected a log after the interval elapsed")
	}
	if p.frameCount != 0 {
		t.Fatalf("frameCount = %d, want 0 after reset", p.frameCount)
	}
	if p.worstFrame != 0 {
		t.Fatalf("worstFrame = %v, want 0 after reset", p.worstFrame)
	}
}

func TestTickTracksWorstFrame(t *testing.T) {
	p := NewProfiler()

	p.Tick()
	time.Sleep(5 * time.Millisecond)
	p.Tick()

	if p.worstFrame < 5*time.Millisecond {
		t.Fatalf("worstFrame = %v, want at least 5ms", p.worstFrame)
	}
}
