// Package profiler reports frame pacing and memory statistics for render
// driver loops.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, frame time and memory statistics, logging a
// summary line at a fixed interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	worstFrame     time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler. The log interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	now := time.Now()
	return &Profiler{
		lastTime:       now,
		lastFrame:      now,
		updateInterval: time.Second,
	}
}

// Tick should be called once per frame. When the update interval has elapsed
// it logs FPS, average and worst frame time, heap usage, allocation rate and
// GC count, then resets the window.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	now := time.Now()
	frameTime := now.Sub(p.lastFrame)
	p.lastFrame = now
	if frameTime > p.worstFrame {
		p.worstFrame = frameTime
	}
	p.frameCount++

	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	avgMs := elapsed.Seconds() * 1000 / float64(p.frameCount)
	worstMs := float64(p.worstFrame.Microseconds()) / 1000

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	// TotalAlloc only grows; the delta over the window gives the churn rate.
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	log.Printf("[Profiler] FPS: %.2f | Frame: %.2f ms (worst: %.2f ms) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		fps, avgMs, worstMs, heapMB, allocRateMB, p.memStats.NumGC)

	p.frameCount = 0
	p.worstFrame = 0
	p.lastTime = now
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
