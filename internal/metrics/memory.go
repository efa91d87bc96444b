package metrics

import (
	"fmt"
	"runtime"
	"time"
)

// MemorySnapshot holds a point-in-time memory reading. Big-number
// factorizations can allocate heavily; the verbose CLI mode reports the
// delta between a snapshot taken before and after a run.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Delta returns the field-wise change from before to s. The heap is free to
// shrink between snapshots, so gauge-like fields clamp at zero; NumGC and
// PauseTotalNs are monotonic in the runtime.
func (s MemorySnapshot) Delta(before MemorySnapshot) MemorySnapshot {
	return MemorySnapshot{
		HeapAlloc:    clampedSub(s.HeapAlloc, before.HeapAlloc),
		HeapSys:      clampedSub(s.HeapSys, before.HeapSys),
		Sys:          clampedSub(s.Sys, before.Sys),
		NumGC:        s.NumGC - before.NumGC,
		PauseTotalNs: s.PauseTotalNs - before.PauseTotalNs,
		HeapObjects:  clampedSub(s.HeapObjects, before.HeapObjects),
	}
}

func clampedSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// String renders the snapshot for the run summary, e.g.
// "heap +12.3 MiB, 4 gc cycles (1.2ms pause)".
func (s MemorySnapshot) String() string {
	return fmt.Sprintf("heap +%.1f MiB, %d gc cycles (%s pause)",
		float64(s.HeapAlloc)/(1<<20), s.NumGC, time.Duration(s.PauseTotalNs))
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}
