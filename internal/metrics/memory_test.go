package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()

	// Allocate some memory
	_ = make([]byte, 1024*1024) // 1 MB

	after := mc.Snapshot()

	// Sys should not decrease between snapshots
	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}

	delta := after.Delta(before)
	if delta.Sys != after.Sys-before.Sys {
		t.Errorf("Delta Sys = %d, expected %d", delta.Sys, after.Sys-before.Sys)
	}
}

func TestSnapshotDeltaSaturates(t *testing.T) {
	t.Parallel()

	earlier := MemorySnapshot{HeapAlloc: 2048, HeapObjects: 100, NumGC: 1}
	later := MemorySnapshot{HeapAlloc: 1024, HeapObjects: 50, NumGC: 3}

	delta := later.Delta(earlier)
	if delta.HeapAlloc != 0 {
		t.Errorf("HeapAlloc delta should saturate at 0, got %d", delta.HeapAlloc)
	}
	if delta.HeapObjects != 0 {
		t.Errorf("HeapObjects delta should saturate at 0, got %d", delta.HeapObjects)
	}
	if delta.NumGC != 2 {
		t.Errorf("NumGC delta = %d, expected 2", delta.NumGC)
	}
}
