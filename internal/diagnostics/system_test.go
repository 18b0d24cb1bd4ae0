package diagnostics

import (
	"runtime"
	"testing"
)

func TestCollect(t *testing.T) {
	m := Collect()
	if m.OS != runtime.GOOS || m.Arch != runtime.GOARCH {
		t.Fatalf("os/arch should come from the runtime: %+v", m)
	}
	if m.CPUThreads <= 0 {
		t.Fatalf("expected at least one CPU thread")
	}
	// Memory probing works on every platform CI runs on.
	if m.MemTotalMB <= 0 {
		t.Fatalf("expected a positive total memory, got %v", m.MemTotalMB)
	}
}
