// Package diagnostics collects the host-side facts the doctor command
// reports next to its connectivity checks.
package diagnostics

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostMetrics is a best-effort snapshot of the local machine. Fields a
// platform cannot report stay zero.
type HostMetrics struct {
	OS         string  `json:"os"`
	Arch       string  `json:"arch"`
	CPUModel   string  `json:"cpu_model"`
	CPUThreads int     `json:"cpu_threads"`
	MemTotalMB float64 `json:"mem_total_mb"`
	MemUsedMB  float64 `json:"mem_used_mb"`
	MemPercent float64 `json:"mem_percent"`

	DiskTotalGB float64 `json:"disk_total_gb"`
	DiskUsedGB  float64 `json:"disk_used_gb"`
	DiskPercent float64 `json:"disk_percent"`

	LoadAvg1 float64 `json:"load_avg_1"`
}

// Collect gathers host metrics. Individual probe failures are
// tolerated; the snapshot is advisory.
func Collect() HostMetrics {
	m := HostMetrics{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		CPUThreads: runtime.NumCPU(),
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		m.CPUModel = infos[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		m.MemTotalMB = float64(vm.Total) / 1024 / 1024
		m.MemUsedMB = float64(vm.Used) / 1024 / 1024
		m.MemPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		m.DiskTotalGB = float64(du.Total) / 1024 / 1024 / 1024
		m.DiskUsedGB = float64(du.Used) / 1024 / 1024 / 1024
		m.DiskPercent = du.UsedPercent
	}
	if avg, err := load.Avg(); err == nil {
		m.LoadAvg1 = avg.Load1
	}

	return m
}
