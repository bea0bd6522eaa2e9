//go:build !linux

package cpu

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// GenericReader implements CPU monitoring through gopsutil on the
// remaining platforms
type GenericReader struct{}

// newPlatformReader creates a new CPU reader
func newPlatformReader() Reader {
	return &GenericReader{}
}

// GetInfo returns CPU information
func (r *GenericReader) GetInfo(ctx context.Context) (*Info, error) {
	cpuInfo, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}

	if len(cpuInfo) == 0 {
		return nil, nil
	}

	usage, err := r.GetUsage(ctx)
	if err != nil {
		usage = 0 // fallback to 0 if we can't get usage
	}

	cores, err := r.PhysicalCores(ctx)
	if err != nil {
		cores = 0
	}

	threads, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		threads = len(cpuInfo)
	}

	info := &Info{
		Model:     cpuInfo[0].ModelName,
		Cores:     cores,
		Threads:   threads,
		Usage:     usage,
		Frequency: cpuInfo[0].Mhz,
	}

	return info, nil
}

// GetUsage returns CPU usage percentage
func (r *GenericReader) GetUsage(ctx context.Context) (float64, error) {
	percentages, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err != nil {
		return 0, err
	}

	if len(percentages) == 0 {
		return 0, nil
	}

	return percentages[0], nil
}

// PhysicalCores returns the physical core count reported by gopsutil
func (r *GenericReader) PhysicalCores(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, false)
}
