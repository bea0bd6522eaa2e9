//go:build linux

package cpu

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

var cpuinfoPath = "/proc/cpuinfo"

// LinuxReader implements CPU monitoring for Linux
type LinuxReader struct{}

// newPlatformReader creates a new Linux CPU reader
func newPlatformReader() Reader {
	return &LinuxReader{}
}

// GetInfo returns CPU information
func (r *LinuxReader) GetInfo(ctx context.Context) (*Info, error) {
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

	info := &Info{
		Model:     cpuInfo[0].ModelName,
		Cores:     cores,
		Threads:   len(cpuInfo),
		Usage:     usage,
		Frequency: cpuInfo[0].Mhz,
	}

	return info, nil
}

// GetUsage returns CPU usage percentage
func (r *LinuxReader) GetUsage(ctx context.Context) (float64, error) {
	percentages, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err != nil {
		return 0, err
	}

	if len(percentages) == 0 {
		return 0, nil
	}

	return percentages[0], nil
}

// PhysicalCores counts distinct physical id/core id pairs of /proc/cpuinfo,
// falling back to gopsutil when the file carries no topology.
func (r *LinuxReader) PhysicalCores(ctx context.Context) (int, error) {
	content, err := os.ReadFile(cpuinfoPath)
	if err == nil {
		if cores := parsePhysicalCores(string(content)); cores > 0 {
			return cores, nil
		}
	}
	return cpu.CountsWithContext(ctx, false)
}

// parsePhysicalCores reads the core topology out of /proc/cpuinfo content.
// It returns 0 when no topology is present, as on many virtual machines.
func parsePhysicalCores(content string) int {
	lines := strings.Split(content, "\n")
	coreMap := make(map[string]bool)
	coreCountFromHeader := 0

	var currentPhysicalID, currentCoreID string

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "cpu cores") && coreCountFromHeader == 0 {
			if cores, err := strconv.Atoi(fieldValue(line)); err == nil {
				coreCountFromHeader = cores
			}
		}

		if strings.HasPrefix(line, "physical id") {
			currentPhysicalID = fieldValue(line)
		}

		if strings.HasPrefix(line, "core id") {
			currentCoreID = fieldValue(line)
		}

		// an empty line closes one logical CPU block
		if line == "" && currentPhysicalID != "" && currentCoreID != "" {
			coreMap[currentPhysicalID+":"+currentCoreID] = true
			currentPhysicalID = ""
			currentCoreID = ""
		}
	}

	if currentPhysicalID != "" && currentCoreID != "" {
		coreMap[currentPhysicalID+":"+currentCoreID] = true
	}

	if len(coreMap) > 0 {
		return len(coreMap)
	}
	return coreCountFromHeader
}

func fieldValue(line string) string {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
