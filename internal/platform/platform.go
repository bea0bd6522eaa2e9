package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// SupportedOS represents operating systems with a disk probe
type SupportedOS string

const (
	Linux   SupportedOS = "linux"
	Windows SupportedOS = "windows"
	Darwin  SupportedOS = "darwin"
	FreeBSD SupportedOS = "freebsd"
)

// GetOS returns the current operating system
func GetOS() SupportedOS {
	return SupportedOS(runtime.GOOS)
}

// IsSupported returns true if disks can be enumerated on the current OS
func IsSupported() bool {
	return isSupported(GetOS())
}

func isSupported(os SupportedOS) bool {
	switch os {
	case Linux, Windows, Darwin, FreeBSD:
		return true
	}
	return false
}

// ValidateSupport returns an error if the current OS is not supported
func ValidateSupport() error {
	if !IsSupported() {
		return fmt.Errorf("unsupported operating system: %s. Supported: linux, windows, darwin, freebsd", runtime.GOOS)
	}
	return nil
}

// DiskCountersSupported reports whether the OS exposes per-device I/O
// counters. FreeBSD disks are listed but their usage always reads zero.
func DiskCountersSupported() bool {
	return diskCountersSupported(GetOS())
}

func diskCountersSupported(os SupportedOS) bool {
	return isSupported(os) && os != FreeBSD
}

// Virtualization describes the hypervisor or container runtime the host runs
// under, if any.
type Virtualization struct {
	System string `json:"system"`
	Role   string `json:"role"`
}

// GetVirtualization returns the detected virtualization. Detection failures
// yield an empty value.
func GetVirtualization(ctx context.Context) Virtualization {
	system, role, err := host.VirtualizationWithContext(ctx)
	if err != nil {
		return Virtualization{}
	}
	return Virtualization{System: system, Role: role}
}
