//go:build !linux && !darwin && !windows && !freebsd

package disk

import (
	"context"
	"fmt"
)

// UnsupportedProbe is a fallback for unsupported platforms
type UnsupportedProbe struct{}

// newPlatformProbe creates a fallback disk probe for unsupported platforms
func newPlatformProbe() Probe {
	return &UnsupportedProbe{}
}

// Enumerate returns an error for unsupported platforms
func (p *UnsupportedProbe) Enumerate(ctx context.Context) ([]Entry, error) {
	return nil, fmt.Errorf("disk monitoring not supported on this platform")
}

// SampleCounters always fails: no I/O counters are available
func (p *UnsupportedProbe) SampleCounters(ctx context.Context, id ID) (Counters, error) {
	return Counters{}, ErrNotSupported
}

// SampleSpace returns the capacity of the filesystem at mountPoint
func (p *UnsupportedProbe) SampleSpace(ctx context.Context, mountPoint string) (Space, error) {
	return Space{}, fmt.Errorf("disk monitoring not supported on this platform")
}
