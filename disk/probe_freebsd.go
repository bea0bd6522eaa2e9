//go:build freebsd

package disk

import (
	"context"
	"fmt"
	"path/filepath"
)

// FreeBSDProbe enumerates mounted devices. I/O counters are not supported.
type FreeBSDProbe struct {
	known map[ID]bool
}

// newPlatformProbe creates a new FreeBSD disk probe
func newPlatformProbe() Probe {
	return &FreeBSDProbe{known: make(map[ID]bool)}
}

// Enumerate returns the mounted devices
func (p *FreeBSDProbe) Enumerate(ctx context.Context) ([]Entry, error) {
	partitions, err := mountedPartitions(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[ID]bool, len(partitions))
	var entries []Entry
	for _, part := range partitions {
		device := part.Device
		if resolved, err := filepath.EvalSymlinks(device); err == nil {
			device = resolved
		}
		id := ID(device)
		if known[id] {
			continue
		}
		space, err := sampleSpace(ctx, part.Mountpoint)
		if err != nil {
			continue
		}
		known[id] = true
		entries = append(entries, Entry{
			ID:             id,
			Name:           part.Device,
			MountPoint:     part.Mountpoint,
			FileSystem:     part.Fstype,
			ReadOnly:       isReadOnly(part.Opts),
			Kind:           KindUnknown,
			TotalSpace:     space.Total,
			AvailableSpace: space.Available,
		})
	}
	p.known = known
	return entries, nil
}

// SampleCounters always fails: no I/O counters are available
func (p *FreeBSDProbe) SampleCounters(ctx context.Context, id ID) (Counters, error) {
	if !p.known[id] {
		return Counters{}, fmt.Errorf("%w: %s was not enumerated", ErrUnavailable, id)
	}
	return Counters{}, ErrNotSupported
}

// SampleSpace returns the capacity of the filesystem at mountPoint
func (p *FreeBSDProbe) SampleSpace(ctx context.Context, mountPoint string) (Space, error) {
	return sampleSpace(ctx, mountPoint)
}
