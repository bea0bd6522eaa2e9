//go:build darwin

package disk

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lufia/iostat"
)

// DarwinProbe emits one entry per mounted volume. The kernel reports I/O per
// physical drive, so every volume of a drive shares that drive's counters.
type DarwinProbe struct {
	drives map[ID]string
	stats  func() ([]*iostat.DriveStats, error)
}

// newPlatformProbe creates a new macOS disk probe
func newPlatformProbe() Probe {
	return &DarwinProbe{
		drives: make(map[ID]string),
		stats:  iostat.ReadDriveStats,
	}
}

var wholeDiskRx = regexp.MustCompile(`^(disk[0-9]+)`)

// Enumerate returns the mounted volumes
func (p *DarwinProbe) Enumerate(ctx context.Context) ([]Entry, error) {
	partitions, err := mountedPartitions(ctx)
	if err != nil {
		return nil, err
	}

	drives := make(map[ID]string, len(partitions))
	var entries []Entry
	for _, part := range partitions {
		device := part.Device
		if resolved, err := filepath.EvalSymlinks(device); err == nil {
			device = resolved
		}
		id := ID(device)
		if _, seen := drives[id]; seen {
			continue
		}

		space, err := sampleSpace(ctx, part.Mountpoint)
		if err != nil {
			continue // Skip volumes we can't read
		}

		drives[id] = wholeDisk(device)
		entries = append(entries, Entry{
			ID:             id,
			Name:           part.Device,
			MountPoint:     part.Mountpoint,
			FileSystem:     part.Fstype,
			Removable:      strings.HasPrefix(part.Mountpoint, "/Volumes/"),
			ReadOnly:       isReadOnly(part.Opts),
			Kind:           KindUnknown,
			TotalSpace:     space.Total,
			AvailableSpace: space.Available,
		})
	}

	p.drives = drives
	return entries, nil
}

// SampleCounters returns the counters of the drive holding the volume.
// Synthesized APFS containers have no drive statistics of their own: they are
// attributed to the physical drive only when the host has a single one, and
// report ErrNotSupported otherwise.
func (p *DarwinProbe) SampleCounters(ctx context.Context, id ID) (Counters, error) {
	drive, ok := p.drives[id]
	if !ok {
		return Counters{}, fmt.Errorf("%w: %s was not enumerated", ErrUnavailable, id)
	}
	stats, err := p.stats()
	if err != nil {
		return Counters{}, fmt.Errorf("could not read drive statistics: %w", err)
	}
	if len(stats) == 0 {
		return Counters{}, ErrNotSupported
	}

	stat := driveStat(stats, drive)
	if stat == nil {
		return Counters{}, ErrNotSupported
	}
	return Counters{
		ReadBytes:    nonNegative(stat.BytesRead),
		WrittenBytes: nonNegative(stat.BytesWritten),
		ReadOps:      nonNegative(stat.NumRead),
		WrittenOps:   nonNegative(stat.NumWrite),
	}, nil
}

// SampleSpace returns the capacity of the filesystem at mountPoint
func (p *DarwinProbe) SampleSpace(ctx context.Context, mountPoint string) (Space, error) {
	return sampleSpace(ctx, mountPoint)
}

func driveStat(stats []*iostat.DriveStats, drive string) *iostat.DriveStats {
	for _, s := range stats {
		if len(drive) > 0 && s.Name == drive {
			return s
		}
	}
	if len(stats) == 1 {
		return stats[0]
	}
	return nil
}

// wholeDisk maps /dev/disk3s1s1 to disk3.
func wholeDisk(device string) string {
	m := wholeDiskRx.FindStringSubmatch(filepath.Base(device))
	if m == nil {
		return ""
	}
	return m[1]
}

func nonNegative(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
