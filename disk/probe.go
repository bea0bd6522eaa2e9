package disk

import (
	"context"
	"errors"
	"fmt"

	psdisk "github.com/shirou/gopsutil/v3/disk"
)

//go:generate mockgen -source=probe.go -destination=mock_disk/probe.go

var (
	// ErrNotSupported is returned by SampleCounters when the OS exposes no
	// I/O counters for a device. It is permanent: the counters read as zero.
	ErrNotSupported = errors.New("disk I/O counters not supported")

	// ErrUnavailable is returned when a previously enumerated device can no
	// longer be reached.
	ErrUnavailable = errors.New("disk unavailable")

	// ErrEnumeration wraps the failure of the device-table query itself. It
	// is distinct from an enumeration that found no device.
	ErrEnumeration = errors.New("could not enumerate disks")
)

// Entry is one device as seen by Probe.Enumerate.
type Entry struct {
	ID             ID
	Name           string
	MountPoint     string
	FileSystem     string
	Removable      bool
	ReadOnly       bool
	Kind           Kind
	TotalSpace     uint64
	AvailableSpace uint64
}

// Probe is the per-OS source of disk information. Implementations must not
// fail a whole call because of one device: such devices are left out of
// Enumerate, and SampleCounters reports them individually.
type Probe interface {
	// Enumerate lists the devices in mount-table order, one entry per ID.
	Enumerate(ctx context.Context) ([]Entry, error)
	// SampleCounters returns the cumulative counters of a device found by
	// the last Enumerate, or ErrNotSupported.
	SampleCounters(ctx context.Context, id ID) (Counters, error)
	// SampleSpace returns the capacity of the filesystem at mountPoint.
	SampleSpace(ctx context.Context, mountPoint string) (Space, error)
}

// NewProbe creates the Probe for the current platform.
func NewProbe() Probe {
	return newPlatformProbe()
}

// mountedPartitions lists mounted physical filesystems. Pseudo filesystems
// (proc, tmpfs, overlay...) are filtered out by gopsutil.
func mountedPartitions(ctx context.Context) ([]psdisk.PartitionStat, error) {
	partitions, err := psdisk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("could not read mount table: %w", err)
	}
	return partitions, nil
}

func sampleSpace(ctx context.Context, mountPoint string) (Space, error) {
	usage, err := psdisk.UsageWithContext(ctx, mountPoint)
	if err != nil {
		return Space{}, fmt.Errorf("could not get space for %s: %w", mountPoint, err)
	}
	return Space{Total: usage.Total, Available: usage.Free}, nil
}

func isReadOnly(opts []string) bool {
	for _, o := range opts {
		if o == "ro" {
			return true
		}
	}
	return false
}

// counterStat looks name up in the gopsutil I/O counters of the host.
func counterStat(ctx context.Context, name string) (Counters, error) {
	stats, err := psdisk.IOCountersWithContext(ctx, name)
	if err != nil {
		return Counters{}, err
	}
	stat, ok := stats[name]
	if !ok {
		return Counters{}, fmt.Errorf("%w: no I/O counters for %s", ErrUnavailable, name)
	}
	return Counters{
		ReadBytes:    stat.ReadBytes,
		WrittenBytes: stat.WriteBytes,
		ReadOps:      stat.ReadCount,
		WrittenOps:   stat.WriteCount,
	}, nil
}
