//go:build linux

package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaypipes/ghw"
	"golang.org/x/sys/unix"
)

// sysDevBlock maps major:minor pairs to the sysfs block device directories.
var sysDevBlock = "/sys/dev/block"

// LinuxProbe enumerates mounted block devices. Bind mounts of one device
// share a major:minor pair and collapse onto the first mount point; counters
// come from /proc/diskstats and are scoped to the block device or partition.
type LinuxProbe struct {
	// counterNames maps an ID to its /proc/diskstats row name. An empty
	// name means the filesystem has no backing block device.
	counterNames map[ID]string
	blockInfo    func() (*ghw.BlockInfo, error)
}

// newPlatformProbe creates a new Linux disk probe
func newPlatformProbe() Probe {
	return &LinuxProbe{
		counterNames: make(map[ID]string),
		blockInfo: func() (*ghw.BlockInfo, error) {
			return ghw.Block(ghw.WithDisableWarnings())
		},
	}
}

type blockMeta struct {
	kind      Kind
	removable bool
}

// Enumerate returns the mounted devices
func (p *LinuxProbe) Enumerate(ctx context.Context) ([]Entry, error) {
	partitions, err := mountedPartitions(ctx)
	if err != nil {
		return nil, err
	}

	metas := p.blockMetadata()
	names := make(map[ID]string, len(partitions))
	var entries []Entry

	for _, part := range partitions {
		major, minor, err := deviceNumber(part.Mountpoint)
		if err != nil {
			continue // Skip mount points we can't stat
		}
		id := ID(fmt.Sprintf("%d:%d", major, minor))
		if _, seen := names[id]; seen {
			continue // bind mount of a device already listed
		}

		space, err := sampleSpace(ctx, part.Mountpoint)
		if err != nil {
			continue
		}

		counterName := resolveCounterName(major, minor, part.Device)
		names[id] = counterName
		meta := metas[counterName]

		entries = append(entries, Entry{
			ID:             id,
			Name:           part.Device,
			MountPoint:     part.Mountpoint,
			FileSystem:     part.Fstype,
			Removable:      meta.removable,
			ReadOnly:       isReadOnly(part.Opts),
			Kind:           meta.kind,
			TotalSpace:     space.Total,
			AvailableSpace: space.Available,
		})
	}

	p.counterNames = names
	return entries, nil
}

// SampleCounters reads the /proc/diskstats row of the device
func (p *LinuxProbe) SampleCounters(ctx context.Context, id ID) (Counters, error) {
	name, ok := p.counterNames[id]
	if !ok {
		return Counters{}, fmt.Errorf("%w: %s was not enumerated", ErrUnavailable, id)
	}
	if len(name) == 0 {
		return Counters{}, ErrNotSupported
	}
	return counterStat(ctx, name)
}

// SampleSpace returns the capacity of the filesystem at mountPoint
func (p *LinuxProbe) SampleSpace(ctx context.Context, mountPoint string) (Space, error) {
	return sampleSpace(ctx, mountPoint)
}

// blockMetadata indexes media type and removable flag by device and
// partition name. Missing block information only degrades to KindUnknown.
func (p *LinuxProbe) blockMetadata() map[string]blockMeta {
	res := make(map[string]blockMeta)
	info, err := p.blockInfo()
	if err != nil || info == nil {
		return res
	}
	for _, d := range info.Disks {
		meta := blockMeta{removable: d.IsRemovable}
		switch d.DriveType {
		case ghw.DRIVE_TYPE_SSD:
			meta.kind = KindSSD
		case ghw.DRIVE_TYPE_HDD:
			meta.kind = KindHDD
		}
		res[d.Name] = meta
		for _, part := range d.Partitions {
			res[part.Name] = meta
		}
	}
	return res
}

func deviceNumber(path string) (uint32, uint32, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, 0, fmt.Errorf("could not stat %s: %w", path, err)
	}
	dev := uint64(st.Dev)
	return unix.Major(dev), unix.Minor(dev), nil
}

// resolveCounterName finds the kernel name of a block device, as used in
// /proc/diskstats. Filesystems without a block device (anonymous major 0,
// e.g. btrfs subvolumes or network mounts) get an empty name unless their
// source is a device node.
func resolveCounterName(major, minor uint32, device string) string {
	link, err := os.Readlink(filepath.Join(sysDevBlock, fmt.Sprintf("%d:%d", major, minor)))
	if err == nil {
		return filepath.Base(link)
	}
	resolved, err := filepath.EvalSymlinks(device)
	if err != nil || !strings.HasPrefix(resolved, "/dev/") {
		return ""
	}
	return filepath.Base(resolved)
}
