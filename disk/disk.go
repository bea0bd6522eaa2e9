// Package disk discovers the block devices and mount points of the host and
// reports their capacity and I/O activity between two polls.
//
// A Disks registry is refreshed explicitly by its owner; nothing in this
// package runs in the background.
package disk

// Kind is the media type of the device backing a Disk.
type Kind int

const (
	KindUnknown Kind = iota
	KindHDD
	KindSSD
)

func (k Kind) String() string {
	switch k {
	case KindHDD:
		return "HDD"
	case KindSSD:
		return "SSD"
	default:
		return "Unknown"
	}
}

// ID identifies a device across refreshes. It is derived from the platform
// (a major:minor pair, a canonical device path or a volume name) and never
// from the mount point text.
type ID string

// Counters holds cumulative I/O totals as reported by the OS since the device
// appeared or the system booted.
type Counters struct {
	ReadBytes    uint64 `json:"read_bytes"`
	WrittenBytes uint64 `json:"written_bytes"`
	ReadOps      uint64 `json:"read_ops"`
	WrittenOps   uint64 `json:"written_ops"`
}

// Space holds the capacity of a mounted filesystem.
type Space struct {
	Total     uint64
	Available uint64
}

// Disk is one tracked device or mount point. It is owned by a Disks registry
// and only mutated by its refresh calls.
type Disk struct {
	id         ID
	name       string
	mountPoint string
	fileSystem string
	removable  bool
	readOnly   bool
	kind       Kind

	totalSpace     uint64
	availableSpace uint64

	counters  Counters
	previous  Counters
	sampled   bool
	supported bool
	stale     bool
}

func newDisk(e Entry) *Disk {
	d := &Disk{
		id:         e.ID,
		fileSystem: e.FileSystem,
		removable:  e.Removable,
		supported:  true,
	}
	d.update(e)
	return d
}

// update copies the mutable metadata of a fresh enumeration entry.
func (d *Disk) update(e Entry) {
	d.name = e.Name
	d.mountPoint = e.MountPoint
	d.readOnly = e.ReadOnly
	if e.Kind != KindUnknown {
		d.kind = e.Kind
	}
	d.setSpace(Space{Total: e.TotalSpace, Available: e.AvailableSpace})
}

func (d *Disk) setSpace(s Space) {
	d.totalSpace = s.Total
	d.availableSpace = s.Available
	if d.availableSpace > d.totalSpace {
		d.availableSpace = d.totalSpace
	}
}

// ID returns the identity the registry tracks the device by.
func (d *Disk) ID() ID { return d.id }

// Name returns the OS device name, e.g. /dev/sda1 or C:.
func (d *Disk) Name() string { return d.name }

// MountPoint returns where the device is mounted.
func (d *Disk) MountPoint() string { return d.mountPoint }

// FileSystem returns the filesystem type, e.g. ext4, apfs or NTFS.
func (d *Disk) FileSystem() string { return d.fileSystem }

// IsRemovable reports whether the device can be ejected.
func (d *Disk) IsRemovable() bool { return d.removable }

// IsReadOnly reports whether the filesystem is mounted read-only.
func (d *Disk) IsReadOnly() bool { return d.readOnly }

// Kind returns the media type, KindUnknown when the platform cannot tell.
func (d *Disk) Kind() Kind { return d.kind }

// TotalSpace returns the filesystem capacity in bytes.
func (d *Disk) TotalSpace() uint64 { return d.totalSpace }

// AvailableSpace returns the free bytes, never more than TotalSpace.
func (d *Disk) AvailableSpace() uint64 { return d.availableSpace }

// Usage returns the I/O activity observed between the last two refreshes.
func (d *Disk) Usage() Usage {
	return Delta(d.previous, d.counters)
}

// TotalUsage returns the latest cumulative counters.
func (d *Disk) TotalUsage() Counters { return d.counters }

// CountersSupported is false when the platform exposes no I/O counters for
// this device. Usage is then always zero.
func (d *Disk) CountersSupported() bool { return d.supported }

// IsStale reports whether the last refresh could not reach the device. The
// values are the ones of the last successful refresh.
func (d *Disk) IsStale() bool { return d.stale }

// Info is a serializable snapshot of a Disk.
type Info struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	MountPoint        string   `json:"mountpoint"`
	FileSystem        string   `json:"filesystem"`
	Kind              string   `json:"kind"`
	Removable         bool     `json:"removable"`
	ReadOnly          bool     `json:"read_only"`
	Total             uint64   `json:"total_bytes"`
	Available         uint64   `json:"available_bytes"`
	Usage             Usage    `json:"usage"`
	TotalUsage        Counters `json:"total_usage"`
	CountersSupported bool     `json:"counters_supported"`
	Stale             bool     `json:"stale"`
}

// Info returns a snapshot of d.
func (d *Disk) Info() *Info {
	return &Info{
		ID:                string(d.id),
		Name:              d.name,
		MountPoint:        d.mountPoint,
		FileSystem:        d.fileSystem,
		Kind:              d.kind.String(),
		Removable:         d.removable,
		ReadOnly:          d.readOnly,
		Total:             d.totalSpace,
		Available:         d.availableSpace,
		Usage:             d.Usage(),
		TotalUsage:        d.counters,
		CountersSupported: d.supported,
		Stale:             d.stale,
	}
}
