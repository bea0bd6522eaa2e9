//go:build windows

package disk

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/StackExchange/wmi"
	"golang.org/x/sys/windows"
)

const storageNamespace = `root\Microsoft\Windows\Storage`

// WindowsProbe emits one entry per volume. Counters are per volume, keyed by
// drive letter.
type WindowsProbe struct {
	letters map[ID]string
	query   func() wmiTables
}

// newPlatformProbe creates a new Windows disk probe
func newPlatformProbe() Probe {
	return &WindowsProbe{
		letters: make(map[ID]string),
		query:   queryWMI,
	}
}

// Win32_LogicalDisk represents the WMI logical disk properties we need
type Win32_LogicalDisk struct {
	DeviceID  string
	DriveType uint32
}

// MSFT_Partition maps a drive letter to its physical disk number
type MSFT_Partition struct {
	DriveLetter uint16
	DiskNumber  uint32
}

// MSFT_PhysicalDisk represents the media type of a physical disk
type MSFT_PhysicalDisk struct {
	DeviceId  string
	MediaType uint16
	BusType   uint16
}

const (
	driveTypeRemovable = 2
	mediaTypeHDD       = 3
	mediaTypeSSD       = 4
	busTypeUSB         = 7
)

// wmiTables holds the WMI rows volume metadata is built from. A failed query
// leaves its table empty.
type wmiTables struct {
	logical    []Win32_LogicalDisk
	partitions []MSFT_Partition
	physical   []MSFT_PhysicalDisk
}

type volumeMeta struct {
	kind      Kind
	removable bool
}

// Enumerate returns the mounted volumes
func (p *WindowsProbe) Enumerate(ctx context.Context) ([]Entry, error) {
	partitions, err := mountedPartitions(ctx)
	if err != nil {
		return nil, err
	}

	metas := volumeMetadata(p.query())
	letters := make(map[ID]string, len(partitions))
	var entries []Entry
	for _, part := range partitions {
		letter := strings.ToUpper(strings.TrimSuffix(part.Device, `\`))
		id := volumeID(letter)
		if _, seen := letters[id]; seen {
			continue
		}

		space, err := sampleSpace(ctx, part.Mountpoint)
		if err != nil {
			continue // Skip drives we can't read, e.g. empty card readers
		}

		letters[id] = letter
		meta := metas[letter]
		entries = append(entries, Entry{
			ID:             id,
			Name:           letter,
			MountPoint:     part.Mountpoint,
			FileSystem:     part.Fstype,
			Removable:      meta.removable,
			ReadOnly:       isReadOnly(part.Opts),
			Kind:           meta.kind,
			TotalSpace:     space.Total,
			AvailableSpace: space.Available,
		})
	}

	p.letters = letters
	return entries, nil
}

// SampleCounters queries the volume performance counters
func (p *WindowsProbe) SampleCounters(ctx context.Context, id ID) (Counters, error) {
	letter, ok := p.letters[id]
	if !ok {
		return Counters{}, fmt.Errorf("%w: %s was not enumerated", ErrUnavailable, id)
	}
	return counterStat(ctx, letter)
}

// SampleSpace returns the capacity of the filesystem at mountPoint
func (p *WindowsProbe) SampleSpace(ctx context.Context, mountPoint string) (Space, error) {
	return sampleSpace(ctx, mountPoint)
}

func queryWMI() wmiTables {
	var t wmiTables
	if err := wmi.Query("SELECT DeviceID, DriveType FROM Win32_LogicalDisk", &t.logical); err != nil {
		t.logical = nil
	}
	if err := wmi.QueryNamespace("SELECT DriveLetter, DiskNumber FROM MSFT_Partition", &t.partitions, storageNamespace); err != nil {
		t.partitions = nil
	}
	if err := wmi.QueryNamespace("SELECT DeviceId, MediaType, BusType FROM MSFT_PhysicalDisk", &t.physical, storageNamespace); err != nil {
		t.physical = nil
	}
	return t
}

// volumeMetadata gathers removable flags and media types by drive letter.
// Letters missing from the tables keep the defaults.
func volumeMetadata(t wmiTables) map[string]volumeMeta {
	res := make(map[string]volumeMeta)

	for _, l := range t.logical {
		res[strings.ToUpper(l.DeviceID)] = volumeMeta{removable: l.DriveType == driveTypeRemovable}
	}

	byNumber := make(map[string]MSFT_PhysicalDisk, len(t.physical))
	for _, d := range t.physical {
		byNumber[d.DeviceId] = d
	}

	for _, part := range t.partitions {
		if part.DriveLetter == 0 {
			continue
		}
		letter := strings.ToUpper(string(rune(part.DriveLetter))) + ":"
		d, ok := byNumber[strconv.FormatUint(uint64(part.DiskNumber), 10)]
		if !ok {
			continue
		}
		meta := res[letter]
		switch d.MediaType {
		case mediaTypeSSD:
			meta.kind = KindSSD
		case mediaTypeHDD:
			meta.kind = KindHDD
		}
		if d.BusType == busTypeUSB {
			meta.removable = true
		}
		res[letter] = meta
	}
	return res
}

// volumeID returns the volume GUID path of a drive letter, which survives
// letter reassignment. The letter itself is used when it cannot be resolved.
func volumeID(letter string) ID {
	mountPoint, err := windows.UTF16PtrFromString(letter + `\`)
	if err != nil {
		return ID(letter)
	}
	buf := make([]uint16, windows.MAX_PATH+1)
	if err := windows.GetVolumeNameForVolumeMountPoint(mountPoint, &buf[0], uint32(len(buf))); err != nil {
		return ID(letter)
	}
	return ID(windows.UTF16ToString(buf))
}
