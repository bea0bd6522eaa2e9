package disk_test

import (
	"context"
	"fmt"
	"io"

	"github.com/samin-cf/sysinfo/disk"
	"github.com/sirupsen/logrus"
)

type fakeDevice struct {
	entry       disk.Entry
	counters    *disk.Counters
	unsupported bool
	counterErr  error
	spaceErr    error
}

func (d *fakeDevice) write(bytes uint64) {
	d.counters.WrittenBytes += bytes
	d.counters.WrittenOps += 1
}

func (d *fakeDevice) read(bytes uint64) {
	d.counters.ReadBytes += bytes
	d.counters.ReadOps += 1
}

// fakeProbe is an in-memory host whose devices can be plugged, unplugged and
// written to between refreshes.
type fakeProbe struct {
	devices      []*fakeDevice
	enumerateErr error

	enumerations int
	sampled      []disk.ID
}

func (p *fakeProbe) add(id, name, mountPoint, fs string) *fakeDevice {
	d := &fakeDevice{
		entry: disk.Entry{
			ID:             disk.ID(id),
			Name:           name,
			MountPoint:     mountPoint,
			FileSystem:     fs,
			Kind:           disk.KindSSD,
			TotalSpace:     100 * 1024 * 1024,
			AvailableSpace: 40 * 1024 * 1024,
		},
		counters: &disk.Counters{},
	}
	p.devices = append(p.devices, d)
	return d
}

func (p *fakeProbe) remove(id string) {
	for i, d := range p.devices {
		if d.entry.ID == disk.ID(id) {
			p.devices = append(p.devices[:i], p.devices[i+1:]...)
			return
		}
	}
}

func (p *fakeProbe) device(id string) *fakeDevice {
	for _, d := range p.devices {
		if d.entry.ID == disk.ID(id) {
			return d
		}
	}
	return nil
}

func (p *fakeProbe) Enumerate(ctx context.Context) ([]disk.Entry, error) {
	p.enumerations += 1
	if p.enumerateErr != nil {
		return nil, p.enumerateErr
	}
	res := make([]disk.Entry, 0, len(p.devices))
	for _, d := range p.devices {
		res = append(res, d.entry)
	}
	return res, nil
}

func (p *fakeProbe) SampleCounters(ctx context.Context, id disk.ID) (disk.Counters, error) {
	p.sampled = append(p.sampled, id)
	d := p.device(string(id))
	switch {
	case d == nil:
		return disk.Counters{}, fmt.Errorf("%w: %s", disk.ErrUnavailable, id)
	case d.unsupported:
		return disk.Counters{}, disk.ErrNotSupported
	case d.counterErr != nil:
		return disk.Counters{}, d.counterErr
	}
	return *d.counters, nil
}

func (p *fakeProbe) SampleSpace(ctx context.Context, mountPoint string) (disk.Space, error) {
	for _, d := range p.devices {
		if d.entry.MountPoint != mountPoint {
			continue
		}
		if d.spaceErr != nil {
			return disk.Space{}, d.spaceErr
		}
		return disk.Space{Total: d.entry.TotalSpace, Available: d.entry.AvailableSpace}, nil
	}
	return disk.Space{}, fmt.Errorf("%w: nothing mounted on %s", disk.ErrUnavailable, mountPoint)
}

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.Out = io.Discard
	return logrus.NewEntry(logger)
}

func ids(disks []*disk.Disk) []disk.ID {
	res := make([]disk.ID, len(disks))
	for i, d := range disks {
		res[i] = d.ID()
	}
	return res
}
