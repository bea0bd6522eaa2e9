package disk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samin-cf/sysinfo/internal/logging"
	"github.com/sirupsen/logrus"
)

// ReappearPolicy decides what happens to a device whose counters went
// backwards between two RefreshList calls, which means it was disconnected
// and reconnected under the same ID in between.
type ReappearPolicy int

const (
	// ReappearRebaseline keeps the record and its position, and takes the
	// new sample as baseline.
	ReappearRebaseline ReappearPolicy = iota
	// ReappearAsNew drops the record and appends a new one.
	ReappearAsNew
)

func (p ReappearPolicy) String() string {
	switch p {
	case ReappearAsNew:
		return "new"
	default:
		return "rebaseline"
	}
}

// ParseReappearPolicy parses rebaseline or new, case-insensitively. An empty
// string selects ReappearRebaseline.
func ParseReappearPolicy(s string) (ReappearPolicy, error) {
	switch strings.ToLower(s) {
	case "", "rebaseline":
		return ReappearRebaseline, nil
	case "new":
		return ReappearAsNew, nil
	}
	return ReappearRebaseline, fmt.Errorf("invalid reappear policy '%s' (expected rebaseline or new)", s)
}

// RefreshKind selects what Refresh updates.
type RefreshKind struct {
	Space   bool
	IOUsage bool
}

// RefreshEverything selects both space and I/O counters.
func RefreshEverything() RefreshKind {
	return RefreshKind{Space: true, IOUsage: true}
}

// Option configures a Disks registry.
type Option func(*Disks)

// WithProbe replaces the platform probe.
func WithProbe(p Probe) Option {
	return func(ds *Disks) { ds.probe = p }
}

// WithLogger replaces the default logger of the disk group.
func WithLogger(logger *logrus.Entry) Option {
	return func(ds *Disks) { ds.logger = logger }
}

// WithReappearPolicy sets how RefreshList treats reconnected devices.
func WithReappearPolicy(p ReappearPolicy) Option {
	return func(ds *Disks) { ds.policy = p }
}

// WithExcludedFileSystems ignores devices whose filesystem type matches one
// of fileSystems, case-insensitively.
func WithExcludedFileSystems(fileSystems ...string) Option {
	return func(ds *Disks) {
		for _, fs := range fileSystems {
			ds.excluded[strings.ToLower(fs)] = true
		}
	}
}

// Disks is the ordered list of tracked devices. It is not safe for
// concurrent use: callers serialize Refresh and RefreshList.
type Disks struct {
	probe    Probe
	logger   *logrus.Entry
	policy   ReappearPolicy
	excluded map[string]bool

	disks []*Disk
}

// New creates an empty registry. List stays empty until RefreshList is
// called.
func New(opts ...Option) *Disks {
	ds := &Disks{
		policy:   ReappearRebaseline,
		excluded: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(ds)
	}
	if ds.probe == nil {
		ds.probe = NewProbe()
	}
	if ds.logger == nil {
		ds.logger = logging.NewLogger("disk")
	}
	return ds
}

// NewWithRefreshedList is New followed by RefreshList.
func NewWithRefreshedList(ctx context.Context, opts ...Option) (*Disks, error) {
	ds := New(opts...)
	if err := ds.RefreshList(ctx); err != nil {
		return nil, err
	}
	return ds, nil
}

// List returns the tracked disks in discovery order.
func (ds *Disks) List() []*Disk {
	res := make([]*Disk, len(ds.disks))
	copy(res, ds.disks)
	return res
}

// RefreshList enumerates the devices again. Devices no longer present are
// dropped, known ones keep their position and counters, and new ones are
// appended with a freshly sampled baseline. If the enumeration itself fails
// the list is left untouched and the error wraps ErrEnumeration.
func (ds *Disks) RefreshList(ctx context.Context) error {
	entries, err := ds.probe.Enumerate(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEnumeration, err)
	}

	observed := make(map[ID]Entry, len(entries))
	order := make([]ID, 0, len(entries))
	for _, e := range entries {
		if ds.excluded[strings.ToLower(e.FileSystem)] {
			continue
		}
		if _, dup := observed[e.ID]; dup {
			continue
		}
		observed[e.ID] = e
		order = append(order, e.ID)
	}

	kept := make([]*Disk, 0, len(order))
	present := make(map[ID]bool, len(order))
	for _, d := range ds.disks {
		e, ok := observed[d.id]
		if !ok {
			ds.logger.WithField("device", d.name).Debug("device removed")
			continue
		}
		d.update(e)
		d.stale = false
		if ds.refreshCounters(ctx, d, ds.policy) {
			ds.logger.WithField("device", d.name).Debug("device reconnected, tracking it as new")
			continue
		}
		kept = append(kept, d)
		present[d.id] = true
	}

	for _, id := range order {
		if present[id] {
			continue
		}
		d := newDisk(observed[id])
		ds.refreshCounters(ctx, d, ReappearRebaseline)
		ds.logger.WithFields(logrus.Fields{
			"device":     d.name,
			"mountpoint": d.mountPoint,
		}).Debug("device discovered")
		kept = append(kept, d)
	}

	ds.disks = kept
	return nil
}

// Refresh updates space and counters of the tracked disks. It never adds,
// removes or reorders disks; a device that cannot be sampled keeps its
// previous values and is flagged stale.
func (ds *Disks) Refresh(ctx context.Context) {
	ds.RefreshSpecifics(ctx, RefreshEverything())
}

// RefreshSpecifics is Refresh restricted to what kind selects.
func (ds *Disks) RefreshSpecifics(ctx context.Context, kind RefreshKind) {
	for _, d := range ds.disks {
		d.stale = false
		if kind.Space {
			ds.refreshSpace(ctx, d)
		}
		if kind.IOUsage {
			// membership cannot change here, reconnections always rebaseline
			ds.refreshCounters(ctx, d, ReappearRebaseline)
		}
	}
}

func (ds *Disks) refreshSpace(ctx context.Context, d *Disk) {
	space, err := ds.probe.SampleSpace(ctx, d.mountPoint)
	if err != nil {
		d.stale = true
		ds.logger.WithError(err).WithField("device", d.name).Debug("could not sample space")
		return
	}
	d.setSpace(space)
}

// refreshCounters samples the counters of d. It returns true only when d
// looks reconnected and policy is ReappearAsNew, in which case d is left
// untouched for the caller to replace.
func (ds *Disks) refreshCounters(ctx context.Context, d *Disk, policy ReappearPolicy) bool {
	counters, err := ds.probe.SampleCounters(ctx, d.id)
	if errors.Is(err, ErrNotSupported) {
		d.supported = false
		d.counters = Counters{}
		d.previous = Counters{}
		return false
	}
	if err != nil {
		d.stale = true
		ds.logger.WithError(err).WithField("device", d.name).Debug("could not sample counters")
		return false
	}

	d.supported = true
	if !d.sampled {
		d.previous, d.counters, d.sampled = counters, counters, true
		return false
	}
	if counters.decreasedFrom(d.counters) {
		if policy == ReappearAsNew {
			return true
		}
		d.previous, d.counters = counters, counters
		return false
	}
	d.previous, d.counters = d.counters, counters
	return false
}
