//go:build darwin

package disk

import (
	"context"
	"errors"

	"github.com/lufia/iostat"
	. "gopkg.in/check.v1"
)

type DarwinProbeSuite struct{}

var _ = Suite(&DarwinProbeSuite{})

func (s *DarwinProbeSuite) TestWholeDisk(c *C) {
	c.Check(wholeDisk("/dev/disk3s1s1"), Equals, "disk3")
	c.Check(wholeDisk("/dev/disk12"), Equals, "disk12")
	c.Check(wholeDisk("map auto_home"), Equals, "")
}

func statsOf(stats ...*iostat.DriveStats) func() ([]*iostat.DriveStats, error) {
	return func() ([]*iostat.DriveStats, error) { return stats, nil }
}

func (s *DarwinProbeSuite) TestCountersAreDriveScoped(c *C) {
	p := &DarwinProbe{
		drives: map[ID]string{
			"/dev/disk0s2": "disk0",
			"/dev/disk0s3": "disk0",
			"/dev/disk4s1": "disk4",
			"/dev/disk6s1": "disk6",
		},
		stats: statsOf(
			&iostat.DriveStats{Name: "disk0", BytesRead: 100, BytesWritten: 200, NumRead: 1, NumWrite: 2},
			&iostat.DriveStats{Name: "disk4", BytesRead: 7, BytesWritten: 8, NumRead: 9, NumWrite: 10},
		),
	}
	ctx := context.Background()

	system, err := p.SampleCounters(ctx, "/dev/disk0s2")
	c.Assert(err, IsNil)
	data, err := p.SampleCounters(ctx, "/dev/disk0s3")
	c.Assert(err, IsNil)
	c.Check(system, Equals, Counters{ReadBytes: 100, WrittenBytes: 200, ReadOps: 1, WrittenOps: 2})
	c.Check(data, Equals, system)

	usb, err := p.SampleCounters(ctx, "/dev/disk4s1")
	c.Assert(err, IsNil)
	c.Check(usb, Equals, Counters{ReadBytes: 7, WrittenBytes: 8, ReadOps: 9, WrittenOps: 10})

	// a synthesized container cannot be attributed when two drives exist
	_, err = p.SampleCounters(ctx, "/dev/disk6s1")
	c.Check(errors.Is(err, ErrNotSupported), Equals, true)

	_, err = p.SampleCounters(ctx, "/dev/disk9s1")
	c.Check(errors.Is(err, ErrUnavailable), Equals, true)
}

func (s *DarwinProbeSuite) TestSingleDriveHoldsSynthesizedContainers(c *C) {
	p := &DarwinProbe{
		drives: map[ID]string{
			"/dev/disk3s1s1": "disk3",
			"/dev/disk3s5":   "disk3",
			"map auto_home":  "",
		},
		stats: statsOf(&iostat.DriveStats{Name: "disk0", BytesRead: 100, BytesWritten: 200, NumRead: 1, NumWrite: 2}),
	}
	ctx := context.Background()

	for _, id := range []ID{"/dev/disk3s1s1", "/dev/disk3s5", "map auto_home"} {
		counters, err := p.SampleCounters(ctx, id)
		c.Assert(err, IsNil, Commentf("%s", id))
		c.Check(counters, Equals, Counters{ReadBytes: 100, WrittenBytes: 200, ReadOps: 1, WrittenOps: 2})
	}
}

func (s *DarwinProbeSuite) TestNoDriveStatistics(c *C) {
	p := &DarwinProbe{
		drives: map[ID]string{"/dev/disk1s1": "disk1"},
		stats:  func() ([]*iostat.DriveStats, error) { return nil, nil },
	}
	_, err := p.SampleCounters(context.Background(), "/dev/disk1s1")
	c.Check(errors.Is(err, ErrNotSupported), Equals, true)
}
