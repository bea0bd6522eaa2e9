package disk_test

import (
	"context"
	"errors"

	"github.com/samin-cf/sysinfo/disk"
	"github.com/samin-cf/sysinfo/internal/cpu"
	"github.com/samin-cf/sysinfo/internal/platform"
	. "gopkg.in/check.v1"
)

// SystemSuite runs the registry against the probe of the running host.
type SystemSuite struct {
	ctx context.Context
}

var _ = Suite(&SystemSuite{})

func (s *SystemSuite) SetUpSuite(c *C) {
	s.ctx = context.Background()
}

func (s *SystemSuite) TestNewDoesNotEnumerate(c *C) {
	c.Check(disk.New(disk.WithLogger(quietLogger())).List(), HasLen, 0)
}

func (s *SystemSuite) TestRefreshListFindsDisks(c *C) {
	ds := disk.New(disk.WithLogger(quietLogger()))
	err := ds.RefreshList(s.ctx)
	if !platform.IsSupported() {
		c.Check(errors.Is(err, disk.ErrEnumeration), Equals, true)
		return
	}
	c.Assert(err, IsNil)

	if len(ds.List()) == 0 {
		// hosts without any physical core are typically sandboxes
		c.Check(cpu.IsConstrainedHost(s.ctx, cpu.NewReader()), Equals, true)
		return
	}

	for _, d := range ds.List() {
		c.Check(d.AvailableSpace() <= d.TotalSpace(), Equals, true, Commentf("%s", d.Name()))
		c.Check(d.Usage(), Equals, disk.Usage{}, Commentf("%s", d.Name()))
		c.Check(d.ID(), Not(Equals), disk.ID(""))
	}
}

func (s *SystemSuite) TestRefreshKeepsMembership(c *C) {
	ds := disk.New(disk.WithLogger(quietLogger()))
	if err := ds.RefreshList(s.ctx); err != nil {
		c.Skip(err.Error())
	}
	before := ids(ds.List())
	ds.Refresh(s.ctx)
	c.Check(ids(ds.List()), DeepEquals, before)
}
