//go:build freebsd

package disk_test

import (
	"os"

	"github.com/samin-cf/sysinfo/disk"
	. "gopkg.in/check.v1"
)

func (s *SystemSuite) TestWrittenBytesAreNotSupported(c *C) {
	ds, err := disk.NewWithRefreshedList(s.ctx, disk.WithLogger(quietLogger()))
	c.Assert(err, IsNil)

	f, err := os.CreateTemp(".", "usage-*.tmp")
	c.Assert(err, IsNil)
	defer os.Remove(f.Name())
	_, err = f.Write(make([]byte, 1024*1024))
	c.Assert(err, IsNil)
	c.Assert(f.Sync(), IsNil)
	c.Assert(f.Close(), IsNil)

	ds.Refresh(s.ctx)

	var written uint64
	for _, u := range disk.UniqueUsages(ds.List()) {
		written += u.WrittenBytes
	}
	c.Check(written, Equals, uint64(0))
	for _, d := range ds.List() {
		c.Check(d.CountersSupported(), Equals, false)
	}
}
