//go:build linux

package disk_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/samin-cf/sysinfo/disk"
	"golang.org/x/sys/unix"
	. "gopkg.in/check.v1"
)

func writeAndSync(c *C, dir string, chunks, size int) {
	f, err := os.CreateTemp(dir, "usage-*.tmp")
	c.Assert(err, IsNil)
	defer os.Remove(f.Name())
	defer f.Close()

	buf := make([]byte, size)
	for i := range buf {
		buf[i] = byte(i)
	}
	for i := 0; i < chunks; i++ {
		_, err := f.Write(buf)
		c.Assert(err, IsNil)
		c.Assert(f.Sync(), IsNil)
	}
}

func (s *SystemSuite) TestWrittenBytesAreReported(c *C) {
	if testing.Short() {
		c.Skip("writes 100 MiB")
	}

	var st unix.Stat_t
	c.Assert(unix.Stat(".", &st), IsNil)
	cwd := disk.ID(fmt.Sprintf("%d:%d", unix.Major(uint64(st.Dev)), unix.Minor(uint64(st.Dev))))

	ds, err := disk.NewWithRefreshedList(s.ctx, disk.WithLogger(quietLogger()))
	c.Assert(err, IsNil)

	var tracked *disk.Disk
	for _, d := range ds.List() {
		if d.ID() == cwd {
			tracked = d
		}
	}
	if tracked == nil || !tracked.CountersSupported() {
		c.Skip("working directory is not on a block device with I/O counters")
	}

	writeAndSync(c, ".", 10, 10*1024*1024)
	ds.Refresh(s.ctx)

	var written uint64
	for _, u := range disk.UniqueUsages(ds.List()) {
		written += u.WrittenBytes
	}
	c.Check(written > 0, Equals, true)
}
