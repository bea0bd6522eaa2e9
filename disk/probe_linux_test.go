//go:build linux

package disk

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/jaypipes/ghw"
	. "gopkg.in/check.v1"
)

type LinuxProbeSuite struct {
	sysDevBlock string
}

var _ = Suite(&LinuxProbeSuite{})

func (s *LinuxProbeSuite) SetUpTest(c *C) {
	s.sysDevBlock = sysDevBlock
	sysDevBlock = c.MkDir()
}

func (s *LinuxProbeSuite) TearDownTest(c *C) {
	sysDevBlock = s.sysDevBlock
}

func (s *LinuxProbeSuite) TestCounterNameFromSysfs(c *C) {
	c.Assert(os.Symlink("../../devices/pci0000:00/0000:00:17.0/ata1/host0/target0:0:0/0:0:0:0/block/sda/sda1",
		filepath.Join(sysDevBlock, "8:1")), IsNil)
	c.Check(resolveCounterName(8, 1, "/dev/disk/by-uuid/whatever"), Equals, "sda1")
}

func (s *LinuxProbeSuite) TestCounterNameWithoutBlockDevice(c *C) {
	c.Check(resolveCounterName(0, 45, "nas:/export"), Equals, "")
	c.Check(resolveCounterName(0, 46, filepath.Join(c.MkDir(), "missing")), Equals, "")
}

func (s *LinuxProbeSuite) TestBlockMetadata(c *C) {
	p := &LinuxProbe{
		blockInfo: func() (*ghw.BlockInfo, error) {
			return &ghw.BlockInfo{
				Disks: []*ghw.Disk{
					{
						Name:       "nvme0n1",
						DriveType:  ghw.DRIVE_TYPE_SSD,
						Partitions: []*ghw.Partition{{Name: "nvme0n1p1"}, {Name: "nvme0n1p2"}},
					},
					{
						Name:        "sdb",
						DriveType:   ghw.DRIVE_TYPE_HDD,
						IsRemovable: true,
						Partitions:  []*ghw.Partition{{Name: "sdb1"}},
					},
				},
			}, nil
		},
	}

	metas := p.blockMetadata()
	c.Check(metas["nvme0n1p2"], Equals, blockMeta{kind: KindSSD})
	c.Check(metas["nvme0n1"], Equals, blockMeta{kind: KindSSD})
	c.Check(metas["sdb1"], Equals, blockMeta{kind: KindHDD, removable: true})
	c.Check(metas["dm-0"], Equals, blockMeta{})
}

func (s *LinuxProbeSuite) TestBlockMetadataFailureIsNotFatal(c *C) {
	p := &LinuxProbe{
		blockInfo: func() (*ghw.BlockInfo, error) { return nil, errors.New("no sysfs") },
	}
	c.Check(p.blockMetadata(), HasLen, 0)
}

func (s *LinuxProbeSuite) TestSampleCountersOfUnknownDevices(c *C) {
	p := &LinuxProbe{counterNames: map[ID]string{"0:45": ""}}
	_, err := p.SampleCounters(context.Background(), "0:45")
	c.Check(errors.Is(err, ErrNotSupported), Equals, true)
	_, err = p.SampleCounters(context.Background(), "8:1")
	c.Check(errors.Is(err, ErrUnavailable), Equals, true)
}

func (s *LinuxProbeSuite) TestDeviceNumber(c *C) {
	dir := c.MkDir()
	major, minor, err := deviceNumber(dir)
	c.Assert(err, IsNil)
	otherMajor, otherMinor, err := deviceNumber(filepath.Dir(dir))
	c.Assert(err, IsNil)
	// a directory and its parent on one filesystem share the device number
	if filepath.Dir(dir) != "/" {
		c.Check([]uint32{major, minor}, DeepEquals, []uint32{otherMajor, otherMinor})
	}
	_, _, err = deviceNumber(filepath.Join(dir, "missing"))
	c.Check(err, ErrorMatches, "could not stat .*: no such file or directory")
}
