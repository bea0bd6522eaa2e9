package main

import (
	"context"
	"fmt"
	"time"

	"github.com/atuleu/go-humanize"
	"github.com/atuleu/go-tablifier"
	"github.com/samin-cf/sysinfo/disk"
	"github.com/samin-cf/sysinfo/internal/cpu"
	"github.com/spf13/cobra"
)

var disksCmd = &cobra.Command{
	Use:   "disks",
	Short: "Prints the local disks",
	Long:  "Prints the local disks. With --interval, waits and prints the I/O performed during that interval.",
	RunE:  runDisks,
}

func init() {
	disksCmd.Flags().Duration("interval", 0, "Sampling interval for the read/written columns")
	rootCmd.AddCommand(disksCmd)
}

type diskTableLine struct {
	Name       string
	MountPoint string `name:"Mount Point"`
	FileSystem string `name:"FS"`
	Kind       string
	Removable  string
	Space      string `name:"Available / Total"`
	Read       string
	Written    string
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func tableLines(list []*disk.Disk) []diskTableLine {
	lines := make([]diskTableLine, 0, len(list))
	for _, d := range list {
		line := diskTableLine{
			Name:       d.Name(),
			MountPoint: d.MountPoint(),
			FileSystem: d.FileSystem(),
			Kind:       d.Kind().String(),
			Removable:  yesNo(d.IsRemovable()),
			Space: fmt.Sprintf("%s / %s",
				humanize.ByteSize(int64(d.AvailableSpace())),
				humanize.ByteSize(int64(d.TotalSpace()))),
			Read:    "n/a",
			Written: "n/a",
		}
		if d.CountersSupported() {
			usage := d.Usage()
			line.Read = humanize.ByteSize(int64(usage.ReadBytes)).String()
			line.Written = humanize.ByteSize(int64(usage.WrittenBytes)).String()
		}
		if d.IsStale() {
			line.Name += " (stale)"
		}
		lines = append(lines, line)
	}
	return lines
}

// collectDisks lists the disks once, and samples them again after interval
// when it is positive. Unlike serve and watch, a failed enumeration is
// returned since there is no later refresh to recover from it.
func collectDisks(ctx context.Context, interval time.Duration, extra ...disk.Option) ([]*disk.Disk, error) {
	opts, err := cfg.DiskOptions()
	if err != nil {
		return nil, err
	}
	ds, err := disk.NewWithRefreshedList(ctx, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}

	if interval > 0 {
		time.Sleep(interval)
		ds.Refresh(ctx)
	}
	return ds.List(), nil
}

func runDisks(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	interval, _ := cmd.Flags().GetDuration("interval")
	list, err := collectDisks(ctx, interval)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		if cpu.IsConstrainedHost(ctx, cpu.NewReader()) {
			fmt.Println("no disk found: this host reports no physical core and is likely virtualized")
		} else {
			fmt.Println("no disk found")
		}
		return nil
	}

	tablifier.Tablify(tableLines(list))
	return nil
}
