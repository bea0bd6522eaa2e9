package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atuleu/go-humanize"
	"github.com/gosuri/uilive"
	"github.com/samin-cf/sysinfo/disk"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously displays the I/O activity of the local disks",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("interval", 0, "Refresh interval (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func rate(bytes uint64, interval time.Duration) string {
	perSecond := float64(bytes) / interval.Seconds()
	return humanize.ByteSize(int64(perSecond)).String() + "/s"
}

func renderDisks(w io.Writer, list []*disk.Disk, interval time.Duration) {
	fmt.Fprintf(w, "%-28s %-24s %12s %12s  %s\n", "NAME", "MOUNT POINT", "READ", "WRITTEN", "AVAILABLE / TOTAL")
	lines := tableLines(list)
	for i, d := range list {
		read, written := "n/a", "n/a"
		if d.CountersSupported() {
			usage := d.Usage()
			read = rate(usage.ReadBytes, interval)
			written = rate(usage.WrittenBytes, interval)
		}
		fmt.Fprintf(w, "%-28s %-24s %12s %12s  %s\n",
			lines[i].Name, lines[i].MountPoint, read, written, lines[i].Space)
	}
	if len(list) == 0 {
		fmt.Fprintln(w, "no disk found")
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")
	if interval <= 0 {
		interval = cfg.Watch.Interval
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := newDisks(ctx)
	if err != nil {
		return err
	}

	writer := uilive.New()
	writer.Start()
	defer writer.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for cycle := 1; ; cycle++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if cycle%cfg.Watch.ListEvery == 0 {
			if err := ds.RefreshList(ctx); err != nil {
				_, _ = fmt.Fprintln(writer.Bypass(), "could not refresh disk list:", err.Error())
			}
		} else {
			ds.Refresh(ctx)
		}

		renderDisks(writer, ds.List(), interval)
		_ = writer.Flush()
	}
}
