package main

import (
	"context"
	"os"

	"github.com/samin-cf/sysinfo/disk"
	"github.com/samin-cf/sysinfo/internal/config"
	"github.com/samin-cf/sysinfo/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	configPath string
	verbosity  int
)

var rootCmd = &cobra.Command{
	Use:           "sysinfo",
	Short:         "Lists local disks and their I/O activity",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		return logging.SetUp(cfg.Logging.Level, verbosity)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: searched in XDG config dirs)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Enable more verbose output (can be set multiple times)")
}

// newDisks builds a registry from the configuration and performs the first
// device enumeration. An enumeration failure is logged and yields an empty
// registry, so the caller can retry later.
func newDisks(ctx context.Context) (*disk.Disks, error) {
	opts, err := cfg.DiskOptions()
	if err != nil {
		return nil, err
	}
	ds := disk.New(opts...)
	if err := ds.RefreshList(ctx); err != nil {
		logging.NewLogger("main").WithError(err).Warn("could not list disks")
	}
	return ds, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
