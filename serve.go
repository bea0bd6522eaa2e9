package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samin-cf/sysinfo/api"
	"github.com/samin-cf/sysinfo/internal/cpu"
	"github.com/samin-cf/sysinfo/internal/logging"
	"github.com/samin-cf/sysinfo/internal/platform"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves disk and CPU information over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("bind", "", "IP address to bind the server to (default from config)")
	serveCmd.Flags().Int("port", 0, "Port to run the server on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := platform.ValidateSupport(); err != nil {
		return fmt.Errorf("platform validation failed: %w", err)
	}

	if bind, _ := cmd.Flags().GetString("bind"); len(bind) > 0 {
		cfg.Server.Bind = bind
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	ds, err := newDisks(context.Background())
	if err != nil {
		return err
	}

	server := api.NewServer(ds, cpu.NewReader())
	logger := logging.NewLogger("main")

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		if err := server.Shutdown(); err != nil {
			logger.WithError(err).Error("error during shutdown")
		}
	}()

	return server.Start(cfg.Address())
}
