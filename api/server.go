package api

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/samin-cf/sysinfo/disk"
	"github.com/samin-cf/sysinfo/internal/cpu"
	"github.com/samin-cf/sysinfo/internal/logging"
	"github.com/samin-cf/sysinfo/internal/platform"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 10 * time.Second

// Server represents the API server
type Server struct {
	app       *fiber.App
	cpuReader cpu.Reader
	logger    *logrus.Entry

	// mx serializes every access to disks, which is not safe for
	// concurrent use.
	mx      sync.Mutex
	disks   *disk.Disks
	timeout time.Duration
}

// NewServer creates a new API server exposing disks
func NewServer(disks *disk.Disks, cpuReader cpu.Reader) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ServerHeader: "sysinfo",
		AppName:      "sysinfo",
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		MaxAge:       86400, // 24 hours
	}))

	server := &Server{
		app:       app,
		cpuReader: cpuReader,
		logger:    logging.NewLogger("api"),
		disks:     disks,
		timeout:   defaultTimeout,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.app.Group("/api")

	api.Get("/disks", s.getDisks)
	api.Post("/disks/refresh", s.refreshDisks)
	api.Post("/disks/refresh-list", s.refreshDiskList)

	api.Get("/cpu", s.getCPU)

	// Health check
	api.Get("/health", s.healthCheck)
}

// Start starts the API server
func (s *Server) Start(address string) error {
	s.logger.WithField("address", address).Info("starting server")
	return s.app.Listen(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Health check endpoint
func (s *Server) healthCheck(c *fiber.Ctx) error {
	ctx, cancel := s.context()
	defer cancel()

	return c.JSON(fiber.Map{
		"status":                  "ok",
		"platform":                platform.GetOS(),
		"disk_counters_supported": platform.DiskCountersSupported(),
		"virtualization":          platform.GetVirtualization(ctx),
		"constrained_host":        cpu.IsConstrainedHost(ctx, s.cpuReader),
		"timestamp":               time.Now().Unix(),
	})
}
