package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/samin-cf/sysinfo/disk"
)

var errTimeout = errors.New("disk registry did not answer in time")

type diskResult struct {
	infos []*disk.Info
	err   error
}

func (s *Server) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// withDisks runs fn on the registry from a worker goroutine and returns the
// resulting view. The probe may ignore ctx, so the handler gives up on its
// own deadline while the worker keeps the lock until fn returns.
func (s *Server) withDisks(fn func(ctx context.Context, ds *disk.Disks) error) ([]*disk.Info, error) {
	ctx, cancel := s.context()
	defer cancel()

	done := make(chan diskResult, 1)
	go func() {
		s.mx.Lock()
		defer s.mx.Unlock()
		err := fn(ctx, s.disks)
		done <- diskResult{infos: infos(s.disks), err: err}
	}()

	select {
	case res := <-done:
		return res.infos, res.err
	case <-ctx.Done():
		return nil, errTimeout
	}
}

func infos(ds *disk.Disks) []*disk.Info {
	list := ds.List()
	res := make([]*disk.Info, 0, len(list))
	for _, d := range list {
		res = append(res, d.Info())
	}
	return res
}

func (s *Server) sendDisks(c *fiber.Ctx, infos []*disk.Info, err error) error {
	switch {
	case errors.Is(err, errTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, disk.ErrEnumeration):
		s.logger.WithError(err).Warn("could not refresh disk list")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error(), "disks": infos})
	case err != nil:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(infos)
}

// Disk endpoints
func (s *Server) getDisks(c *fiber.Ctx) error {
	infos, err := s.withDisks(func(context.Context, *disk.Disks) error { return nil })
	return s.sendDisks(c, infos, err)
}

func (s *Server) refreshDisks(c *fiber.Ctx) error {
	infos, err := s.withDisks(func(ctx context.Context, ds *disk.Disks) error {
		ds.Refresh(ctx)
		return nil
	})
	return s.sendDisks(c, infos, err)
}

func (s *Server) refreshDiskList(c *fiber.Ctx) error {
	infos, err := s.withDisks(func(ctx context.Context, ds *disk.Disks) error {
		return ds.RefreshList(ctx)
	})
	return s.sendDisks(c, infos, err)
}

// CPU endpoint
func (s *Server) getCPU(c *fiber.Ctx) error {
	ctx, cancel := s.context()
	defer cancel()

	info, err := s.cpuReader.GetInfo(ctx)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(info)
}
