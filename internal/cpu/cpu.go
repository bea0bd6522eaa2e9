package cpu

import "context"

// Info represents CPU information
type Info struct {
	Model     string  `json:"model"`
	Cores     int     `json:"cores"`
	Threads   int     `json:"threads"`
	Usage     float64 `json:"usage_percent"`
	Frequency float64 `json:"frequency_mhz"`
}

// Reader interface for CPU monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
	GetUsage(ctx context.Context) (float64, error)
	// PhysicalCores returns the number of physical cores, 0 when the host
	// does not report any.
	PhysicalCores(ctx context.Context) (int, error)
}

// NewReader creates a new CPU reader for the current platform
func NewReader() Reader {
	return newPlatformReader()
}

// IsConstrainedHost reports whether the host exposes no physical core. Such
// hosts are usually virtualized or sandboxed, and may legitimately have no
// visible disk or no disk I/O counters.
func IsConstrainedHost(ctx context.Context, r Reader) bool {
	cores, err := r.PhysicalCores(ctx)
	return err != nil || cores == 0
}
