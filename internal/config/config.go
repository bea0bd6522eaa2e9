package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/samin-cf/sysinfo/disk"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// RelativePath is the location of the configuration file below the XDG
// configuration directories.
const RelativePath = "sysinfo/config.yml"

// Server configures the HTTP surface.
type Server struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

// Disk configures the disk registry.
type Disk struct {
	ExcludeFileSystems []string `yaml:"exclude_filesystems"`
	ReappearPolicy     string   `yaml:"reappear_policy"`
}

// Watch configures the watch command.
type Watch struct {
	Interval time.Duration `yaml:"interval"`
	// ListEvery is the number of refresh cycles between two device list
	// refreshes.
	ListEvery int `yaml:"list_every"`
}

// Logging configures the standard logger.
type Logging struct {
	Level string `yaml:"level"`
}

// Config is the content of the configuration file.
type Config struct {
	Server  Server  `yaml:"server"`
	Disk    Disk    `yaml:"disk"`
	Watch   Watch   `yaml:"watch"`
	Logging Logging `yaml:"logging"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Server: Server{
			Bind: "0.0.0.0",
			Port: 8080,
		},
		Disk: Disk{
			ReappearPolicy: disk.ReappearRebaseline.String(),
		},
		Watch: Watch{
			Interval:  2 * time.Second,
			ListEvery: 5,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load reads the configuration at path. When path is empty, the XDG
// configuration directories are searched, and the defaults are used if no
// file is found there. Missing keys keep their default value.
func Load(path string) (*Config, error) {
	if len(path) == 0 {
		found, err := xdg.SearchConfigFile(RelativePath)
		if err != nil {
			return Default(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return config, nil
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if _, err := disk.ParseReappearPolicy(c.Disk.ReappearPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.Watch.Interval <= 0 {
		errs = append(errs, fmt.Errorf("watch interval must be positive, got %s", c.Watch.Interval))
	}
	if c.Watch.ListEvery <= 0 {
		errs = append(errs, fmt.Errorf("watch list_every must be positive, got %d", c.Watch.ListEvery))
	}
	if len(c.Logging.Level) > 0 {
		if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DiskOptions returns the registry options described by the disk section.
func (c *Config) DiskOptions() ([]disk.Option, error) {
	policy, err := disk.ParseReappearPolicy(c.Disk.ReappearPolicy)
	if err != nil {
		return nil, err
	}
	opts := []disk.Option{disk.WithReappearPolicy(policy)}
	if len(c.Disk.ExcludeFileSystems) > 0 {
		opts = append(opts, disk.WithExcludedFileSystems(c.Disk.ExcludeFileSystems...))
	}
	return opts, nil
}

// Address returns the listen address of the HTTP surface.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
