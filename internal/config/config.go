// Package config loads the optional YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	BackendNetlink = "netlink"
	BackendIPRoute = "iproute"
	BackendPcap    = "pcap"
)

// NonPrivatePolicy decides what happens when a discovered address is public.
type NonPrivatePolicy string

const (
	NonPrivateAccept NonPrivatePolicy = "accept"
	NonPrivateWarn   NonPrivatePolicy = "warn"
	NonPrivateReject NonPrivatePolicy = "reject"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config is the resolver configuration.
type Config struct {
	// Backend names the netquery implementation: netlink, iproute or pcap.
	Backend string `yaml:"backend"`
	// HostInterface is the Chrome OS facing interface. Empty means auto-select.
	HostInterface string `yaml:"host_interface"`
	// VMInterface is the optional secondary interface of the Linux VM.
	VMInterface string           `yaml:"vm_interface"`
	NonPrivate  NonPrivatePolicy `yaml:"non_private"`
	Output      string           `yaml:"output"`
	LogLevel    string           `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Backend:    BackendNetlink,
		NonPrivate: NonPrivateAccept,
		Output:     OutputText,
		LogLevel:   "info",
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	filename, err := filepath.Abs(path)
	if err != nil {
		return cfg, err
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	var result *multierror.Error

	if !slices.Contains([]string{BackendNetlink, BackendIPRoute, BackendPcap}, c.Backend) {
		result = multierror.Append(result, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if !slices.Contains([]NonPrivatePolicy{NonPrivateAccept, NonPrivateWarn, NonPrivateReject}, c.NonPrivate) {
		result = multierror.Append(result, fmt.Errorf("unknown non_private policy %q", c.NonPrivate))
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		result = multierror.Append(result, fmt.Errorf("unknown output %q", c.Output))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid log_level: %w", err))
	}
	if c.HostInterface != "" && c.HostInterface == c.VMInterface {
		result = multierror.Append(result, fmt.Errorf("host_interface and vm_interface are both %q", c.HostInterface))
	}

	return result.ErrorOrNil()
}
