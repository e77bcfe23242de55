package netquery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"go.uber.org/zap"

	"ifaddr/internal/models"
)

// ipLink is one element of the array printed by `ip -j addr show`.
type ipLink struct {
	IfName    string   `json:"ifname"`
	Flags     []string `json:"flags"`
	OperState string   `json:"operstate"`
	LinkType  string   `json:"link_type"`
	AddrInfo  []ipAddr `json:"addr_info"`
}

type ipAddr struct {
	Family    string `json:"family"`
	Local     string `json:"local"`
	PrefixLen int    `json:"prefixlen"`
}

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// IPRoute queries links by running the iproute2 `ip` tool in JSON mode.
type IPRoute struct {
	Path   string
	run    Runner
	logger *zap.Logger
}

// NewIPRoute returns a backend that shells out to `ip`.
func NewIPRoute(logger *zap.Logger) *IPRoute {
	return NewIPRouteWithRunner(logger, execRunner)
}

// NewIPRouteWithRunner lets callers replace command execution.
func NewIPRouteWithRunner(logger *zap.Logger, run Runner) *IPRoute {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IPRoute{Path: "ip", run: run, logger: logger}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

func (q *IPRoute) dump(ctx context.Context) ([]ipLink, error) {
	// -j: JSON output
	// -4 is not used: older iproute2 versions drop address-less links from the
	// JSON array, and DOWN links without addresses still need a state.
	args := []string{"-j", "addr", "show"}
	q.logger.Debug("running ip", zap.String("path", q.Path), zap.Strings("args", args))

	out, err := q.run(ctx, q.Path, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}

	var links []ipLink
	if err := json.Unmarshal(out, &links); err != nil {
		return nil, fmt.Errorf("failed to decode ip output: %w", err)
	}

	// Some versions emit {} placeholders.
	return slices.DeleteFunc(links, func(l ipLink) bool { return l.IfName == "" }), nil
}

func (l ipLink) toLink() Link {
	state := models.StateDown
	if slices.Contains(l.Flags, "UP") {
		state = models.StateUp
	}
	return Link{
		Name:     l.IfName,
		State:    state,
		Loopback: l.LinkType == "loopback" || slices.Contains(l.Flags, "LOOPBACK"),
	}
}

func (q *IPRoute) Links(ctx context.Context) ([]Link, error) {
	raw, err := q.dump(ctx)
	if err != nil {
		return nil, err
	}

	links := make([]Link, 0, len(raw))
	for _, l := range raw {
		links = append(links, l.toLink())
	}
	return links, nil
}

func (q *IPRoute) Link(ctx context.Context, name string) (Link, error) {
	links, err := q.Links(ctx)
	if err != nil {
		return Link{}, err
	}
	l, ok := findLink(links, name)
	if !ok {
		return Link{}, fmt.Errorf("%s: %w", name, ErrLinkNotFound)
	}
	return l, nil
}

func (q *IPRoute) IPv4Addrs(ctx context.Context, name string) ([]models.Address, error) {
	raw, err := q.dump(ctx)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(raw, func(l ipLink) bool { return l.IfName == name })
	if i < 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrLinkNotFound)
	}

	var addrs []models.Address
	for _, info := range raw[i].AddrInfo {
		if info.Family != "inet" {
			continue
		}
		a, err := models.ParseAddress(info.Local)
		if err != nil {
			// Skip malformed lines
			q.logger.Warn("skipping address", zap.String("link", name), zap.Error(err))
			continue
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}
