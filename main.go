package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ifaddr/internal/app"
	"ifaddr/internal/config"
	"ifaddr/internal/discovery"
	"ifaddr/internal/netquery/backend"
)

var rootCmdFlags struct {
	configPath  string
	iface       string
	vmInterface string
	choice      string
	backend     string
	nonPrivate  string
	output      string
	verbose     bool
}

// exitCode is set by the command that ran.
var exitCode = app.ExitOK

var rootCmd = &cobra.Command{
	Use:   "ifaddr [interface]",
	Short: "Print the Chrome OS and Linux VM IP addresses",
	Long: `Finds the IPv4 address of the Chrome OS facing interface and, optionally,
of the Linux VM interface. Without an interface name the only non-loopback
interface is used, or the user is asked to pick one (or "all").`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		iface := cfg.HostInterface
		if len(args) == 1 {
			if rootCmdFlags.iface != "" && rootCmdFlags.iface != args[0] {
				return fmt.Errorf("interface given twice: %q and %q", args[0], rootCmdFlags.iface)
			}
			iface = args[0]
		}

		resolver, err := newResolver(cfg, logger)
		if err != nil {
			return err
		}

		opts := app.Options{
			Interface:   iface,
			VMInterface: cfg.VMInterface,
			Choice:      rootCmdFlags.choice,
			NonPrivate:  cfg.NonPrivate,
			Output:      cfg.Output,
		}
		if err := opts.Validate(); err != nil {
			return err
		}

		exitCode = app.New(resolver, opts, os.Stdout, app.TerminalPrompter(os.Stdin, os.Stderr), logger).Run(cmd.Context())
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidate interfaces with their state and address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		resolver, err := newResolver(cfg, logger)
		if err != nil {
			return err
		}

		exitCode = app.List(cmd.Context(), resolver, os.Stdout, logger)
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify ADDRESS...",
	Short: "Report whether IPv4 addresses are private (RFC1918) or public",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode = app.Classify(os.Stdout, args)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootCmdFlags.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&rootCmdFlags.backend, "backend", "", fmt.Sprintf("network query backend (%s)",
		strings.Join([]string{config.BackendNetlink, config.BackendIPRoute, config.BackendPcap}, ", ")))
	pf.BoolVarP(&rootCmdFlags.verbose, "verbose", "v", false, "debug logging on stderr")

	f := rootCmd.Flags()
	f.StringVarP(&rootCmdFlags.iface, "interface", "i", "", "Chrome OS facing interface (e.g., eth0)")
	f.StringVar(&rootCmdFlags.vmInterface, "vm-interface", "", "Linux VM interface, reported as a warning-only secondary")
	f.StringVarP(&rootCmdFlags.choice, "choice", "c", "", `answer for the interface picker: a number or "all"`)
	f.StringVar(&rootCmdFlags.nonPrivate, "non-private", "", "what to do with public addresses: accept, warn or reject")
	f.StringVarP(&rootCmdFlags.output, "output", "o", "", "output format: text or json")

	rootCmd.AddCommand(listCmd, classifyCmd)
}

// setup loads the config file and applies the flags that were set on top.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(rootCmdFlags.configPath)
	if err != nil {
		return cfg, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = rootCmdFlags.backend
	}
	if flags.Changed("interface") {
		cfg.HostInterface = rootCmdFlags.iface
	}
	if flags.Changed("vm-interface") {
		cfg.VMInterface = rootCmdFlags.vmInterface
	}
	if flags.Changed("non-private") {
		cfg.NonPrivate = config.NonPrivatePolicy(rootCmdFlags.nonPrivate)
	}
	if flags.Changed("output") {
		cfg.Output = rootCmdFlags.output
	}
	if rootCmdFlags.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	logger.Debug("configuration", zap.Any("config", cfg))

	return cfg, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	return cfg.Build()
}

func newResolver(cfg config.Config, logger *zap.Logger) (*discovery.Resolver, error) {
	q, err := backend.New(cfg.Backend, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend, err)
	}
	return discovery.New(q, logger), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stdout, "Error: %v\n", err)
		exitCode = app.ExitFailure
	}

	stop()
	os.Exit(exitCode)
}
