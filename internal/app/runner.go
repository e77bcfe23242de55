// Package app turns resolver results into the CLI's report and exit code.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ifaddr/internal/config"
	"ifaddr/internal/discovery"
	"ifaddr/internal/models"
	"ifaddr/internal/reporting"
	"ifaddr/internal/selection"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

// Prompter asks the user to pick among several interfaces. It returns a choice
// in the form selection.Decide accepts.
type Prompter func(names []string) (string, error)

// Options are the per-run inputs, merged from config and flags.
type Options struct {
	// Interface is the primary interface. Empty means apply the selection policy.
	Interface string
	// VMInterface is the optional secondary interface.
	VMInterface string
	// Choice pre-answers the picker.
	Choice     string
	NonPrivate config.NonPrivatePolicy
	Output     string
}

// Validate rejects option combinations the runner cannot honour. It runs
// after every source (config, flags, positional argument) has been merged.
func (o Options) Validate() error {
	if o.Interface != "" && o.Interface == o.VMInterface {
		return fmt.Errorf("%s cannot be both the Chrome OS and the Linux VM interface", o.Interface)
	}
	return nil
}

// Runner executes one resolution.
type Runner struct {
	resolver *discovery.Resolver
	opts     Options
	out      io.Writer
	prompt   Prompter
	logger   *zap.Logger
}

// New creates a Runner. prompt may be nil, in which case an ambiguous
// selection is an error.
func New(resolver *discovery.Resolver, opts Options, out io.Writer, prompt Prompter, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.NonPrivate == "" {
		opts.NonPrivate = config.NonPrivateAccept
	}
	return &Runner{
		resolver: resolver,
		opts:     opts,
		out:      out,
		prompt:   prompt,
		logger:   logger,
	}
}

// Run resolves the addresses, writes the report and returns the exit code.
func (r *Runner) Run(ctx context.Context) int {
	report := &reporting.Report{}
	code := r.run(ctx, report)

	write := reporting.WriteText
	if r.opts.Output == config.OutputJSON {
		write = reporting.WriteJSON
	}
	if err := write(r.out, report); err != nil {
		r.logger.Error("failed to write report", zap.Error(err))
		return ExitFailure
	}
	return code
}

func (r *Runner) run(ctx context.Context, report *reporting.Report) int {
	primary := r.opts.Interface

	if primary == "" {
		d, err := r.decide(ctx)
		if err != nil {
			report.Errorf("%s", describe(err))
			return ExitFailure
		}

		switch d.Kind {
		case selection.KindNone:
			report.Errorf("%s", describe(discovery.ErrNoInterfacesFound))
			return ExitFailure
		case selection.KindAll:
			return r.reportAll(ctx, report, d.Names)
		}
		primary = d.Name
	}

	r.logger.Debug("primary interface", zap.String("name", primary))

	if code := r.reportPrimary(ctx, report, primary); code != ExitOK {
		return code
	}

	if r.opts.VMInterface != "" {
		r.reportSecondary(ctx, report, r.opts.VMInterface)
	}
	return ExitOK
}

// decide enumerates candidates and applies the selection policy, prompting
// the user when it is ambiguous.
func (r *Runner) decide(ctx context.Context) (selection.Decision, error) {
	names, err := r.resolver.ListInterfaces(ctx)
	if errors.Is(err, discovery.ErrNoInterfacesFound) {
		return selection.None(), nil
	}
	if err != nil {
		return selection.Decision{}, err
	}

	// The VM interface is reported separately and is never a primary candidate.
	if r.opts.VMInterface != "" {
		names = slices.DeleteFunc(names, func(n string) bool { return n == r.opts.VMInterface })
	}

	d, err := selection.Decide(names, r.opts.Choice)
	if err != nil || d.Kind != selection.KindAmbiguous {
		return d, err
	}

	if r.prompt == nil {
		return d, fmt.Errorf("%w: several interfaces found (%v), name one or pass a choice", selection.ErrInvalidSelection, d.Names)
	}

	choice, err := r.prompt(d.Names)
	if err != nil {
		return d, err
	}

	d, err = selection.Decide(names, choice)
	if err == nil && d.Kind == selection.KindAmbiguous {
		err = fmt.Errorf("%w: no interface chosen", selection.ErrInvalidSelection)
	}
	return d, err
}

func (r *Runner) reportPrimary(ctx context.Context, report *reporting.Report, name string) int {
	addr, err := r.resolver.Lookup(ctx, name)
	if err != nil {
		if errors.Is(err, discovery.ErrInterfaceDown) {
			report.Warnf("%s", describe(err))
			report.Errorf("no usable IPv4 address on required interface %s", name)
		} else {
			report.Errorf("%s", describe(err))
		}
		return ExitFailure
	}

	if !addr.IsPrivate() {
		switch r.opts.NonPrivate {
		case config.NonPrivateReject:
			report.Errorf("address %s on %s is not private", addr, name)
			return ExitFailure
		case config.NonPrivateWarn:
			report.Add(reporting.LabelChromeOS, name, addr)
			report.Warnf("address %s on %s is not private", addr, name)
			return ExitOK
		}
	}

	report.Add(reporting.LabelChromeOS, name, addr)
	return ExitOK
}

// reportSecondary never fails the run; problems become warnings.
func (r *Runner) reportSecondary(ctx context.Context, report *reporting.Report, name string) {
	addr, err := r.resolver.Lookup(ctx, name)
	if err != nil {
		report.Warnf("%s", describe(err))
		return
	}
	r.addChecked(report, reporting.LabelVM, name, addr)
}

// addChecked records a non-fatal address, applying the non-private policy as
// warnings only. It reports whether the address was kept.
func (r *Runner) addChecked(report *reporting.Report, label, name string, addr models.Address) bool {
	if !addr.IsPrivate() {
		switch r.opts.NonPrivate {
		case config.NonPrivateReject:
			report.Warnf("address %s on %s is not private, ignoring it", addr, name)
			return false
		case config.NonPrivateWarn:
			report.Add(label, name, addr)
			report.Warnf("address %s on %s is not private", addr, name)
			return true
		}
	}
	report.Add(label, name, addr)
	return true
}

type lookupResult struct {
	addr models.Address
	err  error
}

// reportAll looks every interface up concurrently and reports them in the
// order of names. Per-interface problems become warnings; a backend failure
// aborts the scan. It fails when no interface produced an address.
func (r *Runner) reportAll(ctx context.Context, report *reporting.Report, names []string) int {
	results := make([]lookupResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			addr, err := r.resolver.Lookup(gctx, name)

			var ie *discovery.InterfaceError
			if err != nil && !errors.As(err, &ie) {
				return fmt.Errorf("could not look up %s: %w", name, err)
			}
			results[i] = lookupResult{addr: addr, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		report.Errorf("%s", describe(err))
		return ExitFailure
	}

	found := 0
	for i, name := range names {
		res := results[i]
		if res.err != nil {
			report.Warnf("%s", describe(res.err))
			continue
		}
		if r.addChecked(report, reporting.InterfaceLabel(name), name, res.addr) {
			found++
		}
	}

	if found == 0 {
		report.Errorf("no usable IPv4 address on any interface")
		return ExitFailure
	}
	return ExitOK
}

// describe turns resolver errors into the sentences shown to the user.
func describe(err error) string {
	var ie *discovery.InterfaceError
	if errors.As(err, &ie) {
		switch {
		case errors.Is(ie.Err, discovery.ErrInterfaceNotFound):
			return fmt.Sprintf("interface %s does not exist", ie.Name)
		case errors.Is(ie.Err, discovery.ErrInterfaceDown):
			return fmt.Sprintf("interface %s is DOWN, skipping address lookup", ie.Name)
		case errors.Is(ie.Err, discovery.ErrNoAddressFound):
			return fmt.Sprintf("no IPv4 address found on %s", ie.Name)
		}
	}
	if errors.Is(err, discovery.ErrNoInterfacesFound) {
		return "no network interfaces found"
	}
	return err.Error()
}
