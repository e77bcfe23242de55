package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/zap"

	"ifaddr/internal/discovery"
	"ifaddr/internal/models"
)

// List prints every candidate interface with its state and first address.
func List(ctx context.Context, resolver *discovery.Resolver, w io.Writer, logger *zap.Logger) int {
	names, err := resolver.ListInterfaces(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", describe(err))
		return ExitFailure
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "#\tINTERFACE\tSTATE\tADDRESS\tCLASS")

	row := 0
	for _, name := range names {
		iface, err := resolver.Snapshot(ctx, name)
		if err != nil {
			// The link can vanish between enumeration and lookup.
			if errors.Is(err, discovery.ErrInterfaceNotFound) {
				logger.Debug("interface disappeared", zap.String("name", name))
				continue
			}
			fmt.Fprintf(w, "Error: %s\n", describe(err))
			return ExitFailure
		}

		addr, class := "-", "-"
		if a, ok := iface.FirstIPv4(); ok {
			addr, class = a.String(), a.Class().String()
		}
		row++
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", row, name, iface.State(), addr, class)
	}

	if err := tw.Flush(); err != nil {
		logger.Error("failed to write list", zap.Error(err))
		return ExitFailure
	}
	return ExitOK
}

// Classify prints PRIVATE or PUBLIC for every address. Malformed addresses
// are reported and make the exit code 1.
func Classify(w io.Writer, addrs []string) int {
	code := ExitOK
	for _, s := range addrs {
		a, err := models.ParseAddress(s)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			code = ExitFailure
			continue
		}
		fmt.Fprintf(w, "%s %s\n", a, a.Class())
	}
	return code
}
