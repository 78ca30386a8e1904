// Package app wires the registered banks to the exporters and runs the
// fetch pipeline the CLI commands invoke.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/bank"
	"github.com/bankfeed-dev/bankfeed/internal/bank/dummy"
	"github.com/bankfeed-dev/bankfeed/internal/bank/nordea"
	"github.com/bankfeed-dev/bankfeed/internal/bank/revolut"
	"github.com/bankfeed-dev/bankfeed/internal/bank/swedbank"
	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/export"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
)

// DefaultRegistry returns a registry with every built-in bank adapter.
func DefaultRegistry(cfg *config.Config) *bank.Registry {
	reg := bank.NewRegistry()
	reg.Register(nordea.New(cfg))
	reg.Register(swedbank.New(cfg))
	reg.Register(revolut.New(cfg))
	reg.Register(dummy.New())
	return reg
}

// Options controls a FetchAndExport run.
type Options struct {
	// ContinueOnError keeps going with the remaining banks after one
	// fails, returning the collected errors at the end. Off by default:
	// the first failure stops the run.
	ContinueOnError bool
}

// FetchAndExport fetches each named bank in order and feeds it through
// every exporter. Unknown bank names fail the whole run before any
// fetch starts.
func FetchAndExport(ctx context.Context, reg *bank.Registry, exporters []export.Exporter, names []string, r progress.Reporter, opts Options) error {
	banks := make([]bank.Bank, 0, len(names))
	for _, name := range names {
		b := reg.Get(name)
		if b == nil {
			return bankerr.Configf("unknown bank %q, available: %s", name, strings.Join(reg.Names(), ", "))
		}
		banks = append(banks, b)
	}

	var errs []error
	for _, b := range banks {
		if err := runOne(ctx, b, exporters, r); err != nil {
			err = fmt.Errorf("%s: %w", b.Name(), err)
			if !opts.ContinueOnError {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func runOne(ctx context.Context, b bank.Bank, exporters []export.Exporter, r progress.Reporter) error {
	if err := b.FetchData(ctx, r); err != nil {
		return fmt.Errorf("fetching data: %w", err)
	}
	for _, e := range exporters {
		if err := e.Export(ctx, b); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}
	}
	return nil
}
