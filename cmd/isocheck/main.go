// Command isocheck is a thin demonstration CLI around the isocheck
// library: it runs a handful of canonical example histories, or
// generates and checks synthetic ones, reporting SER/PC/SI results.
//
// # Overview
//
// isocheck never parses a transactional history from a file or the
// network — those remain external collaborators of this module, not
// something it specifies. What it does read is a small, optional YAML
// options file controlling the guard-key namespace, the SI abnormal
// value, and a debug-logging toggle; everything else is generated
// in-process by internal/fixtures.
//
// # Architecture
//
//	┌─────────────┐     ┌────────────────┐     ┌───────────────────┐
//	│ --config    │────▶│ config.Options │────▶│ newChecker()       │
//	│ (optional)  │     │ (YAML or       │     │ isocheck.Checker   │
//	└─────────────┘     │  defaults)     │     │  [string,string]   │
//	                     └────────────────┘     └─────────┬──────────┘
//	                                                       │
//	                         ┌─────────────────────────────┼───────────────┐
//	                         ▼                                             ▼
//	                   canonical                                        fuzz
//	               fixtures.Canonical()                       fixtures.GenerateRandom()
//	               report ser/prefix/si                        report ser/prefix/si
//	               per named scenario                           per synthetic run
//
// # Failure Handling
//
// PersistentPreRunE loads and validates config.Options once before any
// subcommand runs; a bad or missing abnormal value fails fast there
// rather than surfacing as a confusing per-history SiCheck error later.
// canonical treats any scenario whose observed outcome disagrees with
// its expected one as a command failure (non-zero exit), so it doubles
// as a regression check, not just a demo.
//
// # Usage Example
//
//	isocheck canonical
//	isocheck fuzz --count 50 --clients 4 --seed 1
//	isocheck --config ./isocheck.yaml canonical
//
// # See Also
//
// Related packages:
//   - isocheck: the library this command wraps
//   - internal/config: the YAML options file format
//   - internal/fixtures: canonical and synthetic history generation
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dreamware/isocheck"
	"github.com/dreamware/isocheck/internal/config"
	"github.com/dreamware/isocheck/internal/fixtures"
	"github.com/dreamware/isocheck/internal/obslog"
)

var (
	configPath string
	opts       config.Options
)

func main() {
	root := &cobra.Command{
		Use:           "isocheck",
		Short:         "Offline serializability / prefix-consistency / snapshot-isolation checker",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				opts, err = config.Load(configPath)
			} else {
				opts = config.Default()
			}
			if err != nil {
				return err
			}
			return opts.Validate()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML options file")

	root.AddCommand(newCanonicalCmd())
	root.AddCommand(newFuzzCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *obslog.Logger {
	if !opts.Debug {
		return obslog.Nop()
	}
	z, err := zap.NewDevelopment()
	if err != nil {
		return obslog.Nop()
	}
	return obslog.New(z)
}

func newChecker() (*isocheck.Checker[string, string], error) {
	return isocheck.NewChecker[string, string](
		opts.Guard,
		opts.AbnormalValue,
		isocheck.WithLogger[string, string](newLogger()),
	)
}

func newCanonicalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canonical",
		Short: "Run the canonical example scenarios and report their isolation outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newChecker()
			if err != nil {
				return err
			}
			ctx := context.Background()
			mismatch := 0
			for _, s := range fixtures.Canonical() {
				ser := c.SerCheck(ctx, s.History)
				pre := c.PrefixCheck(ctx, s.History)
				si, err := c.SiCheck(ctx, s.History)
				if err != nil {
					return fmt.Errorf("%s: %w", s.Name, err)
				}

				status := "ok"
				if ser.OK != s.WantSER || pre.OK != s.WantPrefix || si.OK != s.WantSI {
					status = "MISMATCH"
					mismatch++
				}
				fmt.Printf("%-32s ser=%-5v prefix=%-5v si=%-5v [%s]\n", s.Name, ser.OK, pre.OK, si.OK, status)
			}
			if mismatch > 0 {
				return fmt.Errorf("%d scenario(s) did not match their expected outcome", mismatch)
			}
			return nil
		},
	}
}

func newFuzzCmd() *cobra.Command {
	var count int
	var clients int
	var txPerClient int
	var keys int
	var seed int64

	cmd := &cobra.Command{
		Use:   "fuzz",
		Short: "Generate and check synthetic histories",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newChecker()
			if err != nil {
				return err
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			ctx := context.Background()

			for i := 0; i < count; i++ {
				s := fixtures.GenerateRandom(rng, clients, txPerClient, keys)
				ser := c.SerCheck(ctx, s.History)
				pre := c.PrefixCheck(ctx, s.History)
				si, err := c.SiCheck(ctx, s.History)
				if err != nil {
					return fmt.Errorf("%s: %w", s.ID, err)
				}
				fmt.Printf("%s ser=%-5v prefix=%-5v si=%-5v\n", s.ID, ser.OK, pre.OK, si.OK)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of synthetic histories to generate")
	cmd.Flags().IntVar(&clients, "clients", 3, "client sessions per history")
	cmd.Flags().IntVar(&txPerClient, "tx-per-client", 4, "max transactions per client")
	cmd.Flags().IntVar(&keys, "keys", 3, "size of the shared key space")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = derive from current time)")
	return cmd
}
