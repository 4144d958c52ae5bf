// SPDX-License-Identifier: MIT

// Command gridmv runs the distributed matrix-vector product on an in-memory
// k×k grid of goroutine processes and checks it against the serial product.
//
//	gridmv --procs 9 --n 12 --seed 7 --print
package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pion/logging"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridmv/comm"
	"github.com/katalvlaran/gridmv/grid"
	"github.com/katalvlaran/gridmv/layout"
	"github.com/katalvlaran/gridmv/parmv"
)

const loggerScope = "gridmv"

// config holds the command-line settings.
type config struct {
	procs    int
	n        int
	seed     int64
	logLevel string
	timeout  time.Duration
	mailbox  int
	printY   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config{}
	cmd := &cobra.Command{
		Use:          "gridmv",
		Short:        "Distributed y = A·x on a k×k process grid",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&cfg.procs, "procs", "p", 4, "number of processes (a perfect square k²)")
	f.IntVar(&cfg.n, "n", 8, "global matrix dimension (a multiple of k)")
	f.Int64Var(&cfg.seed, "seed", 1, "seed of the random A and x")
	f.StringVar(&cfg.logLevel, "log-level", "error", "disabled|error|warn|info|debug|trace")
	f.DurationVar(&cfg.timeout, "timeout", 0, "abort the run after this long (0: no limit)")
	f.IntVar(&cfg.mailbox, "mailbox", comm.DefaultMailboxDepth, "messages buffered per route (0: rendezvous)")
	f.BoolVar(&cfg.printY, "print", false, "print y")

	return cmd
}

// parseLevel maps a --log-level value to a pion log level.
func parseLevel(s string) (logging.LogLevel, error) {
	switch strings.ToLower(s) {
	case "disabled", "off":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	default:
		return logging.LogLevelDisabled, fmt.Errorf("unknown log level %q", s)
	}
}

func run(ctx context.Context, out io.Writer, cfg config) error {
	level, err := parseLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	if cfg.mailbox < 0 {
		return fmt.Errorf("--mailbox must be >= 0, got %d", cfg.mailbox)
	}
	factory := logging.NewDefaultLoggerFactory()
	factory.DefaultLogLevel = level
	log := factory.NewLogger(loggerScope)

	topo, err := grid.NewTopology(cfg.procs)
	if err != nil {
		return err
	}
	if cfg.n <= 0 {
		return fmt.Errorf("n=%d: %w", cfg.n, parmv.ErrBadDimension)
	}
	a, x := layout.Random(cfg.n, cfg.seed)
	shares, err := layout.Split(a, x, topo.Dims())
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	log.Infof("running n=%d on a %dx%d grid", cfg.n, topo.Dims(), topo.Dims())
	start := time.Now()
	err = comm.Run(ctx, topo.Size(), func(ctx context.Context, c comm.Comm) error {
		cart, err := grid.NewCart(c)
		if err != nil {
			return err
		}
		s := shares[c.Rank()]
		return parmv.Multiply(ctx, cfg.n, s.Block, s.X, s.Y, cart, parmv.WithLoggerFactory(factory))
	}, comm.WithLoggerFactory(factory), comm.WithMailboxDepth(cfg.mailbox))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	y, err := layout.Assemble(shares)
	if err != nil {
		return err
	}
	ref, err := layout.Serial(a, x)
	if err != nil {
		return err
	}
	maxErr := lo.Max(lo.Map(y, func(v float64, i int) float64 { return math.Abs(v - ref[i]) }))

	if cfg.printY {
		fmt.Fprintf(out, "y = %v\n", y)
	}
	fmt.Fprintf(out, "procs=%d k=%d n=%d elapsed=%s max|y-serial|=%.3g\n",
		topo.Size(), topo.Dims(), cfg.n, elapsed.Round(time.Microsecond), maxErr)

	return nil
}
