package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-ringqueue/pkg/logger"
	"github.com/huynhanx03/go-ringqueue/pkg/settings"
)

type options struct {
	lines      int
	configPath string
	logLevel   string
	verbose    bool
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ringtail [FILE...]",
		Short: "Print the last lines of each input using a fixed-size ring queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			t := &tailer{
				capacity: cfg.Queue.EffectiveCapacity(),
				log:      log,
			}

			sources := []source{readerSource("standard input", stdin)}
			if len(args) > 0 {
				sources = sources[:0]
				for _, path := range args {
					sources = append(sources, fileSource(path))
				}
			}

			log.Debug("starting", zap.Int("capacity", t.capacity), zap.Int("sources", len(sources)))
			return t.run(cmd.Context(), stdout, sources)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)

	f := cmd.Flags()
	f.IntVarP(&opts.lines, "lines", "n", 0, "number of lines to keep (overrides queue.capacity)")
	f.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (overrides logger.log_level)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log per-input summaries at debug level")

	return cmd
}

// loadConfig applies flags on top of the config file (or defaults).
func loadConfig(cmd *cobra.Command, opts *options) (*settings.Config, error) {
	cfg := settings.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = settings.Load(opts.configPath); err != nil {
			return nil, err
		}
	}

	// Capacity is checked by queue.New, not the validator, so -n 0 reports
	// the queue's own error.
	if cmd.Flags().Changed("lines") {
		if opts.lines > settings.MaxCapacity {
			return nil, errors.Errorf("lines %d exceeds maximum %d", opts.lines, settings.MaxCapacity)
		}
		cfg.Queue.Capacity = opts.lines
		cfg.Queue.RoundToPowerOfTwo = false
	}
	if opts.logLevel != "" {
		cfg.Logger.LogLevel = opts.logLevel
	}
	if opts.verbose {
		cfg.Logger.LogLevel = "debug"
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
