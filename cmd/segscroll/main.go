package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kungfusheep/segscroll"
)

const appName = "segscroll"

// env keeps everything subcommands need in a single place.
type env struct {
	cfg      segscroll.Config
	log      *zap.Logger
	closeLog func() error
	console  bool // errors logged reach the terminal
	start    time.Time
}

type envKey struct{}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	panic("env not found in context")
}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &env{
		cfg:   segscroll.DefaultConfig(),
		log:   zap.NewNop(),
		start: time.Now(),
	})
}

// initializeAppContext loads configuration, applies command line overrides
// and prepares logging after the command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}
	e := envFromContext(ctx)

	var err error
	configFile := cmd.String("config")
	if len(configFile) > 0 {
		if e.cfg, err = segscroll.LoadConfig(configFile); err != nil {
			return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
		}
	}
	if err = applyOverrides(&e.cfg, cmd); err != nil {
		return ctx, err
	}

	// the demo owns the terminal, log to file only
	console := cmd.Args().First() != "demo"
	if e.log, e.closeLog, err = prepareLogger(e.cfg.Logging, console); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	e.console = console && e.cfg.Logging.Level != "none"

	e.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version()), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		e.log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// applyOverrides copies global flags given on the command line over cfg.
func applyOverrides(cfg *segscroll.Config, cmd *cli.Command) error {
	var err error
	if cmd.IsSet("policy") {
		if cfg.Policy, err = segscroll.ParsePolicy(cmd.String("policy")); err != nil {
			return err
		}
	}
	if cmd.IsSet("axis") {
		if cfg.Axis, err = segscroll.ParseAxis(cmd.String("axis")); err != nil {
			return err
		}
	}
	if cmd.IsSet("epsilon") {
		cfg.Epsilon = cmd.Float("epsilon")
	}
	if cmd.Bool("debug") {
		cfg.Logging.Level = "debug"
	}
	return cfg.Validate()
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)

	e.log.Debug("Program ended", zap.Duration("elapsed", time.Since(e.start)), zap.Strings("parsed args", cmd.Args().Slice()))
	if er := e.log.Sync(); er != nil && len(e.cfg.Logging.Destination) > 0 {
		err = multierr.Append(err, fmt.Errorf("unable to sync log: %w", er))
	}
	if e.closeLog != nil {
		if er := e.closeLog(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close log file: %w", er))
		}
	}
	return
}

var errWasHandled bool

// exitErrHandler logs errors from subcommands before the log is closed.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	e := envFromContext(ctx)
	e.log.Error("Program ended with error", zap.Error(err))
	if e.console {
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "devel"
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "nested scroll coordination for segmented page lists",
		Version:         version() + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log every permission handoff"},
			&cli.StringFlag{Name: "policy", Aliases: []string{"p"}, Usage: "bounce `POLICY` (root, page-at-root-edge, page-on-touch)"},
			&cli.StringFlag{Name: "axis", Usage: "root list `AXIS` (vertical, horizontal)"},
			&cli.FloatFlag{Name: "epsilon", Usage: "edge comparison tolerance in points"},
		},
		Commands: []*cli.Command{
			{
				Name:         "demo",
				Usage:        "Drag a composite view around with the mouse",
				OnUsageError: usageErrorHandler,
				Action:       runDemo,
				ArgsUsage:    "[SCENARIO]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "fit", Usage: "size the root list to the terminal"},
				},
			},
			{
				Name:         "replay",
				Usage:        "Replay a scripted gesture and print the state after every step",
				OnUsageError: usageErrorHandler,
				Action:       runReplay,
				ArgsUsage:    "[SCENARIO]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "table", Aliases: []string{"t"}, Usage: "print a table instead of YAML"},
				},
				CustomHelpTemplate: fmt.Sprintf(`%s
SCENARIO:
    YAML file describing the root list, its sections and the gesture steps.
    If absent the built-in scenario is used.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps the active configuration (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
			},
		},
	}

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, _ *cli.Command) error {
	e := envFromContext(ctx)
	data, err := e.cfg.Dump()
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if _, err = os.Stdout.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
