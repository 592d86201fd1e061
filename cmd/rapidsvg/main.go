package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rapidsvg/internal/config"
	"rapidsvg/internal/misc"
	"rapidsvg/internal/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	env.LegacyColors = cmd.Bool("legacy-colors")

	if env.Log, err = env.Cfg.Logging.Prepare(true); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging, errors must be reported directly to stderr from now on
	env.RestoreStdLog()

	// remove empty panic file if any
	if env.Cfg != nil {
		if fname := env.Cfg.Logging.PanicLogName(); len(fname) > 0 {
			debug.SetCrashOutput(nil, debug.CrashOptions{})
			if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
				if er := os.Remove(fname); er != nil {
					err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
				}
			}
		}
	}
	return
}

// Subcommands return regular errors, they are logged once here instead of
// going through cli.Exit.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// reported either by exitErrHandler or on exit directly to stderr
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "minimal SVG viewer (lines and polygons)",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug messages to console"},
			&cli.BoolFlag{Name: "legacy-colors", Usage: "decode hex colors with the historical 15*hi+lo arithmetic"},
		},
		ArgsUsage: "[FILE]",
		Action:    runViewer,
		Commands: []*cli.Command{
			{
				Name:         "view",
				Usage:        "Opens SVG file in terminal viewer",
				OnUsageError: usageErrorHandler,
				Action:       runViewer,
				ArgsUsage:    "[FILE]",
				CustomHelpTemplate: fmt.Sprintf(`%s
FILE:
    path to .svg or .svgz file, if absent - viewer.default_path from configuration

Keys: arrows pan, +/- zoom, 0 reset view, r reload, Tab file list, p paste
markup, a shape table, i inspect, 1/2/l layers, h help, q quit.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "dump",
				Usage:        "Prints parsed lines and polygons (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       dumpDocument,
				ArgsUsage:    "FILE",
			},
			{
				Name:         "export",
				Usage:        "Renders SVG file into PNG, JPEG, GIF, TIFF or BMP image",
				OnUsageError: usageErrorHandler,
				Action:       exportImage,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "width", Usage: "image width in pixels, 0 - from configuration or document"},
					&cli.IntFlag{Name: "height", Usage: "image height in pixels, 0 - from configuration or document"},
					&cli.BoolFlag{Name: "reference", Usage: "render with full SVG renderer instead of the viewer geometry"},
				},
				ArgsUsage: "SOURCE DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to .svg or .svgz file

DESTINATION:
    image file name, format is selected by extension
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// log is either not set yet (argument parsing) or already closed
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
