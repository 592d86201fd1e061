package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"rapidsvg/internal/raster"
	"rapidsvg/internal/state"
	"rapidsvg/internal/svg"
	"rapidsvg/internal/tui"
)

// argPath returns the first positional argument with ~ expanded, falling
// back to def when absent.
func argPath(cmd *cli.Command, def string) (string, error) {
	p := cmd.Args().Get(0)
	if len(p) == 0 {
		p = def
	}
	if len(p) == 0 {
		return "", errors.New("no input file specified")
	}
	return homedir.Expand(p)
}

func loadFile(env *state.LocalEnv, path string) (*svg.File, error) {
	f := svg.NewFile(env.LoadOptions()...)
	if err := f.Load(path); err != nil {
		return nil, err
	}
	return f, nil
}

// runViewer loads the drawing and hands the terminal over to the viewer. A
// failed initial load never starts the viewer.
func runViewer(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	path, err := argPath(cmd, env.Cfg.Viewer.DefaultPath)
	if err != nil {
		return err
	}
	f, err := loadFile(env, path)
	if err != nil {
		return err
	}

	// the viewer owns the terminal, keep logging to file only
	if err := env.QuietConsole(); err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}

	m := tui.NewWithFile(f, tui.Options{
		Log:      env.Log,
		Load:     env.LoadOptions(),
		ZoomStep: env.Cfg.Viewer.ZoomStep,
		PanStep:  env.Cfg.Viewer.PanStep,
		Dir:      filepath.Dir(path),
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}

func dumpDocument(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	path, err := argPath(cmd, env.Cfg.Viewer.DefaultPath)
	if err != nil {
		return err
	}
	f, err := loadFile(env, path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(f.Document())
	if err != nil {
		return fmt.Errorf("unable to encode document: %w", err)
	}
	if _, err = os.Stdout.Write(data); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	return nil
}

func exportImage(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("export expects SOURCE and DESTINATION, got %d argument(s)", cmd.Args().Len())
	}
	src, err := homedir.Expand(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	dst, err := homedir.Expand(cmd.Args().Get(1))
	if err != nil {
		return err
	}

	width, height := int(cmd.Int("width")), int(cmd.Int("height"))
	if width == 0 && height == 0 {
		width, height = env.Cfg.Export.Width, env.Cfg.Export.Height
	}

	var img image.Image
	if cmd.Bool("reference") {
		data, err := svg.ReadFile(src)
		if err != nil {
			return err
		}
		if img, err = raster.Reference(data, width, height); err != nil {
			return err
		}
	} else {
		f, err := loadFile(env, src)
		if err != nil {
			return err
		}
		img = raster.Render(f.Document(), raster.Options{Width: width, Height: height, Background: color.White})
	}

	if err := raster.Save(img, dst, env.Cfg.Export.JPEGQuality); err != nil {
		return err
	}
	b := img.Bounds()
	env.Log.Info("Exported image",
		zap.String("source", src),
		zap.String("destination", dst),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Bool("reference", cmd.Bool("reference")))
	return nil
}
