package main

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/errors"
	"github.com/hpungsan/jot/internal/logging"
	"github.com/hpungsan/jot/internal/render"
	"github.com/hpungsan/jot/internal/store"
)

// DefaultDirName is the jot home directory under the user's home.
const DefaultDirName = ".jot"

// env holds what every command needs. It is filled in by setup before any
// command action runs.
type env struct {
	fs          afero.Fs
	baseDir     string
	cfg         *config.Config
	store       *store.Store
	logger      *zap.Logger
	color       bool
	interactive bool
}

// setup resolves the jot home dir, logger, config and store from global flags.
func (e *env) setup(c *cli.Context) error {
	baseDir, err := resolveBaseDir(c.String("dir"))
	if err != nil {
		return outputError(err)
	}
	e.baseDir = baseDir

	logger, err := logging.New(c.String("log-level"))
	if err != nil {
		return outputError(errors.NewInvalidRequest(err.Error()))
	}
	e.logger = logger

	cfg, err := config.Load(e.fs, config.Path(baseDir))
	if err != nil {
		return outputError(err)
	}
	e.cfg = cfg

	e.store = store.New(e.fs, store.JournalPath(baseDir),
		store.WithLogger(logger),
		store.WithRotation(cfg.Journal.RotateBackup),
	)

	e.color = useColor(c, cfg.Journal.Color)
	e.interactive = stdinInteractive(c)

	logger.Debug("jot started", zap.String("dir", baseDir), zap.Bool("color", e.color))
	return nil
}

// renderOptions builds entry formatting options from config and terminal state.
func (e *env) renderOptions(highlight string) render.Options {
	opts := render.Options{
		ShowTime:  e.cfg.Journal.ShowTime,
		Highlight: highlight,
		Style:     render.PlainStyle{},
	}
	if e.color {
		opts.Style = render.NewColorStyle()
	}
	return opts
}

func resolveBaseDir(flagDir string) (string, error) {
	if flagDir != "" {
		abs, err := filepath.Abs(flagDir)
		if err != nil {
			return "", errors.NewInvalidRequest("invalid --dir: " + err.Error())
		}
		return abs, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewOther(err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// useColor decides whether output is colorized. --no-color wins, then the
// configured mode; auto colors only a terminal stdout.
func useColor(c *cli.Context, mode string) bool {
	if c.Bool("no-color") {
		return false
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := c.App.Writer.(*os.File)
	return ok && isTerminal(f)
}

// stdinInteractive reports whether prompts can be shown; replaced in tests.
var stdinInteractive = stdinIsTerminal

func stdinIsTerminal(c *cli.Context) bool {
	f, ok := c.App.Reader.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
