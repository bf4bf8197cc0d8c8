package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/tinct/internal/bridge/zapbridge"
	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/formatter"
	"github.com/five82/tinct/internal/prefs"
	"github.com/five82/tinct/internal/replay"
	"github.com/five82/tinct/internal/theme"
	"github.com/five82/tinct/internal/ui"
)

// Options configure the tinct application.
type Options struct {
	ConfigPath string // empty uses ~/.config/tinct/config.toml
	PrefsPath  string // empty uses ~/.config/tinct/prefs.toml
	Theme      string // overrides config and preferences when set
	Verbose    bool   // debug-level diagnostics

	Stdout io.Writer
	Stderr io.Writer
}

// App wires configuration, the formatter and the diagnostics logger together.
type App struct {
	opts        Options
	store       *config.Store
	fmt         *formatter.Formatter
	log         *zap.Logger
	configTheme string
	themeFlag   string // canonical --theme name, empty when unset

	prefsMu sync.Mutex
	prefs   prefs.Prefs

	outMu sync.Mutex
}

// New loads configuration and preferences and builds the formatter.
func New(opts Options) (*App, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	a := &App{opts: opts, configTheme: cfg.Theme}
	a.prefs, _ = prefs.Load(opts.PrefsPath)

	if name := strings.TrimSpace(opts.Theme); name != "" {
		th, ok := theme.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(theme.Names(), ", "))
		}
		a.themeFlag = th.Name
	}

	a.store = config.NewStore(a.resolve(cfg))
	a.fmt = formatter.New(a.store)

	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	core := zapbridge.NewCore(a.fmt, zapcore.Lock(zapcore.AddSync(opts.Stderr)), level)
	a.log = zap.New(core).Named("tinct")
	return a, nil
}

// resolve layers the saved preference and the --theme flag over options read
// from the config file. Precedence: flag, config file, preference, default.
func (a *App) resolve(cfg config.Options) config.Options {
	a.prefsMu.Lock()
	cfg = prefs.Apply(cfg, a.prefs)
	a.prefsMu.Unlock()
	if a.themeFlag != "" {
		cfg.Theme = a.themeFlag
	}
	return cfg
}

// Logger returns the diagnostics logger. It renders through the same
// formatter as replayed logs.
func (a *App) Logger() *zap.Logger {
	return a.log
}

// Options returns the current formatter settings.
func (a *App) Options() config.Options {
	return a.store.Current()
}

// Close releases the formatter and flushes diagnostics.
func (a *App) Close() error {
	_ = a.log.Sync()
	return a.fmt.Close()
}

// write renders one replayed record to stdout. Lines from concurrent
// followers are serialized here.
func (a *App) write(rec replay.Record) error {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	if rec.Time.IsZero() {
		return a.fmt.Write(rec.Entry, a.opts.Stdout)
	}
	return a.fmt.WriteAt(rec.Entry, rec.Time, a.opts.Stdout)
}

// watchConfig keeps the formatter in step with the config file until ctx ends.
func (a *App) watchConfig(ctx context.Context) {
	go func() {
		if err := config.Watch(ctx, a.opts.ConfigPath, a.store, a.log, a.resolve); err != nil {
			a.log.Debug("config live reload unavailable", zap.Error(err))
		}
	}()
}

// Demo writes a set of sample entries covering every severity and value kind.
func (a *App) Demo() error {
	for _, e := range ui.Samples() {
		if err := a.fmt.Write(e, a.opts.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// Themes writes a preview panel for every built-in theme.
func (a *App) Themes() error {
	opts := a.store.Current()
	for _, name := range theme.Names() {
		if _, err := fmt.Fprintln(a.opts.Stdout, ui.Preview(theme.Get(name), opts)); err != nil {
			return err
		}
	}
	return nil
}

// Pick runs the interactive theme picker, saves the choice to the
// preferences file and applies it to the running formatter.
func (a *App) Pick(ctx context.Context) error {
	current := a.store.Current()
	chosen, err := ui.Pick(ctx, current.Theme, current)
	if errors.Is(err, ui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	saved := prefs.Prefs{Theme: chosen}
	if err := prefs.Save(a.opts.PrefsPath, saved); err != nil {
		return err
	}
	a.prefsMu.Lock()
	a.prefs = saved
	a.prefsMu.Unlock()
	current.Theme = chosen
	a.store.Replace(current)

	a.log.Info("theme {theme} saved", zap.String("theme", chosen))
	if a.configTheme != "" && a.configTheme != chosen {
		a.log.Warn("config file sets theme {theme}; it takes precedence over the saved preference",
			zap.String("theme", a.configTheme))
	}
	return nil
}
