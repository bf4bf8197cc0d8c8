package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/five82/tinct/internal/theme"
)

type fixture struct {
	dir            string
	config, prefs  string
	stdout, stderr bytes.Buffer
}

func newFixture(t *testing.T, configTOML, prefsTOML string) *fixture {
	t.Helper()
	fx := &fixture{dir: t.TempDir()}
	fx.config = filepath.Join(fx.dir, "config.toml")
	fx.prefs = filepath.Join(fx.dir, "prefs.toml")
	if configTOML != "" {
		require.NoError(t, os.WriteFile(fx.config, []byte(configTOML), 0o644))
	}
	if prefsTOML != "" {
		require.NoError(t, os.WriteFile(fx.prefs, []byte(prefsTOML), 0o644))
	}
	return fx
}

func (fx *fixture) open(t *testing.T, themeOverride string) *App {
	t.Helper()
	a, err := New(Options{
		ConfigPath: fx.config,
		PrefsPath:  fx.prefs,
		Theme:      themeOverride,
		Stdout:     &fx.stdout,
		Stderr:     &fx.stderr,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNew_ThemeResolution(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		prefs    string
		override string
		want     string
	}{
		{"built-in default", "", "", "", theme.Default().Name},
		{"saved preference", "", `theme = "Literate"`, "", "Literate"},
		{"config beats preference", `theme = "grayscale"`, `theme = "Literate"`, "", "Grayscale"},
		{"flag beats config", `theme = "Grayscale"`, `theme = "Literate"`, "none", "None"},
		{"broken prefs ignored", "", "theme = [", "", theme.Default().Name},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, tt.config, tt.prefs)
			a := fx.open(t, tt.override)
			assert.Equal(t, tt.want, a.Options().Theme)
		})
	}
}

func TestNew_Errors(t *testing.T) {
	fx := newFixture(t, `theme = "Neon"`, "")
	_, err := New(Options{ConfigPath: fx.config, PrefsPath: fx.prefs, Stdout: &fx.stdout, Stderr: &fx.stderr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")

	fx = newFixture(t, "", "")
	_, err = New(Options{ConfigPath: fx.config, PrefsPath: fx.prefs, Theme: "Neon", Stdout: &fx.stdout, Stderr: &fx.stderr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "Neon"`)
}

func TestRender_ReplaysFilesWithRecordedTime(t *testing.T) {
	fx := newFixture(t, "use_utc = true\ntheme = \"None\"\n", "")
	a := fx.open(t, "")

	log := filepath.Join(fx.dir, "svc.log")
	lines := []string{
		`{"time":"2025-01-02T03:04:05Z","level":"INFO","msg":"hello {user}","user":"ann"}`,
		`{"time":"2025-01-02T03:04:06Z","level":"WARN","msg":"disk {pct} full","pct":91}`,
		`plain text line`,
	}
	require.NoError(t, os.WriteFile(log, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	require.NoError(t, a.Render(context.Background(), []string{filepath.Join(fx.dir, "*.log")}, RenderOptions{}))

	out := strings.Split(strings.TrimSuffix(fx.stdout.String(), "\n"), "\n")
	require.Len(t, out, 3)
	assert.Contains(t, out[0], "03:04:05 ")
	assert.Contains(t, out[0], "INF")
	assert.Contains(t, out[0], `hello "ann"`)
	assert.Contains(t, out[1], "03:04:06 ")
	assert.Contains(t, out[1], "WRN")
	assert.Contains(t, out[1], "disk 91 full")
	assert.Contains(t, out[2], "plain text line")
}

func TestRender_TailAndMissingInput(t *testing.T) {
	fx := newFixture(t, `theme = "None"`, "")
	a := fx.open(t, "")

	log := filepath.Join(fx.dir, "svc.log")
	require.NoError(t, os.WriteFile(log, []byte("{\"msg\":\"one\"}\n{\"msg\":\"two\"}\n{\"msg\":\"three\"}\n"), 0o644))

	require.NoError(t, a.Render(context.Background(), []string{log}, RenderOptions{Tail: 1}))
	assert.Equal(t, 1, strings.Count(fx.stdout.String(), "\n"))
	assert.Contains(t, fx.stdout.String(), "three")

	err := a.Render(context.Background(), []string{filepath.Join(fx.dir, "nope-*.log")}, RenderOptions{})
	assert.Error(t, err)
}

func TestDemo_WritesEverySeverity(t *testing.T) {
	fx := newFixture(t, "", "")
	a := fx.open(t, "")

	require.NoError(t, a.Demo())
	for _, badge := range []string{"TRACE", "DBG", "INF", "WRN", "ERR", "CRI"} {
		assert.Contains(t, fx.stdout.String(), badge)
	}
}

func TestThemes_PreviewsEveryTheme(t *testing.T) {
	fx := newFixture(t, "", "")
	a := fx.open(t, "")

	require.NoError(t, a.Themes())
	for _, name := range theme.Names() {
		assert.Contains(t, fx.stdout.String(), name)
	}
}

func TestLogger_RendersThroughFormatter(t *testing.T) {
	fx := newFixture(t, `theme = "None"`, "")
	a := fx.open(t, "")

	a.Logger().Info("loaded {count} files", zap.Int("count", 3))
	a.Logger().Debug("hidden")

	got := fx.stderr.String()
	assert.Contains(t, got, "INF")
	assert.Contains(t, got, "loaded 3 files")
	assert.NotContains(t, got, "hidden")
	assert.Empty(t, fx.stdout.String())
}

func TestWatchConfig_ReloadKeepsResolvedTheme(t *testing.T) {
	tests := []struct {
		name     string
		override string
		want     string
	}{
		{"flag", "None", "None"},
		{"saved preference", "", "Literate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, `prefix = "one "`, `theme = "Literate"`)
			a := fx.open(t, tt.override)
			require.Equal(t, tt.want, a.Options().Theme)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			a.watchConfig(ctx)

			assert.Eventually(t, func() bool {
				_ = os.WriteFile(fx.config, []byte(`prefix = "two "`), 0o644)
				return a.Options().Prefix == "two "
			}, 5*time.Second, 50*time.Millisecond)
			assert.Equal(t, tt.want, a.Options().Theme)
		})
	}
}
