// Package app is the composition root for tinct.
//
// # Overview
//
// New loads the config file and the saved preferences, resolves the active
// theme and builds the formatter behind a config.Store. Every command of the
// CLI then runs as a method on App:
//
//   - Render: replay JSON-lines logs from files, globs or stdin, optionally
//     following files as they grow
//   - Demo: print sample entries covering every severity and value kind
//   - Themes: print a preview panel for each built-in theme
//   - Pick: choose a theme interactively and save it as a preference
//
// # Theme Resolution
//
// The --theme flag wins, then the config file's theme key, then the theme
// saved by Pick, then the built-in default.
//
// # Diagnostics
//
// The tool's own log messages go to stderr through a zap logger whose core is
// the tinct zap bridge, so they look exactly like the lines being rendered.
//
// # Live Reload
//
// While Render runs, the config file is watched and edits take effect on the
// next printed line. A config file that fails to parse is reported and
// ignored.
package app
