// Package config loads formatter options and keeps them current.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tinct/config.toml
//  3. If the file doesn't exist, fall back to Defaults
//  4. Keys missing from the file keep their default
//
// # TOML Format
//
//	prefix = ""
//	string_prefix = "\""
//	string_suffix = "\""
//	timestamp_format = "HH:mm:ss.fff "
//	use_utc = false
//	theme = "literate"
//	show_errors = true
//	show_category = false
//
// An explicitly empty string_prefix or string_suffix turns quoting off. A
// blank timestamp_format keeps the default. Unknown theme names are a parse
// error so a bad edit cannot silently change colors.
//
// # Timestamp Formats
//
// timestamp_format accepts pattern tokens (yyyy, MM, dd, HH, hh, mm, ss, fff,
// tt, zzz and friends) or a Go reference layout. Layout performs the
// translation; text in single quotes is copied literally.
//
// # Live Reload
//
// Store is the Provider the formatter reads from. Replace swaps the whole
// snapshot atomically and then notifies subscribers. Watch ties a Store to
// the config file via fsnotify; a file that fails to load is logged and the
// previous snapshot stays in effect. Its resolve hook lets callers re-apply
// settings that come from outside the file, such as a command-line theme.
package config
