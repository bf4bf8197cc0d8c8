// Package theme holds the color theme tables: immutable mappings from style
// roles (text, strings, numbers, levels and so on) to ANSI sequences.
//
// Themes are plain data loaded once at startup. They carry no behavior beyond
// lookup and wrapping, and need no synchronization.
//
// # Optional roles
//
// DateTime, Duration and Identifier are optional. A theme that leaves them
// empty renders those values with its Scalar sequence instead.
//
// # Built-in themes
//
//   - Code: 256-color palette (default)
//   - Literate: 16-color palette
//   - Grayscale: intensity only
//   - Sixteen: console palette, defines every optional role
//   - None: no escape codes in rendered messages
package theme
