// Package ui provides the interactive theme picker and theme previews.
//
// # Components
//
//   - app.go: the Bubble Tea picker model and Pick, which runs it
//   - preview.go: Preview and SampleLines, rendering a theme with the real
//     formatter so what you see is exactly what log output will look like
//   - theme.go: the picker's own lipgloss chrome (borders, selection)
//   - keys.go: key bindings built with bubbles/key
//
// # Picker
//
// The left panel lists the built-in themes; the right panel previews the
// highlighted one. Each style role is shown in its own colors, with roles the
// theme does not define marked, followed by sample lines covering every
// severity and value kind. Enter picks the theme, q or esc cancels.
//
// Pick only reports the choice. Persisting it to the preferences file is up
// to the caller.
package ui
