// Package ui provides terminal output helpers for tusk's non-interactive
// commands and the shared table used by the dashboard.
//
// # Components Overview
//
//	Table       - Bubbles table with consistent styling (NewTable, RenderSimpleTable)
//	KeyValues   - Aligned label/value summary lines
//	Bar         - Bracketed usage bar with threshold coloring
//	Sparkline   - One block per percentage on a fixed 0-100 scale
//	Header      - Tool name, version and divider
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Healthy usage, completed actions
//	ColorError     (red)    - High usage and failures
//	ColorWarning   (yellow) - Elevated usage
//	ColorInfo      (cyan)   - Informational values
//	ColorMuted     (gray)   - Secondary text
//
// Use DisableColors() to switch to monochrome output (for --no-color).
package ui
