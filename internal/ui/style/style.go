// Package style holds the colors and glyphs shared by every terminal renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#2563EB")
	Muted  = lipgloss.Color("#6B7280")
	Red    = lipgloss.Color("#DC2626")
	Amber  = lipgloss.Color("#D97706")
)

// Glyphs.
const (
	Cross   = "✗"
	Warning = "!"
	Bullet  = "•"
)
