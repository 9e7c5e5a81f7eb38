package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorGood    = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarn    = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorBad     = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
)

// ─── Shared styles ───────────────────────────────────────────────────────────

var (
	// Title renders section headings.
	Title = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	// Muted renders secondary information (paths, hints).
	Muted = lipgloss.NewStyle().Foreground(ColorMuted)

	// Good renders success markers and freed-space figures.
	Good = lipgloss.NewStyle().Foreground(ColorGood)

	// Warn renders warnings (depth limits, unreadable directories).
	Warn = lipgloss.NewStyle().Foreground(ColorWarn)

	// Bad renders failures.
	Bad = lipgloss.NewStyle().Foreground(ColorBad)

	// Accent renders ecosystem identifiers.
	Accent = lipgloss.NewStyle().Foreground(ColorAccent)
)
