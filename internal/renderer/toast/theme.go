package toast

import "github.com/dshills/hxmotion/internal/renderer/core"

// elevation is how far the toast surface is lifted from the base colour.
const elevation = 0.08

// Theme holds toast colours.
type Theme struct {
	Background core.Color
	Foreground core.Color
	Warn       core.Color
	Error      core.Color
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	return DeriveTheme(core.ColorFromRGB(0x28, 0x2C, 0x34), core.ColorFromRGB(0xAB, 0xB2, 0xBF))
}

// DeriveTheme builds a theme whose background is an elevated version of
// base: lighter on dark bases, darker on light ones. Warning and error
// colours are blended toward fg so they stay readable on the surface.
func DeriveTheme(base, fg core.Color) Theme {
	bg := base.Lighten(elevation)
	if base.Luminance() > 0.5 {
		bg = base.Darken(elevation)
	}
	return Theme{
		Background: bg,
		Foreground: fg,
		Warn:       core.ColorFromRGB(0xE5, 0xC0, 0x7B).Blend(fg, 0.2),
		Error:      core.ColorFromRGB(0xE0, 0x6C, 0x75).Blend(fg, 0.2),
	}
}

// ForegroundFor returns the text colour for level.
func (t Theme) ForegroundFor(level Level) core.Color {
	switch level {
	case LevelWarn:
		return t.Warn
	case LevelError:
		return t.Error
	default:
		return t.Foreground
	}
}
