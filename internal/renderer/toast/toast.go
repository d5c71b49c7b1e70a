package toast

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownLevel is returned by ParseLevel for unrecognised names.
var ErrUnknownLevel = errors.New("toast: unknown level")

// ErrUnknownOrigin is returned by ParseOrigin for unrecognised names.
var ErrUnknownOrigin = errors.New("toast: unknown origin")

// Origin selects where a toast is anchored.
type Origin uint8

const (
	// OriginBottom anchors the right edge at half the surface width.
	OriginBottom Origin = iota
	// OriginBottomRight anchors the right edge near the right of the surface.
	OriginBottomRight
)

// String returns the config name of the origin.
func (o Origin) String() string {
	switch o {
	case OriginBottom:
		return "bottom"
	case OriginBottomRight:
		return "bottomRight"
	default:
		return fmt.Sprintf("Origin(%d)", o)
	}
}

// ParseOrigin parses "bottom" or "bottomRight". Empty means OriginBottom.
func ParseOrigin(s string) (Origin, error) {
	switch strings.ToLower(s) {
	case "", "bottom":
		return OriginBottom, nil
	case "bottomright", "bottom-right", "bottom_right":
		return OriginBottomRight, nil
	}
	return OriginBottom, fmt.Errorf("%w: %q", ErrUnknownOrigin, s)
}

// Level is the severity of a toast.
type Level uint8

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// ParseLevel parses a level name. Empty means LevelInfo.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Toast is a single notification.
type Toast struct {
	ID      string
	Message string
	Level   Level
	Created time.Time

	// Timeout is how long the toast stays visible. Zero keeps it until it
	// is dismissed or replaced.
	Timeout time.Duration
}

// Expired reports whether the toast's timeout has elapsed at now.
func (t Toast) Expired(now time.Time) bool {
	return t.Timeout > 0 && !now.Before(t.Created.Add(t.Timeout))
}
