package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dshills/hxmotion/internal/config/loader"
	"github.com/dshills/hxmotion/internal/motion/charclass"
	"github.com/dshills/hxmotion/internal/renderer/core"
	"github.com/dshills/hxmotion/internal/renderer/toast"
)

// DefaultFileName is the config file looked up when none is named.
const DefaultFileName = "hxmotion.toml"

// maxIncludeDepth bounds nested @include directives.
const maxIncludeDepth = 8

// Select behaviours for motions outside select mode.
const (
	// SelectHelix anchors the selection at the old head.
	SelectHelix = "helix"
	// SelectMove collapses the selection onto the new head.
	SelectMove = "move"
)

// Span names.
const (
	SpanMultiLine  = "multiLine"
	SpanSingleLine = "singleLine"
)

// Config holds decoded settings.
type Config struct {
	Logging LoggingConfig
	Motion  MotionConfig
	Toast   ToastConfig

	// Source is the file the settings were read from, or "" when only
	// defaults and the environment applied.
	Source string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string
}

// MotionConfig holds word motion settings.
type MotionConfig struct {
	// SelectBehavior is SelectHelix or SelectMove.
	SelectBehavior string

	// Span is SpanMultiLine or SpanSingleLine.
	Span string

	// ScopeWordChars maps a region to extra runes that count as Word in it.
	ScopeWordChars map[charclass.Region]string

	// Languages are definitions that replace or extend the built-in table.
	Languages []charclass.Language
}

// ToastConfig holds toast settings.
type ToastConfig struct {
	Origin     toast.Origin
	Timeout    time.Duration
	MaxWidth   int
	Background string // hex, "" for the built-in theme
	Foreground string // hex, "" for the theme default
}

// Defaults returns the built-in settings tree.
func Defaults() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": "info",
		},
		"motion": map[string]any{
			"selectBehavior": SelectHelix,
			"span":           SpanMultiLine,
			"scopes":         map[string]any{},
			"languages":      map[string]any{},
		},
		"toast": map[string]any{
			"origin":     "bottom",
			"timeout":    "3s",
			"maxWidth":   int64(60),
			"background": "",
			"foreground": "",
		},
	}
}

// Default returns the decoded built-in settings.
func Default() *Config {
	cfg, err := Decode(Defaults())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs     loader.FileSystem
	env    loader.Loader
	useEnv bool
}

// WithFileSystem reads config files through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment layer. A nil loader disables it.
func WithEnv(env loader.Loader) Option {
	return func(o *loadOptions) {
		o.env = env
		o.useEnv = env != nil
	}
}

// Load merges defaults, the TOML file at path and the environment, then
// decodes the result. An empty path or a missing file contributes nothing.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{
		fs:     loader.DefaultFS(),
		env:    loader.NewEnvLoader(loader.EnvPrefix),
		useEnv: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := Defaults()
	source := ""
	if path != "" {
		data, err := loader.NewTOMLLoaderWithFS(o.fs, path).LoadWithIncludes(path, maxIncludeDepth)
		if err != nil {
			return nil, err
		}
		if data != nil {
			merged = loader.DeepMerge(merged, data)
			source = path
		}
	}

	if o.useEnv {
		data, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg, err := Decode(merged)
	if err != nil {
		if source != "" {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		return nil, err
	}
	cfg.Source = source
	return cfg, nil
}

// Decode converts a settings tree into a Config. Unknown top-level
// sections are ignored; invalid values are all reported.
func Decode(tree map[string]any) (*Config, error) {
	d := &decoder{tree: tree}
	cfg := &Config{
		Logging: LoggingConfig{
			Level: d.enum("logging.level", "info", "debug", "info", "warn", "error"),
		},
		Motion: MotionConfig{
			SelectBehavior: d.enum("motion.selectBehavior", SelectHelix, SelectHelix, SelectMove),
			Span:           d.enum("motion.span", SpanMultiLine, SpanMultiLine, SpanSingleLine),
			ScopeWordChars: d.scopes("motion.scopes"),
			Languages:      d.languages("motion.languages"),
		},
		Toast: ToastConfig{
			Timeout:    d.duration("toast.timeout", 3*time.Second),
			MaxWidth:   d.positiveInt("toast.maxWidth", 60),
			Background: d.color("toast.background"),
			Foreground: d.color("toast.foreground"),
		},
	}

	origin := d.str("toast.origin", "bottom")
	o, err := toast.ParseOrigin(origin)
	if err != nil {
		d.fail("toast.origin", "must be bottom or bottomRight", origin)
	}
	cfg.Toast.Origin = o

	if len(d.errs) > 0 {
		return nil, errors.Join(d.errs...)
	}
	return cfg, nil
}

// decoder reads typed values out of a settings tree, collecting errors.
type decoder struct {
	tree map[string]any
	errs []error
}

func (d *decoder) fail(path, msg string, value any) {
	d.errs = append(d.errs, &ValidationError{Path: path, Message: msg, Value: value})
}

func (d *decoder) lookup(path string) (any, bool) {
	return loader.GetByPath(d.tree, path)
}

func (d *decoder) str(path, def string) string {
	v, ok := d.lookup(path)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		d.fail(path, "must be a string", v)
		return def
	}
	return s
}

// enum returns the allowed value matching the setting case-insensitively.
func (d *decoder) enum(path, def string, allowed ...string) string {
	s := d.str(path, def)
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return a
		}
	}
	if path == "logging.level" && strings.EqualFold(s, "warning") {
		return "warn"
	}
	d.fail(path, "must be one of "+strings.Join(allowed, ", "), s)
	return def
}

func (d *decoder) positiveInt(path string, def int) int {
	v, ok := d.lookup(path)
	if !ok {
		return def
	}
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case float64:
		if x != float64(int(x)) {
			d.fail(path, "must be an integer", v)
			return def
		}
		n = int(x)
	default:
		d.fail(path, "must be an integer", v)
		return def
	}
	if n <= 0 {
		d.fail(path, "must be positive", v)
		return def
	}
	return n
}

// duration accepts a duration string ("3s"), a time.Duration, or an
// integer count of milliseconds.
func (d *decoder) duration(path string, def time.Duration) time.Duration {
	v, ok := d.lookup(path)
	if !ok {
		return def
	}
	var dur time.Duration
	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			d.fail(path, "must be a duration", v)
			return def
		}
		dur = parsed
	case time.Duration:
		dur = x
	case int64:
		dur = time.Duration(x) * time.Millisecond
	case int:
		dur = time.Duration(x) * time.Millisecond
	default:
		d.fail(path, "must be a duration", v)
		return def
	}
	if dur <= 0 {
		d.fail(path, "must be positive", v)
		return def
	}
	return dur
}

func (d *decoder) color(path string) string {
	s := d.str(path, "")
	if s == "" {
		return ""
	}
	if _, err := core.ColorFromHex(s); err != nil {
		d.fail(path, "must be a hex colour", s)
		return ""
	}
	return s
}

func (d *decoder) table(path string) map[string]any {
	v, ok := d.lookup(path)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.fail(path, "must be a table", v)
		return nil
	}
	return m
}

func (d *decoder) scopes(path string) map[charclass.Region]string {
	out := make(map[charclass.Region]string)
	for _, name := range slices.Sorted(maps.Keys(d.table(path))) {
		sub := path + "." + name
		region, ok := charclass.ParseRegion(name)
		if !ok {
			d.fail(sub, "unknown scope, want code, string or comment", name)
			continue
		}
		if d.table(sub) == nil {
			continue
		}
		if chars := d.str(sub+".wordChars", ""); chars != "" {
			out[region] = chars
		}
	}
	return out
}

// languages decodes language definitions. A definition named like a
// built-in language starts from the built-in and overrides only the keys
// it sets.
func (d *decoder) languages(path string) []charclass.Language {
	builtins := make(map[string]charclass.Language)
	for _, lang := range charclass.BuiltinLanguages() {
		builtins[lang.Name] = lang
	}

	var out []charclass.Language
	for _, name := range slices.Sorted(maps.Keys(d.table(path))) {
		sub := path + "." + name
		fields := d.table(sub)
		if fields == nil {
			continue
		}

		lang, ok := builtins[name]
		if !ok {
			lang = charclass.Language{Name: name}
		}
		for _, key := range slices.Sorted(maps.Keys(fields)) {
			keyPath := sub + "." + key
			switch key {
			case "extensions":
				lang.Extensions = d.stringList(keyPath)
			case "lineComment":
				lang.LineComment = d.str(keyPath, "")
			case "blockCommentStart":
				lang.BlockCommentStart = d.str(keyPath, "")
			case "blockCommentEnd":
				lang.BlockCommentEnd = d.str(keyPath, "")
			case "quotes":
				lang.Quotes = d.str(keyPath, "")
			case "rawQuotes":
				lang.RawQuotes = d.str(keyPath, "")
			case "wordChars":
				lang.WordChars = d.str(keyPath, "")
			default:
				d.fail(keyPath, "unknown language setting", fields[key])
			}
		}
		if (lang.BlockCommentStart == "") != (lang.BlockCommentEnd == "") {
			d.fail(sub, "blockCommentStart and blockCommentEnd must be set together", name)
		}
		out = append(out, lang)
	}
	return out
}

func (d *decoder) stringList(path string) []string {
	v, _ := d.lookup(path)
	switch x := v.(type) {
	case string:
		return []string{x}
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				d.fail(path, "must be a list of strings", v)
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	d.fail(path, "must be a list of strings", v)
	return nil
}
