package config

import (
	"github.com/dshills/hxmotion/internal/motion/boundary"
	"github.com/dshills/hxmotion/internal/motion/charclass"
	"github.com/dshills/hxmotion/internal/renderer/core"
	"github.com/dshills/hxmotion/internal/renderer/toast"
)

// LanguageTable returns the built-in languages with the configured
// definitions applied. Configured definitions replace built-ins of the
// same name and new ones are appended.
func (c *Config) LanguageTable() []charclass.Language {
	langs := charclass.BuiltinLanguages()
	for _, lang := range c.Motion.Languages {
		replaced := false
		for i := range langs {
			if langs[i].Name == lang.Name {
				langs[i] = lang
				replaced = true
				break
			}
		}
		if !replaced {
			langs = append(langs, lang)
		}
	}
	return langs
}

// Classifier builds the character classifier for the configured scopes
// and languages.
func (c *Config) Classifier() *charclass.Classifier {
	var opts []charclass.Option
	for region, chars := range c.Motion.ScopeWordChars {
		opts = append(opts, charclass.WithRegionWordChars(region, chars))
	}
	for _, lang := range c.LanguageTable() {
		if lang.WordChars != "" {
			opts = append(opts, charclass.WithLanguageWordChars(lang.Name, lang.WordChars))
		}
	}
	return charclass.NewClassifier(opts...)
}

// Scanner builds a boundary scanner with lexical scope resolution.
func (c *Config) Scanner() *boundary.Scanner {
	return boundary.NewScanner(c.Classifier(), charclass.NewLexicalResolver(c.LanguageTable()))
}

// Span returns the configured scan span.
func (c *Config) Span() boundary.Span {
	if c.Motion.Span == SpanSingleLine {
		return boundary.SingleLine
	}
	return boundary.MultiLine
}

// ToastSettings returns the toast manager configuration.
func (c *Config) ToastSettings() toast.Config {
	cfg := toast.DefaultConfig()
	cfg.Origin = c.Toast.Origin
	cfg.Timeout = c.Toast.Timeout
	cfg.MaxWidth = c.Toast.MaxWidth

	if c.Toast.Background != "" {
		fg := cfg.Theme.Foreground
		if c.Toast.Foreground != "" {
			fg, _ = core.ColorFromHex(c.Toast.Foreground)
		}
		base, _ := core.ColorFromHex(c.Toast.Background)
		cfg.Theme = toast.DeriveTheme(base, fg)
	} else if c.Toast.Foreground != "" {
		cfg.Theme.Foreground, _ = core.ColorFromHex(c.Toast.Foreground)
	}
	return cfg
}
