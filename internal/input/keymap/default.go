package keymap

import "github.com/dshills/hxmotion/internal/input/mode"

// LoadDefaults loads all default keymaps into the registry.
func LoadDefaults(r *Registry) error {
	keymaps := []*Keymap{
		DefaultMotionKeymap(mode.Normal),
		DefaultMotionKeymap(mode.Select),
		DefaultGlobalKeymap(),
	}

	for _, km := range keymaps {
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// DefaultMotionKeymap returns the word motion bindings for m.
func DefaultMotionKeymap(m string) *Keymap {
	return &Keymap{
		Name:   "default-" + m,
		Mode:   m,
		Source: "default",
		Bindings: []Binding{
			{Keys: "w", Action: "motion.nextWordStart", Description: "Move to next word start", Category: "Motion"},
			{Keys: "b", Action: "motion.prevWordStart", Description: "Move to previous word start", Category: "Motion"},
			{Keys: "e", Action: "motion.nextWordEnd", Description: "Move to next word end", Category: "Motion"},
			{Keys: "W", Action: "motion.nextLongWordStart", Description: "Move to next WORD start", Category: "Motion"},
			{Keys: "B", Action: "motion.prevLongWordStart", Description: "Move to previous WORD start", Category: "Motion"},
			{Keys: "E", Action: "motion.nextLongWordEnd", Description: "Move to next WORD end", Category: "Motion"},
			{Keys: ".", Action: "motion.repeatLast", Description: "Repeat last motion", Category: "Motion"},
		},
	}
}

// DefaultGlobalKeymap returns bindings active in every mode.
func DefaultGlobalKeymap() *Keymap {
	return &Keymap{
		Name:   "default-global",
		Source: "default",
		Bindings: []Binding{
			{Keys: "v", Action: "mode.toggleSelect", Description: "Toggle select mode", Category: "Mode"},
			{Keys: "Esc", Action: "mode.normal", Description: "Return to normal mode", Category: "Mode"},
			{Keys: "x", Action: "toast.dismiss", Description: "Dismiss notification", Category: "UI"},
			{Keys: "q", Action: "app.quit", Description: "Quit", Category: "App"},
			{Keys: "C-c", Action: "app.quit", Description: "Quit", Category: "App"},
		},
	}
}
