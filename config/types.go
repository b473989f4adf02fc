// Package config loads and validates actionmenu configuration from
// actionmenu.yml, merging an optional global config under the user's
// XDG config directory with the project-level file.
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config holds the recognized actionmenu options. Unknown top-level
// blocks are kept in Extensions so host integrations can define their
// own sections (see UnmarshalExtension).
type Config struct {
	// ConfirmKeys are the key identifiers that select the row under the
	// cursor, e.g. "<CR>".
	ConfirmKeys []string `yaml:"confirm_keys" json:"confirm_keys,omitempty"`

	// QuitKeys are the key identifiers that dismiss the menu.
	QuitKeys []string `yaml:"quit_keys" json:"quit_keys,omitempty"`

	// GroupIcon is the glyph appended to group labels on the primary
	// surface.
	GroupIcon string `yaml:"group_icon" json:"group_icon,omitempty"`

	// UISelectFallback enables the flat chooser when no action carries a
	// group label. Defaults to true.
	UISelectFallback *bool `yaml:"ui_select_fallback" json:"ui_select_fallback,omitempty"`

	// Border is the border style of the floating surfaces.
	Border string `yaml:"border" json:"border,omitempty"`

	// Extensions collects unrecognized top-level blocks.
	Extensions map[string]interface{} `yaml:",inline" json:"-"`
}

var validBorders = map[string]bool{
	"none": true, "single": true, "double": true,
	"rounded": true, "solid": true, "shadow": true,
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	enabled := true
	return &Config{
		ConfirmKeys:      []string{"<CR>"},
		QuitKeys:         []string{"q", "<Esc>"},
		GroupIcon:        " ▸",
		UISelectFallback: &enabled,
		Border:           "rounded",
	}
}

// ApplyDefaults fills unset fields with the built-in defaults.
func (c *Config) ApplyDefaults() {
	def := Default()
	if len(c.ConfirmKeys) == 0 {
		c.ConfirmKeys = def.ConfirmKeys
	}
	if len(c.QuitKeys) == 0 {
		c.QuitKeys = def.QuitKeys
	}
	if c.GroupIcon == "" {
		c.GroupIcon = def.GroupIcon
	}
	if c.UISelectFallback == nil {
		c.UISelectFallback = def.UISelectFallback
	}
	if c.Border == "" {
		c.Border = def.Border
	}
}

// FallbackEnabled reports whether the flat chooser should be used when
// no groups exist.
func (c *Config) FallbackEnabled() bool {
	return c.UISelectFallback == nil || *c.UISelectFallback
}

// Validate checks semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	if !validBorders[c.Border] {
		return fmt.Errorf("unknown border style %q", c.Border)
	}
	for _, k := range c.ConfirmKeys {
		if k == "" {
			return fmt.Errorf("confirm_keys must not contain empty entries")
		}
	}
	for _, k := range c.QuitKeys {
		if k == "" {
			return fmt.Errorf("quit_keys must not contain empty entries")
		}
	}
	return nil
}

// UnmarshalExtension decodes an unrecognized top-level config block
// into out. Missing blocks are not an error; out is left untouched.
func (c *Config) UnmarshalExtension(name string, out interface{}) error {
	raw, ok := c.Extensions[name]
	if !ok {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "yaml",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
