// Package icon renders UI symbols in the variant selected by configuration.
package icon

import (
	"github.com/spf13/viper"
	"github.com/vidplay/vidplay/key"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Playing
	Paused
	Stopped
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "✓"},
	Fail:     {emoji: "💀", nerd: "", plain: "✖"},
	Progress: {emoji: "⏳", nerd: "", plain: "…"},
	Playing:  {emoji: "▶️", nerd: "", plain: "▶"},
	Paused:   {emoji: "⏸️", nerd: "", plain: "‖"},
	Stopped:  {emoji: "⏹️", nerd: "", plain: "■"},
}

// Get returns the rendered string for the icon in the configured variant.
func Get(i Icon) string {
	return icons[i].Get()
}
