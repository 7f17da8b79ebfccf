package card

import (
	"fmt"
	"image/color"

	"roaster-backend/internal/models"
)

const (
	FooterText     = "Generated by AI Roaster & Praiser"
	FileNamePrefix = "AI_Verdict"
)

var (
	backgroundColor = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	footerColor     = color.RGBA{0x6B, 0x72, 0x80, 0xFF} // slate-500
)

type iconKind int

const (
	iconFlame iconKind = iota
	iconSparkle
)

type theme struct {
	accent color.RGBA
	text   color.RGBA
	label  string
	icon   iconKind
}

func themeFor(mode models.Mode) theme {
	if mode == models.ModeRoast {
		return theme{
			accent: color.RGBA{0xEF, 0x44, 0x44, 0xFF}, // red-500
			text:   color.RGBA{0xB9, 0x1C, 0x1C, 0xFF}, // red-700
			label:  "Epic Roast",
			icon:   iconFlame,
		}
	}
	return theme{
		accent: color.RGBA{0x38, 0xBD, 0xF8, 0xFF}, // sky-400
		text:   color.RGBA{0x02, 0x84, 0xC7, 0xFF}, // sky-600
		label:  "Heartfelt Praise",
		icon:   iconSparkle,
	}
}

// HeaderText is the title line drawn next to the mode icon.
func HeaderText(name string, mode models.Mode) string {
	return fmt.Sprintf("%s for %s", themeFor(mode).label, name)
}
