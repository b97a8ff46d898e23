package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenius/internal/ui/theme"
)

const bannerArt = `╔═╗╔═╗╔╦╗╔═╗╔═╗╔═╗╔╗╔╦╦ ╦╔═╗
║  ║ ║ ║║║╣ ║ ╦║╣ ║║║║║ ║╚═╗
╚═╝╚═╝═╩╝╚═╝╚═╝╚═╝╝╚╝╩╚═╝╚═╝`

const bannerCompact = "C O D E G E N I U S"

// BannerMinWidth is the narrowest width that fits the block-letter banner.
const BannerMinWidth = 32

// Banner returns the CodeGenius title in the primary color, falling back
// to spaced capitals when width is below BannerMinWidth.
func Banner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
