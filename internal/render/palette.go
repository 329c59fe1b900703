package render

import "image/color"

// Baseball Reference inspired palette.
var (
	colorCanvas    = color.RGBA{0xf5, 0xf3, 0xed, 0xff} // page background
	colorRowBG     = color.RGBA{0xf7, 0xf7, 0xf0, 0xff} // even rows
	colorRowBGAlt  = color.RGBA{0xff, 0xff, 0xff, 0xff} // odd rows
	colorHeaderBG  = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	colorTotalsBG  = color.RGBA{0xe8, 0xe5, 0xd8, 0xff}
	colorRowRule   = color.RGBA{0xe0, 0xdd, 0xd5, 0xff}
	colorAccent    = color.RGBA{0x8c, 0x15, 0x15, 0xff} // header/totals rules
	colorText      = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
	colorHeader    = color.RGBA{0x33, 0x33, 0x33, 0xff}
	colorLink      = color.RGBA{0x00, 0x45, 0x7c, 0xff} // Year/Tm/Lg and awards
	colorHighlight = color.RGBA{0x8c, 0x15, 0x15, 0xff} // standout stat values
	colorHidden    = color.RGBA{0x99, 0x99, 0x99, 0xff} // masked title
)
