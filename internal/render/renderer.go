// Package render draws a career table as a Baseball Reference styled
// PNG with the player's identity withheld until reveal.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ntbapp/ntb-server/internal/domain"
	"github.com/ntbapp/ntb-server/internal/errors"
)

// HiddenName is the title shown while the player's identity is withheld.
const HiddenName = "??? ???"

// Layout constants in pixels. charUnit converts the column widths, which
// are in the character units of the fixed layout, to pixels.
const (
	charUnit   = 12
	marginX    = 8
	titleH     = 34
	sectionH   = 22
	headerH    = 26
	rowH       = 20
	bottomPad  = 8
	cellPad    = 4
	textAscent = 10 // basicfont.Face7x13 ascent within a row
)

// Render draws the table. revealName is empty while the identity is
// hidden; on reveal it carries the player's display name for the title.
// An empty table is an aggregation defect upstream and yields a RENDER
// error rather than a blank image.
func Render(t *domain.CareerTable, revealName string) (image.Image, error) {
	if t == nil || t.Empty() {
		return nil, errors.Render("career table has no season rows")
	}
	cols := columnsFor(t.Category)
	if cols == nil {
		return nil, errors.Render("unknown table category " + string(t.Category))
	}

	width := marginX * 2
	for _, c := range cols {
		width += cellWidth(c)
	}
	height := titleH + sectionH + headerH + (len(t.Rows)+1)*rowH + bottomPad

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), colorCanvas)

	y := 0
	drawTitle(img, t, revealName, y)
	y += titleH

	fillRect(img, image.Rect(0, y, width, y+sectionH), colorHeaderBG)
	drawText(img, marginX+cellPad, y+sectionH/2+textAscent/2, sectionTitle(t.Category), colorText, true)
	y += sectionH

	drawHeaderRow(img, cols, y, width)
	y += headerH

	for i, row := range t.Rows {
		bg := colorRowBG
		if i%2 == 1 {
			bg = colorRowBGAlt
		}
		fillRect(img, image.Rect(0, y, width, y+rowH), bg)
		hline(img, y, width, colorRowRule)
		drawRow(img, cols, row, y)
		y += rowH
	}

	// Totals sit under the accent rule in the aged-paper band.
	hline(img, y, width, colorAccent)
	hline(img, y+1, width, colorAccent)
	fillRect(img, image.Rect(0, y+2, width, y+rowH), colorTotalsBG)
	drawRow(img, cols, t.Totals, y)

	return img, nil
}

// EncodePNG writes the rendered image as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, errors.CodeRender, "encode png")
	}
	return nil
}

func drawTitle(img *image.RGBA, t *domain.CareerTable, revealName string, y int) {
	name, col := HiddenName, colorHidden
	if revealName != "" {
		name, col = revealName, colorLink
	}
	// Double-struck twice for weight: the bitmap face has no true bold.
	baseline := y + titleH/2 + textAscent/2
	drawText(img, marginX+cellPad, baseline, name, col, true)
	drawText(img, marginX+cellPad+1, baseline+1, name, col, false)
}

func drawHeaderRow(img *image.RGBA, cols []Column, y, width int) {
	fillRect(img, image.Rect(0, y, width, y+headerH), colorHeaderBG)
	hline(img, y+headerH-1, width, colorAccent)
	x := marginX
	baseline := y + headerH/2 + textAscent/2
	for _, c := range cols {
		drawCell(img, c, c.Name, x, baseline, colorHeader, true)
		x += cellWidth(c)
	}
}

func drawRow(img *image.RGBA, cols []Column, row domain.CareerRow, y int) {
	x := marginX
	baseline := y + rowH/2 + textAscent/2
	for _, c := range cols {
		text := cellText(c, row)
		col, bold := cellStyle(c, row)
		drawCell(img, c, text, x, baseline, col, bold)
		x += cellWidth(c)
	}
}

// cellText resolves a cell's text; identity columns other than Year go
// blank on the totals row.
func cellText(c Column, row domain.CareerRow) string {
	if row.Totals && c.Identity {
		return ""
	}
	return c.Value(row)
}

func cellStyle(c Column, row domain.CareerRow) (color.RGBA, bool) {
	if row.Totals {
		return colorText, true
	}
	if c.Hot != nil && c.Hot(row) {
		return colorHighlight, true
	}
	switch {
	case c.Award:
		return colorLink, false
	case c.Link:
		return colorLink, c.Bold
	default:
		return colorText, c.Bold
	}
}

func cellWidth(c Column) int {
	return int(c.Width * charUnit)
}

func drawCell(img *image.RGBA, c Column, text string, x, baseline int, col color.RGBA, bold bool) {
	if text == "" {
		return
	}
	w := cellWidth(c)
	tw := textWidth(text)
	tx := x + cellPad
	switch c.Align {
	case AlignRight:
		tx = x + w - cellPad - tw
	case AlignCenter:
		tx = x + (w-tw)/2
	}
	drawText(img, tx, baseline, text, col, bold)
}

func drawText(img *image.RGBA, x, baseline int, text string, col color.RGBA, bold bool) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
	if bold {
		d.Dot = fixed.P(x+1, baseline)
		d.DrawString(text)
	}
}

func textWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}

func fillRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func hline(img *image.RGBA, y, width int, col color.RGBA) {
	fillRect(img, image.Rect(0, y, width, y+1), col)
}
