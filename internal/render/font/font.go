// Package font rasterises the HUD font atlas and lays text out as quads.
// Nothing here touches GL, so the atlas and layout can be checked headless.
package font

import (
	"image"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"soccer/internal/game"
)

const (
	firstChar = 32
	lastChar  = 126

	// QuadFloats is the size of one character: 6 vertices of
	// [x, y, u, v, r, g, b, a].
	QuadFloats = 6 * 8
)

var (
	atlasOnce sync.Once
	atlas     *image.NRGBA
)

// Atlas returns printable ASCII from basicfont's 7x13 face, white on
// transparent, in a FontCols x FontRows grid starting at ' '.
func Atlas() *image.NRGBA {
	atlasOnce.Do(func() {
		atlas = image.NewNRGBA(image.Rect(0, 0, game.FontAtlasW, game.FontAtlasH))
		face := basicfont.Face7x13
		d := xfont.Drawer{Dst: atlas, Src: image.White, Face: face}
		for ch := firstChar; ch <= lastChar; ch++ {
			i := ch - firstChar
			col, row := i%game.FontCols, i/game.FontCols
			d.Dot = fixed.P(col*game.FontCellW, row*game.FontCellH+face.Ascent)
			d.DrawString(string(rune(ch)))
		}
	})
	return atlas
}

// UV returns the atlas rectangle for ch in normalised texture coordinates.
func UV(ch rune) (u0, v0, u1, v1 float32, ok bool) {
	if ch < firstChar || ch > lastChar {
		return 0, 0, 0, 0, false
	}
	i := int(ch) - firstChar
	col, row := i%game.FontCols, i/game.FontCols
	u0 = float32(col*game.FontCellW) / game.FontAtlasW
	v0 = float32(row*game.FontCellH) / game.FontAtlasH
	u1 = float32((col+1)*game.FontCellW) / game.FontAtlasW
	v1 = float32((row+1)*game.FontCellH) / game.FontAtlasH
	return u0, v0, u1, v1, true
}

// Width returns the width in screen pixels of the longest line of text.
func Width(text string, scale float32) int {
	lineLen, maxLineLen := 0, 0
	for _, ch := range text {
		if ch == '\n' {
			maxLineLen = max(maxLineLen, lineLen)
			lineLen = 0
			continue
		}
		lineLen++
	}
	maxLineLen = max(maxLineLen, lineLen)
	return int(float32(maxLineLen*game.FontCellW) * scale)
}

// Height returns the height in screen pixels of one line.
func Height(scale float32) int {
	return int(float32(game.FontCellH) * scale)
}

// AppendString queues text at screen position (x, y) as textured triangles.
// Characters outside printable ASCII advance the pen but draw nothing.
func AppendString(buf []float32, text string, x, y, scale float32, col game.RGB, alpha float32) []float32 {
	cr, cg, cb := col.Floats()
	w := float32(game.FontCellW) * scale
	h := float32(game.FontCellH) * scale
	baseX := x
	for _, ch := range text {
		if ch == '\n' {
			x = baseX
			y += h
			continue
		}
		if u0, v0, u1, v1, ok := UV(ch); ok && ch != ' ' {
			// Two triangles: TL, TR, BL then TR, BR, BL.
			buf = append(buf,
				x, y, u0, v0, cr, cg, cb, alpha,
				x+w, y, u1, v0, cr, cg, cb, alpha,
				x, y+h, u0, v1, cr, cg, cb, alpha,
				x+w, y, u1, v0, cr, cg, cb, alpha,
				x+w, y+h, u1, v1, cr, cg, cb, alpha,
				x, y+h, u0, v1, cr, cg, cb, alpha,
			)
		}
		x += w
	}
	return buf
}
