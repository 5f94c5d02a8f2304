package font

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soccer/internal/game"
)

func inkIn(img *image.NRGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.NRGBAAt(x, y).A > 0 {
				n++
			}
		}
	}
	return n
}

func cell(ch rune) image.Rectangle {
	i := int(ch) - firstChar
	col, row := i%game.FontCols, i/game.FontCols
	return image.Rect(col*game.FontCellW, row*game.FontCellH, (col+1)*game.FontCellW, (row+1)*game.FontCellH)
}

func TestAtlas(t *testing.T) {
	img := Atlas()
	require.Equal(t, image.Rect(0, 0, game.FontAtlasW, game.FontAtlasH), img.Bounds())
	assert.Same(t, img, Atlas(), "built once")

	assert.Zero(t, inkIn(img, cell(' ')))
	for _, ch := range "0123456789AHPW!" {
		assert.Positive(t, inkIn(img, cell(ch)), string(ch))
	}

	// Glyphs are white; alpha carries the shape.
	r := cell('H')
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c := img.NRGBAAt(x, y); c.A > 0 {
				assert.Equal(t, uint8(255), c.R)
			}
		}
	}
}

func TestUV(t *testing.T) {
	u0, v0, u1, v1, ok := UV(' ')
	require.True(t, ok)
	assert.Equal(t, float32(0), u0)
	assert.Equal(t, float32(0), v0)
	assert.InDelta(t, 1.0/16, u1, 1e-6)
	assert.InDelta(t, 1.0/6, v1, 1e-6)

	u0, v0, _, _, ok = UV('~')
	require.True(t, ok)
	assert.InDelta(t, 14.0/16, u0, 1e-6)
	assert.InDelta(t, 5.0/6, v0, 1e-6)

	_, _, _, _, ok = UV('\t')
	assert.False(t, ok)
	_, _, _, _, ok = UV('é')
	assert.False(t, ok)
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 28, Width("AB", 2))
	assert.Equal(t, 21, Width("ab\nabc", 1))
	assert.Zero(t, Width("", 3))
	assert.Equal(t, 26, Height(2))
}

func TestAppendString(t *testing.T) {
	buf := AppendString(nil, "1 - 0", 10, 20, 1, game.Palette.Text, 1)
	require.Len(t, buf, 3*QuadFloats, "spaces draw nothing")

	// First vertex is the top-left corner of '1'.
	assert.Equal(t, float32(10), buf[0])
	assert.Equal(t, float32(20), buf[1])

	// The '-' sits two cells to the right.
	assert.Equal(t, float32(10+2*game.FontCellW), buf[QuadFloats])

	buf = AppendString(buf[:0], "a\nb", 0, 0, 2, game.Palette.Text, 0.5)
	require.Len(t, buf, 2*QuadFloats)
	assert.Equal(t, float32(0), buf[QuadFloats])
	assert.Equal(t, float32(2*game.FontCellH), buf[QuadFloats+1])
	assert.Equal(t, float32(0.5), buf[7])
}
