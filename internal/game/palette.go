package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: addU8(c.R, dr), G: addU8(c.G, dg), B: addU8(c.B, db)}
}

func addU8(v uint8, d int) uint8 {
	n := int(v) + d
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Floats returns the colour as normalised GL components.
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// Hex formats the colour as #rrggbb for terminal styling.
func (c RGB) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0x0F]
	}
	return string(b)
}

var Palette = struct {
	Field   RGB
	Line    RGB
	Goal    RGB
	Home    RGB
	Away    RGB
	Ball    RGB
	Outline RGB
	Spark   RGB
	Dust    RGB
	Text    RGB
	Dim     RGB
}{
	Field:   RGB{R: 0x4C, G: 0xAF, B: 0x50},
	Line:    RGB{R: 0xFF, G: 0xFF, B: 0xFF},
	Goal:    RGB{R: 0x00, G: 0x00, B: 0x00},
	Home:    RGB{R: 0x34, G: 0x98, B: 0xDB},
	Away:    RGB{R: 0xE7, G: 0x4C, B: 0x3C},
	Ball:    RGB{R: 0xFF, G: 0xFF, B: 0xFF},
	Outline: RGB{R: 0x00, G: 0x00, B: 0x00},
	Spark:   RGB{R: 255, G: 230, B: 140},
	Dust:    RGB{R: 120, G: 150, B: 90},
	Text:    RGB{R: 255, G: 255, B: 255},
	Dim:     RGB{R: 30, G: 70, B: 32},
}

// SideColor returns the kit colour for a side.
func SideColor(s Side) RGB {
	if s == Away {
		return Palette.Away
	}
	return Palette.Home
}
