package game

import "math"

type Camera struct {
	X, Y float64 // field-pixel space, camera centre
	Zoom float64 // screen pixels per field pixel
}

// FitField zooms so the whole field fills the framebuffer and centres the
// camera on it. Letterboxing appears on whichever axis has slack.
func FitField(r Rules, fbW, fbH int) Camera {
	cam := Camera{X: r.FieldWidth / 2, Y: r.FieldHeight / 2, Zoom: 1}
	if fbW <= 0 || fbH <= 0 || r.FieldWidth <= 0 || r.FieldHeight <= 0 {
		return cam
	}
	zoomW := float64(fbW) / r.FieldWidth
	zoomH := float64(fbH) / r.FieldHeight
	cam.Zoom = clampF(math.Min(zoomW, zoomH), MinZoom, MaxZoom)
	return cam
}

// WorldToScreen converts a field position to framebuffer pixels.
func (c Camera) WorldToScreen(x, y float64, fbW, fbH int) (float64, float64) {
	return (x-c.X)*c.Zoom + float64(fbW)*0.5, (y-c.Y)*c.Zoom + float64(fbH)*0.5
}

// ScreenToWorld converts framebuffer pixels to a field position.
func (c Camera) ScreenToWorld(sx, sy float64, fbW, fbH int) (float64, float64) {
	if c.Zoom == 0 {
		return c.X, c.Y
	}
	return c.X + (sx-float64(fbW)*0.5)/c.Zoom, c.Y + (sy-float64(fbH)*0.5)/c.Zoom
}
