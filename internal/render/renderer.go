// Package render draws a match with OpenGL 4.1 core. All methods must run
// on the thread that owns the GL context.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"soccer/internal/game"
	"soccer/internal/render/font"
	"soccer/internal/render/hud"
)

const (
	shapeVertexFloats = 6 // x, y, r, g, b, a
	maxShapeVerts     = 6 * 256
	maxTextChars      = 512
	fontTexUnit       = 2
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Shape program: rects expanded to triangles.
	shapeProg uint32
	shapeVAO  uint32
	shapeVBO  uint32

	shUCamera     int32
	shUZoom       int32
	shUResolution int32

	// Sprite program: square point sprites (particles, centre circle).
	spriteProg uint32
	spriteVAO  uint32
	spriteVBO  uint32

	spUCamera     int32
	spUZoom       int32
	spUResolution int32

	// Disc program: round point sprites with an outline; shares spriteVAO.
	discProg          uint32
	discUCamera       int32
	discUZoom         int32
	discUResolution   int32
	discUOutline      int32
	discUOutlineColor int32

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32

	// Reusable buffers to avoid per-frame heap allocations.
	shapeBuf  []float32
	textBuf   []float32
	rectBuf   []float32
	spriteBuf []float32
	labels    []hud.Label
}

// New compiles every program and allocates the streaming buffers. It needs
// a current GL context.
func New() (*Renderer, error) {
	r := &Renderer{}
	var err error
	if r.shapeProg, err = linkProgram(shapeVertSrc, shapeFragSrc); err != nil {
		return nil, fmt.Errorf("shape program: %w", err)
	}
	if r.spriteProg, err = linkProgram(spriteVertSrc, spriteFragSrc); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	if r.discProg, err = linkProgram(spriteVertSrc, discFragSrc); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("disc program: %w", err)
	}
	if r.textProg, err = linkProgram(textVertSrc, textFragSrc); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("text program: %w", err)
	}

	r.initShapes()
	r.initSprites()
	r.initText()

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) initShapes() {
	gl.GenVertexArrays(1, &r.shapeVAO)
	gl.GenBuffers(1, &r.shapeVBO)
	gl.BindVertexArray(r.shapeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.shapeVBO)

	stride := int32(shapeVertexFloats * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxShapeVerts*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aColor
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))

	gl.UseProgram(r.shapeProg)
	r.shUCamera = gl.GetUniformLocation(r.shapeProg, gl.Str("uCamera\x00"))
	r.shUZoom = gl.GetUniformLocation(r.shapeProg, gl.Str("uZoom\x00"))
	r.shUResolution = gl.GetUniformLocation(r.shapeProg, gl.Str("uResolution\x00"))
}

func (r *Renderer) initSprites() {
	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	gl.GenVertexArrays(1, &r.spriteVAO)
	gl.GenBuffers(1, &r.spriteVBO)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	stride := int32(game.SpriteStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, game.MaxParticleRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))

	gl.UseProgram(r.spriteProg)
	r.spUCamera = gl.GetUniformLocation(r.spriteProg, gl.Str("uCamera\x00"))
	r.spUZoom = gl.GetUniformLocation(r.spriteProg, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(r.spriteProg, gl.Str("uResolution\x00"))

	gl.UseProgram(r.discProg)
	r.discUCamera = gl.GetUniformLocation(r.discProg, gl.Str("uCamera\x00"))
	r.discUZoom = gl.GetUniformLocation(r.discProg, gl.Str("uZoom\x00"))
	r.discUResolution = gl.GetUniformLocation(r.discProg, gl.Str("uResolution\x00"))
	r.discUOutline = gl.GetUniformLocation(r.discProg, gl.Str("uOutline\x00"))
	r.discUOutlineColor = gl.GetUniformLocation(r.discProg, gl.Str("uOutlineColor\x00"))
	oc := game.Palette.Outline
	or, og, ob := oc.Floats()
	gl.Uniform1f(r.discUOutline, game.OutlineFrac)
	gl.Uniform3f(r.discUOutlineColor, or, og, ob)
}

func (r *Renderer) initText() {
	img := font.Atlas()
	b := img.Bounds()

	gl.GenTextures(1, &r.fontTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.UseProgram(r.textProg)
	r.textURes = gl.GetUniformLocation(r.textProg, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(r.textProg, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, fontTexUnit)

	// Per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	gl.GenVertexArrays(1, &r.textVAO)
	gl.GenBuffers(1, &r.textVBO)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxTextChars*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.shapeVBO, r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.shapeVAO, r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.shapeProg, r.spriteProg, r.discProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// BeginFrame clears to the pitch colour. Outside the letterboxed field the
// clear colour shows too, so the pitch reads as filling the window.
func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	fr, fg, fb := game.Palette.Field.Floats()
	gl.ClearColor(fr, fg, fb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawMatch renders field markings, paddles, ball, particles and the HUD.
func (r *Renderer) DrawMatch(m *game.Match, cam game.Camera, fbW, fbH int) {
	r.rectBuf = game.FieldRects(m.Rules, m.Goals, r.rectBuf)
	r.DrawRects(r.rectBuf, cam, fbW, fbH)

	r.spriteBuf = game.CircleSprites(m.Rules, r.spriteBuf)
	r.DrawSprites(r.spriteBuf, cam, fbW, fbH)

	r.rectBuf = game.PlayerRects(m, r.rectBuf)
	r.DrawRects(r.rectBuf, cam, fbW, fbH)

	r.spriteBuf = m.Particles.RenderData(r.spriteBuf)
	r.DrawSprites(r.spriteBuf, cam, fbW, fbH)

	r.spriteBuf = game.BallSprite(m.Ball, r.spriteBuf)
	r.DrawDiscs(r.spriteBuf, cam, fbW, fbH)

	r.labels = hud.Layout(m, fbW, fbH, r.labels)
	r.DrawLabels(r.labels)
	r.FlushText(fbW, fbH)
}

// DrawRects fills axis-aligned rectangles.
// buf format: [x, y, w, h, r, g, b, a] * N in field pixels.
func (r *Renderer) DrawRects(buf []float32, cam game.Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	r.shapeBuf = r.shapeBuf[:0]
	for i := 0; i+game.RectStride <= len(buf); i += game.RectStride {
		x0, y0 := buf[i], buf[i+1]
		x1, y1 := x0+buf[i+2], y0+buf[i+3]
		cr, cg, cb, ca := buf[i+4], buf[i+5], buf[i+6], buf[i+7]
		r.shapeBuf = append(r.shapeBuf,
			x0, y0, cr, cg, cb, ca,
			x1, y0, cr, cg, cb, ca,
			x0, y1, cr, cg, cb, ca,
			x1, y0, cr, cg, cb, ca,
			x1, y1, cr, cg, cb, ca,
			x0, y1, cr, cg, cb, ca,
		)
	}
	count := min(len(r.shapeBuf)/shapeVertexFloats, maxShapeVerts)

	gl.UseProgram(r.shapeProg)
	gl.BindVertexArray(r.shapeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.shapeVBO)
	gl.Uniform2f(r.shUCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.shUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.shUResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*shapeVertexFloats*4, gl.Ptr(r.shapeBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawSprites renders square point sprites.
// buf format: [x, y, size, r, g, b, a, rotation] * N.
func (r *Renderer) DrawSprites(buf []float32, cam game.Camera, fbW, fbH int) {
	r.drawPoints(r.spriteProg, r.spUCamera, r.spUZoom, r.spUResolution, buf, cam, fbW, fbH)
}

// DrawDiscs renders outlined round sprites; same layout as DrawSprites.
func (r *Renderer) DrawDiscs(buf []float32, cam game.Camera, fbW, fbH int) {
	r.drawPoints(r.discProg, r.discUCamera, r.discUZoom, r.discUResolution, buf, cam, fbW, fbH)
}

func (r *Renderer) drawPoints(prog uint32, uCam, uZoom, uRes int32, buf []float32, cam game.Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := min(len(buf)/game.SpriteStride, game.MaxParticleRender)

	gl.UseProgram(prog)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	gl.Uniform2f(uCam, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(uZoom, float32(cam.Zoom))
	gl.Uniform2f(uRes, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*game.SpriteStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawString queues text at screen pixel position (sx, sy).
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col game.RGB, alpha float32) {
	r.textBuf = font.AppendString(r.textBuf, text, float32(sx), float32(sy), scale, col, alpha)
}

// DrawLabels queues every label.
func (r *Renderer) DrawLabels(labels []hud.Label) {
	for _, l := range labels {
		r.DrawString(l.Text, l.X, l.Y, l.Scale, l.Col, l.Alpha)
	}
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText(fbW, fbH int) {
	if len(r.textBuf) == 0 {
		return
	}
	count := min(len(r.textBuf)/8, maxTextChars*6)

	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.Uniform2f(r.textURes, float32(fbW), float32(fbH))

	gl.ActiveTexture(gl.TEXTURE0 + fontTexUnit)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*8*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	r.textBuf = r.textBuf[:0]
}
