// Package sticker draws the printable "scan for menu" sticker around a QR code.
package sticker

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font sizes in pixels.
const (
	TitleSize    = 100
	TaglineSize  = 36
	ButtonSize   = 50
	SubtitleSize = 32
)

// Geometry in pixels, measured from the top of the canvas.
const (
	frameY       = 180
	frameHeight  = 120
	framePadding = 200
	frameRadius  = 20
	frameStroke  = 3
	innerInset   = 10
	innerRadius  = 15
	innerStroke  = 2

	diamondSize   = 15
	diamondStroke = 2
	diamondOffset = 25 // distance outside the frame
	diamondInset  = 20 // distance from the frame's top and bottom edges

	taglineGap  = 80
	qrGap       = 100
	QRSize      = 700
	buttonGap   = 60
	ButtonW     = 450
	ButtonH     = 90
	buttonR     = 45
	subtitleGap = 30
)

// Layout holds the configurable parts of the sticker.
type Layout struct {
	Width    int
	Height   int
	Brand    color.RGBA
	Title    string
	Tagline  string
	Button   string
	Subtitle string
}

// Validate rejects canvases too small for the fixed geometry.
func (l Layout) Validate() error {
	if l.Width < QRSize || l.Width < 2*framePadding+2*innerInset {
		return fmt.Errorf("sticker width %d too small", l.Width)
	}
	if l.Height <= 0 {
		return errors.New("sticker height must be positive")
	}
	return nil
}

// Renderer draws stickers with a fixed layout and faces.
type Renderer struct {
	layout   Layout
	title    font.Face
	tagline  font.Face
	button   font.Face
	subtitle font.Face
}

// New prepares the font faces for l.
func New(l Layout, fonts Fonts) (*Renderer, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{layout: l}
	faces := []struct {
		dst  *font.Face
		f    *opentype.Font
		size float64
	}{
		{&r.title, fonts.Regular, TitleSize},
		{&r.tagline, fonts.Regular, TaglineSize},
		{&r.button, fonts.Bold, ButtonSize},
		{&r.subtitle, fonts.Regular, SubtitleSize},
	}
	for _, fc := range faces {
		face, err := newFace(fc.f, fc.size)
		if err != nil {
			return nil, err
		}
		*fc.dst = face
	}
	return r, nil
}

// ButtonRect returns the button's bounds on the canvas.
func (r *Renderer) ButtonRect() image.Rectangle {
	x := (r.layout.Width - ButtonW) / 2
	y := r.buttonY()
	return image.Rect(x, y, x+ButtonW, y+ButtonH)
}

// QRRect returns where the QR code is placed.
func (r *Renderer) QRRect() image.Rectangle {
	x := (r.layout.Width - QRSize) / 2
	y := r.qrY()
	return image.Rect(x, y, x+QRSize, y+QRSize)
}

func (r *Renderer) taglineY() int { return frameY + frameHeight + taglineGap }
func (r *Renderer) qrY() int      { return r.taglineY() + qrGap }
func (r *Renderer) buttonY() int  { return r.qrY() + QRSize + buttonGap }

// Render composes the sticker around qr.
func (r *Renderer) Render(qr image.Image) *image.RGBA {
	l := r.layout
	w := float64(l.Width)
	img := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(l.Brand)
	gc.SetFillColor(l.Brand)

	// Title frame.
	gc.SetLineWidth(frameStroke)
	gc.BeginPath()
	draw2dkit.RoundedRectangle(gc, framePadding, frameY, w-framePadding, frameY+frameHeight, 2*frameRadius, 2*frameRadius)
	gc.Stroke()

	gc.SetLineWidth(innerStroke)
	gc.BeginPath()
	draw2dkit.RoundedRectangle(gc,
		framePadding+innerInset, frameY+innerInset,
		w-framePadding-innerInset, frameY+frameHeight-innerInset,
		2*innerRadius, 2*innerRadius)
	gc.Stroke()

	gc.SetLineWidth(diamondStroke)
	for _, p := range r.diamonds() {
		gc.BeginPath()
		gc.MoveTo(p.X, p.Y-diamondSize)
		gc.LineTo(p.X+diamondSize, p.Y)
		gc.LineTo(p.X, p.Y+diamondSize)
		gc.LineTo(p.X-diamondSize, p.Y)
		gc.Close()
		gc.Stroke()
	}

	// QR code, alpha-composited over the background.
	xdraw.CatmullRom.Scale(img, r.QRRect(), qr, qr.Bounds(), xdraw.Over, nil)

	// Button.
	btn := r.ButtonRect()
	gc.BeginPath()
	draw2dkit.RoundedRectangle(gc,
		float64(btn.Min.X), float64(btn.Min.Y), float64(btn.Max.X), float64(btn.Max.Y),
		2*buttonR, 2*buttonR)
	gc.Fill()

	brand := image.NewUniform(l.Brand)
	frame := image.Rect(0, frameY, l.Width, frameY+frameHeight)
	drawCentered(img, r.title, brand, l.Title, frame)
	drawTop(img, r.tagline, brand, l.Tagline, l.Width, r.taglineY())
	drawCentered(img, r.button, image.White, l.Button, btn)
	drawTop(img, r.subtitle, brand, l.Subtitle, l.Width, btn.Max.Y+subtitleGap)

	return img
}

type point struct{ X, Y float64 }

// diamonds returns the centres of the frame ornaments: two left, two right,
// one above and one below.
func (r *Renderer) diamonds() []point {
	w := float64(r.layout.Width)
	left := float64(framePadding - diamondOffset)
	right := w - framePadding + diamondOffset
	top := float64(frameY + diamondInset)
	bottom := float64(frameY + frameHeight - diamondInset)
	mid := float64(r.layout.Width / 2)
	return []point{
		{left, top}, {left, bottom},
		{right, top}, {right, bottom},
		{mid, frameY - diamondOffset}, {mid, frameY + frameHeight + diamondOffset},
	}
}

// drawCentered centres the ink bounds of s inside box.
func drawCentered(dst draw.Image, face font.Face, src image.Image, s string, box image.Rectangle) {
	b, _ := font.BoundString(face, s)
	inkW := (b.Max.X - b.Min.X).Ceil()
	inkH := (b.Max.Y - b.Min.Y).Ceil()
	left := box.Min.X + (box.Dx()-inkW)/2
	top := box.Min.Y + (box.Dy()-inkH)/2
	drawAt(dst, face, src, s, b, left, top)
}

// drawTop centres s horizontally with its ink top at y.
func drawTop(dst draw.Image, face font.Face, src image.Image, s string, width, y int) {
	b, _ := font.BoundString(face, s)
	inkW := (b.Max.X - b.Min.X).Ceil()
	drawAt(dst, face, src, s, b, (width-inkW)/2, y)
}

func drawAt(dst draw.Image, face font.Face, src image.Image, s string, b fixed.Rectangle26_6, left, top int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(left, top).Sub(b.Min),
	}
	d.DrawString(s)
}
