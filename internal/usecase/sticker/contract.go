package sticker

import (
	"context"
	"image"
)

// Files reads the QR source and writes the finished sticker.
type Files interface {
	LoadImage(ctx context.Context, path string) (image.Image, error)
	Save(ctx context.Context, path string, data []byte) error
}

// Renderer composes a sticker around a QR code.
type Renderer interface {
	Render(qr image.Image) *image.RGBA
}
