// Package sticker produces the printable QR menu sticker.
package sticker

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"go.uber.org/zap"
)

// Result describes the written sticker.
type Result struct {
	Output string
	Width  int
	Height int
	Bytes  int
}

// Service renders and writes stickers.
type Service struct {
	files    Files
	renderer Renderer
	logger   *zap.Logger
}

// New creates a Service.
func New(files Files, renderer Renderer, logger *zap.Logger) *Service {
	return &Service{files: files, renderer: renderer, logger: logger}
}

// Run renders the sticker for the QR image at qrPath into outPath as PNG.
func (s *Service) Run(ctx context.Context, qrPath, outPath string) (Result, error) {
	qr, err := s.files.LoadImage(ctx, qrPath)
	if err != nil {
		return Result{}, err
	}

	img := s.renderer.Render(qr)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("encode sticker: %w", err)
	}
	if err := s.files.Save(ctx, outPath, buf.Bytes()); err != nil {
		return Result{}, err
	}

	res := Result{
		Output: outPath,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Bytes:  buf.Len(),
	}
	s.logger.Info("Sticker created",
		zap.String("output", res.Output),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
	)
	return res, nil
}
