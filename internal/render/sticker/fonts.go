package sticker

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// SourceBuiltin names the embedded Go fonts in logs.
const SourceBuiltin = "builtin"

// Fonts holds the two typefaces the layout uses.
type Fonts struct {
	Regular *opentype.Font
	Bold    *opentype.Font
}

// LoadFonts resolves both font chains. Missing or unparsable files are
// skipped; after the chain the embedded Go fonts are used.
func LoadFonts(regular, bold []string, logger *zap.Logger) (Fonts, error) {
	r, err := loadFont(regular, goregular.TTF, logger)
	if err != nil {
		return Fonts{}, fmt.Errorf("regular font: %w", err)
	}
	b, err := loadFont(bold, gobold.TTF, logger)
	if err != nil {
		return Fonts{}, fmt.Errorf("bold font: %w", err)
	}
	return Fonts{Regular: r, Bold: b}, nil
}

// BuiltinFonts returns the embedded Go fonts.
func BuiltinFonts() (Fonts, error) {
	return LoadFonts(nil, nil, zap.NewNop())
}

func loadFont(paths []string, fallback []byte, logger *zap.Logger) (*opentype.Font, error) {
	for _, p := range paths {
		data, err := os.ReadFile(filepath.Clean(p))
		if err != nil {
			logger.Debug("Font unavailable", zap.String("path", p), zap.Error(err))
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			logger.Debug("Font unparsable", zap.String("path", p), zap.Error(err))
			continue
		}
		logger.Debug("Font loaded", zap.String("path", p))
		return f, nil
	}

	logger.Debug("Using font", zap.String("source", SourceBuiltin))
	return opentype.Parse(fallback)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %.0fpx: %w", size, err)
	}
	return face, nil
}
