// qr-sticker renders the printable "scan for menu" sticker around a QR code PNG.
//
// Usage:
//
//	qr-sticker [-config-dir config] [-qr qr.png] [-out public/qr-codes/sticker.png]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amante/menutools/internal/app"
	renderer "github.com/amante/menutools/internal/render/sticker"
	"github.com/amante/menutools/internal/repository/localfs"
	"github.com/amante/menutools/internal/usecase/sticker"
)

type flags struct {
	configDir string
	qr        string
	out       string
}

func parseFlags() flags {
	f := flags{}
	flag.StringVar(&f.configDir, "config-dir", "", "directory holding <ENV>.yaml (default: ./config)")
	flag.StringVar(&f.qr, "qr", "", "QR code image (default: sticker.qr_path)")
	flag.StringVar(&f.out, "out", "", "output PNG (default: sticker.output_path)")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	a, err := app.Start("qr-sticker", f.configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := a.Finish(run(a.Context(ctx), a, f)); err != nil {
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, f flags) error {
	cfg := a.Config.Sticker

	qrPath := a.Path(cfg.QRPath)
	if f.qr != "" {
		qrPath = f.qr
	}
	outPath := a.Path(cfg.OutputPath)
	if f.out != "" {
		outPath = f.out
	}

	brand, err := renderer.ParseHexColor(cfg.BrandColor)
	if err != nil {
		return err
	}
	fonts, err := renderer.LoadFonts(cfg.Fonts.Regular, cfg.Fonts.Bold, a.Logger)
	if err != nil {
		return err
	}
	r, err := renderer.New(renderer.Layout{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Brand:    brand,
		Title:    cfg.Title,
		Tagline:  cfg.Tagline,
		Button:   cfg.Button,
		Subtitle: cfg.Subtitle,
	}, fonts)
	if err != nil {
		return err
	}

	_, err = sticker.New(localfs.New(), r, a.Logger).Run(ctx, qrPath, outPath)
	return err
}
