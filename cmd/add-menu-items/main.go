// add-menu-items appends drafted items to a menu, continuing each category's
// id sequence, and rewrites the menu in place.
//
// Usage:
//
//	add-menu-items [-config-dir config] [-menu src/data/menus/food.json] [-drafts scripts/new-items.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/amante/menutools/internal/app"
	"github.com/amante/menutools/internal/domain/menu"
	"github.com/amante/menutools/internal/repository/localfs"
	"github.com/amante/menutools/internal/usecase/additems"
)

type flags struct {
	configDir string
	menu      string
	drafts    string
}

func parseFlags() flags {
	f := flags{}
	flag.StringVar(&f.configDir, "config-dir", "", "directory holding <ENV>.yaml (default: ./config)")
	flag.StringVar(&f.menu, "menu", "", "menu file to extend (default: additions.menu)")
	flag.StringVar(&f.drafts, "drafts", "", "YAML drafts file (default: additions.drafts)")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	a, err := app.Start("add-menu-items", f.configDir)
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
	cfg := a.Config.Additions

	menuPath := a.Path(cfg.Menu)
	if f.menu != "" {
		menuPath = f.menu
	}
	draftsPath := a.Path(cfg.Drafts)
	if f.drafts != "" {
		draftsPath = f.drafts
	}

	d, err := menu.ParseDomain(cfg.Domain)
	if err != nil {
		return err
	}

	groups, err := additems.LoadDrafts(draftsPath)
	if err != nil {
		return err
	}

	svc := additems.New(localfs.New(), d, cfg.Prefixes, a.Metrics, a.Logger)
	res, err := svc.Run(ctx, menuPath, groups)
	if err != nil {
		return err
	}

	a.Logger.Info("Items added",
		zap.Int("total", res.Total()),
		zap.Strings("ids", res.IDs),
		zap.Strings("skipped_categories", res.Skipped),
	)
	return nil
}
