// enhance-menus fills absent descriptive fields and tags on the food, bar and
// cafe menus and writes <domain>-enhanced.json next to each source.
//
// Usage:
//
//	enhance-menus [-config-dir config] [-menu food=path/to/food.json]
//
// Env vars:
//
//	ENV: config file to load (config/<ENV>.yaml, default: local)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/amante/menutools/internal/app"
	"github.com/amante/menutools/internal/config"
	"github.com/amante/menutools/internal/domain/classification"
	"github.com/amante/menutools/internal/domain/menu"
	"github.com/amante/menutools/internal/repository/localfs"
	"github.com/amante/menutools/internal/repository/menucache"
	"github.com/amante/menutools/internal/usecase/enrich"
)

// menuFlags collects repeated -menu domain=path overrides.
type menuFlags map[string]string

func (m menuFlags) String() string { return fmt.Sprint(map[string]string(m)) }

func (m menuFlags) Set(v string) error {
	d, p, ok := strings.Cut(v, "=")
	if !ok || p == "" {
		return fmt.Errorf("want domain=path, got %q", v)
	}
	if _, err := menu.ParseDomain(d); err != nil {
		return err
	}
	m[d] = p
	return nil
}

func main() {
	configDir := flag.String("config-dir", "", "directory holding <ENV>.yaml (default: ./config)")
	menus := menuFlags{}
	flag.Var(menus, "menu", "override a job input as domain=path (repeatable)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	a, err := app.Start("enhance-menus", *configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := a.Finish(run(a.Context(ctx), a, menus)); err != nil {
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, overrides menuFlags) error {
	cfg := a.Config

	tables, err := classification.Load(a.Path(cfg.Classification.Path))
	if err != nil {
		return err
	}

	jobs, err := buildJobs(a, cfg.Enrich.Jobs, overrides)
	if err != nil {
		return err
	}

	store, err := a.OpenCache(ctx)
	if err != nil {
		return err
	}
	var mirror enrich.Mirror
	if store != nil {
		mirror = menucache.New(
			store,
			cfg.Cache.KeyPrefix,
			*cfg.Cache.JSONModule,
			time.Duration(cfg.Cache.WriteTimeoutSec)*time.Second,
			a.Metrics.CacheMirror,
			a.Logger,
		)
	}

	svc := enrich.New(localfs.New(), mirror, tables, a.Metrics, a.Logger)
	reports, err := svc.Run(ctx, jobs)
	if err != nil {
		return err
	}

	total := 0
	for _, r := range reports {
		total += r.Items
	}
	a.Logger.Info("All menus enriched", zap.Int("menus", len(reports)), zap.Int("items", total))
	return nil
}

func buildJobs(a *app.App, cfgJobs []config.JobConfig, overrides menuFlags) ([]enrich.Job, error) {
	jobs := make([]enrich.Job, 0, len(cfgJobs))
	for _, j := range cfgJobs {
		d, err := menu.ParseDomain(j.Domain)
		if err != nil {
			return nil, err
		}
		job := enrich.Job{Domain: d, Input: a.Path(j.Input), Output: a.Path(j.Output)}
		if p, ok := overrides[j.Domain]; ok {
			job.Input = p
			job.Output = config.EnhancedPath(p, j.Domain)
		}
		jobs = append(jobs, job)
	}
	for d := range overrides {
		if !hasJob(cfgJobs, d) {
			return nil, fmt.Errorf("-menu %s: no enrich job configured for this domain", d)
		}
	}
	return jobs, nil
}

func hasJob(jobs []config.JobConfig, d string) bool {
	for _, j := range jobs {
		if j.Domain == d {
			return true
		}
	}
	return false
}
