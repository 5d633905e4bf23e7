package enrich

import (
	"context"

	"github.com/amante/menutools/internal/domain/menu"
)

// MenuStore reads source menus and writes enriched ones.
type MenuStore interface {
	LoadMenu(ctx context.Context, path string) (*menu.Document, error)
	Save(ctx context.Context, path string, data []byte) error
}

// Mirror publishes an enriched document outside the filesystem.
type Mirror interface {
	Mirror(ctx context.Context, d menu.Domain, data []byte) error
}
