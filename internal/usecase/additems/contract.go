package additems

import (
	"context"

	"github.com/amante/menutools/internal/domain/menu"
)

// MenuStore reads a menu and writes it back.
type MenuStore interface {
	LoadMenu(ctx context.Context, path string) (*menu.Document, error)
	Save(ctx context.Context, path string, data []byte) error
}
