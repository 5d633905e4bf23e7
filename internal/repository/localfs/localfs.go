// Package localfs reads inputs from and atomically writes outputs to the local filesystem.
package localfs

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/amante/menutools/internal/domain/menu"
	"github.com/amante/menutools/internal/logger"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Repo reads menus and images and writes output files.
type Repo struct{}

// New creates a file repository.
func New() *Repo {
	return &Repo{}
}

// LoadMenu reads and parses the menu at path.
func (r *Repo) LoadMenu(ctx context.Context, path string) (*menu.Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read menu %s: %w", path, err)
	}
	doc, err := menu.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.FromContext(ctx).Debug("Menu loaded",
		zap.String("path", path),
		zap.Int("categories", len(doc.Categories)),
		zap.Int("items", doc.ItemCount()),
	)
	return doc, nil
}

// LoadImage decodes a PNG or JPEG image.
func (r *Repo) LoadImage(_ context.Context, path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// Save writes data to path atomically: a temp file in the target directory is
// synced and renamed over the destination, so readers never see a partial file.
// Missing parent directories are created.
func (r *Repo) Save(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	logger.FromContext(ctx).Debug("File written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
