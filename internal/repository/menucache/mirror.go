// Package menucache mirrors enriched menu documents into Valkey/Redis.
package menucache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/amante/menutools/internal/db"
	"github.com/amante/menutools/internal/domain/menu"
)

const keySuffix = "menu:"

// store is the consumer interface for the mirror (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// Mirror writes each enriched document under <prefix>menu:<domain>.
type Mirror struct {
	store       store
	prefix      string
	jsonModule  bool
	timeout     time.Duration
	mirrorTotal *prometheus.CounterVec
	logger      *zap.Logger
}

// New creates a mirror. With jsonModule the document is stored via JSON.SET at
// the root path, otherwise as a plain string value. timeout bounds each write
// (0 means the caller's context alone). mirrorTotal has label "result" and may be nil.
func New(
	s store,
	prefix string,
	jsonModule bool,
	timeout time.Duration,
	mirrorTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Mirror {
	return &Mirror{
		store:       s,
		prefix:      prefix,
		jsonModule:  jsonModule,
		timeout:     timeout,
		mirrorTotal: mirrorTotal,
		logger:      logger,
	}
}

// Key returns the cache key for d.
func (m *Mirror) Key(d menu.Domain) string {
	return m.prefix + keySuffix + d.String()
}

// Mirror stores data for d. A cached copy with the same content is left as is.
func (m *Mirror) Mirror(ctx context.Context, d menu.Domain, data []byte) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	key := m.Key(d)
	if m.unchanged(ctx, key, data) {
		m.inc("unchanged")
		m.logger.Debug("Cached menu up to date", zap.String("key", key))
		return nil
	}

	var err error
	if m.jsonModule {
		err = m.store.JSONSet(ctx, key, "$", data)
	} else {
		err = m.store.Set(ctx, key, data)
	}
	if err != nil {
		m.inc("error")
		return fmt.Errorf("mirror %s: %w", key, err)
	}

	m.inc("ok")
	m.logger.Debug("Menu mirrored", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// unchanged compares the cached document with data, ignoring whitespace.
// Read failures count as changed so the write still happens.
func (m *Mirror) unchanged(ctx context.Context, key string, data []byte) bool {
	var (
		current []byte
		err     error
	)
	if m.jsonModule {
		current, err = m.store.JSONGet(ctx, key)
	} else {
		current, err = m.store.Get(ctx, key)
	}
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			m.logger.Warn("Failed to read cached menu", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return bytes.Equal(pretty.Ugly(current), pretty.Ugly(data))
}

func (m *Mirror) inc(result string) {
	if m.mirrorTotal != nil {
		m.mirrorTotal.WithLabelValues(result).Inc()
	}
}
