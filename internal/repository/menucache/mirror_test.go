package menucache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/amante/menutools/internal/db"
	"github.com/amante/menutools/internal/domain/menu"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn func(ctx context.Context, key string) ([]byte, error)
	setFn     func(ctx context.Context, key string, value []byte) error
	getFn     func(ctx context.Context, key string) ([]byte, error)
}

func (m *mockStore) JSONGet(ctx context.Context, key string, _ ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_mirror_total"}, []string{"result"})
}

func TestMirror_JSONModule(t *testing.T) {
	var gotKey, gotPath string
	var gotData []byte
	ms := &mockStore{
		jsonSetFn: func(_ context.Context, key, path string, data []byte) error {
			gotKey, gotPath, gotData = key, path, data
			return nil
		},
		setFn: func(context.Context, string, []byte) error {
			t.Error("SET must not be used when the JSON module is enabled")
			return nil
		},
	}
	counter := newCounter()
	m := New(ms, "amante:", true, 0, counter, zap.NewNop())

	if err := m.Mirror(context.Background(), menu.DomainBar, []byte(`{"categories":[]}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "amante:menu:bar" || gotPath != "$" || string(gotData) != `{"categories":[]}` {
		t.Errorf("unexpected JSON.SET %s %s %s", gotKey, gotPath, gotData)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("ok")); got != 1 {
		t.Errorf("expected 1 ok, got %f", got)
	}
}

func TestMirror_PlainSet(t *testing.T) {
	var gotKey string
	ms := &mockStore{
		jsonSetFn: func(context.Context, string, string, []byte) error {
			t.Error("JSON.SET must not be used without the JSON module")
			return nil
		},
		setFn: func(_ context.Context, key string, _ []byte) error {
			gotKey = key
			return nil
		},
	}
	m := New(ms, "", false, 0, nil, zap.NewNop())

	if err := m.Mirror(context.Background(), menu.DomainCafe, []byte("{}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "menu:cafe" {
		t.Errorf("unexpected key %q", gotKey)
	}
}

func TestMirror_Error(t *testing.T) {
	storeErr := &db.Error{Op: db.OpJSONSet, Err: errors.New("connection refused")}
	ms := &mockStore{
		jsonSetFn: func(context.Context, string, string, []byte) error { return storeErr },
	}
	counter := newCounter()
	m := New(ms, "amante:", true, 0, counter, zap.NewNop())

	err := m.Mirror(context.Background(), menu.DomainFood, []byte("{}"))
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected *db.Error, got %v", err)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("error")); got != 1 {
		t.Errorf("expected 1 error, got %f", got)
	}
}

func TestMirror_Timeout(t *testing.T) {
	ms := &mockStore{
		jsonSetFn: func(ctx context.Context, _, _ string, _ []byte) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected a deadline on the write context")
			}
			return nil
		},
	}
	m := New(ms, "amante:", true, time.Second, nil, zap.NewNop())

	if err := m.Mirror(context.Background(), menu.DomainFood, []byte("{}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMirror_SkipsUnchanged(t *testing.T) {
	writes := 0
	ms := &mockStore{
		jsonGetFn: func(context.Context, string) ([]byte, error) {
			return []byte(`{"categories":[{"id":"gin","items":[]}]}`), nil
		},
		jsonSetFn: func(context.Context, string, string, []byte) error {
			writes++
			return nil
		},
	}
	counter := newCounter()
	m := New(ms, "amante:", true, 0, counter, zap.NewNop())

	doc := []byte("{\n  \"categories\": [\n    {\"id\": \"gin\", \"items\": []}\n  ]\n}\n")
	if err := m.Mirror(context.Background(), menu.DomainBar, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if writes != 0 {
		t.Errorf("expected no write, got %d", writes)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("unchanged")); got != 1 {
		t.Errorf("expected 1 unchanged, got %f", got)
	}
}

func TestMirror_ReadErrorStillWrites(t *testing.T) {
	writes := 0
	ms := &mockStore{
		getFn: func(context.Context, string) ([]byte, error) {
			return nil, &db.Error{Op: db.OpGet, Err: errors.New("timeout")}
		},
		setFn: func(context.Context, string, []byte) error {
			writes++
			return nil
		},
	}
	m := New(ms, "amante:", false, 0, nil, zap.NewNop())

	if err := m.Mirror(context.Background(), menu.DomainFood, []byte("{}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if writes != 1 {
		t.Errorf("expected 1 write, got %d", writes)
	}
}
