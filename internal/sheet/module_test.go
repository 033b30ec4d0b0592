package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkguid"
	"github.com/shandysiswandi/gosheet/internal/sheet/store"
)

type testConfig map[string]string

func (c testConfig) Close() error { return nil }

func (c testConfig) GetInt(key string) int64 {
	v, _ := strconv.ParseInt(c[key], 10, 64)
	return v
}

func (c testConfig) GetBool(key string) bool {
	v, _ := strconv.ParseBool(c[key])
	return v
}

func (c testConfig) GetFloat(key string) float64 {
	v, _ := strconv.ParseFloat(c[key], 64)
	return v
}

func (c testConfig) GetString(key string) string { return c[key] }
func (c testConfig) GetBinary(key string) []byte { return []byte(c[key]) }
func (c testConfig) GetArray(key string) []string { return nil }
func (c testConfig) GetMap(key string) map[string]string { return nil }

func TestNewStoreDrivers(t *testing.T) {
	memory, closer, err := newStore(testConfig{})
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	if _, ok := memory.(*store.InMemoryStore); !ok || closer != nil {
		t.Fatalf("expected in-memory store without closer, got %T", memory)
	}

	mr := miniredis.RunT(t)
	rds, closer, err := newStore(testConfig{
		"store.driver":        "redis",
		"store.redis.address": mr.Addr(),
		"store.redis.prefix":  "test:",
	})
	if err != nil {
		t.Fatalf("redis store: %v", err)
	}
	if _, ok := rds.(*store.RedisStore); !ok {
		t.Fatalf("expected redis store, got %T", rds)
	}
	if err := closer(context.Background()); err != nil {
		t.Fatalf("close redis: %v", err)
	}

	if _, _, err := newStore(testConfig{"store.driver": "mongo"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNewRegistersEndpoints(t *testing.T) {
	router := pkgrouter.NewRouter(pkguid.NewUUID())

	closer, err := New(Dependency{Config: testConfig{}, Router: router})
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if closer != nil {
		t.Fatal("in-memory module must not return a closer")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/excel/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
