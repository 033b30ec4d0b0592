package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
)

func TestRedisStore_Contract(t *testing.T) {
	t.Parallel()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	runStoreContract(t, NewRedisStore(client, "test:"))

	if !srv.Exists("test:rows:file-1") {
		t.Fatal("expected rows list to be stored under prefix")
	}
	if srv.Exists("test:rows:file-2") {
		t.Fatal("did not expect rows list for empty file")
	}
}

func TestRedisStore_ConcurrentCreateSameID(t *testing.T) {
	t.Parallel()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStore(client, "race:")
	file := entity.UploadedFile{ID: "same", OriginalName: "a.csv", CreatedAt: time.Now()}

	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.CreateFile(context.Background(), file, sampleRecords())
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		perr, ok := pkgerror.As(err)
		if !ok || perr.Code() != pkgerror.CodeConflict {
			t.Fatalf("CreateFile() err = %v, want conflict", err)
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one successful create, got %d", created)
	}

	rows, err := client.LLen(context.Background(), "race:rows:same").Result()
	if err != nil {
		t.Fatalf("LLen() err = %v", err)
	}
	if rows != int64(len(sampleRecords())) {
		t.Fatalf("expected %d stored rows, got %d", len(sampleRecords()), rows)
	}
}
