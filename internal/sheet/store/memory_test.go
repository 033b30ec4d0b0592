package store

import (
	"context"
	"testing"

	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
)

func TestInMemoryStore_Contract(t *testing.T) {
	t.Parallel()

	runStoreContract(t, NewInMemoryStore())
}

func TestInMemoryStore_RecordsAreIsolatedFromCaller(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()
	records := sampleRecords()

	if err := store.CreateFile(ctx, entity.UploadedFile{ID: "upload-1"}, records); err != nil {
		t.Fatalf("CreateFile() err = %v", err)
	}

	records[0][0].Value = "changed"

	got, err := store.GetRecords(ctx, "upload-1", 1)
	if err != nil {
		t.Fatalf("GetRecords() err = %v", err)
	}
	if v, _ := got[0].Get("a"); v != "1" {
		t.Fatalf("GetRecords() first a = %v, want 1", v)
	}
}
