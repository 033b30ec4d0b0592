package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shandysiswandi/gosheet/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
	"github.com/shandysiswandi/gosheet/internal/sheet/usecase"
)

func sampleRecords() entity.RecordSet {
	return entity.RecordSet{
		{{Column: "a", Value: "1"}, {Column: "b", Value: "10"}},
		{{Column: "a", Value: "2"}, {Column: "b", Value: "20"}},
		{{Column: "a", Value: "3"}, {Column: "c", Value: "x"}},
	}
}

// runStoreContract checks the behavior every usecase.Store must share.
func runStoreContract(t *testing.T, store usecase.Store) {
	t.Helper()

	ctx := context.Background()
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	file := entity.UploadedFile{
		ID:           "file-1",
		OriginalName: "sales.xlsx",
		Size:         2048,
		MimeType:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Owner:        "user-1",
		CreatedAt:    createdAt,
	}

	if err := store.CreateFile(ctx, file, sampleRecords()); err != nil {
		t.Fatalf("CreateFile() err = %v", err)
	}

	t.Run("Duplicate", func(t *testing.T) {
		err := store.CreateFile(ctx, file, sampleRecords())
		var perr *pkgerror.Error
		if !errors.As(err, &perr) {
			t.Fatalf("CreateFile() expected pkgerror.Error, got %T", err)
		}
		if perr.Code() != pkgerror.CodeConflict {
			t.Fatalf("CreateFile() error code = %v, want %v", perr.Code(), pkgerror.CodeConflict)
		}
	})

	t.Run("GetFile", func(t *testing.T) {
		got, err := store.GetFile(ctx, file.ID)
		if err != nil {
			t.Fatalf("GetFile() err = %v", err)
		}
		if got.OriginalName != file.OriginalName || got.Owner != file.Owner || got.Size != file.Size {
			t.Fatalf("GetFile() = %+v, want %+v", got, file)
		}
		if got.RowCount != 3 {
			t.Fatalf("GetFile() row count = %d, want 3", got.RowCount)
		}
		if !got.CreatedAt.Equal(createdAt) {
			t.Fatalf("GetFile() created at = %v, want %v", got.CreatedAt, createdAt)
		}
	})

	t.Run("GetRecordsPreservesOrder", func(t *testing.T) {
		got, err := store.GetRecords(ctx, file.ID, 0)
		if err != nil {
			t.Fatalf("GetRecords() err = %v", err)
		}
		if !reflect.DeepEqual(got, sampleRecords()) {
			t.Fatalf("GetRecords() = %+v, want %+v", got, sampleRecords())
		}
	})

	t.Run("GetRecordsLimit", func(t *testing.T) {
		got, err := store.GetRecords(ctx, file.ID, 2)
		if err != nil {
			t.Fatalf("GetRecords() err = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("GetRecords() len = %d, want 2", len(got))
		}
		if !reflect.DeepEqual(got[1], sampleRecords()[1]) {
			t.Fatalf("GetRecords() second = %+v", got[1])
		}
	})

	t.Run("Stats", func(t *testing.T) {
		if err := store.CreateFile(ctx, entity.UploadedFile{ID: "file-2", CreatedAt: createdAt}, nil); err != nil {
			t.Fatalf("CreateFile() err = %v", err)
		}

		stats, err := store.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats() err = %v", err)
		}
		if stats.Total != 2 || stats.Processed != 1 {
			t.Fatalf("Stats() = %+v, want total=2 processed=1", stats)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := store.GetFile(ctx, "missing"); !errors.Is(err, pkgerror.ErrNotFound) {
			t.Fatalf("GetFile() err = %v, want ErrNotFound", err)
		}
		if _, err := store.GetRecords(ctx, "missing", 0); !errors.Is(err, pkgerror.ErrNotFound) {
			t.Fatalf("GetRecords() err = %v, want ErrNotFound", err)
		}
	})
}
