package store

import (
	"context"
	"sync"

	"github.com/shandysiswandi/gosheet/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	files map[string]*fileRecord
}

type fileRecord struct {
	meta    entity.UploadedFile
	records entity.RecordSet
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		files: make(map[string]*fileRecord),
	}
}

func (s *InMemoryStore) CreateFile(ctx context.Context, file entity.UploadedFile, records entity.RecordSet) error {
	batch := make(entity.RecordSet, len(records))
	for i, rec := range records {
		batch[i] = cloneRecord(rec)
	}
	file.RowCount = int64(len(batch))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[file.ID]; exists {
		return errFileExists()
	}

	s.files[file.ID] = &fileRecord{
		meta:    file,
		records: batch,
	}

	return nil
}

func (s *InMemoryStore) GetFile(ctx context.Context, fileID string) (entity.UploadedFile, error) {
	rec, err := s.get(fileID)
	if err != nil {
		return entity.UploadedFile{}, err
	}

	return rec.meta, nil
}

func (s *InMemoryStore) GetRecords(ctx context.Context, fileID string, limit int) (entity.RecordSet, error) {
	rec, err := s.get(fileID)
	if err != nil {
		return nil, err
	}

	n := len(rec.records)
	if limit > 0 && limit < n {
		n = limit
	}

	// stored records are immutable; only the slice header is copied
	out := make(entity.RecordSet, n)
	copy(out, rec.records[:n])

	return out, nil
}

func (s *InMemoryStore) Stats(ctx context.Context) (entity.FileStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := entity.FileStats{Total: int64(len(s.files))}
	for _, rec := range s.files {
		if len(rec.records) > 0 {
			stats.Processed++
		}
	}

	return stats, nil
}

func (s *InMemoryStore) get(fileID string) (*fileRecord, error) {
	s.mu.RLock()
	rec, ok := s.files[fileID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}

func cloneRecord(rec entity.Record) entity.Record {
	out := make(entity.Record, len(rec))
	copy(out, rec)
	return out
}

// errFileExists is returned by every store when a file id is reused.
func errFileExists() error {
	return pkgerror.NewBusiness("file already exists", pkgerror.CodeConflict)
}
