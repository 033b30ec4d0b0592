package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
)

// RedisStore keeps file metadata as a JSON string and records as a list of
// JSON documents, one list per file.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

type redisFile struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mime_type"`
	Owner        string    `json:"owner"`
	CreatedAt    time.Time `json:"created_at"`
	RowCount     int64     `json:"row_count"`
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "gosheet:"
	}

	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) CreateFile(ctx context.Context, file entity.UploadedFile, records entity.RecordSet) error {
	rows := make([]any, 0, len(records))
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		rows = append(rows, raw)
	}

	file.RowCount = int64(len(records))
	meta, err := json.Marshal(redisFile{
		ID:           file.ID,
		OriginalName: file.OriginalName,
		Size:         file.Size,
		MimeType:     file.MimeType,
		Owner:        file.Owner,
		CreatedAt:    file.CreatedAt,
		RowCount:     file.RowCount,
	})
	if err != nil {
		return fmt.Errorf("encode file: %w", err)
	}

	key := s.fileKey(file.ID)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return errFileExists()
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(rows) > 0 {
				pipe.RPush(ctx, s.rowsKey(file.ID), rows...)
				pipe.SAdd(ctx, s.processedKey(), file.ID)
			}
			pipe.Set(ctx, key, meta, 0)
			pipe.SAdd(ctx, s.filesKey(), file.ID)
			return nil
		})
		return err
	}, key)

	// the file key changed between WATCH and EXEC: another upload won
	if errors.Is(err, redis.TxFailedErr) {
		return errFileExists()
	}

	return err
}

func (s *RedisStore) GetFile(ctx context.Context, fileID string) (entity.UploadedFile, error) {
	raw, err := s.client.Get(ctx, s.fileKey(fileID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.UploadedFile{}, pkgerror.ErrNotFound
	}
	if err != nil {
		return entity.UploadedFile{}, err
	}

	var doc redisFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entity.UploadedFile{}, fmt.Errorf("decode file: %w", err)
	}

	return entity.UploadedFile{
		ID:           doc.ID,
		OriginalName: doc.OriginalName,
		Size:         doc.Size,
		MimeType:     doc.MimeType,
		Owner:        doc.Owner,
		CreatedAt:    doc.CreatedAt,
		RowCount:     doc.RowCount,
	}, nil
}

func (s *RedisStore) GetRecords(ctx context.Context, fileID string, limit int) (entity.RecordSet, error) {
	n, err := s.client.Exists(ctx, s.fileKey(fileID)).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, pkgerror.ErrNotFound
	}

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	raws, err := s.client.LRange(ctx, s.rowsKey(fileID), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	records := make(entity.RecordSet, 0, len(raws))
	for _, raw := range raws {
		var rec entity.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (s *RedisStore) Stats(ctx context.Context) (entity.FileStats, error) {
	total, err := s.client.SCard(ctx, s.filesKey()).Result()
	if err != nil {
		return entity.FileStats{}, err
	}

	processed, err := s.client.SCard(ctx, s.processedKey()).Result()
	if err != nil {
		return entity.FileStats{}, err
	}

	return entity.FileStats{Total: total, Processed: processed}, nil
}

func (s *RedisStore) fileKey(id string) string { return s.prefix + "file:" + id }
func (s *RedisStore) rowsKey(id string) string { return s.prefix + "rows:" + id }
func (s *RedisStore) filesKey() string         { return s.prefix + "files" }
func (s *RedisStore) processedKey() string     { return s.prefix + "processed" }
