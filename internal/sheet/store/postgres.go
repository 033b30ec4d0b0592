package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shandysiswandi/gosheet/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkguid"
	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// PostgresStore persists files and records with gorm. Records are ordered by
// a Snowflake id generated in insertion order.
type PostgresStore struct {
	db  *gorm.DB
	ids pkguid.NumberID
}

type fileModel struct {
	ID           string `gorm:"primaryKey;size:64"`
	OriginalName string
	Size         int64
	MimeType     string
	Owner        string `gorm:"index"`
	RowCount     int64
	CreatedAt    time.Time
}

func (fileModel) TableName() string { return "sheet_files" }

type recordModel struct {
	ID     int64  `gorm:"primaryKey;autoIncrement:false"`
	FileID string `gorm:"index;size:64;not null"`
	Data   string `gorm:"type:jsonb;not null"`
}

func (recordModel) TableName() string { return "sheet_records" }

// OpenPostgres connects to PostgreSQL using the given DSN.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// NewPostgresStore migrates the schema and returns a store backed by db.
func NewPostgresStore(db *gorm.DB, ids pkguid.NumberID) (*PostgresStore, error) {
	if err := db.AutoMigrate(&fileModel{}, &recordModel{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &PostgresStore{db: db, ids: ids}, nil
}

func (s *PostgresStore) CreateFile(ctx context.Context, file entity.UploadedFile, records entity.RecordSet) error {
	rows := make([]recordModel, 0, len(records))
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		rows = append(rows, recordModel{ID: s.ids.Generate(), FileID: file.ID, Data: string(raw)})
	}

	fm := fileModel{
		ID:           file.ID,
		OriginalName: file.OriginalName,
		Size:         file.Size,
		MimeType:     file.MimeType,
		Owner:        file.Owner,
		RowCount:     int64(len(rows)),
		CreatedAt:    file.CreatedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fm).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errFileExists()
	}

	return err
}

func (s *PostgresStore) GetFile(ctx context.Context, fileID string) (entity.UploadedFile, error) {
	var fm fileModel
	err := s.db.WithContext(ctx).First(&fm, "id = ?", fileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.UploadedFile{}, pkgerror.ErrNotFound
	}
	if err != nil {
		return entity.UploadedFile{}, err
	}

	return entity.UploadedFile{
		ID:           fm.ID,
		OriginalName: fm.OriginalName,
		Size:         fm.Size,
		MimeType:     fm.MimeType,
		Owner:        fm.Owner,
		CreatedAt:    fm.CreatedAt,
		RowCount:     fm.RowCount,
	}, nil
}

func (s *PostgresStore) GetRecords(ctx context.Context, fileID string, limit int) (entity.RecordSet, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&fileModel{}).Where("id = ?", fileID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, pkgerror.ErrNotFound
	}

	query := s.db.WithContext(ctx).Where("file_id = ?", fileID).Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []recordModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make(entity.RecordSet, 0, len(rows))
	for _, row := range rows {
		var rec entity.Record
		if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", row.ID, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (s *PostgresStore) Stats(ctx context.Context) (entity.FileStats, error) {
	var stats entity.FileStats
	if err := s.db.WithContext(ctx).Model(&fileModel{}).Count(&stats.Total).Error; err != nil {
		return entity.FileStats{}, err
	}

	err := s.db.WithContext(ctx).Model(&recordModel{}).Distinct("file_id").Count(&stats.Processed).Error
	if err != nil {
		return entity.FileStats{}, err
	}

	return stats, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
