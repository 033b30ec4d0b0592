package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gosheet/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkguid"
	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
)

// Store persists uploaded files together with their records.
//
// CreateFile writes the file and its whole RecordSet as one batch. GetRecords
// returns records in insertion order; a limit below 1 returns all of them.
// Unknown files are reported with pkgerror.ErrNotFound.
type Store interface {
	CreateFile(ctx context.Context, file entity.UploadedFile, records entity.RecordSet) error
	GetFile(ctx context.Context, fileID string) (entity.UploadedFile, error)
	GetRecords(ctx context.Context, fileID string, limit int) (entity.RecordSet, error)
	Stats(ctx context.Context) (entity.FileStats, error)
}

type Metrics interface {
	ObserveUpload(status string, rows int)
	ObserveAnalysis(status string)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store          Store
	Metrics        Metrics
	Clock          Clock
	ID             pkguid.StringID
	PointScanLimit int
}

type Usecase struct {
	store      Store
	metrics    Metrics
	clock      Clock
	id         pkguid.StringID
	pointLimit int
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	metrics := dep.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	limit := dep.PointScanLimit
	if limit < 1 {
		limit = PointScanLimit
	}

	return &Usecase{
		store:      dep.Store,
		metrics:    metrics,
		clock:      clock,
		id:         dep.ID,
		pointLimit: limit,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) ObserveUpload(string, int) {}
func (noopMetrics) ObserveAnalysis(string)    {}

func (u *Usecase) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if u.store == nil || u.id == nil {
		return UploadResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}
	if in.Body == nil {
		return UploadResult{}, pkgerror.NewInvalidInput(errors.New("file is required"))
	}

	data, err := io.ReadAll(in.Body)
	if err != nil {
		u.metrics.ObserveUpload("rejected", 0)
		return UploadResult{}, pkgerror.NewInvalidInput(fmt.Errorf("read upload: %w", err))
	}

	records, err := u.normalize(ctx, in.Name, data)
	if err != nil {
		u.metrics.ObserveUpload("rejected", 0)
		return UploadResult{}, mapDomainErr(err)
	}

	size := in.Size
	if size <= 0 {
		size = int64(len(data))
	}

	file := entity.UploadedFile{
		ID:           u.id.Generate(),
		OriginalName: in.Name,
		Size:         size,
		MimeType:     in.MimeType,
		Owner:        in.Owner,
		CreatedAt:    u.clock.Now(),
		RowCount:     int64(len(records)),
	}

	if err := u.store.CreateFile(ctx, file, records); err != nil {
		slog.ErrorContext(ctx, "failed to store uploaded file", "file_id", file.ID, "error", err)
		u.metrics.ObserveUpload("failed", 0)
		return UploadResult{}, normalizeErr(err)
	}

	slog.InfoContext(ctx, "upload ingested", "file_id", file.ID, "name", file.OriginalName, "rows", file.RowCount)
	u.metrics.ObserveUpload("ingested", len(records))

	return UploadResult{
		FileID:       file.ID,
		OriginalName: file.OriginalName,
		RowCount:     file.RowCount,
	}, nil
}

func (u *Usecase) Columns(ctx context.Context, fileID string) ([]string, error) {
	if fileID == "" {
		return nil, mapDomainErr(entity.ErrMissingFileID)
	}

	records, err := u.store.GetRecords(ctx, fileID, 1)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return BuildColumnCatalog(records), nil
}

func (u *Usecase) FileDetails(ctx context.Context, fileID string) (FileDetailsResult, error) {
	if fileID == "" {
		return FileDetailsResult{}, mapDomainErr(entity.ErrMissingFileID)
	}

	file, err := u.store.GetFile(ctx, fileID)
	if err != nil {
		return FileDetailsResult{}, mapStoreErr(err)
	}

	records, err := u.store.GetRecords(ctx, fileID, 1)
	if err != nil {
		return FileDetailsResult{}, mapStoreErr(err)
	}

	columns := BuildColumnCatalog(records)

	return FileDetailsResult{
		FileID:       file.ID,
		OriginalName: file.OriginalName,
		UploadedAt:   file.CreatedAt,
		Columns:      columns,
		ColumnCount:  len(columns),
		TotalRows:    file.RowCount,
	}, nil
}

func (u *Usecase) Points(ctx context.Context, fileID string, axes AxisSelection) ([]entity.PlotPoint, error) {
	axes = axes.normalize()
	if axes.X == "" || axes.Y == "" {
		return nil, mapDomainErr(entity.ErrMissingAxisSelection)
	}
	if fileID == "" {
		return nil, mapDomainErr(entity.ErrMissingFileID)
	}

	records, err := u.store.GetRecords(ctx, fileID, u.pointLimit)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	points, err := ExtractPoints(records, axes, u.pointLimit)
	if err != nil {
		return nil, mapDomainErr(err)
	}

	return points, nil
}

func (u *Usecase) Stats(ctx context.Context) (StatsResult, error) {
	stats, err := u.store.Stats(ctx)
	if err != nil {
		return StatsResult{}, normalizeErr(err)
	}

	return StatsResult{
		Total:     stats.Total,
		Processed: stats.Processed,
	}, nil
}

func (u *Usecase) Analyze(ctx context.Context, fileID string) (entity.TrendReport, error) {
	if fileID == "" {
		return entity.TrendReport{}, mapDomainErr(entity.ErrMissingFileID)
	}

	records, err := u.store.GetRecords(ctx, fileID, 0)
	if err != nil && !errors.Is(err, pkgerror.ErrNotFound) {
		u.metrics.ObserveAnalysis("failed")
		return entity.TrendReport{}, normalizeErr(err)
	}

	report, err := AnalyzeTrends(fileID, records)
	if err != nil {
		u.metrics.ObserveAnalysis("no_data")
		return entity.TrendReport{}, mapDomainErr(err)
	}

	u.metrics.ObserveAnalysis("ok")
	return report, nil
}

func (u *Usecase) normalize(ctx context.Context, name string, data []byte) (entity.RecordSet, error) {
	if len(data) == 0 {
		return nil, entity.ErrEmptyOrInvalidDocument
	}

	rows, err := decodeDocument(name, data)
	if err != nil {
		slog.WarnContext(ctx, "failed to decode uploaded document", "name", name, "error", err)
		return nil, entity.ErrEmptyOrInvalidDocument
	}

	return NormalizeRows(rows)
}

func mapDomainErr(err error) error {
	switch {
	case errors.Is(err, entity.ErrNoDataForFile):
		return pkgerror.NewBusinessFrom(err, pkgerror.CodeNotFound)
	case errors.Is(err, entity.ErrEmptyOrInvalidDocument),
		errors.Is(err, entity.ErrMissingAxisSelection),
		errors.Is(err, entity.ErrMissingFileID):
		return pkgerror.NewBusinessFrom(err, pkgerror.CodeInvalidInput)
	default:
		return normalizeErr(err)
	}
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("file not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	if perr, ok := pkgerror.As(err); ok {
		return perr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return pkgerror.NewTimeout(err)
	}
	return pkgerror.NewServer(err)
}
