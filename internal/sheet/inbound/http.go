package inbound

import (
	"context"

	"github.com/shandysiswandi/gosheet/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
	"github.com/shandysiswandi/gosheet/internal/sheet/usecase"
)

type uc interface {
	Upload(ctx context.Context, in usecase.UploadInput) (usecase.UploadResult, error)
	Columns(ctx context.Context, fileID string) ([]string, error)
	FileDetails(ctx context.Context, fileID string) (usecase.FileDetailsResult, error)
	Points(ctx context.Context, fileID string, axes usecase.AxisSelection) ([]entity.PlotPoint, error)
	Stats(ctx context.Context) (usecase.StatsResult, error)
	Analyze(ctx context.Context, fileID string) (entity.TrendReport, error)
}

// DefaultMaxUploadBytes bounds the size of an uploaded document when no limit is configured.
const DefaultMaxUploadBytes int64 = 20 << 20

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, maxUploadBytes int64) {
	if maxUploadBytes < 1 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	end := &HTTPEndpoint{uc: uc, maxUploadBytes: maxUploadBytes}

	r.POST("/excel/upload", end.Upload)

	r.GET("/excel/columns", end.Columns)          // ?file_id=
	r.GET("/excel/file-details", end.FileDetails) // ?file_id=
	r.GET("/excel/plot", end.Plot)                // ?file_id=&x=&y=&z=
	r.GET("/excel/stats", end.Stats)
	r.GET("/excel/analyze", end.Analyze) // ?file_id=
}
