package inbound

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gosheet/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
	"github.com/shandysiswandi/gosheet/internal/sheet/usecase"
)

const (
	// HeaderUserID carries the opaque caller identity issued upstream.
	HeaderUserID = "X-User-ID"
	// HeaderFileName names the document when it is sent as a raw request body.
	HeaderFileName = "X-File-Name"
)

type HTTPEndpoint struct {
	uc             uc
	maxUploadBytes int64
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes)

	doc, cleanup, err := extractDocument(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := h.uc.Upload(ctx, usecase.UploadInput{
		Name:     doc.name,
		MimeType: doc.mimeType,
		Size:     doc.size,
		Owner:    strings.TrimSpace(r.Header.Get(HeaderUserID)),
		Body:     doc.body,
	})
	if err != nil {
		return nil, tooLarge(err)
	}

	return UploadResponse{
		FileID:       result.FileID,
		OriginalName: result.OriginalName,
		RowCount:     result.RowCount,
	}, nil
}

func (h *HTTPEndpoint) Columns(ctx context.Context, r *http.Request) (any, error) {
	fileID := fileIDFromQuery(r)

	columns, err := h.uc.Columns(ctx, fileID)
	if err != nil {
		return nil, err
	}

	return ColumnsResponse{FileID: fileID, Columns: columns}, nil
}

func (h *HTTPEndpoint) FileDetails(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.FileDetails(ctx, fileIDFromQuery(r))
	if err != nil {
		return nil, err
	}

	return FileDetailsResponse{
		FileID:       result.FileID,
		OriginalName: result.OriginalName,
		UploadedAt:   result.UploadedAt,
		Columns:      result.Columns,
		ColumnCount:  result.ColumnCount,
		TotalRows:    result.TotalRows,
	}, nil
}

func (h *HTTPEndpoint) Plot(ctx context.Context, r *http.Request) (any, error) {
	fileID := fileIDFromQuery(r)

	points, err := h.uc.Points(ctx, fileID, usecase.AxisSelection{
		X: pkgrouter.Query(r, "x"),
		Y: pkgrouter.Query(r, "y"),
		Z: pkgrouter.Query(r, "z"),
	})
	if err != nil {
		return nil, err
	}

	return PlotResponse{FileID: fileID, Points: points}, nil
}

func (h *HTTPEndpoint) Stats(ctx context.Context, _ *http.Request) (any, error) {
	result, err := h.uc.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return StatsResponse{
		Total:     result.Total,
		Processed: result.Processed,
		Failed:    result.Failed,
	}, nil
}

func (h *HTTPEndpoint) Analyze(ctx context.Context, r *http.Request) (any, error) {
	report, err := h.uc.Analyze(ctx, fileIDFromQuery(r))
	if err != nil {
		return nil, err
	}

	trends := make([]Trend, 0, len(report.Columns))
	for _, c := range report.Columns {
		trends = append(trends, toHTTPTrend(c))
	}

	return AnalyzeResponse{
		FileID:   report.FileID,
		Trends:   trends,
		Analysis: report.Summary(),
	}, nil
}

func toHTTPTrend(c entity.ColumnTrend) Trend {
	return Trend{
		Column:    c.Column,
		Direction: c.Direction,
		Average:   c.Average,
		Min:       c.Min,
		Max:       c.Max,
		Count:     c.Count,
	}
}

// fileIDFromQuery accepts both file_id and the legacy fileId parameter.
func fileIDFromQuery(r *http.Request) string {
	return pkgrouter.Query(r, "file_id", "fileId")
}

type document struct {
	name     string
	mimeType string
	size     int64
	body     io.Reader
}

func extractDocument(r *http.Request) (document, func(), error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return extractMultipartFile(r)
		}
	}

	if r.Body == nil || r.ContentLength == 0 {
		return document{}, func() {}, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	return document{
		name:     strings.TrimSpace(r.Header.Get(HeaderFileName)),
		mimeType: contentType,
		size:     r.ContentLength,
		body:     r.Body,
	}, func() {}, nil
}

func extractMultipartFile(r *http.Request) (document, func(), error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return document{}, func() {}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return document{}, func() {}, pkgerror.NewInvalidInput(errors.New("file part is required"))
			}
			if isTooLarge(err) {
				return document{}, func() {}, pkgerror.NewTooLarge(err)
			}
			return document{}, func() {}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() == "file" {
			return document{
				name:     part.FileName(),
				mimeType: part.Header.Get("Content-Type"),
				body:     part,
			}, func() { _ = part.Close() }, nil
		}
		_ = part.Close()
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// tooLarge reports an upload cut off by the body limit as 413 instead of the
// decoding error the use case saw.
func tooLarge(err error) error {
	if isTooLarge(err) {
		return pkgerror.NewTooLarge(err)
	}
	return err
}
