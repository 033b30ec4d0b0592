package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/gosheet/internal/sheet/entity"
)

type UploadResponse struct {
	FileID       string `json:"file_id"`
	OriginalName string `json:"original_name"`
	RowCount     int64  `json:"row_count"`
}

func (UploadResponse) StatusCode() int {
	return http.StatusCreated
}

func (UploadResponse) Message() string {
	return "file uploaded successfully"
}

type ColumnsResponse struct {
	FileID  string   `json:"file_id"`
	Columns []string `json:"columns"`
}

type FileDetailsResponse struct {
	FileID       string    `json:"file_id"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Columns      []string  `json:"columns"`
	ColumnCount  int       `json:"column_count"`
	TotalRows    int64     `json:"total_rows"`
}

type PlotResponse struct {
	FileID string             `json:"file_id"`
	Points []entity.PlotPoint `json:"points"`
}

func (r PlotResponse) Message() string {
	if len(r.Points) == 0 {
		return "no numeric rows found for the selected columns"
	}
	return "request has been successfully"
}

func (r PlotResponse) Meta() map[string]any {
	return map[string]any{
		"count": len(r.Points),
	}
}

type StatsResponse struct {
	Total     int64 `json:"total"`
	Processed int64 `json:"processed"`
	Failed    int64 `json:"failed"`
}

type Trend struct {
	Column    string           `json:"column"`
	Direction entity.Direction `json:"direction"`
	Average   float64          `json:"average"`
	Min       float64          `json:"min"`
	Max       float64          `json:"max"`
	Count     int              `json:"count"`
}

type AnalyzeResponse struct {
	FileID   string  `json:"file_id"`
	Trends   []Trend `json:"trends"`
	Analysis string  `json:"analysis"`
}
