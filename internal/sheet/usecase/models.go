package usecase

import (
	"io"
	"time"
)

type UploadInput struct {
	Name     string
	MimeType string
	Size     int64
	Owner    string
	Body     io.Reader
}

type UploadResult struct {
	FileID       string
	OriginalName string
	RowCount     int64
}

type FileDetailsResult struct {
	FileID       string
	OriginalName string
	UploadedAt   time.Time
	Columns      []string
	ColumnCount  int
	TotalRows    int64
}

type StatsResult struct {
	Total     int64
	Processed int64
	// Failed is reserved; uploads that cannot be decoded are rejected, not stored.
	Failed int64
}
