package entity

import "time"

type UploadedFile struct {
	ID           string
	OriginalName string
	Size         int64
	MimeType     string
	Owner        string
	CreatedAt    time.Time

	// RowCount is derived from the stored RecordSet.
	RowCount int64
}

type FileStats struct {
	Total     int64
	Processed int64
}
