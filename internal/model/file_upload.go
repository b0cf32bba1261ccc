// File: internal/model/file_upload.go
package model

import "time"

// FileUpload is the metadata row recorded for one uploaded blob.
// Rows are immutable after insert; blob bytes live in the upload directory
// under SavedAs.
type FileUpload struct {
	ID         int       `db:"id" json:"id"`
	Category   Category  `db:"category" json:"category"`
	Filename   string    `db:"filename" json:"filename"`
	SavedAs    string    `db:"saved_as" json:"saved_as"`
	SizeBytes  int64     `db:"size_bytes" json:"size_bytes"`
	UploadedBy string    `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}
