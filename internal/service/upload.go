// File: internal/service/upload.go
package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
	"github.com/Viswanath-varre/PM-MABP/internal/storage"
	"github.com/Viswanath-varre/PM-MABP/internal/store"
)

// MaxUploadBytes caps a single upload. Matches the transport-level body limit.
const MaxUploadBytes = 128 << 20

var allowedExtensions = map[string]struct{}{
	"csv":  {},
	"xlsx": {},
	"xls":  {},
}

var (
	createFileUpload = store.CreateFileUpload
	nowUTC           = func() time.Time { return time.Now().UTC() }
)

// UploadResult reports a processed upload. Warning is non-empty for the
// partial-success case: blob written, metadata row not persisted.
type UploadResult struct {
	Record  *model.FileUpload
	Warning string
}

// AllowedFile reports whether the filename carries an accepted tabular
// extension (case-insensitive).
func AllowedFile(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[ext]
	return ok
}

// StoredName derives the collision-avoided blob name. The category/timestamp
// prefix makes blobs sort naturally by category then recency. Two uploads of
// the same filename to the same category within one second still collide;
// accepted limitation.
func StoredName(category model.Category, at time.Time, sanitized string) string {
	return fmt.Sprintf("%s__%s__%s", category, at.UTC().Format("20060102150405"), sanitized)
}

// SubmitUpload runs the upload pipeline: validate, sanitize, derive the stored
// name, write the blob, record metadata. The recorded size is measured from
// the bytes actually written, never the client-declared size.
func SubmitUpload(ctx context.Context, db database.DB, blobs storage.Store, category model.Category, uploadedBy, filename string, r io.Reader, declaredSize int64) (*UploadResult, error) {
	if r == nil || strings.TrimSpace(filename) == "" {
		return nil, ErrNoFile
	}
	if declaredSize > MaxUploadBytes {
		return nil, ErrTooLarge
	}
	if !AllowedFile(filename) {
		return nil, ErrUnsupportedType
	}

	sanitized := SanitizeFilename(filename)
	if sanitized == "" {
		return nil, ErrNoFile
	}

	savedAs := StoredName(category, nowUTC(), sanitized)
	size, err := blobs.Save(savedAs, r)
	if err != nil {
		return nil, fmt.Errorf("SubmitUpload: %w", err)
	}

	rec := &model.FileUpload{
		Category:   category,
		Filename:   sanitized,
		SavedAs:    savedAs,
		SizeBytes:  size,
		UploadedBy: uploadedBy,
	}
	if _, err := createFileUpload(ctx, db, rec); err != nil {
		// Blob landed but the record did not: keep the blob and tell the
		// caller, so a later reconciliation can pick it up.
		return &UploadResult{
			Record:  rec,
			Warning: "file stored but its upload record was not persisted",
		}, nil
	}
	return &UploadResult{Record: rec}, nil
}
