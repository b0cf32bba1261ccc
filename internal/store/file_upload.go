package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
)

func CreateFileUpload(ctx context.Context, db database.DB, f *model.FileUpload) (*model.FileUpload, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO file_uploads (category, filename, saved_as, size_bytes, uploaded_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, uploaded_at`,
		f.Category,
		f.Filename,
		f.SavedAs,
		f.SizeBytes,
		f.UploadedBy,
	)
	if err := row.Scan(&f.ID, &f.UploadedAt); err != nil {
		return nil, fmt.Errorf("CreateFileUpload: %w", err)
	}
	return f, nil
}

// LatestFileUpload returns the most recent row for the category, or nil when
// the category has no uploads yet. Same-second ties break on id.
func LatestFileUpload(ctx context.Context, db database.DB, category model.Category) (*model.FileUpload, error) {
	row := db.QueryRow(ctx,
		`SELECT id, category, filename, saved_as, size_bytes, uploaded_by, uploaded_at
		 FROM file_uploads WHERE category = $1
		 ORDER BY uploaded_at DESC, id DESC
		 LIMIT 1`,
		category,
	)
	f := &model.FileUpload{}
	if err := row.Scan(
		&f.ID,
		&f.Category,
		&f.Filename,
		&f.SavedAs,
		&f.SizeBytes,
		&f.UploadedBy,
		&f.UploadedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("LatestFileUpload: %w", err)
	}
	return f, nil
}

func ListFileUploads(ctx context.Context, db database.DB, category model.Category, limit int) ([]model.FileUpload, error) {
	rows, err := db.Query(ctx,
		`SELECT id, category, filename, saved_as, size_bytes, uploaded_by, uploaded_at
		 FROM file_uploads WHERE category = $1
		 ORDER BY uploaded_at DESC, id DESC
		 LIMIT $2`,
		category,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListFileUploads: %w", err)
	}
	defer rows.Close()

	var uploads []model.FileUpload
	for rows.Next() {
		var f model.FileUpload
		if err := rows.Scan(
			&f.ID,
			&f.Category,
			&f.Filename,
			&f.SavedAs,
			&f.SizeBytes,
			&f.UploadedBy,
			&f.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("ListFileUploads: %w", err)
		}
		uploads = append(uploads, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListFileUploads: %w", err)
	}
	return uploads, nil
}

func CountFileUploads(ctx context.Context, db database.DB) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM file_uploads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountFileUploads: %w", err)
	}
	return n, nil
}

func CountFileUploadsByCategory(ctx context.Context, db database.DB, category model.Category) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM file_uploads WHERE category = $1`, category).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountFileUploadsByCategory: %w", err)
	}
	return n, nil
}
