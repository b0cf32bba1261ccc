package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
)

// fakeUploadRow 支援三種 Scan 呼叫場景：
// 1) len(dest)==7 → LatestFileUpload / List 掃描
// 2) len(dest)==2 → CreateFileUpload (id, uploaded_at)
// 3) len(dest)==1 → CountFileUploads
type fakeUploadRow struct {
	scanErr error
	upload  *model.FileUpload
	count   int
}

func (r *fakeUploadRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	f := r.upload
	switch len(dest) {
	case 7:
		*dest[0].(*int) = f.ID
		*dest[1].(*model.Category) = f.Category
		*dest[2].(*string) = f.Filename
		*dest[3].(*string) = f.SavedAs
		*dest[4].(*int64) = f.SizeBytes
		*dest[5].(*string) = f.UploadedBy
		*dest[6].(*time.Time) = f.UploadedAt
	case 2:
		*dest[0].(*int) = f.ID
		*dest[1].(*time.Time) = f.UploadedAt
	case 1:
		*dest[0].(*int) = r.count
	default:
		panic("fakeUploadRow.Scan: unexpected dest count")
	}
	return nil
}

type fakeUploadRows struct {
	uploads []model.FileUpload
	idx     int
	scanErr error
	rowsErr error
}

func (r *fakeUploadRows) Close()                                       {}
func (r *fakeUploadRows) Err() error                                   { return r.rowsErr }
func (r *fakeUploadRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeUploadRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeUploadRows) Next() bool {
	if r.idx < len(r.uploads) {
		r.idx++
		return true
	}
	return false
}
func (r *fakeUploadRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := &fakeUploadRow{upload: &r.uploads[r.idx-1]}
	return row.Scan(dest...)
}
func (r *fakeUploadRows) Values() ([]any, error) { return nil, nil }
func (r *fakeUploadRows) RawValues() [][]byte    { return nil }
func (r *fakeUploadRows) Conn() *pgx.Conn        { return nil }

func TestFileUploadStore(t *testing.T) {
	now := time.Now().UTC()
	sample := &model.FileUpload{
		ID:         5,
		Category:   model.CategoryMaintenance,
		Filename:   "report.csv",
		SavedAs:    "maintenance__20260831120000__report.csv",
		SizeBytes:  128,
		UploadedBy: "9000000001",
		UploadedAt: now,
	}

	t.Run("CreateFileUpload success", func(t *testing.T) {
		rec := &model.FileUpload{Category: model.CategoryHSD, Filename: "a.csv", SavedAs: "hsd__x__a.csv", SizeBytes: 9, UploadedBy: "admin"}
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				f := *rec
				f.ID = 11
				f.UploadedAt = now
				return &fakeUploadRow{upload: &f}
			},
		}
		created, err := CreateFileUpload(context.Background(), db, rec)
		require.NoError(t, err)
		require.Equal(t, 11, created.ID)
		require.WithinDuration(t, now, created.UploadedAt, time.Second)
	})

	t.Run("CreateFileUpload error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUploadRow{scanErr: errors.New("insert failed")}
			},
		}
		_, err := CreateFileUpload(context.Background(), db, &model.FileUpload{})
		require.Error(t, err)
	})

	t.Run("LatestFileUpload success", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUploadRow{upload: sample}
			},
		}
		f, err := LatestFileUpload(context.Background(), db, model.CategoryMaintenance)
		require.NoError(t, err)
		require.Equal(t, sample.SavedAs, f.SavedAs)
	})

	t.Run("LatestFileUpload no rows is not an error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUploadRow{scanErr: pgx.ErrNoRows}
			},
		}
		f, err := LatestFileUpload(context.Background(), db, model.CategoryGPSLog)
		require.NoError(t, err)
		require.Nil(t, f)
	})

	t.Run("LatestFileUpload scan error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUploadRow{scanErr: errors.New("boom")}
			},
		}
		_, err := LatestFileUpload(context.Background(), db, model.CategoryGPSLog)
		require.Error(t, err)
	})

	t.Run("ListFileUploads success", func(t *testing.T) {
		second := *sample
		second.ID = 6
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeUploadRows{uploads: []model.FileUpload{second, *sample}}, nil
			},
		}
		uploads, err := ListFileUploads(context.Background(), db, model.CategoryMaintenance, 10)
		require.NoError(t, err)
		require.Len(t, uploads, 2)
		require.Equal(t, 6, uploads[0].ID)
	})

	t.Run("ListFileUploads query error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return nil, errors.New("q")
			},
		}
		_, err := ListFileUploads(context.Background(), db, model.CategoryMaintenance, 10)
		require.Error(t, err)
	})

	t.Run("ListFileUploads scan error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeUploadRows{uploads: []model.FileUpload{*sample}, scanErr: errors.New("scan")}, nil
			},
		}
		_, err := ListFileUploads(context.Background(), db, model.CategoryMaintenance, 10)
		require.Error(t, err)
	})

	t.Run("ListFileUploads rows error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeUploadRows{rowsErr: errors.New("rows")}, nil
			},
		}
		_, err := ListFileUploads(context.Background(), db, model.CategoryMaintenance, 10)
		require.Error(t, err)
	})

	t.Run("CountFileUploads", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUploadRow{count: 12}
			},
		}
		n, err := CountFileUploads(context.Background(), db)
		require.NoError(t, err)
		require.Equal(t, 12, n)
	})

	t.Run("CountFileUploads error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUploadRow{scanErr: errors.New("count")}
			},
		}
		_, err := CountFileUploads(context.Background(), db)
		require.Error(t, err)
	})

	t.Run("CountFileUploadsByCategory", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeUploadRow{count: 3}
			},
		}
		n, err := CountFileUploadsByCategory(context.Background(), db, model.CategoryHSD)
		require.NoError(t, err)
		require.Equal(t, 3, n)
		require.Equal(t, []any{model.CategoryHSD}, gotArgs)
	})

	t.Run("CountFileUploadsByCategory error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeUploadRow{scanErr: errors.New("count")}
			},
		}
		_, err := CountFileUploadsByCategory(context.Background(), db, model.CategoryHSD)
		require.Error(t, err)
	})
}
