package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
	"github.com/Viswanath-varre/PM-MABP/internal/store"
)

func restore() {
	latestFileUpload = store.LatestFileUpload
	countUsers = store.CountUsers
	countFileUploads = store.CountFileUploads
	countFileUploadsByCategory = store.CountFileUploadsByCategory
}

func TestDashboardHandler(t *testing.T) {
	e := echo.New()

	newCtx := func() (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("user count error", func(t *testing.T) {
		t.Cleanup(restore)
		countUsers = func(context.Context, database.DB) (int, error) {
			return 0, errors.New("boom")
		}
		ctx, rec := newCtx()
		err := DashboardHandler(nil)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "failed to load dashboard")
		require.NotContains(t, rec.Body.String(), "boom")
	})

	t.Run("category count error", func(t *testing.T) {
		t.Cleanup(restore)
		countUsers = func(context.Context, database.DB) (int, error) { return 4, nil }
		countFileUploads = func(context.Context, database.DB) (int, error) { return 23, nil }
		countFileUploadsByCategory = func(context.Context, database.DB, model.Category) (int, error) {
			return 0, errors.New("count")
		}
		ctx, rec := newCtx()
		err := DashboardHandler(nil)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("latest error", func(t *testing.T) {
		t.Cleanup(restore)
		countUsers = func(context.Context, database.DB) (int, error) { return 4, nil }
		countFileUploads = func(context.Context, database.DB) (int, error) { return 23, nil }
		countFileUploadsByCategory = func(context.Context, database.DB, model.Category) (int, error) {
			return 1, nil
		}
		latestFileUpload = func(context.Context, database.DB, model.Category) (*model.FileUpload, error) {
			return nil, errors.New("latest")
		}
		ctx, rec := newCtx()
		err := DashboardHandler(nil)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		countUsers = func(context.Context, database.DB) (int, error) { return 4, nil }
		countFileUploads = func(context.Context, database.DB) (int, error) { return 23, nil }
		countFileUploadsByCategory = func(_ context.Context, _ database.DB, cat model.Category) (int, error) {
			if cat == model.CategoryAssetMaster {
				return 2, nil
			}
			return 0, nil
		}
		latestFileUpload = func(_ context.Context, _ database.DB, cat model.Category) (*model.FileUpload, error) {
			if cat == model.CategoryAssetMaster {
				return &model.FileUpload{
					ID:         5,
					Category:   cat,
					Filename:   "assets.csv",
					SavedAs:    "asset_master__20260831120000__assets.csv",
					SizeBytes:  64,
					UploadedBy: "Alice",
					UploadedAt: now,
				}, nil
			}
			return nil, nil
		}
		ctx, rec := newCtx()
		err := DashboardHandler(nil)(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, `"user_count":4`)
		require.Contains(t, body, `"upload_count":23`)
		require.Contains(t, body, `"category":"asset_master"`)
		require.Contains(t, body, `"count":2`)
		require.Contains(t, body, "assets.csv")
		require.Contains(t, body, `"category":"gpslog"`)
		require.Contains(t, body, `"latest":null`)
	})
}
