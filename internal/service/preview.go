// File: internal/service/preview.go
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/Viswanath-varre/PM-MABP/internal/cache"
	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
	"github.com/Viswanath-varre/PM-MABP/internal/storage"
	"github.com/Viswanath-varre/PM-MABP/internal/store"
)

const (
	// PreviewMaxColumns and PreviewMaxRows bound the preview; the header row
	// does not count against the row cap.
	PreviewMaxColumns = 12
	PreviewMaxRows    = 20

	previewKeyPrefix = "preview:"
	previewCacheTTL  = 10 * time.Minute
)

var (
	latestFileUpload      = store.LatestFileUpload
	legacyWorkbookPreview = previewLegacyWorkbook
)

// Preview is always well-formed: empty slices rather than nil, and either a
// usable table or a human-readable Error. Cells are strings regardless of the
// source format.
type Preview struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Error   string     `json:"error,omitempty"`
}

func emptyPreview(msg string) *Preview {
	return &Preview{Headers: []string{}, Rows: [][]string{}, Error: msg}
}

func previewKey(category model.Category, savedAs string) string {
	return previewKeyPrefix + string(category) + ":" + savedAs
}

// BuildPreview loads the most recent upload for the category and extracts a
// bounded preview. It never returns an error: every failure is folded into
// the Preview's Error string. A category with no uploads yields an empty
// preview with no error.
func BuildPreview(ctx context.Context, db database.DB, blobs storage.Store, category model.Category) *Preview {
	latest, err := latestFileUpload(ctx, db, category)
	if err != nil {
		return emptyPreview("failed to load upload history")
	}
	if latest == nil {
		return emptyPreview("")
	}
	return previewOf(blobs, latest)
}

// CachedPreview is BuildPreview behind a Redis cache keyed by the latest
// stored name; a newer upload changes the key and misses naturally. Pass a
// nil cache to bypass.
func CachedPreview(ctx context.Context, db database.DB, rdb cache.Cache, blobs storage.Store, category model.Category) *Preview {
	latest, err := latestFileUpload(ctx, db, category)
	if err != nil {
		return emptyPreview("failed to load upload history")
	}
	if latest == nil {
		return emptyPreview("")
	}
	return CachedPreviewOf(ctx, rdb, blobs, latest)
}

// CachedPreviewOf 是 CachedPreview 的下半段：呼叫端已經查過最新上傳時直接帶入,
// 不再查一次資料庫。
func CachedPreviewOf(ctx context.Context, rdb cache.Cache, blobs storage.Store, latest *model.FileUpload) *Preview {
	key := previewKey(latest.Category, latest.SavedAs)
	if rdb != nil {
		if raw, err := rdb.Get(ctx, key).Result(); err == nil {
			var p Preview
			if json.Unmarshal([]byte(raw), &p) == nil {
				return &p
			}
		}
	}

	p := previewOf(blobs, latest)
	if rdb != nil && p.Error == "" {
		if raw, err := json.Marshal(p); err == nil {
			rdb.Set(ctx, key, raw, previewCacheTTL)
		}
	}
	return p
}

// previewOf parses by the ORIGINAL filename's extension; the stored name
// always embeds it but the metadata row is authoritative.
func previewOf(blobs storage.Store, latest *model.FileUpload) *Preview {
	rc, err := blobs.Open(latest.SavedAs)
	if err != nil {
		return emptyPreview("stored file could not be opened")
	}
	defer rc.Close()

	name := strings.ToLower(latest.Filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return previewCSV(rc)
	case strings.HasSuffix(name, ".xls"):
		return legacyWorkbookPreview(rc)
	default:
		return previewWorkbook(rc)
	}
}

func previewCSV(r io.Reader) *Preview {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return emptyPreview("file contains no rows")
	}
	if err != nil {
		return emptyPreview("could not parse the file as CSV")
	}

	p := &Preview{Headers: clampRow(header), Rows: [][]string{}}
	for len(p.Rows) < PreviewMaxRows {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return emptyPreview("could not parse the file as CSV")
		}
		p.Rows = append(p.Rows, clampRow(rec))
	}
	return p
}

func previewWorkbook(r io.Reader) *Preview {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return emptyPreview("could not read the workbook")
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return emptyPreview("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return emptyPreview(fmt.Sprintf("could not read sheet %q", sheets[0]))
	}
	if len(rows) == 0 {
		return emptyPreview("file contains no rows")
	}

	p := &Preview{Headers: clampRow(rows[0]), Rows: [][]string{}}
	for _, row := range rows[1:] {
		if len(p.Rows) == PreviewMaxRows {
			break
		}
		p.Rows = append(p.Rows, clampRow(row))
	}
	return p
}

// previewLegacyWorkbook 處理 BIFF 格式的 .xls。excelize 只認 OOXML 容器,
// 舊格式交給 xlsReader。
func previewLegacyWorkbook(r io.Reader) *Preview {
	raw, err := io.ReadAll(r)
	if err != nil {
		return emptyPreview("could not read the workbook")
	}
	wb, err := xls.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return emptyPreview("could not read the workbook")
	}

	sh, err := wb.GetSheet(0)
	if err != nil {
		return emptyPreview("workbook has no sheets")
	}

	var table [][]string
	for i := 0; i < sh.GetNumberRows() && len(table) <= PreviewMaxRows; i++ {
		rw, err := sh.GetRow(i)
		if err != nil {
			return emptyPreview(fmt.Sprintf("could not read sheet %q", sh.GetName()))
		}
		cells := make([]string, 0, PreviewMaxColumns)
		for j := 0; j < PreviewMaxColumns; j++ {
			cell, err := rw.GetCol(j)
			if err != nil {
				break
			}
			cells = append(cells, cell.GetString())
		}
		table = append(table, cells)
	}
	if len(table) == 0 {
		return emptyPreview("file contains no rows")
	}

	p := &Preview{Headers: clampRow(table[0]), Rows: [][]string{}}
	for _, row := range table[1:] {
		p.Rows = append(p.Rows, clampRow(row))
	}
	return p
}

func clampRow(cells []string) []string {
	if len(cells) > PreviewMaxColumns {
		cells = cells[:PreviewMaxColumns]
	}
	out := make([]string, len(cells))
	copy(out, cells)
	return out
}
