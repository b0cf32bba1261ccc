package api

import (
	"time"

	"github.com/Viswanath-varre/PM-MABP/internal/model"
)

// swagger:model api.FileUploadResponse
type FileUploadResponse struct {
	ID         int       `json:"id" example:"7"`
	Category   string    `json:"category" example:"asset_master"`
	Filename   string    `json:"filename" example:"assets_2026.xlsx"`
	SavedAs    string    `json:"saved_as" example:"asset_master__20260831120000__assets_2026.xlsx"`
	SizeBytes  int64     `json:"size_bytes" example:"10240"`
	UploadedBy string    `json:"uploaded_by" example:"0912000001"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func NewFileUploadResponse(f *model.FileUpload) FileUploadResponse {
	return FileUploadResponse{
		ID:         f.ID,
		Category:   string(f.Category),
		Filename:   f.Filename,
		SavedAs:    f.SavedAs,
		SizeBytes:  f.SizeBytes,
		UploadedBy: f.UploadedBy,
		UploadedAt: f.UploadedAt,
	}
}
