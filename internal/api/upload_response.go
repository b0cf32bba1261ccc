package api

// swagger:model api.UploadResponse
type UploadResponse struct {
	Upload  FileUploadResponse `json:"upload"`
	Warning string             `json:"warning,omitempty" example:"file stored but its upload record was not persisted"`
}
