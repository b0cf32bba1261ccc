package api

// swagger:model api.PreviewResponse
type PreviewResponse struct {
	Latest  *FileUploadResponse `json:"latest"`
	Headers []string            `json:"headers"`
	Rows    [][]string          `json:"rows"`
	Error   string              `json:"error,omitempty" example:"could not parse the file as CSV"`
}
