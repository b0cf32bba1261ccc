package api

// swagger:model api.DashboardCategory
type DashboardCategory struct {
	Category string              `json:"category" example:"asset_master"`
	Count    int                 `json:"count" example:"3"`
	Latest   *FileUploadResponse `json:"latest"`
}

// swagger:model api.DashboardResponse
type DashboardResponse struct {
	UserCount   int                 `json:"user_count" example:"4"`
	UploadCount int                 `json:"upload_count" example:"23"`
	Categories  []DashboardCategory `json:"categories"`
}
