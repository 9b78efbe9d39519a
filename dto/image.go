package dto

type SpotImageInput struct {
	URL     string `json:"url" binding:"required"`
	Preview *bool  `json:"preview" binding:"required"`
}

type ReviewImageInput struct {
	URL string `json:"url" binding:"required"`
}

type SpotImageResponse struct {
	ID      uint   `json:"id"`
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}

type ReviewImageResponse struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
