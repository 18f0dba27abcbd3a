package response

import (
	"github.com/viniciusmartins/imagepress/internal/usecase/upload"
)

type UploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

func UploadResultToResponse(result *upload.UploadResult) UploadResponse {
	return UploadResponse{
		Success:  true,
		ImageURL: result.URL,
	}
}
