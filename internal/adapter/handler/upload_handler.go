package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmartins/imagepress/internal/adapter/handler/dto/response"
	"github.com/viniciusmartins/imagepress/internal/domain"
	"github.com/viniciusmartins/imagepress/internal/pkg/httputil"
	"github.com/viniciusmartins/imagepress/internal/usecase/upload"
)

// FileField is the multipart part name the endpoint accepts.
const FileField = "image"

type UploadHandler struct {
	uploadSvc   UploadService
	maxFileSize int64
}

func NewUploadHandler(uploadSvc UploadService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		uploadSvc:   uploadSvc,
		maxFileSize: maxFileSize,
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	// Hard cap on the request body, with headroom above the per-file limit
	// so moderately oversized uploads still reach the pipeline's own size
	// check and get the explicit too-large message.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.maxFileSize)

	file, header, err := c.Request.FormFile(FileField)
	if err != nil {
		// A body that blows the cap fails form parsing before the part is
		// ever seen; that is a size failure, not a missing file.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "VALIDATION_ERROR", domain.ErrFileTooLarge.Error())
			return
		}
		httputil.ErrorWithCode(c, http.StatusBadRequest, "VALIDATION_ERROR", domain.ErrMissingFile.Error())
		return
	}
	defer file.Close()

	result, err := h.uploadSvc.Upload(c.Request.Context(), upload.UploadInput{
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.UploadResultToResponse(result))
}
