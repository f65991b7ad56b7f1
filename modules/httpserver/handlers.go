package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/example/image-compress-service/modules/imageservice"
	"github.com/gin-gonic/gin"
)

// Handlers contains HTTP request handlers for the image pipeline.
type Handlers struct {
	imageService *imageservice.Service
}

// NewHandlers creates a new handlers instance.
func NewHandlers(imageService *imageservice.Service) *Handlers {
	return &Handlers{imageService: imageService}
}

// handleImageServiceError writes an appropriate HTTP error response for
// pipeline failures. Validation problems map to 400, everything past the
// storage commit maps to 500.
func handleImageServiceError(c *gin.Context, err error) {
	if errors.Is(err, imageservice.ErrUnsupportedType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// UploadImage handles image upload requests (POST /api/images/upload).
// The multipart body carries an "image" file field and an optional "quality"
// field; quality falls back to the transcoder default when absent or
// unusable.
func (h *Handlers) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		// The multipart reader does not always preserve the wrapped
		// *http.MaxBytesError, so match on the message as well.
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("upload body exceeds the configured limit: %v", err),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided"})
		return
	}
	defer file.Close()

	quality := imageservice.ResolveQuality(c.PostForm("quality"))

	result, err := h.imageService.CompressUpload(
		c.Request.Context(),
		header.Filename,
		file,
		header.Header.Get("Content-Type"),
		quality,
	)
	if err != nil {
		handleImageServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck handles health check requests (GET /health).
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "image-compress-service",
	})
}
