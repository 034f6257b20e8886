package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UploadHandlers stores multipart file uploads and hands back the reference
// a client attaches to its next chat message.
type UploadHandlers struct {
	dir      string
	maxBytes int64
	log      *zerolog.Logger
}

// NewUploadHandlers creates a new upload handlers instance.
func NewUploadHandlers(dir string, maxBytes int64, logger *zerolog.Logger) *UploadHandlers {
	return &UploadHandlers{
		dir:      dir,
		maxBytes: maxBytes,
		log:      logger,
	}
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// Upload accepts one multipart file under the "file" field.
// POST /upload
func (h *UploadHandlers) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.log.Debug().Err(err).Msg("upload without file field")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return
	}

	if h.maxBytes > 0 && file.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file too large"})
		return
	}

	// Base strips any path components a hostile client might smuggle in.
	original := filepath.Base(file.Filename)
	stored := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), original)

	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, stored)); err != nil {
		h.log.Error().Err(err).Str("file_name", original).Msg("failed to save upload")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("file_name", original).Int64("size", file.Size).Msg("file uploaded")
	c.JSON(http.StatusOK, UploadResponse{
		FileURL:  "/uploads/" + stored,
		FileName: original,
	})
}
