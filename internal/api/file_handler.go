package api

import (
	"errors"
	"net/http"

	"cloudhub/internal/interfaces"
	"cloudhub/internal/service"
	"cloudhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileHandler handles the owner-facing file API.
type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// UploadFile accepts a multipart upload with an optional "file_type" form
// field overriding the automatic classification.
func (h *FileHandler) UploadFile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to get file from request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid file"})
		return
	}

	declaredType := c.PostForm("file_type")

	rec, err := h.fileService.Upload(c.Request.Context(), userID, file, declaredType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge), errors.Is(err, service.ErrInvalidFileType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Failed to store file", zap.Error(err), zap.String("filename", file.Filename))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"file_id":     rec.ID,
		"file_name":   rec.FileName,
		"file_type":   rec.FileType,
		"file_size":   rec.FileSize,
		"uploaded_at": rec.UploadedAt,
	})
}

// ListFiles returns the caller's files, optionally filtered with
// ?search=<name substring>&type=<document|image|other>.
func (h *FileHandler) ListFiles(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	filter := interfaces.FileFilter{
		NameSubstring: c.Query("search"),
		FileType:      c.Query("type"),
	}

	files, err := h.fileService.List(userID, filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFileType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.L.Error("Failed to list files", zap.Error(err), zap.Uint("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

// GetStats returns the caller's dashboard aggregates.
func (h *FileHandler) GetStats(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	stats, err := h.fileService.Stats(userID)
	if err != nil {
		logger.L.Error("Failed to compute stats", zap.Error(err), zap.Uint("userID", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// DeleteFile removes a file, its blob and its share links.
func (h *FileHandler) DeleteFile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	fileID := c.Param("file_id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file ID"})
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), userID, fileID); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.L.Error("Failed to delete file", zap.Error(err), zap.String("fileID", fileID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
