package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloudhub/internal/service"
	"cloudhub/pkg/config"
	"cloudhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShareHandler handles share link creation (owner) and resolution
// (anonymous visitor).
type ShareHandler struct {
	shareService  *service.ShareService
	accessService *service.AccessService
}

func NewShareHandler(shareService *service.ShareService, accessService *service.AccessService) *ShareHandler {
	return &ShareHandler{
		shareService:  shareService,
		accessService: accessService,
	}
}

// CreateShareLink mints a share link for one of the caller's files.
// expires_in_hours absent or zero means the link never expires.
func (h *ShareHandler) CreateShareLink(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		FileID         string `json:"file_id" binding:"required"`
		Permissions    string `json:"permissions" binding:"required"`
		ExpiresInHours int    `json:"expires_in_hours"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var expiresIn *time.Duration
	if req.ExpiresInHours != 0 {
		d := time.Duration(req.ExpiresInHours) * time.Hour
		expiresIn = &d
	}

	link, err := h.shareService.Create(userID, req.FileID, req.Permissions, expiresIn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPermission), errors.Is(err, service.ErrInvalidExpiry):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotOwner):
			// Same response whether the file is missing or not theirs.
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.L.Error("Failed to create share link", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create share link"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"share_id":   link.ID,
		"share_url":  fmt.Sprintf("%s/share/%s", strings.TrimRight(config.GlobalConfig.Server.BaseURL, "/"), link.ID),
		"expires_at": link.ExpiresAt,
	})
}

// ResolveShareLink serves anonymous visits to /share/:share_id. Every
// failure, including store faults, renders as the same "file not
// available" body so the response never leaks whether a link exists.
func (h *ShareHandler) ResolveShareLink(c *gin.Context) {
	shareID := c.Param("share_id")
	if shareID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not available"})
		return
	}

	access, err := h.accessService.Resolve(c.Request.Context(), shareID, time.Now())
	if err != nil {
		if denied, ok := service.AsAccessDenied(err); ok {
			// Reason stays server-side; the share token is a secret
			// so it is not logged either.
			logger.L.Info("Share resolution denied", zap.String("reason", denied.Reason))
		} else {
			logger.L.Error("Share resolution failed", zap.Error(err))
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "file not available"})
		return
	}

	c.JSON(http.StatusOK, access)
}
