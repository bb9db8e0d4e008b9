package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"cloudhub/internal/interfaces"
	"cloudhub/internal/model"
	"cloudhub/pkg/config"
	"cloudhub/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxFileSize caps uploads when no limit is configured (50MB).
const DefaultMaxFileSize = 50 * 1024 * 1024

// FileService manages the file record lifecycle: upload, listing, deletion.
// Every owner-scoped operation takes the requesting user's ID explicitly.
//
// Uploads write the blob before the metadata row and deletes remove the
// blob before the row. There is no transaction spanning the two stores;
// the partial states (orphaned blob, orphaned row) are logged distinctly
// so an out-of-band reconciliation can find them.
type FileService struct {
	fileRepo  interfaces.FileRepository
	shareRepo interfaces.ShareLinkRepository
	blobs     interfaces.BlobStore
}

func NewFileService(fileRepo interfaces.FileRepository, shareRepo interfaces.ShareLinkRepository, blobs interfaces.BlobStore) *FileService {
	return &FileService{
		fileRepo:  fileRepo,
		shareRepo: shareRepo,
		blobs:     blobs,
	}
}

// Upload stores the file content and then its metadata row.
// declaredType may be empty, in which case the type is classified from the
// file's MIME type; a non-empty value outside the closed set is rejected.
func (s *FileService) Upload(ctx context.Context, ownerID uint, file *multipart.FileHeader, declaredType string) (*model.FileRecord, error) {
	maxSize := int64(DefaultMaxFileSize)
	if config.GlobalConfig.File != nil && config.GlobalConfig.File.MaxFileSize > 0 {
		maxSize = config.GlobalConfig.File.MaxFileSize
	}
	if file.Size > maxSize {
		return nil, ErrFileTooLarge
	}
	if file.Size < 0 {
		return nil, fmt.Errorf("invalid file size %d", file.Size)
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = determineMimeType(filepath.Ext(file.Filename))
	}

	fileType := declaredType
	if fileType == "" {
		fileType = classifyFileType(mimeType)
	} else if !model.ValidFileType(fileType) {
		return nil, ErrInvalidFileType
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Owner-scoped path with a timestamp prefix so repeated uploads of
	// the same name never collide.
	storagePath := fmt.Sprintf("%d/%d-%s", ownerID, time.Now().UnixMilli(), sanitizeFileName(file.Filename))

	if err := s.blobs.Upload(ctx, storagePath, src, file.Size, mimeType); err != nil {
		return nil, fmt.Errorf("failed to store file content: %w", err)
	}

	rec := &model.FileRecord{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		FileName:    file.Filename,
		FileType:    fileType,
		FileSize:    file.Size,
		StoragePath: storagePath,
		UploadedAt:  time.Now(),
	}

	if err := s.fileRepo.Create(rec); err != nil {
		// The blob is already written. Not rolled back: the orphaned
		// blob is reconciled out-of-band, so report it as its own case.
		logger.L.Error("Orphaned blob: metadata insert failed after blob write",
			zap.String("storagePath", storagePath),
			zap.Uint("ownerID", ownerID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to save file metadata: %w", err)
	}

	logger.L.Info("File uploaded",
		zap.String("fileID", rec.ID),
		zap.String("fileName", rec.FileName),
		zap.Int64("fileSize", rec.FileSize),
		zap.Uint("ownerID", ownerID))

	return rec, nil
}

// Delete removes the blob and then the metadata row, plus any share links
// bound to the file. Deleting a file that is already gone is a no-op so
// concurrent deletes from two sessions both complete.
func (s *FileService) Delete(ctx context.Context, ownerID uint, fileID string) error {
	rec, err := s.fileRepo.FindByID(fileID)
	if err != nil {
		return fmt.Errorf("failed to look up file: %w", err)
	}
	if rec == nil {
		logger.L.Debug("Delete of missing file treated as no-op", zap.String("fileID", fileID))
		return nil
	}
	if rec.OwnerID != ownerID {
		return ErrNotOwner
	}

	if err := s.blobs.Remove(ctx, rec.StoragePath); err != nil {
		// Nothing removed yet; the record stays consistent.
		return fmt.Errorf("failed to remove file content: %w", err)
	}

	if err := s.fileRepo.Delete(fileID); err != nil {
		// The blob is gone but the row remains: the record is now
		// permanently inaccessible-but-present. Report it as its own
		// case, distinct from a clean failure.
		logger.L.Error("Orphaned row: metadata delete failed after blob removal",
			zap.String("fileID", fileID),
			zap.String("storagePath", rec.StoragePath),
			zap.Error(err))
		return fmt.Errorf("failed to delete file metadata: %w", err)
	}

	// Cascade. If this fails the leftover links point at a deleted file
	// and already resolve as denied, so the delete itself still counts
	// as done.
	if err := s.shareRepo.DeleteByFileID(fileID); err != nil {
		logger.L.Warn("Failed to cascade share link deletion",
			zap.String("fileID", fileID),
			zap.Error(err))
	}

	logger.L.Info("File deleted", zap.String("fileID", fileID), zap.Uint("ownerID", ownerID))
	return nil
}

// List returns the owner's files, newest first, narrowed by the filter.
func (s *FileService) List(ownerID uint, filter interfaces.FileFilter) ([]model.FileRecord, error) {
	if filter.FileType != "" && !model.ValidFileType(filter.FileType) {
		return nil, ErrInvalidFileType
	}
	return s.fileRepo.ListByOwner(ownerID, filter)
}

// Stats returns the owner's dashboard aggregates.
func (s *FileService) Stats(ownerID uint) (*interfaces.StorageStats, error) {
	return s.fileRepo.StatsByOwner(ownerID)
}

// sanitizeFileName strips characters that would break an object path.
func sanitizeFileName(name string) string {
	safe := strings.ReplaceAll(name, "/", "_")
	safe = strings.ReplaceAll(safe, "\\", "_")
	safe = strings.ReplaceAll(safe, " ", "_")
	return safe
}

// classifyFileType maps a MIME type onto the closed classification set.
func classifyFileType(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return model.FileTypeImage
	case strings.Contains(mimeType, "pdf"),
		strings.Contains(mimeType, "document"),
		strings.Contains(mimeType, "word"),
		strings.Contains(mimeType, "text/plain"),
		strings.Contains(mimeType, "sheet"),
		strings.Contains(mimeType, "excel"):
		return model.FileTypeDocument
	}
	return model.FileTypeOther
}

// determineMimeType guesses a MIME type from a file extension.
func determineMimeType(fileExt string) string {
	switch strings.ToLower(fileExt) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".doc", ".docx":
		return "application/msword"
	case ".xls", ".xlsx":
		return "application/vnd.ms-excel"
	case ".txt":
		return "text/plain"
	}
	return "application/octet-stream"
}
