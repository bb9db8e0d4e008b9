package service

import (
	"context"
	"fmt"
	"time"

	"cloudhub/internal/interfaces"
	"cloudhub/pkg/logger"

	"go.uber.org/zap"
)

// SignedURLTTL is how long minted download URLs stay valid. It is a
// transport convenience, not the authorization boundary: the share link's
// own expiry is checked once, at resolution time.
const SignedURLTTL = time.Hour

// ResolvedAccess is everything an anonymous share visitor may see.
type ResolvedAccess struct {
	FileName    string     `json:"file_name"`
	FileType    string     `json:"file_type"`
	FileSize    int64      `json:"file_size"`
	Permissions string     `json:"permissions"`
	SharedAt    time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	SignedURL   string     `json:"signed_url"`
}

// AccessService resolves presented share tokens for anonymous visitors.
type AccessService struct {
	fileRepo  interfaces.FileRepository
	shareRepo interfaces.ShareLinkRepository
	blobs     interfaces.BlobStore
}

func NewAccessService(fileRepo interfaces.FileRepository, shareRepo interfaces.ShareLinkRepository, blobs interfaces.BlobStore) *AccessService {
	return &AccessService{
		fileRepo:  fileRepo,
		shareRepo: shareRepo,
		blobs:     blobs,
	}
}

// Resolve validates shareID against now and returns the file metadata plus
// a freshly minted signed URL, or an AccessDeniedError. The caller fetches
// now once so every check in one resolution compares the same instant.
//
// Missing links, expired links and links whose file was deleted all
// surface the same way to the requester.
func (s *AccessService) Resolve(ctx context.Context, shareID string, now time.Time) (*ResolvedAccess, error) {
	link, err := s.shareRepo.FindByID(shareID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up share link: %w", err)
	}
	if link == nil {
		return nil, &AccessDeniedError{Reason: DeniedNotFound}
	}

	if link.Expired(now) {
		return nil, &AccessDeniedError{Reason: DeniedExpired}
	}

	rec, err := s.fileRepo.FindByID(link.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up shared file: %w", err)
	}
	if rec == nil {
		// Orphaned link: the file was deleted out from under it.
		// Same external signal as a missing link.
		logger.L.Warn("Share link points at a deleted file", zap.String("fileID", link.FileID))
		return nil, &AccessDeniedError{Reason: DeniedNotFound}
	}

	signedURL, err := s.blobs.SignedURL(ctx, rec.StoragePath, SignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to mint signed URL: %w", err)
	}

	return &ResolvedAccess{
		FileName:    rec.FileName,
		FileType:    rec.FileType,
		FileSize:    rec.FileSize,
		Permissions: link.Permissions,
		SharedAt:    link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		SignedURL:   signedURL,
	}, nil
}
