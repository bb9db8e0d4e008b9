package service

import (
	"fmt"
	"time"

	"cloudhub/internal/interfaces"
	"cloudhub/internal/model"
	"cloudhub/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShareService creates share links. Links are bearer capabilities: only
// their creation is authorized, resolution later needs no identity.
type ShareService struct {
	fileRepo  interfaces.FileRepository
	shareRepo interfaces.ShareLinkRepository
}

func NewShareService(fileRepo interfaces.FileRepository, shareRepo interfaces.ShareLinkRepository) *ShareService {
	return &ShareService{
		fileRepo:  fileRepo,
		shareRepo: shareRepo,
	}
}

// Create mints a new share link for the file. expiresIn nil means the link
// never expires; otherwise it must be positive and the expiry is stored as
// an absolute timestamp computed once, here. Each call creates a distinct
// link so links can later be revoked independently.
//
// A requester who does not own the file gets ErrNotOwner whether or not
// the file exists.
func (s *ShareService) Create(requesterID uint, fileID string, permissions string, expiresIn *time.Duration) (*model.ShareLink, error) {
	if !model.ValidPermission(permissions) {
		return nil, ErrInvalidPermission
	}
	if expiresIn != nil && *expiresIn <= 0 {
		return nil, ErrInvalidExpiry
	}

	rec, err := s.fileRepo.FindOwned(fileID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up file: %w", err)
	}
	if rec == nil {
		return nil, ErrNotOwner
	}

	var expiresAt *time.Time
	if expiresIn != nil {
		t := time.Now().Add(*expiresIn)
		expiresAt = &t
	}

	link := &model.ShareLink{
		// The id doubles as the public bearer token; uuid v4 draws
		// from crypto/rand.
		ID:          uuid.NewString(),
		FileID:      rec.ID,
		Permissions: permissions,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
	}

	if err := s.shareRepo.Create(link); err != nil {
		return nil, fmt.Errorf("failed to create share link: %w", err)
	}

	// The link id is a credential; log the file, not the token.
	logger.L.Info("Share link created",
		zap.String("fileID", rec.ID),
		zap.String("permissions", permissions),
		zap.Bool("expires", expiresAt != nil))

	return link, nil
}
