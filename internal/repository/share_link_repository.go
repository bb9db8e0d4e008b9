package repository

import (
	"errors"

	"cloudhub/internal/model"
	"cloudhub/pkg/db"

	"gorm.io/gorm"
)

// ShareLinkRepository handles share link persistence. Links are insert-only:
// there is no update path, and deletion happens only as a cascade when the
// owning file is removed.
type ShareLinkRepository struct {
	db *gorm.DB
}

func NewShareLinkRepository() *ShareLinkRepository {
	return &ShareLinkRepository{db: db.DB}
}

func (r *ShareLinkRepository) Create(link *model.ShareLink) error {
	return r.db.Create(link).Error
}

// FindByID returns (nil, nil) when the link does not exist. Expiry is not
// filtered here; the resolver owns the validity check so it compares
// against a single "now".
func (r *ShareLinkRepository) FindByID(id string) (*model.ShareLink, error) {
	var link model.ShareLink
	if err := r.db.Where("id = ?", id).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// DeleteByFileID removes all links bound to fileID.
func (r *ShareLinkRepository) DeleteByFileID(fileID string) error {
	return r.db.Where("file_id = ?", fileID).Delete(&model.ShareLink{}).Error
}
