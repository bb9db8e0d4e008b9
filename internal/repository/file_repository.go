package repository

import (
	"errors"
	"strings"

	"cloudhub/internal/interfaces"
	"cloudhub/internal/model"
	"cloudhub/pkg/db"

	"gorm.io/gorm"
)

// FileRepository handles file metadata persistence.
type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository() *FileRepository {
	return &FileRepository{db: db.DB}
}

func (r *FileRepository) Create(rec *model.FileRecord) error {
	return r.db.Create(rec).Error
}

// FindByID returns (nil, nil) when the record does not exist.
func (r *FileRepository) FindByID(id string) (*model.FileRecord, error) {
	var rec model.FileRecord
	if err := r.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindOwned returns (nil, nil) both when the record does not exist and
// when it belongs to someone else, so callers cannot probe for existence.
func (r *FileRepository) FindOwned(id string, ownerID uint) (*model.FileRecord, error) {
	var rec model.FileRecord
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListByOwner returns the owner's files newest first, optionally narrowed
// by a case-insensitive name substring and an exact type match.
func (r *FileRepository) ListByOwner(ownerID uint, filter interfaces.FileFilter) ([]model.FileRecord, error) {
	q := r.db.Where("owner_id = ?", ownerID)
	if filter.NameSubstring != "" {
		q = q.Where("LOWER(file_name) LIKE ?", "%"+strings.ToLower(filter.NameSubstring)+"%")
	}
	if filter.FileType != "" {
		q = q.Where("file_type = ?", filter.FileType)
	}

	var recs []model.FileRecord
	err := q.Order("uploaded_at DESC").Find(&recs).Error
	return recs, err
}

func (r *FileRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.FileRecord{}).Error
}

// StatsByOwner aggregates the owner's dashboard numbers in one query.
func (r *FileRepository) StatsByOwner(ownerID uint) (*interfaces.StorageStats, error) {
	var stats interfaces.StorageStats
	err := r.db.Model(&model.FileRecord{}).
		Select(`COUNT(*) AS total_files,
			COALESCE(SUM(file_size), 0) AS total_bytes,
			COALESCE(SUM(file_type = ?), 0) AS documents,
			COALESCE(SUM(file_type = ?), 0) AS images,
			COALESCE(SUM(file_type = ?), 0) AS others`,
			model.FileTypeDocument, model.FileTypeImage, model.FileTypeOther).
		Where("owner_id = ?", ownerID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
