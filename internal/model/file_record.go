package model

import (
	"time"
)

// File type classification. Closed set; anything unrecognized is FileTypeOther.
const (
	FileTypeDocument = "document"
	FileTypeImage    = "image"
	FileTypeOther    = "other"
)

// ValidFileType reports whether t belongs to the closed classification set.
func ValidFileType(t string) bool {
	switch t {
	case FileTypeDocument, FileTypeImage, FileTypeOther:
		return true
	}
	return false
}

// FileRecord maps an uploaded file's metadata to its blob path.
// StoragePath is unique: a blob is referenced by at most one record.
type FileRecord struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileType    string    `gorm:"type:varchar(20);not null" json:"file_type"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	StoragePath string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"storage_path"`
	UploadedAt  time.Time `gorm:"not null;index" json:"uploaded_at"`
}

func (FileRecord) TableName() string {
	return "uploaded_files"
}
