package model

import (
	"time"
)

// Share permission levels. Download is a superset of view.
const (
	PermissionView     = "view"
	PermissionDownload = "download"
)

// ValidPermission reports whether p belongs to the closed permission set.
func ValidPermission(p string) bool {
	return p == PermissionView || p == PermissionDownload
}

// ShareLink is a bearer capability granting access to one FileRecord.
// The ID is the public access token embedded in the share URL, so it must
// come from a cryptographically strong source (uuid v4). A nil ExpiresAt
// means the link never expires. Rows are never updated after creation;
// they are only removed when the owning FileRecord is deleted.
type ShareLink struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	FileID      string     `gorm:"type:varchar(36);not null;index" json:"file_id"`
	Permissions string     `gorm:"type:varchar(20);not null" json:"permissions"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (ShareLink) TableName() string {
	return "shared_links"
}

// Expired reports whether the link is invalid at the given instant.
// Validity is a pure function of (ExpiresAt, now): valid iff ExpiresAt is
// nil or strictly after now. A link expires at exactly ExpiresAt.
func (s *ShareLink) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
