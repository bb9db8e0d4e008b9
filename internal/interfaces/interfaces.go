package interfaces

import (
	"context"
	"io"
	"time"

	"cloudhub/internal/model"
)

// BlobStore is the object storage collaborator. Paths are opaque handles;
// the store neither knows nor checks ownership.
// storage.MinioStore implements this.
type BlobStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
	// SignedURL mints a pre-authorized direct access URL for path,
	// valid for ttl. The URL carries no further identity check.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

// FileFilter narrows a file listing. Zero values mean "no constraint".
type FileFilter struct {
	// NameSubstring matches case-insensitively anywhere in the file name.
	NameSubstring string
	// FileType matches exactly against the closed classification set.
	FileType string
}

// StorageStats summarizes an owner's files for the dashboard.
type StorageStats struct {
	TotalFiles int64 `json:"total_files"`
	TotalBytes int64 `json:"total_bytes"`
	Documents  int64 `json:"documents"`
	Images     int64 `json:"images"`
	Others     int64 `json:"others"`
}

// FileRepository persists FileRecords.
// repository.FileRepository implements this.
type FileRepository interface {
	Create(rec *model.FileRecord) error
	// FindByID returns (nil, nil) when no record exists.
	FindByID(id string) (*model.FileRecord, error)
	// FindOwned returns (nil, nil) when the record does not exist or is
	// not owned by ownerID; callers cannot distinguish the two cases.
	FindOwned(id string, ownerID uint) (*model.FileRecord, error)
	// ListByOwner returns matching records ordered by upload time,
	// newest first.
	ListByOwner(ownerID uint, filter FileFilter) ([]model.FileRecord, error)
	Delete(id string) error
	StatsByOwner(ownerID uint) (*StorageStats, error)
}

// ShareLinkRepository persists ShareLinks.
// repository.ShareLinkRepository implements this.
type ShareLinkRepository interface {
	Create(link *model.ShareLink) error
	// FindByID returns (nil, nil) when no link exists.
	FindByID(id string) (*model.ShareLink, error)
	// DeleteByFileID removes every link bound to a file (cascade on
	// file deletion).
	DeleteByFileID(fileID string) error
}

// UserRepository persists Users.
// repository.UserRepository implements this.
type UserRepository interface {
	Create(user *model.User) error
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
}
