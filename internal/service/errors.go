package service

import (
	"errors"
)

// Owner-facing errors. ErrNotOwner deliberately covers both "no such file"
// and "someone else's file" so a caller cannot probe for existence.
var (
	ErrNotOwner          = errors.New("file not found or access denied")
	ErrInvalidPermission = errors.New("permissions must be view or download")
	ErrInvalidExpiry     = errors.New("expiry must be a positive duration")
	ErrInvalidFileType   = errors.New("file type must be document, image or other")
	ErrFileTooLarge      = errors.New("file exceeds the upload size limit")
)

// Reasons a share link failed to resolve. The reason is for callers inside
// the process (logs, tests); the anonymous requester always sees the same
// denial regardless of reason.
const (
	DeniedNotFound = "not_found"
	DeniedExpired  = "expired"
)

// AccessDeniedError is the terminal failure of anonymous share resolution.
type AccessDeniedError struct {
	Reason string
}

// Error returns the same message for every reason so expired and
// nonexistent links are externally indistinguishable.
func (e *AccessDeniedError) Error() string {
	return "file not available"
}

// AsAccessDenied unwraps err into an AccessDeniedError, if it is one.
func AsAccessDenied(err error) (*AccessDeniedError, bool) {
	var denied *AccessDeniedError
	if errors.As(err, &denied) {
		return denied, true
	}
	return nil, false
}
