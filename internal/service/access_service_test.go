package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloudhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSharedFile(fileRepo *fakeFileRepo, shareRepo *fakeShareRepo, blobs *fakeBlobStore, expiresAt *time.Time) (*model.FileRecord, *model.ShareLink) {
	rec := &model.FileRecord{
		ID:          "file-1",
		OwnerID:     1,
		FileName:    "report.pdf",
		FileType:    model.FileTypeDocument,
		FileSize:    204800,
		StoragePath: "1/1700000000000-report.pdf",
		UploadedAt:  time.Now(),
	}
	fileRepo.records[rec.ID] = *rec
	blobs.objects[rec.StoragePath] = []byte("pdf bytes")

	link := &model.ShareLink{
		ID:          "share-1",
		FileID:      rec.ID,
		Permissions: model.PermissionView,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
	}
	shareRepo.links[link.ID] = *link
	return rec, link
}

func TestAccessService_Resolve(t *testing.T) {
	now := time.Now()
	in24h := now.Add(24 * time.Hour)

	tests := []struct {
		name       string
		expiresAt  *time.Time
		shareID    string
		resolveAt  time.Time
		wantReason string
	}{
		{
			name:      "valid link without expiry",
			expiresAt: nil,
			shareID:   "share-1",
			resolveAt: now,
		},
		{
			name:      "link without expiry far in the future",
			expiresAt: nil,
			shareID:   "share-1",
			resolveAt: now.AddDate(100, 0, 0),
		},
		{
			name:      "valid link before expiry",
			expiresAt: &in24h,
			shareID:   "share-1",
			resolveAt: now,
		},
		{
			name:      "one second before expiry",
			expiresAt: &in24h,
			shareID:   "share-1",
			resolveAt: in24h.Add(-time.Second),
		},
		{
			name:       "exactly at expiry is denied",
			expiresAt:  &in24h,
			shareID:    "share-1",
			resolveAt:  in24h,
			wantReason: DeniedExpired,
		},
		{
			name:       "after expiry",
			expiresAt:  &in24h,
			shareID:    "share-1",
			resolveAt:  now.Add(25 * time.Hour),
			wantReason: DeniedExpired,
		},
		{
			name:       "nonexistent share id",
			expiresAt:  nil,
			shareID:    "no-such-share",
			resolveAt:  now,
			wantReason: DeniedNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileRepo := newFakeFileRepo()
			shareRepo := newFakeShareRepo()
			blobs := newFakeBlobStore()
			seedSharedFile(fileRepo, shareRepo, blobs, tt.expiresAt)

			svc := NewAccessService(fileRepo, shareRepo, blobs)
			access, err := svc.Resolve(context.Background(), tt.shareID, tt.resolveAt)

			if tt.wantReason != "" {
				denied, ok := AsAccessDenied(err)
				if !ok {
					t.Fatalf("Resolve() error = %v, want AccessDeniedError", err)
				}
				if denied.Reason != tt.wantReason {
					t.Errorf("Resolve() denial reason = %v, want %v", denied.Reason, tt.wantReason)
				}
				if access != nil {
					t.Error("Resolve() returned partial data alongside a denial")
				}
				return
			}

			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if access.FileName != "report.pdf" {
				t.Errorf("Resolve() file_name = %v, want report.pdf", access.FileName)
			}
			if access.Permissions != model.PermissionView {
				t.Errorf("Resolve() permissions = %v, want view", access.Permissions)
			}
			if access.SignedURL == "" {
				t.Error("Resolve() returned empty signed URL")
			}
		})
	}
}

func TestAccessService_Resolve_DenialsAreIndistinguishable(t *testing.T) {
	req := require.New(t)

	fileRepo := newFakeFileRepo()
	shareRepo := newFakeShareRepo()
	blobs := newFakeBlobStore()
	expired := time.Now().Add(-time.Hour)
	seedSharedFile(fileRepo, shareRepo, blobs, &expired)

	svc := NewAccessService(fileRepo, shareRepo, blobs)

	_, errExpired := svc.Resolve(context.Background(), "share-1", time.Now())
	_, errMissing := svc.Resolve(context.Background(), "no-such-share", time.Now())

	req.Error(errExpired)
	req.Error(errMissing)
	// The requester-visible message must not leak which case occurred.
	req.Equal(errMissing.Error(), errExpired.Error())
}

func TestAccessService_Resolve_OrphanedLink(t *testing.T) {
	fileRepo := newFakeFileRepo()
	shareRepo := newFakeShareRepo()
	blobs := newFakeBlobStore()
	rec, _ := seedSharedFile(fileRepo, shareRepo, blobs, nil)

	// File deleted out from under the still-unexpired link.
	delete(fileRepo.records, rec.ID)

	svc := NewAccessService(fileRepo, shareRepo, blobs)
	_, err := svc.Resolve(context.Background(), "share-1", time.Now())

	denied, ok := AsAccessDenied(err)
	if !ok {
		t.Fatalf("Resolve() error = %v, want AccessDeniedError", err)
	}
	if denied.Reason != DeniedNotFound {
		t.Errorf("Resolve() denial reason = %v, want %v", denied.Reason, DeniedNotFound)
	}
}

func TestAccessService_Resolve_SignedURLUsesFixedTTL(t *testing.T) {
	assertions := assert.New(t)

	fileRepo := newFakeFileRepo()
	shareRepo := newFakeShareRepo()
	blobs := newFakeBlobStore()
	in24h := time.Now().Add(24 * time.Hour)
	seedSharedFile(fileRepo, shareRepo, blobs, &in24h)

	svc := NewAccessService(fileRepo, shareRepo, blobs)
	access, err := svc.Resolve(context.Background(), "share-1", time.Now())

	assertions.NoError(err)
	assertions.NotNil(access)
	// The signing TTL is fixed and independent of the link's own expiry.
	assertions.Equal(SignedURLTTL, blobs.lastSignTTL)
}

func TestAccessService_Resolve_StoreFault(t *testing.T) {
	fileRepo := newFakeFileRepo()
	shareRepo := newFakeShareRepo()
	blobs := newFakeBlobStore()
	seedSharedFile(fileRepo, shareRepo, blobs, nil)
	blobs.signErr = errors.New("store unavailable")

	svc := NewAccessService(fileRepo, shareRepo, blobs)
	access, err := svc.Resolve(context.Background(), "share-1", time.Now())

	if err == nil {
		t.Fatal("Resolve() expected error when signing fails")
	}
	if _, ok := AsAccessDenied(err); ok {
		t.Error("Resolve() store fault should not masquerade as an access denial")
	}
	if access != nil {
		t.Error("Resolve() returned partial data on failure")
	}
}
