package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"cloudhub/internal/interfaces"
	"cloudhub/internal/model"
	"cloudhub/pkg/logger"

	"go.uber.org/zap"
)

func init() {
	// Services log through the global logger; keep tests quiet.
	logger.L = zap.NewNop()
}

// In-memory stand-ins for the record store and blob store collaborators.

type fakeFileRepo struct {
	records map[string]model.FileRecord

	createErr error
	findErr   error
	deleteErr error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{records: make(map[string]model.FileRecord)}
}

func (r *fakeFileRepo) Create(rec *model.FileRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.records[rec.ID] = *rec
	return nil
}

func (r *fakeFileRepo) FindByID(id string) (*model.FileRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *fakeFileRepo) FindOwned(id string, ownerID uint) (*model.FileRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, nil
	}
	return &rec, nil
}

func (r *fakeFileRepo) ListByOwner(ownerID uint, filter interfaces.FileFilter) ([]model.FileRecord, error) {
	var recs []model.FileRecord
	for _, rec := range r.records {
		if rec.OwnerID != ownerID {
			continue
		}
		if filter.NameSubstring != "" &&
			!strings.Contains(strings.ToLower(rec.FileName), strings.ToLower(filter.NameSubstring)) {
			continue
		}
		if filter.FileType != "" && rec.FileType != filter.FileType {
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].UploadedAt.After(recs[j].UploadedAt)
	})
	return recs, nil
}

func (r *fakeFileRepo) Delete(id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.records, id)
	return nil
}

func (r *fakeFileRepo) StatsByOwner(ownerID uint) (*interfaces.StorageStats, error) {
	stats := &interfaces.StorageStats{}
	for _, rec := range r.records {
		if rec.OwnerID != ownerID {
			continue
		}
		stats.TotalFiles++
		stats.TotalBytes += rec.FileSize
		switch rec.FileType {
		case model.FileTypeDocument:
			stats.Documents++
		case model.FileTypeImage:
			stats.Images++
		default:
			stats.Others++
		}
	}
	return stats, nil
}

type fakeShareRepo struct {
	links map[string]model.ShareLink

	createErr error
	findErr   error
	deleteErr error
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{links: make(map[string]model.ShareLink)}
}

func (r *fakeShareRepo) Create(link *model.ShareLink) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.links[link.ID] = *link
	return nil
}

func (r *fakeShareRepo) FindByID(id string) (*model.ShareLink, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	link, ok := r.links[id]
	if !ok {
		return nil, nil
	}
	return &link, nil
}

func (r *fakeShareRepo) DeleteByFileID(fileID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for id, link := range r.links {
		if link.FileID == fileID {
			delete(r.links, id)
		}
	}
	return nil
}

type fakeBlobStore struct {
	objects map[string][]byte

	uploadErr error
	removeErr error
	signErr   error

	lastSignTTL time.Duration
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (s *fakeBlobStore) Upload(_ context.Context, path string, r io.Reader, _ int64, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[path] = data
	return nil
}

func (s *fakeBlobStore) Download(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("no object at %q", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeBlobStore) Remove(_ context.Context, path string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	// Removing a missing object succeeds, like the real store.
	delete(s.objects, path)
	return nil
}

func (s *fakeBlobStore) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	if _, ok := s.objects[path]; !ok {
		return "", fmt.Errorf("no object at %q", path)
	}
	s.lastSignTTL = ttl
	return fmt.Sprintf("https://blobs.test/%s?expires=%d", path, int(ttl.Seconds())), nil
}

// multipartFileHeader builds a real multipart.FileHeader the way gin would
// hand one to the upload handler.
func multipartFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("Failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Failed to write multipart data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/files", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("Failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}
