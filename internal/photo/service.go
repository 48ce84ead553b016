package photo

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fotofolio/service/internal/db"
	"github.com/fotofolio/service/internal/storage"
)

// maxInsertAttempts bounds the schema-fallback loop: one initial attempt
// plus at most one retry per optional column.
const maxInsertAttempts = 3

// Inserter persists photo metadata.
type Inserter interface {
	Insert(ctx context.Context, p InsertParams) (*Photo, error)
	ListImagePaths(ctx context.Context) ([]string, error)
}

// UploadInput is a validated upload: the handler has already normalized
// TakenAt and checked size and type limits.
type UploadInput struct {
	AlbumSlug   string
	Alt         string
	Caption     string
	Location    *string
	TakenAt     *string
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
}

// Upload is the outcome of a successful ingestion.
type Upload struct {
	Photo     *Photo
	PublicURL string
}

// Orphan is a stored object with no metadata record pointing at it.
type Orphan struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Service runs the upload write sequence against the object store and the
// metadata repository.
type Service struct {
	repo  Inserter
	store storage.Storage
}

// NewService creates a new photo Service.
func NewService(repo Inserter, store storage.Storage) *Service {
	return &Service{repo: repo, store: store}
}

// Upload writes the binary to the object store under a sanitized derived
// path, then inserts the metadata record. When the schema lacks an optional
// column the insert is retried with that field dropped. On a terminal
// insert failure the stored object is deleted best-effort before the error
// is returned.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*Upload, error) {
	key := ObjectPath(in.AlbumSlug, in.Filename)

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.store.Upload(ctx, key, in.File, in.Size, contentType); err != nil {
		return nil, fmt.Errorf("upload object: %w", err)
	}

	params := InsertParams{
		AlbumSlug: in.AlbumSlug,
		Alt:       in.Alt,
		Caption:   in.Caption,
		ImagePath: key,
		Location:  in.Location,
		TakenAt:   in.TakenAt,
	}

	var created *Photo
	for attempt := 0; ; attempt++ {
		var err error
		created, err = s.repo.Insert(ctx, params)
		if err == nil {
			break
		}
		if attempt < maxInsertAttempts-1 {
			if dropped := dropMissingField(&params, err); dropped != "" {
				log.Printf("photos schema missing column %q, retrying insert without it", dropped)
				continue
			}
		}
		s.compensate(key, err)
		return nil, err
	}

	return &Upload{Photo: created, PublicURL: s.store.PublicURL(key)}, nil
}

// Orphans lists stored objects under the albums prefix that no photo
// record references. These are leftovers from failed compensations and are
// intended for manual cleanup.
func (s *Service) Orphans(ctx context.Context) ([]Orphan, error) {
	objects, err := s.store.List(ctx, "albums/")
	if err != nil {
		return nil, fmt.Errorf("list stored objects: %w", err)
	}

	paths, err := s.repo.ListImagePaths(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[p] = struct{}{}
	}

	orphans := []Orphan{}
	for _, obj := range objects {
		if _, ok := known[obj.Key]; !ok {
			orphans = append(orphans, Orphan{Path: obj.Key, Size: obj.Size})
		}
	}
	return orphans, nil
}

// dropMissingField clears the pending optional field named by a
// missing-column error and reports which one it dropped. It returns ""
// when the error is not recoverable this way.
func dropMissingField(params *InsertParams, err error) string {
	mce, ok := db.AsMissingColumn(err)
	if !ok {
		return ""
	}
	switch strings.ToLower(mce.Column) {
	case "location":
		if params.Location != nil {
			params.Location = nil
			return "location"
		}
	case "taken_at":
		if params.TakenAt != nil {
			params.TakenAt = nil
			return "taken_at"
		}
	}
	return ""
}

// compensate removes the uploaded object after a failed insert. Cleanup
// runs detached from the request context and its own failure is only
// logged, never surfaced over the primary error.
func (s *Service) compensate(key string, cause error) {
	if err := s.store.Delete(context.Background(), key); err != nil {
		log.Printf("cleanup of %q after failed insert (%v) also failed: %v", key, cause, err)
	}
}
