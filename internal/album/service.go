package album

import (
	"context"
	"fmt"
)

// URLResolver maps a stored object path to its public URL.
type URLResolver interface {
	PublicURL(key string) string
}

// Lister reads albums and their photos.
type Lister interface {
	List(ctx context.Context) ([]Album, error)
	GetBySlug(ctx context.Context, slug string) (*Album, error)
	PhotosByAlbum(ctx context.Context, slug string) ([]PhotoRow, error)
}

// Photo is a browse-facing photo with its resolved public URL.
type Photo struct {
	ID       string  `json:"id"`
	Src      string  `json:"src"`
	Alt      string  `json:"alt"`
	Caption  *string `json:"caption,omitempty"`
	TakenAt  *string `json:"taken_at,omitempty"`
	Location *string `json:"location,omitempty"`
}

// Page is a fully resolved album page.
type Page struct {
	Slug     string  `json:"slug"`
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle,omitempty"`
	CoverURL string  `json:"cover_url,omitempty"`
	Photos   []Photo `json:"photos"`
}

// Service assembles browse pages from the repository and the object store.
type Service struct {
	repo Lister
	urls URLResolver
}

// NewService creates a new album Service.
func NewService(repo Lister, urls URLResolver) *Service {
	return &Service{repo: repo, urls: urls}
}

// List returns all albums.
func (s *Service) List(ctx context.Context) ([]Album, error) {
	return s.repo.List(ctx)
}

// Get returns the album page for slug with photo paths resolved to
// public URLs.
func (s *Service) Get(ctx context.Context, slug string) (*Page, error) {
	a, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.PhotosByAlbum(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load photos for %q: %w", slug, err)
	}

	page := &Page{
		Slug:     a.Slug,
		Title:    a.Title,
		Subtitle: a.Subtitle,
		Photos:   make([]Photo, 0, len(rows)),
	}
	if a.CoverPath != nil && *a.CoverPath != "" {
		page.CoverURL = s.urls.PublicURL(*a.CoverPath)
	}
	for _, row := range rows {
		page.Photos = append(page.Photos, Photo{
			ID:       row.ID,
			Src:      s.urls.PublicURL(row.ImagePath),
			Alt:      row.Alt,
			Caption:  row.Caption,
			TakenAt:  row.TakenAt,
			Location: row.Location,
		})
	}
	return page, nil
}
