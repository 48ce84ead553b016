// Package album serves the portfolio's browse surface: album listings and
// per-album photo pages resolved to public URLs.
package album

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fotofolio/service/internal/db"
)

// Album represents an album row.
type Album struct {
	Slug      string  `json:"slug"`
	Title     string  `json:"title"`
	Subtitle  *string `json:"subtitle,omitempty"`
	CoverPath *string `json:"-"`
}

// PhotoRow is a photo record as read for the browse pages.
type PhotoRow struct {
	ID        string
	AlbumSlug string
	Alt       string
	Caption   *string
	ImagePath string
	Location  *string
	TakenAt   *string
}

// ErrNotFound is returned when an album does not exist.
var ErrNotFound = errors.New("album not found")

// Repository handles album reads.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new album Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all albums ordered by title.
func (r *Repository) List(ctx context.Context) ([]Album, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT slug, title, subtitle, cover_path FROM albums ORDER BY title ASC`)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var a Album
		if err := rows.Scan(&a.Slug, &a.Title, &a.Subtitle, &a.CoverPath); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

// GetBySlug fetches a single album.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Album, error) {
	a := &Album{}
	err := r.pool.QueryRow(ctx,
		`SELECT slug, title, subtitle, cover_path FROM albums WHERE slug = $1`,
		slug,
	).Scan(&a.Slug, &a.Title, &a.Subtitle, &a.CoverPath)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get album %q: %w", slug, err)
	}
	return a, nil
}

// PhotosByAlbum returns the album's photos. It first selects the capture
// metadata columns; against a legacy schema that does not have them it
// falls back to the original column set.
func (r *Repository) PhotosByAlbum(ctx context.Context, slug string) ([]PhotoRow, error) {
	photos, err := r.queryPhotos(ctx, slug, true)
	if err != nil {
		if _, ok := db.AsMissingColumn(err); ok {
			return r.queryPhotos(ctx, slug, false)
		}
		return nil, err
	}
	return photos, nil
}

func (r *Repository) queryPhotos(ctx context.Context, slug string, withMetadata bool) ([]PhotoRow, error) {
	query := `SELECT id, album_slug, alt, caption, image_path FROM photos
	          WHERE album_slug = $1 ORDER BY id ASC`
	if withMetadata {
		query = `SELECT id, album_slug, alt, caption, image_path, taken_at, location FROM photos
		         WHERE album_slug = $1 ORDER BY id ASC`
	}

	rows, err := r.pool.Query(ctx, query, slug)
	if err != nil {
		return nil, db.ClassifyError(err)
	}
	defer rows.Close()

	var photos []PhotoRow
	for rows.Next() {
		var p PhotoRow
		var alt *string
		dest := []any{&p.ID, &p.AlbumSlug, &alt, &p.Caption, &p.ImagePath}
		if withMetadata {
			dest = append(dest, &p.TakenAt, &p.Location)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		if alt != nil {
			p.Alt = *alt
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, db.ClassifyError(err)
	}
	return photos, nil
}
