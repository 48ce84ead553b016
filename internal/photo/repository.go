// Package photo implements the photo upload ingestion pipeline: request
// validation, object placement, and metadata persistence with a
// schema-compatibility fallback for not-yet-migrated databases.
package photo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fotofolio/service/internal/db"
)

// Photo represents a persisted photo metadata record. Location and TakenAt
// carry only values that were actually stored.
type Photo struct {
	ID        string  `json:"id"`
	AlbumSlug string  `json:"album_slug"`
	Alt       string  `json:"alt,omitempty"`
	Caption   string  `json:"caption,omitempty"`
	ImagePath string  `json:"image_path"`
	Location  *string `json:"location,omitempty"`
	TakenAt   *string `json:"taken_at,omitempty"`
}

// InsertParams describes one insert attempt. Nil optional fields are left
// out of the statement entirely, which is what lets the fallback loop
// retry against a schema missing those columns.
type InsertParams struct {
	AlbumSlug string
	Alt       string
	Caption   string
	ImagePath string
	Location  *string
	TakenAt   *string
}

// ErrAlbumNotFound is returned when album_slug references no existing album.
var ErrAlbumNotFound = errors.New("album not found")

// Repository handles photo metadata persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert creates a photo record and returns it. Referencing an unknown
// album yields ErrAlbumNotFound; referencing a column the schema does not
// have yields *db.MissingColumnError.
func (r *Repository) Insert(ctx context.Context, p InsertParams) (*Photo, error) {
	cols := []string{"album_slug", "alt", "caption", "image_path"}
	args := []any{p.AlbumSlug, p.Alt, p.Caption, p.ImagePath}
	if p.Location != nil {
		cols = append(cols, "location")
		args = append(args, *p.Location)
	}
	if p.TakenAt != nil {
		cols = append(cols, "taken_at")
		args = append(args, *p.TakenAt)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		`INSERT INTO photos (%s) VALUES (%s) RETURNING id, image_path`,
		strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	out := &Photo{
		AlbumSlug: p.AlbumSlug,
		Alt:       p.Alt,
		Caption:   p.Caption,
		Location:  p.Location,
		TakenAt:   p.TakenAt,
	}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&out.ID, &out.ImagePath); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrAlbumNotFound
		}
		return nil, db.ClassifyError(err)
	}
	return out, nil
}

// ListImagePaths returns the image_path of every photo record.
func (r *Repository) ListImagePaths(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT image_path FROM photos`)
	if err != nil {
		return nil, fmt.Errorf("list image paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan image path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
