// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package catalog

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/validate"
)

// WorkKind identifies the kind of catalog entry.
type WorkKind string

// Work kinds.
const (
	WorkSong  WorkKind = "song"
	WorkAlbum WorkKind = "album"
)

// Valid reports whether k is a known work kind.
func (k WorkKind) Valid() bool {
	return k == WorkSong || k == WorkAlbum
}

// String returns the string representation of the work kind.
func (k WorkKind) String() string {
	return string(k)
}

// Work is a song or album catalog entry. Songs and albums share the same
// shape; a song may reference its album via AlbumID.
type Work struct {
	ID          ulid.ULID
	Name        string
	PublishDate time.Time
	Kind        WorkKind
	Description *string
	SourceText  *string
	AlbumID     *ulid.ULID
	GenreID     ulid.ULID

	// Authors holds the ordered performing credits, loaded as a
	// convenience collection alongside the work row.
	Authors []Author
}

// NewWork creates a validated Work.
func NewWork(id ulid.ULID, name string, publishDate time.Time, kind WorkKind, genreID ulid.ULID) (*Work, error) {
	if !validate.NonBlank(name) {
		return nil, oops.Code("WORK_INVALID_NAME").Errorf("name cannot be blank")
	}
	if !kind.Valid() {
		return nil, oops.Code("WORK_INVALID_KIND").With("kind", string(kind)).Errorf("unknown work kind %q", kind)
	}
	if publishDate.IsZero() {
		return nil, oops.Code("WORK_INVALID_PUBLISH_DATE").Errorf("publish date cannot be zero")
	}
	return &Work{
		ID:          id,
		Name:        name,
		PublishDate: publishDate,
		Kind:        kind,
		GenreID:     genreID,
	}, nil
}

// SetAlbum links a song to its album. Albums cannot belong to albums.
func (w *Work) SetAlbum(albumID ulid.ULID) error {
	if w.Kind != WorkSong {
		return oops.Code("WORK_NOT_A_SONG").With("kind", w.Kind.String()).Errorf("only songs can reference an album")
	}
	w.AlbumID = &albumID
	return nil
}

// WorkRepository manages work persistence.
//
// Create and Update are atomic across the works and performs tables:
// replacing a work's author list deletes all prior rows and inserts the
// new ordered set in one transaction. Delete cascades to performs rows.
type WorkRepository interface {
	// Create stores a new work and its performing credits.
	Create(ctx context.Context, work *Work) error

	// GetByID retrieves a work with its ordered authors.
	// Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Work, error)

	// List returns all works.
	List(ctx context.Context) ([]Work, error)

	// ListByAlbum returns the songs referencing the given album.
	ListByAlbum(ctx context.Context, albumID ulid.ULID) ([]Work, error)

	// ListByGenre returns the works owned by the given genre.
	ListByGenre(ctx context.Context, genreID ulid.ULID) ([]Work, error)

	// Update replaces all mutable fields and the author list.
	Update(ctx context.Context, work *Work) error

	// Delete removes a work and its performing credits.
	Delete(ctx context.Context, id ulid.ULID) error
}
