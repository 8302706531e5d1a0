// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

// Package catalog contains the music catalog domain types: genres, works,
// authors, group membership, and production credits.
package catalog

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/validate"
)

// Genre is a catalog category. Genres form a tree via ParentID.
type Genre struct {
	ID          ulid.ULID
	Name        string
	Description string
	ParentID    *ulid.ULID
}

// NewGenre creates a validated Genre.
func NewGenre(id ulid.ULID, name, description string, parentID *ulid.ULID) (*Genre, error) {
	if !validate.NonBlank(name) {
		return nil, oops.Code("GENRE_INVALID_NAME").Errorf("name cannot be blank")
	}
	return &Genre{
		ID:          id,
		Name:        name,
		Description: description,
		ParentID:    parentID,
	}, nil
}

// IsRoot reports whether the genre has no parent.
func (g *Genre) IsRoot() bool {
	return g.ParentID == nil
}

// Flatten returns root and all of its descendants, walking the parent
// links in genres. The result is depth-first, root first. A visited set
// guards against parent cycles, which are not prevented on assignment;
// a cycle yields each genre at most once rather than recursing forever.
func Flatten(root Genre, genres []Genre) []Genre {
	children := make(map[ulid.ULID][]Genre, len(genres))
	for _, g := range genres {
		if g.ParentID != nil {
			children[*g.ParentID] = append(children[*g.ParentID], g)
		}
	}

	visited := map[ulid.ULID]bool{}
	var out []Genre
	var walk func(g Genre)
	walk = func(g Genre) {
		if visited[g.ID] {
			return
		}
		visited[g.ID] = true
		out = append(out, g)
		for _, child := range children[g.ID] {
			walk(child)
		}
	}
	walk(root)
	return out
}

// GenreRepository manages genre persistence.
type GenreRepository interface {
	// Create stores a new genre. A duplicate name fails with a storage error.
	Create(ctx context.Context, genre *Genre) error

	// GetByID retrieves a genre by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Genre, error)

	// List returns all genres.
	List(ctx context.Context) ([]Genre, error)

	// Update replaces the mutable fields of an existing genre.
	Update(ctx context.Context, genre *Genre) error

	// Delete removes a genre.
	Delete(ctx context.Context, id ulid.ULID) error
}
