// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/catalog"
	"github.com/metatune/metatune/internal/store"
)

// ContributorRepository implements catalog.ContributorRepository using
// PostgreSQL.
type ContributorRepository struct {
	db store.DB
}

// NewContributorRepository creates a new ContributorRepository.
func NewContributorRepository(db store.DB) *ContributorRepository {
	return &ContributorRepository{db: db}
}

// Create stores a new production credit.
func (r *ContributorRepository) Create(ctx context.Context, contributor *catalog.Contributor) error {
	q := store.From(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO contributors (kind, person_id, work_id)
		VALUES ($1, $2, $3)
	`,
		string(contributor.Type),
		contributor.PersonID.String(),
		contributor.WorkID.String(),
	)
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("CONTRIBUTOR_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("CONTRIBUTOR_CREATE_FAILED").
			With("operation", "insert contributor").
			Wrap(err)
	}
	return nil
}

// ListByWork returns all production credits on a work.
func (r *ContributorRepository) ListByWork(ctx context.Context, workID ulid.ULID) ([]catalog.Contributor, error) {
	q := store.From(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT kind, person_id, work_id
		FROM contributors
		WHERE work_id = $1
		ORDER BY kind, person_id
	`, workID.String())
	if err != nil {
		return nil, oops.Code("CONTRIBUTOR_LIST_FAILED").
			With("operation", "query contributors").
			With("work_id", workID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var contributors []catalog.Contributor
	for rows.Next() {
		var (
			kind        string
			personIDStr string
			workIDStr   string
		)
		if err := rows.Scan(&kind, &personIDStr, &workIDStr); err != nil {
			return nil, oops.Code("CONTRIBUTOR_LIST_FAILED").
				With("operation", "scan contributor row").
				Wrap(err)
		}
		personID, err := ulid.Parse(personIDStr)
		if err != nil {
			return nil, oops.Code("CONTRIBUTOR_INVALID_ID").With("person_id", personIDStr).Wrap(err)
		}
		wid, err := ulid.Parse(workIDStr)
		if err != nil {
			return nil, oops.Code("CONTRIBUTOR_INVALID_ID").With("work_id", workIDStr).Wrap(err)
		}
		contributors = append(contributors, catalog.Contributor{
			Type:     catalog.ContributionType(kind),
			PersonID: personID,
			WorkID:   wid,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CONTRIBUTOR_LIST_FAILED").
			With("operation", "iterate contributors").
			Wrap(err)
	}
	return contributors, nil
}

// Delete removes a production credit.
func (r *ContributorRepository) Delete(ctx context.Context, contributor *catalog.Contributor) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		DELETE FROM contributors
		WHERE kind = $1 AND person_id = $2 AND work_id = $3
	`,
		string(contributor.Type),
		contributor.PersonID.String(),
		contributor.WorkID.String(),
	)
	if err != nil {
		return oops.Code("CONTRIBUTOR_DELETE_FAILED").
			With("operation", "delete contributor").
			With("work_id", contributor.WorkID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CONTRIBUTOR_NOT_FOUND").
			With("work_id", contributor.WorkID.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Compile-time interface check.
var _ catalog.ContributorRepository = (*ContributorRepository)(nil)
