// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MetaTune Contributors

package postgres

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/metatune/metatune/internal/catalog"
	"github.com/metatune/metatune/internal/store"
)

// MemberRepository implements catalog.MemberRepository using PostgreSQL.
type MemberRepository struct {
	db store.DB
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(db store.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create stores a new membership.
func (r *MemberRepository) Create(ctx context.Context, member *catalog.Member) error {
	q := store.From(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO members (group_id, member_id, joined_at, left_at)
		VALUES ($1, $2, $3, $4)
	`,
		member.GroupID.String(),
		member.MemberID.String(),
		member.JoinedAt,
		member.LeftAt,
	)
	if err != nil {
		if kind, name, ok := store.Constraint(err); ok {
			return oops.Code("MEMBER_CONSTRAINT_VIOLATION").
				With("constraint", name).
				With("kind", string(kind)).
				Wrap(err)
		}
		return oops.Code("MEMBER_CREATE_FAILED").
			With("operation", "insert member").
			Wrap(err)
	}
	return nil
}

// ListByGroup returns all memberships of a group, oldest first.
func (r *MemberRepository) ListByGroup(ctx context.Context, groupID ulid.ULID) ([]catalog.Member, error) {
	q := store.From(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT group_id, member_id, joined_at, left_at
		FROM members
		WHERE group_id = $1
		ORDER BY joined_at
	`, groupID.String())
	if err != nil {
		return nil, oops.Code("MEMBER_LIST_FAILED").
			With("operation", "query members").
			With("group_id", groupID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var members []catalog.Member
	for rows.Next() {
		var (
			groupIDStr  string
			memberIDStr string
			joinedAt    time.Time
			leftAt      *time.Time
		)
		if err := rows.Scan(&groupIDStr, &memberIDStr, &joinedAt, &leftAt); err != nil {
			return nil, oops.Code("MEMBER_LIST_FAILED").
				With("operation", "scan member row").
				Wrap(err)
		}
		gid, err := ulid.Parse(groupIDStr)
		if err != nil {
			return nil, oops.Code("MEMBER_INVALID_ID").With("group_id", groupIDStr).Wrap(err)
		}
		mid, err := ulid.Parse(memberIDStr)
		if err != nil {
			return nil, oops.Code("MEMBER_INVALID_ID").With("member_id", memberIDStr).Wrap(err)
		}
		members = append(members, catalog.Member{
			GroupID:  gid,
			MemberID: mid,
			JoinedAt: joinedAt,
			LeftAt:   leftAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("MEMBER_LIST_FAILED").
			With("operation", "iterate members").
			Wrap(err)
	}
	return members, nil
}

// Update replaces the leave date of an existing membership, keyed by
// group, member, and join date.
func (r *MemberRepository) Update(ctx context.Context, member *catalog.Member) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		UPDATE members SET left_at = $4
		WHERE group_id = $1 AND member_id = $2 AND joined_at = $3
	`,
		member.GroupID.String(),
		member.MemberID.String(),
		member.JoinedAt,
		member.LeftAt,
	)
	if err != nil {
		return oops.Code("MEMBER_UPDATE_FAILED").
			With("operation", "update member").
			With("group_id", member.GroupID.String()).
			With("member_id", member.MemberID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("MEMBER_NOT_FOUND").
			With("group_id", member.GroupID.String()).
			With("member_id", member.MemberID.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes a membership.
func (r *MemberRepository) Delete(ctx context.Context, groupID, memberID ulid.ULID, joinedAt time.Time) error {
	q := store.From(ctx, r.db)
	result, err := q.Exec(ctx, `
		DELETE FROM members
		WHERE group_id = $1 AND member_id = $2 AND joined_at = $3
	`, groupID.String(), memberID.String(), joinedAt)
	if err != nil {
		return oops.Code("MEMBER_DELETE_FAILED").
			With("operation", "delete member").
			With("group_id", groupID.String()).
			With("member_id", memberID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("MEMBER_NOT_FOUND").
			With("group_id", groupID.String()).
			With("member_id", memberID.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Compile-time interface check.
var _ catalog.MemberRepository = (*MemberRepository)(nil)
