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

// Author is a performing credit. An author may represent an individual
// (PersonID set) or a group (PersonID nil).
type Author struct {
	ID        ulid.ULID
	Name      *string
	Biography *string
	PersonID  *ulid.ULID
}

// IsGroup reports whether the author represents a group rather than an
// individual.
func (a *Author) IsGroup() bool {
	return a.PersonID == nil
}

// Member models group membership over time: a member author belonging to
// a group author between JoinedAt and LeftAt.
type Member struct {
	GroupID  ulid.ULID
	MemberID ulid.ULID
	JoinedAt time.Time
	LeftAt   *time.Time
}

// NewMember creates a validated Member with an open-ended membership.
func NewMember(groupID, memberID ulid.ULID, joinedAt time.Time) (*Member, error) {
	if groupID == memberID {
		return nil, oops.Code("MEMBER_SELF_REFERENCE").Errorf("a group cannot be its own member")
	}
	if joinedAt.IsZero() {
		return nil, oops.Code("MEMBER_INVALID_JOIN_DATE").Errorf("join date cannot be zero")
	}
	return &Member{GroupID: groupID, MemberID: memberID, JoinedAt: joinedAt}, nil
}

// Leave closes the membership. The leave date must not precede the join date.
func (m *Member) Leave(leftAt time.Time) error {
	if leftAt.Before(m.JoinedAt) {
		return oops.Code("MEMBER_INVALID_LEAVE_DATE").Errorf("leave date cannot precede join date")
	}
	m.LeftAt = &leftAt
	return nil
}

// ContributionType identifies a non-performing production credit.
type ContributionType string

// Contribution types.
const (
	ContributionArranger      ContributionType = "arranger"
	ContributionProducer      ContributionType = "producer"
	ContributionSoundEngineer ContributionType = "sound_engineer"
	ContributionWriter        ContributionType = "writer"
)

// Valid reports whether t is a known contribution type.
func (t ContributionType) Valid() bool {
	switch t {
	case ContributionArranger, ContributionProducer, ContributionSoundEngineer, ContributionWriter:
		return true
	}
	return false
}

// Contributor is a non-performing production credit on a work, distinct
// from performing authors.
type Contributor struct {
	Type     ContributionType
	PersonID ulid.ULID
	WorkID   ulid.ULID
}

// NewContributor creates a validated Contributor.
func NewContributor(t ContributionType, personID, workID ulid.ULID) (*Contributor, error) {
	if !t.Valid() {
		return nil, oops.Code("CONTRIBUTOR_INVALID_TYPE").With("type", string(t)).Errorf("unknown contribution type %q", t)
	}
	return &Contributor{Type: t, PersonID: personID, WorkID: workID}, nil
}

// SetBiography updates the author biography.
func (a *Author) SetBiography(bio string) {
	a.Biography = &bio
}

// SetName updates the author display name, rejecting blank values.
func (a *Author) SetName(name string) error {
	if !validate.NonBlank(name) {
		return oops.Code("AUTHOR_INVALID_NAME").Errorf("name cannot be blank")
	}
	a.Name = &name
	return nil
}

// AuthorRepository manages author persistence.
type AuthorRepository interface {
	Create(ctx context.Context, author *Author) error
	GetByID(ctx context.Context, id ulid.ULID) (*Author, error)
	List(ctx context.Context) ([]Author, error)
	Update(ctx context.Context, author *Author) error
	Delete(ctx context.Context, id ulid.ULID) error
}

// MemberRepository manages group membership persistence.
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	ListByGroup(ctx context.Context, groupID ulid.ULID) ([]Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, groupID, memberID ulid.ULID, joinedAt time.Time) error
}

// ContributorRepository manages production credit persistence.
type ContributorRepository interface {
	Create(ctx context.Context, contributor *Contributor) error
	ListByWork(ctx context.Context, workID ulid.ULID) ([]Contributor, error)
	Delete(ctx context.Context, contributor *Contributor) error
}
