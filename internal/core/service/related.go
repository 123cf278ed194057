package service

import (
	"context"
	"errors"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

// Accessor loads the entity a notification points at.
type Accessor func(ctx context.Context, id uint) (any, error)

// RelatedResolver maps every related kind to the accessor that loads it.
type RelatedResolver map[domain.RelatedKind]Accessor

// NewRelatedResolver wires the accessors for every known kind.
func NewRelatedResolver(
	users ports.UserRepository,
	connections ports.ConnectionRepository,
	posts ports.PostRepository,
	clubs ports.ClubRepository,
	projects ports.ProjectRepository,
	mentorships ports.MentorshipRepository,
) RelatedResolver {
	return RelatedResolver{
		domain.RelatedUser: func(ctx context.Context, id uint) (any, error) {
			return users.FindByID(ctx, id)
		},
		domain.RelatedConnection: func(ctx context.Context, id uint) (any, error) {
			return connections.FindByID(ctx, id)
		},
		domain.RelatedPost: func(ctx context.Context, id uint) (any, error) {
			return posts.FindByID(ctx, id)
		},
		domain.RelatedComment: func(ctx context.Context, id uint) (any, error) {
			return posts.FindComment(ctx, id)
		},
		domain.RelatedClub: func(ctx context.Context, id uint) (any, error) {
			return clubs.FindByID(ctx, id)
		},
		domain.RelatedClubEvent: func(ctx context.Context, id uint) (any, error) {
			return clubs.FindEvent(ctx, id)
		},
		domain.RelatedProject: func(ctx context.Context, id uint) (any, error) {
			p, err := projects.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return newProjectView(p), nil
		},
		domain.RelatedContribution: func(ctx context.Context, id uint) (any, error) {
			return projects.FindContribution(ctx, id)
		},
		domain.RelatedMentorshipRequest: func(ctx context.Context, id uint) (any, error) {
			return mentorships.FindRequest(ctx, id)
		},
	}
}

// Resolve returns the referenced object, or nil when the reference is empty,
// of an unknown kind, or points at a row that no longer exists.
func (r RelatedResolver) Resolve(ctx context.Context, ref domain.RelatedRef) (any, error) {
	if ref.IsZero() {
		return nil, nil
	}
	get, ok := r[ref.Kind]
	if !ok {
		return nil, nil
	}
	obj, err := get(ctx, ref.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}
