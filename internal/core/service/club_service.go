package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

var (
	validClubVisibility = map[domain.ClubVisibility]bool{
		domain.ClubPublic:     true,
		domain.ClubPrivate:    true,
		domain.ClubInviteOnly: true,
	}
	validClubPostTypes = map[domain.ClubPostType]bool{
		domain.ClubPostGeneral:      true,
		domain.ClubPostAnnouncement: true,
		domain.ClubPostEvent:        true,
		domain.ClubPostDiscussion:   true,
		domain.ClubPostResource:     true,
	}
)

type clubService struct {
	clubs    ports.ClubRepository
	tx       ports.Transactor
	notifier ports.Notifier
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewClubService returns a ClubService implementation.
func NewClubService(
	clubs ports.ClubRepository,
	tx ports.Transactor,
	notifier ports.Notifier,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.ClubService {
	return &clubService{clubs: clubs, tx: tx, notifier: notifier, activity: activity, log: log}
}

// Create stores the club and enrols its owner as the first admin member.
func (s *clubService) Create(ctx context.Context, actor domain.Actor, in ports.CreateClubInput) (*domain.Club, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.NewFieldError("name", "name is required")
	}
	if in.Visibility == "" {
		in.Visibility = domain.ClubPublic
	}
	if !validClubVisibility[in.Visibility] {
		return nil, domain.NewFieldError("visibility", "visibility must be public, private or invite_only")
	}

	club := &domain.Club{
		Name:             in.Name,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Category:         in.Category,
		Tags:             in.Tags,
		OwnerID:          actor.UserID,
		Visibility:       in.Visibility,
		Status:           domain.ClubActive,
	}
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.clubs.Create(ctx, club); err != nil {
			return err
		}
		created, err := s.clubs.InsertMembershipIfAbsent(ctx, &domain.Membership{
			ClubID:   club.ID,
			UserID:   actor.UserID,
			Role:     domain.RoleAdmin,
			Status:   domain.MembershipActive,
			JoinedAt: time.Now().UTC(),
		})
		if err != nil || !created {
			return err
		}
		club.MembersCount, err = s.clubs.AdjustMembersCount(ctx, club.ID, 1)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("club_id", club.ID).Uint("owner_id", actor.UserID).Msg("club created")
	return club, nil
}

func (s *clubService) Get(ctx context.Context, id uint) (*domain.Club, error) {
	return s.clubs.FindByID(ctx, id)
}

func (s *clubService) List(ctx context.Context, filter ports.ListClubsFilter) ([]*domain.Club, int64, error) {
	return s.clubs.List(ctx, filter)
}

// Update is allowed to the owner, club admins and platform admins.
func (s *clubService) Update(ctx context.Context, actor domain.Actor, id uint, in ports.UpdateClubInput) (*domain.Club, error) {
	club, err := s.clubs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeManage(ctx, actor, club); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewFieldError("name", "name is required")
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.ShortDescription != nil {
		fields["short_description"] = *in.ShortDescription
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Visibility != nil {
		if !validClubVisibility[*in.Visibility] {
			return nil, domain.NewFieldError("visibility", "visibility must be public, private or invite_only")
		}
		fields["visibility"] = *in.Visibility
	}
	if len(fields) == 0 && in.Tags == nil {
		return club, nil
	}
	fields["updated_at"] = time.Now().UTC()

	if in.Tags != nil {
		fields["tags"] = in.Tags
	}
	if err := s.clubs.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.clubs.FindByID(ctx, id)
}

func (s *clubService) authorizeManage(ctx context.Context, actor domain.Actor, club *domain.Club) error {
	if actor.IsAdmin() || club.OwnerID == actor.UserID {
		return nil
	}
	m, err := s.clubs.FindMembership(ctx, club.ID, actor.UserID)
	if errors.Is(err, domain.ErrNotAMember) {
		return domain.ErrForbidden
	}
	if err != nil {
		return err
	}
	if m.Role != domain.RoleAdmin || m.Status != domain.MembershipActive {
		return domain.ErrForbidden
	}
	return nil
}

// Join is idempotent: a second join leaves the count untouched and reports
// "already a member".
func (s *clubService) Join(ctx context.Context, actor domain.Actor, clubID uint) (*domain.JoinResult, error) {
	var res domain.JoinResult
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		club, err := s.clubs.FindByID(ctx, clubID)
		if err != nil {
			return err
		}
		if club.Status != domain.ClubActive {
			return domain.ErrClubNotFound
		}

		created, err := s.clubs.InsertMembershipIfAbsent(ctx, &domain.Membership{
			ClubID:   clubID,
			UserID:   actor.UserID,
			Role:     domain.RoleMember,
			Status:   domain.MembershipActive,
			JoinedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if !created {
			res = domain.JoinResult{Joined: false, Message: domain.MsgAlreadyMember, MembersCount: club.MembersCount}
			return nil
		}

		count, err := s.clubs.AdjustMembersCount(ctx, clubID, 1)
		if err != nil {
			return err
		}
		res = domain.JoinResult{Joined: true, Message: domain.MsgJoinedClub, MembersCount: count}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Joined {
		record(ctx, s.activity, actor.UserID, domain.ActivityClubJoined, "joined a club", map[string]any{"club_id": clubID})
		s.log.Info().Uint("club_id", clubID).Uint("user_id", actor.UserID).Int64("members_count", res.MembersCount).Msg("club joined")
	}
	return &res, nil
}

// Leave removes the membership; only an active row decrements the count.
func (s *clubService) Leave(ctx context.Context, actor domain.Actor, clubID uint) (*domain.JoinResult, error) {
	var res domain.JoinResult
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		club, err := s.clubs.FindByID(ctx, clubID)
		if err != nil {
			return err
		}
		m, err := s.clubs.DeleteMembership(ctx, clubID, actor.UserID)
		if err != nil {
			return err
		}
		count := club.MembersCount
		if m.Status == domain.MembershipActive {
			if count, err = s.clubs.AdjustMembersCount(ctx, clubID, -1); err != nil {
				return err
			}
		}
		res = domain.JoinResult{Joined: false, Message: domain.MsgLeftClub, MembersCount: count}
		return nil
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.activity, actor.UserID, domain.ActivityClubLeft, "left a club", map[string]any{"club_id": clubID})
	s.log.Info().Uint("club_id", clubID).Uint("user_id", actor.UserID).Int64("members_count", res.MembersCount).Msg("club left")
	return &res, nil
}

func (s *clubService) Members(ctx context.Context, clubID uint) ([]*domain.Membership, error) {
	if _, err := s.clubs.FindByID(ctx, clubID); err != nil {
		return nil, err
	}
	return s.clubs.ListMembers(ctx, clubID)
}

func (s *clubService) UserClubs(ctx context.Context, actor domain.Actor) ([]*domain.Membership, error) {
	return s.clubs.ListUserMemberships(ctx, actor.UserID)
}

// Delete removes a club with everything in it. Only the owner or a
// platform admin may do so.
func (s *clubService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		club, err := s.clubs.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if club.OwnerID != actor.UserID && !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		return s.clubs.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info().Uint("club_id", id).Uint("actor_id", actor.UserID).Msg("club deleted")
	return nil
}

// membership returns the actor's active membership, or nil when there is none.
func (s *clubService) membership(ctx context.Context, clubID uint, actor domain.Actor) (*domain.Membership, error) {
	m, err := s.clubs.FindMembership(ctx, clubID, actor.UserID)
	if errors.Is(err, domain.ErrNotAMember) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if m.Status != domain.MembershipActive {
		return nil, nil
	}
	return m, nil
}

// canModerate is true for the owner, platform admins and active club admins
// or moderators.
func canModerate(actor domain.Actor, club *domain.Club, m *domain.Membership) bool {
	if actor.IsAdmin() || club.OwnerID == actor.UserID {
		return true
	}
	return m != nil && (m.Role == domain.RoleAdmin || m.Role == domain.RoleModerator)
}

// CreatePost writes to the club board and bumps posts_count in the same
// transaction. Announcements and pinned posts are for moderators.
func (s *clubService) CreatePost(
	ctx context.Context,
	actor domain.Actor,
	clubID uint,
	in ports.CreateClubPostInput,
) (*domain.ClubPostResult, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, domain.NewFieldError("content", "content is required")
	}
	if in.PostType == "" {
		in.PostType = domain.ClubPostGeneral
	}
	if !validClubPostTypes[in.PostType] {
		return nil, domain.NewFieldError("post_type", "unknown club post type")
	}

	post := &domain.ClubPost{
		ClubID:   clubID,
		AuthorID: actor.UserID,
		PostType: in.PostType,
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		IsPinned: in.IsPinned,
	}
	var count int64
	err := inTx(ctx, s.tx, func(ctx context.Context) error {
		club, err := s.clubs.FindByID(ctx, clubID)
		if err != nil {
			return err
		}
		if club.Status != domain.ClubActive {
			return domain.ErrClubInactive
		}
		m, err := s.membership(ctx, clubID, actor)
		if err != nil {
			return err
		}
		if m == nil && !actor.IsAdmin() {
			return domain.ErrForbidden
		}
		if (in.IsPinned || in.PostType == domain.ClubPostAnnouncement) && !canModerate(actor, club, m) {
			return domain.ErrForbidden
		}

		if err := s.clubs.InsertPost(ctx, post); err != nil {
			return err
		}
		count, err = s.clubs.AdjustPostsCount(ctx, clubID, 1)
		return err
	})
	if err != nil {
		return nil, err
	}

	record(ctx, s.activity, actor.UserID, domain.ActivityPostCreated, "posted in a club",
		map[string]any{"club_id": clubID, "club_post_id": post.ID})
	return &domain.ClubPostResult{Post: post, PostsCount: count}, nil
}

// ListPosts returns the board, pinned posts first. Boards of non-public
// clubs are visible to members only.
func (s *clubService) ListPosts(ctx context.Context, actor domain.Actor, clubID uint, limit, offset int) ([]*domain.ClubPost, int64, error) {
	club, err := s.clubs.FindByID(ctx, clubID)
	if err != nil {
		return nil, 0, err
	}
	if club.Visibility != domain.ClubPublic && !actor.IsAdmin() {
		m, err := s.membership(ctx, clubID, actor)
		if err != nil {
			return nil, 0, err
		}
		if m == nil {
			return nil, 0, domain.ErrForbidden
		}
	}
	return s.clubs.ListPosts(ctx, clubID, limit, offset)
}
