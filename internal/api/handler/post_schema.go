package handler

import (
	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type createPostRequest struct {
	Content    string `json:"content" validate:"required,max=5000"`
	PostType   string `json:"post_type" validate:"omitempty,oneof=general achievement project research job_opportunity event mentorship"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=public connections department private"`
}

func (r createPostRequest) toInput() ports.CreatePostInput {
	return ports.CreatePostInput{
		Content:    r.Content,
		PostType:   domain.PostType(r.PostType),
		Visibility: domain.PostVisibility(r.Visibility),
	}
}

type updatePostRequest struct {
	Content    *string `json:"content" validate:"omitempty,max=5000"`
	PostType   *string `json:"post_type" validate:"omitempty,oneof=general achievement project research job_opportunity event mentorship"`
	Visibility *string `json:"visibility" validate:"omitempty,oneof=public connections department private"`
}

func (r updatePostRequest) toInput() ports.UpdatePostInput {
	in := ports.UpdatePostInput{Content: r.Content}
	if r.PostType != nil {
		t := domain.PostType(*r.PostType)
		in.PostType = &t
	}
	if r.Visibility != nil {
		v := domain.PostVisibility(*r.Visibility)
		in.Visibility = &v
	}
	return in
}

type likeRequest struct {
	ReactionType string `json:"reaction_type" validate:"omitempty,oneof=like love laugh wow sad angry"`
}

type commentRequest struct {
	Content  string `json:"content" validate:"required,max=2000"`
	ParentID *uint  `json:"parent_id"`
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type shareRequest struct {
	ShareType string `json:"share_type" validate:"omitempty,oneof=internal external social"`
	Platform  string `json:"platform" validate:"max=50"`
}

func (r shareRequest) toInput() ports.ShareInput {
	return ports.ShareInput{ShareType: domain.ShareType(r.ShareType), Platform: r.Platform}
}

type listPostsQuery struct {
	PageQuery
	AuthorID uint   `query:"author_id"`
	PostType string `query:"post_type"`
}

func (q listPostsQuery) toFilter() ports.ListPostsFilter {
	return ports.ListPostsFilter{AuthorID: q.AuthorID, PostType: q.PostType, Limit: q.Limit, Offset: q.Offset}
}
