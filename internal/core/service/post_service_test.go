package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

func TestPostService_ToggleLike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.actor(t, "author", domain.UserTypeAlumni)
	reader := env.actor(t, "reader", domain.UserTypeStudent)

	post, err := env.posts.Create(ctx, author, ports.CreatePostInput{Content: "new job at the lab"})
	require.NoError(t, err)

	res, err := env.posts.ToggleLike(ctx, reader, post.ID, "")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 1, res.LikesCount)

	res, err = env.posts.ToggleLike(ctx, reader, post.ID, domain.ReactionLove)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Zero(t, res.LikesCount)

	_, err = env.posts.ToggleLike(ctx, reader, post.ID, "meh")
	assert.ErrorIs(t, err, domain.ErrValidation)

	inbox := env.inbox(t, author)
	require.Len(t, inbox, 1)
	assert.Equal(t, domain.NotifyPostLiked, inbox[0].NotificationType)

	_, err = env.posts.ToggleLike(ctx, author, post.ID, "")
	require.NoError(t, err)
	assert.Len(t, env.inbox(t, author), 1, "own likes do not notify")
}

func TestPostService_SharesAndComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.actor(t, "author", domain.UserTypeAlumni)
	reader := env.actor(t, "reader", domain.UserTypeStudent)

	post, err := env.posts.Create(ctx, author, ports.CreatePostInput{Content: "first"})
	require.NoError(t, err)
	other, err := env.posts.Create(ctx, author, ports.CreatePostInput{Content: "second"})
	require.NoError(t, err)

	for i := range 2 {
		share, err := env.posts.AddShare(ctx, reader, post.ID, ports.ShareInput{})
		require.NoError(t, err)
		assert.EqualValues(t, i+1, share.SharesCount)
	}

	root, err := env.posts.AddComment(ctx, reader, post.ID, "congrats", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, root.CommentsCount)

	reply, err := env.posts.AddComment(ctx, author, post.ID, "thanks", &root.Comment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, reply.CommentsCount)

	_, err = env.posts.AddComment(ctx, reader, other.ID, "wrong thread", &root.Comment.ID)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)

	_, err = env.posts.AddComment(ctx, reader, post.ID, "   ", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := env.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.SharesCount)
	assert.EqualValues(t, 2, got.CommentsCount)

	stored, err := env.posts.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.CommentsCount)
}

func TestPostService_DeleteAndFeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.actor(t, "author", domain.UserTypeAlumni)
	friend := env.actor(t, "friend", domain.UserTypeAlumni)
	stranger := env.actor(t, "stranger", domain.UserTypeAlumni)

	c, err := env.connections.Request(ctx, friend, author.UserID)
	require.NoError(t, err)
	_, err = env.connections.Respond(ctx, author, c.ID, domain.ActionAccept)
	require.NoError(t, err)

	_, err = env.posts.Create(ctx, author, ports.CreatePostInput{Content: "for friends", Visibility: domain.VisibilityConnections})
	require.NoError(t, err)
	public, err := env.posts.Create(ctx, author, ports.CreatePostInput{Content: "for all"})
	require.NoError(t, err)

	feed, total, err := env.posts.Feed(ctx, friend, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, feed, 2)

	_, total, err = env.posts.Feed(ctx, stranger, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	err = env.posts.Delete(ctx, stranger, public.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	require.NoError(t, env.posts.Delete(ctx, author, public.ID))
	_, err = env.posts.Get(ctx, public.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.actor(t, "author", domain.UserTypeAlumni)
	admin := env.actor(t, "admin", domain.UserTypeAdmin)

	post, err := env.posts.Create(ctx, author, ports.CreatePostInput{Content: "draft thoughts"})
	require.NoError(t, err)

	content := "final thoughts"
	_, err = env.posts.Update(ctx, admin, post.ID, ports.UpdatePostInput{Content: &content})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	private := domain.VisibilityPrivate
	updated, err := env.posts.Update(ctx, author, post.ID, ports.UpdatePostInput{Content: &content, Visibility: &private})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
	assert.Equal(t, domain.VisibilityPrivate, updated.Visibility)

	blank := "  "
	_, err = env.posts.Update(ctx, author, post.ID, ports.UpdatePostInput{Content: &blank})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPostService_EditAndDeleteComments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.actor(t, "author", domain.UserTypeAlumni)
	reader := env.actor(t, "reader", domain.UserTypeStudent)
	stranger := env.actor(t, "stranger", domain.UserTypeStudent)

	post, err := env.posts.Create(ctx, author, ports.CreatePostInput{Content: "ask me anything"})
	require.NoError(t, err)
	root, err := env.posts.AddComment(ctx, reader, post.ID, "how was the move?", nil)
	require.NoError(t, err)
	reply, err := env.posts.AddComment(ctx, author, post.ID, "smooth", &root.Comment.ID)
	require.NoError(t, err)
	_, err = env.posts.AddComment(ctx, reader, post.ID, "glad to hear", &reply.Comment.ID)
	require.NoError(t, err)
	other, err := env.posts.AddComment(ctx, stranger, post.ID, "unrelated", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 4, other.CommentsCount)

	_, err = env.posts.UpdateComment(ctx, author, root.Comment.ID, "edited")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	edited, err := env.posts.UpdateComment(ctx, reader, root.Comment.ID, "how was the relocation?")
	require.NoError(t, err)
	assert.Equal(t, "how was the relocation?", edited.Content)

	_, err = env.posts.DeleteComment(ctx, stranger, root.Comment.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// the post author may moderate the thread
	res, err := env.posts.DeleteComment(ctx, author, root.Comment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.CommentsCount, "the root and both replies are gone")

	comments, err := env.posts.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, other.Comment.ID, comments[0].ID)

	_, err = env.posts.DeleteComment(ctx, author, root.Comment.ID)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}
