package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// List returns public posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        author_id  query     int     false  "Author"
// @Param        post_type  query     string  false  "Post type"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Param        offset     query     int     false  "Offset"
// @Success      200        {object}  listResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	var q listPostsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	posts, total, err := h.posts.List(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page(total, posts))
}

// Create publishes a post.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  map[string]any
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Feed returns the caller's posts and those of their connections.
//
// @Summary      Personal feed
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (max 100)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  listResponse
// @Router       /posts/feed [get]
func (h *PostHandler) Feed(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var q PageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	posts, total, err := h.posts.Feed(c.Request().Context(), actor, q.Limit, q.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page(total, posts))
}

// Get returns one post.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	post, err := h.posts.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Update edits a post owned by the caller.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Post ID"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  domain.Post
// @Failure      403   {object}  map[string]string
// @Router       /posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Update(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post owned by the caller.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Like toggles the caller's reaction on a post.
//
// @Summary      Toggle like
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true   "Post ID"
// @Param        body  body      likeRequest  false  "Reaction (default like)"
// @Success      200   {object}  domain.LikeResult
// @Failure      404   {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) Like(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req likeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.posts.ToggleLike(c.Request().Context(), actor, id, domain.ReactionType(req.ReactionType))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Bookmark toggles the caller's bookmark on a post.
//
// @Summary      Toggle bookmark
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  domain.BookmarkResult
// @Router       /posts/{id}/bookmark [post]
func (h *PostHandler) Bookmark(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.posts.ToggleBookmark(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Comment adds a comment, optionally replying to another comment of the same post.
//
// @Summary      Add a comment
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Post ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  domain.CommentResult
// @Failure      404   {object}  map[string]string
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) Comment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.posts.AddComment(c.Request().Context(), actor, id, req.Content, req.ParentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

// UpdateComment changes the text of the caller's comment.
//
// @Summary      Edit a comment
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Comment ID"
// @Param        body  body      updateCommentRequest  true  "New text"
// @Success      200   {object}  domain.PostComment
// @Failure      403   {object}  map[string]string
// @Router       /comments/{id} [patch]
func (h *PostHandler) UpdateComment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req updateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.posts.UpdateComment(c.Request().Context(), actor, id, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment and its replies.
//
// @Summary      Delete a comment
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  domain.CommentResult
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.posts.DeleteComment(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Comments lists a post's comments, oldest first.
//
// @Summary      List comments
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {array}   domain.PostComment
// @Router       /posts/{id}/comments [get]
func (h *PostHandler) Comments(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.posts.ListComments(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// Share records a share; every share counts.
//
// @Summary      Share a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true   "Post ID"
// @Param        body  body      shareRequest  false  "Share details"
// @Success      201   {object}  domain.ShareResult
// @Router       /posts/{id}/share [post]
func (h *PostHandler) Share(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req shareRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.posts.AddShare(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

// Bookmarks lists the caller's bookmarked posts.
//
// @Summary      Own bookmarks
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.PostBookmark
// @Router       /users/me/bookmarks [get]
func (h *PostHandler) Bookmarks(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	list, err := h.posts.Bookmarks(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
