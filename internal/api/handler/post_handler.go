package handler

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/internal/api/middleware"
	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

type createPostRequest struct {
	Title       string          `json:"title" binding:"required"`
	Content     string          `json:"content" binding:"required"`
	Status      string          `json:"status"`
	Tags        json.RawMessage `json:"tags"`
	PublishedAt *time.Time      `json:"publishedAt"`
}

type updatePostRequest struct {
	ID          string          `json:"id" binding:"required"`
	Title       *string         `json:"title"`
	Content     *string         `json:"content"`
	Status      *string         `json:"status"`
	Tags        json.RawMessage `json:"tags"`
	PublishedAt *time.Time      `json:"publishedAt"`
}

type deletePostRequest struct {
	ID string `json:"id" binding:"required"`
}

type listPostsQuery struct {
	Scope     string `form:"scope"`
	Page      int    `form:"page,default=1"`
	Size      int    `form:"size,default=10"`
	SortBy    string `form:"sortBy,default=createdAt"`
	SortOrder string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
	Title     string `form:"title"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	AuthorID  string `form:"authorId"`
	Status    string `form:"status" binding:"omitempty,poststatus"`
}

// decodeTags turns the raw tags field into the normalizer's input. An absent
// field yields (nil, false); an explicit null yields (nil, true), which
// clears the set on update.
func decodeTags(raw json.RawMessage) (interface{}, bool, error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// CreatePost creates a post for the authenticated author.
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body createPostRequest true "post fields"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 401 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unprocessable(c, "title and content are required")
		return
	}
	tags, _, err := decodeTags(req.Tags)
	if err != nil {
		response.BadRequest(c, "invalid tags payload")
		return
	}

	detail, err := h.posts.Create(c.Request.Context(), actor.ID, service.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Status:      req.Status,
		Tags:        tags,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, detail)
}

// UpdatePost applies a partial update to a post owned by the caller (admins
// may edit any post).
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body updatePostRequest true "fields to change"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/posts [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unprocessable(c, "missing post id")
		return
	}
	tags, tagsSet, err := decodeTags(req.Tags)
	if err != nil {
		response.BadRequest(c, "invalid tags payload")
		return
	}

	detail, err := h.posts.Update(c.Request.Context(), actor, service.UpdatePostInput{
		ID:          req.ID,
		Title:       req.Title,
		Content:     req.Content,
		Status:      req.Status,
		Tags:        tags,
		TagsSet:     tagsSet,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, detail)
}

// DeletePost removes a post and recounts the author's posts.
// @Summary Delete a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body deletePostRequest true "post id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req deletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unprocessable(c, "missing post id")
		return
	}

	if err := h.posts.Delete(c.Request.Context(), actor, req.ID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListPosts returns a filtered, paginated post list. scope=public needs no
// auth and is pinned to published posts; otherwise non-admins only see their
// own posts.
// @Summary List posts
// @Tags posts
// @Param scope query string false "public for the anonymous feed"
// @Param page query int false "page" default(1)
// @Param size query int false "page size" default(10)
// @Param sortBy query string false "createdAt or title"
// @Param sortOrder query string false "asc or desc"
// @Param title query string false "title substring filter"
// @Param startDate query string false "createdAt lower bound (YYYY-MM-DD)"
// @Param endDate query string false "createdAt upper bound (YYYY-MM-DD)"
// @Param authorId query string false "filter by author"
// @Param status query string false "status filter (non-public scope)"
// @Success 200 {object} response.Response{data=service.PostPage}
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Unprocessable(c, "invalid list filters")
		return
	}

	public := q.Scope == "public"
	actor, authed := middleware.ActorFrom(c)
	if !public && !authed {
		response.Unauthorized(c)
		return
	}

	in := service.ListPostsInput{
		Page:      q.Page,
		Size:      q.Size,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Title:     q.Title,
		StartDate: parseDate(q.StartDate, false),
		EndDate:   parseDate(q.EndDate, true),
		AuthorID:  q.AuthorID,
		Status:    strings.ToLower(q.Status),
		Public:    public,
	}

	var actorPtr *service.Actor
	if authed {
		actorPtr = &actor
	}
	pageData, err := h.posts.List(c.Request.Context(), actorPtr, in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, pageData)
}

// GetPost returns a single post. Published posts are public; drafts and
// scheduled posts require the author or an admin.
// @Summary Get post detail
// @Tags posts
// @Param id path string true "post id"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	var actorPtr *service.Actor
	if actor, ok := middleware.ActorFrom(c); ok {
		actorPtr = &actor
	}
	detail, err := h.posts.Get(c.Request.Context(), actorPtr, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, detail)
}

// parseDate accepts YYYY-MM-DD or RFC3339; end bounds snap to end of day.
func parseDate(s string, endOfDay bool) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}
