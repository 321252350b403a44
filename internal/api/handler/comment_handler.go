package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/internal/api/middleware"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

type createCommentRequest struct {
	PostID  string `json:"postId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateComment attaches a comment to a post, authored by the caller.
// @Summary Create a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param request body createCommentRequest true "comment"
// @Success 201 {object} response.Response{data=service.CommentView}
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unprocessable(c, "postId and content are required")
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), actor, req.PostID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, comment)
}

// ListComments returns a post's comments, newest first.
// @Summary List comments for a post
// @Tags comments
// @Param postId query string true "post id"
// @Success 200 {object} response.Response{data=[]service.CommentView}
// @Router /api/v1/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		response.BadRequest(c, "postId is required")
		return
	}
	comments, err := h.comments.ListByPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, comments)
}
