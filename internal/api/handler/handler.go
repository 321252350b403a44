package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

type Handler struct {
	posts     *service.PostService
	tags      *service.TagService
	comments  *service.CommentService
	reactions *service.ReactionService
	users     *service.UserService
}

func New(
	posts *service.PostService,
	tags *service.TagService,
	comments *service.CommentService,
	reactions *service.ReactionService,
	users *service.UserService,
) *Handler {
	return &Handler{posts: posts, tags: tags, comments: comments, reactions: reactions, users: users}
}

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Unprocessable(c, ve.Message)
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
