package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/internal/api/middleware"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

// ListAuthors returns users that can appear in the author filter.
// @Summary List authors
// @Tags users
// @Success 200 {object} response.Response{data=[]service.Author}
// @Failure 401 {object} response.Response
// @Router /api/v1/users/authors [get]
func (h *Handler) ListAuthors(c *gin.Context) {
	if _, ok := middleware.ActorFrom(c); !ok {
		response.Unauthorized(c)
		return
	}
	authors, err := h.users.ListAuthors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, authors)
}
