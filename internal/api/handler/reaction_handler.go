package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/internal/api/middleware"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

// ToggleLike flips the caller's like on a post.
// @Summary Toggle like
// @Tags reactions
// @Param id path string true "post id"
// @Success 200 {object} response.Response{data=service.LikeResult}
// @Failure 401 {object} response.Response
// @Router /api/v1/posts/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	result, err := h.reactions.ToggleLike(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// ToggleFavorite flips the caller's favorite on a post.
// @Summary Toggle favorite
// @Tags reactions
// @Param id path string true "post id"
// @Success 200 {object} response.Response{data=service.FavoriteResult}
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/favorite [post]
func (h *Handler) ToggleFavorite(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	result, err := h.reactions.ToggleFavorite(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}
