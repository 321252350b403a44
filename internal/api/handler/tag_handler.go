package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-platform/pkg/response"
)

type createTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListTags returns all tags, seeding the preset names first.
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Tag}
// @Router /api/v1/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, tags)
}

// CreateTag creates a tag under the same sanitize and length rules as post
// tags.
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body createTagRequest true "tag name"
// @Success 201 {object} response.Response{data=model.Tag}
// @Failure 422 {object} response.Response
// @Router /api/v1/tags [post]
func (h *Handler) CreateTag(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unprocessable(c, "please input a tag name")
		return
	}
	tag, err := h.tags.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, tag)
}
