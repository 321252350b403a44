package service

import (
	"context"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/sanitize"
)

type TagService struct {
	tags repository.TagRepository
}

func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// List seeds the preset names idempotently and returns all tags ascending.
func (s *TagService) List(ctx context.Context) ([]*model.Tag, error) {
	if err := s.tags.EnsurePreset(ctx, model.PresetTagNames); err != nil {
		return nil, err
	}
	return s.tags.List(ctx)
}

// Create applies the same sanitize + length rules as post tags.
func (s *TagService) Create(ctx context.Context, rawName string) (*model.Tag, error) {
	name := sanitize.PlainText(rawName)
	if name == "" {
		return nil, errTagNameRequired
	}
	if len([]rune(name)) < model.TagNameMinLength {
		return nil, errTagTooShort
	}
	if len([]rune(name)) > model.TagNameMaxLength {
		return nil, errTagTooLong
	}
	return s.tags.Create(ctx, name)
}
