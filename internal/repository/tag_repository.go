package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/blog-platform/internal/model"
)

type TagRepository interface {
	List(ctx context.Context) ([]*model.Tag, error)
	Create(ctx context.Context, name string) (*model.Tag, error)
	// GetOrCreateByNames resolves each name to an existing row by exact match
	// or creates it ("connect or create").
	GetOrCreateByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*model.Tag, error)
	EnsurePreset(ctx context.Context, names []string) error
}

type tagRepository struct{ db *gorm.DB }

func NewTagRepository(db *gorm.DB) TagRepository { return &tagRepository{db: db} }

func (r *tagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{ID: uuid.New().String(), Name: name}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *tagRepository) GetOrCreateByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*model.Tag, error) {
	tags := make([]*model.Tag, 0, len(names))
	for _, name := range names {
		var tag model.Tag
		err := tx.WithContext(ctx).
			Where("name = ?", name).
			Attrs(model.Tag{ID: uuid.New().String()}).
			FirstOrCreate(&tag, model.Tag{Name: name}).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, nil
}

func (r *tagRepository) EnsurePreset(ctx context.Context, names []string) error {
	rows := make([]model.Tag, 0, len(names))
	for _, name := range names {
		rows = append(rows, model.Tag{ID: uuid.New().String(), Name: name})
	}
	// idempotent seed, existing names are left alone
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
}
