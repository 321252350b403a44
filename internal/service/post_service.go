package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/pkg/sanitize"
)

// Actor is the authenticated caller, as resolved by the auth middleware.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

type CreatePostInput struct {
	Title       string
	Content     string
	Status      string
	Tags        interface{}
	PublishedAt *time.Time
}

type UpdatePostInput struct {
	ID          string
	Title       *string
	Content     *string
	Status      *string
	Tags        interface{}
	TagsSet     bool
	PublishedAt *time.Time
}

type ListPostsInput struct {
	Page      int
	Size      int
	SortBy    string
	SortOrder string
	Title     string
	StartDate *time.Time
	EndDate   *time.Time
	AuthorID  string
	Status    string
	Public    bool
}

type AuthorInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TagInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PostListItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	Likes         int64      `json:"likes"`
	Views         int64      `json:"views"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	PublishedAt   *time.Time `json:"publishedAt"`
	Author        AuthorInfo `json:"author"`
	CommentsCount int64      `json:"commentsCount"`
}

type PostDetail struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	Likes         int64      `json:"likes"`
	Views         int64      `json:"views"`
	Tags          []TagInfo  `json:"tags"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	PublishedAt   *time.Time `json:"publishedAt"`
	AuthorID      string     `json:"authorId"`
	Author        AuthorInfo `json:"author"`
	CommentsCount int64      `json:"commentsCount"`
}

type PostPage struct {
	List  []*PostListItem `json:"list"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Total int64           `json:"total"`
}

// DetailCache is implemented by internal/cache.RedisClient. A nil cache
// disables caching.
type DetailCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
	Del(ctx context.Context, key string) error
}

func detailCacheKey(postID string) string { return "post:detail:" + postID }

// PostService owns the post lifecycle: slug assignment, status transitions,
// tag association and the author postCount cache.
type PostService struct {
	db       *gorm.DB
	posts    repository.PostRepository
	tags     repository.TagRepository
	users    repository.UserRepository
	likes    repository.LikeRepository
	comments repository.CommentRepository
	cache    DetailCache
	views    *ViewCounter
}

func NewPostService(
	db *gorm.DB,
	posts repository.PostRepository,
	tags repository.TagRepository,
	users repository.UserRepository,
	likes repository.LikeRepository,
	comments repository.CommentRepository,
	postCache DetailCache,
	views *ViewCounter,
) *PostService {
	return &PostService{
		db:       db,
		posts:    posts,
		tags:     tags,
		users:    users,
		likes:    likes,
		comments: comments,
		cache:    postCache,
		views:    views,
	}
}

// normalizeStatus lowercases and falls back to draft for anything unknown.
func normalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if model.IsValidStatus(s) {
		return s
	}
	return model.StatusDraft
}

func (s *PostService) Create(ctx context.Context, authorID string, in CreatePostInput) (*PostDetail, error) {
	title := strings.TrimSpace(in.Title)
	status := normalizeStatus(in.Status)
	plain := sanitize.PlainText(in.Content)

	tagNames, err := NormalizeTagNames(in.Tags)
	if err != nil {
		return nil, err
	}

	var publishedAt *time.Time
	if status == model.StatusScheduled {
		if in.PublishedAt == nil {
			return nil, errMissingPublishTime
		}
		if !in.PublishedAt.After(time.Now()) {
			return nil, errPublishTimeNotFutur
		}
		publishedAt = in.PublishedAt
	}

	if title == "" || plain == "" {
		return nil, errTitleContentNeeded
	}

	slug, err := s.generateUniqueSlug(ctx, title, "")
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:          uuid.New().String(),
		Title:       title,
		Slug:        slug,
		Content:     sanitize.HTML(in.Content),
		Status:      status,
		PublishedAt: publishedAt,
		AuthorID:    authorID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.Create(ctx, tx, post); err != nil {
			return err
		}
		if len(tagNames) > 0 {
			tagRows, err := s.tags.GetOrCreateByNames(ctx, tx, tagNames)
			if err != nil {
				return err
			}
			if err := tx.WithContext(ctx).Model(post).Association("Tags").Append(tagRows); err != nil {
				return err
			}
		}
		return s.recountAuthorPosts(ctx, tx, authorID)
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, post.ID)
}

func (s *PostService) Update(ctx context.Context, actor Actor, in UpdatePostInput) (*PostDetail, error) {
	if in.ID == "" {
		return nil, errMissingPostID
	}

	post, err := s.posts.GetByID(ctx, in.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && post.AuthorID != actor.ID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}

	if in.Status != nil {
		newStatus := normalizeStatus(*in.Status)
		updates["status"] = newStatus

		if newStatus == model.StatusScheduled {
			if in.PublishedAt == nil {
				return nil, errMissingPublishTime
			}
			if !in.PublishedAt.After(time.Now()) {
				return nil, errPublishTimeNotFutur
			}
			updates["published_at"] = *in.PublishedAt
		} else if post.Status == model.StatusScheduled {
			// leaving the scheduled state publishes now
			updates["published_at"] = time.Now()
		}
	}

	if in.Title != nil {
		// a blank title is ignored, the stored title and slug stay as they are
		title := strings.TrimSpace(*in.Title)
		if title != "" {
			updates["title"] = title
			if title != post.Title {
				slug, err := s.generateUniqueSlug(ctx, title, post.ID)
				if err != nil {
					return nil, err
				}
				updates["slug"] = slug
			}
		}
	}

	if in.Content != nil {
		if sanitize.PlainText(*in.Content) == "" {
			return nil, errEmptyContent
		}
		updates["content"] = sanitize.HTML(*in.Content)
	}

	var tagNames []string
	if in.TagsSet {
		tagNames, err = NormalizeTagNames(in.Tags)
		if err != nil {
			return nil, err
		}
	}

	if len(updates) == 0 && !in.TagsSet {
		return nil, errNothingToUpdate
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.WithContext(ctx).Model(&model.Post{}).
				Where("id = ?", post.ID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if in.TagsSet {
			return s.replaceTags(ctx, tx, post, tagNames)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, detailCacheKey(post.ID))
	}
	return s.detail(ctx, post.ID)
}

// replaceTags swaps the post's tag set for the target names: resolve rows by
// connect-or-create, then attach/detach the diff inside the transaction.
func (s *PostService) replaceTags(ctx context.Context, tx *gorm.DB, post *model.Post, names []string) error {
	target, err := s.tags.GetOrCreateByNames(ctx, tx, names)
	if err != nil {
		return err
	}

	wanted := make(map[string]*model.Tag, len(target))
	for _, t := range target {
		wanted[t.ID] = t
	}

	var detach []*model.Tag
	current := make(map[string]struct{}, len(post.Tags))
	for _, t := range post.Tags {
		current[t.ID] = struct{}{}
		if _, keep := wanted[t.ID]; !keep {
			detach = append(detach, t)
		}
	}
	var attach []*model.Tag
	for id, t := range wanted {
		if _, has := current[id]; !has {
			attach = append(attach, t)
		}
	}

	// gorm association objects are single-use, build one per operation
	if len(detach) > 0 {
		if err := tx.WithContext(ctx).Model(post).Association("Tags").Delete(detach); err != nil {
			return err
		}
	}
	if len(attach) > 0 {
		if err := tx.WithContext(ctx).Model(post).Association("Tags").Append(attach); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostService) Delete(ctx context.Context, actor Actor, id string) error {
	if id == "" {
		return errMissingPostID
	}

	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && post.AuthorID != actor.ID {
		return ErrForbidden
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Model(post).Association("Tags").Clear(); err != nil {
			return err
		}
		for _, m := range []interface{}{&model.Like{}, &model.Favorite{}, &model.Comment{}} {
			if err := tx.WithContext(ctx).Where("post_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := s.posts.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.recountAuthorPosts(ctx, tx, post.AuthorID)
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, detailCacheKey(id))
	}
	return nil
}

// Get returns the post detail. Published posts are public and count a view;
// anything else requires the author or an admin.
func (s *PostService) Get(ctx context.Context, actor *Actor, id string) (*PostDetail, error) {
	if s.cache != nil {
		var cached PostDetail
		// only published details are ever cached, so a hit is public
		if ok, err := s.cache.GetJSON(ctx, detailCacheKey(id), &cached); err == nil && ok {
			s.countView(&cached)
			return &cached, nil
		}
	}

	d, err := s.detail(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if d.Status != model.StatusPublished {
		if actor == nil {
			return nil, ErrForbidden
		}
		if !actor.IsAdmin() && d.AuthorID != actor.ID {
			return nil, ErrForbidden
		}
		return d, nil
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, detailCacheKey(d.ID), d)
	}
	s.countView(d)
	return d, nil
}

func (s *PostService) countView(d *PostDetail) {
	if s.views != nil && d.Status == model.StatusPublished {
		s.views.Record(d.ID)
	}
}

func (s *PostService) List(ctx context.Context, actor *Actor, in ListPostsInput) (*PostPage, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Size < 1 {
		in.Size = 10
	}

	f := repository.ListFilter{
		Page:      in.Page,
		Size:      in.Size,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
		Title:     strings.TrimSpace(in.Title),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}

	if in.Public {
		f.Status = model.StatusPublished
		if in.AuthorID != "" && in.AuthorID != "all" {
			f.AuthorID = in.AuthorID
		}
	} else {
		if actor == nil {
			return nil, ErrForbidden
		}
		if in.AuthorID != "" && in.AuthorID != "all" {
			if !actor.IsAdmin() && in.AuthorID != actor.ID {
				return nil, ErrForbidden
			}
			f.AuthorID = in.AuthorID
		} else if !actor.IsAdmin() {
			f.AuthorID = actor.ID
		}
		f.Status = in.Status
	}

	posts, total, err := s.posts.List(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	likeCounts, err := s.likes.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.comments.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	list := make([]*PostListItem, len(posts))
	for i, p := range posts {
		list[i] = &PostListItem{
			ID:            p.ID,
			Title:         p.Title,
			Status:        p.Status,
			Likes:         likeCounts[p.ID],
			Views:         p.Views,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
			PublishedAt:   p.PublishedAt,
			Author:        authorInfo(p.Author, p.AuthorID),
			CommentsCount: commentCounts[p.ID],
		}
	}

	return &PostPage{List: list, Page: in.Page, Size: in.Size, Total: total}, nil
}

func (s *PostService) recountAuthorPosts(ctx context.Context, tx *gorm.DB, authorID string) error {
	total, err := s.posts.CountByAuthor(ctx, tx, authorID)
	if err != nil {
		return err
	}
	return s.users.UpdatePostCount(ctx, tx, authorID, total)
}

func (s *PostService) detail(ctx context.Context, id string) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.likes.CountByPost(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.comments.CountByPostIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	tags := make([]TagInfo, len(post.Tags))
	for i, t := range post.Tags {
		tags[i] = TagInfo{ID: t.ID, Name: t.Name}
	}

	return &PostDetail{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Content:       post.Content,
		Status:        post.Status,
		Likes:         likeCount,
		Views:         post.Views,
		Tags:          tags,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
		PublishedAt:   post.PublishedAt,
		AuthorID:      post.AuthorID,
		Author:        authorInfo(post.Author, post.AuthorID),
		CommentsCount: commentCounts[id],
	}, nil
}

func authorInfo(u *model.User, fallbackID string) AuthorInfo {
	if u == nil {
		return AuthorInfo{ID: fallbackID}
	}
	return AuthorInfo{ID: u.ID, Name: u.Name}
}
