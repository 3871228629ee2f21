package repository

import (
	"CommandCenter/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post, artifactIDs []string) error
	GetPost(ctx context.Context, id string) (*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context, status model.PostStatus, page Page) ([]*model.Post, int64, error)
	CountPosts(ctx context.Context, status model.PostStatus) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// CreatePost 写入文章并关联选题下尚未挂载的产出物以及显式指定的产出物
func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, artifactIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if post.IdeaID != nil {
			err := tx.Model(&model.AIArtifact{}).
				Where("idea_id = ? AND post_id IS NULL", *post.IdeaID).
				Update("post_id", post.ID).Error
			if err != nil {
				return err
			}
		}
		if len(artifactIDs) > 0 {
			err := tx.Model(&model.AIArtifact{}).
				Where("id IN ?", artifactIDs).
				Update("post_id", post.ID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("Artifacts").Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).
		Model(post).
		Select("title", "content", "status", "risk_level", "scheduled_at", "published_at", "updated_at").
		Updates(post).Error
}

// DeletePost 删除文章，关联的产出物解除挂载后保留
func (s *PostRepoImpl) DeletePost(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.AIArtifact{}).Where("post_id = ?", id).Update("post_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, status model.PostStatus, page Page) ([]*model.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Post{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*model.Post, 0)
	err := query.Order("updated_at DESC").Offset(page.Offset).Limit(page.Limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostRepoImpl) CountPosts(ctx context.Context, status model.PostStatus) (int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Post{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}
