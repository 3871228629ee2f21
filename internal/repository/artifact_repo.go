package repository

import (
	"CommandCenter/internal/model"
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ArtifactFilter 产出物查询条件，零值字段不参与过滤
type ArtifactFilter struct {
	UserID        string
	Types         []model.ArtifactType
	Status        model.ArtifactStatus
	TitleContains string
	OldestFirst   bool
	Limit         int
}

// ArtifactReview 一次审核的写入内容，Content 为空时保留原内容
type ArtifactReview struct {
	Status     model.ArtifactStatus
	ApprovedAt *time.Time
	Content    datatypes.JSON
	Metadata   datatypes.JSONMap
}

type ArtifactRepo interface {
	CreateArtifact(ctx context.Context, artifact *model.AIArtifact) error
	GetArtifact(ctx context.Context, id string) (*model.AIArtifact, error)
	ListArtifacts(ctx context.Context, filter ArtifactFilter) ([]*model.AIArtifact, error)
	ReviewArtifact(ctx context.Context, id string, review ArtifactReview) (*model.AIArtifact, error)
	CountArtifacts(ctx context.Context, types []model.ArtifactType, status model.ArtifactStatus) (int64, error)
	ListStalePending(ctx context.Context, before time.Time) ([]*model.AIArtifact, error)
}

type ArtifactRepoImpl struct {
	db *gorm.DB
}

func NewArtifactRepo(db *gorm.DB) ArtifactRepo {
	return &ArtifactRepoImpl{db: db}
}

func (s *ArtifactRepoImpl) CreateArtifact(ctx context.Context, artifact *model.AIArtifact) error {
	return s.db.WithContext(ctx).Create(artifact).Error
}

func (s *ArtifactRepoImpl) GetArtifact(ctx context.Context, id string) (*model.AIArtifact, error) {
	artifact := &model.AIArtifact{}
	err := s.db.WithContext(ctx).Where("id = ?", id).First(artifact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return artifact, nil
}

func (s *ArtifactRepoImpl) ListArtifacts(ctx context.Context, filter ArtifactFilter) ([]*model.AIArtifact, error) {
	query := s.db.WithContext(ctx).Model(&model.AIArtifact{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TitleContains != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.TitleContains)+"%")
	}
	if filter.OldestFirst {
		query = query.Order("created_at ASC")
	} else {
		query = query.Order("created_at DESC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	artifacts := make([]*model.AIArtifact, 0)
	if err := query.Find(&artifacts).Error; err != nil {
		return nil, err
	}
	return artifacts, nil
}

// ReviewArtifact 仅当产出物仍处于待审核时写入结论，通过时级联激活关联选题
func (s *ArtifactRepoImpl) ReviewArtifact(ctx context.Context, id string, review ArtifactReview) (*model.AIArtifact, error) {
	artifact := &model.AIArtifact{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":      review.Status,
			"approved":    review.Status == model.ArtifactApproved,
			"approved_at": review.ApprovedAt,
			"metadata":    review.Metadata,
		}
		if review.Content != nil {
			updates["content"] = review.Content
		}

		result := tx.Model(&model.AIArtifact{}).
			Where("id = ? AND status = ?", id, model.ArtifactPendingReview).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleState
		}

		if err := tx.Where("id = ?", id).First(artifact).Error; err != nil {
			return err
		}

		if review.Status == model.ArtifactApproved && artifact.IdeaID != nil {
			return tx.Model(&model.Idea{}).
				Where("id = ?", *artifact.IdeaID).
				Update("status", model.IdeaStatusActive).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

func (s *ArtifactRepoImpl) CountArtifacts(ctx context.Context, types []model.ArtifactType, status model.ArtifactStatus) (int64, error) {
	query := s.db.WithContext(ctx).Model(&model.AIArtifact{})
	if len(types) > 0 {
		query = query.Where("type IN ?", types)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}

// ListStalePending 返回 before 之前创建且仍未审核的产出物
func (s *ArtifactRepoImpl) ListStalePending(ctx context.Context, before time.Time) ([]*model.AIArtifact, error) {
	artifacts := make([]*model.AIArtifact, 0)
	err := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.ArtifactPendingReview, before).
		Order("created_at ASC").
		Find(&artifacts).Error
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}
