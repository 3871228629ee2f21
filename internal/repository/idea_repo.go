package repository

import (
	"CommandCenter/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type IdeaRepo interface {
	CreateIdeaWithArtifact(ctx context.Context, idea *model.Idea, artifact *model.AIArtifact) error
	GetIdea(ctx context.Context, id string) (*model.Idea, error)
	ListIdeas(ctx context.Context, userID string, status model.IdeaStatus, page Page) ([]*model.Idea, int64, error)
	CountIdeas(ctx context.Context) (int64, error)
}

type IdeaRepoImpl struct {
	db *gorm.DB
}

func NewIdeaRepo(db *gorm.DB) IdeaRepo {
	return &IdeaRepoImpl{db: db}
}

// CreateIdeaWithArtifact 选题与首个大纲同事务写入
func (s *IdeaRepoImpl) CreateIdeaWithArtifact(ctx context.Context, idea *model.Idea, artifact *model.AIArtifact) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(idea).Error; err != nil {
			return err
		}
		if artifact == nil {
			return nil
		}
		artifact.IdeaID = &idea.ID
		return tx.Create(artifact).Error
	})
}

func (s *IdeaRepoImpl) GetIdea(ctx context.Context, id string) (*model.Idea, error) {
	idea := &model.Idea{}
	err := s.db.WithContext(ctx).Where("id = ?", id).First(idea).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return idea, nil
}

func (s *IdeaRepoImpl) ListIdeas(ctx context.Context, userID string, status model.IdeaStatus, page Page) ([]*model.Idea, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Idea{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ideas := make([]*model.Idea, 0)
	err := query.
		Preload("Artifacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&ideas).Error
	if err != nil {
		return nil, 0, err
	}
	return ideas, total, nil
}

func (s *IdeaRepoImpl) CountIdeas(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Idea{}).Count(&total).Error
	return total, err
}
