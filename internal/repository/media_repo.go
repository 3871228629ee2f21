package repository

import (
	"CommandCenter/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// MediaFilter 媒体查询条件，MimePrefix 按前缀匹配
type MediaFilter struct {
	Provider   string
	MimePrefix string
}

type MediaRepo interface {
	CreateMedia(ctx context.Context, media *model.Media) error
	GetMedia(ctx context.Context, id string) (*model.Media, error)
	DeleteMedia(ctx context.Context, id string) error
	ListMedia(ctx context.Context, filter MediaFilter, page Page) ([]*model.Media, int64, error)
	CountMedia(ctx context.Context) (int64, error)
}

type MediaRepoImpl struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) MediaRepo {
	return &MediaRepoImpl{db: db}
}

func (s *MediaRepoImpl) CreateMedia(ctx context.Context, media *model.Media) error {
	return s.db.WithContext(ctx).Create(media).Error
}

func (s *MediaRepoImpl) GetMedia(ctx context.Context, id string) (*model.Media, error) {
	media := &model.Media{}
	err := s.db.WithContext(ctx).Where("id = ?", id).First(media).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return media, nil
}

func (s *MediaRepoImpl) DeleteMedia(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Media{}).Error
}

func (s *MediaRepoImpl) ListMedia(ctx context.Context, filter MediaFilter, page Page) ([]*model.Media, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Media{})
	if filter.Provider != "" {
		query = query.Where("provider = ?", filter.Provider)
	}
	if filter.MimePrefix != "" {
		query = query.Where("mimetype LIKE ?", filter.MimePrefix+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	media := make([]*model.Media, 0)
	err := query.Order("created_at DESC").Offset(page.Offset).Limit(page.Limit).Find(&media).Error
	if err != nil {
		return nil, 0, err
	}
	return media, total, nil
}

func (s *MediaRepoImpl) CountMedia(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Media{}).Count(&total).Error
	return total, err
}
