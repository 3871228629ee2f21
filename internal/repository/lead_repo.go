package repository

import (
	"CommandCenter/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// LeadFilter 线索查询条件，IDs 非空时只在给定集合内查询
type LeadFilter struct {
	Status model.LeadStatus
	Source string
	IDs    []string
}

type LeadRepo interface {
	CreateLead(ctx context.Context, lead *model.Lead) error
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	GetLeadByEmail(ctx context.Context, email string) (*model.Lead, error)
	UpdateLead(ctx context.Context, lead *model.Lead) error
	ListLeads(ctx context.Context, filter LeadFilter, page Page) ([]*model.Lead, int64, error)
	ListAllLeads(ctx context.Context, filter LeadFilter) ([]*model.Lead, error)
	CountLeads(ctx context.Context) (int64, error)
}

type LeadRepoImpl struct {
	db *gorm.DB
}

func NewLeadRepo(db *gorm.DB) LeadRepo {
	return &LeadRepoImpl{db: db}
}

func (s *LeadRepoImpl) CreateLead(ctx context.Context, lead *model.Lead) error {
	return s.db.WithContext(ctx).Create(lead).Error
}

func (s *LeadRepoImpl) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *LeadRepoImpl) GetLeadByEmail(ctx context.Context, email string) (*model.Lead, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *LeadRepoImpl) first(ctx context.Context, cond string, arg interface{}) (*model.Lead, error) {
	lead := &model.Lead{}
	err := s.db.WithContext(ctx).Where(cond, arg).First(lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return lead, nil
}

func (s *LeadRepoImpl) UpdateLead(ctx context.Context, lead *model.Lead) error {
	return s.db.WithContext(ctx).
		Model(lead).
		Select("status", "notes", "score", "updated_at").
		Updates(lead).Error
}

func (s *LeadRepoImpl) scoped(ctx context.Context, filter LeadFilter) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&model.Lead{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}
	return query
}

func (s *LeadRepoImpl) ListLeads(ctx context.Context, filter LeadFilter, page Page) ([]*model.Lead, int64, error) {
	query := s.scoped(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	leads := make([]*model.Lead, 0)
	err := query.Order("created_at DESC").Offset(page.Offset).Limit(page.Limit).Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (s *LeadRepoImpl) ListAllLeads(ctx context.Context, filter LeadFilter) ([]*model.Lead, error) {
	leads := make([]*model.Lead, 0)
	err := s.scoped(ctx, filter).Order("created_at DESC").Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (s *LeadRepoImpl) CountLeads(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Lead{}).Count(&total).Error
	return total, err
}
