package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/es"
	"CommandCenter/internal/pkg/mongo"
	"CommandCenter/internal/pkg/util"
	"CommandCenter/internal/repository"
	"context"
	"encoding/csv"
	"errors"
	"io"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultLeadSource 未带来源信息的线索
const DefaultLeadSource = "website"

var leadCSVHeader = []string{
	"id", "email", "name", "company", "source", "utm_source", "utm_medium", "utm_campaign",
	"status", "score", "notes", "message", "created_at",
}

type LeadService interface {
	Capture(ctx context.Context, req *dto.LeadCaptureDTO) (*dto.LeadDTO, error)
	ListLeads(ctx context.Context, query *dto.LeadListQuery) (*dto.LeadPageDTO, error)
	UpdateLead(ctx context.Context, actor dto.Actor, id string, req *dto.LeadUpdateDTO) (*dto.LeadDTO, error)
	ExportCSV(ctx context.Context, query *dto.LeadListQuery, w io.Writer) error
	ProcessLeadEvent(ctx context.Context, event *dto.Event) error
}

type leadServiceImpl struct {
	leadRepo  repository.LeadRepo
	leadIndex es.LeadRepo
	notifier  NotificationService
	events    EventBus
}

// NewLeadService leadIndex 为 nil 时关键词检索不可用
func NewLeadService(leadRepo repository.LeadRepo, leadIndex es.LeadRepo, notifier NotificationService, events EventBus) LeadService {
	return &leadServiceImpl{
		leadRepo:  leadRepo,
		leadIndex: leadIndex,
		notifier:  notifier,
		events:    events,
	}
}

// Capture 公开表单提交线索，同一邮箱只记录一次
func (s *leadServiceImpl) Capture(ctx context.Context, req *dto.LeadCaptureDTO) (*dto.LeadDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.leadRepo.GetLeadByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLeadExists
	}

	lead := &model.Lead{
		Email:       email,
		Name:        util.NilIfEmpty(util.Deref(req.Name)),
		Company:     util.NilIfEmpty(util.Deref(req.Company)),
		Message:     util.NilIfEmpty(util.Deref(req.Message)),
		Source:      resolveLeadSource(req),
		UTMSource:   util.NilIfEmpty(util.Deref(req.UTMSource)),
		UTMMedium:   util.NilIfEmpty(util.Deref(req.UTMMedium)),
		UTMCampaign: util.NilIfEmpty(util.Deref(req.UTMCampaign)),
		Status:      model.LeadNew,
	}
	lead.Score = lead.ComputeScore()

	if err = s.leadRepo.CreateLead(ctx, lead); err != nil {
		// 并发提交同一邮箱时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLeadExists
		}
		return nil, err
	}

	log.InfoContext(ctx, "lead captured", "lead_id", lead.ID, "source", lead.Source, "score", lead.Score)
	s.events.Publish(ctx, dto.NewEvent(dto.EventLeadCaptured, lead.ID, "", map[string]any{
		"email":     lead.Email,
		"name":      lead.DisplayName(),
		"source":    lead.Source,
		"score":     lead.Score,
		"highValue": lead.IsHighValue(),
	}))
	return toLeadDTO(lead), nil
}

func (s *leadServiceImpl) ListLeads(ctx context.Context, query *dto.LeadListQuery) (*dto.LeadPageDTO, error) {
	page, limit := util.NormalizePage(query.Page, query.Limit, consts.DefaultPageSize, consts.MaxPageSize)
	pagination := dto.Pagination{Page: page, Limit: limit}

	filter, matched, err := s.filter(ctx, query)
	if err != nil {
		return nil, err
	}
	if !matched {
		return &dto.LeadPageDTO{Leads: []*dto.LeadDTO{}, Pagination: pagination}, nil
	}

	leads, total, err := s.leadRepo.ListLeads(ctx, filter, repository.Page{
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LeadDTO, 0, len(leads))
	for _, l := range leads {
		res = append(res, toLeadDTO(l))
	}
	pagination.Total = total
	pagination.Pages = util.TotalPages(total, limit)
	return &dto.LeadPageDTO{Leads: res, Pagination: pagination}, nil
}

func (s *leadServiceImpl) UpdateLead(ctx context.Context, actor dto.Actor, id string, req *dto.LeadUpdateDTO) (*dto.LeadDTO, error) {
	lead, err := s.leadRepo.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	if req.Status != nil {
		status := model.LeadStatus(*req.Status)
		if !model.ValidLeadStatus(status) {
			return nil, ErrParamInvalid
		}
		lead.Status = status
	}
	if req.Notes != nil {
		lead.Notes = util.NilIfEmpty(*req.Notes)
	}
	lead.Score = lead.ComputeScore()
	lead.UpdatedAt = time.Now()

	if err = s.leadRepo.UpdateLead(ctx, lead); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, dto.NewEvent(dto.EventLeadUpdated, lead.ID, actor.UserID, map[string]any{
		"status": lead.Status,
	}))
	return toLeadDTO(lead), nil
}

// ExportCSV 按筛选条件导出全部线索
func (s *leadServiceImpl) ExportCSV(ctx context.Context, query *dto.LeadListQuery, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(leadCSVHeader); err != nil {
		return err
	}

	filter, matched, err := s.filter(ctx, query)
	if err != nil {
		return err
	}
	if matched {
		leads, err := s.leadRepo.ListAllLeads(ctx, filter)
		if err != nil {
			return err
		}
		for _, l := range leads {
			record := []string{
				l.ID,
				l.Email,
				util.Deref(l.Name),
				util.Deref(l.Company),
				l.Source,
				util.Deref(l.UTMSource),
				util.Deref(l.UTMMedium),
				util.Deref(l.UTMCampaign),
				string(l.Status),
				strconv.Itoa(l.Score),
				util.Deref(l.Notes),
				util.Deref(l.Message),
				l.CreatedAt.UTC().Format(time.RFC3339),
			}
			if err = writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// ProcessLeadEvent 消费线索事件：同步检索索引，高价值新线索通知所有管理员
func (s *leadServiceImpl) ProcessLeadEvent(ctx context.Context, event *dto.Event) error {
	lead, err := s.leadRepo.GetLead(ctx, event.ID)
	if err != nil {
		return err
	}
	if lead == nil {
		if s.leadIndex != nil {
			return s.leadIndex.DeleteLead(ctx, event.ID)
		}
		return nil
	}

	if s.leadIndex != nil {
		if err = s.leadIndex.IndexLead(ctx, toLeadES(lead)); err != nil {
			return err
		}
	}

	if event.Type == dto.EventLeadCaptured && lead.IsHighValue() {
		content := "New high-value lead: " + lead.DisplayName()
		payload := map[string]any{
			"email":   lead.Email,
			"company": util.Deref(lead.Company),
			"score":   lead.Score,
		}
		if err = s.notifier.NotifyAdmins(ctx, mongo.SysBoxTypeLead, lead.ID, content, payload); err != nil {
			return err
		}
	}
	return nil
}

// filter 关键词先走 ES 拿到候选ID，matched 为 false 表示关键词无命中
func (s *leadServiceImpl) filter(ctx context.Context, query *dto.LeadListQuery) (repository.LeadFilter, bool, error) {
	filter := repository.LeadFilter{}
	if query == nil {
		return filter, true, nil
	}
	filter.Status = model.LeadStatus(query.Status)
	filter.Source = query.Source

	keyword := strings.TrimSpace(query.Keyword)
	if keyword == "" {
		return filter, true, nil
	}
	if s.leadIndex == nil {
		return filter, false, ErrSearchUnavailable
	}
	ids, err := s.leadIndex.SearchLeadIDs(ctx, keyword, query.Status)
	if err != nil {
		return filter, false, err
	}
	if len(ids) == 0 {
		return filter, false, nil
	}
	filter.IDs = ids
	return filter, true, nil
}

func resolveLeadSource(req *dto.LeadCaptureDTO) string {
	if src := util.NilIfEmpty(util.Deref(req.Source)); src != nil {
		return *src
	}
	if src := util.NilIfEmpty(util.Deref(req.UTMSource)); src != nil {
		return *src
	}
	return DefaultLeadSource
}

func toLeadES(l *model.Lead) *es.LeadES {
	return &es.LeadES{
		ID:          l.ID,
		Email:       l.Email,
		Name:        util.Deref(l.Name),
		Company:     util.Deref(l.Company),
		Message:     util.Deref(l.Message),
		Source:      l.Source,
		UTMCampaign: util.Deref(l.UTMCampaign),
		Status:      string(l.Status),
		Notes:       util.Deref(l.Notes),
		Score:       l.Score,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
