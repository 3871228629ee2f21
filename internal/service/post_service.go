package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/util"
	"CommandCenter/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

// SEOTitleWarning 标题过长的非阻断提示
var SEOTitleWarning = fmt.Sprintf("SEO: title exceeds %d characters", consts.MaxSEOTitleLength)

type PostService interface {
	ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostPageDTO, error)
	CreatePost(ctx context.Context, actor dto.Actor, req *dto.PostCreateDTO) (*dto.PostResultDTO, error)
	UpdatePost(ctx context.Context, actor dto.Actor, id string, req *dto.PostUpdateDTO) (*dto.PostResultDTO, error)
	DeletePost(ctx context.Context, actor dto.Actor, id string) error
}

type postServiceImpl struct {
	postRepo repository.PostRepo
	ideaRepo repository.IdeaRepo
	events   EventBus
}

func NewPostService(postRepo repository.PostRepo, ideaRepo repository.IdeaRepo, events EventBus) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
		ideaRepo: ideaRepo,
		events:   events,
	}
}

func (s *postServiceImpl) ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostPageDTO, error) {
	page, limit := util.NormalizePage(query.Page, query.Limit, consts.DefaultPageSize, consts.MaxPageSize)
	posts, total, err := s.postRepo.ListPosts(ctx, model.PostStatus(query.Status), repository.Page{
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		res = append(res, toPostDTO(p))
	}
	return &dto.PostPageDTO{
		Posts: res,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: util.TotalPages(total, limit),
		},
	}, nil
}

// CreatePost 新建草稿，挂载选题下的产出物与指定产出物
func (s *postServiceImpl) CreatePost(ctx context.Context, actor dto.Actor, req *dto.PostCreateDTO) (*dto.PostResultDTO, error) {
	if req.IdeaID != nil {
		idea, err := s.ideaRepo.GetIdea(ctx, *req.IdeaID)
		if err != nil {
			return nil, err
		}
		if idea == nil {
			return nil, ErrIdeaNotFound
		}
	}

	risk := model.RiskLevel(req.RiskLevel)
	if risk == "" {
		risk = model.RiskLow
	}
	post := &model.Post{
		AuthorID:  actor.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Status:    model.PostDraft,
		RiskLevel: risk,
		IdeaID:    req.IdeaID,
	}
	if err := s.postRepo.CreatePost(ctx, post, req.ArtifactIDs); err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = post
	}

	s.publish(ctx, actor, created, "")
	return &dto.PostResultDTO{
		Post:     toPostDTO(created),
		Warnings: seoWarnings(created),
	}, nil
}

// UpdatePost 更新文章，状态迁移需满足状态机与发布护栏
func (s *postServiceImpl) UpdatePost(ctx context.Context, actor dto.Actor, id string, req *dto.PostUpdateDTO) (*dto.PostResultDTO, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	previous := post.Status
	previousRisk := post.RiskLevel
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.RiskLevel != nil {
		post.RiskLevel = model.RiskLevel(*req.RiskLevel)
	}
	if req.ScheduledAt != nil {
		post.ScheduledAt = req.ScheduledAt
	}

	next := previous
	if req.Status != nil {
		next = model.PostStatus(*req.Status)
	}
	if err = checkTransition(post, previous, previousRisk, next); err != nil {
		return nil, err
	}

	post.Status = next
	if next == model.PostPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	post.UpdatedAt = time.Now()

	if err = s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	if previous != next {
		log.InfoContext(ctx, "post status changed", "post_id", post.ID, "from", previous, "to", next, "by", actor.UserID)
	}
	s.publish(ctx, actor, post, previous)
	return &dto.PostResultDTO{
		Post:     toPostDTO(post),
		Warnings: seoWarnings(post),
	}, nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, actor dto.Actor, id string) error {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if err = s.postRepo.DeletePost(ctx, id); err != nil {
		return err
	}
	log.InfoContext(ctx, "post deleted", "post_id", id, "by", actor.UserID)
	s.events.Publish(ctx, dto.NewEvent(dto.EventPostUpdated, id, actor.UserID, map[string]any{
		"deleted": true,
		"title":   post.Title,
	}))
	return nil
}

func (s *postServiceImpl) publish(ctx context.Context, actor dto.Actor, post *model.Post, previous model.PostStatus) {
	payload := map[string]any{
		"title":  post.Title,
		"status": post.Status,
	}
	if previous != "" {
		payload["previousStatus"] = previous
	}
	s.events.Publish(ctx, dto.NewEvent(dto.EventPostUpdated, post.ID, actor.UserID, payload))
}

// checkTransition 状态机、高风险就绪检查与发布字数护栏
func checkTransition(post *model.Post, from model.PostStatus, fromRisk model.RiskLevel, to model.PostStatus) error {
	if !from.CanTransitionTo(to) {
		return &DetailError{
			Err:     ErrInvalidPostTransition,
			Details: map[string]string{"from": string(from), "to": string(to)},
		}
	}

	entersReady := to == model.PostReady && (from != model.PostReady || fromRisk != model.RiskHigh)
	if entersReady && post.RiskLevel == model.RiskHigh {
		hasOutline, hasFacts := post.ApprovedArtifacts()
		if !hasOutline || !hasFacts {
			return &DetailError{
				Err: ErrHighRiskNotReady,
				Details: dto.ReadinessDetails{
					HasApprovedOutline: hasOutline,
					HasApprovedFacts:   hasFacts,
				},
			}
		}
	}

	if to == model.PostScheduled && post.ScheduledAt == nil {
		return &DetailError{Err: ErrParamInvalid, Details: "scheduledAt is required"}
	}

	if to == model.PostPublished && from != model.PostPublished {
		if words := util.CountWords(post.Content); words < consts.MinPublishWords {
			return &DetailError{
				Err:     ErrContentTooShort,
				Details: map[string]int{"wordCount": words, "minimum": consts.MinPublishWords},
			}
		}
	}
	return nil
}

func seoWarnings(post *model.Post) []string {
	var warnings []string
	if util.RuneLen(post.Title) > consts.MaxSEOTitleLength {
		warnings = append(warnings, SEOTitleWarning)
	}
	return warnings
}
