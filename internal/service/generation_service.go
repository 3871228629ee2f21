package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/llm"
	"CommandCenter/internal/pkg/util"
	"CommandCenter/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"gorm.io/datatypes"
)

const maxTitleLength = 255

// TaskRunner 执行 AI 任务
type TaskRunner interface {
	Run(ctx context.Context, taskType llm.TaskType, input any, output any) (*llm.Task, error)
}

// SourceCollector 抓取事实抽取用的参考资料
type SourceCollector interface {
	Collect(ctx context.Context, topic string, urls []string) []llm.SourceDocument
}

// GenerationService 选题与 AI 产出物生成
type GenerationService interface {
	GenerateIdea(ctx context.Context, actor dto.Actor, req *dto.OutlineRequestDTO) (*dto.IdeaGenerateResultDTO, error)
	ListIdeas(ctx context.Context, actor dto.Actor, query *dto.IdeaListQuery) (*dto.IdeaPageDTO, error)
	GenerateOutline(ctx context.Context, actor dto.Actor, req *dto.OutlineRequestDTO) (*dto.GenerationResultDTO, error)
	GenerateFacts(ctx context.Context, actor dto.Actor, req *dto.FactsRequestDTO) (*dto.GenerationResultDTO, error)
	RunTask(ctx context.Context, actor dto.Actor, req *dto.TaskRequestDTO) (*dto.GenerationResultDTO, error)
}

type generationServiceImpl struct {
	runner       TaskRunner
	sources      SourceCollector
	ideaRepo     repository.IdeaRepo
	artifactRepo repository.ArtifactRepo
	postRepo     repository.PostRepo
	events       EventBus
}

func NewGenerationService(
	runner TaskRunner,
	sources SourceCollector,
	ideaRepo repository.IdeaRepo,
	artifactRepo repository.ArtifactRepo,
	postRepo repository.PostRepo,
	events EventBus,
) GenerationService {
	return &generationServiceImpl{
		runner:       runner,
		sources:      sources,
		ideaRepo:     ideaRepo,
		artifactRepo: artifactRepo,
		postRepo:     postRepo,
		events:       events,
	}
}

// GenerateIdea 创建选题并生成首个大纲
func (s *generationServiceImpl) GenerateIdea(ctx context.Context, actor dto.Actor, req *dto.OutlineRequestDTO) (*dto.IdeaGenerateResultDTO, error) {
	input := outlineInput(req)
	var output llm.OutlineOutput
	task, err := s.run(ctx, llm.TaskGenerateOutline, input, &output)
	if err != nil {
		return nil, err
	}

	idea := &model.Idea{
		UserID:      actor.UserID,
		Title:       clipTitle(req.Topic),
		Description: "Generated idea for: " + req.Topic,
		Status:      model.IdeaStatusDraft,
		Priority:    model.PriorityMedium,
		Tags:        append(datatypes.JSONSlice[string]{}, req.Keywords...),
	}
	artifact := newArtifact(actor, model.ArtifactOutline, "Outline for: "+req.Topic, task, input, &output)

	if err = s.ideaRepo.CreateIdeaWithArtifact(ctx, idea, artifact); err != nil {
		return nil, err
	}
	s.publishCreated(ctx, actor, artifact)

	return &dto.IdeaGenerateResultDTO{
		Idea:     toIdeaDTO(idea),
		Task:     toTaskDTO(task),
		Artifact: toArtifactDTO(artifact),
		Created:  1,
	}, nil
}

// ListIdeas 当前用户的选题 (含产出物)
func (s *generationServiceImpl) ListIdeas(ctx context.Context, actor dto.Actor, query *dto.IdeaListQuery) (*dto.IdeaPageDTO, error) {
	page, limit := util.NormalizePage(query.Page, query.Limit, consts.DefaultPageSize, consts.MaxPageSize)
	ideas, total, err := s.ideaRepo.ListIdeas(ctx, actor.UserID, model.IdeaStatus(query.Status), repository.Page{
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.IdeaDTO, 0, len(ideas))
	for _, i := range ideas {
		res = append(res, toIdeaDTO(i))
	}
	return &dto.IdeaPageDTO{
		Ideas: res,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: util.TotalPages(total, limit),
		},
	}, nil
}

func (s *generationServiceImpl) GenerateOutline(ctx context.Context, actor dto.Actor, req *dto.OutlineRequestDTO) (*dto.GenerationResultDTO, error) {
	if err := s.checkLinks(ctx, actor, req.IdeaID, req.PostID); err != nil {
		return nil, err
	}

	input := outlineInput(req)
	var output llm.OutlineOutput
	task, err := s.run(ctx, llm.TaskGenerateOutline, input, &output)
	if err != nil {
		return nil, err
	}

	artifact := newArtifact(actor, model.ArtifactOutline, "Outline: "+req.Topic, task, input, &output)
	return s.save(ctx, actor, artifact, task, req.IdeaID, req.PostID)
}

// GenerateFacts 抓取参考资料后抽取事实
func (s *generationServiceImpl) GenerateFacts(ctx context.Context, actor dto.Actor, req *dto.FactsRequestDTO) (*dto.GenerationResultDTO, error) {
	if err := s.checkLinks(ctx, actor, req.IdeaID, req.PostID); err != nil {
		return nil, err
	}

	input := &llm.FactsInput{
		Topic:     req.Topic,
		Outline:   req.Outline,
		Sources:   req.Sources,
		FactCount: req.FactCount,
	}
	input.ApplyDefaults()
	if s.sources != nil {
		input.Documents = s.sources.Collect(ctx, req.Topic, req.Sources)
	}

	var output llm.FactsOutput
	task, err := s.run(ctx, llm.TaskGenerateFacts, input, &output)
	if err != nil {
		return nil, err
	}
	if output.TotalCount == 0 {
		output.TotalCount = len(output.Facts)
	}

	artifact := newArtifact(actor, model.ArtifactFacts, "Facts: "+req.Topic, task, input, &output)
	return s.save(ctx, actor, artifact, task, req.IdeaID, req.PostID)
}

// RunTask 正文、SEO、摘要任务
func (s *generationServiceImpl) RunTask(ctx context.Context, actor dto.Actor, req *dto.TaskRequestDTO) (*dto.GenerationResultDTO, error) {
	if err := s.checkLinks(ctx, actor, req.IdeaID, req.PostID); err != nil {
		return nil, err
	}

	var (
		taskType     llm.TaskType
		artifactType model.ArtifactType
		title        string
		input        any
		output       any
	)
	label := req.Title
	if label == "" {
		label = "untitled"
	}

	switch llm.TaskType(req.Type) {
	case llm.TaskGenerateContent:
		if strings.TrimSpace(req.Outline) == "" {
			return nil, &DetailError{Err: ErrParamInvalid, Details: "outline is required"}
		}
		in := &llm.ContentInput{Outline: req.Outline, Facts: req.Facts, Tone: req.Tone, Length: req.WordCount}
		in.ApplyDefaults()
		taskType, artifactType, title = llm.TaskGenerateContent, model.ArtifactContent, "Content: "+label
		input, output = in, &llm.ContentOutput{}
	case llm.TaskGenerateSEO:
		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
			return nil, &DetailError{Err: ErrParamInvalid, Details: "title and content are required"}
		}
		in := &llm.SEOInput{Title: req.Title, Content: req.Content, Keywords: req.Keywords, TargetKeyword: req.TargetKeyword}
		taskType, artifactType, title = llm.TaskGenerateSEO, model.ArtifactSEO, "SEO: "+label
		input, output = in, &llm.SEOOutput{}
	case llm.TaskSummarize:
		if strings.TrimSpace(req.Content) == "" {
			return nil, &DetailError{Err: ErrParamInvalid, Details: "content is required"}
		}
		in := &llm.SummaryInput{Content: req.Content, Length: req.Length, Format: req.Format}
		in.ApplyDefaults()
		taskType, artifactType, title = llm.TaskSummarize, model.ArtifactSummary, "Summary: "+label
		input, output = in, &llm.SummaryOutput{}
	default:
		return nil, ErrParamInvalid
	}

	task, err := s.run(ctx, taskType, input, output)
	if err != nil {
		return nil, err
	}

	artifact := newArtifact(actor, artifactType, title, task, input, output)
	return s.save(ctx, actor, artifact, task, req.IdeaID, req.PostID)
}

func (s *generationServiceImpl) run(ctx context.Context, taskType llm.TaskType, input any, output any) (*llm.Task, error) {
	task, err := s.runner.Run(ctx, taskType, input, output)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrGenerationFailed, taskType, err)
	}
	return task, nil
}

// checkLinks 关联的选题与文章必须存在，选题需本人或管理员
func (s *generationServiceImpl) checkLinks(ctx context.Context, actor dto.Actor, ideaID, postID *string) error {
	if ideaID != nil {
		idea, err := s.ideaRepo.GetIdea(ctx, *ideaID)
		if err != nil {
			return err
		}
		if idea == nil || !actor.CanAccess(idea.UserID) {
			return ErrIdeaNotFound
		}
	}
	if postID != nil {
		post, err := s.postRepo.GetPost(ctx, *postID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
	}
	return nil
}

func (s *generationServiceImpl) save(ctx context.Context, actor dto.Actor, artifact *model.AIArtifact, task *llm.Task, ideaID, postID *string) (*dto.GenerationResultDTO, error) {
	artifact.IdeaID = ideaID
	artifact.PostID = postID
	if err := s.artifactRepo.CreateArtifact(ctx, artifact); err != nil {
		return nil, err
	}
	s.publishCreated(ctx, actor, artifact)
	return &dto.GenerationResultDTO{
		Task:     toTaskDTO(task),
		Artifact: toArtifactDTO(artifact),
	}, nil
}

func (s *generationServiceImpl) publishCreated(ctx context.Context, actor dto.Actor, artifact *model.AIArtifact) {
	log.InfoContext(ctx, "artifact created", "artifact_id", artifact.ID, "type", artifact.Type)
	s.events.Publish(ctx, dto.NewEvent(dto.EventArtifactCreated, artifact.ID, actor.UserID, map[string]any{
		"type":   artifact.Type,
		"title":  artifact.Title,
		"ideaId": artifact.IdeaID,
	}))
}

func outlineInput(req *dto.OutlineRequestDTO) *llm.OutlineInput {
	input := &llm.OutlineInput{
		Topic:          req.Topic,
		Keywords:       req.Keywords,
		TargetAudience: req.TargetAudience,
		Tone:           req.Tone,
		Length:         req.Length,
	}
	input.ApplyDefaults()
	return input
}

// newArtifact 任务输出落库为待审核产出物
func newArtifact(actor dto.Actor, artifactType model.ArtifactType, title string, task *llm.Task, input any, output any) *model.AIArtifact {
	return &model.AIArtifact{
		Type:    artifactType,
		Title:   clipTitle(title),
		Content: mustJSON(output),
		Status:  model.ArtifactPendingReview,
		UserID:  actor.UserID,
		Metadata: datatypes.JSONMap{
			"taskId": task.ID,
			"input":  input,
		},
	}
}

func clipTitle(title string) string {
	r := []rune(title)
	if len(r) <= maxTitleLength {
		return title
	}
	return string(r[:maxTitleLength])
}
