package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/consts"
	"CommandCenter/internal/pkg/media"
	"CommandCenter/internal/pkg/util"
	"CommandCenter/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"gorm.io/datatypes"
)

// MediaGateway 多 provider 的媒体存储入口，由 media.Manager 实现
type MediaGateway interface {
	Upload(ctx context.Context, in *media.UploadInput, provider string) (*media.UploadResult, error)
	Delete(ctx context.Context, key, provider string) error
	URL(key, provider string, t *media.Transform) (string, error)
	HealthCheck(ctx context.Context) map[string]bool
	Available() []string
	Default() string
	Has(name string) bool
}

type MediaService interface {
	Upload(ctx context.Context, actor dto.Actor, file *dto.MediaFile, provider string) (*dto.MediaDTO, error)
	ListMedia(ctx context.Context, query *dto.MediaListQuery) (*dto.MediaPageDTO, error)
	DeleteMedia(ctx context.Context, actor dto.Actor, id string) error
	GetURL(ctx context.Context, id string, query *dto.MediaURLQuery) (*dto.MediaURLDTO, error)
	Providers(ctx context.Context) *dto.ProvidersDTO
}

type mediaServiceImpl struct {
	gateway   MediaGateway
	mediaRepo repository.MediaRepo
	events    EventBus
}

func NewMediaService(gateway MediaGateway, mediaRepo repository.MediaRepo, events EventBus) MediaService {
	return &mediaServiceImpl{
		gateway:   gateway,
		mediaRepo: mediaRepo,
		events:    events,
	}
}

// Upload 校验后上传到指定 provider (为空用默认) 并记录
func (s *mediaServiceImpl) Upload(ctx context.Context, actor dto.Actor, file *dto.MediaFile, provider string) (*dto.MediaDTO, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, ErrNoFileProvided
	}
	mime, err := media.Validate(file.Data, file.DeclaredType, file.Size)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrFileTooLarge):
			return nil, ErrFileTooLarge
		case errors.Is(err, media.ErrUnsupportedType):
			return nil, &DetailError{Err: ErrUnsupportedType, Details: map[string]string{"mimetype": file.DeclaredType}}
		}
		return nil, err
	}
	// 文件本身的错误优先于 provider 不可用
	provider, err = s.resolveProvider(provider)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Upload(ctx, &media.UploadInput{
		Filename: file.Filename,
		Mimetype: mime,
		Size:     file.Size,
		Data:     file.Data,
		Metadata: map[string]any{
			"uploadedBy": actor.UserID,
			"uploadedAt": time.Now().UTC().Format(time.RFC3339),
		},
	}, provider)
	if err != nil {
		log.ErrorContext(ctx, "media upload failed", "provider", provider, "filename", file.Filename, "err", err)
		return nil, err
	}

	record := &model.Media{
		Filename:   file.Filename,
		Mimetype:   mime,
		Size:       result.Size,
		Provider:   result.Provider,
		URL:        result.URL,
		Key:        result.Key,
		Width:      result.Width,
		Height:     result.Height,
		Metadata:   datatypes.JSONMap(result.Metadata),
		UploadedBy: actor.UserID,
	}
	if err = s.mediaRepo.CreateMedia(ctx, record); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, dto.NewEvent(dto.EventMediaUploaded, record.ID, actor.UserID, map[string]any{
		"filename": record.Filename,
		"provider": record.Provider,
		"mimetype": record.Mimetype,
		"size":     record.Size,
	}))
	return toMediaDTO(record), nil
}

func (s *mediaServiceImpl) ListMedia(ctx context.Context, query *dto.MediaListQuery) (*dto.MediaPageDTO, error) {
	page, limit := util.NormalizePage(query.Page, query.Limit, consts.DefaultMediaPageSize, consts.MaxPageSize)
	list, total, err := s.mediaRepo.ListMedia(ctx, repository.MediaFilter{
		Provider:   query.Provider,
		MimePrefix: query.Mimetype,
	}, repository.Page{
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MediaDTO, 0, len(list))
	for _, m := range list {
		res = append(res, toMediaDTO(m))
	}
	return &dto.MediaPageDTO{
		Media: res,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: util.TotalPages(total, limit),
		},
	}, nil
}

// DeleteMedia 先删存储再删记录，两步之间不做补偿
func (s *mediaServiceImpl) DeleteMedia(ctx context.Context, actor dto.Actor, id string) error {
	if id == "" {
		return ErrMediaIDRequired
	}
	record, err := s.mediaRepo.GetMedia(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrMediaNotFound
	}

	if record.Key != "" {
		if !s.gateway.Has(record.Provider) {
			return ErrProviderUnavailable
		}
		if err = s.gateway.Delete(ctx, record.Key, record.Provider); err != nil {
			log.ErrorContext(ctx, "media delete failed", "provider", record.Provider, "key", record.Key, "err", err)
			return err
		}
	}
	if err = s.mediaRepo.DeleteMedia(ctx, id); err != nil {
		return err
	}

	s.events.Publish(ctx, dto.NewEvent(dto.EventMediaDeleted, id, actor.UserID, map[string]any{
		"filename": record.Filename,
		"provider": record.Provider,
	}))
	return nil
}

// GetURL 生成带变换参数的访问地址
func (s *mediaServiceImpl) GetURL(ctx context.Context, id string, query *dto.MediaURLQuery) (*dto.MediaURLDTO, error) {
	record, err := s.mediaRepo.GetMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrMediaNotFound
	}
	if !s.gateway.Has(record.Provider) {
		return nil, ErrProviderUnavailable
	}

	var transform *media.Transform
	if query != nil {
		transform = &media.Transform{
			Width:   query.Width,
			Height:  query.Height,
			Quality: query.Quality,
			Format:  query.Format,
			Fit:     query.Fit,
		}
	}
	url, err := s.gateway.URL(record.Key, record.Provider, transform)
	if err != nil {
		return nil, err
	}
	return &dto.MediaURLDTO{URL: url}, nil
}

func (s *mediaServiceImpl) Providers(ctx context.Context) *dto.ProvidersDTO {
	return &dto.ProvidersDTO{
		Available: s.gateway.Available(),
		Default:   s.gateway.Default(),
		Health:    s.gateway.HealthCheck(ctx),
	}
}

func (s *mediaServiceImpl) resolveProvider(provider string) (string, error) {
	if provider == "" {
		provider = s.gateway.Default()
	}
	if provider == "" || !s.gateway.Has(provider) {
		return "", ErrProviderUnavailable
	}
	return provider, nil
}
