package handler

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/api/middleware"
	"CommandCenter/internal/pkg/media"
	"CommandCenter/internal/pkg/response"
	"CommandCenter/internal/service"
	"io"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// Upload multipart 上传，provider 为空时使用默认 provider
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrNoFileProvided)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	// 多读一个字节即可判断超限
	data, err := io.ReadAll(io.LimitReader(reader, media.MaxUploadSize+1))
	if err != nil {
		log.ErrorContext(c.Request.Context(), "read upload failed", "filename", file.Filename, "err", err)
		response.Error(c, service.ErrParamInvalid)
		return
	}

	provider := strings.ToUpper(strings.TrimSpace(c.PostForm("provider")))
	res, err := s.mediaService.Upload(c.Request.Context(), middleware.CurrentActor(c), &dto.MediaFile{
		Filename:     file.Filename,
		DeclaredType: file.Header.Get("Content-Type"),
		Size:         file.Size,
		Data:         data,
	}, provider)
	if err != nil {
		response.Error(c, err)
		return
	}

	log.InfoContext(c.Request.Context(), "media uploaded", "media_id", res.ID, "provider", res.Provider, "size", res.Size)
	response.Success(c, res)
}

func (s *MediaHandler) List(c *gin.Context) {
	var query dto.MediaListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.mediaService.ListMedia(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Delete DELETE /api/media?id=
func (s *MediaHandler) Delete(c *gin.Context) {
	err := s.mediaService.DeleteMedia(c.Request.Context(), middleware.CurrentActor(c), c.Query("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"success": true})
}

func (s *MediaHandler) GetURL(c *gin.Context) {
	var query dto.MediaURLQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.mediaService.GetURL(c.Request.Context(), c.Param("id"), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *MediaHandler) Providers(c *gin.Context) {
	response.Success(c, s.mediaService.Providers(c.Request.Context()))
}
