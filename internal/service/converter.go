package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/llm"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

func toArtifactDTO(a *model.AIArtifact) *dto.ArtifactDTO {
	if a == nil {
		return nil
	}
	d := &dto.ArtifactDTO{}
	_ = copier.Copy(d, a)
	d.Type = string(a.Type)
	d.Status = string(a.Status)
	d.Content = json.RawMessage(a.Content)
	if len(d.Content) == 0 {
		d.Content = json.RawMessage("null")
	}
	d.Metadata = map[string]any(a.Metadata)
	return d
}

func toArtifactDTOs(list []*model.AIArtifact) []*dto.ArtifactDTO {
	res := make([]*dto.ArtifactDTO, 0, len(list))
	for _, a := range list {
		res = append(res, toArtifactDTO(a))
	}
	return res
}

func toIdeaDTO(i *model.Idea) *dto.IdeaDTO {
	d := &dto.IdeaDTO{}
	_ = copier.Copy(d, i)
	d.Status = string(i.Status)
	d.Tags = append([]string{}, i.Tags...)
	d.Artifacts = nil
	for idx := range i.Artifacts {
		d.Artifacts = append(d.Artifacts, toArtifactDTO(&i.Artifacts[idx]))
	}
	return d
}

func toPostDTO(p *model.Post) *dto.PostDTO {
	d := &dto.PostDTO{}
	_ = copier.Copy(d, p)
	d.Status = string(p.Status)
	d.RiskLevel = string(p.RiskLevel)
	d.Artifacts = nil
	for idx := range p.Artifacts {
		d.Artifacts = append(d.Artifacts, toArtifactDTO(&p.Artifacts[idx]))
	}
	return d
}

func toMediaDTO(m *model.Media) *dto.MediaDTO {
	d := &dto.MediaDTO{}
	_ = copier.Copy(d, m)
	d.Metadata = map[string]any(m.Metadata)
	return d
}

func toLeadDTO(l *model.Lead) *dto.LeadDTO {
	d := &dto.LeadDTO{}
	_ = copier.Copy(d, l)
	d.Status = string(l.Status)
	return d
}

func toTaskDTO(t *llm.Task) *dto.TaskDTO {
	if t == nil {
		return nil
	}
	return &dto.TaskDTO{
		ID:     t.ID,
		Type:   string(t.Type),
		Status: string(t.Status),
		Error:  t.Error,
	}
}

// mustJSON 序列化任务输出，失败时返回 null
func mustJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return raw
}
