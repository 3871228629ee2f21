package es

import (
	"CommandCenter/internal/pkg/util"
	"context"
	"errors"
	log "log/slog"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

// MaxSearchDepth 关键词检索最多返回的命中数
const MaxSearchDepth = 500

type LeadRepo interface {
	IndexLead(ctx context.Context, lead *LeadES) error
	DeleteLead(ctx context.Context, id string) error
	SearchLeadIDs(ctx context.Context, keyword, status string) ([]string, error)
}

type LeadRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewLeadRepo(client *elasticsearch.TypedClient) LeadRepo {
	return &LeadRepoImpl{client: client}
}

// IndexLead 以更新时间作为外部版本号写入，旧消息晚到时直接跳过
func (s *LeadRepoImpl) IndexLead(ctx context.Context, lead *LeadES) error {
	_, err := s.client.Index(LeadIndex).
		Id(lead.ID).
		Document(lead).
		Version(strconv.FormatInt(lead.UpdatedAt.UnixMilli(), 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				log.Warn("Version conflict detected, skipping old data",
					"lead_id", lead.ID,
					"updated_at", lead.UpdatedAt)
				return nil
			}
		}
		return err
	}
	return nil
}

func (s *LeadRepoImpl) DeleteLead(ctx context.Context, id string) error {
	_, err := s.client.Delete(LeadIndex, id).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}
	return nil
}

// SearchLeadIDs 关键词匹配邮箱、姓名、公司、留言，按相关度与时间排序
func (s *LeadRepoImpl) SearchLeadIDs(ctx context.Context, keyword, status string) ([]string, error) {
	var filters []types.Query
	if status != "" {
		filters = append(filters, types.Query{
			Term: map[string]types.TermQuery{
				"status": {Value: status},
			},
		})
	}

	query := &types.Query{
		Bool: &types.BoolQuery{
			Should: []types.Query{
				{
					MultiMatch: &types.MultiMatchQuery{
						Query:  keyword,
						Fields: []string{"email^3", "name^2", "company^2", "message", "notes"},
					},
				},
				{
					MultiMatch: &types.MultiMatchQuery{
						Query:     keyword,
						Fields:    []string{"name", "company", "message"},
						Fuzziness: util.PtrStr("AUTO"),
						Boost:     util.PtrFloat32(0.5),
					},
				},
			},
			MinimumShouldMatch: 1,
			Filter:             filters,
		},
	}

	req := s.client.Search().
		Index(LeadIndex).
		Query(query).
		Sort(
			types.SortOptions{Score_: &types.ScoreSort{Order: &sortorder.Desc}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{
				"created_at": {Order: &sortorder.Desc},
			}},
		).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		Size(MaxSearchDepth)

	return s.executeSearch(ctx, req)
}

func (s *LeadRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]string, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc LeadES
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		if doc.ID != "" {
			ids = append(ids, doc.ID)
		}
	}
	return ids, nil
}
