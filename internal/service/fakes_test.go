package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/redis"
	"CommandCenter/internal/repository"
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = redis.Rdb.Close()
		redis.Rdb = nil
	})
	return mr
}

type recordingBus struct {
	mu     sync.Mutex
	events []*dto.Event
}

func (b *recordingBus) Publish(_ context.Context, event *dto.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := make([]string, 0, len(b.events))
	for _, e := range b.events {
		res = append(res, e.Type)
	}
	return res
}

// fakeArtifactRepo 内存产出物仓库，审核通过时级联激活选题
type fakeArtifactRepo struct {
	artifacts map[string]*model.AIArtifact
	ideas     map[string]*model.Idea
}

func newFakeArtifactRepo() *fakeArtifactRepo {
	return &fakeArtifactRepo{
		artifacts: map[string]*model.AIArtifact{},
		ideas:     map[string]*model.Idea{},
	}
}

func (r *fakeArtifactRepo) CreateArtifact(_ context.Context, a *model.AIArtifact) error {
	if a.ID == "" {
		a.ID = "artifact-" + string(rune('a'+len(r.artifacts)))
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.artifacts[a.ID] = a
	return nil
}

func (r *fakeArtifactRepo) GetArtifact(_ context.Context, id string) (*model.AIArtifact, error) {
	a, ok := r.artifacts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeArtifactRepo) ListArtifacts(_ context.Context, f repository.ArtifactFilter) ([]*model.AIArtifact, error) {
	res := make([]*model.AIArtifact, 0)
	for _, a := range r.artifacts {
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if len(f.Types) > 0 && !containsType(f.Types, a.Type) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.TitleContains != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.TitleContains)) {
			continue
		}
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool {
		if f.OldestFirst {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	if f.Limit > 0 && len(res) > f.Limit {
		res = res[:f.Limit]
	}
	return res, nil
}

func (r *fakeArtifactRepo) ReviewArtifact(_ context.Context, id string, review repository.ArtifactReview) (*model.AIArtifact, error) {
	a, ok := r.artifacts[id]
	if !ok || a.Status != model.ArtifactPendingReview {
		return nil, repository.ErrStaleState
	}
	a.Status = review.Status
	a.Approved = review.Status == model.ArtifactApproved
	a.ApprovedAt = review.ApprovedAt
	a.Metadata = review.Metadata
	if review.Content != nil {
		a.Content = review.Content
	}
	if a.Approved && a.IdeaID != nil {
		if idea, ok := r.ideas[*a.IdeaID]; ok {
			idea.Status = model.IdeaStatusActive
		}
	}
	cp := *a
	return &cp, nil
}

func (r *fakeArtifactRepo) CountArtifacts(_ context.Context, types []model.ArtifactType, status model.ArtifactStatus) (int64, error) {
	var n int64
	for _, a := range r.artifacts {
		if (len(types) == 0 || containsType(types, a.Type)) && (status == "" || a.Status == status) {
			n++
		}
	}
	return n, nil
}

func (r *fakeArtifactRepo) ListStalePending(_ context.Context, before time.Time) ([]*model.AIArtifact, error) {
	res := make([]*model.AIArtifact, 0)
	for _, a := range r.artifacts {
		if a.Status == model.ArtifactPendingReview && a.CreatedAt.Before(before) {
			res = append(res, a)
		}
	}
	return res, nil
}

func containsType(types []model.ArtifactType, t model.ArtifactType) bool {
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}

type fakeIdeaRepo struct {
	ideas map[string]*model.Idea
}

func (r *fakeIdeaRepo) CreateIdeaWithArtifact(_ context.Context, idea *model.Idea, artifact *model.AIArtifact) error {
	if idea.ID == "" {
		idea.ID = "idea-1"
	}
	r.ideas[idea.ID] = idea
	if artifact != nil {
		artifact.IdeaID = &idea.ID
	}
	return nil
}

func (r *fakeIdeaRepo) GetIdea(_ context.Context, id string) (*model.Idea, error) {
	return r.ideas[id], nil
}

func (r *fakeIdeaRepo) ListIdeas(_ context.Context, userID string, status model.IdeaStatus, _ repository.Page) ([]*model.Idea, int64, error) {
	res := make([]*model.Idea, 0)
	for _, i := range r.ideas {
		if i.UserID == userID && (status == "" || i.Status == status) {
			res = append(res, i)
		}
	}
	return res, int64(len(res)), nil
}

func (r *fakeIdeaRepo) CountIdeas(context.Context) (int64, error) {
	return int64(len(r.ideas)), nil
}

type fakeLeadRepo struct {
	leads map[string]*model.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: map[string]*model.Lead{}}
}

func (r *fakeLeadRepo) CreateLead(_ context.Context, lead *model.Lead) error {
	if lead.ID == "" {
		lead.ID = "lead-" + lead.Email
	}
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	r.leads[lead.ID] = lead
	return nil
}

func (r *fakeLeadRepo) GetLead(_ context.Context, id string) (*model.Lead, error) {
	return r.leads[id], nil
}

func (r *fakeLeadRepo) GetLeadByEmail(_ context.Context, email string) (*model.Lead, error) {
	for _, l := range r.leads {
		if l.Email == email {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLeadRepo) UpdateLead(_ context.Context, lead *model.Lead) error {
	r.leads[lead.ID] = lead
	return nil
}

func (r *fakeLeadRepo) ListLeads(ctx context.Context, f repository.LeadFilter, _ repository.Page) ([]*model.Lead, int64, error) {
	list, _ := r.ListAllLeads(ctx, f)
	return list, int64(len(list)), nil
}

func (r *fakeLeadRepo) ListAllLeads(_ context.Context, f repository.LeadFilter) ([]*model.Lead, error) {
	res := make([]*model.Lead, 0)
	for _, l := range r.leads {
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.Source != "" && l.Source != f.Source {
			continue
		}
		res = append(res, l)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Email < res[j].Email })
	return res, nil
}

func (r *fakeLeadRepo) CountLeads(context.Context) (int64, error) {
	return int64(len(r.leads)), nil
}

type notifyCall struct {
	notifyType string
	targetID   string
	content    string
}

// fakeNotifier 只记录 NotifyAdmins 调用
type fakeNotifier struct {
	calls []notifyCall
}

func (n *fakeNotifier) GetNotificationList(context.Context, string, int, int) ([]*dto.SysBoxDTO, error) {
	return nil, nil
}

func (n *fakeNotifier) GetUnreadCount(context.Context, string) (*dto.SysBoxUnreadDTO, error) {
	return &dto.SysBoxUnreadDTO{}, nil
}

func (n *fakeNotifier) MarkRead(context.Context, string, string) error {
	return nil
}

func (n *fakeNotifier) MarkAllRead(context.Context, string) error {
	return nil
}

func (n *fakeNotifier) NotifyAdmins(_ context.Context, notifyType, targetID, content string, _ map[string]any) error {
	n.calls = append(n.calls, notifyCall{notifyType: notifyType, targetID: targetID, content: content})
	return nil
}

type fakePostRepo struct {
	posts map[string]*model.Post
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *model.Post, _ []string) error {
	if post.ID == "" {
		post.ID = "post-1"
	}
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetPost(_ context.Context, id string) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) UpdatePost(_ context.Context, post *model.Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) ListPosts(_ context.Context, status model.PostStatus, _ repository.Page) ([]*model.Post, int64, error) {
	res := make([]*model.Post, 0)
	for _, p := range r.posts {
		if status == "" || p.Status == status {
			res = append(res, p)
		}
	}
	return res, int64(len(res)), nil
}

func (r *fakePostRepo) CountPosts(ctx context.Context, status model.PostStatus) (int64, error) {
	_, n, err := r.ListPosts(ctx, status, repository.Page{})
	return n, err
}

type fakeMediaRepo struct {
	media map[string]*model.Media
}

func (r *fakeMediaRepo) CreateMedia(_ context.Context, m *model.Media) error {
	if m.ID == "" {
		m.ID = "media-" + m.Key
	}
	r.media[m.ID] = m
	return nil
}

func (r *fakeMediaRepo) GetMedia(_ context.Context, id string) (*model.Media, error) {
	return r.media[id], nil
}

func (r *fakeMediaRepo) DeleteMedia(_ context.Context, id string) error {
	delete(r.media, id)
	return nil
}

func (r *fakeMediaRepo) ListMedia(_ context.Context, _ repository.MediaFilter, _ repository.Page) ([]*model.Media, int64, error) {
	res := make([]*model.Media, 0, len(r.media))
	for _, m := range r.media {
		res = append(res, m)
	}
	return res, int64(len(res)), nil
}

func (r *fakeMediaRepo) CountMedia(context.Context) (int64, error) {
	return int64(len(r.media)), nil
}
