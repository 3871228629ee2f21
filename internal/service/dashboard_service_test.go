package service

import (
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/consts"
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func staticProbe(ok bool, calls *int32) Probe {
	return func(context.Context) bool {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		return ok
	}
}

func TestHealthSnapshot(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()
	var calls int32
	svc := NewHealthService(map[string]Probe{
		ComponentDatabase: staticProbe(true, &calls),
		ComponentSearch:   staticProbe(false, &calls),
	}, nil)

	first := svc.Snapshot(ctx)
	if first.Healthy {
		t.Fatalf("snapshot with failing probe must be unhealthy")
	}
	if !first.Components[ComponentDatabase] || first.Components[ComponentSearch] || first.Components[ComponentStorage] {
		t.Fatalf("components = %v", first.Components)
	}
	if !mr.Exists(consts.HealthSnapshotKey) {
		t.Fatalf("snapshot not cached")
	}

	svc.Snapshot(ctx)
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("probes ran %d times, cached snapshot should be reused", calls)
	}

	want := []string{ComponentDatabase, ComponentSearch, ComponentStorage}
	got := svc.Components()
	if len(got) != len(want) {
		t.Fatalf("components = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("components = %v, want %v", got, want)
		}
	}
}

func TestDashboardOverview(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	artifacts := newFakeArtifactRepo()
	base := time.Now().Add(-time.Hour)
	for i, a := range []struct {
		typ    model.ArtifactType
		status model.ArtifactStatus
	}{
		{model.ArtifactOutline, model.ArtifactPendingReview},
		{model.ArtifactOutline, model.ArtifactApproved},
		{model.ArtifactFacts, model.ArtifactPendingReview},
		{model.ArtifactFacts, model.ArtifactPendingReview},
		{model.ArtifactContent, model.ArtifactPendingReview},
	} {
		id := string(rune('a' + i))
		artifacts.artifacts[id] = &model.AIArtifact{ID: id, Type: a.typ, Status: a.status, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	ideas := &fakeIdeaRepo{ideas: map[string]*model.Idea{"i1": {ID: "i1"}, "i2": {ID: "i2"}}}
	posts := &fakePostRepo{posts: map[string]*model.Post{
		"p1": {ID: "p1", Status: model.PostPublished},
		"p2": {ID: "p2", Status: model.PostDraft},
	}}
	leads := newFakeLeadRepo()
	leads.leads["l1"] = &model.Lead{ID: "l1"}
	mediaRepo := &fakeMediaRepo{media: map[string]*model.Media{}}
	health := NewHealthService(map[string]Probe{ComponentDatabase: staticProbe(true, nil)}, nil)

	svc := NewDashboardService(ideas, artifacts, posts, leads, mediaRepo, health)
	res, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := res.Metrics
	if m.TotalIdeas != 2 || m.PendingOutlines != 1 || m.PendingFacts != 2 || m.PublishedPosts != 1 || m.TotalLeads != 1 || m.MediaFiles != 0 {
		t.Fatalf("metrics = %+v", m)
	}
	if len(res.RecentActivity) != 5 || res.RecentActivity[0].ID != "e" {
		t.Fatalf("recent activity should be newest first: %+v", res.RecentActivity)
	}
	if !res.SystemHealth[ComponentDatabase] {
		t.Fatalf("system health = %v", res.SystemHealth)
	}
	if !mr.Exists(consts.DashboardOverviewKey) {
		t.Fatalf("overview not cached")
	}

	ideas.ideas["i3"] = &model.Idea{ID: "i3"}
	cached, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached.Metrics.TotalIdeas != 2 {
		t.Fatalf("cached overview expected, got %+v", cached.Metrics)
	}

	mr.FastForward(31 * time.Second)
	fresh, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.Metrics.TotalIdeas != 3 {
		t.Fatalf("expired cache should refresh, got %+v", fresh.Metrics)
	}
}
