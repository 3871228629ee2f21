package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestCheckTransition(t *testing.T) {
	approvedOutline := model.AIArtifact{Type: model.ArtifactOutline, Status: model.ArtifactApproved}
	approvedFacts := model.AIArtifact{Type: model.ArtifactFacts, Status: model.ArtifactApproved}
	pendingFacts := model.AIArtifact{Type: model.ArtifactFacts, Status: model.ArtifactPendingReview}
	longContent := strings.Repeat("word ", 300)
	scheduled := time.Now().Add(time.Hour)

	cases := []struct {
		name    string
		post    model.Post
		from    model.PostStatus
		to      model.PostStatus
		wantErr error
	}{
		{"draft to ready", model.Post{RiskLevel: model.RiskLow}, model.PostDraft, model.PostReady, nil},
		{"same status", model.Post{RiskLevel: model.RiskLow}, model.PostDraft, model.PostDraft, nil},
		{"draft to published", model.Post{RiskLevel: model.RiskLow, Content: longContent}, model.PostDraft, model.PostPublished, ErrInvalidPostTransition},
		{"published to draft", model.Post{RiskLevel: model.RiskLow}, model.PostPublished, model.PostDraft, ErrInvalidPostTransition},
		{"archived to draft", model.Post{RiskLevel: model.RiskLow}, model.PostArchived, model.PostDraft, nil},
		{"high risk without reviews", model.Post{RiskLevel: model.RiskHigh}, model.PostDraft, model.PostReady, ErrHighRiskNotReady},
		{"high risk facts pending", model.Post{RiskLevel: model.RiskHigh, Artifacts: []model.AIArtifact{approvedOutline, pendingFacts}}, model.PostDraft, model.PostReady, ErrHighRiskNotReady},
		{"high risk reviewed", model.Post{RiskLevel: model.RiskHigh, Artifacts: []model.AIArtifact{approvedOutline, approvedFacts}}, model.PostDraft, model.PostReady, nil},
		{"schedule without time", model.Post{RiskLevel: model.RiskLow}, model.PostReady, model.PostScheduled, ErrParamInvalid},
		{"schedule with time", model.Post{RiskLevel: model.RiskLow, ScheduledAt: &scheduled}, model.PostReady, model.PostScheduled, nil},
		{"publish short", model.Post{RiskLevel: model.RiskLow, Content: "too short"}, model.PostReady, model.PostPublished, ErrContentTooShort},
		{"publish long", model.Post{RiskLevel: model.RiskLow, Content: longContent}, model.PostReady, model.PostPublished, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			post := tc.post
			err := checkTransition(&post, tc.from, post.RiskLevel, tc.to)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestHighRiskReadinessDetails(t *testing.T) {
	post := &model.Post{
		RiskLevel: model.RiskHigh,
		Artifacts: []model.AIArtifact{{Type: model.ArtifactOutline, Status: model.ArtifactApproved}},
	}
	err := checkTransition(post, model.PostDraft, model.RiskHigh, model.PostReady)
	var detail *DetailError
	if !errors.As(err, &detail) {
		t.Fatalf("err = %v, want DetailError", err)
	}
	got, ok := detail.Details.(dto.ReadinessDetails)
	if !ok || !got.HasApprovedOutline || got.HasApprovedFacts {
		t.Fatalf("details = %+v", detail.Details)
	}
	if err.Error() != "Cannot move high-risk post to READY status" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()
	newService := func() (*fakePostRepo, *recordingBus, PostService) {
		repo := &fakePostRepo{posts: map[string]*model.Post{
			"post-1": {ID: "post-1", Title: "Draft", Content: strings.Repeat("word ", 320), Status: model.PostReady, RiskLevel: model.RiskLow},
		}}
		bus := &recordingBus{}
		return repo, bus, NewPostService(repo, &fakeIdeaRepo{ideas: map[string]*model.Idea{}}, bus)
	}

	t.Run("publish sets published at", func(t *testing.T) {
		repo, bus, svc := newService()
		res, err := svc.UpdatePost(ctx, admin, "post-1", &dto.PostUpdateDTO{Status: strPtr("PUBLISHED")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Post.Status != "PUBLISHED" || repo.posts["post-1"].PublishedAt == nil {
			t.Fatalf("post = %+v", res.Post)
		}
		if got := bus.types(); len(got) != 1 || got[0] != dto.EventPostUpdated {
			t.Fatalf("events = %v", got)
		}
	})

	t.Run("long title warns", func(t *testing.T) {
		_, _, svc := newService()
		title := strings.Repeat("t", 61)
		res, err := svc.UpdatePost(ctx, admin, "post-1", &dto.PostUpdateDTO{Title: &title})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Warnings) != 1 || res.Warnings[0] != SEOTitleWarning {
			t.Fatalf("warnings = %v", res.Warnings)
		}
	})

	t.Run("raising risk blocks ready", func(t *testing.T) {
		_, _, svc := newService()
		_, err := svc.UpdatePost(ctx, admin, "post-1", &dto.PostUpdateDTO{RiskLevel: strPtr("HIGH")})
		if !errors.Is(err, ErrHighRiskNotReady) {
			t.Fatalf("err = %v, want ErrHighRiskNotReady", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, _, svc := newService()
		if _, err := svc.UpdatePost(ctx, admin, "nope", &dto.PostUpdateDTO{}); !errors.Is(err, ErrPostNotFound) {
			t.Fatalf("err = %v", err)
		}
		if err := svc.DeletePost(ctx, admin, "nope"); !errors.Is(err, ErrPostNotFound) {
			t.Fatalf("delete err = %v", err)
		}
	})
}

func TestCreatePostUnknownIdea(t *testing.T) {
	repo := &fakePostRepo{posts: map[string]*model.Post{}}
	svc := NewPostService(repo, &fakeIdeaRepo{ideas: map[string]*model.Idea{}}, &recordingBus{})
	_, err := svc.CreatePost(context.Background(), owner, &dto.PostCreateDTO{Title: "New", IdeaID: strPtr("missing")})
	if !errors.Is(err, ErrIdeaNotFound) {
		t.Fatalf("err = %v, want ErrIdeaNotFound", err)
	}
	res, err := svc.CreatePost(context.Background(), owner, &dto.PostCreateDTO{Title: "New"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Post.Status != "DRAFT" || res.Post.RiskLevel != "LOW" || res.Post.AuthorID != owner.UserID {
		t.Fatalf("post = %+v", res.Post)
	}
}
