package service

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/model"
	"CommandCenter/internal/pkg/consts"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

var (
	owner = dto.Actor{UserID: "user-1", Email: "editor@example.com", Role: consts.RoleEditor}
	other = dto.Actor{UserID: "user-2", Email: "other@example.com", Role: consts.RoleEditor}
	admin = dto.Actor{UserID: "admin-1", Email: "admin@example.com", Role: consts.RoleAdmin}
)

func boolPtr(b bool) *bool { return &b }

func seedReview(t *testing.T) (*fakeArtifactRepo, *recordingBus, ReviewService) {
	t.Helper()
	repo := newFakeArtifactRepo()
	ideaID := "idea-1"
	repo.ideas[ideaID] = &model.Idea{ID: ideaID, UserID: owner.UserID, Title: "Edge caching", Status: model.IdeaStatusDraft}
	repo.artifacts["outline-1"] = &model.AIArtifact{
		ID:       "outline-1",
		Type:     model.ArtifactOutline,
		Title:    "Outline for: Edge caching",
		Content:  datatypes.JSON(`{"title":"Edge caching"}`),
		Status:   model.ArtifactPendingReview,
		Metadata: datatypes.JSONMap{"taskId": "task-1"},
		UserID:   owner.UserID,
		IdeaID:   &ideaID,
	}
	repo.artifacts["facts-1"] = &model.AIArtifact{
		ID:      "facts-1",
		Type:    model.ArtifactFacts,
		Title:   "Facts: Edge caching",
		Content: datatypes.JSON(`{"facts":[{"statement":"CDNs cache content"}]}`),
		Status:  model.ArtifactPendingReview,
		UserID:  owner.UserID,
		IdeaID:  &ideaID,
	}
	bus := &recordingBus{}
	return repo, bus, NewReviewService(repo, bus)
}

func TestChooseOutline(t *testing.T) {
	ctx := context.Background()

	t.Run("approve activates idea", func(t *testing.T) {
		repo, bus, svc := seedReview(t)
		feedback := "looks good"
		res, err := svc.ChooseOutline(ctx, owner, &dto.OutlineChoiceDTO{ArtifactID: "outline-1", Approved: boolPtr(true), Feedback: &feedback})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Artifact.Status != "APPROVED" || !res.Artifact.Approved || res.Artifact.ApprovedAt == nil {
			t.Fatalf("artifact not approved: %+v", res.Artifact)
		}
		if res.Message != "Outline approved successfully" {
			t.Fatalf("message = %q", res.Message)
		}
		if repo.ideas["idea-1"].Status != model.IdeaStatusActive {
			t.Fatalf("idea status = %s, want ACTIVE", repo.ideas["idea-1"].Status)
		}
		md := res.Artifact.Metadata
		if md["feedback"] != feedback || md["reviewedBy"] != owner.UserID || md["taskId"] != "task-1" {
			t.Fatalf("metadata not merged: %v", md)
		}
		if got := bus.types(); len(got) != 1 || got[0] != dto.EventArtifactReviewed {
			t.Fatalf("events = %v", got)
		}
	})

	t.Run("reject keeps idea draft", func(t *testing.T) {
		repo, _, svc := seedReview(t)
		res, err := svc.ChooseOutline(ctx, owner, &dto.OutlineChoiceDTO{ArtifactID: "outline-1", Approved: boolPtr(false)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Artifact.Status != "REJECTED" || res.Artifact.ApprovedAt != nil {
			t.Fatalf("artifact = %+v", res.Artifact)
		}
		if res.Message != "Outline rejected" {
			t.Fatalf("message = %q", res.Message)
		}
		if repo.ideas["idea-1"].Status != model.IdeaStatusDraft {
			t.Fatalf("idea status = %s, want DRAFT", repo.ideas["idea-1"].Status)
		}
	})

	t.Run("review only once", func(t *testing.T) {
		_, _, svc := seedReview(t)
		req := &dto.OutlineChoiceDTO{ArtifactID: "outline-1", Approved: boolPtr(true)}
		if _, err := svc.ChooseOutline(ctx, owner, req); err != nil {
			t.Fatalf("first review: %v", err)
		}
		_, err := svc.ChooseOutline(ctx, owner, &dto.OutlineChoiceDTO{ArtifactID: "outline-1", Approved: boolPtr(false)})
		if !errors.Is(err, ErrArtifactAlreadyReviewed) {
			t.Fatalf("second review err = %v, want ErrArtifactAlreadyReviewed", err)
		}
	})

	cases := []struct {
		name  string
		actor dto.Actor
		id    string
		want  error
	}{
		{"missing", owner, "nope", ErrOutlineNotFound},
		{"not owner", other, "outline-1", ErrOutlineNotFound},
		{"wrong type", owner, "facts-1", ErrInvalidArtifactType},
		{"admin", admin, "outline-1", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, svc := seedReview(t)
			_, err := svc.ChooseOutline(ctx, tc.actor, &dto.OutlineChoiceDTO{ArtifactID: tc.id, Approved: boolPtr(true)})
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestApproveFacts(t *testing.T) {
	ctx := context.Background()
	conf := 0.9
	fact := func(statement string, approved bool) dto.ReviewedFactDTO {
		return dto.ReviewedFactDTO{Statement: statement, Confidence: &conf, Category: "statistic", Approved: approved}
	}

	cases := []struct {
		name       string
		facts      []dto.ReviewedFactDTO
		wantStatus string
		wantMsg    string
		wantActive bool
	}{
		{
			name:       "partial approval",
			facts:      []dto.ReviewedFactDTO{fact("a", true), fact("b", false), fact("c", true)},
			wantStatus: "APPROVED",
			wantMsg:    "2 facts approved successfully",
			wantActive: true,
		},
		{
			name:       "all rejected",
			facts:      []dto.ReviewedFactDTO{fact("a", false), fact("b", false)},
			wantStatus: "REJECTED",
			wantMsg:    "All facts rejected",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, _, svc := seedReview(t)
			res, err := svc.ApproveFacts(ctx, owner, &dto.FactsApprovalDTO{ArtifactID: "facts-1", ApprovedFacts: tc.facts})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Artifact.Status != tc.wantStatus || res.Message != tc.wantMsg {
				t.Fatalf("status=%s message=%q", res.Artifact.Status, res.Message)
			}
			if *res.TotalCount != len(tc.facts) {
				t.Fatalf("total = %d", *res.TotalCount)
			}
			if active := repo.ideas["idea-1"].Status == model.IdeaStatusActive; active != tc.wantActive {
				t.Fatalf("idea active = %v, want %v", active, tc.wantActive)
			}

			var content factsReviewContent
			if err = json.Unmarshal(res.Artifact.Content, &content); err != nil {
				t.Fatalf("content: %v", err)
			}
			if content.TotalFactsCount != len(tc.facts) || content.ApprovedFactsCount != *res.ApprovedCount {
				t.Fatalf("content counts = %+v", content)
			}
			if len(content.OriginalFacts) == 0 || string(content.OriginalFacts) == "null" {
				t.Fatalf("original facts lost")
			}
			stats, ok := res.Artifact.Metadata["approvalStats"].(map[string]any)
			if !ok || stats["total"] != len(tc.facts) {
				t.Fatalf("approvalStats = %v", res.Artifact.Metadata["approvalStats"])
			}
		})
	}

	t.Run("outline id rejected", func(t *testing.T) {
		_, _, svc := seedReview(t)
		_, err := svc.ApproveFacts(ctx, owner, &dto.FactsApprovalDTO{ArtifactID: "outline-1", ApprovedFacts: []dto.ReviewedFactDTO{fact("a", true)}})
		if !errors.Is(err, ErrInvalidArtifactType) {
			t.Fatalf("err = %v", err)
		}
	})
}

func TestPendingQueue(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := seedReview(t)
	now := time.Now()
	repo.artifacts["outline-old"] = &model.AIArtifact{
		ID: "outline-old", Type: model.ArtifactOutline, Status: model.ArtifactPendingReview,
		UserID: other.UserID, CreatedAt: now.Add(-time.Hour),
	}
	repo.artifacts["outline-1"].CreatedAt = now

	mine, err := svc.PendingQueue(ctx, owner, model.ArtifactOutline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mine.Count != 1 || mine.Artifacts[0].ID != "outline-1" {
		t.Fatalf("owner queue = %+v", mine)
	}

	all, err := svc.PendingQueue(ctx, admin, model.ArtifactOutline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all.Count != 2 || all.Artifacts[0].ID != "outline-old" {
		t.Fatalf("admin queue should be oldest first: %+v", all.Artifacts)
	}
}

func TestGetArtifact(t *testing.T) {
	ctx := context.Background()
	_, _, svc := seedReview(t)

	if _, err := svc.GetArtifact(ctx, other, "outline-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other err = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetArtifact(ctx, owner, "missing"); !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("missing err = %v, want ErrArtifactNotFound", err)
	}
	got, err := svc.GetArtifact(ctx, admin, "outline-1")
	if err != nil || got.ID != "outline-1" {
		t.Fatalf("admin get = %+v, %v", got, err)
	}
}
