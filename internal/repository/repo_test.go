package repository

import (
	"CommandCenter/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// 内存库每个连接独立，事务内外必须共用同一连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err = db.AutoMigrate(&model.Idea{}, &model.Post{}, &model.AIArtifact{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedIdea(t *testing.T, repo IdeaRepo, userID string) (*model.Idea, *model.AIArtifact) {
	t.Helper()
	idea := &model.Idea{
		UserID:   userID,
		Title:    "Edge caching",
		Status:   model.IdeaStatusDraft,
		Priority: model.PriorityMedium,
		Tags:     datatypes.JSONSlice[string]{"cdn"},
	}
	outline := &model.AIArtifact{
		Type:    model.ArtifactOutline,
		Title:   "Outline for: Edge caching",
		Content: datatypes.JSON(`{"title":"Edge caching"}`),
		Status:  model.ArtifactPendingReview,
		UserID:  userID,
	}
	if err := repo.CreateIdeaWithArtifact(context.Background(), idea, outline); err != nil {
		t.Fatalf("create idea: %v", err)
	}
	if idea.ID == "" || outline.ID == "" {
		t.Fatalf("ids not generated: idea=%q artifact=%q", idea.ID, outline.ID)
	}
	return idea, outline
}

func TestReviewArtifactCascadesIdea(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ideas := NewIdeaRepo(db)
	artifacts := NewArtifactRepo(db)

	idea, outline := seedIdea(t, ideas, "owner")

	now := time.Now()
	reviewed, err := artifacts.ReviewArtifact(ctx, outline.ID, ArtifactReview{
		Status:     model.ArtifactApproved,
		ApprovedAt: &now,
		Metadata:   datatypes.JSONMap{"reviewedBy": "editor"},
	})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if reviewed.Status != model.ArtifactApproved || !reviewed.Approved || reviewed.ApprovedAt == nil {
		t.Fatalf("reviewed = %+v", reviewed)
	}
	if reviewed.Metadata["reviewedBy"] != "editor" {
		t.Fatalf("metadata = %v", reviewed.Metadata)
	}
	if string(reviewed.Content) != `{"title":"Edge caching"}` {
		t.Fatalf("content overwritten: %s", reviewed.Content)
	}

	got, err := ideas.GetIdea(ctx, idea.ID)
	if err != nil || got == nil {
		t.Fatalf("get idea: %v %v", got, err)
	}
	if got.Status != model.IdeaStatusActive {
		t.Fatalf("idea status = %s, want ACTIVE", got.Status)
	}

	_, err = artifacts.ReviewArtifact(ctx, outline.ID, ArtifactReview{Status: model.ArtifactRejected})
	if !errors.Is(err, ErrStaleState) {
		t.Fatalf("second review err = %v, want ErrStaleState", err)
	}
	stored, err := artifacts.GetArtifact(ctx, outline.ID)
	if err != nil || stored.Status != model.ArtifactApproved {
		t.Fatalf("stored after stale review = %+v (%v)", stored, err)
	}

	_, err = artifacts.ReviewArtifact(ctx, "missing", ArtifactReview{Status: model.ArtifactApproved})
	if !errors.Is(err, ErrStaleState) {
		t.Fatalf("missing artifact err = %v, want ErrStaleState", err)
	}
}

func TestRejectKeepsIdeaDraft(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ideas := NewIdeaRepo(db)
	artifacts := NewArtifactRepo(db)

	idea, outline := seedIdea(t, ideas, "owner")
	edited := datatypes.JSON(`{"title":"Edited"}`)
	reviewed, err := artifacts.ReviewArtifact(ctx, outline.ID, ArtifactReview{
		Status:  model.ArtifactRejected,
		Content: edited,
	})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if reviewed.Approved || string(reviewed.Content) != string(edited) {
		t.Fatalf("reviewed = %+v", reviewed)
	}

	got, _ := ideas.GetIdea(ctx, idea.ID)
	if got.Status != model.IdeaStatusDraft {
		t.Fatalf("idea status = %s, want DRAFT", got.Status)
	}
}

func TestCreatePostLinksArtifacts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ideas := NewIdeaRepo(db)
	artifacts := NewArtifactRepo(db)
	posts := NewPostRepository(db)

	idea, outline := seedIdea(t, ideas, "owner")
	facts := &model.AIArtifact{
		Type:   model.ArtifactFacts,
		Title:  "Facts: Edge caching",
		Status: model.ArtifactPendingReview,
		UserID: "owner",
		IdeaID: &idea.ID,
	}
	other := "other-post"
	claimed := &model.AIArtifact{
		Type:   model.ArtifactSEO,
		Title:  "SEO: elsewhere",
		Status: model.ArtifactPendingReview,
		UserID: "owner",
		IdeaID: &idea.ID,
		PostID: &other,
	}
	loose := &model.AIArtifact{
		Type:   model.ArtifactSummary,
		Title:  "Summary: loose",
		Status: model.ArtifactPendingReview,
		UserID: "owner",
	}
	for _, a := range []*model.AIArtifact{facts, claimed, loose} {
		if err := artifacts.CreateArtifact(ctx, a); err != nil {
			t.Fatalf("create artifact: %v", err)
		}
	}

	post := &model.Post{
		AuthorID:  "owner",
		Title:     "Edge caching",
		Status:    model.PostDraft,
		RiskLevel: model.RiskHigh,
		IdeaID:    &idea.ID,
	}
	if err := posts.CreatePost(ctx, post, []string{loose.ID}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	got, err := posts.GetPost(ctx, post.ID)
	if err != nil || got == nil {
		t.Fatalf("get post: %v %v", got, err)
	}
	linked := map[string]bool{}
	for _, a := range got.Artifacts {
		linked[a.ID] = true
	}
	if len(linked) != 3 || !linked[outline.ID] || !linked[facts.ID] || !linked[loose.ID] {
		t.Fatalf("linked artifacts = %v", linked)
	}
	stillClaimed, _ := artifacts.GetArtifact(ctx, claimed.ID)
	if stillClaimed.PostID == nil || *stillClaimed.PostID != other {
		t.Fatalf("artifact of another post relinked: %v", stillClaimed.PostID)
	}

	// 预加载的产出物用于高风险就绪判断
	if hasOutline, hasFacts := got.ApprovedArtifacts(); hasOutline || hasFacts {
		t.Fatalf("nothing approved yet: outline=%v facts=%v", hasOutline, hasFacts)
	}
	now := time.Now()
	if _, err = artifacts.ReviewArtifact(ctx, outline.ID, ArtifactReview{Status: model.ArtifactApproved, ApprovedAt: &now}); err != nil {
		t.Fatalf("approve outline: %v", err)
	}
	got, _ = posts.GetPost(ctx, post.ID)
	if hasOutline, hasFacts := got.ApprovedArtifacts(); !hasOutline || hasFacts {
		t.Fatalf("after approve: outline=%v facts=%v", hasOutline, hasFacts)
	}

	missing, err := posts.GetPost(ctx, "missing")
	if err != nil || missing != nil {
		t.Fatalf("missing post = %v, %v", missing, err)
	}
}

func TestDeletePostDetachesArtifacts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ideas := NewIdeaRepo(db)
	artifacts := NewArtifactRepo(db)
	posts := NewPostRepository(db)

	idea, outline := seedIdea(t, ideas, "owner")
	post := &model.Post{AuthorID: "owner", Title: "t", Status: model.PostDraft, RiskLevel: model.RiskLow, IdeaID: &idea.ID}
	if err := posts.CreatePost(ctx, post, nil); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := posts.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if got, _ := posts.GetPost(ctx, post.ID); got != nil {
		t.Fatalf("post still present: %+v", got)
	}
	a, err := artifacts.GetArtifact(ctx, outline.ID)
	if err != nil || a == nil {
		t.Fatalf("artifact removed with post: %v", err)
	}
	if a.PostID != nil {
		t.Fatalf("artifact still linked to %s", *a.PostID)
	}
}
