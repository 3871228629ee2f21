package model

import "testing"

func TestPostStatusTransitions(t *testing.T) {
	cases := []struct {
		from PostStatus
		to   PostStatus
		ok   bool
	}{
		{PostDraft, PostReady, true},
		{PostDraft, PostPublished, false},
		{PostReady, PostScheduled, true},
		{PostReady, PostPublished, true},
		{PostScheduled, PostPublished, true},
		{PostPublished, PostDraft, false},
		{PostPublished, PostArchived, true},
		{PostArchived, PostDraft, true},
		{PostReady, PostReady, true},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestPostApprovedArtifacts(t *testing.T) {
	post := &Post{Artifacts: []AIArtifact{
		{Type: ArtifactOutline, Status: ArtifactApproved},
		{Type: ArtifactFacts, Status: ArtifactRejected},
	}}
	outline, facts := post.ApprovedArtifacts()
	if !outline || facts {
		t.Fatalf("got outline=%v facts=%v, want true/false", outline, facts)
	}

	post.Artifacts = append(post.Artifacts, AIArtifact{Type: ArtifactFactsFinal, Status: ArtifactApproved})
	if _, facts = post.ApprovedArtifacts(); !facts {
		t.Fatalf("approved FACTS_final should count as approved facts")
	}
}
