package model

import (
	"errors"
	"testing"
)

func TestArtifactReviewTransitions(t *testing.T) {
	cases := []struct {
		name     string
		from     ArtifactStatus
		approved bool
		want     ArtifactStatus
		wantErr  bool
	}{
		{name: "approve pending", from: ArtifactPendingReview, approved: true, want: ArtifactApproved},
		{name: "reject pending", from: ArtifactPendingReview, approved: false, want: ArtifactRejected},
		{name: "approve approved", from: ArtifactApproved, approved: true, want: ArtifactApproved, wantErr: true},
		{name: "reject approved", from: ArtifactApproved, approved: false, want: ArtifactApproved, wantErr: true},
		{name: "approve rejected", from: ArtifactRejected, approved: true, want: ArtifactRejected, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.from.Review(tc.approved)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("status = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestArtifactTerminalStates(t *testing.T) {
	if ArtifactPendingReview.IsTerminal() {
		t.Fatalf("pending review must not be terminal")
	}
	for _, s := range []ArtifactStatus{ArtifactApproved, ArtifactRejected} {
		if !s.IsTerminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
}
