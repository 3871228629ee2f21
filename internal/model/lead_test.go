package model

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestLeadScore(t *testing.T) {
	cases := []struct {
		name string
		lead Lead
		want int
	}{
		{name: "bare email", lead: Lead{Email: "a@b.co"}, want: 0},
		{name: "company only", lead: Lead{Company: strPtr("Acme")}, want: 1},
		{name: "keyword", lead: Lead{Message: strPtr("We need an enterprise plan")}, want: 1},
		{
			name: "company long keyword",
			lead: Lead{Company: strPtr("Acme"), Message: strPtr(strings.Repeat("our team is growing fast ", 4))},
			want: 3,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.lead.ComputeScore(); got != tc.want {
				t.Fatalf("score = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLeadDisplayName(t *testing.T) {
	l := Lead{Email: "jane@example.com"}
	if l.DisplayName() != "jane@example.com" {
		t.Fatalf("expected email fallback, got %q", l.DisplayName())
	}
	l.Name = strPtr(" Jane ")
	if l.DisplayName() != "Jane" {
		t.Fatalf("expected trimmed name, got %q", l.DisplayName())
	}
}
