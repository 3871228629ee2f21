package util

import "testing"

func TestCountWords(t *testing.T) {
	cases := map[string]int{
		"":                     0,
		"one":                  1,
		"  two   words\n":      2,
		"tabs\tand\nnewlines ": 3,
	}
	for in, want := range cases {
		if got := CountWords(in); got != want {
			t.Fatalf("CountWords(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0, 10, 100)
	if page != 1 || limit != 10 {
		t.Fatalf("got %d/%d, want 1/10", page, limit)
	}
	_, limit = NormalizePage(3, 500, 10, 100)
	if limit != 100 {
		t.Fatalf("limit = %d, want 100", limit)
	}
}

func TestNilIfEmptyAndDeref(t *testing.T) {
	if NilIfEmpty("   ") != nil {
		t.Fatal("blank string should be nil")
	}
	if got := Deref(NilIfEmpty(" acme ")); got != "acme" {
		t.Fatalf("Deref = %q", got)
	}
	var p *int
	if Deref(p) != 0 {
		t.Fatal("nil pointer should deref to zero")
	}
}

func TestValidateDTO(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}
	if err := ValidateDTO(&payload{Email: "a@b.co"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateDTO(&payload{Email: "nope"}); err == nil {
		t.Fatal("expected validation error")
	}
}
