package handler

import (
	"CommandCenter/internal/api/dto"
	"CommandCenter/internal/service"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type stubReviewService struct {
	service.ReviewService
	gotActor dto.Actor
	gotReq   *dto.OutlineChoiceDTO
	err      error
}

func (s *stubReviewService) ChooseOutline(_ context.Context, actor dto.Actor, req *dto.OutlineChoiceDTO) (*dto.ReviewResultDTO, error) {
	s.gotActor = actor
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ReviewResultDTO{
		Success:  true,
		Artifact: &dto.ArtifactDTO{ID: req.ArtifactID, Status: "APPROVED"},
		Message:  "Outline approved successfully",
	}, nil
}

type stubPostService struct {
	service.PostService
	err error
}

func (s *stubPostService) UpdatePost(_ context.Context, _ dto.Actor, id string, _ *dto.PostUpdateDTO) (*dto.PostResultDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PostResultDTO{Post: &dto.PostDTO{ID: id}}, nil
}

type stubLeadService struct {
	service.LeadService
}

func (s *stubLeadService) ExportCSV(_ context.Context, _ *dto.LeadListQuery, w io.Writer) error {
	_, err := io.WriteString(w, "email,name\na@example.com,A\n")
	return err
}

func withActor(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestChooseOutline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{name: "approve", body: `{"artifactId":"a-1","approved":true}`, wantCode: http.StatusOK},
		{name: "missing decision", body: `{"artifactId":"a-1"}`, wantCode: http.StatusBadRequest},
		{name: "missing artifact", body: `{"approved":false}`, wantCode: http.StatusBadRequest},
		{name: "not found", body: `{"artifactId":"a-2","approved":true}`, err: service.ErrOutlineNotFound, wantCode: http.StatusNotFound},
		{name: "already reviewed", body: `{"artifactId":"a-3","approved":false}`, err: service.ErrArtifactAlreadyReviewed, wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubReviewService{err: tt.err}
			h := NewAIHandler(nil, svc)
			r := gin.New()
			r.POST("/api/ai/outline/choose", withActor("owner", "USER"), h.ChooseOutline)

			w := perform(r, http.MethodPost, "/api/ai/outline/choose", tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				if svc.gotActor.UserID != "owner" {
					t.Fatalf("actor = %+v, want owner", svc.gotActor)
				}
				data := decode(t, w)["data"].(map[string]any)
				if data["success"] != true {
					t.Fatalf("data = %v", data)
				}
			}
		})
	}
}

func TestUpdatePostHighRiskDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubPostService{err: &service.DetailError{
		Err:     service.ErrHighRiskNotReady,
		Details: []string{"approved facts required"},
	}}
	h := NewPostHandler(svc)
	r := gin.New()
	r.PUT("/api/admin/posts/:id", withActor("editor", "EDITOR"), h.Update)

	w := perform(r, http.MethodPut, "/api/admin/posts/p-1", `{"status":"READY"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decode(t, w)
	if body["message"] != service.ErrHighRiskNotReady.Error() {
		t.Fatalf("message = %v", body["message"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["details"] == nil {
		t.Fatalf("details missing: %v", body)
	}

	w = perform(r, http.MethodPut, "/api/admin/posts/p-1", `{"status":"LIVE"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status accepted: %d", w.Code)
	}
}

func TestExportLeads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewLeadHandler(&stubLeadService{})
	r := gin.New()
	r.GET("/api/admin/leads/export", h.Export)

	w := perform(r, http.MethodGet, "/api/admin/leads/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "leads-export-") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !strings.Contains(w.Body.String(), "a@example.com") {
		t.Fatalf("body = %q", w.Body.String())
	}
}
