package response

import (
	"CommandCenter/internal/service"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type envelope struct {
	Code    int                        `json:"code"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func run(t *testing.T, err error) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)

	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return w, body
}

func TestErrorMapsSentinelToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrOutlineNotFound, http.StatusNotFound},
		{"wrapped", fmt.Errorf("review: %w", service.ErrInvalidArtifactType), http.StatusBadRequest},
		{"conflict", service.ErrArtifactAlreadyReviewed, http.StatusConflict},
		{"rate limit", service.ErrRateLimited, http.StatusTooManyRequests},
		{"unknown", fmt.Errorf("dial tcp: refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := run(t, tc.err)
			if w.Code != tc.code || body.Code != tc.code {
				t.Fatalf("status=%d code=%d, want %d", w.Code, body.Code, tc.code)
			}
		})
	}
}

func TestErrorHidesUnknownMessage(t *testing.T) {
	_, body := run(t, fmt.Errorf("pq: password authentication failed"))
	if body.Message != service.UnExpectedError.Error() {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestErrorCarriesDetails(t *testing.T) {
	err := &service.DetailError{
		Err:     service.ErrHighRiskNotReady,
		Details: map[string]bool{"hasApprovedOutline": true, "hasApprovedFacts": false},
	}
	w, body := run(t, err)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if body.Message != "Cannot move high-risk post to READY status" {
		t.Fatalf("message = %q", body.Message)
	}
	if _, ok := body.Data["details"]; !ok {
		t.Fatalf("details missing: %v", body.Data)
	}
}
