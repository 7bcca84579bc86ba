package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wenqianzh/medpoint-backend/internal/utils"
)

const testSecret = "test-secret"

func runAdminAuth(t *testing.T, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/schedules", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := AdminAuth(testSecret)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	return rec, reached
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAdminToken(testSecret, "admin", 10)
	if err != nil {
		t.Fatalf("NewAdminToken() error = %v", err)
	}
	rec, reached := runAdminAuth(t, "Bearer "+tok.Token)
	if !reached {
		t.Fatalf("handler not reached, status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestAdminAuthRejections(t *testing.T) {
	wrongSecret, err := utils.NewAdminToken("other-secret", "admin", 10)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := utils.NewAdminToken(testSecret, "admin", -10)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + wrongSecret.Token, http.StatusUnauthorized},
		{"expired", "Bearer " + expired.Token, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reached := runAdminAuth(t, tt.header)
			if reached {
				t.Fatal("handler reached, want rejection")
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
