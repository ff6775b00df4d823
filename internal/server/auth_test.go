package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// TestRegisterValidation verifies that bad registration payloads are rejected
// before any database work happens.
func TestRegisterValidation(t *testing.T) {
	s := &Server{}
	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@b.c","password":"longenough"}`},
		{"missing email", `{"username":"alice","password":"longenough"}`},
		{"short password", `{"username":"alice","email":"a@b.c","password":"short"}`},
		{"invalid json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			s.handleRegister(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestUpdateMeValidation verifies profile update rejects invalid values.
func TestUpdateMeValidation(t *testing.T) {
	s := &Server{}
	uid := uuid.New()

	cases := []struct {
		name string
		body string
	}{
		{"invalid gender", `{"gender":"other"}`},
		{"zero weekly goal", `{"weeklyGoal":0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest(http.MethodPatch, "/api/v1/auth/me", []byte(tc.body), uid)
			rec := httptest.NewRecorder()
			s.handleUpdateMe(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
