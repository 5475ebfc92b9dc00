package moderation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vetlink/vetlink-api/internal/middleware"
	"github.com/vetlink/vetlink-api/internal/pkg/jwt"
)

func newRoutesTest(t *testing.T) (*testEnv, http.Handler, *jwt.Service) {
	t.Helper()
	env := newTestEnv()
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute)
	router := Routes(NewHandler(env.service), middleware.Auth(jwtSvc))
	return env, router, jwtSvc
}

func bearerRequest(t *testing.T, method, target, token, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestRoutesFenceBannedAccounts(t *testing.T) {
	env, router, jwtSvc := newRoutesTest(t)

	user := env.accounts.add(newTestUser("fenced"))
	banTestAccount(t, env, user)

	token, err := jwtSvc.GenerateAccessToken(user.ID, string(user.Type), true)
	requireNoError(t, err)

	fenced := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/reports", `{"reported_type":"doctor","reported_id":"` + uuid.NewString() + `","reason":"spam"}`},
		{http.MethodGet, "/reports/mine", ""},
	}

	for _, tt := range fenced {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, bearerRequest(t, tt.method, tt.target, token, tt.body))

		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: banned account expected 403, got %d", tt.method, tt.target, w.Code)
			continue
		}
		var resp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: bad response body: %v", tt.method, tt.target, err)
		}
		if resp.Error.Message != "Your account has been banned" {
			t.Errorf("%s %s: unexpected message %q", tt.method, tt.target, resp.Error.Message)
		}
	}
}

func TestRoutesAllowBannedAccountUnbanRequests(t *testing.T) {
	env, router, jwtSvc := newRoutesTest(t)

	user := env.accounts.add(newTestUser("petitioner"))
	banTestAccount(t, env, user)

	token, err := jwtSvc.GenerateAccessToken(user.ID, string(user.Type), true)
	requireNoError(t, err)

	body := `{"message":"I promise to follow the rules from now on."}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearerRequest(t, http.MethodPost, "/unban-requests", token, body))

	if w.Code != http.StatusOK {
		t.Fatalf("banned account must reach unban requests, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, bearerRequest(t, http.MethodGet, "/unban-requests/mine", token, ""))

	if w.Code != http.StatusOK {
		t.Fatalf("banned account must list its unban requests, got %d", w.Code)
	}
	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected the submitted request in the list, got %d entries", len(resp.Data))
	}
}

func TestRoutesActiveAccountCanReport(t *testing.T) {
	env, router, jwtSvc := newRoutesTest(t)

	reporter := env.accounts.add(newTestUser("reporter"))
	doctor := env.accounts.add(newTestDoctor("drspam"))

	token, err := jwtSvc.GenerateAccessToken(reporter.ID, string(reporter.Type), false)
	requireNoError(t, err)

	body := fmt.Sprintf(`{"reported_type":"doctor","reported_id":"%s","reason":"spam"}`, doctor.ID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, bearerRequest(t, http.MethodPost, "/reports", token, body))

	if w.Code != http.StatusCreated {
		t.Fatalf("active account report expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, bearerRequest(t, http.MethodGet, "/reports/mine", token, ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRoutesRejectAnonymous(t *testing.T) {
	_, router, _ := newRoutesTest(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/mine", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", w.Code)
	}
}
