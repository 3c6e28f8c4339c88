package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chetan-code/planner/internal/auth"
	"github.com/chetan-code/planner/internal/repository"
	"github.com/chetan-code/planner/internal/service"
)

// testEnv wires both surfaces over one in-test database, the same way
// main does it.
type testEnv struct {
	svc    *service.Service
	router http.Handler
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	tokens, err := auth.NewTokenService("test-secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}
	svc := service.New(db, tokens, time.UTC)
	resolver := auth.NewResolver(tokens, svc.Users())

	api := NewAPIHandler(svc)
	web := NewWebHandler(svc, os.DirFS("../../templates"))
	return &testEnv{svc: svc, router: Routes(api, web, resolver)}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(target string, form string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// registerAPI creates a user over the REST surface and returns a token.
func (e *testEnv) registerAPI(t *testing.T, email string) string {
	t.Helper()
	rec := e.do(jsonRequest(http.MethodPost, "/users/",
		`{"name":"Ann","email":"`+email+`","age":30,"password":"pw"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body)
	}

	rec = e.do(formRequest("/token", "username="+email+"&password=pw"))
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body)
	}
	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding token response failed: %v", err)
	}
	if out.TokenType != "bearer" || out.AccessToken == "" {
		t.Fatalf("bad token response: %+v", out)
	}
	return out.AccessToken
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeBody(t *testing.T, body io.Reader, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
}
