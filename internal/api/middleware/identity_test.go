package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nusapress/articles-api/internal/core/domain"
	"github.com/nusapress/articles-api/internal/core/service"
)

type stubUserRepo struct {
	users map[int64]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	panic("not used")
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func run(t *testing.T, tokens *service.TokenManager, repo *stubUserRepo, authHeader string) (*httptest.ResponseRecorder, *domain.User) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	mw := Identity(tokens, repo)
	handler := mw(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("resolver must never error, got %v", err)
	}
	return rec, seen
}

func TestIdentity_ValidToken(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Hour)
	user := &domain.User{ID: 7, Username: "u1", Role: domain.RoleMember}
	repo := &stubUserRepo{users: map[int64]*domain.User{7: user}}

	token, _, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, seen := run(t, tokens, repo, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.ID != 7 || seen.Username != "u1" {
		t.Fatalf("expected resolved user, got %+v", seen)
	}
}

func TestIdentity_CollapsesToAnonymous(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Hour)
	user := &domain.User{ID: 7, Role: domain.RoleMember}
	repo := &stubUserRepo{users: map[int64]*domain.User{7: user}}

	valid, _, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	forged, _, err := service.NewTokenManager("other-secret", time.Hour).Issue(user)
	if err != nil {
		t.Fatalf("issue forged: %v", err)
	}
	unknownSubject, _, err := tokens.Issue(&domain.User{ID: 99, Role: domain.RoleMember})
	if err != nil {
		t.Fatalf("issue unknown: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Token " + valid},
		{"no token after scheme", "Bearer"},
		{"malformed token", "Bearer not-a-token"},
		{"forged signature", "Bearer " + forged},
		{"subject no longer exists", "Bearer " + unknownSubject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, seen := run(t, tokens, repo, tc.header)
			// Resolution failure is invisible: the request proceeds as
			// anonymous, indistinguishable from never having logged in.
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if seen != nil {
				t.Fatalf("expected anonymous, got %+v", seen)
			}
		})
	}
}

func TestCurrentUser_NoMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if CurrentUser(c) != nil {
		t.Fatalf("expected nil user without middleware")
	}
}
