package handler_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/nusapress/articles-api/internal/core/domain"
)

// registerMember creates a fresh member account over HTTP and returns its token.
func registerMember(t *testing.T, a *testAPI, username, email string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "pw123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var res struct {
		Token string `json:"token"`
	}
	decode(t, rec, &res)
	return res.Token
}

// createDraft creates an article with the given token and flips it to draft,
// returning its id.
func createDraft(t *testing.T, a *testAPI, token string) int64 {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/articles", token, map[string]string{
		"title":   "work in progress",
		"content": "not ready yet",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Article *domain.Article `json:"article"`
	}
	decode(t, rec, &res)

	upd := a.do(t, http.MethodPut, "/articles/"+itoa(res.Article.ID), token, map[string]string{
		"status": "draft",
	})
	if upd.Code != http.StatusOK {
		t.Fatalf("flip to draft: expected 200, got %d: %s", upd.Code, upd.Body.String())
	}
	return res.Article.ID
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestListArticles_PublicAndFiltersDrafts(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t)

	token := a.login(t, "member1@test.com", "member123")
	createDraft(t, a, token)

	rec := a.do(t, http.MethodGet, "/articles", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous listing, got %d", rec.Code)
	}

	var articles []*domain.Article
	decode(t, rec, &articles)
	if len(articles) != 2 {
		t.Fatalf("expected the 2 seeded published articles, got %d", len(articles))
	}
	for _, art := range articles {
		if art.Status != domain.StatusPublished {
			t.Fatalf("draft leaked into the public listing: %+v", art)
		}
	}
}

func TestListArticles_EmptyStore(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/articles", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" && body != "[]" {
		t.Fatalf("expected an empty JSON array, got %q", body)
	}
}

func TestGetArticle(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t)

	token := a.login(t, "member1@test.com", "member123")
	draftID := createDraft(t, a, token)

	rec := a.do(t, http.MethodGet, "/articles/1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var article domain.Article
	decode(t, rec, &article)
	if article.ID != 1 || article.OwnerID != nil {
		t.Fatalf("expected the system-owned seed article, got %+v", article)
	}

	cases := map[string]string{
		"missing id":      "/articles/999",
		"non-numeric id":  "/articles/abc",
		"draft is hidden": "/articles/" + itoa(draftID),
		"zero id":         "/articles/0",
		"negative id":     "/articles/-1",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			rec := a.do(t, http.MethodGet, path, "", nil)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateArticle_AnonymousGets401(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t)

	rec := a.do(t, http.MethodPost, "/articles", "", map[string]string{
		"title":   "drive-by",
		"content": "should not exist",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous create, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := errorMessage(t, rec); msg != "authentication required" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestCreateArticle_OwnedByActorAndPublished(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t)

	token := a.login(t, "member1@test.com", "member123")
	rec := a.do(t, http.MethodPost, "/articles", token, map[string]string{
		"title":   "my article",
		"content": "hello",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Message string          `json:"message"`
		Article *domain.Article `json:"article"`
		Author  string          `json:"author"`
	}
	decode(t, rec, &res)
	if res.Author != "member1" {
		t.Fatalf("expected author member1, got %q", res.Author)
	}
	if res.Article.OwnerID == nil {
		t.Fatalf("expected the article to belong to its creator, got system-owned")
	}
	if res.Article.Status != domain.StatusPublished {
		t.Fatalf("expected new articles to be published, got %q", res.Article.Status)
	}

	// It shows up in the public listing immediately.
	var listing []*domain.Article
	decode(t, a.do(t, http.MethodGet, "/articles", "", nil), &listing)
	if len(listing) != 3 {
		t.Fatalf("expected 3 published articles after create, got %d", len(listing))
	}
}

func TestUpdateArticle_Authorization(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t)

	adminToken := a.login(t, "admin@test.com", "admin123")
	ownerToken := a.login(t, "member1@test.com", "member123")
	otherToken := registerMember(t, a, "member2", "member2@test.com")

	payload := map[string]string{"title": "renamed"}

	cases := []struct {
		name  string
		token string
		path  string
		want  int
	}{
		{"owner updates own", ownerToken, "/articles/2", http.StatusOK},
		{"admin updates foreign", adminToken, "/articles/2", http.StatusOK},
		{"admin updates system-owned", adminToken, "/articles/1", http.StatusOK},
		{"member updates foreign", otherToken, "/articles/2", http.StatusForbidden},
		{"member updates system-owned", ownerToken, "/articles/1", http.StatusForbidden},
		{"member updates missing", ownerToken, "/articles/999", http.StatusNotFound},
		{"anonymous updates existing", "", "/articles/2", http.StatusUnauthorized},
		{"anonymous updates missing", "", "/articles/999", http.StatusUnauthorized},
		{"anonymous updates garbage id", "", "/articles/abc", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := a.do(t, http.MethodPut, tc.path, tc.token, payload)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateArticle_PartialPatch(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t)

	token := a.login(t, "member1@test.com", "member123")

	before := a.do(t, http.MethodGet, "/articles/2", "", nil)
	var original domain.Article
	decode(t, before, &original)

	rec := a.do(t, http.MethodPut, "/articles/2", token, map[string]string{
		"title": "only the title changes",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Article *domain.Article `json:"article"`
	}
	decode(t, rec, &res)
	if res.Article.Title != "only the title changes" {
		t.Fatalf("title not updated: %q", res.Article.Title)
	}
	if res.Article.Content != original.Content {
		t.Fatalf("content changed by a title-only patch: %q", res.Article.Content)
	}
	if res.Article.Status != domain.StatusPublished {
		t.Fatalf("status changed by a title-only patch: %q", res.Article.Status)
	}

	// Unknown status values are ignored rather than rejected.
	rec = a.do(t, http.MethodPut, "/articles/2", token, map[string]string{
		"status": "archived",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &res)
	if res.Article.Status != domain.StatusPublished {
		t.Fatalf("unknown status applied: %q", res.Article.Status)
	}
}

func TestDeleteArticle(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t)

	adminToken := a.login(t, "admin@test.com", "admin123")
	ownerToken := a.login(t, "member1@test.com", "member123")
	otherToken := registerMember(t, a, "member2", "member2@test.com")

	if rec := a.do(t, http.MethodDelete, "/articles/999", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous delete of missing id: expected 401, got %d", rec.Code)
	}
	if rec := a.do(t, http.MethodDelete, "/articles/2", otherToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := a.do(t, http.MethodDelete, "/articles/1", ownerToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("member delete of system-owned: expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := a.do(t, http.MethodDelete, "/articles/2", ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res struct {
		DeletedArticleID int64 `json:"deletedArticleId"`
	}
	decode(t, rec, &res)
	if res.DeletedArticleID != 2 {
		t.Fatalf("expected deletedArticleId 2, got %d", res.DeletedArticleID)
	}
	if rec := a.do(t, http.MethodGet, "/articles/2", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("deleted article still readable: %d", rec.Code)
	}

	// The system-owned article yields to an admin.
	if rec := a.do(t, http.MethodDelete, "/articles/1", adminToken, nil); rec.Code != http.StatusOK {
		t.Fatalf("admin delete of system-owned: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminListing(t *testing.T) {
	a := newTestAPI(t)
	a.seed(t)

	adminToken := a.login(t, "admin@test.com", "admin123")
	memberToken := a.login(t, "member1@test.com", "member123")
	createDraft(t, a, memberToken)

	if rec := a.do(t, http.MethodGet, "/articles-admin", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}
	if rec := a.do(t, http.MethodGet, "/articles-admin", memberToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("member: expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := a.do(t, http.MethodGet, "/articles-admin", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Total    int               `json:"total"`
		Articles []*domain.Article `json:"articles"`
	}
	decode(t, rec, &res)
	if res.Total != 3 || len(res.Articles) != 3 {
		t.Fatalf("expected 3 articles drafts included, got total=%d len=%d", res.Total, len(res.Articles))
	}

	drafts := 0
	for _, art := range res.Articles {
		if art.Status == domain.StatusDraft {
			drafts++
		}
	}
	if drafts != 1 {
		t.Fatalf("expected the draft in the admin listing, found %d drafts", drafts)
	}
}
