package inkwell

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestApp(t *testing.T) (*App, *httptest.Server) {
	t.Helper()
	app := New(SiteConfig{
		Name:          "Test Blog",
		DatabasePath:  filepath.Join(t.TempDir(), "blog.db"),
		SessionSecret: "test-session-secret-0123456789ab",
	})
	if err := app.Setup(); err != nil {
		t.Fatalf("app setup failed: %v", err)
	}
	app.Echo.Logger.SetOutput(io.Discard)
	srv := httptest.NewServer(app.Echo)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})
	return app, srv
}

// newClient returns a cookie-keeping client that does not follow redirects,
// so tests can assert on the redirect responses themselves.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s failed: %v", rawURL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

// csrfToken primes the client's cookie jar with a page load and returns the
// CSRF token for form submissions.
func csrfToken(t *testing.T, client *http.Client, base string) string {
	t.Helper()
	resp, _ := get(t, client, base+"/login")
	if resp.StatusCode >= 400 {
		t.Fatalf("priming request returned %d", resp.StatusCode)
	}
	u, err := url.Parse(base)
	if err != nil {
		t.Fatalf("parse base url: %v", err)
	}
	for _, ck := range client.Jar.Cookies(u) {
		if ck.Name == "_csrf" {
			return ck.Value
		}
	}
	t.Fatal("no _csrf cookie set")
	return ""
}

func postForm(t *testing.T, client *http.Client, base, path string, form url.Values) *http.Response {
	t.Helper()
	form.Set("_csrf", csrfToken(t, client, base))
	resp, err := client.PostForm(base+path, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp
}

func register(t *testing.T, client *http.Client, base, name, email, password string) *http.Response {
	t.Helper()
	return postForm(t, client, base, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
}

func login(t *testing.T, client *http.Client, base, email, password string) *http.Response {
	t.Helper()
	return postForm(t, client, base, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}

func createPost(t *testing.T, client *http.Client, base, title string) *http.Response {
	t.Helper()
	return postForm(t, client, base, "/new-post", url.Values{
		"title":     {title},
		"subtitle":  {"A subtitle"},
		"image_url": {"https://example.com/cover.jpg"},
		"body":      {"The body of the post, long enough to pass validation."},
	})
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	_, srv := setupTestApp(t)
	client := newClient(t)

	resp := register(t, client, srv.URL, "Ada", "ada@example.com", "longenough")
	assertRedirect(t, resp, "/")

	_, body := get(t, client, srv.URL+"/")
	if !strings.Contains(body, "New Post") {
		t.Error("admin nav should show the New Post link")
	}
	if !strings.Contains(body, "Ada") {
		t.Error("nav should greet the signed-in user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, srv := setupTestApp(t)

	first := newClient(t)
	register(t, first, srv.URL, "Ada", "ada@example.com", "longenough")

	second := newClient(t)
	resp := register(t, second, srv.URL, "Imposter", "ada@example.com", "otherpassword")
	assertRedirect(t, resp, "/login")

	_, body := get(t, second, srv.URL+"/login")
	if !strings.Contains(body, "already signed up with that email") {
		t.Error("login page should carry the duplicate-email flash")
	}

	u, err := app.Store.GetUserByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if u.Name != "Ada" {
		t.Errorf("account overwritten: Name = %q", u.Name)
	}
}

func TestRegisterValidationRerenders(t *testing.T) {
	_, srv := setupTestApp(t)
	client := newClient(t)

	resp := postForm(t, client, srv.URL, "/register", url.Values{
		"name":     {""},
		"email":    {"not-an-email"},
		"password": {"short"},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestNonAdminCannotCreatePost(t *testing.T) {
	app, srv := setupTestApp(t)

	admin := newClient(t)
	register(t, admin, srv.URL, "Ada", "ada@example.com", "longenough")

	reader := newClient(t)
	register(t, reader, srv.URL, "Ben", "ben@example.com", "longenough")

	resp, _ := get(t, reader, srv.URL+"/new-post")
	assertRedirect(t, resp, "/")

	resp = createPost(t, reader, srv.URL, "Sneaky Post")
	assertRedirect(t, resp, "/")

	posts, err := app.Store.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("non-admin created a post: %+v", posts)
	}
}

func TestAnonymousAdminRoutesBounce(t *testing.T) {
	_, srv := setupTestApp(t)
	client := newClient(t)

	// Unauthenticated requests hit the login guard first.
	for _, path := range []string{"/new-post", "/edit-post/1", "/delete/1", "/images"} {
		resp, _ := get(t, client, srv.URL+path)
		assertRedirect(t, resp, "/login")
	}
}

func TestAdminPostLifecycle(t *testing.T) {
	app, srv := setupTestApp(t)
	client := newClient(t)
	register(t, client, srv.URL, "Ada", "ada@example.com", "longenough")

	resp := createPost(t, client, srv.URL, "First Post")
	assertRedirect(t, resp, "/post/1")

	_, body := get(t, client, srv.URL+"/")
	if !strings.Contains(body, "First Post") {
		t.Error("home page should list the new post")
	}

	resp, body = get(t, client, srv.URL+"/post/1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("post page status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "First Post") || !strings.Contains(body, "Posted by Ada") {
		t.Error("post page missing title or byline")
	}

	// Duplicate title is rejected with a re-rendered form.
	resp = createPost(t, client, srv.URL, "First Post")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("duplicate title status = %d, want 422", resp.StatusCode)
	}

	resp = postForm(t, client, srv.URL, "/edit-post/1", url.Values{
		"title":     {"First Post, Revised"},
		"subtitle":  {"Updated subtitle"},
		"image_url": {"https://example.com/cover.jpg"},
		"body":      {"The revised body of the post, still long enough."},
	})
	assertRedirect(t, resp, "/post/1")

	_, body = get(t, client, srv.URL+"/post/1")
	if !strings.Contains(body, "First Post, Revised") {
		t.Error("edited title not shown")
	}

	resp, _ = get(t, client, srv.URL+"/delete/1")
	assertRedirect(t, resp, "/")
	resp, _ = get(t, client, srv.URL+"/post/1")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted post status = %d, want 404", resp.StatusCode)
	}

	posts, err := app.Store.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("post count after delete = %d, want 0", len(posts))
	}
}

func TestEditMissingPost(t *testing.T) {
	_, srv := setupTestApp(t)
	client := newClient(t)
	register(t, client, srv.URL, "Ada", "ada@example.com", "longenough")

	resp, _ := get(t, client, srv.URL+"/edit-post/99")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPostNotFound(t *testing.T) {
	_, srv := setupTestApp(t)
	client := newClient(t)

	resp, _ := get(t, client, srv.URL+"/post/999")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("numeric miss status = %d, want 404", resp.StatusCode)
	}
	resp, _ = get(t, client, srv.URL+"/post/not-a-number")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("malformed id status = %d, want 404", resp.StatusCode)
	}
}

func TestAnonymousCanReadButNotComment(t *testing.T) {
	app, srv := setupTestApp(t)

	admin := newClient(t)
	register(t, admin, srv.URL, "Ada", "ada@example.com", "longenough")
	createPost(t, admin, srv.URL, "Readable Post")

	anon := newClient(t)
	resp, body := get(t, anon, srv.URL+"/post/1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("post page status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Readable Post") {
		t.Error("anonymous reader should see the post")
	}
	if strings.Contains(body, `name="text"`) {
		t.Error("anonymous reader should not see the comment form")
	}
	if !strings.Contains(body, "to leave a comment") {
		t.Error("anonymous reader should see the login prompt")
	}

	resp = postForm(t, anon, srv.URL, "/post/1", url.Values{"text": {"drive-by comment"}})
	assertRedirect(t, resp, "/login")

	comments, err := app.Store.ListComments(1)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("anonymous comment was stored: %+v", comments)
	}
}

func TestCommentLifecycle(t *testing.T) {
	_, srv := setupTestApp(t)

	admin := newClient(t)
	register(t, admin, srv.URL, "Ada", "ada@example.com", "longenough")
	createPost(t, admin, srv.URL, "Discussion Post")

	reader := newClient(t)
	register(t, reader, srv.URL, "Ben", "ben@example.com", "longenough")

	resp := postForm(t, reader, srv.URL, "/post/1", url.Values{"text": {"great write-up"}})
	assertRedirect(t, resp, "/post/1")

	_, body := get(t, reader, srv.URL+"/post/1")
	if !strings.Contains(body, "great write-up") || !strings.Contains(body, "Ben") {
		t.Error("comment not shown on post page")
	}

	// Too-short comment re-renders the page with the error.
	resp = postForm(t, reader, srv.URL, "/post/1", url.Values{"text": {"x"}})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("short comment status = %d, want 422", resp.StatusCode)
	}

	// Only the admin may delete comments.
	resp, _ = get(t, reader, srv.URL+"/delete/1/1")
	assertRedirect(t, resp, "/")
	_, body = get(t, reader, srv.URL+"/post/1")
	if !strings.Contains(body, "great write-up") {
		t.Error("non-admin delete should not remove the comment")
	}

	resp, _ = get(t, admin, srv.URL+"/delete/1/1")
	assertRedirect(t, resp, "/post/1")
	_, body = get(t, admin, srv.URL+"/post/1")
	if strings.Contains(body, "great write-up") {
		t.Error("comment still shown after delete")
	}
}

func TestLoginFailures(t *testing.T) {
	_, srv := setupTestApp(t)

	client := newClient(t)
	register(t, client, srv.URL, "Ada", "ada@example.com", "longenough")
	get(t, client, srv.URL+"/logout")

	resp := login(t, client, srv.URL, "nobody@example.com", "whatever1")
	assertRedirect(t, resp, "/login")
	_, body := get(t, client, srv.URL+"/login")
	if !strings.Contains(body, "User account was not found") {
		t.Error("missing unknown-account flash")
	}

	resp = login(t, client, srv.URL, "ada@example.com", "wrongpassword")
	assertRedirect(t, resp, "/login")
	_, body = get(t, client, srv.URL+"/login")
	if !strings.Contains(body, "Password incorrect") {
		t.Error("missing wrong-password flash")
	}

	resp = login(t, client, srv.URL, "ada@example.com", "longenough")
	assertRedirect(t, resp, "/")
}

func TestContactRequiresLogin(t *testing.T) {
	_, srv := setupTestApp(t)

	anon := newClient(t)
	resp, _ := get(t, anon, srv.URL+"/contact")
	assertRedirect(t, resp, "/login")
	_, body := get(t, anon, srv.URL+"/login")
	if !strings.Contains(body, "Please log in to access this page") {
		t.Error("missing login-required flash")
	}

	client := newClient(t)
	register(t, client, srv.URL, "Ada", "ada@example.com", "longenough")
	resp, body = get(t, client, srv.URL+"/contact")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("contact status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Ada") {
		t.Error("contact page should greet the signed-in user")
	}
}

func TestLogout(t *testing.T) {
	_, srv := setupTestApp(t)
	client := newClient(t)
	register(t, client, srv.URL, "Ada", "ada@example.com", "longenough")

	resp, _ := get(t, client, srv.URL+"/logout")
	assertRedirect(t, resp, "/")

	_, body := get(t, client, srv.URL+"/")
	if !strings.Contains(body, "Log In") {
		t.Error("nav should show the login link after logout")
	}
	if strings.Contains(body, "New Post") {
		t.Error("admin nav should be gone after logout")
	}
}

func TestCSRFRequired(t *testing.T) {
	_, srv := setupTestApp(t)
	client := newClient(t)

	// No priming GET, no token: the submission must be rejected.
	resp, err := client.PostForm(srv.URL+"/register", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"password": {"longenough"},
	})
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestFeedSitemapRobots(t *testing.T) {
	_, srv := setupTestApp(t)
	client := newClient(t)
	register(t, client, srv.URL, "Ada", "ada@example.com", "longenough")
	createPost(t, client, srv.URL, "Syndicated Post")

	resp, body := get(t, client, srv.URL+"/feed.xml")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("feed status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "<rss") || !strings.Contains(body, "Syndicated Post") {
		t.Error("feed missing post entry")
	}

	resp, body = get(t, client, srv.URL+"/sitemap.xml")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sitemap status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "/post/1") {
		t.Error("sitemap missing post URL")
	}

	resp, body = get(t, client, srv.URL+"/robots.txt")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("robots status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Sitemap:") {
		t.Error("robots.txt missing sitemap line")
	}
}
