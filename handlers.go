package inkwell

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"inkwell/markdown"
	"inkwell/views"
)

// page assembles the per-request view state: session identity, drained
// flash messages, and the CSRF token.
func (a *App) page(c echo.Context) views.Page {
	pg := views.Page{
		CSRF:    CsrfToken(c),
		Flashes: takeFlashes(c),
	}
	if user := CurrentUser(c); user != nil {
		pg.LoggedIn = true
		pg.UserID = user.ID
		pg.UserName = user.Name
		pg.IsAdmin = user.IsAdmin
	}
	return pg
}

func viewPost(p Post) views.Post {
	return views.Post{
		ID:         p.ID,
		Title:      p.Title,
		Subtitle:   p.Subtitle,
		Date:       p.Date,
		BodyHTML:   markdown.Render(p.Body),
		ImageURL:   p.ImageURL,
		AuthorName: p.AuthorName,
	}
}

func viewComments(comments []Comment) []views.Comment {
	out := make([]views.Comment, 0, len(comments))
	for _, cm := range comments {
		out = append(out, views.Comment{
			ID:         cm.ID,
			AuthorName: cm.AuthorName,
			AvatarURL:  views.AvatarURL(cm.AuthorEmail),
			TextHTML:   markdown.Render(cm.Text),
		})
	}
	return out
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	viewPosts := make([]views.Post, 0, len(posts))
	for _, p := range posts {
		viewPosts = append(viewPosts, viewPost(p))
	}
	return Render(c, views.Home(a.viewConfig(), a.page(c), viewPosts))
}

// handlePost serves a single post with its comments. Only the comments of
// the requested post are listed, in insertion order, for every viewer.
func (a *App) handlePost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
	}
	post, err := a.Cache.GetPost(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		}
		return err
	}
	return a.renderPostPage(c, post, views.CommentForm{}, http.StatusOK)
}

// handleAddComment accepts a comment submission on a post. Anonymous
// submissions are bounced to the login page; the draft text is not kept.
func (a *App) handleAddComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
	}
	user := CurrentUser(c)
	if user == nil {
		_ = addFlash(c, "Please log in to comment")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	post, err := a.Cache.GetPost(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		}
		return err
	}
	form := parseCommentForm(c)
	if !validateCommentForm(&form) {
		return a.renderPostPage(c, post, form, http.StatusUnprocessableEntity)
	}
	if _, err := a.Store.CreateComment(post.ID, user.ID, form.Text); err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", post.ID))
}

func (a *App) renderPostPage(c echo.Context, post Post, form views.CommentForm, code int) error {
	comments, err := a.Store.ListComments(post.ID)
	if err != nil {
		return err
	}
	return RenderStatus(c, code, views.PostPage(a.viewConfig(), a.page(c), viewPost(post), viewComments(comments), form))
}

// --- Registration & login ---

func (a *App) handleRegister(c echo.Context) error {
	if CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return Render(c, views.Register(a.viewConfig(), a.page(c), views.RegisterForm{}))
}

func (a *App) handleRegisterSubmit(c echo.Context) error {
	form := parseRegisterForm(c)
	if !validateRegisterForm(&form) {
		return RenderStatus(c, http.StatusUnprocessableEntity, views.Register(a.viewConfig(), a.page(c), form))
	}
	hash, err := HashPassword(form.Password)
	if err != nil {
		return err
	}
	user, err := a.Store.CreateUser(form.Name, form.Email, hash)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			_ = addFlash(c, "You've already signed up with that email, log in instead!")
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}
	if err := signIn(c, user.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleLogin(c echo.Context) error {
	if CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return Render(c, views.Login(a.viewConfig(), a.page(c), views.LoginForm{}))
}

// handleLoginSubmit authenticates a user. Unknown account and wrong password
// fail with distinct flash messages, and both count against the per-IP
// limiter.
func (a *App) handleLoginSubmit(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	form, password := parseLoginForm(c)
	if !validateLoginForm(&form, password) {
		return RenderStatus(c, http.StatusUnprocessableEntity, views.Login(a.viewConfig(), a.page(c), form))
	}
	user, err := a.Store.GetUserByEmail(form.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.loginLimiter.Record(c.RealIP())
			_ = addFlash(c, "User account was not found, please try again")
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}
	if !VerifyPassword(user.PasswordHash, password) {
		a.loginLimiter.Record(c.RealIP())
		_ = addFlash(c, "Password incorrect, please try again")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if err := signIn(c, user.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleLogout(c echo.Context) error {
	if err := signOut(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// --- Static pages ---

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, views.About(a.viewConfig(), a.page(c)))
}

func (a *App) handleContact(c echo.Context) error {
	return Render(c, views.Contact(a.viewConfig(), a.page(c)))
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.viewConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func (a *App) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}
