// Package inkwell is a small server-rendered blog built with Go, Echo, and
// templ-style components. Visitors read posts and comments, registered
// readers comment, and the first registered account administers posts,
// comments, and uploaded images.
package inkwell

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
)

// App is the central inkwell application. It wires together the store,
// cache, handlers, middleware, and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new inkwell App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup initializes the database, cache, middleware, and routes. It is
// split from Start so tests can run the app against an httptest server.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkwell: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("inkwell: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	return nil
}

// Start runs Setup and serves until the listener fails or is closed.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded framework assets (stylesheet) are served under /public/ and
	// fall through to the user's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/post/:id", a.handlePost)
	e.POST("/post/:id", a.handleAddComment)
	e.GET("/about", a.handleAbout)
	e.GET("/contact", a.handleContact, a.requireLogin)

	// Accounts
	e.GET("/register", a.handleRegister)
	e.POST("/register", a.handleRegisterSubmit)
	e.GET("/login", a.handleLogin)
	e.POST("/login", a.handleLoginSubmit)
	e.GET("/logout", a.handleLogout)

	// Admin routes, gated on the admin account. Everyone else bounces home.
	admin := []echo.MiddlewareFunc{a.requireLogin, a.requireAdmin}
	e.GET("/new-post", a.handleNewPost, admin...)
	e.POST("/new-post", a.handleNewPostSubmit, admin...)
	e.GET("/edit-post/:id", a.handleEditPost, admin...)
	e.POST("/edit-post/:id", a.handleEditPostSubmit, admin...)
	e.GET("/delete/:id", a.handleDeletePost, admin...)
	e.GET("/delete/:id/:comment_id", a.handleDeleteComment, admin...)
	e.GET("/images", a.handleImageList, admin...)
	e.POST("/images/upload", a.handleImageUpload, admin...)
	e.POST("/images/:filename/delete", a.handleImageDelete, admin...)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkwell: required environment variable %s is not set", key)
	}
	return v
}
