package views

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "Blog")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// Page carries per-request state into every template: who is signed in,
// pending flash messages, and the CSRF token for forms.
type Page struct {
	LoggedIn bool
	UserID   int64
	UserName string
	IsAdmin  bool
	Flashes  []string
	CSRF     string
}

// Post is the view model for a blog post. BodyHTML is pre-rendered markdown
// and inserted without further escaping.
type Post struct {
	ID         int64
	Title      string
	Subtitle   string
	Date       string
	BodyHTML   string
	ImageURL   string
	AuthorName string
}

// Comment is the view model for a single comment. TextHTML is pre-rendered
// markdown and inserted without further escaping.
type Comment struct {
	ID         int64
	AuthorName string
	AvatarURL  string
	TextHTML   string
}

// Image is the view model for an uploaded post image.
type Image struct {
	Filename     string
	OriginalName string
	URL          string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// RegisterForm carries submitted registration values and field errors back
// into the template on validation failure.
type RegisterForm struct {
	Name     string
	Email    string
	Password string
	Errors   map[string]string
}

// LoginForm carries submitted login values and field errors.
type LoginForm struct {
	Email  string
	Errors map[string]string
}

// PostForm carries submitted post editor values and field errors.
type PostForm struct {
	Title    string
	Subtitle string
	ImageURL string
	Body     string
	Errors   map[string]string
}

// CommentForm carries a submitted comment and field errors.
type CommentForm struct {
	Text   string
	Errors map[string]string
}
