package inkwell

// User is a registered account. The first account ever created carries the
// admin flag and is the only identity allowed to manage posts and comments.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

// Post is the core content type stored in SQLite and rendered by templates.
// Date is a human-readable string stamped once at creation time.
type Post struct {
	ID         int64
	Title      string
	Subtitle   string
	Date       string
	Body       string
	ImageURL   string
	AuthorID   int64
	AuthorName string
}

// Comment belongs to exactly one post and one author. Comments are listed in
// insertion order.
type Comment struct {
	ID          int64
	PostID      int64
	AuthorID    int64
	AuthorName  string
	AuthorEmail string
	Text        string
}

// Image holds metadata for an uploaded post image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
