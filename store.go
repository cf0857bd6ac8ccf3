package inkwell

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = sql.ErrNoRows

// ErrDuplicateEmail is returned when registering an email that is already on file.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrDuplicateTitle is returned when saving a post whose title is already taken.
var ErrDuplicateTitle = errors.New("title already taken")

// Store wraps a SQLite database and provides CRUD operations for users,
// posts, and comments.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and turn
	// on foreign key enforcement so comment author/post references must
	// resolve to existing rows.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_admin INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL UNIQUE,
    subtitle TEXT NOT NULL,
    date TEXT NOT NULL,
    body TEXT NOT NULL,
    image_url TEXT NOT NULL,
    author_id INTEGER NOT NULL REFERENCES users(id)
);
CREATE TABLE IF NOT EXISTS comments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    author_id INTEGER NOT NULL REFERENCES users(id),
    post_id INTEGER NOT NULL REFERENCES posts(id)
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on the
// given column (e.g. "users.email"). The sqlite driver only exposes this
// through the error text.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}

// --- Users ---

// CreateUser inserts a new account. The very first account is marked admin;
// the count check and insert run in one transaction so two concurrent first
// registrations cannot both become admin. Returns ErrDuplicateEmail if the
// email is already registered.
func (s *Store) CreateUser(name, email, passwordHash string) (User, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return User{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO users (name, email, password_hash, is_admin)
		VALUES (?, ?, ?, (SELECT CASE WHEN COUNT(*) = 0 THEN 1 ELSE 0 END FROM users))`,
		name, email, passwordHash)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return User{}, ErrDuplicateEmail
		}
		return User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	var isAdmin int
	if err := tx.QueryRow(`SELECT is_admin FROM users WHERE id = ?`, id).Scan(&isAdmin); err != nil {
		return User{}, err
	}
	if err := tx.Commit(); err != nil {
		return User{}, err
	}
	return User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, IsAdmin: isAdmin == 1}, nil
}

// GetUserByEmail returns the account registered under email.
func (s *Store) GetUserByEmail(email string) (User, error) {
	var u User
	var isAdmin int
	err := s.db.QueryRow(`SELECT id, name, email, password_hash, is_admin FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &isAdmin)
	if err != nil {
		return User{}, err
	}
	u.IsAdmin = isAdmin == 1
	return u, nil
}

// GetUserByID returns the account with the given id.
func (s *Store) GetUserByID(id int64) (User, error) {
	var u User
	var isAdmin int
	err := s.db.QueryRow(`SELECT id, name, email, password_hash, is_admin FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &isAdmin)
	if err != nil {
		return User{}, err
	}
	u.IsAdmin = isAdmin == 1
	return u, nil
}

// --- Posts ---

const postColumns = `p.id, p.title, p.subtitle, p.date, p.body, p.image_url, p.author_id, u.name`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImageURL, &p.AuthorID, &p.AuthorName)
	return p, err
}

// ListPosts returns all posts, newest first, with author names resolved.
func (s *Store) ListPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.id = p.author_id ORDER BY p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single post by id.
func (s *Store) GetPost(id int64) (Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = ?`, id))
}

// CreatePost inserts a new post and returns its id. Returns ErrDuplicateTitle
// if the title is already taken.
func (s *Store) CreatePost(p Post) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO posts (title, subtitle, date, body, image_url, author_id) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Subtitle, p.Date, p.Body, p.ImageURL, p.AuthorID)
	if err != nil {
		if isUniqueViolation(err, "posts.title") {
			return 0, ErrDuplicateTitle
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePost replaces the mutable fields of a post unconditionally (last
// writer wins). The creation date and author are not touched. Returns
// ErrNotFound if the post does not exist.
func (s *Store) UpdatePost(id int64, title, subtitle, imageURL, body string) error {
	res, err := s.db.Exec(`UPDATE posts SET title = ?, subtitle = ?, image_url = ?, body = ? WHERE id = ?`,
		title, subtitle, imageURL, body, id)
	if err != nil {
		if isUniqueViolation(err, "posts.title") {
			return ErrDuplicateTitle
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes a post and all of its comments in one transaction.
// Returns ErrNotFound if the post does not exist; in that case no comments
// are removed either.
func (s *Store) DeletePost(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// --- Comments ---

// ListComments returns the comments of a single post in insertion order,
// with author names and emails resolved.
func (s *Store) ListComments(postID int64) ([]Comment, error) {
	rows, err := s.db.Query(`SELECT c.id, c.post_id, c.author_id, u.name, u.email, c.text
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ? ORDER BY c.id ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.AuthorEmail, &c.Text); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateComment inserts a comment on the given post. A reference to a missing
// post or author surfaces as ErrNotFound via foreign key enforcement.
func (s *Store) CreateComment(postID, authorID int64, text string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO comments (text, author_id, post_id) VALUES (?, ?, ?)`, text, authorID, postID)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("create comment: %w", err)
	}
	return res.LastInsertId()
}

// DeleteComment removes a comment, scoped to its post so a stale comment id
// from another post cannot be deleted through the wrong URL.
func (s *Store) DeleteComment(postID, commentID int64) error {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = ? AND post_id = ?`, commentID, postID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Images ---

// ListImages returns uploaded image metadata, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SaveImage upserts image metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
