package inkwell

import (
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"inkwell/views"
)

// Validation limits for submitted forms.
const (
	minPasswordLen = 8
	minBodyLen     = 10
	minCommentLen  = 2
	maxFieldLen    = 250
)

func parseRegisterForm(c echo.Context) views.RegisterForm {
	return views.RegisterForm{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.ToLower(strings.TrimSpace(c.FormValue("email"))),
		Password: c.FormValue("password"),
		Errors:   map[string]string{},
	}
}

func validateRegisterForm(f *views.RegisterForm) bool {
	if f.Name == "" {
		f.Errors["name"] = "Name is required"
	} else if len(f.Name) > maxFieldLen {
		f.Errors["name"] = "Name is too long"
	}
	validateEmailField(f.Errors, f.Email)
	if f.Password == "" {
		f.Errors["password"] = "Password is required"
	} else if len(f.Password) < minPasswordLen {
		f.Errors["password"] = "Password must be at least 8 characters"
	}
	return len(f.Errors) == 0
}

func parseLoginForm(c echo.Context) (views.LoginForm, string) {
	form := views.LoginForm{
		Email:  strings.ToLower(strings.TrimSpace(c.FormValue("email"))),
		Errors: map[string]string{},
	}
	return form, c.FormValue("password")
}

func validateLoginForm(f *views.LoginForm, password string) bool {
	validateEmailField(f.Errors, f.Email)
	if password == "" {
		f.Errors["password"] = "Password is required"
	}
	return len(f.Errors) == 0
}

func parsePostForm(c echo.Context) views.PostForm {
	return views.PostForm{
		Title:    strings.TrimSpace(c.FormValue("title")),
		Subtitle: strings.TrimSpace(c.FormValue("subtitle")),
		ImageURL: strings.TrimSpace(c.FormValue("image_url")),
		Body:     strings.TrimSpace(c.FormValue("body")),
		Errors:   map[string]string{},
	}
}

func validatePostForm(f *views.PostForm) bool {
	if f.Title == "" {
		f.Errors["title"] = "Title is required"
	} else if len(f.Title) > maxFieldLen {
		f.Errors["title"] = "Title is too long"
	}
	if f.Subtitle == "" {
		f.Errors["subtitle"] = "Subtitle is required"
	} else if len(f.Subtitle) > maxFieldLen {
		f.Errors["subtitle"] = "Subtitle is too long"
	}
	if f.ImageURL == "" {
		f.Errors["image_url"] = "Image URL is required"
	} else if len(f.ImageURL) > maxFieldLen {
		f.Errors["image_url"] = "Image URL is too long"
	}
	if f.Body == "" {
		f.Errors["body"] = "Body is required"
	} else if len(f.Body) < minBodyLen {
		f.Errors["body"] = "Body must be at least 10 characters"
	}
	return len(f.Errors) == 0
}

func parseCommentForm(c echo.Context) views.CommentForm {
	return views.CommentForm{
		Text:   strings.TrimSpace(c.FormValue("text")),
		Errors: map[string]string{},
	}
}

func validateCommentForm(f *views.CommentForm) bool {
	if f.Text == "" {
		f.Errors["text"] = "Comment text is required"
	} else if len(f.Text) < minCommentLen {
		f.Errors["text"] = "Comment is too short"
	}
	return len(f.Errors) == 0
}

func validateEmailField(errors map[string]string, email string) {
	if email == "" {
		errors["email"] = "Email is required"
		return
	}
	if len(email) > maxFieldLen || !validEmail(email) {
		errors["email"] = "That does not look like an email address"
	}
}

// validEmail accepts plain addr-spec addresses ("a@b.c"), not the
// display-name forms RFC 5322 also allows.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(s, "@")
}
