package inkwell

import (
	"strings"
	"testing"

	"inkwell/views"
)

func TestValidateRegisterForm(t *testing.T) {
	tests := []struct {
		name      string
		form      views.RegisterForm
		ok        bool
		errFields []string
	}{
		{
			name: "valid",
			form: views.RegisterForm{Name: "Ada", Email: "ada@example.com", Password: "longenough"},
			ok:   true,
		},
		{
			name:      "all empty",
			form:      views.RegisterForm{},
			errFields: []string{"name", "email", "password"},
		},
		{
			name:      "bad email",
			form:      views.RegisterForm{Name: "Ada", Email: "not-an-email", Password: "longenough"},
			errFields: []string{"email"},
		},
		{
			name:      "display name email rejected",
			form:      views.RegisterForm{Name: "Ada", Email: "Ada <ada@example.com>", Password: "longenough"},
			errFields: []string{"email"},
		},
		{
			name:      "short password",
			form:      views.RegisterForm{Name: "Ada", Email: "ada@example.com", Password: "short"},
			errFields: []string{"password"},
		},
		{
			name:      "name too long",
			form:      views.RegisterForm{Name: strings.Repeat("a", 251), Email: "ada@example.com", Password: "longenough"},
			errFields: []string{"name"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.form.Errors = map[string]string{}
			got := validateRegisterForm(&tt.form)
			if got != tt.ok {
				t.Errorf("validateRegisterForm = %v, want %v (errors: %v)", got, tt.ok, tt.form.Errors)
			}
			for _, field := range tt.errFields {
				if tt.form.Errors[field] == "" {
					t.Errorf("expected error on field %q, got %v", field, tt.form.Errors)
				}
			}
		})
	}
}

func TestValidateLoginForm(t *testing.T) {
	form := views.LoginForm{Email: "ada@example.com", Errors: map[string]string{}}
	if !validateLoginForm(&form, "whatever") {
		t.Errorf("valid login form rejected: %v", form.Errors)
	}

	form = views.LoginForm{Email: "", Errors: map[string]string{}}
	if validateLoginForm(&form, "") {
		t.Error("empty login form accepted")
	}
	if form.Errors["email"] == "" || form.Errors["password"] == "" {
		t.Errorf("expected email and password errors, got %v", form.Errors)
	}
}

func TestValidatePostForm(t *testing.T) {
	valid := views.PostForm{
		Title:    "A Title",
		Subtitle: "A subtitle",
		ImageURL: "https://example.com/x.jpg",
		Body:     "long enough body",
		Errors:   map[string]string{},
	}
	if !validatePostForm(&valid) {
		t.Errorf("valid post form rejected: %v", valid.Errors)
	}

	short := valid
	short.Errors = map[string]string{}
	short.Body = "tiny"
	if validatePostForm(&short) {
		t.Error("short body accepted")
	}
	if short.Errors["body"] == "" {
		t.Errorf("expected body error, got %v", short.Errors)
	}

	empty := views.PostForm{Errors: map[string]string{}}
	if validatePostForm(&empty) {
		t.Error("empty post form accepted")
	}
	for _, field := range []string{"title", "subtitle", "image_url", "body"} {
		if empty.Errors[field] == "" {
			t.Errorf("expected error on field %q, got %v", field, empty.Errors)
		}
	}
}

func TestValidateCommentForm(t *testing.T) {
	form := views.CommentForm{Text: "nice post", Errors: map[string]string{}}
	if !validateCommentForm(&form) {
		t.Errorf("valid comment rejected: %v", form.Errors)
	}

	form = views.CommentForm{Text: "", Errors: map[string]string{}}
	if validateCommentForm(&form) {
		t.Error("empty comment accepted")
	}

	form = views.CommentForm{Text: "x", Errors: map[string]string{}}
	if validateCommentForm(&form) {
		t.Error("one character comment accepted")
	}
}

func TestValidEmail(t *testing.T) {
	good := []string{"a@b.co", "first.last@example.com", "x+tag@sub.example.org"}
	for _, s := range good {
		if !validEmail(s) {
			t.Errorf("validEmail(%q) = false, want true", s)
		}
	}
	bad := []string{"", "plain", "@example.com", "a@", "Name <a@b.co>", "two@@example.com"}
	for _, s := range bad {
		if validEmail(s) {
			t.Errorf("validEmail(%q) = true, want false", s)
		}
	}
}
