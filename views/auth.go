package views

import (
	"bytes"

	"github.com/a-h/templ"
)

// Register renders the registration form, re-populating submitted values and
// inline errors on validation failure.
func Register(cfg SiteConfig, pg Page, form RegisterForm) templ.Component {
	return layout(cfg, pg, "Register", func(buf *bytes.Buffer) {
		buf.WriteString("<section class=\"auth-form\"><h1>Register</h1>")
		buf.WriteString("<form method=\"post\" action=\"/register\">")
		writeCSRF(buf, pg)

		buf.WriteString("<label for=\"name\">Name</label>")
		buf.WriteString("<input id=\"name\" name=\"name\" type=\"text\" value=\"" + esc(form.Name) + "\"/>")
		writeFieldError(buf, form.Errors, "name")

		buf.WriteString("<label for=\"email\">Email</label>")
		buf.WriteString("<input id=\"email\" name=\"email\" type=\"email\" value=\"" + esc(form.Email) + "\"/>")
		writeFieldError(buf, form.Errors, "email")

		buf.WriteString("<label for=\"password\">Password</label>")
		buf.WriteString("<input id=\"password\" name=\"password\" type=\"password\"/>")
		writeFieldError(buf, form.Errors, "password")

		buf.WriteString("<button type=\"submit\">Sign Me Up</button>")
		buf.WriteString("</form>")
		buf.WriteString("<p>Already have an account? <a href=\"/login\">Log in</a>.</p>")
		buf.WriteString("</section>")
	})
}

// Login renders the login form.
func Login(cfg SiteConfig, pg Page, form LoginForm) templ.Component {
	return layout(cfg, pg, "Log In", func(buf *bytes.Buffer) {
		buf.WriteString("<section class=\"auth-form\"><h1>Log In</h1>")
		buf.WriteString("<form method=\"post\" action=\"/login\">")
		writeCSRF(buf, pg)

		buf.WriteString("<label for=\"email\">Email</label>")
		buf.WriteString("<input id=\"email\" name=\"email\" type=\"email\" value=\"" + esc(form.Email) + "\"/>")
		writeFieldError(buf, form.Errors, "email")

		buf.WriteString("<label for=\"password\">Password</label>")
		buf.WriteString("<input id=\"password\" name=\"password\" type=\"password\"/>")
		writeFieldError(buf, form.Errors, "password")

		buf.WriteString("<button type=\"submit\">Let Me In</button>")
		buf.WriteString("</form>")
		buf.WriteString("<p>New here? <a href=\"/register\">Register</a>.</p>")
		buf.WriteString("</section>")
	})
}
