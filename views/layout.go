package views

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// layout wraps a page body in the shared HTML frame: head, nav, flash
// messages, and footer. Pages are built the same way as the markdown
// renderer: a buffer, escaped writes, one pass.
func layout(cfg SiteConfig, pg Page, title string, body func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		buf.WriteString("<meta charset=\"utf-8\"/>")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		buf.WriteString("<title>")
		if title != "" {
			buf.WriteString(esc(title))
			buf.WriteString(" · ")
		}
		buf.WriteString(esc(cfg.Name))
		buf.WriteString("</title>")
		if cfg.Description != "" {
			buf.WriteString("<meta name=\"description\" content=\"" + esc(cfg.Description) + "\"/>")
		}
		buf.WriteString("<link rel=\"stylesheet\" href=\"/public/style.css\"/>")
		buf.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" title=\"" + esc(cfg.Name) + "\" href=\"/feed.xml\"/>")
		buf.WriteString("<script type=\"application/ld+json\">" + WebsiteJsonLD(cfg) + "</script>")
		buf.WriteString("</head><body><div class=\"container\">")
		writeNav(&buf, cfg, pg)
		writeFlashes(&buf, pg)
		buf.WriteString("<main>")
		body(&buf)
		buf.WriteString("</main>")
		writeFooter(&buf, cfg)
		buf.WriteString("</div></body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeNav(buf *bytes.Buffer, cfg SiteConfig, pg Page) {
	buf.WriteString("<nav class=\"nav\"><a class=\"brand\" href=\"/\">" + esc(cfg.Name) + "</a>")
	buf.WriteString("<div class=\"nav-links\">")
	buf.WriteString("<a href=\"/\">Home</a>")
	buf.WriteString("<a href=\"/about\">About</a>")
	buf.WriteString("<a href=\"/contact\">Contact</a>")
	if pg.IsAdmin {
		buf.WriteString("<a href=\"/new-post\">New Post</a>")
		buf.WriteString("<a href=\"/images\">Images</a>")
	}
	if pg.LoggedIn {
		buf.WriteString("<span class=\"nav-user\">" + esc(pg.UserName) + "</span>")
		buf.WriteString("<a href=\"/logout\">Log Out</a>")
	} else {
		buf.WriteString("<a href=\"/login\">Log In</a>")
		buf.WriteString("<a href=\"/register\">Register</a>")
	}
	buf.WriteString("</div></nav>")
}

func writeFlashes(buf *bytes.Buffer, pg Page) {
	if len(pg.Flashes) == 0 {
		return
	}
	buf.WriteString("<div class=\"flashes\">")
	for _, msg := range pg.Flashes {
		buf.WriteString("<p class=\"flash\">" + esc(msg) + "</p>")
	}
	buf.WriteString("</div>")
}

func writeFooter(buf *bytes.Buffer, cfg SiteConfig) {
	buf.WriteString("<footer class=\"footer\"><p>")
	buf.WriteString(esc(cfg.Name))
	if cfg.Author != "" {
		buf.WriteString(" · " + esc(cfg.Author))
	}
	buf.WriteString("</p></footer>")
}

// writeCSRF emits the hidden token field every POST form must carry.
func writeCSRF(buf *bytes.Buffer, pg Page) {
	buf.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(pg.CSRF) + "\"/>")
}

// writeFieldError emits the inline error for a field, if any.
func writeFieldError(buf *bytes.Buffer, errors map[string]string, field string) {
	if msg, ok := errors[field]; ok {
		buf.WriteString("<p class=\"field-error\">" + esc(msg) + "</p>")
	}
}

// NotFound renders the styled 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return layout(cfg, Page{}, "Not Found", func(buf *bytes.Buffer) {
		buf.WriteString("<section class=\"status-page\"><h1>404</h1><p>That page does not exist.</p>")
		buf.WriteString("<p><a href=\"/\">Back to the blog</a></p></section>")
	})
}

// ServerError renders the styled 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return layout(cfg, Page{}, "Something went wrong", func(buf *bytes.Buffer) {
		buf.WriteString("<section class=\"status-page\"><h1>500</h1><p>Something went wrong on our side. Please try again.</p>")
		buf.WriteString("<p><a href=\"/\">Back to the blog</a></p></section>")
	})
}

func fprintf(buf *bytes.Buffer, format string, args ...any) {
	fmt.Fprintf(buf, format, args...)
}
