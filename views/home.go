package views

import (
	"bytes"

	"github.com/a-h/templ"
)

// Home renders the post listing page.
func Home(cfg SiteConfig, pg Page, posts []Post) templ.Component {
	return layout(cfg, pg, "", func(buf *bytes.Buffer) {
		buf.WriteString("<header class=\"site-header\"><h1>" + esc(cfg.Name) + "</h1>")
		if cfg.Description != "" {
			buf.WriteString("<p class=\"site-subtitle\">" + esc(cfg.Description) + "</p>")
		}
		buf.WriteString("</header>")

		if len(posts) == 0 {
			buf.WriteString("<p class=\"empty\">Nothing here yet.</p>")
			return
		}

		buf.WriteString("<section class=\"post-list\">")
		for _, p := range posts {
			buf.WriteString("<article class=\"post-card\">")
			fprintf(buf, "<h2><a href=\"/post/%d\">%s</a></h2>", p.ID, esc(p.Title))
			buf.WriteString("<p class=\"post-subtitle\">" + esc(p.Subtitle) + "</p>")
			buf.WriteString("<p class=\"byline\">Posted by " + esc(p.AuthorName) + " on " + esc(p.Date) + "</p>")
			if pg.IsAdmin {
				buf.WriteString("<p class=\"admin-actions\">")
				fprintf(buf, "<a href=\"/edit-post/%d\">Edit</a> ", p.ID)
				fprintf(buf, "<a class=\"danger\" href=\"/delete/%d\">Delete</a>", p.ID)
				buf.WriteString("</p>")
			}
			buf.WriteString("</article>")
		}
		buf.WriteString("</section>")
	})
}
