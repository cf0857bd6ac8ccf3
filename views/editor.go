package views

import (
	"bytes"

	"github.com/a-h/templ"
)

// PostEditor renders the post authoring form. The same template serves both
// the create and edit pages; when editing, the form is pre-filled and posts
// back to the edit URL.
func PostEditor(cfg SiteConfig, pg Page, form PostForm, editing bool, postID int64) templ.Component {
	title := "New Post"
	if editing {
		title = "Edit Post"
	}
	return layout(cfg, pg, title, func(buf *bytes.Buffer) {
		buf.WriteString("<section class=\"editor\"><h1>" + esc(title) + "</h1>")
		if editing {
			fprintf(buf, "<form method=\"post\" action=\"/edit-post/%d\">", postID)
		} else {
			buf.WriteString("<form method=\"post\" action=\"/new-post\">")
		}
		writeCSRF(buf, pg)

		buf.WriteString("<label for=\"title\">Title</label>")
		buf.WriteString("<input id=\"title\" name=\"title\" type=\"text\" value=\"" + esc(form.Title) + "\"/>")
		writeFieldError(buf, form.Errors, "title")

		buf.WriteString("<label for=\"subtitle\">Subtitle</label>")
		buf.WriteString("<input id=\"subtitle\" name=\"subtitle\" type=\"text\" value=\"" + esc(form.Subtitle) + "\"/>")
		writeFieldError(buf, form.Errors, "subtitle")

		buf.WriteString("<label for=\"image_url\">Image URL</label>")
		buf.WriteString("<input id=\"image_url\" name=\"image_url\" type=\"text\" value=\"" + esc(form.ImageURL) + "\"/>")
		writeFieldError(buf, form.Errors, "image_url")

		buf.WriteString("<label for=\"body\">Body (markdown)</label>")
		buf.WriteString("<textarea id=\"body\" name=\"body\" rows=\"16\">" + esc(form.Body) + "</textarea>")
		writeFieldError(buf, form.Errors, "body")

		buf.WriteString("<button type=\"submit\">Save Post</button>")
		buf.WriteString("</form></section>")
	})
}
