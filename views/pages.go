package views

import (
	"bytes"

	"github.com/a-h/templ"
)

// About renders the static about page.
func About(cfg SiteConfig, pg Page) templ.Component {
	return layout(cfg, pg, "About", func(buf *bytes.Buffer) {
		buf.WriteString("<section class=\"static-page\"><h1>About</h1>")
		buf.WriteString("<p>" + esc(cfg.Name) + " is a small blog. Anyone can read, registered readers can comment.</p>")
		if cfg.Author != "" {
			buf.WriteString("<p>Written and maintained by " + esc(cfg.Author) + ".</p>")
		}
		buf.WriteString("</section>")
	})
}

// Contact renders the contact page, only reachable by signed-in readers.
func Contact(cfg SiteConfig, pg Page) templ.Component {
	return layout(cfg, pg, "Contact", func(buf *bytes.Buffer) {
		buf.WriteString("<section class=\"static-page\"><h1>Contact</h1>")
		buf.WriteString("<p>Hi " + esc(pg.UserName) + "! Want to get in touch?</p>")
		if cfg.Author != "" {
			buf.WriteString("<p>Reach out to " + esc(cfg.Author) + " and we will get back to you.</p>")
		} else {
			buf.WriteString("<p>Leave a comment on any post and we will get back to you.</p>")
		}
		buf.WriteString("</section>")
	})
}

// Images renders the admin image library with the upload form.
func Images(cfg SiteConfig, pg Page, images []Image) templ.Component {
	return layout(cfg, pg, "Images", func(buf *bytes.Buffer) {
		buf.WriteString("<section class=\"images\"><h1>Images</h1>")
		buf.WriteString("<form method=\"post\" action=\"/images/upload\" enctype=\"multipart/form-data\">")
		writeCSRF(buf, pg)
		buf.WriteString("<input type=\"file\" name=\"image\" accept=\"image/*\"/>")
		buf.WriteString("<button type=\"submit\">Upload</button>")
		buf.WriteString("</form>")

		if len(images) == 0 {
			buf.WriteString("<p class=\"empty\">No images uploaded yet.</p>")
		}
		buf.WriteString("<div class=\"image-grid\">")
		for _, img := range images {
			buf.WriteString("<figure class=\"image-card\">")
			fprintf(buf, "<img src=\"%s\" alt=\"%s\" loading=\"lazy\"/>", esc(img.URL), esc(img.OriginalNameOrFilename()))
			buf.WriteString("<figcaption><code>" + esc(img.URL) + "</code>")
			fprintf(buf, "<span>%dx%d</span>", img.Width, img.Height)
			fprintf(buf, "<form method=\"post\" action=\"/images/%s/delete\">", esc(img.Filename))
			writeCSRF(buf, pg)
			buf.WriteString("<button class=\"danger\" type=\"submit\">Delete</button></form>")
			buf.WriteString("</figcaption></figure>")
		}
		buf.WriteString("</div></section>")
	})
}

// OriginalNameOrFilename returns the upload's original name, falling back to
// the stored filename.
func (i Image) OriginalNameOrFilename() string {
	if i.OriginalName != "" {
		return i.OriginalName
	}
	return i.Filename
}
