package views

import (
	"bytes"

	"github.com/a-h/templ"
)

// PostPage renders a single post with its comments and, for signed-in
// readers, the comment form. BodyHTML and TextHTML are trusted pre-rendered
// markdown; everything else is escaped here.
func PostPage(cfg SiteConfig, pg Page, post Post, comments []Comment, form CommentForm) templ.Component {
	return layout(cfg, pg, post.Title, func(buf *bytes.Buffer) {
		buf.WriteString("<article class=\"post\">")
		if src := safeImageURL(post.ImageURL); src != "" {
			buf.WriteString("<img class=\"post-image\" src=\"" + src + "\" alt=\"" + esc(post.Title) + "\"/>")
		}
		buf.WriteString("<h1>" + esc(post.Title) + "</h1>")
		buf.WriteString("<p class=\"post-subtitle\">" + esc(post.Subtitle) + "</p>")
		buf.WriteString("<p class=\"byline\">Posted by " + esc(post.AuthorName) + " on " + esc(post.Date) + "</p>")
		if pg.IsAdmin {
			buf.WriteString("<p class=\"admin-actions\">")
			fprintf(buf, "<a href=\"/edit-post/%d\">Edit</a> ", post.ID)
			fprintf(buf, "<a class=\"danger\" href=\"/delete/%d\">Delete</a>", post.ID)
			buf.WriteString("</p>")
		}
		buf.WriteString("<div class=\"post-body\">")
		buf.WriteString(post.BodyHTML)
		buf.WriteString("</div>")
		buf.WriteString("<script type=\"application/ld+json\">" + BlogPostingJsonLD(cfg, post) + "</script>")
		buf.WriteString("</article>")

		writeComments(buf, pg, post, comments)
		writeCommentForm(buf, pg, post, form)
	})
}

func writeComments(buf *bytes.Buffer, pg Page, post Post, comments []Comment) {
	buf.WriteString("<section class=\"comments\"><h2>Comments</h2>")
	if len(comments) == 0 {
		buf.WriteString("<p class=\"empty\">No comments yet.</p>")
	}
	for _, cm := range comments {
		buf.WriteString("<div class=\"comment\">")
		buf.WriteString("<img class=\"avatar\" src=\"" + esc(cm.AvatarURL) + "\" alt=\"\" width=\"50\" height=\"50\"/>")
		buf.WriteString("<div class=\"comment-content\">")
		buf.WriteString("<p class=\"comment-author\">" + esc(cm.AuthorName) + "</p>")
		buf.WriteString("<div class=\"comment-text\">" + cm.TextHTML + "</div>")
		if pg.IsAdmin {
			fprintf(buf, "<a class=\"danger\" href=\"/delete/%d/%d\">Delete</a>", post.ID, cm.ID)
		}
		buf.WriteString("</div></div>")
	}
	buf.WriteString("</section>")
}

func writeCommentForm(buf *bytes.Buffer, pg Page, post Post, form CommentForm) {
	if !pg.LoggedIn {
		buf.WriteString("<p class=\"comment-login\"><a href=\"/login\">Log in</a> to leave a comment.</p>")
		return
	}
	fprintf(buf, "<form class=\"comment-form\" method=\"post\" action=\"/post/%d\">", post.ID)
	writeCSRF(buf, pg)
	buf.WriteString("<label for=\"text\">Leave a comment</label>")
	buf.WriteString("<textarea id=\"text\" name=\"text\" rows=\"4\">" + esc(form.Text) + "</textarea>")
	writeFieldError(buf, form.Errors, "text")
	buf.WriteString("<button type=\"submit\">Submit Comment</button>")
	buf.WriteString("</form>")
}
