package inkwell

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"inkwell/views"
)

// Admin handlers. Route guards already ensure the caller is the admin
// account; handlers here only deal with the work itself.

func (a *App) handleNewPost(c echo.Context) error {
	return Render(c, views.PostEditor(a.viewConfig(), a.page(c), views.PostForm{}, false, 0))
}

// handleNewPostSubmit creates a post. The publish date is stamped here from
// the server clock; the submitter cannot set it.
func (a *App) handleNewPostSubmit(c echo.Context) error {
	form := parsePostForm(c)
	if !validatePostForm(&form) {
		return RenderStatus(c, http.StatusUnprocessableEntity, views.PostEditor(a.viewConfig(), a.page(c), form, false, 0))
	}
	user := CurrentUser(c)
	id, err := a.Store.CreatePost(Post{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     time.Now().Format("January 2, 2006"),
		Body:     form.Body,
		ImageURL: form.ImageURL,
		AuthorID: user.ID,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateTitle) {
			form.Errors["title"] = "A post with that title already exists"
			return RenderStatus(c, http.StatusUnprocessableEntity, views.PostEditor(a.viewConfig(), a.page(c), form, false, 0))
		}
		return err
	}
	a.Cache.Invalidate()
	_ = addFlash(c, "Post created")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

func (a *App) handleEditPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
	}
	post, err := a.Store.GetPost(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		}
		return err
	}
	form := views.PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImageURL: post.ImageURL,
		Body:     post.Body,
		Errors:   map[string]string{},
	}
	return Render(c, views.PostEditor(a.viewConfig(), a.page(c), form, true, post.ID))
}

// handleEditPostSubmit replaces every mutable field from the submitted form,
// last writer wins. The creation date and author are untouched.
func (a *App) handleEditPostSubmit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
	}
	form := parsePostForm(c)
	if !validatePostForm(&form) {
		return RenderStatus(c, http.StatusUnprocessableEntity, views.PostEditor(a.viewConfig(), a.page(c), form, true, id))
	}
	if err := a.Store.UpdatePost(id, form.Title, form.Subtitle, form.ImageURL, form.Body); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
		case errors.Is(err, ErrDuplicateTitle):
			form.Errors["title"] = "A post with that title already exists"
			return RenderStatus(c, http.StatusUnprocessableEntity, views.PostEditor(a.viewConfig(), a.page(c), form, true, id))
		}
		return err
	}
	a.Cache.Invalidate()
	_ = addFlash(c, "Post updated")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

// handleDeletePost removes a post together with its comments.
func (a *App) handleDeletePost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
	}
	if err := a.Store.DeletePost(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = addFlash(c, "That post no longer exists")
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return err
	}
	a.Cache.Invalidate()
	_ = addFlash(c, "Post deleted")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleDeleteComment(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
	}
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.viewConfig()))
	}
	if err := a.Store.DeleteComment(postID, commentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = addFlash(c, "That comment no longer exists")
			return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", postID))
		}
		return err
	}
	_ = addFlash(c, "Comment deleted")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", postID))
}
