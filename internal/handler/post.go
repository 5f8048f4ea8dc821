package handler

import (
	"errors"
	"net/http"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
)

func (h *Handler) PostCreate(w http.ResponseWriter, r *http.Request) {
	church, sermon, thread, ok := h.resolveThread(w, r)
	if !ok {
		return
	}

	form := postFormValues{Content: r.PostFormValue("post")}
	_, err := h.posts.Create(domain.PostCreationData{
		Content:  form.Content,
		ThreadId: thread.Id,
		Owner:    currentUsername(r),
	})
	if err != nil {
		var validationErr *internal_errors.ValidationError
		if errors.As(err, &validationErr) {
			h.renderThread(w, r, church, sermon, thread, "1", form, validationFlashes(validationErr)...)
			return
		}
		writeError(w, err)
		return
	}

	redirectWithFlash(w, r,
		threadPath(church.Name, sermon.Series, sermon.Name, thread.Id, 1),
		"success", "Your comment has been posted.")
}

// resolvePost adds the post level on top of resolveThread. The post must
// belong to the thread in the path and to the signed-in user; everything
// else is indistinguishable from not existing.
func (h *Handler) resolvePost(w http.ResponseWriter, r *http.Request) (domain.Church, domain.Sermon, domain.Thread, domain.Post, bool) {
	church, sermon, thread, ok := h.resolveThread(w, r)
	if !ok {
		return domain.Church{}, domain.Sermon{}, domain.Thread{}, domain.Post{}, false
	}

	post, err := h.resolver.Post(pathParam(r, "post"))
	if err == nil && (post.ThreadId != thread.Id || post.Username != currentUsername(r)) {
		err = &internal_errors.ErrorWithStatusCode{
			Message:    "Post not found or not yours",
			StatusCode: http.StatusNotFound,
		}
	}
	if err != nil {
		writeError(w, err)
		return domain.Church{}, domain.Sermon{}, domain.Thread{}, domain.Post{}, false
	}
	return church, sermon, thread, post, true
}

type postEditPage struct {
	Church domain.Church
	Series domain.SeriesName
	Sermon domain.Sermon
	Thread domain.Thread
	Post   domain.Post
	Form   postFormValues
}

func (h *Handler) PostEditGet(w http.ResponseWriter, r *http.Request) {
	church, sermon, thread, post, ok := h.resolvePost(w, r)
	if !ok {
		return
	}
	h.renderTemplate(w, r, "post_edit.html", postEditPage{
		Church: church,
		Series: sermon.Series,
		Sermon: sermon,
		Thread: thread,
		Post:   post,
		Form:   postFormValues{Content: post.Content},
	})
}

func (h *Handler) PostEditPost(w http.ResponseWriter, r *http.Request) {
	church, sermon, thread, post, ok := h.resolvePost(w, r)
	if !ok {
		return
	}

	form := postFormValues{Content: r.PostFormValue("post")}
	err := h.posts.Edit(post.Id, thread.Id, currentUsername(r), form.Content)
	if err != nil {
		var validationErr *internal_errors.ValidationError
		if errors.As(err, &validationErr) {
			h.renderTemplate(w, r, "post_edit.html", postEditPage{
				Church: church,
				Series: sermon.Series,
				Sermon: sermon,
				Thread: thread,
				Post:   post,
				Form:   form,
			}, validationFlashes(validationErr)...)
			return
		}
		writeError(w, err)
		return
	}

	redirectWithFlash(w, r,
		threadPath(church.Name, sermon.Series, sermon.Name, thread.Id, 1),
		"success", "Your comment has been edited.")
}

func (h *Handler) PostDelete(w http.ResponseWriter, r *http.Request) {
	church, sermon, thread, post, ok := h.resolvePost(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(post.Id, currentUsername(r)); err != nil {
		writeError(w, err)
		return
	}

	redirectWithFlash(w, r,
		threadPath(church.Name, sermon.Series, sermon.Name, thread.Id, 1),
		"success", "Your post has been deleted.")
}
