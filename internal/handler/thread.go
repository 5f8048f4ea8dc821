package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
	"github.com/koinonia-dev/koinonia/internal/middleware"
	"github.com/koinonia-dev/koinonia/internal/pagination"
	"github.com/koinonia-dev/koinonia/internal/service"
)

// currentUsername returns the signed-in user. Handlers using it sit behind
// RequireAuth, so the context value is always present.
func currentUsername(r *http.Request) domain.Username {
	if user := middleware.GetUserFromContext(r); user != nil {
		return user.Username
	}
	return ""
}

// resolveSermon walks church -> sermon from the path, rendering the
// appropriate fallback listing when either level is missing.
func (h *Handler) resolveSermon(w http.ResponseWriter, r *http.Request) (domain.Church, domain.Sermon, bool) {
	church, ok := h.resolveChurch(w, r)
	if !ok {
		return domain.Church{}, domain.Sermon{}, false
	}

	sermon, err := h.resolver.Sermon(church.Id, pathParam(r, "series"), pathParam(r, "sermon"))
	if err != nil {
		var statusErr *internal_errors.ErrorWithStatusCode
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			h.renderSermonsFallback(w, r, church, "Sermon does not exist. Choose from sermons below.")
		} else {
			writeError(w, err)
		}
		return domain.Church{}, domain.Sermon{}, false
	}
	return church, sermon, true
}

func (h *Handler) renderSermonsFallback(w http.ResponseWriter, r *http.Request, church domain.Church, warning string) {
	series := pathParam(r, "series")
	listing, err := h.resolver.Sermons(church.Id, series, pagination.ParseRequest("1"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.renderTemplate(w, r, "sermons.html", sermonsPage{Church: church, Series: series, Listing: listing},
		Flash{Level: "danger", Message: warning})
}

// threadFormValues carries submitted form values back into the template so a
// failed validation never loses what the user typed.
type threadFormValues struct {
	GroupName string
	Prompt    string
}

type threadsPage struct {
	Church  domain.Church
	Series  domain.SeriesName
	Sermon  domain.Sermon
	Listing service.Listing[domain.Thread]
	Form    threadFormValues
}

func (h *Handler) ThreadsGet(w http.ResponseWriter, r *http.Request) {
	church, sermon, ok := h.resolveSermon(w, r)
	if !ok {
		return
	}
	h.renderThreads(w, r, church, sermon, pathParam(r, "page"), threadFormValues{})
}

func (h *Handler) renderThreads(
	w http.ResponseWriter, r *http.Request,
	church domain.Church, sermon domain.Sermon,
	rawPage string, form threadFormValues, flashes ...Flash,
) {
	listing, err := h.resolver.Threads(sermon.Id, pagination.ParseRequest(rawPage))
	if err != nil {
		writeError(w, err)
		return
	}

	if listing.Warning != "" {
		flashes = append(flashes, Flash{Level: "danger", Message: listing.Warning})
	}
	h.renderTemplate(w, r, "threads.html", threadsPage{
		Church:  church,
		Series:  sermon.Series,
		Sermon:  sermon,
		Listing: listing,
		Form:    form,
	}, flashes...)
}

func (h *Handler) ThreadCreate(w http.ResponseWriter, r *http.Request) {
	church, sermon, ok := h.resolveSermon(w, r)
	if !ok {
		return
	}

	form := threadFormValues{
		GroupName: r.PostFormValue("groupName"),
		Prompt:    r.PostFormValue("prompt"),
	}
	newId, err := h.threads.Create(domain.ThreadCreationData{
		GroupName: form.GroupName,
		Prompt:    form.Prompt,
		SermonId:  sermon.Id,
		Owner:     currentUsername(r),
	})
	if err != nil {
		var validationErr *internal_errors.ValidationError
		if errors.As(err, &validationErr) {
			h.renderThreads(w, r, church, sermon, "1", form, validationFlashes(validationErr)...)
			return
		}
		writeError(w, err)
		return
	}

	redirectWithFlash(w, r,
		threadPath(church.Name, sermon.Series, sermon.Name, newId, 1),
		"success", "Your thread has been created!")
}

func validationFlashes(err *internal_errors.ValidationError) []Flash {
	flashes := make([]Flash, 0, len(err.Messages))
	for _, msg := range err.Messages {
		flashes = append(flashes, Flash{Level: "danger", Message: msg})
	}
	return flashes
}

// resolveThread adds the thread level on top of resolveSermon. A missing or
// malformed thread id falls back to the thread listing with a warning.
func (h *Handler) resolveThread(w http.ResponseWriter, r *http.Request) (domain.Church, domain.Sermon, domain.Thread, bool) {
	church, sermon, ok := h.resolveSermon(w, r)
	if !ok {
		return domain.Church{}, domain.Sermon{}, domain.Thread{}, false
	}

	thread, err := h.resolver.Thread(sermon.Id, pathParam(r, "thread"))
	if err != nil {
		var statusErr *internal_errors.ErrorWithStatusCode
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			h.renderThreads(w, r, church, sermon, "1", threadFormValues{},
				Flash{Level: "danger", Message: "Thread does not exist. Choose from threads below."})
		} else {
			writeError(w, err)
		}
		return domain.Church{}, domain.Sermon{}, domain.Thread{}, false
	}
	return church, sermon, thread, true
}

// postView decorates a post with its rendered body and whether the signed-in
// user owns it (owners see edit/delete controls).
type postView struct {
	domain.Post
	ContentHTML template.HTML
	Mine        bool
}

type threadPage struct {
	Church     domain.Church
	Series     domain.SeriesName
	Sermon     domain.Sermon
	Thread     domain.Thread
	PromptHTML template.HTML
	Posts      service.Listing[postView]
	Form       postFormValues
}

type postFormValues struct {
	Content string
}

func (h *Handler) ThreadGet(w http.ResponseWriter, r *http.Request) {
	church, sermon, thread, ok := h.resolveThread(w, r)
	if !ok {
		return
	}
	h.renderThread(w, r, church, sermon, thread, pathParam(r, "page"), postFormValues{})
}

func (h *Handler) renderThread(
	w http.ResponseWriter, r *http.Request,
	church domain.Church, sermon domain.Sermon, thread domain.Thread,
	rawPage string, form postFormValues, flashes ...Flash,
) {
	posts, err := h.resolver.Posts(thread.Id, pagination.ParseRequest(rawPage))
	if err != nil {
		writeError(w, err)
		return
	}

	username := currentUsername(r)
	views := service.Listing[postView]{
		PageCount:   posts.PageCount,
		PageNumbers: posts.PageNumbers,
		Page:        posts.Page,
		Warning:     posts.Warning,
	}
	for _, post := range posts.Items {
		views.Items = append(views.Items, postView{
			Post:        post,
			ContentHTML: h.markdown.Render(post.Content),
			Mine:        post.Username == username,
		})
	}

	if posts.Warning != "" {
		flashes = append(flashes, Flash{Level: "danger", Message: posts.Warning})
	}
	h.renderTemplate(w, r, "thread.html", threadPage{
		Church:     church,
		Series:     sermon.Series,
		Sermon:     sermon,
		Thread:     thread,
		PromptHTML: h.markdown.Render(thread.Prompt),
		Posts:      views,
		Form:       form,
	}, flashes...)
}

type threadEditPage struct {
	Church domain.Church
	Series domain.SeriesName
	Sermon domain.Sermon
	Thread domain.Thread
	Form   threadFormValues
}

func (h *Handler) ThreadEditGet(w http.ResponseWriter, r *http.Request) {
	church, sermon, thread, ok := h.resolveThread(w, r)
	if !ok {
		return
	}
	h.renderTemplate(w, r, "thread_edit.html", threadEditPage{
		Church: church,
		Series: sermon.Series,
		Sermon: sermon,
		Thread: thread,
		Form:   threadFormValues{GroupName: thread.GroupName, Prompt: thread.Prompt},
	})
}

func (h *Handler) ThreadEditPost(w http.ResponseWriter, r *http.Request) {
	church, sermon, thread, ok := h.resolveThread(w, r)
	if !ok {
		return
	}

	form := threadFormValues{
		GroupName: r.PostFormValue("groupName"),
		Prompt:    r.PostFormValue("prompt"),
	}
	err := h.threads.Edit(thread.Id, currentUsername(r), form.GroupName, form.Prompt)
	if err != nil {
		var validationErr *internal_errors.ValidationError
		if errors.As(err, &validationErr) {
			h.renderTemplate(w, r, "thread_edit.html", threadEditPage{
				Church: church,
				Series: sermon.Series,
				Sermon: sermon,
				Thread: thread,
				Form:   form,
			}, validationFlashes(validationErr)...)
			return
		}
		writeError(w, err)
		return
	}

	redirectWithFlash(w, r,
		threadPath(church.Name, sermon.Series, sermon.Name, thread.Id, 1),
		"success", "Your thread has been edited.")
}

func (h *Handler) ThreadDelete(w http.ResponseWriter, r *http.Request) {
	church, sermon, thread, ok := h.resolveThread(w, r)
	if !ok {
		return
	}

	if err := h.threads.Delete(thread.Id, currentUsername(r)); err != nil {
		writeError(w, err)
		return
	}

	redirectWithFlash(w, r,
		threadsPath(church.Name, sermon.Series, sermon.Name, 1),
		"success", "Your thread has been deleted.")
}
