package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/koinonia-dev/koinonia/internal/domain"
	"github.com/koinonia-dev/koinonia/internal/pagination"
	"github.com/koinonia-dev/koinonia/internal/service"
)

// pathParam returns a decoded chi path parameter. Church, series and sermon
// names appear in URLs and may contain escaped spaces.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, churchesPath(1), http.StatusFound)
}

type churchesPage struct {
	Listing service.Listing[domain.Church]
}

func (h *Handler) ChurchesGet(w http.ResponseWriter, r *http.Request) {
	listing, err := h.resolver.Churches(pagination.ParseRequest(pathParam(r, "page")))
	if err != nil {
		writeError(w, err)
		return
	}

	var flashes []Flash
	if listing.Warning != "" {
		flashes = append(flashes, Flash{Level: "danger", Message: listing.Warning})
	}
	h.renderTemplate(w, r, "churches.html", churchesPage{Listing: listing}, flashes...)
}

// renderChurchesFallback shows the church listing at page 1 with a warning.
// Used when a church named in the path does not exist.
func (h *Handler) renderChurchesFallback(w http.ResponseWriter, r *http.Request, warning string) {
	listing, err := h.resolver.Churches(pagination.ParseRequest("1"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.renderTemplate(w, r, "churches.html", churchesPage{Listing: listing},
		Flash{Level: "danger", Message: warning})
}
