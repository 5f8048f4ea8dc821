package handler

import (
	"errors"
	"net/http"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
	"github.com/koinonia-dev/koinonia/internal/pagination"
	"github.com/koinonia-dev/koinonia/internal/service"
)

// resolveChurch looks up the church named in the path. On a missing church it
// falls back to the church listing with a warning and reports handled=false,
// so callers just return.
func (h *Handler) resolveChurch(w http.ResponseWriter, r *http.Request) (domain.Church, bool) {
	church, err := h.resolver.Church(pathParam(r, "church"))
	if err != nil {
		var statusErr *internal_errors.ErrorWithStatusCode
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			h.renderChurchesFallback(w, r, "Church does not exist. Choose from churches below.")
		} else {
			writeError(w, err)
		}
		return domain.Church{}, false
	}
	return church, true
}

type seriesPage struct {
	Church  domain.Church
	Listing service.Listing[domain.Series]
}

func (h *Handler) SeriesGet(w http.ResponseWriter, r *http.Request) {
	church, ok := h.resolveChurch(w, r)
	if !ok {
		return
	}

	listing, err := h.resolver.Series(church.Id, pagination.ParseRequest(pathParam(r, "page")))
	if err != nil {
		writeError(w, err)
		return
	}

	var flashes []Flash
	if listing.Warning != "" {
		flashes = append(flashes, Flash{Level: "danger", Message: listing.Warning})
	}
	h.renderTemplate(w, r, "series.html", seriesPage{Church: church, Listing: listing}, flashes...)
}

type sermonsPage struct {
	Church  domain.Church
	Series  domain.SeriesName
	Listing service.Listing[domain.Sermon]
}

// SermonsGet lists the sermons of one series. A series name that matches
// nothing simply yields an empty single page; series are derived from
// sermons, so there is no row to miss.
func (h *Handler) SermonsGet(w http.ResponseWriter, r *http.Request) {
	church, ok := h.resolveChurch(w, r)
	if !ok {
		return
	}

	series := pathParam(r, "series")
	listing, err := h.resolver.Sermons(church.Id, series, pagination.ParseRequest(pathParam(r, "page")))
	if err != nil {
		writeError(w, err)
		return
	}

	var flashes []Flash
	if listing.Warning != "" {
		flashes = append(flashes, Flash{Level: "danger", Message: listing.Warning})
	}
	h.renderTemplate(w, r, "sermons.html", sermonsPage{Church: church, Series: series, Listing: listing}, flashes...)
}
