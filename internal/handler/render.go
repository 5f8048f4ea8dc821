package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/koinonia-dev/koinonia/internal/logger"
	"github.com/koinonia-dev/koinonia/internal/middleware"
)

// Flash is a one-time, request-scoped message. Level matches the CSS class
// used by the templates: danger, success, info.
type Flash struct {
	Level   string
	Message string
}

// CommonTemplateData holds fields common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Flashes   []Flash
	Username  string
	SignedIn  bool
	CSRFToken string
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) commonData(r *http.Request, flashes []Flash) CommonTemplateData {
	common := CommonTemplateData{
		Flashes:   append(parseFlashesFromQuery(r), flashes...),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	}
	if user := middleware.GetUserFromContext(r); user != nil {
		common.Username = user.Username
		common.SignedIn = true
	}
	return common
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any, flashes ...Flash) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data:   data,
		Common: h.commonData(r, flashes),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}

// parseFlashesFromQuery picks up one-shot messages a previous request left on
// its redirect (the stateless replacement for session flash).
func parseFlashesFromQuery(r *http.Request) []Flash {
	var flashes []Flash
	q := r.URL.Query()
	for _, level := range []string{"danger", "success", "info"} {
		if msg := q.Get(level); msg != "" {
			flashes = append(flashes, Flash{Level: level, Message: msg})
		}
	}
	return flashes
}
