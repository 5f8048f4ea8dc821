package handler

import (
	"fmt"
	"net/http"
	"net/url"

	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
	"github.com/koinonia-dev/koinonia/internal/logger"
)

// writeError terminates the request. Known status codes pass through;
// anything else is a 500 with a generic body so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	logger.Log.Error("request failed", "error", err)
	http.Error(w, "Something went wrong. Please try again later.", http.StatusInternalServerError)
}

// redirectWithFlash sends the browser to target with a one-shot message in
// the query string; the next render picks it up.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, level, message string) {
	sep := "?"
	if u, err := url.Parse(target); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	http.Redirect(w, r, target+sep+level+"="+url.QueryEscape(message), http.StatusSeeOther)
}

// Path builders for the nested churches/series/sermons/threads hierarchy.

func churchesPath(page int) string {
	return fmt.Sprintf("/churches/page/%d", page)
}

func threadsPath(church, series, sermon string, page int) string {
	return fmt.Sprintf("/churches/%s/series/%s/sermons/%s/threads/page/%d",
		url.PathEscape(church), url.PathEscape(series), url.PathEscape(sermon), page)
}

func threadPath(church, series, sermon string, threadId int64, page int) string {
	return fmt.Sprintf("/churches/%s/series/%s/sermons/%s/threads/%d/page/%d",
		url.PathEscape(church), url.PathEscape(series), url.PathEscape(sermon), threadId, page)
}
