// Package htmx provides request detection and response-header helpers for
// htmx-driven navigation. The application relies on hx-boost for SPA-style
// page changes: the server renders the new page, htmx swaps the body, and
// HX-Push-Url keeps the address bar and history in sync.
package htmx

import "net/http"

// Request headers set by htmx.
const (
	HeaderRequest        = "HX-Request"
	HeaderBoosted        = "HX-Boosted"
	HeaderCurrentURL     = "HX-Current-URL"
	HeaderHistoryRestore = "HX-History-Restore-Request"
	HeaderTarget         = "HX-Target"
)

// Response headers understood by htmx.
const (
	HeaderPushURL    = "HX-Push-Url"
	HeaderReplaceURL = "HX-Replace-Url"
	HeaderRedirect   = "HX-Redirect"
	HeaderRefresh    = "HX-Refresh"
	HeaderRetarget   = "HX-Retarget"
	HeaderReswap     = "HX-Reswap"
	HeaderTrigger    = "HX-Trigger"
)

// IsRequest reports whether the request was issued by htmx.
func IsRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// IsHistoryRestore reports whether htmx is restoring a page after
// back/forward navigation. These requests must be answered with a full
// page derived purely from the URL.
func IsHistoryRestore(r *http.Request) bool {
	return r.Header.Get(HeaderHistoryRestore) == "true"
}

// PushURL asks htmx to push url onto the browser history stack.
func PushURL(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderPushURL, url)
}

// Redirect sends the client to url. For htmx requests the HX-Redirect
// header triggers a client-side navigation (htmx needs a 2xx response);
// plain requests get a regular HTTP redirect.
func Redirect(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsRequest(r) {
		w.Header().Set(HeaderRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, status)
}

// Refresh forces a full page reload on the client.
func Refresh(w http.ResponseWriter) {
	w.Header().Set(HeaderRefresh, "true")
}
