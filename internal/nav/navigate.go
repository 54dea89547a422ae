package nav

import (
	"net/http"

	"github.com/vroumauto/webapp/pkg/htmx"
)

// Navigate sends the client to the given page. For htmx requests the
// browser swaps in the new page and pushes the URL without a reload; for
// plain requests it is an ordinary redirect. Either way the address bar
// and the rendered page change together, and a subsequent back/forward
// lands on a URL that FromURL resolves to the same route.
func Navigate(w http.ResponseWriter, r *http.Request, page Page, params Params) {
	htmx.Redirect(w, r, URLFor(page, params), http.StatusSeeOther)
}
