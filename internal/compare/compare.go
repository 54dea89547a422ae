// Package compare keeps the vehicle comparison list in a plain cookie.
// The list holds at most four ids; adding a fifth is refused.
package compare

import (
	"errors"
	"slices"
	"strings"

	"net/http"

	"github.com/vroumauto/webapp/pkg/cookie"
)

// Max is the comparison list capacity.
const Max = 4

// CookieName holds the comma-joined vehicle ids.
const CookieName = "va_compare"

// ErrFull is returned when the list already holds Max vehicles.
var ErrFull = errors.New("compare: list is full")

const maxAge = 30 * 24 * 60 * 60

// List manages the comparison cookie.
type List struct {
	cookies *cookie.Manager
}

// New creates a List over the cookie manager.
func New(cookies *cookie.Manager) *List {
	return &List{cookies: cookies}
}

// IDs returns the vehicles currently queued for comparison.
func (l *List) IDs(r *http.Request) []string {
	raw, err := l.cookies.Get(r, CookieName)
	if err != nil || raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := parts[:0]
	for _, p := range parts {
		if p != "" {
			ids = append(ids, p)
		}
	}
	if len(ids) > Max {
		ids = ids[:Max]
	}
	return ids
}

// Contains reports whether id is queued.
func (l *List) Contains(r *http.Request, id string) bool {
	return slices.Contains(l.IDs(r), id)
}

// Add queues a vehicle. Adding an id already present is a no-op; a full
// list returns ErrFull.
func (l *List) Add(w http.ResponseWriter, r *http.Request, id string) error {
	ids := l.IDs(r)
	if slices.Contains(ids, id) {
		return nil
	}
	if len(ids) >= Max {
		return ErrFull
	}
	l.write(w, append(ids, id))
	return nil
}

// Remove drops a vehicle from the list. Unknown ids are ignored.
func (l *List) Remove(w http.ResponseWriter, r *http.Request, id string) {
	ids := slices.DeleteFunc(l.IDs(r), func(v string) bool { return v == id })
	if len(ids) == 0 {
		l.Clear(w)
		return
	}
	l.write(w, ids)
}

// Clear empties the list.
func (l *List) Clear(w http.ResponseWriter) {
	l.cookies.Delete(w, CookieName)
}

func (l *List) write(w http.ResponseWriter, ids []string) {
	l.cookies.Set(w, CookieName, strings.Join(ids, ","), maxAge)
}
