// Package modal carries one-shot dialog state across a redirect using a
// flash cookie. At most one modal is pending at a time; showing another
// before the first is read replaces it.
package modal

import (
	"errors"
	"net/http"

	"github.com/vroumauto/webapp/pkg/cookie"
)

// Dialog types. They pick the icon and accent color in the view.
const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"
)

const flashKey = "modal"

// Modal is a pending dialog. ConfirmURL, when set, turns the dialog into
// a confirmation: the confirm button posts to that URL.
type Modal struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	ConfirmURL string `json:"confirmUrl,omitempty"`
}

// Presenter queues and pops modals.
type Presenter struct {
	cookies *cookie.Manager
}

// New creates a Presenter over the cookie manager.
func New(cookies *cookie.Manager) *Presenter {
	return &Presenter{cookies: cookies}
}

// Show queues a modal for the next rendered page.
func (p *Presenter) Show(w http.ResponseWriter, title, message, typ string) error {
	return p.ShowModal(w, Modal{Title: title, Message: message, Type: typ})
}

// ShowModal queues m, replacing any modal already pending.
func (p *Presenter) ShowModal(w http.ResponseWriter, m Modal) error {
	if m.Type == "" {
		m.Type = TypeInfo
	}
	return p.cookies.SetFlash(w, flashKey, m)
}

// Pop returns the pending modal and clears it, or nil when none is queued.
func (p *Presenter) Pop(w http.ResponseWriter, r *http.Request) *Modal {
	var m Modal
	if err := p.cookies.Flash(w, r, flashKey, &m); err != nil {
		if !errors.Is(err, cookie.ErrNotFound) {
			// A malformed flash is dropped silently; the page renders
			// without a dialog.
			p.cookies.Delete(w, "flash_"+flashKey)
		}
		return nil
	}
	return &m
}
