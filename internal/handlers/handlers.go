// Package handlers binds the site's pages and form actions to the
// router. Handlers resolve their data through the API client, render
// templ views and carry one-shot feedback through the modal presenter.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/compare"
	"github.com/vroumauto/webapp/internal/content"
	"github.com/vroumauto/webapp/internal/i18n"
	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/internal/nav"
	"github.com/vroumauto/webapp/internal/session"
	"github.com/vroumauto/webapp/internal/web"
	"github.com/vroumauto/webapp/pkg/cache"
	"github.com/vroumauto/webapp/views"
)

// Handlers holds the dependencies shared by every page.
type Handlers struct {
	api      *backend.Client
	sessions *session.Manager
	modals   *modal.Presenter
	compare  *compare.List
	content  *content.Store
	i18n     *i18n.Bundle
	featured cache.Cache[[]backend.Vehicle]
	baseURL  string
	log      *slog.Logger
}

// Config wires a Handlers instance.
type Config struct {
	API      *backend.Client
	Sessions *session.Manager
	Modals   *modal.Presenter
	Compare  *compare.List
	Content  *content.Store
	I18n     *i18n.Bundle
	Featured cache.Cache[[]backend.Vehicle]
	BaseURL  string
	Log      *slog.Logger
}

// New creates the handler set.
func New(cfg Config) *Handlers {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		api:      cfg.API,
		sessions: cfg.Sessions,
		modals:   cfg.Modals,
		compare:  cfg.Compare,
		content:  cfg.Content,
		i18n:     cfg.I18n,
		featured: cfg.Featured,
		baseURL:  cfg.BaseURL,
		log:      log,
	}
}

// Register mounts every route.
func (h *Handlers) Register(r web.Router) {
	r.GET("/", h.Home)
	r.GET("/buy-vehicles", h.BuyVehicles)
	r.GET("/rent-vehicles", h.RentVehicles)
	r.GET("/vehicle-details/{id}", h.VehicleDetails)
	r.GET("/about", h.About)
	r.GET("/terms-and-conditions", h.Terms)
	r.GET("/privacy-policy", h.Privacy)
	r.GET("/contact", h.ContactPage)
	r.POST("/contact", h.ContactSubmit)

	r.GET("/auth", h.AuthPage)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.RegisterAccount)
	r.POST("/logout", h.Logout)
	r.GET("/forgot-password", h.ForgotPasswordPage)
	r.POST("/forgot-password", h.ForgotPasswordSubmit)
	r.GET("/reset-password", h.ResetPasswordPage)
	r.POST("/reset-password", h.ResetPasswordSubmit)

	r.GET("/reservation-form", h.ReservationFormPage)
	r.POST("/reservation-form/{id}", h.ReservationSubmit)
	r.GET("/test-drive-confirmation", h.TestDriveConfirmation)

	r.GET("/comparison", h.ComparisonPage)
	r.POST("/comparison/add", h.ComparisonAdd)
	r.POST("/comparison/remove", h.ComparisonRemove)
	r.POST("/comparison/clear", h.ComparisonClear)

	r.Group(func(r web.Router) {
		r.Use(h.requireAuth)
		r.GET("/favorites", h.Favorites)
		r.POST("/favorites/toggle", h.FavoriteToggle)
		r.GET("/profile", h.Profile)
		r.GET("/my-reservations", h.MyReservations)
		r.GET("/my-reservations/{userId}", h.MyReservations)
		r.POST("/my-reservations/cancel", h.CancelEntry)
		r.GET("/test-drive-scheduling", h.TestDriveSchedulingPage)
		r.POST("/test-drive-scheduling/{id}", h.TestDriveSubmit)
	})

	r.Group(func(r web.Router) {
		r.Use(h.requireAdmin)
		r.GET("/dashboard", h.Dashboard)
		r.GET("/manage-vehicles", h.ManageVehicles)
		r.POST("/manage-vehicles/delete", h.DeleteVehicle)
		r.GET("/add-vehicle", h.AddVehiclePage)
		r.POST("/add-vehicle", h.AddVehicleSubmit)
		r.GET("/edit-vehicle/{id}", h.EditVehiclePage)
		r.POST("/edit-vehicle/{id}", h.EditVehicleSubmit)
		r.GET("/manage-users", h.ManageUsers)
		r.POST("/manage-users/toggle-active", h.ToggleUserActive)
		r.POST("/manage-users/delete", h.DeleteUser)
		r.GET("/edit-user/{id}", h.EditUserPage)
		r.POST("/edit-user/{id}", h.EditUserSubmit)
		r.GET("/manage-reservations", h.ManageReservations)
		r.POST("/manage-reservations/status", h.SetReservationStatus)
		r.POST("/manage-reservations/delete", h.DeleteReservation)
		r.GET("/manage-test-drives", h.ManageTestDrives)
		r.POST("/manage-test-drives/status", h.SetTestDriveStatus)
		r.POST("/manage-test-drives/delete", h.DeleteTestDrive)
	})
}

// render wraps body in the layout with the page's canonical metadata.
func (h *Handlers) render(c web.Context, page nav.Page, params nav.Params, body templ.Component) error {
	meta := nav.MetaFor(nav.Route{Name: page, Params: params})
	s := session.FromContext(c)
	p := views.Page{
		Title:         meta.Title,
		CanonicalPath: meta.CanonicalPath,
		BaseURL:       h.baseURL,
		User:          s.User,
		Modal:         h.modals.Pop(c.ResponseWriter(), c.Request()),
		CompareCount:  len(h.compare.IDs(c.Request())),
	}
	return c.Render(views.Layout(p, body))
}

// RenderError is the server's error responder: it renders the error page
// inside the layout.
func (h *Handlers) RenderError(c web.Context, e *web.HTTPError) {
	c.ResponseWriter().WriteHeader(e.Code)
	meta := nav.MetaFor(nav.Route{Name: nav.PageHome})
	s := session.FromContext(c)
	p := views.Page{
		Title:        meta.Title,
		BaseURL:      h.baseURL,
		User:         s.User,
		CompareCount: len(h.compare.IDs(c.Request())),
	}
	if err := c.Render(views.Layout(p, views.ErrorPage(e.Code, e.Message))); err != nil {
		h.log.ErrorContext(c, "render error page", "error", err)
	}
}

// NotFound handles unmatched routes. Every path resolves to a page, so
// stale deep links and typos land on the home page instead of a dead end.
func (h *Handlers) NotFound(c web.Context) error {
	return h.Home(c)
}

// flash queues a modal for the page after the next redirect.
func (h *Handlers) flash(c web.Context, title, message, typ string) {
	if err := h.modals.Show(c.ResponseWriter(), title, message, typ); err != nil {
		h.log.WarnContext(c, "queue modal", "error", err)
	}
}

// flashErr queues an error modal from an API failure, preserving the
// API's own message.
func (h *Handlers) flashErr(c web.Context, err error) {
	h.flash(c, "Erreur", web.Normalize(err).Message, modal.TypeError)
}

// redirectBack returns to the page the form was submitted from.
func (h *Handlers) redirectBack(c web.Context) error {
	target := c.Request().Header.Get("HX-Current-URL")
	if target == "" {
		target = c.Request().Referer()
	}
	if target == "" {
		target = "/"
	}
	c.Redirect(target, http.StatusSeeOther)
	return nil
}

// navigate redirects to a page's canonical URL.
func (h *Handlers) navigate(c web.Context, page nav.Page, params nav.Params) error {
	nav.Navigate(c.ResponseWriter(), c.Request(), page, params)
	return nil
}

// requireAuth redirects anonymous visitors to the login page with an
// explanatory modal.
func (h *Handlers) requireAuth(next web.HandlerFunc) web.HandlerFunc {
	return func(c web.Context) error {
		if !session.FromContext(c).LoggedIn() {
			h.flash(c, "Non autorisé", h.i18n.T(i18n.DefaultLang, "msg.login_required"), modal.TypeError)
			return h.navigate(c, nav.PageAuth, nav.Params{})
		}
		return next(c)
	}
}

// requireAdmin additionally checks the admin role; non-admins land on
// the home page.
func (h *Handlers) requireAdmin(next web.HandlerFunc) web.HandlerFunc {
	return func(c web.Context) error {
		s := session.FromContext(c)
		if !s.LoggedIn() {
			h.flash(c, "Non autorisé", h.i18n.T(i18n.DefaultLang, "msg.login_required"), modal.TypeError)
			return h.navigate(c, nav.PageAuth, nav.Params{})
		}
		if !s.IsAdmin() {
			h.flash(c, "Accès refusé", h.i18n.T(i18n.DefaultLang, "msg.admin_required"), modal.TypeError)
			return h.navigate(c, nav.PageHome, nav.Params{})
		}
		return next(c)
	}
}

// cardOpts derives the per-card toggles from the session's favorites and
// the comparison cookie.
func (h *Handlers) cardOpts(c web.Context) func(backend.Vehicle) views.CardOptions {
	s := session.FromContext(c)
	favorites := make(map[string]bool)
	if s.LoggedIn() {
		for _, id := range s.User.Favorites {
			favorites[id] = true
		}
	}
	compared := make(map[string]bool)
	for _, id := range h.compare.IDs(c.Request()) {
		compared[id] = true
	}
	return func(v backend.Vehicle) views.CardOptions {
		return views.CardOptions{
			InCompare:  compared[v.ID],
			IsFavorite: favorites[v.ID],
			LoggedIn:   s.LoggedIn(),
		}
	}
}
