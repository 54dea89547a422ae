package handlers

import (
	"fmt"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/i18n"
	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/internal/nav"
	"github.com/vroumauto/webapp/internal/web"
	"github.com/vroumauto/webapp/views"
)

// Favorites lists the visitor's favorite vehicles.
func (h *Handlers) Favorites(c web.Context) error {
	s := sessionFrom(c)
	vehicles, err := h.api.Favorites(c, s.Token)
	if err != nil {
		return err
	}
	return h.render(c, nav.PageFavorites, nav.Params{},
		views.Favorites(vehicles, h.cardOpts(c)))
}

// FavoriteToggle adds or removes a vehicle from the favorites and
// returns to the page the heart was clicked on.
func (h *Handlers) FavoriteToggle(c web.Context) error {
	id := c.FormValue("vehicleId")
	if id == "" {
		return web.ErrBadRequest("identifiant de véhicule manquant")
	}
	s := sessionFrom(c)
	msg, err := h.api.ToggleFavorite(c, s.Token, id)
	if err != nil {
		h.flashErr(c, err)
		return h.redirectBack(c)
	}
	h.sessions.Refresh(c, s)
	if msg == "" {
		msg = h.i18n.T(i18n.DefaultLang, "msg.favorite_toggled")
	}
	h.flash(c, "Favoris", msg, modal.TypeSuccess)
	return h.redirectBack(c)
}

// Profile shows the account overview: identity, recent rentals and test
// drives, favorite vehicles. Each section degrades independently.
func (h *Handlers) Profile(c web.Context) error {
	s := sessionFrom(c)
	d := views.ProfileData{User: *s.User}

	var err error
	if d.Reservations, err = h.api.MyReservations(c, s.Token, ""); err != nil {
		h.log.WarnContext(c, "profile reservations", "error", err)
	}
	if d.TestDrives, err = h.api.MyTestDrives(c, s.Token, ""); err != nil {
		h.log.WarnContext(c, "profile test drives", "error", err)
	}
	if d.Favorites, err = h.api.Favorites(c, s.Token); err != nil {
		h.log.WarnContext(c, "profile favorites", "error", err)
	}

	return h.render(c, nav.PageProfile, nav.Params{}, views.Profile(d))
}

// MyReservations renders the rentals and test drives tabs. With a
// userId path segment an admin inspects another user's entries.
func (h *Handlers) MyReservations(c web.Context) error {
	s := sessionFrom(c)
	route := nav.FromURL(c.Request().URL)

	forUser := c.Param("userId")
	if forUser != "" && !s.IsAdmin() {
		return web.ErrForbidden(h.i18n.T(i18n.DefaultLang, "msg.admin_required"))
	}

	d := views.MyReservationsData{Tab: c.Query("tab"), ForUser: forUser}
	if d.Tab != "testdrives" {
		d.Tab = "rentals"
	}

	var err error
	if d.Reservations, err = h.api.MyReservations(c, s.Token, forUser); err != nil {
		return err
	}
	if d.TestDrives, err = h.api.MyTestDrives(c, s.Token, forUser); err != nil {
		return err
	}

	return h.render(c, nav.PageMyReservations,
		nav.Params{UserID: forUser, UserEmail: route.Params.UserEmail},
		views.MyReservations(d))
}

// CancelEntry cancels a rental or a test drive, depending on the kind
// field, then returns to the list.
func (h *Handlers) CancelEntry(c web.Context) error {
	id := c.FormValue("id")
	if id == "" {
		return web.ErrBadRequest("identifiant manquant")
	}
	s := sessionFrom(c)

	var err error
	switch kind := c.FormValue("kind"); kind {
	case "rental":
		err = h.api.CancelReservation(c, s.Token, id)
	case "testdrive":
		err = h.api.CancelTestDrive(c, s.Token, id)
	default:
		return web.ErrBadRequest("type d'entrée inconnu")
	}
	if err != nil {
		h.flashErr(c, err)
		return h.redirectBack(c)
	}

	h.flash(c, "Annulation", "Votre demande a été annulée.", modal.TypeSuccess)
	return h.redirectBack(c)
}

// TestDriveSchedulingPage renders the scheduling form for the vehicle
// carried in the URL. A testDriveId in the payload switches the form to
// reschedule mode.
func (h *Handlers) TestDriveSchedulingPage(c web.Context) error {
	route := nav.FromURL(c.Request().URL)
	id, _ := route.Params.VehicleData["_id"].(string)
	if id == "" {
		h.flash(c, "Essai routier", "Choisissez d'abord un véhicule à essayer.", modal.TypeWarning)
		return h.navigate(c, nav.PageBuy, nav.Params{})
	}

	vehicle, err := h.api.GetVehicle(c, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return web.ErrNotFound("Ce véhicule n'existe plus.")
		}
		return err
	}

	s := sessionFrom(c)
	d := views.TestDriveFormData{
		Vehicle:  *vehicle,
		FullName: s.User.Name,
		Email:    s.User.Email,
	}
	d.EntryID, _ = route.Params.VehicleData["testDriveId"].(string)

	return h.render(c, nav.PageTestDriveScheduling,
		nav.Params{VehicleData: route.Params.VehicleData},
		views.TestDriveForm(d))
}

// TestDriveSubmit books the appointment, or reschedules it when the form
// carries an entry id. Either way the confirmation page follows.
func (h *Handlers) TestDriveSubmit(c web.Context) error {
	in := backend.TestDriveInput{
		VehicleID:     c.Param("id"),
		FullName:      c.FormValue("fullName"),
		Email:         c.FormValue("email"),
		Phone:         c.FormValue("phone"),
		TestDriveDate: c.FormValue("date"),
		TestDriveTime: c.FormValue("time"),
		Message:       c.FormValue("message"),
	}
	if in.FullName == "" || in.Email == "" || in.Phone == "" ||
		in.TestDriveDate == "" || in.TestDriveTime == "" {
		h.flash(c, "Erreur", "Veuillez remplir tous les champs obligatoires.", modal.TypeError)
		return h.redirectBack(c)
	}

	s := sessionFrom(c)
	vehicle, err := h.api.GetVehicle(c, in.VehicleID)
	if err != nil {
		return err
	}

	if entryID := c.FormValue("entryId"); entryID != "" {
		_, err = h.api.UpdateTestDrive(c, s.Token, entryID, in)
	} else {
		_, err = h.api.CreateTestDrive(c, s.Token, in)
	}
	if err != nil {
		h.flashErr(c, err)
		return h.redirectBack(c)
	}

	h.flash(c, "Essai routier confirmé",
		fmt.Sprintf("Votre essai de %s le %s à %s est enregistré. Notre équipe vous contactera pour le confirmer.",
			vehicle.Name, i18n.Date(i18n.DefaultLang, in.TestDriveDate), in.TestDriveTime),
		modal.TypeSuccess)
	return h.navigate(c, nav.PageTestDriveConfirmation, nav.Params{})
}

// TestDriveConfirmation is the landing page after booking. The details
// arrive through the one-shot modal; a reload shows the generic text.
func (h *Handlers) TestDriveConfirmation(c web.Context) error {
	return h.render(c, nav.PageTestDriveConfirmation, nav.Params{},
		views.TestDriveConfirmation("", "", ""))
}

// ReservationFormPage renders the rental booking form. Guests may book:
// the form is only prefilled for logged-in visitors.
func (h *Handlers) ReservationFormPage(c web.Context) error {
	route := nav.FromURL(c.Request().URL)
	id, _ := route.Params.VehicleData["_id"].(string)
	if id == "" {
		h.flash(c, "Réservation", "Choisissez d'abord un véhicule à réserver.", modal.TypeWarning)
		return h.navigate(c, nav.PageRent, nav.Params{})
	}

	vehicle, err := h.api.GetVehicle(c, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return web.ErrNotFound("Ce véhicule n'existe plus.")
		}
		return err
	}

	d := views.ReservationFormData{Vehicle: *vehicle}
	if s := sessionFrom(c); s.LoggedIn() {
		d.FullName = s.User.Name
		d.Email = s.User.Email
	}

	return h.render(c, nav.PageReservationForm,
		nav.Params{VehicleData: route.Params.VehicleData},
		views.ReservationForm(d))
}

// ReservationSubmit books the rental. Logged-in visitors land on their
// reservations, guests on the home page.
func (h *Handlers) ReservationSubmit(c web.Context) error {
	in := backend.ReservationInput{
		Vehicle:   c.Param("id"),
		FullName:  c.FormValue("fullName"),
		Email:     c.FormValue("email"),
		Phone:     c.FormValue("phone"),
		StartDate: c.FormValue("startDate"),
		EndDate:   c.FormValue("endDate"),
		Message:   c.FormValue("message"),
	}
	if in.FullName == "" || in.Email == "" || in.Phone == "" ||
		in.StartDate == "" || in.EndDate == "" {
		h.flash(c, "Erreur", "Veuillez remplir tous les champs obligatoires.", modal.TypeError)
		return h.redirectBack(c)
	}

	s := sessionFrom(c)
	msg, err := h.api.CreateReservation(c, s.Token, in)
	if err != nil {
		h.flashErr(c, err)
		return h.redirectBack(c)
	}
	if msg == "" {
		msg = "Votre demande de réservation a bien été envoyée. Notre équipe vous recontactera rapidement."
	}
	h.flash(c, "Réservation envoyée", msg, modal.TypeSuccess)

	if s.LoggedIn() {
		return h.navigate(c, nav.PageMyReservations, nav.Params{})
	}
	return h.navigate(c, nav.PageHome, nav.Params{})
}
