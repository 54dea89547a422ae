package handlers

import (
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/internal/nav"
	"github.com/vroumauto/webapp/internal/web"
	"github.com/vroumauto/webapp/views"
)

const (
	maxUploadMemory = 32 << 20
	maxImageSize    = 5 << 20
)

// Dashboard aggregates the admin statistics. The headline counts come
// from the list endpoints; each chart degrades independently.
func (h *Handlers) Dashboard(c web.Context) error {
	s := sessionFrom(c)
	var d views.DashboardData

	var err error
	if _, d.TotalUsers, err = h.api.ListUsers(c, s.Token); err != nil {
		h.log.WarnContext(c, "dashboard users", "error", err)
	}
	if _, d.TotalVehicles, err = h.api.ListVehicles(c, backend.VehicleFilter{}); err != nil {
		h.log.WarnContext(c, "dashboard vehicles", "error", err)
	}
	if d.VehicleAdditions, err = h.api.VehicleAdditionStats(c, s.Token); err != nil {
		h.log.WarnContext(c, "dashboard vehicle stats", "error", err)
	}
	if d.ReservationStats, err = h.api.ReservationStatusStats(c, s.Token); err != nil {
		h.log.WarnContext(c, "dashboard reservation stats", "error", err)
	}
	if d.TestDriveStats, err = h.api.TestDriveStatusStats(c, s.Token); err != nil {
		h.log.WarnContext(c, "dashboard test drive stats", "error", err)
	}

	return h.render(c, nav.PageDashboard, nav.Params{}, views.Dashboard(d))
}

// ManageVehicles lists every listing for administration.
func (h *Handlers) ManageVehicles(c web.Context) error {
	vehicles, _, err := h.api.ListVehicles(c, backend.VehicleFilter{})
	if err != nil {
		return err
	}
	return h.render(c, nav.PageManageVehicles, nav.Params{}, views.ManageVehicles(vehicles))
}

// DeleteVehicle removes a listing.
func (h *Handlers) DeleteVehicle(c web.Context) error {
	id := c.FormValue("id")
	if id == "" {
		return web.ErrBadRequest("identifiant de véhicule manquant")
	}
	if err := h.api.DeleteVehicle(c, sessionFrom(c).Token, id); err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageManageVehicles, nav.Params{})
	}
	h.flash(c, "Véhicule supprimé", "Le véhicule a été retiré du catalogue.", modal.TypeSuccess)
	return h.navigate(c, nav.PageManageVehicles, nav.Params{})
}

// AddVehiclePage renders the empty listing form.
func (h *Handlers) AddVehiclePage(c web.Context) error {
	return h.render(c, nav.PageAddVehicle, nav.Params{}, views.VehicleForm(views.VehicleFormData{}))
}

// AddVehicleSubmit creates the listing from the multipart form.
func (h *Handlers) AddVehicleSubmit(c web.Context) error {
	in, err := h.vehicleInput(c)
	if err != nil {
		return err
	}
	msg, err := h.api.CreateVehicle(c, sessionFrom(c).Token, in)
	if err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageAddVehicle, nav.Params{})
	}
	if msg == "" {
		msg = "Le véhicule a été ajouté au catalogue."
	}
	h.flash(c, "Véhicule ajouté", msg, modal.TypeSuccess)
	return h.navigate(c, nav.PageManageVehicles, nav.Params{})
}

// EditVehiclePage renders the listing form prefilled with the vehicle.
func (h *Handlers) EditVehiclePage(c web.Context) error {
	id := c.Param("id")
	vehicle, err := h.api.GetVehicle(c, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return web.ErrNotFound("Ce véhicule n'existe plus.")
		}
		return err
	}
	d := views.VehicleFormData{
		ID: vehicle.ID,
		Vehicle: backend.VehicleInput{
			Name:            vehicle.Name,
			Type:            vehicle.Type,
			Brand:           vehicle.Brand,
			Model:           vehicle.Model,
			Year:            vehicle.Year,
			Mileage:         vehicle.Mileage,
			Fuel:            vehicle.Fuel,
			Price:           vehicle.Price,
			DailyRate:       vehicle.DailyRate,
			Passengers:      vehicle.Passengers,
			Description:     vehicle.Description,
			Images:          vehicle.Images,
			CoverImageIndex: vehicle.CoverImageIndex,
			Specs:           vehicle.Specs,
		},
	}
	return h.render(c, nav.PageEditVehicle, nav.Params{ID: vehicle.ID}, views.VehicleForm(d))
}

// EditVehicleSubmit updates the listing. Without new uploads the
// existing images are kept.
func (h *Handlers) EditVehicleSubmit(c web.Context) error {
	id := c.Param("id")
	in, err := h.vehicleInput(c)
	if err != nil {
		return err
	}
	if len(in.Images) == 0 {
		current, err := h.api.GetVehicle(c, id)
		if err != nil {
			return err
		}
		in.Images = current.Images
	}
	msg, err := h.api.UpdateVehicle(c, sessionFrom(c).Token, id, in)
	if err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageEditVehicle, nav.Params{ID: id})
	}
	if msg == "" {
		msg = "Le véhicule a été mis à jour."
	}
	h.flash(c, "Véhicule mis à jour", msg, modal.TypeSuccess)
	return h.navigate(c, nav.PageManageVehicles, nav.Params{})
}

// vehicleInput reads the multipart listing form, encoding uploaded
// images as data URLs the way the API stores them.
func (h *Handlers) vehicleInput(c web.Context) (backend.VehicleInput, error) {
	// Parse and read through the same request value: Request() may hand
	// out a shallow copy, and the multipart body can only be read once.
	r := c.Request()
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return backend.VehicleInput{}, web.ErrBadRequest("formulaire invalide")
	}

	in := backend.VehicleInput{
		Name:            r.FormValue("name"),
		Type:            r.FormValue("type"),
		Brand:           r.FormValue("brand"),
		Model:           r.FormValue("model"),
		Year:            atoi(r.FormValue("year")),
		Mileage:         atoi(r.FormValue("mileage")),
		Fuel:            r.FormValue("fuel"),
		Price:           atof(r.FormValue("price")),
		DailyRate:       atof(r.FormValue("dailyRate")),
		Passengers:      atoi(r.FormValue("passengers")),
		Description:     r.FormValue("description"),
		CoverImageIndex: atoi(r.FormValue("coverImageIndex")),
	}
	if in.Name == "" || in.Brand == "" || in.Model == "" {
		return backend.VehicleInput{}, web.ErrBadRequest("le nom, la marque et le modèle sont obligatoires")
	}
	if in.Type != "rent" {
		in.Type = "buy"
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			dataURL, err := encodeImage(header)
			if err != nil {
				return backend.VehicleInput{}, web.ErrBadRequest("image illisible : " + header.Filename)
			}
			in.Images = append(in.Images, dataURL)
		}
	}
	if in.CoverImageIndex >= len(in.Images) {
		in.CoverImageIndex = 0
	}
	return in, nil
}

// encodeImage turns an uploaded file into a base64 data URL.
func encodeImage(header *multipart.FileHeader) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxImageSize))
	if err != nil {
		return "", err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(raw)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// ManageUsers lists every account.
func (h *Handlers) ManageUsers(c web.Context) error {
	users, _, err := h.api.ListUsers(c, sessionFrom(c).Token)
	if err != nil {
		return err
	}
	return h.render(c, nav.PageManageUsers, nav.Params{}, views.ManageUsers(users))
}

// ToggleUserActive blocks or unblocks an account.
func (h *Handlers) ToggleUserActive(c web.Context) error {
	id := c.FormValue("id")
	if id == "" {
		return web.ErrBadRequest("identifiant d'utilisateur manquant")
	}
	s := sessionFrom(c)
	user, err := h.api.GetUser(c, s.Token, id)
	if err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageManageUsers, nav.Params{})
	}

	active := !user.IsActive
	if err := h.api.UpdateUser(c, s.Token, id, backend.UserUpdate{IsActive: &active}); err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageManageUsers, nav.Params{})
	}

	msg := "Le compte de " + user.Name + " a été bloqué."
	if active {
		msg = "Le compte de " + user.Name + " a été débloqué."
	}
	h.flash(c, "Utilisateur mis à jour", msg, modal.TypeSuccess)
	return h.navigate(c, nav.PageManageUsers, nav.Params{})
}

// DeleteUser removes an account. Admins cannot remove themselves.
func (h *Handlers) DeleteUser(c web.Context) error {
	id := c.FormValue("id")
	if id == "" {
		return web.ErrBadRequest("identifiant d'utilisateur manquant")
	}
	s := sessionFrom(c)
	if s.User.ID == id {
		h.flash(c, "Action impossible", "Vous ne pouvez pas supprimer votre propre compte.", modal.TypeWarning)
		return h.navigate(c, nav.PageManageUsers, nav.Params{})
	}
	if err := h.api.DeleteUser(c, s.Token, id); err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageManageUsers, nav.Params{})
	}
	h.flash(c, "Utilisateur supprimé", "Le compte a été supprimé.", modal.TypeSuccess)
	return h.navigate(c, nav.PageManageUsers, nav.Params{})
}

// EditUserPage renders the role form for an account.
func (h *Handlers) EditUserPage(c web.Context) error {
	user, err := h.api.GetUser(c, sessionFrom(c).Token, c.Param("id"))
	if err != nil {
		if backend.IsNotFound(err) {
			return web.ErrNotFound("Cet utilisateur n'existe plus.")
		}
		return err
	}
	return h.render(c, nav.PageEditUser, nav.Params{ID: user.ID}, views.EditUser(*user))
}

// EditUserSubmit updates the account's role.
func (h *Handlers) EditUserSubmit(c web.Context) error {
	id := c.Param("id")
	role := c.FormValue("role")
	if role != "admin" {
		role = "user"
	}
	if err := h.api.UpdateUser(c, sessionFrom(c).Token, id, backend.UserUpdate{Role: &role}); err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageEditUser, nav.Params{ID: id})
	}
	h.flash(c, "Utilisateur mis à jour", "Le rôle a été modifié.", modal.TypeSuccess)
	return h.navigate(c, nav.PageManageUsers, nav.Params{})
}

// ManageReservations lists rentals for administration, optionally
// filtered to one user via the userId query.
func (h *Handlers) ManageReservations(c web.Context) error {
	s := sessionFrom(c)
	forUser := nav.FromURL(c.Request().URL).Params.UserID

	d := views.ManageEntriesData{}
	var err error
	if d.Reservations, err = h.api.MyReservations(c, s.Token, forUser); err != nil {
		return err
	}
	if forUser != "" {
		if user, err := h.api.GetUser(c, s.Token, forUser); err == nil {
			d.ForUserEmail = user.Email
		}
	}
	return h.render(c, nav.PageManageReservations, nav.Params{UserID: forUser},
		views.ManageReservations(d))
}

// SetReservationStatus moves a rental through its lifecycle.
func (h *Handlers) SetReservationStatus(c web.Context) error {
	id, status := c.FormValue("id"), c.FormValue("status")
	if id == "" || status == "" {
		return web.ErrBadRequest("identifiant ou statut manquant")
	}
	if err := h.api.SetReservationStatus(c, sessionFrom(c).Token, id, status); err != nil {
		h.flashErr(c, err)
		return h.redirectBack(c)
	}
	h.flash(c, "Réservation mise à jour", "Le statut a été modifié.", modal.TypeSuccess)
	return h.redirectBack(c)
}

// DeleteReservation removes a rental entry.
func (h *Handlers) DeleteReservation(c web.Context) error {
	id := c.FormValue("id")
	if id == "" {
		return web.ErrBadRequest("identifiant manquant")
	}
	if err := h.api.DeleteReservation(c, sessionFrom(c).Token, id); err != nil {
		h.flashErr(c, err)
		return h.redirectBack(c)
	}
	h.flash(c, "Réservation supprimée", "L'entrée a été supprimée.", modal.TypeSuccess)
	return h.redirectBack(c)
}

// ManageTestDrives lists test drive requests for administration,
// optionally filtered to one user via the userId query.
func (h *Handlers) ManageTestDrives(c web.Context) error {
	s := sessionFrom(c)
	forUser := nav.FromURL(c.Request().URL).Params.UserID

	d := views.ManageEntriesData{}
	var err error
	if d.TestDrives, err = h.api.MyTestDrives(c, s.Token, forUser); err != nil {
		return err
	}
	if forUser != "" {
		if user, err := h.api.GetUser(c, s.Token, forUser); err == nil {
			d.ForUserEmail = user.Email
		}
	}
	return h.render(c, nav.PageManageTestDrives, nav.Params{UserID: forUser},
		views.ManageTestDrives(d))
}

// SetTestDriveStatus moves an appointment through its lifecycle.
func (h *Handlers) SetTestDriveStatus(c web.Context) error {
	id, status := c.FormValue("id"), c.FormValue("status")
	if id == "" || status == "" {
		return web.ErrBadRequest("identifiant ou statut manquant")
	}
	if err := h.api.SetTestDriveStatus(c, sessionFrom(c).Token, id, status); err != nil {
		h.flashErr(c, err)
		return h.redirectBack(c)
	}
	h.flash(c, "Essai mis à jour", "Le statut a été modifié.", modal.TypeSuccess)
	return h.redirectBack(c)
}

// DeleteTestDrive removes an appointment entry.
func (h *Handlers) DeleteTestDrive(c web.Context) error {
	id := c.FormValue("id")
	if id == "" {
		return web.ErrBadRequest("identifiant manquant")
	}
	if err := h.api.DeleteTestDrive(c, sessionFrom(c).Token, id); err != nil {
		h.flashErr(c, err)
		return h.redirectBack(c)
	}
	h.flash(c, "Essai supprimé", "L'entrée a été supprimée.", modal.TypeSuccess)
	return h.redirectBack(c)
}
