package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/i18n"
	"github.com/vroumauto/webapp/internal/nav"
)

// DashboardData is the admin dashboard payload.
type DashboardData struct {
	TotalUsers       int
	TotalVehicles    int
	VehicleAdditions []backend.StatPoint
	ReservationStats []backend.StatPoint
	TestDriveStats   []backend.StatPoint
}

// barChart renders stat points as proportional CSS bars.
func barChart(points []backend.StatPoint) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if len(points) == 0 {
			return write(w, `<p class="empty">Aucune donnée.</p>`)
		}
		max := points[0].Value
		for _, p := range points {
			if p.Value > max {
				max = p.Value
			}
		}
		if max == 0 {
			max = 1
		}
		if err := write(w, `<div class="bar-chart">`); err != nil {
			return err
		}
		for _, p := range points {
			height := int(p.Value / max * 140)
			if p.Value > 0 && height < 4 {
				height = 4
			}
			if err := write(w, `<div><div class="bar" style="height:%dpx" title="%s : %g"></div><div class="bar-label">%s<br>%g</div></div>`,
				height, attr(p.Name), p.Value, esc(p.Name), p.Value); err != nil {
				return err
			}
		}
		return write(w, "</div>\n")
	})
}

// Dashboard renders the admin overview: counters, activity charts and
// links to the management pages.
func Dashboard(d DashboardData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<h1>Tableau de Bord</h1>
<div class="stats">
<div class="stat-card"><div class="value">%d</div>Utilisateurs</div>
<div class="stat-card"><div class="value">%d</div>Véhicules</div>
</div>
<p>
<a class="btn" href="%s">Gérer les véhicules</a>
<a class="btn" href="%s">Gérer les utilisateurs</a>
<a class="btn" href="%s">Gérer les réservations</a>
<a class="btn" href="%s">Gérer les essais</a>
</p>
`, d.TotalUsers, d.TotalVehicles,
			attr(href(nav.PageManageVehicles)), attr(href(nav.PageManageUsers)),
			attr(href(nav.PageManageReservations)), attr(href(nav.PageManageTestDrives))); err != nil {
			return err
		}
		charts := []struct {
			title  string
			points []backend.StatPoint
		}{
			{"Véhicules ajoutés", d.VehicleAdditions},
			{"Réservations par statut", d.ReservationStats},
			{"Essais par statut", d.TestDriveStats},
		}
		for _, c := range charts {
			if err := write(w, `<h2>%s</h2>`, esc(c.title)); err != nil {
				return err
			}
			if err := barChart(c.points).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// ManageVehicles renders the vehicle administration table.
func ManageVehicles(vehicles []backend.Vehicle) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<h1>Gérer les Véhicules</h1>
<p><a class="btn btn-primary" href="%s">Ajouter un véhicule</a></p>
`, attr(href(nav.PageAddVehicle))); err != nil {
			return err
		}
		if len(vehicles) == 0 {
			return write(w, `<p class="empty">Aucun véhicule enregistré.</p>`)
		}
		if err := write(w, `<table class="listing"><tr><th>Nom</th><th>Type</th><th>Marque</th><th>Année</th><th>Prix</th><th></th></tr>`); err != nil {
			return err
		}
		for _, v := range vehicles {
			typeLabel := "Vente"
			if v.Type == "rent" {
				typeLabel = "Location"
			}
			editURL := nav.URLFor(nav.PageEditVehicle, nav.Params{ID: v.ID})
			if err := write(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%s</td>
<td><a class="btn" href="%s">Modifier</a>
<form method="post" action="/manage-vehicles/delete"><input type="hidden" name="id" value="%s"><button type="submit" class="btn btn-danger">Supprimer</button></form></td></tr>
`, esc(v.Name), typeLabel, esc(v.Brand), v.Year, esc(vehiclePrice(v)), attr(editURL), attr(v.ID)); err != nil {
				return err
			}
		}
		return write(w, "</table>\n")
	})
}

// VehicleFormData is the add/edit vehicle page payload. A zero ID means
// creation.
type VehicleFormData struct {
	ID      string
	Vehicle backend.VehicleInput
}

// VehicleForm renders the create/update listing form. Images are uploaded
// as files and stored by the API as data URLs.
func VehicleForm(d VehicleFormData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		heading, action := "Ajouter un Véhicule", "/add-vehicle"
		if d.ID != "" {
			heading = "Modifier le Véhicule"
			action = "/edit-vehicle/" + d.ID
		}
		v := d.Vehicle
		buySel, rentSel := ` selected`, ``
		if v.Type == "rent" {
			buySel, rentSel = ``, ` selected`
		}
		return write(w, `<h1>%s</h1>
<form class="stacked" method="post" action="%s" enctype="multipart/form-data">
<label>Nom<input type="text" name="name" value="%s" required></label>
<label>Type<select name="type">
<option value="buy"%s>Vente</option>
<option value="rent"%s>Location</option>
</select></label>
<label>Marque<input type="text" name="brand" value="%s" required></label>
<label>Modèle<input type="text" name="model" value="%s" required></label>
<label>Année<input type="number" name="year" value="%s" required></label>
<label>Kilométrage<input type="number" name="mileage" value="%s" required></label>
<label>Carburant<input type="text" name="fuel" value="%s" required></label>
<label>Prix de vente (€)<input type="number" name="price" value="%s" step="0.01"></label>
<label>Tarif journalier (€)<input type="number" name="dailyRate" value="%s" step="0.01"></label>
<label>Passagers<input type="number" name="passengers" value="%s"></label>
<label>Description<textarea name="description" rows="5">%s</textarea></label>
<label>Images<input type="file" name="images" accept="image/*" multiple></label>
<label>Index de l'image de couverture<input type="number" name="coverImageIndex" value="%d" min="0"></label>
<button type="submit" class="btn btn-primary">Enregistrer</button>
</form>
`, esc(heading), attr(action), attr(v.Name), buySel, rentSel,
			attr(v.Brand), attr(v.Model),
			numOrEmpty(v.Year), numOrEmpty(v.Mileage), attr(v.Fuel),
			floatOrEmpty(v.Price), floatOrEmpty(v.DailyRate), numOrEmpty(v.Passengers),
			esc(v.Description), v.CoverImageIndex)
	})
}

func numOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func floatOrEmpty(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ManageUsers renders the account administration table.
func ManageUsers(users []backend.User) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<h1>Gérer les Utilisateurs</h1>`); err != nil {
			return err
		}
		if len(users) == 0 {
			return write(w, `<p class="empty">Aucun utilisateur.</p>`)
		}
		if err := write(w, `<table class="listing"><tr><th>Nom</th><th>E-mail</th><th>Rôle</th><th>Statut</th><th></th></tr>`); err != nil {
			return err
		}
		for _, u := range users {
			status := `<span class="badge badge-confirmed">Actif</span>`
			toggleLabel := "Bloquer"
			if !u.IsActive {
				status = `<span class="badge badge-cancelled">Bloqué</span>`
				toggleLabel = "Débloquer"
			}
			editURL := nav.URLFor(nav.PageEditUser, nav.Params{ID: u.ID})
			if err := write(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td>
<td><a class="btn" href="%s">Modifier</a>
<form method="post" action="/manage-users/toggle-active"><input type="hidden" name="id" value="%s"><button type="submit" class="btn">%s</button></form>
<form method="post" action="/manage-users/delete"><input type="hidden" name="id" value="%s"><button type="submit" class="btn btn-danger">Supprimer</button></form></td></tr>
`, esc(u.Name), esc(u.Email), esc(u.Role), status, attr(editURL), attr(u.ID), toggleLabel, attr(u.ID)); err != nil {
				return err
			}
		}
		return write(w, "</table>\n")
	})
}

// EditUser renders the role form plus shortcuts to the user's activity.
func EditUser(u backend.User) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		userSel, adminSel := ` selected`, ``
		if u.Role == "admin" {
			userSel, adminSel = ``, ` selected`
		}
		reservationsURL := nav.URLFor(nav.PageMyReservations, nav.Params{UserID: u.ID, UserEmail: u.Email})
		return write(w, `<h1>Modifier l'Utilisateur</h1>
<table class="listing">
<tr><th>Nom</th><td>%s</td></tr>
<tr><th>E-mail</th><td>%s</td></tr>
</table>
<form class="stacked" method="post" action="/edit-user/%s">
<label>Rôle<select name="role">
<option value="user"%s>Utilisateur</option>
<option value="admin"%s>Administrateur</option>
</select></label>
<button type="submit" class="btn btn-primary">Enregistrer</button>
</form>
<p><a class="btn" href="%s">Voir ses réservations</a></p>
`, esc(u.Name), esc(u.Email), attr(u.ID), userSel, adminSel, attr(reservationsURL))
	})
}

// ManageEntriesData is shared by the reservation and test drive
// administration pages.
type ManageEntriesData struct {
	Reservations []backend.Reservation
	TestDrives   []backend.TestDrive
	// ForUserEmail labels the page when filtered to one user.
	ForUserEmail string
}

var entryStatuses = []string{"pending", "confirmed", "cancelled", "completed"}

func statusSelect(action, id, current string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<form method="post" action="%s"><input type="hidden" name="id" value="%s"><select name="status">`, attr(action), attr(id)); err != nil {
			return err
		}
		labels := map[string]string{"pending": "En attente", "confirmed": "Confirmée", "cancelled": "Annulée", "completed": "Terminée"}
		for _, s := range entryStatuses {
			sel := ""
			if s == current {
				sel = " selected"
			}
			if err := write(w, `<option value="%s"%s>%s</option>`, s, sel, esc(labels[s])); err != nil {
				return err
			}
		}
		return write(w, `</select><button type="submit" class="btn">Mettre à jour</button></form>`)
	})
}

// ManageReservations renders the rental administration table.
func ManageReservations(d ManageEntriesData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		heading := "Gérer les Réservations"
		if d.ForUserEmail != "" {
			heading += " de " + d.ForUserEmail
		}
		if err := write(w, `<h1>%s</h1>`, esc(heading)); err != nil {
			return err
		}
		if len(d.Reservations) == 0 {
			return write(w, `<p class="empty">Aucune réservation.</p>`)
		}
		if err := write(w, `<table class="listing"><tr><th>Véhicule</th><th>Client</th><th>Du</th><th>Au</th><th>Statut</th><th></th></tr>`); err != nil {
			return err
		}
		for _, r := range d.Reservations {
			name := ""
			if r.Vehicle != nil {
				name = r.Vehicle.Name
			}
			if err := write(w, `<tr><td>%s</td><td>%s<br>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
				esc(name), esc(r.FullName), esc(r.Email),
				esc(i18n.Date(i18n.DefaultLang, r.StartDate)), esc(i18n.Date(i18n.DefaultLang, r.EndDate)), statusBadge(r.Status)); err != nil {
				return err
			}
			if err := statusSelect("/manage-reservations/status", r.ID, r.Status).Render(ctx, w); err != nil {
				return err
			}
			if err := write(w, `<form method="post" action="/manage-reservations/delete"><input type="hidden" name="id" value="%s"><button type="submit" class="btn btn-danger">Supprimer</button></form></td></tr>
`, attr(r.ID)); err != nil {
				return err
			}
		}
		return write(w, "</table>\n")
	})
}

// ManageTestDrives renders the test drive administration table.
func ManageTestDrives(d ManageEntriesData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		heading := "Gérer les Essais"
		if d.ForUserEmail != "" {
			heading += " de " + d.ForUserEmail
		}
		if err := write(w, `<h1>%s</h1>`, esc(heading)); err != nil {
			return err
		}
		if len(d.TestDrives) == 0 {
			return write(w, `<p class="empty">Aucune demande d'essai.</p>`)
		}
		if err := write(w, `<table class="listing"><tr><th>Véhicule</th><th>Client</th><th>Date</th><th>Heure</th><th>Statut</th><th></th></tr>`); err != nil {
			return err
		}
		for _, td := range d.TestDrives {
			name := ""
			if td.Vehicle != nil {
				name = td.Vehicle.Name
			}
			if err := write(w, `<tr><td>%s</td><td>%s<br>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
				esc(name), esc(td.FullName), esc(td.Email),
				esc(i18n.Date(i18n.DefaultLang, td.TestDriveDate)), esc(td.TestDriveTime), statusBadge(td.Status)); err != nil {
				return err
			}
			if err := statusSelect("/manage-test-drives/status", td.ID, td.Status).Render(ctx, w); err != nil {
				return err
			}
			if err := write(w, `<form method="post" action="/manage-test-drives/delete"><input type="hidden" name="id" value="%s"><button type="submit" class="btn btn-danger">Supprimer</button></form></td></tr>
`, attr(td.ID)); err != nil {
				return err
			}
		}
		return write(w, "</table>\n")
	})
}
