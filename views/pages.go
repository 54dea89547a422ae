package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/i18n"
	"github.com/vroumauto/webapp/internal/nav"
)

// Prose renders sanitized editorial HTML (about, terms, privacy).
func Prose(html string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<div class="prose">`); err != nil {
			return err
		}
		if err := templ.Raw(html).Render(ctx, w); err != nil {
			return err
		}
		return write(w, `</div>`)
	})
}

// ErrorPage renders a failed request: status, message and a way home.
func ErrorPage(code int, message string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		return write(w, `<div class="empty">
<h1>Erreur %d</h1>
<p>%s</p>
<a class="btn btn-primary" href="%s">Retour à l'accueil</a>
</div>
`, code, esc(message), attr(href(nav.PageHome)))
	})
}

func statusBadge(status string) string {
	labels := map[string]string{
		"pending":   "En attente",
		"confirmed": "Confirmée",
		"cancelled": "Annulée",
		"completed": "Terminée",
	}
	label, ok := labels[status]
	if !ok {
		label = status
	}
	return `<span class="badge badge-` + attr(status) + `">` + esc(label) + `</span>`
}

// Favorites renders the signed-in user's favorite vehicles.
func Favorites(vehicles []backend.Vehicle, cardOpts func(backend.Vehicle) CardOptions) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<h1>Mes Favoris</h1>`); err != nil {
			return err
		}
		if len(vehicles) == 0 {
			return write(w, `<p class="empty">Vous n'avez pas encore de favoris. Parcourez nos véhicules et ajoutez ceux qui vous plaisent.</p>`)
		}
		if err := write(w, `<div class="grid">`); err != nil {
			return err
		}
		for _, v := range vehicles {
			opts := CardOptions{IsFavorite: true, LoggedIn: true}
			if cardOpts != nil {
				opts = cardOpts(v)
			}
			if err := VehicleCard(v, opts).Render(ctx, w); err != nil {
				return err
			}
		}
		return write(w, `</div>`)
	})
}

// ProfileData is the account page payload.
type ProfileData struct {
	User         backend.User
	Reservations []backend.Reservation
	TestDrives   []backend.TestDrive
	Favorites    []backend.Vehicle
}

// Profile renders the account overview: identity, recent activity and
// favorite vehicles.
func Profile(d ProfileData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<h1>Mon Profil</h1>
<table class="listing">
<tr><th>Nom</th><td>%s</td></tr>
<tr><th>Adresse e-mail</th><td>%s</td></tr>
</table>
<p><a class="btn" href="%s">Toutes mes réservations</a> <a class="btn" href="%s">Mes favoris</a></p>
`, esc(d.User.Name), esc(d.User.Email),
			attr(nav.URLFor(nav.PageMyReservations, nav.Params{})), attr(href(nav.PageFavorites))); err != nil {
			return err
		}
		if len(d.Reservations) > 0 {
			if err := write(w, `<h2>Dernières locations</h2><table class="listing"><tr><th>Véhicule</th><th>Du</th><th>Au</th><th>Statut</th></tr>`); err != nil {
				return err
			}
			for _, r := range d.Reservations {
				name := ""
				if r.Vehicle != nil {
					name = r.Vehicle.Name
				}
				if err := write(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
					esc(name), esc(i18n.Date(i18n.DefaultLang, r.StartDate)), esc(i18n.Date(i18n.DefaultLang, r.EndDate)), statusBadge(r.Status)); err != nil {
					return err
				}
			}
			if err := write(w, "</table>\n"); err != nil {
				return err
			}
		}
		if len(d.TestDrives) > 0 {
			if err := write(w, `<h2>Derniers essais</h2><table class="listing"><tr><th>Véhicule</th><th>Date</th><th>Heure</th><th>Statut</th></tr>`); err != nil {
				return err
			}
			for _, td := range d.TestDrives {
				name := ""
				if td.Vehicle != nil {
					name = td.Vehicle.Name
				}
				if err := write(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
					esc(name), esc(i18n.Date(i18n.DefaultLang, td.TestDriveDate)), esc(td.TestDriveTime), statusBadge(td.Status)); err != nil {
					return err
				}
			}
			if err := write(w, "</table>\n"); err != nil {
				return err
			}
		}
		if len(d.Favorites) > 0 {
			if err := write(w, `<h2>Mes favoris</h2><div class="grid">`); err != nil {
				return err
			}
			for _, v := range d.Favorites {
				if err := VehicleCard(v, CardOptions{IsFavorite: true, LoggedIn: true}).Render(ctx, w); err != nil {
					return err
				}
			}
			if err := write(w, "</div>\n"); err != nil {
				return err
			}
		}
		return nil
	})
}
