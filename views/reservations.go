package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/i18n"
	"github.com/vroumauto/webapp/internal/nav"
)

// ReservationFormData is the rental booking page payload.
type ReservationFormData struct {
	Vehicle  backend.Vehicle
	FullName string
	Email    string
	Phone    string
}

// ReservationForm renders the rental booking form for a vehicle.
func ReservationForm(d ReservationFormData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		return write(w, `<h1>Réserver : %s</h1>
<p class="price">%s</p>
<form class="stacked" method="post" action="/reservation-form/%s">
<label>Nom complet<input type="text" name="fullName" value="%s" required></label>
<label>Adresse e-mail<input type="email" name="email" value="%s" required></label>
<label>Téléphone<input type="tel" name="phone" value="%s" required></label>
<label>Date de début<input type="date" name="startDate" required></label>
<label>Date de fin<input type="date" name="endDate" required></label>
<label>Message (facultatif)<textarea name="message" rows="4"></textarea></label>
<button type="submit" class="btn btn-primary">Envoyer la demande</button>
</form>
`, esc(d.Vehicle.Name), esc(i18n.DailyRate(i18n.DefaultLang, d.Vehicle.DailyRate)),
			attr(d.Vehicle.ID), attr(d.FullName), attr(d.Email), attr(d.Phone))
	})
}

// TestDriveFormData is the test drive scheduling page payload. EntryID is
// set when rescheduling an existing appointment.
type TestDriveFormData struct {
	Vehicle  backend.Vehicle
	EntryID  string
	FullName string
	Email    string
	Phone    string
	Date     string
	Time     string
	Message  string
}

// TestDriveForm renders the scheduling form, for a new appointment or a
// reschedule.
func TestDriveForm(d TestDriveFormData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		heading := "Planifier un essai : " + d.Vehicle.Name
		if d.EntryID != "" {
			heading = "Modifier l'essai : " + d.Vehicle.Name
		}
		return write(w, `<h1>%s</h1>
<form class="stacked" method="post" action="/test-drive-scheduling/%s">
<input type="hidden" name="entryId" value="%s">
<label>Nom complet<input type="text" name="fullName" value="%s" required></label>
<label>Adresse e-mail<input type="email" name="email" value="%s" required></label>
<label>Téléphone<input type="tel" name="phone" value="%s" required></label>
<label>Date de l'essai<input type="date" name="testDriveDate" value="%s" required></label>
<label>Heure de l'essai<input type="time" name="testDriveTime" value="%s" required></label>
<label>Message (facultatif)<textarea name="message" rows="4">%s</textarea></label>
<button type="submit" class="btn btn-primary">Confirmer le rendez-vous</button>
</form>
`, esc(heading), attr(d.Vehicle.ID), attr(d.EntryID),
			attr(d.FullName), attr(d.Email), attr(d.Phone),
			attr(d.Date), attr(d.Time), esc(d.Message))
	})
}

// TestDriveConfirmation renders the post-booking confirmation page. The
// details come from a one-shot flash; a direct visit or reload shows the
// generic message.
func TestDriveConfirmation(vehicleName, date, timeOfDay string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		detail := "Votre demande d'essai a bien été enregistrée."
		if vehicleName != "" {
			detail = "Votre demande d'essai pour <strong>" + esc(vehicleName) + "</strong> le " +
				esc(i18n.Date(i18n.DefaultLang, date)) + " à " + esc(timeOfDay) + " a bien été enregistrée."
		}
		return write(w, `<div class="empty">
<h1>Essai confirmé !</h1>
<p>%s Nos équipes vous contacteront pour confirmer le rendez-vous.</p>
<a class="btn btn-primary" href="%s">Voir mes réservations</a>
</div>
`, detail, attr(nav.URLFor(nav.PageMyReservations, nav.Params{})))
	})
}

// MyReservationsData is the personal reservations page payload.
type MyReservationsData struct {
	// Tab is "rentals" or "testdrives".
	Tab          string
	Reservations []backend.Reservation
	TestDrives   []backend.TestDrive
	// ForUser is set when an admin views another user's entries.
	ForUser string
}

// MyReservations renders the rentals/test-drives tabs with per-entry
// cancel (and reschedule, for test drives) actions.
func MyReservations(d MyReservationsData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		base := nav.URLFor(nav.PageMyReservations, nav.Params{UserID: d.ForUser})
		rentalsClass, drivesClass := "active", ""
		if d.Tab == "testdrives" {
			rentalsClass, drivesClass = "", "active"
		}
		if err := write(w, `<h1>Mes Réservations</h1>
<div class="tabs">
<a class="%s" href="%s?tab=rentals">Locations</a>
<a class="%s" href="%s?tab=testdrives">Essais</a>
</div>
`, rentalsClass, attr(base), drivesClass, attr(base)); err != nil {
			return err
		}

		if d.Tab == "testdrives" {
			if len(d.TestDrives) == 0 {
				return write(w, `<p class="empty">Aucune demande d'essai pour le moment.</p>`)
			}
			if err := write(w, `<table class="listing"><tr><th>Véhicule</th><th>Date</th><th>Heure</th><th>Statut</th><th></th></tr>`); err != nil {
				return err
			}
			for _, td := range d.TestDrives {
				name := ""
				if td.Vehicle != nil {
					name = td.Vehicle.Name
				}
				if err := write(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
					esc(name), esc(i18n.Date(i18n.DefaultLang, td.TestDriveDate)), esc(td.TestDriveTime), statusBadge(td.Status)); err != nil {
					return err
				}
				if td.Status == "pending" || td.Status == "confirmed" {
					if td.Vehicle != nil {
						data := VehicleData(*td.Vehicle)
						data["testDriveId"] = td.ID
						rescheduleURL := nav.URLFor(nav.PageTestDriveScheduling, nav.Params{VehicleData: data})
						if err := write(w, `<a class="btn" href="%s">Modifier</a> `, attr(rescheduleURL)); err != nil {
							return err
						}
					}
					if err := write(w, `<form method="post" action="/my-reservations/cancel"><input type="hidden" name="id" value="%s"><input type="hidden" name="kind" value="testdrive"><button type="submit" class="btn btn-danger">Annuler</button></form>`, attr(td.ID)); err != nil {
						return err
					}
				}
				if err := write(w, "</td></tr>\n"); err != nil {
					return err
				}
			}
			return write(w, "</table>\n")
		}

		if len(d.Reservations) == 0 {
			return write(w, `<p class="empty">Aucune location pour le moment.</p>`)
		}
		if err := write(w, `<table class="listing"><tr><th>Véhicule</th><th>Du</th><th>Au</th><th>Total</th><th>Statut</th><th></th></tr>`); err != nil {
			return err
		}
		for _, r := range d.Reservations {
			name := ""
			if r.Vehicle != nil {
				name = r.Vehicle.Name
			}
			total := ""
			if r.TotalPrice > 0 {
				total = i18n.Price(i18n.DefaultLang, r.TotalPrice)
			}
			if err := write(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
				esc(name), esc(i18n.Date(i18n.DefaultLang, r.StartDate)), esc(i18n.Date(i18n.DefaultLang, r.EndDate)), esc(total), statusBadge(r.Status)); err != nil {
				return err
			}
			if r.Status == "pending" || r.Status == "confirmed" {
				if err := write(w, `<form method="post" action="/my-reservations/cancel"><input type="hidden" name="id" value="%s"><input type="hidden" name="kind" value="rental"><button type="submit" class="btn btn-danger">Annuler</button></form>`, attr(r.ID)); err != nil {
					return err
				}
			}
			if err := write(w, "</td></tr>\n"); err != nil {
				return err
			}
		}
		return write(w, "</table>\n")
	})
}
