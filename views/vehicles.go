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

// CardOptions tell a vehicle card which state toggles to show.
type CardOptions struct {
	InCompare  bool
	IsFavorite bool
	LoggedIn   bool
}

// VehicleData is the vehicle payload carried in the reservation and test
// drive URLs, mirroring what those pages need before they refetch by id.
func VehicleData(v backend.Vehicle) map[string]any {
	return map[string]any{
		"_id":       v.ID,
		"name":      v.Name,
		"dailyRate": v.DailyRate,
	}
}

func vehiclePrice(v backend.Vehicle) string {
	if v.Type == "rent" {
		return i18n.DailyRate(i18n.DefaultLang, v.DailyRate)
	}
	return i18n.Price(i18n.DefaultLang, v.Price)
}

// VehicleCard is one listing tile: cover image, name, key specs, price
// and the detail, compare and favorite actions.
func VehicleCard(v backend.Vehicle, opts CardOptions) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		detailsURL := nav.URLFor(nav.PageVehicleDetails, nav.Params{ID: v.ID, Type: v.Type})
		if err := write(w, `<article class="card">
<a href="%s">`, attr(detailsURL)); err != nil {
			return err
		}
		if cover := v.CoverImage(); cover != "" {
			if err := write(w, `<img src="%s" alt="%s">`, attr(cover), attr(v.Name)); err != nil {
				return err
			}
		} else {
			if err := write(w, `<img alt="">`); err != nil {
				return err
			}
		}
		if err := write(w, `</a>
<div class="card-body">
<h3><a href="%s">%s</a></h3>
<p class="specs">%d · %s · %s</p>
<p class="price">%s</p>
<div class="actions">
<a class="btn btn-primary" href="%s">Voir les détails</a>
`, attr(detailsURL), esc(v.Name), v.Year, esc(v.Fuel), esc(i18n.Mileage(i18n.DefaultLang, v.Mileage)), esc(vehiclePrice(v)), attr(detailsURL)); err != nil {
			return err
		}
		if opts.InCompare {
			if err := write(w, `<form method="post" action="/comparison/remove"><input type="hidden" name="id" value="%s"><button type="submit" class="btn">Retirer du comparateur</button></form>`, attr(v.ID)); err != nil {
				return err
			}
		} else {
			if err := write(w, `<form method="post" action="/comparison/add"><input type="hidden" name="id" value="%s"><button type="submit" class="btn">Comparer</button></form>`, attr(v.ID)); err != nil {
				return err
			}
		}
		if opts.LoggedIn {
			label := "Ajouter aux favoris"
			if opts.IsFavorite {
				label = "Retirer des favoris"
			}
			if err := write(w, `<form method="post" action="/favorites/toggle"><input type="hidden" name="vehicleId" value="%s"><button type="submit" class="btn">%s</button></form>`, attr(v.ID), label); err != nil {
				return err
			}
		}
		return write(w, "</div>\n</div>\n</article>\n")
	})
}

// ListingFilters is the search form state echoed back into the inputs.
type ListingFilters struct {
	Brand    string
	Model    string
	MinPrice string
	MaxPrice string
	MinYear  string
	MaxYear  string
}

// ListingData is everything a buy or rent listing page shows.
type ListingData struct {
	Heading   string
	Intro     string
	Action    string // form target, /buy or /rent
	Filters   ListingFilters
	Vehicles  []backend.Vehicle
	CardOpts  func(backend.Vehicle) CardOptions
	PriceName string // filter label, "Prix" or "Tarif journalier"
}

// Listing renders the buy and rent catalogue pages.
func Listing(d ListingData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<h1>%s</h1>
<p>%s</p>
<form class="filters" method="get" action="%s">
<label>Marque<input type="text" name="brand" value="%s"></label>
<label>Modèle<input type="text" name="model" value="%s"></label>
<label>%s min<input type="number" name="minPrice" value="%s" min="0"></label>
<label>%s max<input type="number" name="maxPrice" value="%s" min="0"></label>
<label>Année min<input type="number" name="minYear" value="%s"></label>
<label>Année max<input type="number" name="maxYear" value="%s"></label>
<button type="submit" class="btn btn-primary">Rechercher</button>
<a class="btn" href="%s">Réinitialiser</a>
</form>
`, esc(d.Heading), esc(d.Intro), attr(d.Action),
			attr(d.Filters.Brand), attr(d.Filters.Model),
			esc(d.PriceName), attr(d.Filters.MinPrice),
			esc(d.PriceName), attr(d.Filters.MaxPrice),
			attr(d.Filters.MinYear), attr(d.Filters.MaxYear),
			attr(d.Action)); err != nil {
			return err
		}
		if len(d.Vehicles) == 0 {
			return write(w, `<p class="empty">Aucun véhicule ne correspond à votre recherche.</p>`)
		}
		if err := write(w, `<div class="grid">`); err != nil {
			return err
		}
		for _, v := range d.Vehicles {
			opts := CardOptions{}
			if d.CardOpts != nil {
				opts = d.CardOpts(v)
			}
			if err := VehicleCard(v, opts).Render(ctx, w); err != nil {
				return err
			}
		}
		return write(w, "</div>\n")
	})
}

// DetailsData is the vehicle details page payload.
type DetailsData struct {
	Vehicle    backend.Vehicle
	InCompare  bool
	IsFavorite bool
	LoggedIn   bool
}

// Details renders a single vehicle with its gallery, specs and the
// reserve or test drive call to action.
func Details(d DetailsData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		v := d.Vehicle
		if err := write(w, `<article class="vehicle-details">
<h1>%s</h1>
`, esc(v.Name)); err != nil {
			return err
		}
		if cover := v.CoverImage(); cover != "" {
			if err := write(w, `<img class="detail-cover" src="%s" alt="%s">`, attr(cover), attr(v.Name)); err != nil {
				return err
			}
		}
		if len(v.Images) > 1 {
			if err := write(w, `<div class="gallery">`); err != nil {
				return err
			}
			for _, img := range v.Images {
				if err := write(w, `<img src="%s" alt="">`, attr(img)); err != nil {
					return err
				}
			}
			if err := write(w, `</div>`); err != nil {
				return err
			}
		}
		if err := write(w, `<p class="price">%s</p>
<table class="listing">
<tr><th>Marque</th><td>%s</td></tr>
<tr><th>Modèle</th><td>%s</td></tr>
<tr><th>Année</th><td>%d</td></tr>
<tr><th>Kilométrage</th><td>%s</td></tr>
<tr><th>Carburant</th><td>%s</td></tr>
`, esc(vehiclePrice(v)), esc(v.Brand), esc(v.Model), v.Year,
			esc(i18n.Mileage(i18n.DefaultLang, v.Mileage)), esc(v.Fuel)); err != nil {
			return err
		}
		if v.Passengers > 0 {
			if err := write(w, `<tr><th>Passagers</th><td>%d</td></tr>`, v.Passengers); err != nil {
				return err
			}
		}
		for key, val := range v.Specs {
			if err := write(w, `<tr><th>%s</th><td>%s</td></tr>`, esc(key), esc(val)); err != nil {
				return err
			}
		}
		if err := write(w, "</table>\n"); err != nil {
			return err
		}
		if v.Description != "" {
			if err := write(w, `<p class="description">%s</p>`, esc(v.Description)); err != nil {
				return err
			}
		}

		if err := write(w, `<div class="actions">`); err != nil {
			return err
		}
		if v.Type == "rent" {
			reserveURL := nav.URLFor(nav.PageReservationForm, nav.Params{VehicleData: VehicleData(v)})
			if err := write(w, `<a class="btn btn-primary" href="%s">Réserver ce véhicule</a>`, attr(reserveURL)); err != nil {
				return err
			}
		} else {
			testDriveURL := nav.URLFor(nav.PageTestDriveScheduling, nav.Params{VehicleData: VehicleData(v)})
			if err := write(w, `<a class="btn btn-primary" href="%s">Planifier un essai</a>`, attr(testDriveURL)); err != nil {
				return err
			}
		}
		if d.LoggedIn {
			label := "Ajouter aux favoris"
			if d.IsFavorite {
				label = "Retirer des favoris"
			}
			if err := write(w, `<form method="post" action="/favorites/toggle"><input type="hidden" name="vehicleId" value="%s"><button type="submit" class="btn">%s</button></form>`, attr(v.ID), label); err != nil {
				return err
			}
		}
		if !d.InCompare {
			if err := write(w, `<form method="post" action="/comparison/add"><input type="hidden" name="id" value="%s"><button type="submit" class="btn">Comparer</button></form>`, attr(v.ID)); err != nil {
				return err
			}
		}
		return write(w, "</div>\n</article>\n")
	})
}

// Comparison renders up to four vehicles side by side.
func Comparison(vehicles []backend.Vehicle) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<h1>Comparateur de Véhicules</h1>`); err != nil {
			return err
		}
		if len(vehicles) == 0 {
			return write(w, `<p class="empty">Votre comparateur est vide. Ajoutez des véhicules depuis les pages Acheter ou Louer.</p>`)
		}
		if err := write(w, `<form method="post" action="/comparison/clear"><button type="submit" class="btn">Tout retirer</button></form>
<table class="listing"><tr><th></th>`); err != nil {
			return err
		}
		for _, v := range vehicles {
			detailsURL := nav.URLFor(nav.PageVehicleDetails, nav.Params{ID: v.ID})
			if err := write(w, `<th><a href="%s">%s</a></th>`, attr(detailsURL), esc(v.Name)); err != nil {
				return err
			}
		}
		rows := []struct {
			label string
			cell  func(backend.Vehicle) string
		}{
			{"Prix", vehiclePrice},
			{"Marque", func(v backend.Vehicle) string { return v.Brand }},
			{"Modèle", func(v backend.Vehicle) string { return v.Model }},
			{"Année", func(v backend.Vehicle) string { return strconv.Itoa(v.Year) }},
			{"Kilométrage", func(v backend.Vehicle) string { return i18n.Mileage(i18n.DefaultLang, v.Mileage) }},
			{"Carburant", func(v backend.Vehicle) string { return v.Fuel }},
		}
		if err := write(w, "</tr>\n"); err != nil {
			return err
		}
		for _, row := range rows {
			if err := write(w, `<tr><th>%s</th>`, esc(row.label)); err != nil {
				return err
			}
			for _, v := range vehicles {
				if err := write(w, `<td>%s</td>`, esc(row.cell(v))); err != nil {
					return err
				}
			}
			if err := write(w, "</tr>\n"); err != nil {
				return err
			}
		}
		if err := write(w, `<tr><th></th>`); err != nil {
			return err
		}
		for _, v := range vehicles {
			if err := write(w, `<td><form method="post" action="/comparison/remove"><input type="hidden" name="id" value="%s"><button type="submit" class="btn">Retirer</button></form></td>`, attr(v.ID)); err != nil {
				return err
			}
		}
		return write(w, "</tr>\n</table>\n")
	})
}
