package handlers

import (
	"context"
	"strconv"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/compare"
	"github.com/vroumauto/webapp/internal/i18n"
	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/internal/nav"
	"github.com/vroumauto/webapp/internal/web"
	"github.com/vroumauto/webapp/pkg/cache"
	"github.com/vroumauto/webapp/views"
)

const featuredLimit = 8

// FeaturedTTL is how long the home page listing cache lives; the cron
// warmer refreshes it in the background.
const featuredTTL = 0 // cache default

func (h *Handlers) featuredVehicles(ctx context.Context, vehicleType string) []backend.Vehicle {
	vehicles, err := cache.GetOrFetch(ctx, h.featured, "featured:"+vehicleType, featuredTTL,
		func(ctx context.Context) ([]backend.Vehicle, error) {
			list, _, err := h.api.ListVehicles(ctx, backend.VehicleFilter{
				Type:  vehicleType,
				Limit: featuredLimit,
				Sort:  "-createdAt",
			})
			return list, err
		})
	if err != nil {
		h.log.WarnContext(ctx, "featured vehicles unavailable", "type", vehicleType, "error", err)
		return nil
	}
	return vehicles
}

// WarmFeatured refreshes the home page listing cache out of band, so
// the first visitor after an expiry never waits on the API.
func (h *Handlers) WarmFeatured(ctx context.Context) {
	for _, t := range []string{"buy", "rent"} {
		if err := h.featured.Delete(ctx, "featured:"+t); err != nil {
			h.log.WarnContext(ctx, "drop featured cache", "type", t, "error", err)
		}
		h.featuredVehicles(ctx, t)
	}
}

// Home renders the landing page with the freshest listings per segment.
func (h *Handlers) Home(c web.Context) error {
	return h.render(c, nav.PageHome, nav.Params{}, views.Home(views.HomeData{
		FeaturedSale:   h.featuredVehicles(c, "buy"),
		FeaturedRental: h.featuredVehicles(c, "rent"),
		CardOpts:       h.cardOpts(c),
	}))
}

func (h *Handlers) listingFilters(c web.Context) (views.ListingFilters, backend.VehicleFilter) {
	f := views.ListingFilters{
		Brand:    c.Query("brand"),
		Model:    c.Query("model"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
		MinYear:  c.Query("minYear"),
		MaxYear:  c.Query("maxYear"),
	}
	return f, backend.VehicleFilter{
		Brand:    f.Brand,
		Model:    f.Model,
		MinPrice: atoi(f.MinPrice),
		MaxPrice: atoi(f.MaxPrice),
		MinYear:  atoi(f.MinYear),
		MaxYear:  atoi(f.MaxYear),
	}
}

func (h *Handlers) listing(c web.Context, page nav.Page, vehicleType, heading, intro, priceName string) error {
	formFilters, apiFilter := h.listingFilters(c)
	apiFilter.Type = vehicleType

	vehicles, _, err := h.api.ListVehicles(c, apiFilter)
	if err != nil {
		return err
	}
	return h.render(c, page, nav.Params{}, views.Listing(views.ListingData{
		Heading:   heading,
		Intro:     intro,
		Action:    nav.URLFor(page, nav.Params{}),
		Filters:   formFilters,
		Vehicles:  vehicles,
		CardOpts:  h.cardOpts(c),
		PriceName: priceName,
	}))
}

// BuyVehicles renders the sale catalogue.
func (h *Handlers) BuyVehicles(c web.Context) error {
	return h.listing(c, nav.PageBuy, "buy",
		"Acheter un Véhicule",
		"Trouvez le véhicule qui vous correspond parmi notre sélection inspectée et garantie.",
		"Prix")
}

// RentVehicles renders the rental catalogue.
func (h *Handlers) RentVehicles(c web.Context) error {
	return h.listing(c, nav.PageRent, "rent",
		"Louer un Véhicule",
		"Des véhicules récents et entretenus, pour un week-end ou pour un mois.",
		"Tarif")
}

// VehicleDetails renders one listing.
func (h *Handlers) VehicleDetails(c web.Context) error {
	id := c.Param("id")
	vehicle, err := h.api.GetVehicle(c, id)
	if err != nil {
		if backend.IsNotFound(err) {
			return web.ErrNotFound("Ce véhicule n'existe plus.")
		}
		return err
	}
	s := sessionFrom(c)
	return h.render(c, nav.PageVehicleDetails, nav.Params{ID: id, Type: vehicle.Type}, views.Details(views.DetailsData{
		Vehicle:    *vehicle,
		InCompare:  h.compare.Contains(c.Request(), id),
		IsFavorite: s.LoggedIn() && contains(s.User.Favorites, id),
		LoggedIn:   s.LoggedIn(),
	}))
}

// About, Terms and Privacy serve the editorial pages.
func (h *Handlers) About(c web.Context) error   { return h.prosePage(c, nav.PageAbout, "about") }
func (h *Handlers) Terms(c web.Context) error   { return h.prosePage(c, nav.PageTerms, "terms") }
func (h *Handlers) Privacy(c web.Context) error { return h.prosePage(c, nav.PagePrivacy, "privacy") }

func (h *Handlers) prosePage(c web.Context, page nav.Page, slug string) error {
	html, err := h.content.HTML(slug)
	if err != nil {
		return err
	}
	return h.render(c, page, nav.Params{}, views.Prose(html))
}

// ContactPage renders the contact form.
func (h *Handlers) ContactPage(c web.Context) error {
	return h.render(c, nav.PageContact, nav.Params{}, views.Contact(views.ContactData{}))
}

// ContactSubmit forwards the form to the API and confirms with a modal.
func (h *Handlers) ContactSubmit(c web.Context) error {
	msg := backend.ContactMessage{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Subject: c.FormValue("subject"),
		Message: c.FormValue("message"),
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		h.flash(c, "Erreur", "Veuillez remplir tous les champs.", modal.TypeError)
		return h.navigate(c, nav.PageContact, nav.Params{})
	}
	confirmation, err := h.api.Contact(c, msg)
	if err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageContact, nav.Params{})
	}
	if confirmation == "" {
		confirmation = "Votre message a bien été envoyé. Nous revenons vers vous rapidement."
	}
	h.flash(c, "Message envoyé", confirmation, modal.TypeSuccess)
	return h.navigate(c, nav.PageContact, nav.Params{})
}

// ComparisonPage renders the queued vehicles side by side, dropping ids
// the API no longer knows.
func (h *Handlers) ComparisonPage(c web.Context) error {
	ids := h.compare.IDs(c.Request())
	vehicles := make([]backend.Vehicle, 0, len(ids))
	for _, id := range ids {
		v, err := h.api.GetVehicle(c, id)
		if err != nil {
			if backend.IsNotFound(err) {
				h.compare.Remove(c.ResponseWriter(), c.Request(), id)
				continue
			}
			return err
		}
		vehicles = append(vehicles, *v)
	}
	return h.render(c, nav.PageComparison, nav.Params{}, views.Comparison(vehicles))
}

// ComparisonAdd queues a vehicle, bounded at the list capacity.
func (h *Handlers) ComparisonAdd(c web.Context) error {
	id := c.FormValue("id")
	if id == "" {
		return web.ErrBadRequest("Identifiant de véhicule manquant.")
	}
	if err := h.compare.Add(c.ResponseWriter(), c.Request(), id); err != nil {
		h.flash(c, "Limite de Comparaison",
			h.i18n.T(i18n.DefaultLang, "msg.compare_full", "max", strconv.Itoa(compare.Max)),
			modal.TypeWarning)
		return h.redirectBack(c)
	}
	h.flash(c, "Comparaison", "Véhicule ajouté à la comparaison.", modal.TypeSuccess)
	return h.redirectBack(c)
}

// ComparisonRemove drops a vehicle from the queue.
func (h *Handlers) ComparisonRemove(c web.Context) error {
	h.compare.Remove(c.ResponseWriter(), c.Request(), c.FormValue("id"))
	h.flash(c, "Comparaison", "Véhicule retiré de la comparaison.", modal.TypeInfo)
	return h.redirectBack(c)
}

// ComparisonClear empties the queue.
func (h *Handlers) ComparisonClear(c web.Context) error {
	h.compare.Clear(c.ResponseWriter())
	return h.navigate(c, nav.PageComparison, nav.Params{})
}
