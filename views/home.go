package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/nav"
)

// HomeData is the landing page payload: a handful of featured vehicles
// per segment.
type HomeData struct {
	FeaturedSale   []backend.Vehicle
	FeaturedRental []backend.Vehicle
	CardOpts       func(backend.Vehicle) CardOptions
}

// Home renders the landing page.
func Home(d HomeData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<section class="hero">
<h1>Vroum-Auto</h1>
<p>Votre partenaire auto de confiance, pour acheter ou louer en toute sérénité.</p>
<div class="actions">
<a class="btn" href="%s">Acheter un véhicule</a>
<a class="btn" href="%s">Louer un véhicule</a>
</div>
</section>
`, attr(href(nav.PageBuy)), attr(href(nav.PageRent))); err != nil {
			return err
		}
		sections := []struct {
			title    string
			more     string
			vehicles []backend.Vehicle
		}{
			{"À vendre en ce moment", href(nav.PageBuy), d.FeaturedSale},
			{"À louer en ce moment", href(nav.PageRent), d.FeaturedRental},
		}
		for _, s := range sections {
			if len(s.vehicles) == 0 {
				continue
			}
			if err := write(w, `<section>
<h2>%s</h2>
<div class="grid">`, esc(s.title)); err != nil {
				return err
			}
			for _, v := range s.vehicles {
				opts := CardOptions{}
				if d.CardOpts != nil {
					opts = d.CardOpts(v)
				}
				if err := VehicleCard(v, opts).Render(ctx, w); err != nil {
					return err
				}
			}
			if err := write(w, `</div>
<p><a class="btn" href="%s">Voir tout</a></p>
</section>
`, attr(s.more)); err != nil {
				return err
			}
		}
		return nil
	})
}
