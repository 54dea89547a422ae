package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/internal/nav"
)

func href(page nav.Page) string {
	return nav.URLFor(page, nav.Params{})
}

// Layout wraps body in the document shell: head with title and canonical
// link, the navigation header, the footer and the pending modal. hx-boost
// turns every navigation into a partial swap with a pushed URL.
func Layout(p Page, body templ.Component) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		return writeAll(
			func() error {
				return write(w, `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="canonical" href="%s">
<link rel="stylesheet" href="/static/styles.css">
<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>
</head>
<body hx-boost="true">
`, esc(p.Title), attr(p.BaseURL+p.CanonicalPath))
			},
			func() error { return header(p).Render(ctx, w) },
			func() error { return write(w, `<main id="page" class="container">`) },
			func() error { return body.Render(ctx, w) },
			func() error { return write(w, `</main>`) },
			func() error { return footer().Render(ctx, w) },
			func() error {
				if p.Modal == nil {
					return nil
				}
				return Dialog(*p.Modal).Render(ctx, w)
			},
			func() error { return write(w, "</body>\n</html>\n") },
		)
	})
}

func header(p Page) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<header class="site-header"><nav>
<a class="brand" href="%s">Vroum-Auto</a>
<ul class="nav-main">
<li><a href="%s">Accueil</a></li>
<li><a href="%s">Acheter</a></li>
<li><a href="%s">Louer</a></li>
<li><a href="%s">À propos</a></li>
<li><a href="%s">Contact</a></li>
</ul>
<ul class="nav-user">
`, href(nav.PageHome), href(nav.PageHome), href(nav.PageBuy), href(nav.PageRent), href(nav.PageAbout), href(nav.PageContact)); err != nil {
			return err
		}
		if err := write(w, `<li><a href="%s">Comparateur (%d)</a></li>`, href(nav.PageComparison), p.CompareCount); err != nil {
			return err
		}
		if p.LoggedIn() {
			if err := write(w, `<li><a href="%s">Mes Favoris</a></li>
<li><a href="%s">%s</a></li>
`, href(nav.PageFavorites), href(nav.PageProfile), esc(p.User.Name)); err != nil {
				return err
			}
			if p.IsAdmin() {
				if err := write(w, `<li><a href="%s">Tableau de Bord</a></li>`, href(nav.PageDashboard)); err != nil {
					return err
				}
			}
			if err := write(w, `<li><form method="post" action="/logout"><button type="submit" class="link">Déconnexion</button></form></li>`); err != nil {
				return err
			}
		} else {
			if err := write(w, `<li><a href="%s">Connexion</a></li>`, href(nav.PageAuth)); err != nil {
				return err
			}
		}
		return write(w, "</ul>\n</nav>\n</header>\n")
	})
}

func footer() templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		return write(w, `<footer class="site-footer">
<p>© Vroum-Auto. Votre partenaire auto de confiance.</p>
<ul>
<li><a href="%s">Termes et Conditions</a></li>
<li><a href="%s">Politique de Confidentialité</a></li>
</ul>
</footer>
`, href(nav.PageTerms), href(nav.PagePrivacy))
	})
}

// Dialog renders the pending modal. The close button removes the overlay
// client-side; a ConfirmURL adds a posting confirm button next to it.
func Dialog(m modal.Modal) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<div class="modal-overlay" id="modal">
<div class="modal modal-%s" role="alertdialog" aria-labelledby="modal-title">
<h2 id="modal-title">%s</h2>
<p>%s</p>
<div class="modal-actions">
`, attr(m.Type), esc(m.Title), esc(m.Message)); err != nil {
			return err
		}
		if m.ConfirmURL != "" {
			if err := write(w, `<form method="post" action="%s"><button type="submit" class="btn btn-danger">Confirmer</button></form>
<button type="button" class="btn" onclick="document.getElementById('modal').remove()">Annuler</button>
`, attr(m.ConfirmURL)); err != nil {
				return err
			}
		} else {
			if err := write(w, `<button type="button" class="btn btn-primary" onclick="document.getElementById('modal').remove()">Fermer</button>
`); err != nil {
				return err
			}
		}
		return write(w, "</div>\n</div>\n</div>\n")
	})
}
