package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/vroumauto/webapp/internal/nav"
)

// AuthData pre-fills the combined login/register page.
type AuthData struct {
	// Mode is "login" or "register"; it picks the visible tab.
	Mode  string
	Email string
	Name  string
}

// Auth renders the login and registration forms.
func Auth(d AuthData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		loginClass, registerClass := "active", ""
		if d.Mode == "register" {
			loginClass, registerClass = "", "active"
		}
		if err := write(w, `<h1>Connexion / Inscription</h1>
<div class="tabs">
<a class="%s" href="%s">Connexion</a>
<a class="%s" href="%s?mode=register">Inscription</a>
</div>
`, loginClass, attr(href(nav.PageAuth)), registerClass, attr(href(nav.PageAuth))); err != nil {
			return err
		}
		if d.Mode == "register" {
			return write(w, `<form class="stacked" method="post" action="/auth/register">
<label>Nom<input type="text" name="name" value="%s" required></label>
<label>Adresse e-mail<input type="email" name="email" value="%s" required></label>
<label>Mot de passe<input type="password" name="password" required minlength="6"></label>
<label>Confirmer le mot de passe<input type="password" name="passwordConfirm" required minlength="6"></label>
<button type="submit" class="btn btn-primary">Créer mon compte</button>
</form>
`, attr(d.Name), attr(d.Email))
		}
		return write(w, `<form class="stacked" method="post" action="/auth/login">
<label>Adresse e-mail<input type="email" name="email" value="%s" required></label>
<label>Mot de passe<input type="password" name="password" required></label>
<button type="submit" class="btn btn-primary">Se connecter</button>
<p><a href="%s">Mot de passe oublié ?</a></p>
</form>
`, attr(d.Email), attr(href(nav.PageForgotPassword)))
	})
}

// ForgotPassword renders the reset request form.
func ForgotPassword() templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		return write(w, `<h1>Mot de passe oublié</h1>
<p>Saisissez votre adresse e-mail et nous vous enverrons un lien de réinitialisation.</p>
<form class="stacked" method="post" action="/forgot-password">
<label>Adresse e-mail<input type="email" name="email" required></label>
<button type="submit" class="btn btn-primary">Envoyer le lien</button>
</form>
`)
	})
}

// ResetPassword renders the new-password form for the emailed token.
func ResetPassword(token string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		return write(w, `<h1>Réinitialiser le mot de passe</h1>
<form class="stacked" method="post" action="/reset-password">
<input type="hidden" name="token" value="%s">
<label>Nouveau mot de passe<input type="password" name="password" required minlength="6"></label>
<label>Confirmer le mot de passe<input type="password" name="passwordConfirm" required minlength="6"></label>
<button type="submit" class="btn btn-primary">Réinitialiser</button>
</form>
`, attr(token))
	})
}

// Contact renders the public contact form, echoing prior input back.
type ContactData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func Contact(d ContactData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		return write(w, `<h1>Contactez-nous</h1>
<p>Une question sur un véhicule, une réservation ou un essai ? Écrivez-nous.</p>
<form class="stacked" method="post" action="/contact">
<label>Nom<input type="text" name="name" value="%s" required></label>
<label>Adresse e-mail<input type="email" name="email" value="%s" required></label>
<label>Sujet<input type="text" name="subject" value="%s" required></label>
<label>Message<textarea name="message" rows="6" required>%s</textarea></label>
<button type="submit" class="btn btn-primary">Envoyer</button>
</form>
`, attr(d.Name), attr(d.Email), attr(d.Subject), esc(d.Message))
	})
}
