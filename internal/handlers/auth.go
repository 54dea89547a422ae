package handlers

import (
	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/internal/nav"
	"github.com/vroumauto/webapp/internal/web"
	"github.com/vroumauto/webapp/views"
)

// AuthPage renders the login/register page. Logged-in visitors are sent
// to their profile.
func (h *Handlers) AuthPage(c web.Context) error {
	if sessionFrom(c).LoggedIn() {
		return h.navigate(c, nav.PageProfile, nav.Params{})
	}
	mode := c.Query("mode")
	if mode != "register" {
		mode = "login"
	}
	return h.render(c, nav.PageAuth, nav.Params{}, views.Auth(views.AuthData{Mode: mode}))
}

// Login establishes the session and lands on the home page.
func (h *Handlers) Login(c web.Context) error {
	creds := backend.Credentials{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if creds.Email == "" || creds.Password == "" {
		h.flash(c, "Erreur", "Veuillez saisir votre e-mail et votre mot de passe.", modal.TypeError)
		return h.navigate(c, nav.PageAuth, nav.Params{})
	}
	user, err := h.sessions.Login(c, c.ResponseWriter(), creds)
	if err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageAuth, nav.Params{})
	}
	h.flash(c, "Connexion réussie", "Bienvenue, "+user.Name+" !", modal.TypeSuccess)
	return h.navigate(c, nav.PageHome, nav.Params{})
}

// RegisterAccount creates the account, then invites the visitor to log in.
func (h *Handlers) RegisterAccount(c web.Context) error {
	reg := backend.Registration{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		h.flash(c, "Erreur", "Veuillez remplir tous les champs.", modal.TypeError)
		return h.navigate(c, nav.PageAuth, nav.Params{})
	}
	if reg.Password != c.FormValue("passwordConfirm") {
		h.flash(c, "Erreur", "Les mots de passe ne correspondent pas.", modal.TypeError)
		return h.navigate(c, nav.PageAuth, nav.Params{})
	}
	msg, err := h.api.Register(c, reg)
	if err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageAuth, nav.Params{})
	}
	if msg == "" {
		msg = "Votre compte a été créé. Vous pouvez maintenant vous connecter."
	}
	h.flash(c, "Inscription réussie", msg, modal.TypeSuccess)
	return h.navigate(c, nav.PageAuth, nav.Params{})
}

// Logout tears the session down. Always succeeds.
func (h *Handlers) Logout(c web.Context) error {
	h.sessions.Logout(c.ResponseWriter(), c.Request())
	h.flash(c, "Déconnexion", "À bientôt sur Vroum-Auto !", modal.TypeInfo)
	return h.navigate(c, nav.PageHome, nav.Params{})
}

// ForgotPasswordPage renders the reset request form.
func (h *Handlers) ForgotPasswordPage(c web.Context) error {
	return h.render(c, nav.PageForgotPassword, nav.Params{}, views.ForgotPassword())
}

// ForgotPasswordSubmit asks the API to send the reset email. The answer
// is identical whether or not the address exists.
func (h *Handlers) ForgotPasswordSubmit(c web.Context) error {
	email := c.FormValue("email")
	if email == "" {
		h.flash(c, "Erreur", "Veuillez saisir votre adresse e-mail.", modal.TypeError)
		return h.navigate(c, nav.PageForgotPassword, nav.Params{})
	}
	msg, err := h.api.ForgotPassword(c, email)
	if err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageForgotPassword, nav.Params{})
	}
	if msg == "" {
		msg = "Si cette adresse existe, un lien de réinitialisation vient de vous être envoyé."
	}
	h.flash(c, "E-mail envoyé", msg, modal.TypeSuccess)
	return h.navigate(c, nav.PageForgotPassword, nav.Params{})
}

// ResetPasswordPage renders the new-password form for the emailed token.
func (h *Handlers) ResetPasswordPage(c web.Context) error {
	token := nav.FromURL(c.Request().URL).Params.Token
	if token == "" {
		h.flash(c, "Lien invalide", "Le lien de réinitialisation est incomplet. Demandez-en un nouveau.", modal.TypeError)
		return h.navigate(c, nav.PageForgotPassword, nav.Params{})
	}
	return h.render(c, nav.PageResetPassword, nav.Params{Token: token}, views.ResetPassword(token))
}

// ResetPasswordSubmit sets the new password and sends the visitor to the
// login page.
func (h *Handlers) ResetPasswordSubmit(c web.Context) error {
	token := c.FormValue("token")
	password := c.FormValue("password")
	if token == "" || password == "" {
		h.flash(c, "Erreur", "Le formulaire est incomplet.", modal.TypeError)
		return h.navigate(c, nav.PageForgotPassword, nav.Params{})
	}
	if password != c.FormValue("passwordConfirm") {
		h.flash(c, "Erreur", "Les mots de passe ne correspondent pas.", modal.TypeError)
		return h.navigate(c, nav.PageResetPassword, nav.Params{Token: token})
	}
	msg, err := h.api.ResetPassword(c, token, password)
	if err != nil {
		h.flashErr(c, err)
		return h.navigate(c, nav.PageResetPassword, nav.Params{Token: token})
	}
	if msg == "" {
		msg = "Votre mot de passe a été réinitialisé. Vous pouvez vous connecter."
	}
	h.flash(c, "Mot de passe réinitialisé", msg, modal.TypeSuccess)
	return h.navigate(c, nav.PageAuth, nav.Params{})
}
