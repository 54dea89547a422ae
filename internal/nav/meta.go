package nav

// Meta holds the document metadata for a rendered page: the <title> text
// and the path used to build the canonical link tag.
type Meta struct {
	Title         string
	CanonicalPath string
}

const defaultTitle = "Vroum-Auto - Votre Partenaire Auto de Confiance"

var titles = map[Page]string{
	PageHome:                  defaultTitle,
	PageBuy:                   "Acheter un Véhicule - Vroum-Auto",
	PageRent:                  "Louer un Véhicule - Vroum-Auto",
	PageAbout:                 "À Propos de Nous - Vroum-Auto",
	PageContact:               "Contactez-nous - Vroum-Auto",
	PageAuth:                  "Connexion / Inscription - Vroum-Auto",
	PageTerms:                 "Termes et Conditions - Vroum-Auto",
	PagePrivacy:               "Politique de Confidentialité - Vroum-Auto",
	PageVehicleDetails:        "Détails du Véhicule - Vroum-Auto",
	PageReservationForm:       "Demande de Réservation - Vroum-Auto",
	PageForgotPassword:        "Mot de passe oublié - Vroum-Auto",
	PageDashboard:             "Tableau de Bord Admin - Vroum-Auto",
	PageResetPassword:         "Réinitialiser le mot de passe - Vroum-Auto",
	PageManageVehicles:        "Gérer les Véhicules - Vroum-Auto",
	PageAddVehicle:            "Ajouter un Véhicule - Vroum-Auto",
	PageEditVehicle:           "Modifier un Véhicule - Vroum-Auto",
	PageManageUsers:           "Gérer les Utilisateurs - Vroum-Auto",
	PageEditUser:              "Modifier un Utilisateur - Vroum-Auto",
	PageMyReservations:        "Mes Réservations - Vroum-Auto",
	PageTestDriveScheduling:   "Planifier un Essai - Vroum-Auto",
	PageTestDriveConfirmation: "Confirmation d'Essai - Vroum-Auto",
	PageFavorites:             "Mes Favoris - Vroum-Auto",
	PageComparison:            "Comparaison de Véhicules - Vroum-Auto",
	PageManageReservations:    "Gérer les Réservations - Vroum-Auto",
	PageManageTestDrives:      "Gérer les Essais - Vroum-Auto",
	PageProfile:               "Mon Profil - Vroum-Auto",
}

// MetaFor returns the title and canonical path for a route. It never
// fails: an unknown page falls back to the root path and default title.
// Routes with a path segment (vehicle details, edits) interpolate it into
// the canonical path; query parameters are never part of the canonical.
func MetaFor(r Route) Meta {
	title, ok := titles[r.Name]
	if !ok {
		return Meta{Title: defaultTitle, CanonicalPath: "/"}
	}

	spec := byPage[r.Name]
	path := spec.path
	if spec.hasSeg {
		if seg := getField(r.Params, spec.segment); seg != "" {
			path += "/" + seg
		}
	}
	// The my-reservations canonical intentionally omits the user segment:
	// per-user URLs should not compete in search indexes.
	if r.Name == PageMyReservations {
		path = spec.path
	}

	return Meta{Title: title, CanonicalPath: path}
}
