// Package nav owns the mapping between browser URLs and pages. One table
// drives both directions: FromURL derives the page for an incoming
// request (including htmx history restores after back/forward), and
// URLFor builds the canonical URL a navigation should push. Keeping a
// single table is what prevents the two directions from drifting apart.
package nav

// Page identifies one view of the application. The set is closed: every
// URL resolves to exactly one of these, with PageHome as the fallback.
type Page string

const (
	PageHome                  Page = "home"
	PageBuy                   Page = "buy"
	PageRent                  Page = "rent"
	PageAbout                 Page = "about"
	PageContact               Page = "contact"
	PageAuth                  Page = "auth"
	PageTerms                 Page = "terms-and-conditions"
	PagePrivacy               Page = "privacy-policy"
	PageVehicleDetails        Page = "vehicle-details"
	PageReservationForm       Page = "reservation-form"
	PageForgotPassword        Page = "forgot-password"
	PageResetPassword         Page = "reset-password"
	PageDashboard             Page = "dashboard"
	PageManageVehicles        Page = "manage-vehicles"
	PageAddVehicle            Page = "add-vehicle"
	PageEditVehicle           Page = "edit-vehicle"
	PageManageUsers           Page = "manage-users"
	PageEditUser              Page = "edit-user"
	PageMyReservations        Page = "my-reservations"
	PageManageReservations    Page = "manage-reservations"
	PageManageTestDrives      Page = "manage-test-drives"
	PageTestDriveScheduling   Page = "test-drive-scheduling"
	PageTestDriveConfirmation Page = "test-drive-confirmation"
	PageFavorites             Page = "favorites"
	PageComparison            Page = "comparison"
	PageProfile               Page = "profile"
)

// Known reports whether p is a member of the page set.
func Known(p Page) bool {
	_, ok := byPage[p]
	return ok
}

// Params carries the values a page receives from the URL. Each route
// declares which fields it reads and writes; undeclared fields never
// survive a URL round trip.
type Params struct {
	// VehicleData is an arbitrary JSON object round-tripped through the
	// query string by the reservation and test drive forms.
	VehicleData map[string]any

	ID        string
	UserID    string
	UserEmail string
	Type      string
	Token     string
}

// IsZero reports whether no parameter is set.
func (p Params) IsZero() bool {
	return p.ID == "" && p.UserID == "" && p.UserEmail == "" &&
		p.Type == "" && p.Token == "" && p.VehicleData == nil
}

// Route is the resolved navigation state: which page to render and the
// parameters it receives. It is always constructed fresh, never mutated.
type Route struct {
	Params Params
	Name   Page
}
