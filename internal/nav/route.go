package nav

import (
	"encoding/json"
	"net/url"
	"strings"
)

// field names a Params member that a route carries in its URL.
type field int

const (
	fieldID field = iota
	fieldUserID
	fieldUserEmail
	fieldType
	fieldToken
	fieldVehicleData
)

// queryName is the wire name of each query-carried field.
var queryName = map[field]string{
	fieldUserID:      "userId",
	fieldUserEmail:   "userEmail",
	fieldType:        "type",
	fieldToken:       "token",
	fieldVehicleData: "vehicleData",
}

// routeSpec declares one page's URL shape: its path (a prefix when a
// trailing segment is declared, exact otherwise), the field riding the
// trailing path segment, and the query fields it carries.
type routeSpec struct {
	path    string
	query   []field
	page    Page
	segment field
	hasSeg  bool
}

// table is the single source of truth for URL mapping, ordered so that
// prefix routes are matched before exact ones.
var table = []routeSpec{
	{page: PageVehicleDetails, path: "/vehicle-details", segment: fieldID, hasSeg: true, query: []field{fieldType}},
	{page: PageEditVehicle, path: "/edit-vehicle", segment: fieldID, hasSeg: true},
	{page: PageEditUser, path: "/edit-user", segment: fieldID, hasSeg: true},
	{page: PageMyReservations, path: "/my-reservations", segment: fieldUserID, hasSeg: true, query: []field{fieldUserEmail}},
	{page: PageHome, path: "/"},
	{page: PageBuy, path: "/buy-vehicles"},
	{page: PageRent, path: "/rent-vehicles"},
	{page: PageAbout, path: "/about"},
	{page: PageContact, path: "/contact"},
	{page: PageAuth, path: "/auth"},
	{page: PageTerms, path: "/terms-and-conditions"},
	{page: PagePrivacy, path: "/privacy-policy"},
	{page: PageReservationForm, path: "/reservation-form", query: []field{fieldVehicleData}},
	{page: PageForgotPassword, path: "/forgot-password"},
	{page: PageResetPassword, path: "/reset-password", query: []field{fieldToken}},
	{page: PageDashboard, path: "/dashboard"},
	{page: PageManageVehicles, path: "/manage-vehicles"},
	{page: PageAddVehicle, path: "/add-vehicle"},
	{page: PageManageUsers, path: "/manage-users"},
	{page: PageTestDriveScheduling, path: "/test-drive-scheduling", query: []field{fieldVehicleData}},
	{page: PageTestDriveConfirmation, path: "/test-drive-confirmation"},
	{page: PageFavorites, path: "/favorites"},
	{page: PageComparison, path: "/comparison"},
	{page: PageManageReservations, path: "/manage-reservations", query: []field{fieldUserID}},
	{page: PageManageTestDrives, path: "/manage-test-drives", query: []field{fieldUserID}},
	{page: PageProfile, path: "/profile"},
}

var byPage = func() map[Page]routeSpec {
	m := make(map[Page]routeSpec, len(table))
	for _, spec := range table {
		m[spec.page] = spec
	}
	return m
}()

// FromURL derives the route for a URL. It is total and pure: any path,
// including garbage, resolves to a defined route, with the home page as
// the fallback. Back/forward restores and fresh loads both go through
// here, so the result depends on nothing but the URL itself.
func FromURL(u *url.URL) Route {
	// The escaped form keeps percent-encoded slashes inside a segment
	// from splitting it in two.
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	query := u.Query()

	for _, spec := range table {
		if spec.hasSeg {
			prefix := spec.path + "/"
			if !strings.HasPrefix(path, prefix) {
				continue
			}
			seg := path[strings.LastIndex(path, "/")+1:]
			if dec, err := url.PathUnescape(seg); err == nil {
				seg = dec
			}
			params := Params{}
			setField(&params, spec.segment, seg)
			applyQuery(&params, spec.query, query)
			return Route{Name: spec.page, Params: params}
		}
		if path == spec.path {
			params := Params{}
			applyQuery(&params, spec.query, query)
			return Route{Name: spec.page, Params: params}
		}
	}

	return Route{Name: PageHome}
}

// URLFor builds the canonical URL for a page. Unknown pages degrade to
// the root path. Only the fields the route declares are serialized, so a
// caller cannot smuggle unrelated state into the address bar.
func URLFor(page Page, params Params) string {
	spec, ok := byPage[page]
	if !ok {
		return "/"
	}

	path := spec.path
	if spec.hasSeg {
		// The segment is optional on some pages (my-reservations without
		// a user); an empty one must not leave a trailing slash behind.
		if seg := getField(params, spec.segment); seg != "" {
			path += "/" + url.PathEscape(seg)
		}
	}

	values := url.Values{}
	for _, f := range spec.query {
		if f == fieldVehicleData {
			if params.VehicleData != nil {
				if data, err := json.Marshal(params.VehicleData); err == nil {
					values.Set(queryName[f], string(data))
				}
			}
			continue
		}
		if v := getField(params, f); v != "" {
			values.Set(queryName[f], v)
		}
	}

	if encoded := values.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

func applyQuery(params *Params, fields []field, query url.Values) {
	for _, f := range fields {
		if f == fieldVehicleData {
			if raw := query.Get(queryName[f]); raw != "" {
				params.VehicleData = decodeVehicleData(raw)
			}
			continue
		}
		setField(params, f, query.Get(queryName[f]))
	}
}

// decodeVehicleData parses the JSON object carried by the vehicleData
// query parameter. A malformed value yields an empty object rather than
// an error: a mangled link should still land the visitor on the page.
func decodeVehicleData(raw string) map[string]any {
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil || data == nil {
		return map[string]any{}
	}
	return data
}

func setField(p *Params, f field, v string) {
	switch f {
	case fieldID:
		p.ID = v
	case fieldUserID:
		p.UserID = v
	case fieldUserEmail:
		p.UserEmail = v
	case fieldType:
		p.Type = v
	case fieldToken:
		p.Token = v
	case fieldVehicleData:
		// handled by applyQuery
	}
}

func getField(p Params, f field) string {
	switch f {
	case fieldID:
		return p.ID
	case fieldUserID:
		return p.UserID
	case fieldUserEmail:
		return p.UserEmail
	case fieldType:
		return p.Type
	case fieldToken:
		return p.Token
	default:
		return ""
	}
}
