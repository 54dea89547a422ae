package backend

// User is an account as the API stores it. Identifiers are Mongo object
// ids serialized under `_id`.
type User struct {
	ID        string   `json:"_id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	IsActive  bool     `json:"isActive"`
	Favorites []string `json:"favorites,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == "admin" }

// Vehicle is a marketplace listing. Type is "buy" or "rent"; Price
// applies to sales and DailyRate to rentals. Images are data URLs.
type Vehicle struct {
	ID              string            `json:"_id"`
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	Brand           string            `json:"brand"`
	Model           string            `json:"model"`
	Year            int               `json:"year"`
	Mileage         int               `json:"mileage"`
	Fuel            string            `json:"fuel"`
	Price           float64           `json:"price,omitempty"`
	DailyRate       float64           `json:"dailyRate,omitempty"`
	Passengers      int               `json:"passengers,omitempty"`
	Description     string            `json:"description,omitempty"`
	Images          []string          `json:"images,omitempty"`
	CoverImageIndex int               `json:"coverImageIndex"`
	Specs           map[string]string `json:"specs,omitempty"`
	CreatedAt       string            `json:"createdAt,omitempty"`
}

// CoverImage returns the configured cover image, or the first image when
// the index is out of range, or "" when the vehicle has no images.
func (v *Vehicle) CoverImage() string {
	if len(v.Images) == 0 {
		return ""
	}
	if v.CoverImageIndex >= 0 && v.CoverImageIndex < len(v.Images) {
		return v.Images[v.CoverImageIndex]
	}
	return v.Images[0]
}

// VehicleInput is the payload for creating or updating a listing.
type VehicleInput struct {
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	Brand           string            `json:"brand"`
	Model           string            `json:"model"`
	Year            int               `json:"year"`
	Mileage         int               `json:"mileage"`
	Fuel            string            `json:"fuel"`
	Price           float64           `json:"price,omitempty"`
	DailyRate       float64           `json:"dailyRate,omitempty"`
	Passengers      int               `json:"passengers,omitempty"`
	Description     string            `json:"description,omitempty"`
	Images          []string          `json:"images,omitempty"`
	CoverImageIndex int               `json:"coverImageIndex"`
	Specs           map[string]string `json:"specs,omitempty"`
}

// Reservation is a rental booking. Vehicle is populated by the API on
// reads; statuses are pending, confirmed, cancelled or completed.
type Reservation struct {
	ID         string   `json:"_id"`
	Vehicle    *Vehicle `json:"vehicle"`
	FullName   string   `json:"fullName"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Message    string   `json:"message,omitempty"`
	Status     string   `json:"status"`
	TotalPrice float64  `json:"totalPrice,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
}

// TestDrive is a test drive appointment request.
type TestDrive struct {
	ID            string   `json:"_id"`
	Vehicle       *Vehicle `json:"vehicle"`
	FullName      string   `json:"fullName"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	TestDriveDate string   `json:"testDriveDate"`
	TestDriveTime string   `json:"testDriveTime"`
	Message       string   `json:"message,omitempty"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// StatPoint is one bucket of an aggregated statistic, e.g. vehicles added
// per month or reservations per status.
type StatPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
