package api

import (
	"github.com/fleetdeck/fleetdeck/internal/diff"
)

// Kind identifies an entity family. Endpoint paths, payload keys and
// searchable columns are resolved through the kinds table instead of
// branching on strings.
type Kind int

const (
	KindCompany Kind = iota
	KindUser
	KindVehicle
)

type kindInfo struct {
	path         string // collection path under /api
	collection   string // JSON key holding the list items
	singular     string // JSON key holding a single entity
	label        string // human-facing name
	searchFields []string
}

var kinds = map[Kind]kindInfo{
	KindCompany: {
		path:         "/api/companies",
		collection:   "companies",
		singular:     "company",
		label:        "Company",
		searchFields: []string{"name", "email", "phone"},
	},
	KindUser: {
		path:         "/api/users",
		collection:   "users",
		singular:     "user",
		label:        "User",
		searchFields: []string{"username", "email", "phone"},
	},
	KindVehicle: {
		path:         "/api/vehicles",
		collection:   "vehicles",
		singular:     "vehicle",
		label:        "Vehicle",
		searchFields: []string{"plate", "brand", "model"},
	},
}

// Kinds returns every entity family in display order.
func Kinds() []Kind { return []Kind{KindCompany, KindUser, KindVehicle} }

// Path returns the collection path under the API base.
func (k Kind) Path() string { return kinds[k].path }

// Label returns the human-facing entity name.
func (k Kind) Label() string { return kinds[k].label }

// SearchFields returns the searchable columns, default first.
func (k Kind) SearchFields() []string { return kinds[k].searchFields }

// CollectionKey returns the JSON key holding the items of a list response.
func (k Kind) CollectionKey() string { return kinds[k].collection }

// SingularKey returns the JSON key holding the entity of a single-record
// response.
func (k Kind) SingularKey() string { return kinds[k].singular }

// FilterKeys returns the structured filter keys every list view offers.
func (k Kind) FilterKeys() []string { return []string{"status"} }

// StatusValues enumerates the status filter's options.
func StatusValues() []string { return []string{"ACTIVE", "INACTIVE"} }

// Paginator is the server-reported page metadata, authoritative after every
// successful list fetch.
type Paginator struct {
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
}

// Company is a managed fleet operator.
type Company struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Website string `json:"website"`
	Long    string `json:"long"`
	Lat     string `json:"lat"`
	Status  string `json:"status"`
	Avatar  string `json:"avatar"`
}

// User is an operator account under a company.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	Avatar    string `json:"avatar"`
}

// Vehicle is a fleet vehicle.
type Vehicle struct {
	ID        string `json:"id"`
	Plate     string `json:"plate"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      string `json:"year"`
	CompanyID string `json:"company_id"`
	Status    string `json:"status"`
	Avatar    string `json:"avatar"`
}

// CompanyList is the read-list response for companies.
type CompanyList struct {
	Status    string    `json:"status"`
	Companies []Company `json:"companies"`
	Paginator Paginator `json:"paginator"`
}

// UserList is the read-list response for users.
type UserList struct {
	Status    string    `json:"status"`
	Users     []User    `json:"users"`
	Paginator Paginator `json:"paginator"`
}

// VehicleList is the read-list response for vehicles.
type VehicleList struct {
	Status    string    `json:"status"`
	Vehicles  []Vehicle `json:"vehicles"`
	Paginator Paginator `json:"paginator"`
}

type companyEnvelope struct {
	Status  string  `json:"status"`
	Company Company `json:"company"`
}

type userEnvelope struct {
	Status string `json:"status"`
	User   User   `json:"user"`
}

type vehicleEnvelope struct {
	Status  string  `json:"status"`
	Vehicle Vehicle `json:"vehicle"`
}

// MutationResult is the response shape for create/update/delete.
type MutationResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Snapshot returns the company's editable fields for diff tracking.
func (c Company) Snapshot() diff.Snapshot {
	return diff.Snapshot{
		"name":    c.Name,
		"phone":   c.Phone,
		"email":   c.Email,
		"address": c.Address,
		"website": c.Website,
		"long":    c.Long,
		"lat":     c.Lat,
		"status":  c.Status,
		"avatar":  c.Avatar,
	}
}

// Snapshot returns the user's editable fields for diff tracking.
func (u User) Snapshot() diff.Snapshot {
	return diff.Snapshot{
		"username":   u.Username,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"phone":      u.Phone,
		"status":     u.Status,
		"avatar":     u.Avatar,
	}
}

// Snapshot returns the vehicle's editable fields for diff tracking.
func (v Vehicle) Snapshot() diff.Snapshot {
	return diff.Snapshot{
		"plate":      v.Plate,
		"brand":      v.Brand,
		"model":      v.Model,
		"year":       v.Year,
		"company_id": v.CompanyID,
		"status":     v.Status,
		"avatar":     v.Avatar,
	}
}

// Summary is the uniform card-level projection the list view renders.
type Summary struct {
	ID     string
	Title  string
	Email  string
	Phone  string
	Status string
	Avatar string
}

// Summary projects a company onto the list card shape.
func (c Company) Summary() Summary {
	return Summary{ID: c.ID, Title: c.Name, Email: c.Email, Phone: c.Phone, Status: c.Status, Avatar: c.Avatar}
}

// Summary projects a user onto the list card shape.
func (u User) Summary() Summary {
	return Summary{ID: u.ID, Title: u.Username, Email: u.Email, Phone: u.Phone, Status: u.Status, Avatar: u.Avatar}
}

// Summary projects a vehicle onto the list card shape.
func (v Vehicle) Summary() Summary {
	return Summary{ID: v.ID, Title: v.Plate, Email: v.Brand + " " + v.Model, Phone: v.Year, Status: v.Status, Avatar: v.Avatar}
}
