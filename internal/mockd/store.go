// Package mockd is the in-memory stand-in for the fleet-management backend.
// It speaks the same wire contract the console expects, including the error
// envelope and paginator shapes, so the console can be developed and
// demonstrated without a real deployment behind it.
package mockd

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fleetdeck/fleetdeck/internal/api"
)

// Record is one stored entity. Fields are kept as the loose JSON shape so
// list search, sparse patches and unknown-field rejection all work the same
// way for every entity family.
type Record map[string]any

func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Store holds every entity family behind one mutex. The dataset is small by
// construction so list queries scan.
type Store struct {
	mu      sync.Mutex
	records map[api.Kind]map[string]Record
}

// NewStore returns an empty store.
func NewStore() *Store {
	records := make(map[api.Kind]map[string]Record)
	for _, kind := range api.Kinds() {
		records[kind] = make(map[string]Record)
	}
	return &Store{records: records}
}

// Insert adds a record under a fresh id and returns it.
func (s *Store) Insert(kind api.Kind, fields Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := fields.clone()
	record["id"] = uuid.NewString()
	s.records[kind][record["id"].(string)] = record
	return record.clone()
}

// Get returns the record with the given id.
func (s *Store) Get(kind api.Kind, id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[kind][id]
	if !ok {
		return nil, false
	}
	return record.clone(), true
}

// Patch applies the changed fields to an existing record.
func (s *Store) Patch(kind api.Kind, id string, changed Record) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[kind][id]
	if !ok {
		return nil, false
	}
	for k, v := range changed {
		if k == "id" {
			continue
		}
		record[k] = v
	}
	return record.clone(), true
}

// Delete removes a record, reporting whether it existed.
func (s *Store) Delete(kind api.Kind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[kind][id]; !ok {
		return false
	}
	delete(s.records[kind], id)
	return true
}

// EmailTaken reports whether another record of the same kind already uses
// the email address. excludeID skips the record being edited.
func (s *Store) EmailTaken(kind api.Kind, email, excludeID string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, record := range s.records[kind] {
		if id == excludeID {
			continue
		}
		if existing, _ := record["email"].(string); strings.ToLower(existing) == email {
			return true
		}
	}
	return false
}

// ListQuery mirrors the console's list parameters after URL decoding.
type ListQuery struct {
	Page   int
	Size   int
	Search map[string]string // field name -> substring
	Status []string
}

// List returns one page of matching records plus the paginator the page was
// cut from. Records are ordered by id so pages are stable between calls.
func (s *Store) List(kind api.Kind, q ListQuery) ([]Record, api.Paginator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []Record
	for _, record := range s.records[kind] {
		if matches(record, q) {
			matched = append(matched, record.clone())
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return fmt.Sprint(matched[i]["id"]) < fmt.Sprint(matched[j]["id"])
	})

	if q.Size < 1 {
		q.Size = 15
	}
	if q.Page < 1 {
		q.Page = 1
	}
	lastPage := (len(matched) + q.Size - 1) / q.Size
	paginator := api.Paginator{Total: len(matched), CurrentPage: q.Page, LastPage: lastPage}

	start := (q.Page - 1) * q.Size
	if start >= len(matched) {
		return []Record{}, paginator
	}
	end := start + q.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], paginator
}

func matches(record Record, q ListQuery) bool {
	for field, needle := range q.Search {
		value, _ := record[field].(string)
		if !strings.Contains(strings.ToLower(value), strings.ToLower(needle)) {
			return false
		}
	}
	if len(q.Status) > 0 {
		status, _ := record["status"].(string)
		found := false
		for _, want := range q.Status {
			if strings.EqualFold(status, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Seed loads a small believable dataset covering both statuses and all
// three entity families.
func (s *Store) Seed() {
	companies := []Record{
		{"name": "Acme Freight", "phone": "+1 415 0100", "email": "ops@acmefreight.example", "address": "1 Pier Rd, Oakland", "website": "acmefreight.example", "long": "-122.27", "lat": "37.80", "status": "ACTIVE", "avatar": ""},
		{"name": "Harbor Logistics", "phone": "+1 206 0188", "email": "dispatch@harborlog.example", "address": "88 Dock St, Seattle", "website": "harborlog.example", "long": "-122.33", "lat": "47.61", "status": "ACTIVE", "avatar": ""},
		{"name": "Northwind Haulage", "phone": "+44 20 7946 0200", "email": "fleet@northwind.example", "address": "4 Quay Ln, London", "website": "northwind.example", "long": "-0.12", "lat": "51.50", "status": "INACTIVE", "avatar": ""},
	}
	users := []Record{
		{"username": "ada.k", "email": "ada@acmefreight.example", "first_name": "Ada", "last_name": "Khan", "phone": "+1 415 0101", "status": "ACTIVE", "avatar": ""},
		{"username": "brin.m", "email": "brin@harborlog.example", "first_name": "Brin", "last_name": "Moss", "phone": "+1 206 0189", "status": "ACTIVE", "avatar": ""},
		{"username": "cato.r", "email": "cato@northwind.example", "first_name": "Cato", "last_name": "Reyes", "phone": "+44 20 7946 0201", "status": "INACTIVE", "avatar": ""},
	}
	vehicles := []Record{
		{"plate": "CA-7401X", "brand": "Volvo", "model": "FH16", "year": "2022", "company_id": "", "status": "ACTIVE", "avatar": ""},
		{"plate": "WA-2210B", "brand": "Scania", "model": "R450", "year": "2021", "company_id": "", "status": "ACTIVE", "avatar": ""},
		{"plate": "LN-0034Q", "brand": "DAF", "model": "XF", "year": "2019", "company_id": "", "status": "INACTIVE", "avatar": ""},
	}

	var companyIDs []string
	for _, c := range companies {
		companyIDs = append(companyIDs, s.Insert(api.KindCompany, c)["id"].(string))
	}
	for _, u := range users {
		s.Insert(api.KindUser, u)
	}
	for i, v := range vehicles {
		v["company_id"] = companyIDs[i%len(companyIDs)]
		s.Insert(api.KindVehicle, v)
	}
}
