// Package schema validates create and edit payloads before they are
// dispatched, so the obvious rejections never cost a round trip. The rules
// live in embedded JSON Schema documents, one per entity family, mirroring
// what the backend enforces server-side.
package schema

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/fleetdeck/fleetdeck/internal/api"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[api.Kind]string{
	api.KindCompany: "schemas/company.json",
	api.KindUser:    "schemas/user.json",
	api.KindVehicle: "schemas/vehicle.json",
}

var compiled = map[api.Kind]*gojsonschema.Schema{}

func init() {
	for kind, name := range schemaFiles {
		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("schema: read %s: %v", name, err))
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("schema: compile %s: %v", name, err))
		}
		compiled[kind] = s
	}
}

// Errors maps a field name to the first problem found with it. An empty map
// means the payload is valid.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

// Fields returns the failing field names in sorted order, for stable
// rendering.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Validate checks a payload against the entity family's rules and returns
// the per-field problems. The payload is the same map that would go over
// the wire, so what passes here is exactly what gets sent.
func Validate(kind api.Kind, payload map[string]any) (Errors, error) {
	s, ok := compiled[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for entity kind %d", kind)
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return nil, fmt.Errorf("validate %s payload: %w", strings.ToLower(kind.Label()), err)
	}

	errs := Errors{}
	for _, failure := range result.Errors() {
		field := fieldName(failure)
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = message(field, failure)
	}
	return errs, nil
}

// fieldName resolves which field a failure belongs to. Required-property
// failures are reported against the root, with the missing property tucked
// into the details.
func fieldName(failure gojsonschema.ResultError) string {
	if failure.Field() != "(root)" {
		return failure.Field()
	}
	if property, ok := failure.Details()["property"].(string); ok {
		return property
	}
	return failure.Field()
}

// message rewrites the library's descriptions into the short imperative
// phrasing the forms render inline.
func message(field string, failure gojsonschema.ResultError) string {
	switch failure.Type() {
	case "required":
		return "is required"
	case "string_gte":
		if min, ok := failure.Details()["min"]; ok {
			return fmt.Sprintf("must be at least %v characters", min)
		}
		return "is too short"
	case "enum":
		return "is not an allowed value"
	case "additional_property_not_allowed":
		return "is not an editable field"
	case "pattern", "format", "number_any_of":
		switch field {
		case "phone":
			return "must be a phone number"
		case "email":
			return "must be an email address"
		case "year":
			return "must be a four-digit year"
		}
		return "has an invalid format"
	}
	return failure.Description()
}
