package validation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Form identifiers matching the embedded schema files.
const (
	FormMember            = "member"
	FormDonation          = "donation"
	FormEventRegistration = "event_registration"
	FormContactMessage    = "contact_message"
)

// FormValidator validates public form submissions against JSON schemas.
//
// Schemas are embedded in the binary and compiled once at construction, so
// Validate is cheap and safe for concurrent use.
type FormValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewFormValidator compiles all embedded form schemas.
func NewFormValidator() (*FormValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)

	forms := []string{FormMember, FormDonation, FormEventRegistration, FormContactMessage}
	schemas := make(map[string]*jsonschema.Schema, len(forms))

	for _, form := range forms {
		name := form + ".json"
		raw, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}

		parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", name, err)
		}

		if err := compiler.AddResource(name, parsed); err != nil {
			return nil, fmt.Errorf("add schema resource %s: %w", name, err)
		}

		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		schemas[form] = schema
	}

	return &FormValidator{schemas: schemas}, nil
}

// Validate checks a decoded JSON payload against the named form's schema.
// The payload must be the result of json unmarshalling into `any`
// (map[string]any with float64 numbers), not a struct.
func (v *FormValidator) Validate(form string, payload any) error {
	schema, ok := v.schemas[form]
	if !ok {
		return fmt.Errorf("unknown form %q", form)
	}

	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%s", formatValidationError(err))
	}
	return nil
}

// formatValidationError renders a validation error with its JSON path.
// Example: "validation failed at '$.email': does not match pattern".
func formatValidationError(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}

	path := "$"
	if len(ve.InstanceLocation) > 0 {
		var parts []string
		for _, part := range ve.InstanceLocation {
			if part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			path = "$." + strings.Join(parts, ".")
		}
	}

	msg := ve.Error()
	if len(msg) > 200 {
		msg = msg[:200] + "... (truncated)"
	}

	return fmt.Sprintf("validation failed at '%s': %s", path, msg)
}
