// Package validate turns raw create/update payloads into sanitized records
// and patches, applying the field rules declared in the schema registry.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/eduverse/portal-api/internal/schema"
	appErrors "github.com/eduverse/portal-api/pkg/errors"
)

// Validator sanitizes payloads against entity schemas. Numeric bounds are
// delegated to validator/v10 using the tag carried by each field descriptor.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New constructs a Validator.
func New() *Validator {
	return &Validator{
		validate: validator.New(),
		now:      time.Now,
	}
}

// Create validates a full create payload. Every required field must be
// present and non-blank after trimming; the result maps JSON field names to
// storage-ready values, with createdAt stamped here and never taken from the
// caller.
func (v *Validator) Create(e schema.Entity, payload map[string]interface{}) (map[string]interface{}, error) {
	record := make(map[string]interface{}, len(e.Fields))

	for _, f := range e.Fields {
		if f.System {
			continue
		}
		if f.CreateAsNull {
			record[f.Name] = nil
			continue
		}

		raw, present := payload[f.Name]
		if present && raw == nil {
			present = false
		}
		if !present {
			if f.Required {
				return nil, appErrors.MissingField(f.Name, f.Label)
			}
			record[f.Name] = nil
			continue
		}

		value, err := v.sanitize(f, raw, false)
		if err != nil {
			return nil, err
		}
		if f.Required {
			if s, ok := value.(string); ok && s == "" {
				return nil, appErrors.MissingField(f.Name, f.Label)
			}
		}
		record[f.Name] = value
	}

	record["createdAt"] = v.now().UTC().Format(time.RFC3339)
	return record, nil
}

// Update validates a partial payload. Only supplied non-null fields are
// checked and included in the patch; system fields are never settable. The
// entity's update hook, if any, runs over the finished patch.
func (v *Validator) Update(e schema.Entity, payload map[string]interface{}) (map[string]interface{}, error) {
	patch := make(map[string]interface{})

	for _, f := range e.Fields {
		if f.System {
			continue
		}
		raw, present := payload[f.Name]
		if !present || raw == nil {
			continue
		}
		value, err := v.sanitize(f, raw, true)
		if err != nil {
			return nil, err
		}
		patch[f.Name] = value
	}

	if e.UpdateHook != nil {
		e.UpdateHook(patch)
	}
	return patch, nil
}

func (v *Validator) sanitize(f schema.Field, raw interface{}, partial bool) (interface{}, error) {
	switch f.Kind {
	case schema.KindString, schema.KindNullString:
		return v.sanitizeString(f, raw, partial)
	case schema.KindInt, schema.KindNullInt:
		return v.sanitizeInt(f, raw)
	}
	return nil, appErrors.InvalidField(f.Name, f.Label+" is not supported")
}

func (v *Validator) sanitizeString(f schema.Field, raw interface{}, partial bool) (interface{}, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, appErrors.InvalidField(f.Name, f.Label+" must be a string")
	}
	s = strings.TrimSpace(s)
	if f.Fold {
		s = strings.ToLower(s)
	}
	if len(f.Enum) > 0 && !contains(f.Enum, s) {
		// a blank value on create falls through to the required check,
		// which reports it as missing rather than invalid
		if s != "" || partial {
			return nil, appErrors.InvalidField(f.Name, enumMessage(f))
		}
	}
	return s, nil
}

func (v *Validator) sanitizeInt(f schema.Field, raw interface{}) (interface{}, error) {
	n, err := coerceInt(raw)
	if err != nil {
		return nil, appErrors.InvalidField(f.Name, f.InvalidMessage)
	}
	if f.Bounds != "" {
		if err := v.validate.Var(n, f.Bounds); err != nil {
			return nil, appErrors.InvalidField(f.Name, f.InvalidMessage)
		}
	}
	return n, nil
}

// coerceInt accepts JSON numbers and digit strings, rejecting fractions.
func coerceInt(raw interface{}) (int64, error) {
	switch value := raw.(type) {
	case float64:
		if value != math.Trunc(value) {
			return 0, fmt.Errorf("not an integer: %v", value)
		}
		return int64(value), nil
	case int:
		return int64(value), nil
	case int64:
		return value, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", value)
		}
		return n, nil
	}
	return 0, fmt.Errorf("not an integer: %T", raw)
}

func enumMessage(f schema.Field) string {
	return fmt.Sprintf("%s must be one of: %s", f.Label, strings.Join(f.Enum, ", "))
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
