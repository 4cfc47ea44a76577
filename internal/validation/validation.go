// Package validation checks generation requests before they reach the
// synthesizer. The synthesizer itself tolerates any input; these rules exist
// so that HTTP and CLI callers get field-level feedback instead of a batch
// full of skip comments.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/weirlive/panw-object/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("entries", validateEntries); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateEntries requires at least one entry that is not blank.
func validateEntries(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		if strings.TrimSpace(field.Index(i).String()) != "" {
			return true
		}
	}
	return false
}

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "required_unless":
		return "field is required unless operation is delete"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "entries":
		return "must contain at least one non-blank entry"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidateRequest checks a request and returns ValidationErrors describing
// every problem found, or nil.
func ValidateRequest(req *domain.Request) error {
	var errs ValidationErrors

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, e := range fieldErrs {
			errs.Add(fieldPath(e), valueString(e.Value()), getValidationMessage(e))
		}
	}

	// required_unless accepts a zone made only of spaces.
	if req.Operation != domain.OperationDelete && req.Zone != "" && req.ZoneName() == "" {
		errs.Add("zone", req.Zone, "must not be blank")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// NormalizeRequest canonicalizes the enumerated fields of a request so that
// user input such as "Create" or "subnet" validates.
func NormalizeRequest(req *domain.Request) {
	if op, ok := domain.ParseOperation(string(req.Operation)); ok {
		req.Operation = op
	}
	if typ, ok := domain.ParseObjectType(string(req.ObjectType)); ok {
		req.ObjectType = typ
	}
}

// fieldPath drops the struct name from the namespace: Request.group.tag
// becomes group.tag.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i != -1 {
		return ns[i+1:]
	}
	return e.Field()
}

func valueString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprint(v)
	}
}
