// Package validation holds the declarative per-endpoint rule sets. Rules are
// validator/v10 struct tags on the dto package; this package turns failures
// into the ordered field-level error list the API responds with.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name, not the Go struct name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Check validates req against its struct tags. A nil return means valid;
// otherwise the slice holds one entry per failing field, in declaration order.
func Check(req interface{}) []FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: "invalid request"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	// dive failures report as tags[i]
	if strings.HasPrefix(fe.Field(), "tags") {
		return "Tags must be an array"
	}
	switch fe.Field() {
	case "name":
		return "Name is required"
	case "email":
		return "Invalid email format"
	case "password":
		if fe.Tag() == "min" {
			return "Password must be at least 6 characters long"
		}
		return "Password is required"
	case "userId":
		return "User ID is required"
	case "postName":
		return "Post name is required"
	case "description":
		return "Description is required"
	case "imageUrl":
		return "Image URL must be a string"
	}
	return fe.Field() + " is invalid"
}
