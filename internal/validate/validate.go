// Package validate checks and coerces request input before a handler runs.
// Failures never escape as responses of their own; each helper returns a
// typed error for the single response boundary, tagged with the field set
// that caused it.
package validate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/inkstream/inkstream-go/internal/apperr"
	"github.com/inkstream/inkstream-go/internal/model"
)

var vld = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// Body decodes the JSON request body into dst and validates it against dst's
// schema tags. On failure it returns an illegal-payload error carrying a
// field→reason map.
func Body(r *http.Request, dst any) *apperr.Error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err.Error() == "http: request body too large" {
			return apperr.New(http.StatusRequestEntityTooLarge, apperr.CodeIllegalPayload, "Request body too large")
		}
		return apperr.IllegalPayload("Invalid request body")
	}

	if err := vld.Struct(dst); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperr.System("Internal Server Error")
		}

		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = reason(fe)
		}

		return apperr.IllegalPayload("Invalid field (body)").WithData(fields)
	}

	return nil
}

// UUIDParams checks that each named chi URL parameter is a well-formed
// resource identifier.
func UUIDParams(r *http.Request, names ...string) *apperr.Error {
	for _, name := range names {
		if _, err := uuid.Parse(chi.URLParam(r, name)); err != nil {
			return apperr.InvalidID("Invalid param: " + name)
		}
	}
	return nil
}

// Pagination coerces page/pageSize query strings. Anything non-numeric or out
// of range falls back to the defaults rather than erroring.
func Pagination(r *http.Request) model.Pagination {
	return model.Pagination{
		Page:     positiveIntOrDefault(r.URL.Query().Get("page"), model.DefaultPage),
		PageSize: positiveIntOrDefault(r.URL.Query().Get("pageSize"), model.DefaultPageSize),
	}
}

func positiveIntOrDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// reason renders one violation as a short human-readable sentence.
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	default:
		return "is invalid"
	}
}
