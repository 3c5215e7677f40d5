package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jcmexdev/workshop-storefront/internal/pkg/i18n"
)

// ValidationError is a request rejected before any remote call. Message is
// already localized.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

const maxRequestBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return &ValidationError{Field: "body", Message: i18n.Tc(r.Context(), i18n.FieldInvalid, "body")}
	}
	return check(r.Context(), dst)
}

// check validates v and localizes the first failure.
func check(ctx context.Context, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return fmt.Errorf("validate: %w", err)
	}

	fe := fields[0]
	field := fe.Field()
	var msg string
	switch {
	case field == "rating":
		msg = i18n.Tc(ctx, i18n.ReviewRatingRequired)
	case fe.Tag() == "required" || fe.Tag() == "required_if":
		msg = i18n.Tc(ctx, i18n.FieldRequired, field)
	case fe.Tag() == "email":
		msg = i18n.Tc(ctx, i18n.FieldInvalidEmail)
	default:
		msg = i18n.Tc(ctx, i18n.FieldInvalid, field)
	}
	return &ValidationError{Field: field, Message: msg}
}

// checkPhone requires phone to start with the selected country code.
func checkPhone(ctx context.Context, field, phone, countryCode string) error {
	code := strings.TrimPrefix(countryCode, "+")
	if code == "" || strings.HasPrefix(strings.TrimPrefix(phone, "+"), code) {
		return nil
	}
	return &ValidationError{Field: field, Message: i18n.Tc(ctx, i18n.PhoneCountryCode, code)}
}
