package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"lys-checkout/internal/model"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies accepted by JSON handlers.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "-" {
			return ""
		}
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// requestError is a rejected request body with per-field details.
type requestError struct {
	code    string
	message string
	details map[string]string
}

func (e *requestError) Error() string {
	return e.message
}

// decodeJSONBody decodes the request body into dest and validates its struct tags.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return &requestError{
			code:    model.ErrCodeInvalidJSON,
			message: "invalid request body",
			details: map[string]string{"body": err.Error()},
		}
	}

	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *requestError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return &requestError{code: model.ErrCodeValidation, message: "validation failed"}
	}

	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		details[fieldPath(fe)] = validationMessage(fe)
	}
	return &requestError{code: errorCode(errs[0]), message: "validation failed", details: details}
}

// errorCode maps the first failing field to an API error code.
func errorCode(fe validator.FieldError) string {
	switch {
	case fe.Field() == "items":
		return model.ErrCodeEmptyCart
	case fe.Field() == "quantity":
		return model.ErrCodeInvalidQuantity
	case fe.Tag() == "required":
		return model.ErrCodeMissingField
	}
	return model.ErrCodeValidation
}

// fieldPath drops the root type name from the field namespace, e.g. "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
