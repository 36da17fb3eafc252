package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fopmanager/fop-api/internal/models"
)

var validate = validator.New()

// ReadJSON decodes a request body into dst. Bodies are capped at 1MB and
// must hold exactly one JSON value.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1048576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must only have a single JSON value")
	}
	return nil
}

// ValidateStruct runs the `validate` tags of a payload and reports the
// first offending field.
func ValidateStruct(dst interface{}) error {
	if err := validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			f := vErrs[0]
			return errors.New("invalid field " + f.Field() + ": failed " + f.Tag() + " check")
		}
		return err
	}
	return nil
}

// WriteJSON writes data as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	return err
}

// BadRequest sends a JSON response with status http.StatusBadRequest
func BadRequest(w http.ResponseWriter, err error) error {
	return WriteJSON(w, http.StatusBadRequest, models.Response{
		Error:   true,
		Status:  "failed",
		Message: err.Error(),
	})
}

// NotFound sends a JSON response with status http.StatusNotFound
func NotFound(w http.ResponseWriter, err error) error {
	return WriteJSON(w, http.StatusNotFound, models.Response{
		Error:   true,
		Status:  "failed",
		Message: err.Error(),
	})
}

// ServerError sends a JSON response with status http.StatusInternalServerError
func ServerError(w http.ResponseWriter, err error) error {
	return WriteJSON(w, http.StatusInternalServerError, models.Response{
		Error:   true,
		Status:  "failed",
		Message: err.Error(),
	})
}

// GenerateMemoNo creates a short unique reference for period reports
func GenerateMemoNo() string {
	return "PR-" + strings.ToUpper(uuid.New().String()[:8])
}
