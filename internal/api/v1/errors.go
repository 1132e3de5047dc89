package v1

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/policy"
	"github.com/alumni-connect/connect-api/internal/utils"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json names so error payloads match request bodies
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateBody runs struct-tag validation and converts the first failure into
// a ValidationError.
func validateBody(body interface{}) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		detail := "failed " + fe.Tag() + " check"
		if fe.Tag() == "required" {
			detail = "must not be empty"
		}
		return &models.ValidationError{Field: fe.Field(), Detail: detail}
	}
	return err
}

// writeDomainError maps typed errors onto transport status codes:
// denial 403, validation 422, conflict 409, not found 404.
func writeDomainError(w http.ResponseWriter, err error) {
	var denied *policy.DeniedError
	if errors.As(err, &denied) {
		utils.WriteJSONResponse(w, http.StatusForbidden, false, "forbidden", nil, map[string]string{
			"reason": string(denied.Reason),
		})
		return
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		utils.WriteJSONResponse(w, http.StatusUnprocessableEntity, false, "validation failed", nil, map[string]string{
			"field":  verr.Field,
			"detail": verr.Detail,
		})
		return
	}
	var conflict *models.ConflictError
	if errors.As(err, &conflict) {
		utils.WriteJSONResponse(w, http.StatusConflict, false, "conflict", nil, map[string]string{
			"detail": conflict.Detail,
		})
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		utils.WriteJSONResponse(w, http.StatusNotFound, false, "not found", nil, nil)
		return
	}
	utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "internal error", nil, err.Error())
}
