package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/raphaelgarcia7/decorrental-api/internal/domain"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeInvalidID             = "invalid_id"
	codeInvalidPeriod         = "invalid_period"
	codeInvalidQuantity       = "invalid_quantity"
	codeInvalidStock          = "invalid_stock"
	codeValidationFailed      = "validation_failed"
	codeItemTypeNotFound      = "item_type_not_found"
	codeItemTypeExists        = "item_type_exists"
	codeCategoryNotFound      = "category_not_found"
	codeEmptyCategory         = "empty_category"
	codeThemeNotFound         = "theme_not_found"
	codeKitNotFound           = "kit_not_found"
	codeReservationNotFound   = "reservation_not_found"
	codeReservationCancelled  = "reservation_cancelled"
	codeInsufficientStock     = "insufficient_stock"
	codeKitAlreadyReserved    = "kit_already_reserved"
	codeOverrideReasonMissing = "override_reason_required"
	codeForbidden             = "forbidden"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps a service error onto a status and error code. Every
// handler funnels its error path through here so the mapping stays in one
// place.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrInvalidPeriod):
		writeError(w, http.StatusBadRequest, codeInvalidPeriod, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidStock):
		writeError(w, http.StatusBadRequest, codeInvalidStock, err.Error())
	case errors.Is(err, domain.ErrEmptyCategory):
		writeError(w, http.StatusBadRequest, codeEmptyCategory, err.Error())
	case errors.Is(err, domain.ErrOverrideReasonRequired):
		writeError(w, http.StatusBadRequest, codeOverrideReasonMissing, err.Error())
	case errors.Is(err, domain.ErrReservationCancelled):
		writeError(w, http.StatusBadRequest, codeReservationCancelled, err.Error())
	case errors.Is(err, domain.ErrItemTypeNameRequired),
		errors.Is(err, domain.ErrCategoryNameRequired),
		errors.Is(err, domain.ErrThemeNameRequired),
		errors.Is(err, domain.ErrKitNameRequired),
		errors.Is(err, domain.ErrCustomerNameRequired),
		errors.Is(err, domain.ErrCustomerNameTooLong),
		errors.Is(err, domain.ErrCustomerDocumentRequired),
		errors.Is(err, domain.ErrCustomerDocumentTooLong),
		errors.Is(err, domain.ErrCustomerPhoneRequired),
		errors.Is(err, domain.ErrCustomerPhoneTooLong),
		errors.Is(err, domain.ErrCustomerAddressRequired),
		errors.Is(err, domain.ErrCustomerAddressTooLong),
		errors.Is(err, domain.ErrNotesTooLong):
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
	case errors.Is(err, domain.ErrUnknownItemType):
		writeError(w, http.StatusBadRequest, codeItemTypeNotFound, err.Error())
	case errors.Is(err, domain.ErrItemTypeNotFound):
		writeError(w, http.StatusNotFound, codeItemTypeNotFound, err.Error())
	case errors.Is(err, domain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, codeCategoryNotFound, err.Error())
	case errors.Is(err, domain.ErrThemeNotFound):
		writeError(w, http.StatusNotFound, codeThemeNotFound, err.Error())
	case errors.Is(err, domain.ErrKitNotFound):
		writeError(w, http.StatusNotFound, codeKitNotFound, err.Error())
	case errors.Is(err, domain.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, codeReservationNotFound, err.Error())
	case errors.Is(err, domain.ErrItemTypeExists):
		writeError(w, http.StatusConflict, codeItemTypeExists, err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		writeError(w, http.StatusConflict, codeInsufficientStock, err.Error())
	case errors.Is(err, domain.ErrKitAlreadyReserved):
		writeError(w, http.StatusConflict, codeKitAlreadyReserved, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
