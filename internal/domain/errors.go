package domain

import "errors"

var (
	ErrInvalidID            = errors.New("invalid id")
	ErrItemTypeNotFound     = errors.New("item type not found")
	ErrItemTypeNameRequired = errors.New("item type name is required")
	ErrItemTypeExists       = errors.New("item type name already in use")
	ErrInvalidStock         = errors.New("total stock must be zero or greater")

	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrEmptyCategory        = errors.New("category must have at least one item")
	ErrUnknownItemType      = errors.New("category references an unknown item type")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")

	ErrThemeNotFound      = errors.New("kit theme not found")
	ErrThemeNameRequired  = errors.New("kit theme name is required")
	ErrKitNotFound        = errors.New("kit not found")
	ErrKitNameRequired    = errors.New("kit name is required")
	ErrKitAlreadyReserved = errors.New("kit is already reserved for this period")

	ErrReservationNotFound    = errors.New("reservation not found")
	ErrReservationCancelled   = errors.New("reservation is cancelled")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInvalidPeriod          = errors.New("period end must not be before start")
	ErrOverrideReasonRequired = errors.New("stock override reason is required")

	ErrCustomerNameRequired     = errors.New("customer name is required")
	ErrCustomerNameTooLong      = errors.New("customer name exceeds maximum length")
	ErrCustomerDocumentRequired = errors.New("customer document number is required")
	ErrCustomerDocumentTooLong  = errors.New("customer document number exceeds maximum length")
	ErrCustomerPhoneRequired    = errors.New("customer phone number is required")
	ErrCustomerPhoneTooLong     = errors.New("customer phone number exceeds maximum length")
	ErrCustomerAddressRequired  = errors.New("customer address is required")
	ErrCustomerAddressTooLong   = errors.New("customer address exceeds maximum length")
	ErrNotesTooLong             = errors.New("notes exceed maximum length")
)
