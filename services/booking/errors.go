package booking

import (
	"errors"
	"fmt"
)

// Taxonomy buckets; handlers map these 1:1 to HTTP status codes.
const (
	CodeClientError = "CLIENT_ERROR" // 400
	CodeConflict    = "CONFLICT"     // 409
	CodeNotFound    = "NOT_FOUND"    // 404
	CodeServerError = "SERVER_ERROR" // 500
)

// Machine-readable reasons carried alongside the taxonomy bucket.
const (
	ReasonInvalidDate         = "INVALID_DATE"
	ReasonInvalidInput        = "INVALID_INPUT"
	ReasonNoStaffAvailable    = "NO_STAFF_AVAILABLE"
	ReasonSlotConflict        = "SLOT_CONFLICT"
	ReasonInvalidLockToken    = "INVALID_LOCK_TOKEN"
	ReasonLockExpired         = "LOCK_EXPIRED"
	ReasonAppointmentNotFound = "APPOINTMENT_NOT_FOUND"
	ReasonVendorNotFound      = "VENDOR_NOT_FOUND"
	ReasonPackageNotFound     = "PACKAGE_NOT_FOUND"
)

// Error is the typed failure every booking operation raises for a
// lifecycle or input violation.
type Error struct {
	Code    string // taxonomy bucket
	Reason  string // specific machine-readable reason
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// HasReason reports whether err is a booking Error with the given reason.
func HasReason(err error, reason string) bool {
	var be *Error
	return errors.As(err, &be) && be.Reason == reason
}

// CodeOf extracts the taxonomy bucket from err, defaulting to SERVER_ERROR.
func CodeOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return CodeServerError
}

func NewInvalidDateError(date string) error {
	return &Error{Code: CodeClientError, Reason: ReasonInvalidDate,
		Message: fmt.Sprintf("date %q is invalid or in the past", date)}
}

func NewClientError(msg string) error {
	return &Error{Code: CodeClientError, Reason: ReasonInvalidInput, Message: msg}
}

func NewNoStaffAvailableError(vendorID, date string) error {
	return &Error{Code: CodeNotFound, Reason: ReasonNoStaffAvailable,
		Message: fmt.Sprintf("no staff available for vendor %s on %s", vendorID, date)}
}

func NewSlotConflictError() error {
	return &Error{Code: CodeConflict, Reason: ReasonSlotConflict,
		Message: "this time is no longer available; please request fresh slots"}
}

// NewInvalidLockTokenError deliberately carries no detail: a mismatched
// token must not reveal whether the appointment id existed.
func NewInvalidLockTokenError() error {
	return &Error{Code: CodeConflict, Reason: ReasonInvalidLockToken,
		Message: "lock token does not match; please restart checkout"}
}

func NewLockExpiredError() error {
	return &Error{Code: CodeConflict, Reason: ReasonLockExpired,
		Message: "reservation hold has expired; please request fresh slots"}
}

func NewAppointmentNotFoundError(appointmentID string) error {
	return &Error{Code: CodeNotFound, Reason: ReasonAppointmentNotFound,
		Message: fmt.Sprintf("appointment %s not found", appointmentID)}
}

func NewVendorNotFoundError(vendorID string) error {
	return &Error{Code: CodeNotFound, Reason: ReasonVendorNotFound,
		Message: fmt.Sprintf("vendor %s not found", vendorID)}
}

func NewPackageNotFoundError(packageID string) error {
	return &Error{Code: CodeNotFound, Reason: ReasonPackageNotFound,
		Message: fmt.Sprintf("wedding package %s not found", packageID)}
}
