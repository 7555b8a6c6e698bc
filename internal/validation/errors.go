package validation

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package is a *FieldError whose
// Unwrap yields one of these, so callers match with errors.Is.
var (
	ErrInvalidAddressSpace     = errors.New("invalid address space")
	ErrPrefixLengthOutOfBounds = errors.New("prefix length out of bounds")
	ErrPrefixOverlap           = errors.New("prefix overlap")
	ErrProtocolMismatch        = errors.New("protocol mismatch")
	ErrInvalidIRRReference     = errors.New("invalid irr reference")
	ErrIRRDepthExceeded        = errors.New("irr depth exceeded")
	ErrPrefixCountExceeded     = errors.New("prefix count exceeded")
	ErrInvalidPrefixCount      = errors.New("invalid prefix count")
	ErrInvalidPhoneNumber      = errors.New("invalid phone number")
	ErrInvalidEmail            = errors.New("invalid email")
	ErrIXLanStatusMismatch     = errors.New("ixlan status mismatch")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrSpeedOutOfBounds        = errors.New("speed out of bounds")
	ErrInvalidAddress          = errors.New("invalid address")
	ErrAddressRequired         = errors.New("address required")
	ErrAddressOutsideLAN       = errors.New("address outside lan")
	ErrDuplicateAddress        = errors.New("duplicate address")
	ErrIXFDataUnavailable      = errors.New("ix-f data unavailable")
)

// FieldError is a validation failure tied to one input field. Message is
// meant for display to the end user as is.
type FieldError struct {
	Field   string
	Value   string
	Kind    error
	Cause   error
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newFieldError(field, value string, kind error, format string, args ...any) *FieldError {
	return &FieldError{
		Field:   field,
		Value:   value,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// OnField re-targets a validation error at another field name. Errors that
// are not field errors are returned unchanged.
func OnField(err error, field string) error {
	var fe *FieldError
	if !errors.As(err, &fe) {
		return err
	}
	cp := *fe
	cp.Field = field
	return &cp
}

// DuplicateAddress builds the "IP already exists" error for a peering record
// whose address is still held by another record. cause explains why the
// conflict could not be resolved and may be nil.
func DuplicateAddress(field, value string, cause error) *FieldError {
	fe := newFieldError(field, value, ErrDuplicateAddress, "IP already exists")
	fe.Cause = cause
	return fe
}

// KindOf returns the error kind carried by err, or nil.
func KindOf(err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return nil
}
