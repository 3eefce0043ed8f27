package visits

import "errors"

var (
	// ErrMissingFields is returned when a required form field is empty
	ErrMissingFields = errors.New("registration number, visit date and next visit date are required")

	// ErrInvalidRegNumber is returned when the registration number does not match YYYY/AAA/NNNN
	ErrInvalidRegNumber = errors.New("registration number must match YYYY/AAA/NNNN")

	// ErrInvalidDate is returned when a date field cannot be parsed
	ErrInvalidDate = errors.New("dates must be in YYYY-MM-DD format")

	// ErrNextVisitNotAfter is returned when the follow-up is not strictly after the visit
	ErrNextVisitNotAfter = errors.New("next visit date must be after visit date")

	// ErrVisitNotFound is returned when an id references no stored record
	ErrVisitNotFound = errors.New("visit not found")

	// ErrNoGateway is returned when no persistence gateway is configured
	ErrNoGateway = errors.New("no gateway configured")
)
