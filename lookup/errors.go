package lookup

import "errors"

var (
	// ErrEmptyInput is returned when the input is empty after trimming
	ErrEmptyInput = errors.New("input is empty")

	// ErrInvalidPhone is returned when a phone number cannot be parsed
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidIP is returned for input that is neither an IP nor a hostname
	ErrInvalidIP = errors.New("invalid IP address")

	// ErrInvalidDomain is returned when a domain fails validation
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrInvalidUsername is returned for usernames that cannot form a profile URL
	ErrInvalidUsername = errors.New("invalid username")

	// ErrUnknownOperator is returned for an unsupported dork operator
	ErrUnknownOperator = errors.New("unknown dork operator")
)
