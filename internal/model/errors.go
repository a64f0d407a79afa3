package model

import "errors"

var (
	// ErrInvalidArgument is returned when a caller passes a value outside an
	// enumerated set, such as an unknown sort key or direction.
	// It signals a programming or input error, never an empty result.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedCampaign is returned when a campaign record is missing a
	// required field or carries a value outside its allowed range.
	ErrMalformedCampaign = errors.New("malformed campaign")
)
