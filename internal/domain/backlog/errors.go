package backlog

import "errors"

var (
	// ErrNetwork is returned when a Steam API cannot be reached or answers with a non-2xx status.
	ErrNetwork = errors.New("steam api unreachable")
	// ErrDecode is returned when a Steam API answers with malformed JSON.
	ErrDecode = errors.New("malformed steam api response")
	// ErrUpstreamNotFound is returned when Steam has no usable data for an app id.
	ErrUpstreamNotFound = errors.New("app not found on steam")

	ErrStoreNotFound    = errors.New("record not found")
	ErrStoreConstraint  = errors.New("constraint violation")
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMissingPrice is returned when a paid game comes without a formatted price.
	ErrMissingPrice = errors.New("paid game has no price")
	// ErrInvalidAppID is returned when a button id does not carry a numeric app id.
	ErrInvalidAppID = errors.New("invalid app id")
)
