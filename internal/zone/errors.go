package zone

import "errors"

var (
	ErrEmptyID       = errors.New("empty zone id")
	ErrDuplicateID   = errors.New("duplicate zone id")
	ErrInvalidBounds = errors.New("invalid zone bounds")
	ErrInvalidFee    = errors.New("invalid delivery fee")
)
