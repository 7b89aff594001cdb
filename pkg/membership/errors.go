package membership

import "errors"

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrInvalidStatus      = errors.New("invalid membership status")
)
