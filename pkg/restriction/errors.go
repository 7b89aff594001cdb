package restriction

import "errors"

// errorsIsNotFound distinguishes "no restriction configured" (a normal
// state, not worth logging) from genuine store failures.
func errorsIsNotFound(err error) bool {
	return errors.Is(err, ErrTermNotFound)
}

var (
	ErrTermNotFound     = errors.New("term restriction not found")
	ErrContentNotFound  = errors.New("content item not found")
	ErrInvalidPolicy    = errors.New("invalid aggregation policy")
	ErrInvalidYAML      = errors.New("invalid restriction yaml")
	ErrDuplicateTerm    = errors.New("duplicate term id in restriction source")
	ErrDuplicateContent = errors.New("duplicate content id in restriction source")
)
