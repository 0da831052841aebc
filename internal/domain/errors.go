package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrMissingCredentials = errors.New("missing REPLICATE_API_TOKEN. Add it to your environment to enable AI generation")
	ErrNoCombos           = errors.New("no generation combos provided")
	ErrMissingImage       = errors.New("product image is required")
	ErrMissingPayload     = errors.New("missing generation payload")
	ErrInvalidPayload     = errors.New("invalid payload")
)
