package domain

import "errors"

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidPrice    = errors.New("invalid price text")
)
