package catalog

import "errors"

// Lookup failures indicate bad data or configuration and are never retried.
var (
	ErrUnknownCR      = errors.New("catalog: unknown challenge rating")
	ErrUnknownMonster = errors.New("catalog: unknown monster")
	ErrUnknownTable   = errors.New("catalog: unknown treasure table")
	ErrUnknownDeity   = errors.New("catalog: unknown deity")
	ErrUnknownPool    = errors.New("catalog: unknown trap template pool")
)
