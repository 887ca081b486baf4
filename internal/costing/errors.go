// Package costing implements the recipe costing and pricing engine: ficha
// técnica cost aggregation, margin-based price suggestion and CMV (cost of
// goods sold) reporting. Every function is a pure computation over values the
// caller already fetched — the package performs no I/O and holds no state, so
// it is safe to call from any number of request handlers concurrently.
package costing

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of the engine's validation error family.
// Callers can match the whole family with errors.Is(err, ErrValidation)
// or a specific member for a tailored user-facing message.
var ErrValidation = errors.New("validation failed")

var (
	// ErrInvalidYield rejects recipes whose yield quantity is zero or
	// negative. Enforced at recipe save time, never deferred to the
	// division.
	ErrInvalidYield = fmt.Errorf("%w: yield quantity must be greater than zero", ErrValidation)

	// ErrInvalidMargin rejects desired margins outside [0, 100). A margin
	// of exactly 100 makes the price formula divide by zero.
	ErrInvalidMargin = fmt.Errorf("%w: desired margin must be at least 0 and below 100", ErrValidation)

	// ErrNegativeCost rejects negative unit costs and manual prices.
	ErrNegativeCost = fmt.Errorf("%w: monetary amounts must not be negative", ErrValidation)

	// ErrUnitMismatch rejects recipe lines whose unit does not exactly match
	// the ingredient's native unit. There is deliberately no conversion
	// table — see DESIGN.md.
	ErrUnitMismatch = fmt.Errorf("%w: line unit must match the ingredient unit", ErrValidation)
)
