package service

import "errors"

// Service-level error kinds. Handlers map these onto HTTP statuses:
// ErrNotFound → 404, ErrDuplicateName → 409, ErrReferentialConflict → 409,
// costing.ErrValidation (and members) → 422.
var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName signals a uniqueness violation on a name column.
	ErrDuplicateName = errors.New("name already in use")

	// ErrReferentialConflict signals a delete refused because other rows
	// still reference the entity. The operation aborts with no partial
	// deletion.
	ErrReferentialConflict = errors.New("entity is still referenced")

	// ErrNoOpenSession signals an operation that requires an open caixa
	// session when none exists.
	ErrNoOpenSession = errors.New("no open caixa session")

	// ErrSessionAlreadyOpen signals an attempt to open a second concurrent
	// caixa session.
	ErrSessionAlreadyOpen = errors.New("a caixa session is already open")
)
