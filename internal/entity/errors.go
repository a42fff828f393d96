package entity

import "errors"

// Domain error sentinels. Repositories translate storage failures into
// these; services and the error middleware classify recovery on them.
var (
	// ErrDuplicateIdentification is returned when a customer create hits
	// the unique index on identificacion.
	ErrDuplicateIdentification = errors.New("identification already registered")

	// ErrCustomerNotFound is returned when a lookup by identificacion
	// finds no customer.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDirectoryUnavailable wraps transport/storage failures while
	// talking to the customer directory. Fatal for the turn, phase kept.
	ErrDirectoryUnavailable = errors.New("customer directory unavailable")

	// ErrRetrievalUnavailable marks a failed knowledge search. Degraded
	// mode: generation proceeds with empty context.
	ErrRetrievalUnavailable = errors.New("knowledge retrieval unavailable")

	// ErrGenerationFailure marks a failed language-model call. The turn
	// is not recorded in history.
	ErrGenerationFailure = errors.New("answer generation failed")

	// ErrSessionNotFound is returned for an unknown session id.
	ErrSessionNotFound = errors.New("session not found")
)
