package model

import "errors"

var (
	// ErrNotFound is returned when no purchase request matches the given id
	// or number.
	ErrNotFound = errors.New("purchase request not found")

	// ErrAlreadyResolved is returned when an approval action targets a
	// request that is no longer approvable.
	ErrAlreadyResolved = errors.New("purchase request already resolved")

	// ErrIllegalTransition is returned when a status update is not allowed
	// by the workflow transition table.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrUnknownSettingKey is returned for settings keys outside the closed
	// schema.
	ErrUnknownSettingKey = errors.New("unknown setting key")

	// ErrInvalidSettingValue is returned when a settings value has the wrong
	// type or an out-of-range value for its key.
	ErrInvalidSettingValue = errors.New("invalid setting value")

	// ErrInvalidImport is returned when an import payload cannot be applied.
	// Nothing is changed in that case.
	ErrInvalidImport = errors.New("invalid import payload")
)
