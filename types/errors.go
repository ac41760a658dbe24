package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace is the codespace every populate-constants error is registered under.
const Codespace = "populate-constants"

var (
	// ErrSourceResolution is returned when an artifact source cannot be located or read.
	ErrSourceResolution = errorsmod.Register(Codespace, 2, "artifact source resolution failed")
	// ErrMalformedArtifact is returned when an artifact is not JSON or lacks a well-formed bytecode field.
	ErrMalformedArtifact = errorsmod.Register(Codespace, 3, "malformed artifact")
	// ErrDestinationAccess is returned when the destination file cannot be read or written.
	ErrDestinationAccess = errorsmod.Register(Codespace, 4, "destination access failed")
	// ErrPatternMiss is returned when a placeholder assignment is absent from the destination text.
	ErrPatternMiss = errorsmod.Register(Codespace, 5, "placeholder not found")
	// ErrAmbiguousPattern is returned when a placeholder assignment occurs more than once.
	ErrAmbiguousPattern = errorsmod.Register(Codespace, 6, "placeholder matched more than once")
	// ErrOutOfSync is returned by check mode when the destination is stale.
	ErrOutOfSync = errorsmod.Register(Codespace, 7, "destination out of sync with artifacts")
	// ErrInvalidConfig is returned when the configuration fails validation.
	ErrInvalidConfig = errorsmod.Register(Codespace, 8, "invalid configuration")
)
