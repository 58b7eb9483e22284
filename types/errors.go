package types

import (
	"cosmossdk.io/errors"
)

const ModuleName = "simple-stats"

// Simple stats errors
var (
	ErrInputFormat    = errors.Register(ModuleName, 2, "malformed input line")
	ErrTooFewSamples  = errors.Register(ModuleName, 3, "at least two samples are required for a fit")
	ErrSingularFit    = errors.Register(ModuleName, 4, "predictor values have no variance")
	ErrLengthMismatch = errors.Register(ModuleName, 5, "predictor and response lengths differ")
	ErrUnknownSolver  = errors.Register(ModuleName, 6, "unknown solver")
	ErrUnknownFormat  = errors.Register(ModuleName, 7, "unknown output format")
)
