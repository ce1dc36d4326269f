package domain

import "errors"

// Sentinel errors used across all layers.
var (
	ErrInvalidRule     = errors.New("invalid encoding rule")
	ErrInvalidCode     = errors.New("invalid manual code")
	ErrCancelled       = errors.New("input cancelled")
	ErrManualRuleBatch = errors.New("manual coding rule is not supported in batch mode")
)
