package tokenizer

import "errors"

// ErrNotFitted is returned when encode, decode, or export is attempted
// before any successful fit.
var ErrNotFitted = errors.New("tokenizer has not been fitted")

// ErrInvalidConfig is returned for invalid option combinations, detected
// at construction or at fit time for pre-tokenized input.
var ErrInvalidConfig = errors.New("invalid tokenizer configuration")

// ErrInvalidRecord is returned by FromJSON when a serialized record is
// missing required fields or is internally inconsistent.
var ErrInvalidRecord = errors.New("invalid tokenizer record")
