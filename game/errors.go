package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrInvalidPlayer = errors.New("invalid player")
	ErrInvalidRules  = errors.New("invalid rules")
)

// ConsistencyError reports that stones were created or lost. It always
// indicates a defect in the sowing logic and is never recoverable.
type ConsistencyError struct {
	Expected int
	Actual   int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("stone count mismatch: expected %d, found %d", e.Expected, e.Actual)
}
