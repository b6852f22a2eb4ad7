package lp

import (
	"fmt"
	"time"
)

// UnsolvableModelError is returned when a model is infeasible,
// unbounded or the engine fails to solve it.
type UnsolvableModelError struct {
	Status Status
	Err    error
}

func (e *UnsolvableModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsolvable model (%v): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("unsolvable model (%v)", e.Status)
}

func (e *UnsolvableModelError) Unwrap() error {
	return e.Err
}

// EngineTimeoutError is returned when Solve exceeds its time limit or
// its context is done.
type EngineTimeoutError struct {
	Limit   time.Duration
	Elapsed time.Duration
	Err     error
}

func (e *EngineTimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("solve interrupted after %v: %v", e.Elapsed, e.Err)
	}
	return fmt.Sprintf("solve exceeded time limit of %v (elapsed %v)", e.Limit, e.Elapsed)
}

func (e *EngineTimeoutError) Unwrap() error {
	return e.Err
}
