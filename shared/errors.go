package shared

import (
	"fmt"
	"time"
)

// EmptyInputError is returned when there are no bars to process.
type EmptyInputError struct{}

// Error implements the error interface.
func (e *EmptyInputError) Error() string {
	return "bar series is empty"
}

// InputOrderError is returned when a bar's timestamp does not strictly
// follow the previous bar's timestamp.
type InputOrderError struct {
	Index    int
	Previous time.Time
	Current  time.Time
}

// Error implements the error interface.
func (e *InputOrderError) Error() string {
	if e.Current.Equal(e.Previous) {
		return fmt.Sprintf("duplicate bar timestamp %s at index %d",
			e.Current.Format(DateLayout), e.Index)
	}

	return fmt.Sprintf("bar at index %d (%s) is not after the previous bar (%s)",
		e.Index, e.Current.Format(DateLayout), e.Previous.Format(DateLayout))
}

// ClassifierContractError is returned when a classifier response violates
// the prediction contract.
type ClassifierContractError struct {
	Reason string
}

// Error implements the error interface.
func (e *ClassifierContractError) Error() string {
	return fmt.Sprintf("classifier contract violation: %s", e.Reason)
}
