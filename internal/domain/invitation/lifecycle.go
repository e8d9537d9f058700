package invitation

import "fmt"

// Cancellation deletes the record, so it is not a state in this table.
var validTransitions = map[Status][]Status{
	StatusPending: {
		StatusAccepted,
	},
	StatusAccepted: {
		// Terminal state
	},
}

// ValidateStatusTransition checks if a status transition is allowed
func ValidateStatusTransition(current, next Status) error {
	if !current.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, current)
	}
	if !next.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}

	for _, s := range GetAllowedTransitions(current) {
		if s == next {
			return nil
		}
	}

	if current == StatusAccepted {
		return ErrAlreadyAccepted
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
}

// GetAllowedTransitions returns allowed next statuses. Terminal and unknown
// statuses have none.
func GetAllowedTransitions(current Status) []Status {
	return validTransitions[current]
}
