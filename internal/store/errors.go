package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/model"
)

// Sentinel errors for the registry and aggregator contracts. All are
// recoverable; callers match them with errors.Is and decide whether to
// retry, re-verify, or surface to an operator.
var (
	ErrNotFound        = errors.New("item not found")
	ErrMissingShipment = errors.New("ship action requires a shipment")
	ErrDuplicateSerial = errors.New("serial number already registered")
	ErrCodeCollision   = errors.New("tracking code collision")
	ErrUnknownAction   = errors.New("unknown scan action")

	// ErrInvalidTransition is the errors.Is target for
	// *InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvalidTransitionError reports an action that is not legal from the item's
// current status. Status is the authoritative status at decision time, so a
// racing operator can reconcile instead of blindly retrying.
type InvalidTransitionError struct {
	Serial string
	Action model.Action
	Status model.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s item %s: status is %s", e.Action, e.Serial, e.Status)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure on the given column.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
