package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced transaction or report
	// does not exist in the store.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyPaid rejects a payout on a report whose salary has
	// already been paid out. Checked before any write.
	ErrAlreadyPaid = errors.New("report salary is already paid")

	// ErrInvalidInput rejects malformed write payloads before they
	// reach the store.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError blocks period report generation while the range still
// contains transactions without admin confirmation. Dates is the distinct
// sorted list of offending days.
type ValidationError struct {
	Dates []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("unconfirmed transactions on: %s", strings.Join(e.Dates, ", "))
}

// PartialPayoutError reports a payout that left the store inconsistent:
// the report is flagged paid but the matching cash-ledger entry is missing
// (or the compensating revert failed). Manual reconciliation is required.
type PartialPayoutError struct {
	ReportID int64
	Step     string
	Err      error
}

func (e *PartialPayoutError) Error() string {
	return fmt.Sprintf("partial payout failure on report %d at step %q: %v", e.ReportID, e.Step, e.Err)
}

func (e *PartialPayoutError) Unwrap() error { return e.Err }
