// Package requeststatus represents the maintenance request status in the system.
package requeststatus

import "fmt"

// The set of statuses a maintenance request moves through. New and InProgress
// count as open work. Repaired and Scrap are terminal.
var (
	New        = newStatus("NEW")
	InProgress = newStatus("IN_PROGRESS")
	Repaired   = newStatus("REPAIRED")
	Scrap      = newStatus("SCRAP")
)

// =============================================================================

// Set of known statuses.
var statuses = make(map[string]Status)

// Status represents a maintenance request status in the system.
type Status struct {
	value string
}

func newStatus(status string) Status {
	s := Status{status}
	statuses[status] = s
	return s
}

// String returns the name of the status.
func (s Status) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Status) Equal(s2 Status) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// IsOpen reports whether the status represents work still to be done.
func (s Status) IsOpen() bool {
	return s == New || s == InProgress
}

// =============================================================================

// All returns the complete set of statuses in kanban column order.
func All() []Status {
	return []Status{New, InProgress, Repaired, Scrap}
}

// Open returns the statuses that count as open work.
func Open() []Status {
	return []Status{New, InProgress}
}

// Parse parses the string value and returns a status if one exists.
func Parse(value string) (Status, error) {
	status, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid status %q", value)
	}

	return status, nil
}

// MustParse parses the string value and returns a status if one exists. If
// an error occurs the function panics.
func MustParse(value string) Status {
	status, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return status
}
