package schedule

import "fmt"

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// transitions lists the allowed targets for each status. completed is terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow},
	StatusConfirmed: {StatusPending, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCancelled: {StatusPending, StatusConfirmed},
	StatusNoShow:    {StatusPending, StatusCancelled},
	StatusCompleted: {},
}

// CanTransition reports whether from may move to to. Same-status updates are allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s.
func AllowedTransitions(s Status) []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])
	return out
}

// IsActive reports whether the appointment still occupies the professional's time.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}
