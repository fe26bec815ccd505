package reservation

import "strings"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ActiveStatuses are the statuses that consume equipment capacity.
var ActiveStatuses = []Status{StatusPending, StatusApproved}

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled, StatusCompleted},
}

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) IsTerminal() bool {
	_, ok := transitions[s]
	return !ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
