package intent

type Status string

const (
	StatusPending   Status = "pending"
	StatusMatched   Status = "matched"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusFulfilled Status = "fulfilled"
	StatusExpired   Status = "expired"
)

// transitions is the closed table for Intent status changes. Anything not
// listed here is an invalid transition.
var transitions = map[Status][]Status{
	StatusPending: {StatusMatched, StatusDeclined, StatusCancelled, StatusExpired},
	StatusMatched: {StatusFulfilled},
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusMatched, StatusDeclined, StatusCancelled, StatusFulfilled, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusDeclined, StatusCancelled, StatusFulfilled, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
