package fulfillment

// Action identifies which physical leg of the agreement a fulfillment
// executes.
type Action string

const (
	// ActionPickup transfers custody of the resource to the receiver.
	ActionPickup Action = "pickup"
	// ActionReturn brings the resource back to the provider.
	ActionReturn Action = "return"
)

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool {
	return a == ActionPickup || a == ActionReturn
}

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusFailed     Status = "failed"
)

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled, StatusFailed},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusFailed},
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusFailed:
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
