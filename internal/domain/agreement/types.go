package agreement

type Status string

const (
	StatusPending   Status = "pending"
	StatusSigned    Status = "signed"
	StatusActive    Status = "active"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
	StatusDisputed  Status = "disputed"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusSigned, StatusCancelled},
	StatusSigned:  {StatusActive, StatusCancelled},
	StatusActive:  {StatusFulfilled, StatusDisputed},
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSigned, StatusActive, StatusFulfilled, StatusCancelled, StatusDisputed:
		return true
	default:
		return false
	}
}

// IsSettled reports whether the agreement is immutable.
func (s Status) IsSettled() bool {
	return s == StatusFulfilled || s == StatusCancelled
}

// BlocksResource reports whether an agreement in this status reserves its
// resource instance for double-booking checks.
func (s Status) BlocksResource() bool {
	return s == StatusSigned || s == StatusActive
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
