package offer

type Status string

const (
	StatusProposed  Status = "proposed"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusWithdrawn Status = "withdrawn"
	StatusExpired   Status = "expired"
)

var transitions = map[Status][]Status{
	StatusProposed: {StatusAccepted, StatusDeclined, StatusWithdrawn, StatusExpired},
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusProposed, StatusAccepted, StatusDeclined, StatusWithdrawn, StatusExpired:
		return true
	default:
		return false
	}
}

// BlocksNewOffer reports whether an offer in this status still counts
// against the one-offer-per-provider-per-intent rule. Only withdrawal
// frees the slot; a declined or expired offer keeps it occupied.
func (s Status) BlocksNewOffer() bool {
	return s != StatusWithdrawn
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
