package engine

// Status is the session lifecycle state. All changes go through the
// transition table below; there is no way to reach an undeclared state.
type Status int

const (
	StatusIdle Status = iota
	StatusActive
	StatusCompleting // transient, held only for the duration of Finalize
	StatusCompleted
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusActive:
		return "active"
	case StatusCompleting:
		return "completing"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// transitions is the closed set of legal status moves. Reset (to idle) is
// legal from every state and listed explicitly.
var transitions = map[Status][]Status{
	StatusIdle:       {StatusActive, StatusError, StatusIdle},
	StatusActive:     {StatusCompleting, StatusIdle},
	StatusCompleting: {StatusCompleted, StatusError, StatusIdle},
	StatusCompleted:  {StatusIdle},
	StatusError:      {StatusActive, StatusCompleting, StatusError, StatusIdle},
}

// canTransition reports whether from → to is a legal move.
func canTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
