package reservation

// transitions is the complete set of legal status edges. Anything absent
// fails with ErrInvalidTransition, including through the administrative
// update path; NO_SHOW is reachable from every non-terminal status but
// has no dedicated operation.
var transitions = map[Status]map[Status]struct{}{
	StatusPending: {
		StatusConfirmed: {},
		StatusCancelled: {},
		StatusNoShow:    {},
	},
	StatusConfirmed: {
		StatusInProgress: {},
		StatusCompleted:  {},
		StatusCancelled:  {},
		StatusNoShow:     {},
	},
	StatusInProgress: {
		StatusCompleted: {},
		StatusNoShow:    {},
	},
}

func CanTransition(from, to Status) bool {
	edges, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = edges[to]
	return ok
}
