package domain

// transitions is the closed set of legal forward edges. Received and
// cancelled are terminal; backward edges are rejected outright.
// Waiting may jump straight to received when goods arrive before the
// order was ever marked in process.
var transitions = map[Status][]Status{
	StatusWaiting:   {StatusInProcess, StatusReceived, StatusCancelled},
	StatusInProcess: {StatusReceived, StatusCancelled},
	StatusReceived:  {},
	StatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal edge.
// A received -> received "transition" is legal but must be treated as
// a no-op by the caller (idempotent receive).
func CanTransition(from, to Status) bool {
	if from == StatusReceived && to == StatusReceived {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func Terminal(s Status) bool {
	return len(transitions[s]) == 0
}
