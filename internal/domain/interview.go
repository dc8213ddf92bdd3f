package domain

// Turn is a single utterance in an interview, by either speaker.
type Turn struct {
	Speaker   Speaker
	Text      string
	Timestamp Timestamp
}

// Interview is the aggregate for one mock interview session. JobRole and
// TechStack are fixed at creation; History is append-only and never
// reordered or truncated.
type Interview struct {
	ID        InterviewID
	JobRole   string
	TechStack string
	History   []Turn
	CreatedAt Timestamp
}

// LastTurn returns the most recent turn, or false for an empty history.
func (iv *Interview) LastTurn() (Turn, bool) {
	if len(iv.History) == 0 {
		return Turn{}, false
	}
	return iv.History[len(iv.History)-1], true
}

// Clone returns a deep copy so callers can mutate the result without
// touching stored state.
func (iv *Interview) Clone() *Interview {
	out := *iv
	out.History = make([]Turn, len(iv.History))
	copy(out.History, iv.History)
	return &out
}
