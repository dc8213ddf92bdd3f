package domain

// AppendTurn returns a new history equal to history with turn placed at the
// end. The input slice is never aliased: appends to the result cannot leak
// into a history a caller is still holding. Alternation between speakers is
// not checked here; that policy belongs to the orchestrator.
func AppendTurn(history []Turn, turn Turn) []Turn {
	out := make([]Turn, len(history)+1)
	copy(out, history)
	out[len(history)] = turn
	return out
}
