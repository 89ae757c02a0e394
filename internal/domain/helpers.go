package domain

// CurrentRound derives the 1-based round the match is playing or about to bid on.
// A round with a full set of bids moves the match to that round; a full set of
// tricks moves it one further. A fresh match is on round 1, a finished one on
// NumRounds+1.
func (m *Match) CurrentRound() int {
	n := len(m.Players)
	current := 1
	for i, round := range m.Rounds {
		if round.BidsComplete(n) {
			current = i + 1
		}
		if round.TricksComplete(n) {
			current = i + 2
		}
	}
	return current
}

// StartDealer returns the dealer of the first round, or seat 0 before any round exists.
func (m *Match) StartDealer() int {
	if len(m.Rounds) == 0 {
		return 0
	}
	return m.Rounds[0].DealerID
}

// DealerForRound rotates the starting dealer one seat per round.
func DealerForRound(startDealer, nPlayers, round int) int {
	return (startDealer + round - 1) % nPlayers
}
