package domain

// Player is a roster entry. IDs are seat positions, 0-based.
type Player struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Round holds everything recorded for one deal of the match.
type Round struct {
	CardsInRound int   `json:"nCards"`
	Trump        Trump `json:"trump"`
	Bids         []int `json:"bids"`   // per player, in roster order; shorter while bidding
	Tricks       []int `json:"tricks"` // per player, in roster order; empty until the round is played
	DealerID     int   `json:"dealerId"`
}

// Match is the structured representation exchanged with clients.
type Match struct {
	GameVersion int      `json:"gameVersion"`
	Name        string   `json:"name"`
	Players     []Player `json:"players"`
	Rounds      []Round  `json:"rounds"`
}

// BidsComplete reports whether every player has bid in the round.
func (r Round) BidsComplete(nPlayers int) bool {
	return len(r.Bids) == nPlayers
}

// TricksComplete reports whether trick counts are recorded for every player.
func (r Round) TricksComplete(nPlayers int) bool {
	return len(r.Tricks) == nPlayers
}
