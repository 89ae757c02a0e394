package domain

import "fmt"

const (
	// NumRounds is the fixed length of a match: ten rounds down to a single card and back up.
	NumRounds = 19

	// MaxPlayers is the largest roster the packed format can count (3 bits).
	MaxPlayers = 7

	// MaxTrickPlayers is the largest roster whose completed rounds fit the packed trick fields.
	MaxTrickPlayers = 5

	// MaxNameLength bounds match and player names in bytes (8-bit length prefix).
	MaxNameLength = 255

	// CurrentGameVersion is reported for every match restored from a packed record.
	CurrentGameVersion = 3
)

var cardsPerRound = [NumRounds]int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// CardsInRound returns how many cards are dealt in the 1-based round.
// Round numbers are fixed by the game rules, so anything outside 1..NumRounds panics.
func CardsInRound(round int) int {
	if round < 1 || round > NumRounds {
		panic(fmt.Sprintf("domain: invalid round %d", round))
	}
	return cardsPerRound[round-1]
}
