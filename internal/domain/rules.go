package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidMatch marks structured input that cannot be packed.
var ErrInvalidMatch = errors.New("invalid match")

// pointsForMadeBid is the bonus on top of the tricks won when a bid is met.
const pointsForMadeBid = 5

// Validate checks the structured match against the limits of the packed format.
func (m *Match) Validate() error {
	if err := validateName("match name", m.Name); err != nil {
		return err
	}

	n := len(m.Players)
	if n == 0 {
		return fmt.Errorf("%w: no players", ErrInvalidMatch)
	}
	if n > MaxPlayers {
		return fmt.Errorf("%w: %d players, at most %d supported", ErrInvalidMatch, n, MaxPlayers)
	}
	for i, p := range m.Players {
		if err := validateName(fmt.Sprintf("player %d name", i), p.Name); err != nil {
			return err
		}
	}

	if len(m.Rounds) > NumRounds {
		return fmt.Errorf("%w: %d rounds, a match has %d", ErrInvalidMatch, len(m.Rounds), NumRounds)
	}
	if dealer := m.StartDealer(); dealer < 0 || dealer >= n {
		return fmt.Errorf("%w: start dealer %d outside roster of %d", ErrInvalidMatch, dealer, n)
	}

	for i, round := range m.Rounds {
		number := i + 1
		cards := CardsInRound(number)
		if round.CardsInRound != cards {
			return fmt.Errorf("%w: round %d deals %d cards, got %d", ErrInvalidMatch, number, cards, round.CardsInRound)
		}
		if !round.Trump.Valid() {
			return fmt.Errorf("%w: round %d: unknown trump %d", ErrInvalidMatch, number, uint8(round.Trump))
		}
		if err := validateScores(number, "bids", round.Bids, n, cards); err != nil {
			return err
		}
		if err := validateScores(number, "tricks", round.Tricks, n, cards); err != nil {
			return err
		}
		if n > MaxTrickPlayers && round.TricksComplete(n) {
			return fmt.Errorf("%w: round %d records tricks for %d players, at most %d can be packed", ErrInvalidMatch, number, n, MaxTrickPlayers)
		}
	}
	return nil
}

// Scores tallies points per player over rounds whose tricks are all recorded.
func (m *Match) Scores() []int {
	n := len(m.Players)
	scores := make([]int, n)
	for _, round := range m.Rounds {
		if !round.TricksComplete(n) || !round.BidsComplete(n) {
			continue
		}
		for i, tricks := range round.Tricks {
			scores[i] += tricks
			if round.Bids[i] == tricks {
				scores[i] += pointsForMadeBid
			}
		}
	}
	return scores
}

func validateName(what, name string) error {
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %s is %d bytes, at most %d", ErrInvalidMatch, what, len(name), MaxNameLength)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidMatch, what)
	}
	return nil
}

func validateScores(round int, what string, values []int, nPlayers, cards int) error {
	if len(values) > nPlayers {
		return fmt.Errorf("%w: round %d has %d %s for %d players", ErrInvalidMatch, round, len(values), what, nPlayers)
	}
	for i, v := range values {
		if v < 0 || v > cards {
			return fmt.Errorf("%w: round %d: player %d %s %d outside 0..%d", ErrInvalidMatch, round, i, what, v, cards)
		}
	}
	return nil
}
