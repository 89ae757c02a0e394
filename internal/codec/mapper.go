package codec

import (
	"fmt"
	"unicode/utf8"

	"heenenweer/internal/domain"
)

// FromMatch packs a structured match. Rounds not yet present, and bids not
// yet placed, are stored as 0; CurrentRound tells which slots are meaningful.
func FromMatch(m *domain.Match) (*MatchRecord, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n := len(m.Players)
	rec := &MatchRecord{
		Name:         []byte(m.Name),
		Players:      make([][]byte, n),
		StartDealer:  uint8(m.StartDealer()),
		NumRounds:    domain.NumRounds,
		CurrentRound: uint8(m.CurrentRound()),
		Trumps:       make([]domain.Trump, domain.NumRounds),
		Bids:         make([]ScoreTable, n),
	}
	for i, p := range m.Players {
		rec.Players[i] = []byte(p.Name)
	}

	for i, round := range m.Rounds {
		number := i + 1
		rec.Trumps[i] = round.Trump
		for player, bid := range round.Bids {
			if err := rec.Bids[player].Set(number, bid); err != nil {
				return nil, fmt.Errorf("player %d bid: %w", player, err)
			}
		}
		if round.TricksComplete(n) {
			if err := rec.Tricks.Set(number, round.Tricks); err != nil {
				return nil, err
			}
		}
	}
	return rec, nil
}

// ToMatch rebuilds the structured match. Every round of the schedule is
// present; bids are reported up to the current round and tricks only for
// rounds already played.
func (r *MatchRecord) ToMatch() (*domain.Match, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if !utf8.Valid(r.Name) {
		return nil, fmt.Errorf("match name is not UTF-8: %w", ErrCorrupt)
	}

	n := len(r.Players)
	m := &domain.Match{
		GameVersion: domain.CurrentGameVersion,
		Name:        string(r.Name),
		Players:     make([]domain.Player, n),
		Rounds:      make([]domain.Round, 0, len(r.Trumps)),
	}
	for i, name := range r.Players {
		if !utf8.Valid(name) {
			return nil, fmt.Errorf("player %d name is not UTF-8: %w", i, ErrCorrupt)
		}
		m.Players[i] = domain.Player{ID: i, Name: string(name)}
	}

	current := int(r.CurrentRound)
	for i, trump := range r.Trumps {
		number := i + 1
		cards := domain.CardsInRound(number)
		round := domain.Round{
			CardsInRound: cards,
			Trump:        trump,
			Bids:         []int{},
			Tricks:       []int{},
			DealerID:     domain.DealerForRound(int(r.StartDealer), n, number),
		}

		if number <= current {
			for player := range r.Bids {
				bid := r.Bids[player].Get(number)
				if bid > cards {
					return nil, fmt.Errorf("round %d player %d bid %d exceeds %d cards: %w", number, player, bid, cards, ErrCorrupt)
				}
				round.Bids = append(round.Bids, bid)
			}
		}
		if number < current {
			tricks := r.Tricks.Tricks(number)
			if len(tricks) > n {
				return nil, fmt.Errorf("round %d holds %d trick counts for %d players: %w", number, len(tricks), n, ErrCorrupt)
			}
			for player, t := range tricks {
				if t > cards {
					return nil, fmt.Errorf("round %d player %d tricks %d exceeds %d cards: %w", number, player, t, cards, ErrCorrupt)
				}
			}
			round.Tricks = tricks
		}
		m.Rounds = append(m.Rounds, round)
	}
	return m, nil
}

// Encode packs a structured match into its byte form.
func Encode(m *domain.Match) ([]byte, error) {
	rec, err := FromMatch(m)
	if err != nil {
		return nil, err
	}
	return rec.MarshalBinary()
}

// Decode restores a structured match from its byte form.
func Decode(data []byte) (*domain.Match, error) {
	rec, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return rec.ToMatch()
}
