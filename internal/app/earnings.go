package app

import (
	"errors"
	"fmt"

	"heenenweer/internal/domain"
)

// PayoutStrategy names how losers settle with the winners of a finished match.
type PayoutStrategy string

const (
	// WinnerTakesAll: last place pays lastPlacePays, every other loser pays
	// loserPays, and the winners split the pot.
	WinnerTakesAll PayoutStrategy = "winner_takes_all"
	// SecondPlaceBreaksEven is WinnerTakesAll except that, behind a single
	// winner, second place pays nothing.
	SecondPlaceBreaksEven PayoutStrategy = "second_place_breaks_even"
)

const (
	lastPlacePays = 3.0
	loserPays     = 1.5
)

var ErrUnknownPayoutStrategy = errors.New("unknown payout strategy")

// ParsePayoutStrategy resolves a strategy name; empty selects WinnerTakesAll.
func ParsePayoutStrategy(name string) (PayoutStrategy, error) {
	switch s := PayoutStrategy(name); s {
	case "":
		return WinnerTakesAll, nil
	case WinnerTakesAll, SecondPlaceBreaksEven:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPayoutStrategy, name)
	}
}

// Earning is one player's settlement. Positive amounts are won.
type Earning struct {
	PlayerID int     `json:"playerId"`
	Name     string  `json:"name"`
	Score    int     `json:"score"`
	Amount   float64 `json:"amount"`
}

// Earnings settles m by its current scores, in roster order.
func Earnings(m *domain.Match, strategy PayoutStrategy) ([]Earning, error) {
	if _, err := ParsePayoutStrategy(string(strategy)); err != nil {
		return nil, err
	}
	scores := m.Scores()
	amounts := SettleScores(scores, strategy)

	earnings := make([]Earning, len(m.Players))
	for i, p := range m.Players {
		earnings[i] = Earning{PlayerID: p.ID, Name: p.Name, Score: scores[i], Amount: amounts[i]}
	}
	return earnings, nil
}

// SettleScores returns what each score wins (positive) or pays (negative).
// Everyone tied on top settles at zero.
func SettleScores(scores []int, strategy PayoutStrategy) []float64 {
	amounts := make([]float64, len(scores))
	if len(scores) == 0 {
		return amounts
	}

	best, worst := scores[0], scores[0]
	for _, s := range scores[1:] {
		best = max(best, s)
		worst = min(worst, s)
	}
	if best == worst {
		return amounts
	}

	var winners []int
	for i, s := range scores {
		if s == best {
			winners = append(winners, i)
		}
	}

	second, hasSecond := 0, false
	if strategy == SecondPlaceBreaksEven && len(winners) == 1 {
		for _, s := range scores {
			if s < best && (!hasSecond || s > second) {
				second, hasSecond = s, true
			}
		}
	}

	pot := 0.0
	for i, s := range scores {
		var pays float64
		switch {
		case s == best:
			continue
		case s == worst:
			pays = lastPlacePays
		case hasSecond && s == second:
			pays = 0
		default:
			pays = loserPays
		}
		amounts[i] = -pays
		pot += pays
	}

	share := pot / float64(len(winners))
	for _, i := range winners {
		amounts[i] = share
	}
	return amounts
}
