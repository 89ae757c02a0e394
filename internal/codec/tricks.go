package codec

import (
	"fmt"

	"heenenweer/internal/domain"
)

// ProvisionedPlayers is the roster size every packed trick field is sized for:
// a round's field holds its cards dealt plus one stop bit per player.
const ProvisionedPlayers = domain.MaxTrickPlayers

// TrickFieldWidth is the bit width of a round's packed trick field,
// 15 bits for ten cards down to 6 bits for the single-card round.
func TrickFieldWidth(round int) uint8 {
	return uint8(domain.CardsInRound(round) + ProvisionedPlayers)
}

// PackedTricksCost is the number of bits PackTricks needs for tricks.
func PackedTricksCost(tricks []int) int {
	cost := len(tricks)
	for _, t := range tricks {
		cost += t
	}
	return cost
}

// PackTricks concatenates one unary run per player, most significant bit
// first: a 1 bit followed by as many 0 bits as the player won tricks. The
// leading 1 doubles as a guard so a first player with zero tricks survives.
// An empty sequence packs to 0.
func PackTricks(tricks []int) (uint64, error) {
	if PackedTricksCost(tricks) > 64 {
		return 0, fmt.Errorf("%d bits of trick runs: %w", PackedTricksCost(tricks), ErrFieldOverflow)
	}
	if len(tricks) == 0 {
		return 0, nil
	}

	packed := uint64(1)
	for i, t := range tricks {
		if t < 0 {
			return 0, fmt.Errorf("player %d tricks %d: %w", i, t, ErrValueRange)
		}
		if i > 0 {
			packed = packed<<1 | 1
		}
		packed <<= uint(t)
	}
	return packed, nil
}

// UnpackTricks reverses PackTricks. Runs are read from the least significant
// bit up, so they come out last player first and are reversed at the end.
func UnpackTricks(packed uint64) []int {
	tricks := []int{}
	run := 0
	for v := packed; v != 0; v >>= 1 {
		if v&1 == 1 {
			tricks = append(tricks, run)
			run = 0
			continue
		}
		run++
	}

	for i, j := 0, len(tricks)-1; i < j; i, j = i+1, j-1 {
		tricks[i], tricks[j] = tricks[j], tricks[i]
	}
	return tricks
}
