package codec

import (
	"fmt"

	"heenenweer/internal/domain"
)

// ScoreTable holds one player's bids for all rounds, each slot sized by its round's codec.
type ScoreTable struct {
	slots [domain.NumRounds]Slot
}

// Get returns the value stored for a 1-based round. Invalid rounds panic.
func (t *ScoreTable) Get(round int) int {
	return CodecForRound(round).Decode(t.slots[round-1])
}

// Set stores v for a 1-based round. v must be within the cards dealt that round.
func (t *ScoreTable) Set(round, v int) error {
	codec := CodecForRound(round)
	if cards := domain.CardsInRound(round); v < 0 || v > cards {
		return fmt.Errorf("round %d value %d outside 0..%d: %w", round, v, cards, ErrValueRange)
	}
	slot, err := codec.Encode(v)
	if err != nil {
		return fmt.Errorf("round %d: %w", round, err)
	}
	t.slots[round-1] = slot
	return nil
}

// Slot returns the raw tagged slot for a round.
func (t *ScoreTable) Slot(round int) Slot {
	mustRound(round)
	return t.slots[round-1]
}

// BitLen is the packed size of the table.
func (t *ScoreTable) BitLen() int {
	n := 0
	for i, s := range t.slots {
		n += roundCodecs[i].Width(s)
	}
	return n
}

func (t *ScoreTable) write(bw *bitWriter, field string) error {
	for i, s := range t.slots {
		if err := roundCodecs[i].write(bw, fmt.Sprintf("%s round %d", field, i+1), s); err != nil {
			return err
		}
	}
	return nil
}

func (t *ScoreTable) read(br *bitReader, field string) error {
	for i := range t.slots {
		s, err := roundCodecs[i].read(br, fmt.Sprintf("%s round %d", field, i+1))
		if err != nil {
			return err
		}
		t.slots[i] = s
	}
	return nil
}

// TrickTable holds one packed trick field per round, see PackTricks.
type TrickTable struct {
	fields [domain.NumRounds]uint64
}

// Get returns the raw packed field of a 1-based round. Invalid rounds panic.
func (t *TrickTable) Get(round int) uint64 {
	mustRound(round)
	return t.fields[round-1]
}

// Tricks unpacks a round's field into per-player trick counts.
func (t *TrickTable) Tricks(round int) []int {
	return UnpackTricks(t.Get(round))
}

// Set packs tricks into a round's field. Each count must be within the cards
// dealt and the runs must fit TrickFieldWidth. An empty slice clears the field.
func (t *TrickTable) Set(round int, tricks []int) error {
	mustRound(round)
	cards := domain.CardsInRound(round)
	for i, v := range tricks {
		if v < 0 || v > cards {
			return fmt.Errorf("round %d player %d tricks %d outside 0..%d: %w", round, i, v, cards, ErrValueRange)
		}
	}
	if cost, width := PackedTricksCost(tricks), int(TrickFieldWidth(round)); cost > width {
		return fmt.Errorf("round %d needs %d bits, field holds %d: %w", round, cost, width, ErrFieldOverflow)
	}
	packed, err := PackTricks(tricks)
	if err != nil {
		return fmt.Errorf("round %d: %w", round, err)
	}
	t.fields[round-1] = packed
	return nil
}

func (t *TrickTable) write(bw *bitWriter) error {
	for i, v := range t.fields {
		if err := bw.writeBits(fmt.Sprintf("tricks round %d", i+1), v, TrickFieldWidth(i+1)); err != nil {
			return err
		}
	}
	return nil
}

func (t *TrickTable) read(br *bitReader) error {
	for i := range t.fields {
		v, err := br.readBits(fmt.Sprintf("tricks round %d", i+1), TrickFieldWidth(i+1))
		if err != nil {
			return err
		}
		t.fields[i] = v
	}
	return nil
}
