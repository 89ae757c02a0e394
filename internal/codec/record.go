package codec

import (
	"fmt"

	"heenenweer/internal/domain"
)

const (
	playerCountBits  = 3
	dealerBits       = 3
	roundCountBits   = 5
	currentRoundBits = 5
	trumpBits        = 3
)

// MatchRecord is the packed form of a match. Field order on the wire:
//
//	name_length(8) name(8*len) n_players(3) players[n]{name_length(8) name}
//	start_dealer(3) n_rounds(5) current_round(5) trumps[19](3)
//	bids[n]{ScoreTable} tricks[19]{TrickFieldWidth}
//
// Bits are written most significant first and fields may straddle bytes; the
// last byte is zero padded.
type MatchRecord struct {
	Name         []byte
	Players      [][]byte
	StartDealer  uint8
	NumRounds    uint8
	CurrentRound uint8
	Trumps       []domain.Trump
	Bids         []ScoreTable
	Tricks       TrickTable
}

// Validate checks the record invariants that MarshalBinary relies on.
func (r *MatchRecord) Validate() error {
	n := len(r.Players)
	switch {
	case n == 0 || n > domain.MaxPlayers:
		return fmt.Errorf("%d players, want 1..%d: %w", n, domain.MaxPlayers, ErrValueRange)
	case len(r.Bids) != n:
		return fmt.Errorf("%d bid tables for %d players: %w", len(r.Bids), n, ErrValueRange)
	case int(r.StartDealer) >= n:
		return fmt.Errorf("start dealer %d outside roster of %d: %w", r.StartDealer, n, ErrValueRange)
	case r.NumRounds != domain.NumRounds || len(r.Trumps) != domain.NumRounds:
		return fmt.Errorf("%d rounds with %d trumps, want %d: %w", r.NumRounds, len(r.Trumps), domain.NumRounds, ErrValueRange)
	case r.CurrentRound < 1 || r.CurrentRound > domain.NumRounds+1:
		return fmt.Errorf("current round %d: %w", r.CurrentRound, ErrValueRange)
	}
	for i, trump := range r.Trumps {
		if !trump.Valid() {
			return fmt.Errorf("round %d trump %d: %w", i+1, uint8(trump), ErrValueRange)
		}
	}
	return nil
}

// MarshalBinary packs the record.
func (r *MatchRecord) MarshalBinary() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	bw := newBitWriter()
	if err := bw.writeString("name", r.Name); err != nil {
		return nil, err
	}
	if err := bw.writeBits("n_players", uint64(len(r.Players)), playerCountBits); err != nil {
		return nil, err
	}
	for i, name := range r.Players {
		if err := bw.writeString(fmt.Sprintf("player %d name", i), name); err != nil {
			return nil, err
		}
	}
	if err := bw.writeBits("start_dealer", uint64(r.StartDealer), dealerBits); err != nil {
		return nil, err
	}
	if err := bw.writeBits("n_rounds", uint64(r.NumRounds), roundCountBits); err != nil {
		return nil, err
	}
	if err := bw.writeBits("current_round", uint64(r.CurrentRound), currentRoundBits); err != nil {
		return nil, err
	}
	for i, trump := range r.Trumps {
		if err := bw.writeBits(fmt.Sprintf("trump round %d", i+1), uint64(trump), trumpBits); err != nil {
			return nil, err
		}
	}
	for i := range r.Bids {
		if err := r.Bids[i].write(bw, fmt.Sprintf("player %d bid", i)); err != nil {
			return nil, err
		}
	}
	if err := r.Tricks.write(bw); err != nil {
		return nil, err
	}
	return bw.bytes()
}

// UnmarshalBinary replaces r with the record packed in data. On error r is left untouched.
func (r *MatchRecord) UnmarshalBinary(data []byte) error {
	rec, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

// Unmarshal decodes a packed record. data must end with the byte holding the
// last trick field; trailing bytes are corrupt.
func Unmarshal(data []byte) (*MatchRecord, error) {
	br := newBitReader(data)
	rec := &MatchRecord{}

	var err error
	if rec.Name, err = br.readString("name"); err != nil {
		return nil, err
	}

	n, err := br.readBits("n_players", playerCountBits)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("n_players is zero: %w", ErrCorrupt)
	}
	rec.Players = make([][]byte, n)
	for i := range rec.Players {
		if rec.Players[i], err = br.readString(fmt.Sprintf("player %d name", i)); err != nil {
			return nil, err
		}
	}

	dealer, err := br.readBits("start_dealer", dealerBits)
	if err != nil {
		return nil, err
	}
	if dealer >= n {
		return nil, fmt.Errorf("start dealer %d outside roster of %d: %w", dealer, n, ErrCorrupt)
	}
	rec.StartDealer = uint8(dealer)

	rounds, err := br.readBits("n_rounds", roundCountBits)
	if err != nil {
		return nil, err
	}
	if rounds != domain.NumRounds {
		return nil, fmt.Errorf("n_rounds %d, want %d: %w", rounds, domain.NumRounds, ErrCorrupt)
	}
	rec.NumRounds = uint8(rounds)

	current, err := br.readBits("current_round", currentRoundBits)
	if err != nil {
		return nil, err
	}
	if current < 1 || current > domain.NumRounds+1 {
		return nil, fmt.Errorf("current round %d: %w", current, ErrCorrupt)
	}
	rec.CurrentRound = uint8(current)

	rec.Trumps = make([]domain.Trump, rounds)
	for i := range rec.Trumps {
		tag, err := br.readBits(fmt.Sprintf("trump round %d", i+1), trumpBits)
		if err != nil {
			return nil, err
		}
		trump := domain.Trump(tag)
		if !trump.Valid() {
			return nil, fmt.Errorf("round %d tag %d: %w", i+1, tag, ErrUnknownTrump)
		}
		rec.Trumps[i] = trump
	}

	rec.Bids = make([]ScoreTable, n)
	for i := range rec.Bids {
		if err := rec.Bids[i].read(br, fmt.Sprintf("player %d bid", i)); err != nil {
			return nil, err
		}
	}
	if err := rec.Tricks.read(br); err != nil {
		return nil, err
	}
	if used := (br.n + 7) / 8; len(data) > used {
		return nil, fmt.Errorf("%d bytes after the last trick field: %w", len(data)-used, ErrCorrupt)
	}
	return rec, nil
}

// BitLen is the number of meaningful bits MarshalBinary writes, before padding.
func (r *MatchRecord) BitLen() int {
	bits := 8 + 8*len(r.Name) + playerCountBits
	for _, name := range r.Players {
		bits += 8 + 8*len(name)
	}
	bits += dealerBits + roundCountBits + currentRoundBits + trumpBits*len(r.Trumps)
	for i := range r.Bids {
		bits += r.Bids[i].BitLen()
	}
	for round := 1; round <= domain.NumRounds; round++ {
		bits += int(TrickFieldWidth(round))
	}
	return bits
}
