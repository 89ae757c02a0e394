package codec

import (
	"fmt"

	"heenenweer/internal/domain"
)

// Scheme selects how a round's bid or trick count is tagged.
type Scheme uint8

const (
	// ZeroNonZero spends one bit on zero; tag 1 carries value-1 in the payload.
	ZeroNonZero Scheme = iota
	// MaxThreeOrHigher stores 0..3 in a 2-bit payload; tag 1 carries value-3.
	MaxThreeOrHigher
)

// maxThreeBits is the payload width of the MaxThreeOrHigher low branch.
const maxThreeBits = 2

func (s Scheme) String() string {
	switch s {
	case ZeroNonZero:
		return "ZeroNonZero"
	case MaxThreeOrHigher:
		return "MaxThreeOrHigher"
	default:
		return fmt.Sprintf("Scheme(%d)", uint8(s))
	}
}

// RoundValueCodec encodes one small score value with a tagged variable width.
type RoundValueCodec struct {
	Scheme Scheme
	Bits   uint8 // payload width of the tag=1 branch
}

// Slot is a tagged value as it appears in the packed stream.
type Slot struct {
	Tag     uint8
	Payload uint8
}

// roundCodecs is sized per round from the cards dealt: the larger deals keep
// values 0..3 at three bits, the small deals special-case zero.
var roundCodecs = [domain.NumRounds]RoundValueCodec{
	{MaxThreeOrHigher, 3}, // 10
	{MaxThreeOrHigher, 3}, // 9
	{MaxThreeOrHigher, 3}, // 8
	{MaxThreeOrHigher, 3}, // 7
	{MaxThreeOrHigher, 2}, // 6
	{ZeroNonZero, 3},      // 5
	{ZeroNonZero, 2},      // 4
	{ZeroNonZero, 2},      // 3
	{ZeroNonZero, 1},      // 2
	{ZeroNonZero, 1},      // 1
	{ZeroNonZero, 1},      // 2
	{ZeroNonZero, 2},      // 3
	{ZeroNonZero, 2},      // 4
	{ZeroNonZero, 3},      // 5
	{MaxThreeOrHigher, 2}, // 6
	{MaxThreeOrHigher, 3}, // 7
	{MaxThreeOrHigher, 3}, // 8
	{MaxThreeOrHigher, 3}, // 9
	{MaxThreeOrHigher, 3}, // 10
}

// CodecForRound returns the codec of a 1-based round. Invalid rounds panic.
func CodecForRound(round int) RoundValueCodec {
	mustRound(round)
	return roundCodecs[round-1]
}

// Max is the largest value the codec can represent.
func (c RoundValueCodec) Max() int {
	top := 1<<c.Bits - 1
	if c.Scheme == MaxThreeOrHigher {
		return top + 3
	}
	return top + 1
}

// Encode maps v to its slot. Values the scheme cannot hold are rejected, never truncated.
func (c RoundValueCodec) Encode(v int) (Slot, error) {
	if v < 0 || v > c.Max() {
		return Slot{}, fmt.Errorf("%d outside 0..%d for %s(%d): %w", v, c.Max(), c.Scheme, c.Bits, ErrValueRange)
	}
	switch c.Scheme {
	case MaxThreeOrHigher:
		if v <= 3 {
			return Slot{Tag: 0, Payload: uint8(v)}, nil
		}
		return Slot{Tag: 1, Payload: uint8(v - 3)}, nil
	default:
		if v == 0 {
			return Slot{}, nil
		}
		return Slot{Tag: 1, Payload: uint8(v - 1)}, nil
	}
}

// Decode maps a slot back to its value.
func (c RoundValueCodec) Decode(s Slot) int {
	switch c.Scheme {
	case MaxThreeOrHigher:
		if s.Tag == 0 {
			return int(s.Payload)
		}
		return int(s.Payload) + 3
	default:
		if s.Tag == 0 {
			return 0
		}
		return int(s.Payload) + 1
	}
}

// Width is the number of bits the slot occupies, tag included.
func (c RoundValueCodec) Width(s Slot) int {
	return 1 + int(c.payloadBits(s.Tag))
}

func (c RoundValueCodec) payloadBits(tag uint8) uint8 {
	if tag == 1 {
		return c.Bits
	}
	if c.Scheme == MaxThreeOrHigher {
		return maxThreeBits
	}
	return 0
}

func (c RoundValueCodec) write(bw *bitWriter, field string, s Slot) error {
	if err := bw.writeBits(field+" tag", uint64(s.Tag), 1); err != nil {
		return err
	}
	if width := c.payloadBits(s.Tag); width > 0 {
		return bw.writeBits(field, uint64(s.Payload), width)
	}
	return nil
}

func (c RoundValueCodec) read(br *bitReader, field string) (Slot, error) {
	tag, err := br.readBits(field+" tag", 1)
	if err != nil {
		return Slot{}, err
	}
	s := Slot{Tag: uint8(tag)}
	if width := c.payloadBits(s.Tag); width > 0 {
		payload, err := br.readBits(field, width)
		if err != nil {
			return Slot{}, err
		}
		s.Payload = uint8(payload)
	}
	return s, nil
}

func mustRound(round int) {
	if round < 1 || round > domain.NumRounds {
		panic(fmt.Sprintf("codec: invalid round %d", round))
	}
}
