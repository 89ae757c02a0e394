package domain

import (
	"encoding/json"
	"fmt"
)

// Trump identifies the trump suit of a round. The numeric ids are persisted.
type Trump uint8

const (
	TrumpSpade Trump = iota
	TrumpHeart
	TrumpClub
	TrumpDiamond
	TrumpNone
)

// legacyTrumps maps the names older clients stored before numeric ids.
var legacyTrumps = map[string]Trump{
	"spade":   TrumpSpade,
	"heart":   TrumpHeart,
	"club":    TrumpClub,
	"diamond": TrumpDiamond,
	"none":    TrumpNone,
}

// Valid reports whether t is one of the five known trumps.
func (t Trump) Valid() bool {
	return t <= TrumpNone
}

func (t Trump) String() string {
	switch t {
	case TrumpSpade:
		return "spade"
	case TrumpHeart:
		return "heart"
	case TrumpClub:
		return "club"
	case TrumpDiamond:
		return "diamond"
	case TrumpNone:
		return "none"
	default:
		return fmt.Sprintf("Trump(%d)", uint8(t))
	}
}

// UnmarshalJSON accepts the numeric id or a legacy trump name.
func (t *Trump) UnmarshalJSON(data []byte) error {
	var id uint8
	if err := json.Unmarshal(data, &id); err == nil {
		*t = Trump(id)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("trump must be a number or a name: %w", err)
	}
	migrated, ok := legacyTrumps[name]
	if !ok {
		return fmt.Errorf("unknown trump name %q", name)
	}
	*t = migrated
	return nil
}
