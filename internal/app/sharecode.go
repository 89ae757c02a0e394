package app

import (
	"encoding/base64"
	"errors"
	"fmt"

	"heenenweer/internal/codec"
	"heenenweer/internal/domain"
)

// ErrInvalidShareCode is returned for codes that are not URL-safe base64.
var ErrInvalidShareCode = errors.New("invalid share code")

// ShareCode packs a match into the short text form embedded in share links.
func ShareCode(m *domain.Match) (string, error) {
	data, err := codec.Encode(m)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// ParseShareCode restores the match behind a share code.
func ParseShareCode(code string) (*domain.Match, error) {
	data, err := decodeShareCode(code)
	if err != nil {
		return nil, err
	}
	return codec.Decode(data)
}

// ParseShareRecord returns the packed record behind a share code without mapping it.
func ParseShareRecord(code string) (*codec.MatchRecord, error) {
	data, err := decodeShareCode(code)
	if err != nil {
		return nil, err
	}
	return codec.Unmarshal(data)
}

func decodeShareCode(code string) ([]byte, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidShareCode)
	}
	data, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}
	return data, nil
}
