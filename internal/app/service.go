package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"heenenweer/internal/domain"
	"heenenweer/internal/ports"
)

var (
	ErrNoUser         = errors.New("user id is required")
	ErrMatchNotFound  = errors.New("saved match not found")
	ErrTooManyMatches = errors.New("saved match limit reached")
	ErrStoreNotReady  = errors.New("match store not configured")
)

// MatchSummary describes a saved match for listings.
type MatchSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Players      []string `json:"players"`
	CurrentRound int      `json:"currentRound"`
	Code         string   `json:"code"`
}

// Standing is one player's position by score.
type Standing struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// Service holds the saved-match use-cases on top of a MatchStore.
type Service struct {
	store    ports.MatchStore
	maxSaved int
	newID    func() string
}

// NewService constructs a Service. maxSaved <= 0 uses DefaultMaxSavedMatches.
func NewService(store ports.MatchStore, maxSaved int) *Service {
	if maxSaved <= 0 {
		maxSaved = DefaultMaxSavedMatches
	}
	return &Service{store: store, maxSaved: maxSaved, newID: uuid.NewString}
}

// SaveMatch stores m for userID under id, assigning a fresh id when empty.
// New ids count against the per-user limit; overwriting an existing one does not.
func (s *Service) SaveMatch(ctx context.Context, userID, id string, m *domain.Match) (MatchSummary, error) {
	if err := s.ready(userID); err != nil {
		return MatchSummary{}, err
	}

	code, err := ShareCode(m)
	if err != nil {
		return MatchSummary{}, err
	}

	if id == "" {
		id = s.newID()
	}
	saved, err := s.store.List(ctx, userID)
	if err != nil {
		return MatchSummary{}, fmt.Errorf("failed to list saved matches: %w", err)
	}
	if !containsID(saved, id) && len(saved) >= s.maxSaved {
		return MatchSummary{}, fmt.Errorf("%w: %d of %d", ErrTooManyMatches, len(saved), s.maxSaved)
	}

	if err := s.store.Put(ctx, userID, ports.StoredMatch{ID: id, Code: code}); err != nil {
		return MatchSummary{}, fmt.Errorf("failed to store match %s: %w", id, err)
	}
	return summarize(id, code, m), nil
}

// LoadMatch returns a saved match and its share code.
func (s *Service) LoadMatch(ctx context.Context, userID, id string) (*domain.Match, string, error) {
	if err := s.ready(userID); err != nil {
		return nil, "", err
	}

	stored, err := s.store.Get(ctx, userID, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, "", fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read match %s: %w", id, err)
	}

	m, err := ParseShareCode(stored.Code)
	if err != nil {
		return nil, "", fmt.Errorf("saved match %s: %w", id, err)
	}
	return m, stored.Code, nil
}

// ListMatches summarizes every match saved by userID, ordered by id.
func (s *Service) ListMatches(ctx context.Context, userID string) ([]MatchSummary, error) {
	if err := s.ready(userID); err != nil {
		return nil, err
	}

	saved, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved matches: %w", err)
	}

	summaries := make([]MatchSummary, 0, len(saved))
	for _, stored := range saved {
		m, err := ParseShareCode(stored.Code)
		if err != nil {
			return nil, fmt.Errorf("saved match %s: %w", stored.ID, err)
		}
		summaries = append(summaries, summarize(stored.ID, stored.Code, m))
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

// MatchExists reports whether userID has a match saved under id.
func (s *Service) MatchExists(ctx context.Context, userID, id string) (bool, error) {
	if err := s.ready(userID); err != nil {
		return false, err
	}
	_, err := s.store.Get(ctx, userID, id)
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read match %s: %w", id, err)
	}
	return true, nil
}

// DeleteMatch removes a saved match. Missing ids fail with ErrMatchNotFound.
func (s *Service) DeleteMatch(ctx context.Context, userID, id string) error {
	exists, err := s.MatchExists(ctx, userID, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	if err := s.store.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	return nil
}

// Standings ranks players by score, highest first; ties keep roster order.
func Standings(m *domain.Match) []Standing {
	scores := m.Scores()
	standings := make([]Standing, len(m.Players))
	for i, p := range m.Players {
		standings[i] = Standing{PlayerID: p.ID, Name: p.Name, Score: scores[i]}
	}
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Score > standings[j].Score })
	return standings
}

func (s *Service) ready(userID string) error {
	if s.store == nil {
		return ErrStoreNotReady
	}
	if userID == "" {
		return ErrNoUser
	}
	return nil
}

func summarize(id, code string, m *domain.Match) MatchSummary {
	players := make([]string, 0, len(m.Players))
	for _, p := range m.Players {
		players = append(players, p.Name)
	}
	return MatchSummary{
		ID:           id,
		Name:         m.Name,
		Players:      players,
		CurrentRound: m.CurrentRound(),
		Code:         code,
	}
}

func containsID(saved []ports.StoredMatch, id string) bool {
	for _, stored := range saved {
		if stored.ID == id {
			return true
		}
	}
	return false
}
