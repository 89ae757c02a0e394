package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"heenenweer/internal/domain"
	"heenenweer/internal/ports"
)

type memoryStore struct {
	matches map[string]map[string]string
	listErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{matches: map[string]map[string]string{}}
}

func (m *memoryStore) Put(ctx context.Context, userID string, match ports.StoredMatch) error {
	if m.matches[userID] == nil {
		m.matches[userID] = map[string]string{}
	}
	m.matches[userID][match.ID] = match.Code
	return nil
}

func (m *memoryStore) Get(ctx context.Context, userID, id string) (ports.StoredMatch, error) {
	code, ok := m.matches[userID][id]
	if !ok {
		return ports.StoredMatch{}, ports.ErrNotFound
	}
	return ports.StoredMatch{ID: id, Code: code}, nil
}

func (m *memoryStore) List(ctx context.Context, userID string) ([]ports.StoredMatch, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []ports.StoredMatch
	for id, code := range m.matches[userID] {
		out = append(out, ports.StoredMatch{ID: id, Code: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryStore) Delete(ctx context.Context, userID, id string) error {
	delete(m.matches[userID], id)
	return nil
}

func sampleMatch() *domain.Match {
	return &domain.Match{
		GameVersion: domain.CurrentGameVersion,
		Name:        "Testgame",
		Players:     []domain.Player{{ID: 0, Name: "Player 1"}, {ID: 1, Name: "Player 2"}},
		Rounds: []domain.Round{{
			CardsInRound: 10,
			Trump:        domain.TrumpHeart,
			Bids:         []int{2, 3},
			Tricks:       []int{4, 6},
		}},
	}
}

func TestShareCodeRoundTrip(t *testing.T) {
	code, err := ShareCode(sampleMatch())
	if err != nil {
		t.Fatalf("share code error: %v", err)
	}
	if strings.ContainsAny(code, "+/=") {
		t.Fatalf("share code %q is not URL-safe", code)
	}

	decoded, err := ParseShareCode(code)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if decoded.Name != "Testgame" || len(decoded.Rounds) != domain.NumRounds {
		t.Fatalf("decoded = %+v", decoded)
	}

	again, err := ShareCode(decoded)
	if err != nil {
		t.Fatalf("re-encode error: %v", err)
	}
	if again != code {
		t.Fatalf("re-encoded code = %q, want %q", again, code)
	}

	redecoded, err := ParseShareCode(again)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if diff := cmp.Diff(decoded, redecoded); diff != "" {
		t.Fatalf("decoded match changed (-first +second):\n%s", diff)
	}
}

func TestParseShareCodeRejectsBadInput(t *testing.T) {
	cases := map[string]error{
		"":     ErrInvalidShareCode,
		"a+b/": ErrInvalidShareCode,
		"AQ==": ErrInvalidShareCode,
		"!!!!": ErrInvalidShareCode,
	}
	for code, want := range cases {
		if _, err := ParseShareCode(code); !errors.Is(err, want) {
			t.Fatalf("ParseShareCode(%q) err = %v, want %v", code, err, want)
		}
	}

	// Valid base64 of a truncated record fails in the codec, not as a bad code.
	_, err := ParseShareCode("AQ")
	if err == nil || errors.Is(err, ErrInvalidShareCode) {
		t.Fatalf("truncated record err = %v", err)
	}
}

func TestParseShareRecord(t *testing.T) {
	code, err := ShareCode(sampleMatch())
	if err != nil {
		t.Fatalf("share code error: %v", err)
	}
	rec, err := ParseShareRecord(code)
	if err != nil {
		t.Fatalf("parse record error: %v", err)
	}
	if len(rec.Players) != 2 || rec.CurrentRound != 2 {
		t.Fatalf("record players = %d current = %d", len(rec.Players), rec.CurrentRound)
	}
}

func TestSaveLoadListDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewService(store, 0)
	svc.newID = func() string { return "generated" }

	saved, err := svc.SaveMatch(ctx, "u1", "", sampleMatch())
	if err != nil {
		t.Fatalf("save error: %v", err)
	}
	if saved.ID != "generated" {
		t.Fatalf("id = %q, want generated", saved.ID)
	}
	if _, err := svc.SaveMatch(ctx, "u1", "named", sampleMatch()); err != nil {
		t.Fatalf("save named error: %v", err)
	}

	loaded, code, err := svc.LoadMatch(ctx, "u1", "generated")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if code != saved.Code {
		t.Fatalf("code = %q, want %q", code, saved.Code)
	}
	if loaded.CurrentRound() != 2 {
		t.Fatalf("current round = %d, want 2", loaded.CurrentRound())
	}

	list, err := svc.ListMatches(ctx, "u1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	want := []MatchSummary{
		{ID: "generated", Name: "Testgame", Players: []string{"Player 1", "Player 2"}, CurrentRound: 2, Code: saved.Code},
		{ID: "named", Name: "Testgame", Players: []string{"Player 1", "Player 2"}, CurrentRound: 2, Code: saved.Code},
	}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	exists, err := svc.MatchExists(ctx, "u1", "named")
	if err != nil || !exists {
		t.Fatalf("exists = %v, err = %v", exists, err)
	}

	if err := svc.DeleteMatch(ctx, "u1", "named"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if err := svc.DeleteMatch(ctx, "u1", "named"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("second delete err = %v, want ErrMatchNotFound", err)
	}
	if _, _, err := svc.LoadMatch(ctx, "u1", "named"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("load deleted err = %v, want ErrMatchNotFound", err)
	}
	exists, err = svc.MatchExists(ctx, "u1", "named")
	if err != nil || exists {
		t.Fatalf("exists after delete = %v, err = %v", exists, err)
	}

	// Other users see nothing.
	other, err := svc.ListMatches(ctx, "u2")
	if err != nil || len(other) != 0 {
		t.Fatalf("other list = %v, err = %v", other, err)
	}
}

func TestSaveMatchEnforcesLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore(), 2)

	for _, id := range []string{"a", "b"} {
		if _, err := svc.SaveMatch(ctx, "u1", id, sampleMatch()); err != nil {
			t.Fatalf("save %s error: %v", id, err)
		}
	}
	if _, err := svc.SaveMatch(ctx, "u1", "c", sampleMatch()); !errors.Is(err, ErrTooManyMatches) {
		t.Fatalf("third save err = %v, want ErrTooManyMatches", err)
	}
	// Overwriting an existing id stays within the limit.
	if _, err := svc.SaveMatch(ctx, "u1", "a", sampleMatch()); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
}

func TestSaveMatchRejectsInvalidMatch(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, 0)

	bad := sampleMatch()
	bad.Players = nil
	if _, err := svc.SaveMatch(context.Background(), "u1", "x", bad); !errors.Is(err, domain.ErrInvalidMatch) {
		t.Fatalf("err = %v, want ErrInvalidMatch", err)
	}
	if len(store.matches["u1"]) != 0 {
		t.Fatalf("invalid match was stored")
	}
}

func TestServiceRequiresUserAndStore(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore(), 0)
	if _, err := svc.ListMatches(ctx, ""); !errors.Is(err, ErrNoUser) {
		t.Fatalf("err = %v, want ErrNoUser", err)
	}
	if err := NewService(nil, 0).DeleteMatch(ctx, "u1", "x"); !errors.Is(err, ErrStoreNotReady) {
		t.Fatalf("err = %v, want ErrStoreNotReady", err)
	}
}

func TestListMatchesPropagatesStoreError(t *testing.T) {
	store := newMemoryStore()
	store.listErr = errors.New("boom")
	svc := NewService(store, 0)
	if _, err := svc.ListMatches(context.Background(), "u1"); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestStandings(t *testing.T) {
	m := &domain.Match{
		Name:    "scores",
		Players: []domain.Player{{ID: 0, Name: "a"}, {ID: 1, Name: "b"}, {ID: 2, Name: "c"}},
		Rounds: []domain.Round{
			{CardsInRound: 10, Bids: []int{3, 4, 2}, Tricks: []int{3, 5, 2}},
			{CardsInRound: 9, Bids: []int{1, 1, 1}, Tricks: []int{1, 8, 0}, DealerID: 1},
		},
	}
	got := Standings(m)
	want := []Standing{
		{PlayerID: 0, Name: "a", Score: 14},
		{PlayerID: 1, Name: "b", Score: 13},
		{PlayerID: 2, Name: "c", Score: 7},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("standings mismatch (-want +got):\n%s", diff)
	}
}
