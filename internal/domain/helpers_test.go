package domain

import (
	"encoding/json"
	"testing"
)

func twoPlayers() []Player {
	return []Player{{ID: 0, Name: "Anna"}, {ID: 1, Name: "Bram"}}
}

func TestCardsInRound(t *testing.T) {
	tests := []struct {
		round int
		want  int
	}{
		{round: 1, want: 10},
		{round: 5, want: 6},
		{round: 10, want: 1},
		{round: 11, want: 2},
		{round: 19, want: 10},
	}
	for _, tt := range tests {
		if got := CardsInRound(tt.round); got != tt.want {
			t.Fatalf("CardsInRound(%d) = %d, want %d", tt.round, got, tt.want)
		}
	}

	for round := 1; round <= NumRounds; round++ {
		if CardsInRound(round) != CardsInRound(NumRounds+1-round) {
			t.Fatalf("schedule not symmetric at round %d", round)
		}
	}
}

func TestCardsInRoundPanicsOutsideSchedule(t *testing.T) {
	for _, round := range []int{0, 20, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("CardsInRound(%d) did not panic", round)
				}
			}()
			CardsInRound(round)
		}()
	}
}

func TestCurrentRound(t *testing.T) {
	tests := []struct {
		name   string
		rounds []Round
		want   int
	}{
		{name: "no rounds", rounds: nil, want: 1},
		{name: "partial bids", rounds: []Round{{CardsInRound: 10, Bids: []int{1}}}, want: 1},
		{name: "bids complete", rounds: []Round{{CardsInRound: 10, Bids: []int{1, 2}}}, want: 1},
		{
			name:   "tricks complete",
			rounds: []Round{{CardsInRound: 10, Bids: []int{1, 2}, Tricks: []int{4, 6}}},
			want:   2,
		},
		{
			name: "second round bidding",
			rounds: []Round{
				{CardsInRound: 10, Bids: []int{1, 2}, Tricks: []int{4, 6}},
				{CardsInRound: 9, Bids: []int{3, 3}},
				{CardsInRound: 8},
			},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Match{Players: twoPlayers(), Rounds: tt.rounds}
			if got := m.CurrentRound(); got != tt.want {
				t.Fatalf("CurrentRound() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDealerForRound(t *testing.T) {
	if got := DealerForRound(2, 3, 1); got != 2 {
		t.Fatalf("round 1 dealer = %d, want 2", got)
	}
	if got := DealerForRound(2, 3, 2); got != 0 {
		t.Fatalf("round 2 dealer = %d, want 0", got)
	}
	if got := DealerForRound(0, 4, 19); got != 2 {
		t.Fatalf("round 19 dealer = %d, want 2", got)
	}
}

func TestTrumpUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Trump
	}{
		{input: `0`, want: TrumpSpade},
		{input: `4`, want: TrumpNone},
		{input: `"heart"`, want: TrumpHeart},
		{input: `"diamond"`, want: TrumpDiamond},
		{input: `"none"`, want: TrumpNone},
	}
	for _, tt := range tests {
		var got Trump
		if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("unmarshal %s = %v, want %v", tt.input, got, tt.want)
		}
	}

	var trump Trump
	if err := json.Unmarshal([]byte(`"joker"`), &trump); err == nil {
		t.Fatal("expected error for unknown trump name")
	}
}

func TestTrumpMarshalsAsNumber(t *testing.T) {
	b, err := json.Marshal(Round{CardsInRound: 10, Trump: TrumpClub, Bids: []int{}, Tricks: []int{}})
	if err != nil {
		t.Fatalf("marshal round: %v", err)
	}
	want := `{"nCards":10,"trump":2,"bids":[],"tricks":[],"dealerId":0}`
	if string(b) != want {
		t.Fatalf("round json = %s, want %s", b, want)
	}
}
