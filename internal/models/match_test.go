package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchListDeduplicates(t *testing.T) {
	a := Match{Competition: "Brasileirão", Date: "12/10/26", Time: "20:00", HomeTeam: "Corinthians", AwayTeam: "Santos"}
	b := Match{Competition: "Brasileirão", Date: "19/10/26", Time: "16:00", HomeTeam: "Palmeiras", AwayTeam: "Corinthians"}
	// differs from a only in competition
	c := a
	c.Competition = "Copa do Brasil"

	list := NewMatchList()
	added := []bool{list.Add(a), list.Add(b), list.Add(a), list.Add(c), list.Add(b)}

	if diff := cmp.Diff([]bool{true, true, false, true, false}, added); diff != "" {
		t.Fatalf("unexpected add results (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Match{a, b, c}, list.Matches()); diff != "" {
		t.Fatalf("unexpected matches (-want +got):\n%s", diff)
	}
	if list.Len() != 3 {
		t.Errorf("expected 3 matches, got %d", list.Len())
	}
}

func TestMatchesReturnsCopy(t *testing.T) {
	list := NewMatchList()
	list.Add(Match{Time: "20:00", HomeTeam: "A", AwayTeam: "B"})

	out := list.Matches()
	out[0].HomeTeam = "changed"

	if list.Matches()[0].HomeTeam != "A" {
		t.Error("Matches must not expose the internal slice")
	}
}

func TestUpcoming(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"20:00", true},
		{"Postponed", true},
		{"FT", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Upcoming(tt.input); got != tt.want {
			t.Errorf("Upcoming(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRowMatchesHeader(t *testing.T) {
	m := Match{Competition: "c", Date: "d", Time: "t", HomeTeam: "h", AwayTeam: "a"}
	if diff := cmp.Diff([]string{"c", "d", "t", "h", "a"}, m.Row()); diff != "" {
		t.Fatalf("unexpected row (-want +got):\n%s", diff)
	}
	if len(Header) != len(m.Row()) {
		t.Fatalf("header has %d columns, row has %d", len(Header), len(m.Row()))
	}
}
