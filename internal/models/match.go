package models

import "fmt"

const (
	// UnknownCompetition replaces a competition name that could not be read.
	UnknownCompetition = "Unknown"
	// FinishedMarker is shown in place of the kickoff time once a match is over.
	FinishedMarker = "FT"
)

// Header is the CSV header, in the same order as Match.Row: competition,
// date, time, home team, away team.
var Header = []string{"Campeonato", "Data", "Hora", "Time Casa", "Time Fora"}

// Match is one upcoming fixture as displayed on the team page.
// All fields are kept as raw text.
type Match struct {
	Competition string
	Date        string
	Time        string
	HomeTeam    string
	AwayTeam    string
}

func (m Match) Row() []string {
	return []string{m.Competition, m.Date, m.Time, m.HomeTeam, m.AwayTeam}
}

func (m Match) String() string {
	return fmt.Sprintf("%s x %s on %s at %s (%s)", m.HomeTeam, m.AwayTeam, m.Date, m.Time, m.Competition)
}

// Upcoming reports whether a time field belongs to a match that has not
// been played yet.
func Upcoming(timeText string) bool {
	return timeText != "" && timeText != FinishedMarker
}

// MatchList accumulates matches in insertion order, dropping exact duplicates.
type MatchList struct {
	items []Match
	seen  map[Match]struct{}
}

func NewMatchList() *MatchList {
	return &MatchList{seen: make(map[Match]struct{})}
}

// Add appends m and returns true, or returns false if an equal match
// was already added.
func (l *MatchList) Add(m Match) bool {
	if _, ok := l.seen[m]; ok {
		return false
	}
	l.seen[m] = struct{}{}
	l.items = append(l.items, m)
	return true
}

func (l *MatchList) Len() int {
	return len(l.items)
}

// Matches returns a copy of the accumulated matches.
func (l *MatchList) Matches() []Match {
	out := make([]Match, len(l.items))
	copy(out, l.items)
	return out
}
