package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fixtures-app/internal/models"
	"fixtures-app/internal/page"
)

// Selectors locate the fixture list on the team page.
type Selectors struct {
	Block       string // Competition block
	Competition string // Competition name, inside a block
	Match       string // Match link, inside a block
	Date        string // Inside a match link
	Time        string // Inside a match link
	Team        string // Inside a match link, home first
}

func DefaultSelectors() Selectors {
	return Selectors{
		Block:       `div.sc-bdnxRM`,
		Competition: `div.sc-jbKcbu a`,
		Match:       `a[href*="/match/"]`,
		Date:        `div.sc-dkPtRN bdi`,
		Time:        `div.sc-hBxehG bdi`,
		Team:        `div.sc-iNqMzA bdi`,
	}
}

type Scraper struct {
	log         *slog.Logger
	sel         Selectors
	loadTimeout time.Duration
}

func New(log *slog.Logger, sel Selectors, loadTimeout time.Duration) *Scraper {
	return &Scraper{
		log:         log,
		sel:         sel,
		loadTimeout: loadTimeout,
	}
}

// Extract collects the upcoming matches on a loaded page, in page order
// and without duplicates. Failures are logged, never returned: at worst
// the result is empty.
func (s *Scraper) Extract(ctx context.Context, p page.Page) []models.Match {
	list := models.NewMatchList()

	waitCtx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	err := p.WaitPresent(waitCtx, s.sel.Block)
	cancel()
	if err != nil {
		s.log.Error("No competition block found", "err", err)
		return list.Matches()
	}

	blocks, err := p.FindAll(ctx, s.sel.Block)
	if err != nil {
		s.log.Error("Failed to process matches", "err", err)
		return list.Matches()
	}
	if len(blocks) == 0 {
		s.log.Error("No competition block found")
		return list.Matches()
	}

	for _, block := range blocks {
		competition := s.competitionName(ctx, block)

		links, err := block.FindAll(ctx, s.sel.Match)
		if err != nil {
			s.log.Error("Failed to list matches", "competition", competition, "err", err)
			continue
		}

		for _, link := range links {
			m, ok, err := s.readMatch(ctx, link, competition)
			if err != nil {
				s.log.Error("Failed to process a match", "competition", competition, "err", err)
				continue
			}
			if !ok {
				continue
			}

			if list.Add(m) {
				s.log.Info("Match found: " + m.String())
			} else {
				s.log.Info("Duplicate match ignored: " + m.String())
			}
		}
	}

	return list.Matches()
}

func (s *Scraper) competitionName(ctx context.Context, block page.Element) string {
	el, err := block.Find(ctx, s.sel.Competition)
	if err == nil {
		var name string
		if name, err = el.Text(ctx); err == nil {
			return name
		}
	}
	s.log.Error("Failed to read competition name", "err", err)
	return models.UnknownCompetition
}

// readMatch reports ok=false for matches that are finished or lack teams.
func (s *Scraper) readMatch(ctx context.Context, link page.Element, competition string) (models.Match, bool, error) {
	date, err := s.text(ctx, link, s.sel.Date)
	if err != nil {
		return models.Match{}, false, fmt.Errorf("date: %w", err)
	}
	kickoff, err := s.text(ctx, link, s.sel.Time)
	if err != nil {
		return models.Match{}, false, fmt.Errorf("time: %w", err)
	}
	if !models.Upcoming(kickoff) {
		return models.Match{}, false, nil
	}

	teams, err := link.FindAll(ctx, s.sel.Team)
	if err != nil {
		return models.Match{}, false, fmt.Errorf("teams: %w", err)
	}
	if len(teams) < 2 {
		return models.Match{}, false, nil
	}
	home, err := teams[0].Text(ctx)
	if err != nil {
		return models.Match{}, false, fmt.Errorf("home team: %w", err)
	}
	away, err := teams[1].Text(ctx)
	if err != nil {
		return models.Match{}, false, fmt.Errorf("away team: %w", err)
	}

	return models.Match{
		Competition: competition,
		Date:        date,
		Time:        kickoff,
		HomeTeam:    home,
		AwayTeam:    away,
	}, true, nil
}

func (s *Scraper) text(ctx context.Context, parent page.Element, selector string) (string, error) {
	el, err := parent.Find(ctx, selector)
	if err != nil {
		return "", err
	}
	return el.Text(ctx)
}
