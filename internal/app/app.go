package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fixtures-app/internal/config"
	"fixtures-app/internal/export"
	"fixtures-app/internal/logger"
	"fixtures-app/internal/models"
	"fixtures-app/internal/page"
	"fixtures-app/internal/scraper"
)

// Result summarizes a run.
type Result struct {
	Matches []models.Match
	Written bool
}

// Run scrapes cfg.URL on p and writes the CSV. Stage failures are logged
// and end the run early; the caller still owns and closes p.
func Run(ctx context.Context, cfg *config.Config, p page.Page, log *slog.Logger, stdout io.Writer) Result {
	var res Result

	log.Info("Accessing the URL: " + cfg.URL)
	navCtx, cancel := context.WithTimeout(ctx, cfg.NavTimeout)
	err := p.Navigate(navCtx, cfg.URL)
	cancel()
	if err != nil {
		log.Error("Error while running the scraper", "err", err)
		return res
	}

	scraper.DismissCookies(ctx, log, p, cfg.CookieLabel, cfg.CookieTimeout)

	log.Info("Waiting for the match list to load")
	s := scraper.New(log, scraper.DefaultSelectors(), cfg.LoadTimeout)
	res.Matches = s.Extract(ctx, p)

	if cfg.DumpHTML != "" {
		if err := dumpHTML(ctx, p, cfg.DumpHTML); err != nil {
			log.Error("Failed to save page HTML", "err", err)
		} else {
			log.Info("Page HTML saved to " + cfg.DumpHTML)
		}
	}

	log.Info("Writing the data to the CSV file: " + cfg.Output)
	if err := export.WriteCSV(res.Matches, cfg.Output); err != nil {
		log.Error("Error while running the scraper", "err", err)
		return res
	}
	res.Written = true
	logger.Success(ctx, log, fmt.Sprintf("Wrote %d matches to the CSV file", len(res.Matches)))

	if cfg.Table && stdout != nil {
		export.WriteTable(stdout, res.Matches)
	}

	return res
}

func dumpHTML(ctx context.Context, p page.Page, path string) error {
	html, err := p.HTML(ctx)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0o644)
}
