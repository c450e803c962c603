package scraper

import (
	"context"
	"log/slog"
	"time"

	"fixtures-app/internal/page"
)

// DismissCookies clicks the consent button if it shows up within timeout.
// A missing banner is normal and only reported through the return value.
func DismissCookies(ctx context.Context, log *slog.Logger, p page.Page, label string, timeout time.Duration) bool {
	log.Info("Checking for the cookie consent banner")

	clickCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.ClickText(clickCtx, "button", label); err != nil {
		log.Info("Cookie banner not found or already accepted")
		log.Debug("cookie banner lookup", "err", err)
		return false
	}

	log.Info("Cookie banner accepted")
	return true
}
