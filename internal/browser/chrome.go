package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fixtures-app/internal/config"

	"github.com/chromedp/chromedp"
)

// Session owns a running Chrome instance. Close releases it and is safe
// to call more than once.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// Context returns the browser context, bounded by the global timeout.
func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Flags returns the Chrome command-line switches for cfg, on top of
// chromedp's defaults.
func Flags(cfg *config.Config) map[string]interface{} {
	return map[string]interface{}{
		"no-first-run":             true,
		"no-default-browser-check": true,

		// Disable updates and popups
		"disable-popup-blocking":   true,
		"disable-notifications":    true,
		"disable-extensions":       true,
		"disable-component-update": true,
		"disable-sync":             true,
		"disable-default-apps":     true,

		// Basic settings
		"headless":    cfg.Headless,
		"disable-gpu": true,
		"window-size": "1920,1080",

		// Stability flags
		"disable-background-networking":  true,
		"disable-breakpad":               true,
		"disable-dev-shm-usage":          true,
		"disable-renderer-backgrounding": true,
		"no-sandbox":                     true,
	}
}

// Options returns the allocator options for cfg.
func Options(cfg *config.Config) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for name, value := range Flags(cfg) {
		opts = append(opts, chromedp.Flag(name, value))
	}
	return opts
}

// NewChrome starts a browser. A launch failure is returned after all
// contexts have been released.
func NewChrome(cfg *config.Config, log *slog.Logger) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), Options(cfg)...)

	ctxOpts := []chromedp.ContextOption{
		chromedp.WithErrorf(func(format string, args ...interface{}) {
			log.Debug("chrome: " + fmt.Sprintf(format, args...))
		}),
	}
	if cfg.Debug {
		ctxOpts = append(ctxOpts, chromedp.WithDebugf(func(format string, args ...interface{}) {
			log.Debug("chrome: " + fmt.Sprintf(format, args...))
		}))
	}
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, ctxOpts...)

	timeoutCtx, timeoutCancel := context.WithTimeout(browserCtx, cfg.GlobalTimeout)

	s := &Session{
		ctx: timeoutCtx,
		cancel: func() {
			log.Info("Closing the browser")
			timeoutCancel()
			browserCancel()
			allocCancel()
		},
	}

	// An empty Run launches the browser process.
	if err := chromedp.Run(timeoutCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return s, nil
}
