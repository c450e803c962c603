package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"fixtures-app/internal/logger"
)

const (
	DefaultURL    = "https://www.sofascore.com/team/football/corinthians/1957"
	DefaultOutput = "corinthians_upcoming_matches.csv"
)

type Config struct {
	URL      string
	Output   string
	Headless bool
	Debug    bool
	Static   bool // Load the page without a browser

	GlobalTimeout time.Duration // Overall timeout
	ActionTimeout time.Duration // Timeout for individual element lookups
	NavTimeout    time.Duration // Timeout for navigation
	LoadTimeout   time.Duration // Timeout for fixtures to render
	CookieTimeout time.Duration // Timeout for the consent button

	CookieLabel string
	DumpHTML    string
	Table       bool
	LogFormat   string
}

// Parse reads the command line. Every flag is optional; the defaults
// scrape DefaultURL into DefaultOutput.
func Parse() *Config {
	cfg, err := ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("fixtures", flag.ContinueOnError)

	// Define flags
	fs.StringVar(&cfg.URL, "url", DefaultURL, "Team page URL to scrape")
	fs.StringVar(&cfg.Output, "output", DefaultOutput, "CSV file to write")
	fs.BoolVar(&cfg.Headless, "headless", false, "Run in headless mode")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug mode")
	fs.BoolVar(&cfg.Static, "static", false, "Parse the page HTML without a browser (URL or local file)")

	// Timeout flags
	fs.DurationVar(&cfg.GlobalTimeout, "timeout", 10*time.Minute, "Global timeout")
	fs.DurationVar(&cfg.ActionTimeout, "action-timeout", 10*time.Second, "Individual element lookup timeout")
	fs.DurationVar(&cfg.NavTimeout, "nav-timeout", 5*time.Minute, "Navigation timeout")
	fs.DurationVar(&cfg.LoadTimeout, "load-timeout", 30*time.Second, "How long to wait for fixtures to render")
	fs.DurationVar(&cfg.CookieTimeout, "cookie-timeout", 10*time.Second, "How long to look for the cookie banner")

	fs.StringVar(&cfg.CookieLabel, "cookie-label", "Aceitar", "Text of the cookie consent button")
	fs.StringVar(&cfg.DumpHTML, "dump-html", "", "Write the rendered page HTML to this file")
	fs.BoolVar(&cfg.Table, "table", false, "Print the fixtures as a table")
	fs.StringVar(&cfg.LogFormat, "log-format", logger.FormatPlain, "Log format: plain or tint")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.URL == "" {
		return errors.New("url must not be empty")
	}
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	if c.LogFormat != logger.FormatPlain && c.LogFormat != logger.FormatTint {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	for name, d := range map[string]time.Duration{
		"timeout":        c.GlobalTimeout,
		"action-timeout": c.ActionTimeout,
		"nav-timeout":    c.NavTimeout,
		"load-timeout":   c.LoadTimeout,
		"cookie-timeout": c.CookieTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	return nil
}
