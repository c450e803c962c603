package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fixtures-app/internal/config"
	"fixtures-app/internal/logger"
	"fixtures-app/internal/page"

	"github.com/stretchr/testify/require"
)

const teamPage = `<html><body>
<div id="consent"><button>Aceitar</button></div>
<div class="sc-bdnxRM">
  <div class="sc-jbKcbu"><a href="/tournament/brasileirao">Brasileirão</a></div>
  <a href="/corinthians-santos/match/abc#id:1">
    <div class="sc-dkPtRN"><bdi>19/10/26</bdi></div>
    <div class="sc-hBxehG"><bdi>20:00</bdi></div>
    <div class="sc-iNqMzA"><bdi>Corinthians</bdi></div>
    <div class="sc-iNqMzA"><bdi>Santos</bdi></div>
  </a>
  <a href="/palmeiras-corinthians/match/def#id:2">
    <div class="sc-dkPtRN"><bdi>12/10/26</bdi></div>
    <div class="sc-hBxehG"><bdi>FT</bdi></div>
    <div class="sc-iNqMzA"><bdi>Palmeiras</bdi></div>
    <div class="sc-iNqMzA"><bdi>Corinthians</bdi></div>
  </a>
</div>
</body></html>`

func setup(t *testing.T, html string, args ...string) (*config.Config, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "team.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(html), 0o644))

	args = append([]string{
		"-static",
		"-url", "file://" + pagePath,
		"-output", filepath.Join(dir, "out.csv"),
		"-load-timeout", "100ms",
	}, args...)
	cfg, err := config.ParseArgs(args)
	require.NoError(t, err)

	return cfg, &bytes.Buffer{}
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return logger.New(buf, logger.FormatPlain, slog.LevelInfo)
}

func TestRunWritesUpcomingMatches(t *testing.T) {
	cfg, logs := setup(t, teamPage)

	res := Run(context.Background(), cfg, page.NewDocument(nil), newLogger(logs), nil)

	require.True(t, res.Written)
	require.Len(t, res.Matches, 1)

	raw, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.Equal(t,
		"Campeonato,Data,Hora,Time Casa,Time Fora\n"+
			"Brasileirão,19/10/26,20:00,Corinthians,Santos\n",
		string(raw))

	require.Contains(t, logs.String(), "Cookie banner accepted")
	require.Contains(t, logs.String(), "[SUCCESS] Wrote 1 matches")
}

func TestRunNoBlocksWritesHeader(t *testing.T) {
	cfg, logs := setup(t, `<html><body><p>loading...</p></body></html>`)

	res := Run(context.Background(), cfg, page.NewDocument(nil), newLogger(logs), nil)

	require.True(t, res.Written)
	require.Empty(t, res.Matches)

	raw, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.Equal(t, "Campeonato,Data,Hora,Time Casa,Time Fora\n", string(raw))
	require.Contains(t, logs.String(), "[ERROR] No competition block found")
	require.Contains(t, logs.String(), "Cookie banner not found")
}

func TestRunNavigationFailure(t *testing.T) {
	cfg, logs := setup(t, teamPage)
	cfg.URL = filepath.Join(t.TempDir(), "missing.html")

	res := Run(context.Background(), cfg, page.NewDocument(nil), newLogger(logs), nil)

	require.False(t, res.Written)
	_, err := os.Stat(cfg.Output)
	require.True(t, os.IsNotExist(err))
	require.Contains(t, logs.String(), "[ERROR] Error while running the scraper")
}

func TestRunWriteFailure(t *testing.T) {
	cfg, logs := setup(t, teamPage)
	cfg.Output = filepath.Join(t.TempDir(), "no", "such", "dir.csv")

	res := Run(context.Background(), cfg, page.NewDocument(nil), newLogger(logs), nil)

	require.False(t, res.Written)
	require.Len(t, res.Matches, 1)
	require.Contains(t, logs.String(), "[ERROR] Error while running the scraper")
}

func TestRunTableAndDump(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "dump.html")
	cfg, logs := setup(t, teamPage, "-table", "-dump-html", dump)
	var stdout bytes.Buffer

	res := Run(context.Background(), cfg, page.NewDocument(nil), newLogger(logs), &stdout)

	require.True(t, res.Written)
	require.Contains(t, stdout.String(), "Santos")

	raw, err := os.ReadFile(dump)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), "sc-bdnxRM"))

	// the dump replays to the same result
	cfg.URL = dump
	replay := Run(context.Background(), cfg, page.NewDocument(nil), newLogger(logs), nil)
	require.Equal(t, res.Matches, replay.Matches)
}

func TestRunCanceledContext(t *testing.T) {
	cfg, logs := setup(t, teamPage)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	res := Run(ctx, cfg, page.NewDocument(nil), newLogger(logs), nil)

	require.Empty(t, res.Matches)
}
