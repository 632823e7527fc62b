package notifier

import (
	"fmt"
	"strings"
	"time"

	"MarketScanner/internal/model"
)

// topMovers caps how many movers each side of the Telegram report shows.
const topMovers = 3

// FormatScanReport formats a completed scan into a Telegram message.
func FormatScanReport(report *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Daily Movers</b> | %s\n\n", report.StartedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("🟢 Gainers: %d\n", len(report.Gainers)))
	b.WriteString(fmt.Sprintf("🔴 Losers: %d\n", len(report.Losers)))

	if len(report.Gainers) == 0 && len(report.Losers) == 0 {
		b.WriteString("\nNo stocks moved past the threshold today.\n")
	}

	writeMovers(&b, "Top gainers:", report.Gainers)
	writeMovers(&b, "Top losers:", report.Losers)

	b.WriteString(fmt.Sprintf("\nUniverse: %d tickers, %d/%d chunks ok",
		report.UniverseSize, report.ChunksTotal-report.ChunksFailed, report.ChunksTotal))
	if n := len(report.Skips); n > 0 {
		b.WriteString(fmt.Sprintf(", %d skipped", n))
	}
	b.WriteString("\n")
	return b.String()
}

func writeMovers(b *strings.Builder, title string, rows []model.ScanRow) {
	if len(rows) == 0 {
		return
	}
	if len(rows) > topMovers {
		rows = rows[:topMovers]
	}
	b.WriteString("\n<b>" + title + "</b>\n")
	for _, row := range rows {
		s := row.Snapshot
		b.WriteString(fmt.Sprintf("  %s (%s) %+.2f%% @ %.2f\n",
			row.Ticker.Base, row.Ticker.Exchange, s.ReturnPctToday, s.LatestClose))
	}
}

// FormatStatus formats the last scan outcome for the /status command.
func FormatStatus(last *model.Report) string {
	if last == nil {
		return "No scan has run yet."
	}
	var b strings.Builder
	b.WriteString("🛰 <b>Last scan</b>\n\n")
	b.WriteString(fmt.Sprintf("Started: %s\n", last.StartedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Duration: %s\n", last.Duration.Round(time.Second)))
	b.WriteString(fmt.Sprintf("Universe: %d tickers\n", last.UniverseSize))
	b.WriteString(fmt.Sprintf("Gainers: %d | Losers: %d\n", len(last.Gainers), len(last.Losers)))
	counts := last.SkipCounts()
	b.WriteString(fmt.Sprintf("Skips: %d no-data, %d short-history, %d duplicate, %d errored\n",
		counts[model.SkipNoData], counts[model.SkipInsufficientHistory],
		counts[model.SkipDuplicateListing], counts[model.SkipIndicatorError]))
	return b.String()
}
