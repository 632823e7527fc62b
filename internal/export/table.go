package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"MarketScanner/internal/model"
)

// topN is how many movers per side the console summary shows.
const topN = 3

// WriteSummary prints the scan banner, the top movers per side and the
// skip counts in plain text. Full lists go to the CSV files; the console
// only gets the headline.
func WriteSummary(w io.Writer, report *model.Report) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "REPORT GENERATED")
	fmt.Fprintf(w, "Gainers found: %d\n", len(report.Gainers))
	fmt.Fprintf(w, "Losers found: %d\n", len(report.Losers))
	fmt.Fprintln(w, "========================================")

	if len(report.Gainers) == 0 && len(report.Losers) == 0 {
		fmt.Fprintln(w, "No stocks found matching criteria.")
	}
	writeTop(w, "Top Gainers:", report.Gainers)
	writeTop(w, "Top Losers:", report.Losers)

	if counts := report.SkipCounts(); len(counts) > 0 {
		fmt.Fprintf(w, "Skipped: %d no-data, %d short-history, %d duplicate, %d errored\n",
			counts[model.SkipNoData],
			counts[model.SkipInsufficientHistory],
			counts[model.SkipDuplicateListing],
			counts[model.SkipIndicatorError])
	}
}

func writeTop(w io.Writer, title string, rows []model.ScanRow) {
	if len(rows) == 0 {
		return
	}
	if len(rows) > topN {
		rows = rows[:topN]
	}
	fmt.Fprintln(w, title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Symbol\tExchange\tPrice\tToday %\tRSI")
	for _, row := range rows {
		s := row.Snapshot
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.Ticker.Base,
			row.Ticker.Exchange,
			fmtFloat(s.LatestClose, 2),
			fmtFloat(s.ReturnPctToday, 2),
			fmtFloat(s.RSI14, 2))
	}
	tw.Flush()
}
