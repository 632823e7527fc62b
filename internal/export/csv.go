package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"MarketScanner/internal/model"
)

// Options selects the variant-specific output columns. The engine emits
// identical rows for every deployment; the projection differs.
type Options struct {
	IncludeNewsLink bool
}

// NewsLink builds a news search URL for a base symbol.
func NewsLink(base string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(base+" share news") + "&tbm=nws"
}

// fmtFloat renders a float with fixed decimals; undefined values render
// as an empty cell.
func fmtFloat(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func fmtPct(v float64) string {
	s := fmtFloat(v, 1)
	if s == "" {
		return ""
	}
	return s + "%"
}

func fmtVolume(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatInt(int64(v), 10)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func volumeSignal(above bool) string {
	if above {
		return "Above Avg"
	}
	return "Normal"
}

func header(opts Options) []string {
	h := []string{
		"Symbol", "Price", "Today %", "Prev Day %", "Prev-2 Day %",
		"MA", "Above MA", "RSI", "Dist 52W High", "Volume", "Volume Signal",
	}
	if opts.IncludeNewsLink {
		h = append(h, "News Link")
	}
	return append(h, "Exchange")
}

func record(row model.ScanRow, opts Options) []string {
	s := row.Snapshot
	r := []string{
		row.Ticker.Base,
		fmtFloat(s.LatestClose, 2),
		fmtFloat(s.ReturnPctToday, 2),
		fmtFloat(s.ReturnPctPrev1, 2),
		fmtFloat(s.ReturnPctPrev2, 2),
		fmtFloat(s.MovingAverage, 2),
		yesNo(s.AboveMA),
		fmtFloat(s.RSI14, 2),
		fmtPct(s.DistFrom52wHighPct),
		fmtVolume(s.LatestVolume),
		volumeSignal(s.VolumeAboveAvg),
	}
	if opts.IncludeNewsLink {
		r = append(r, NewsLink(row.Ticker.Base))
	}
	return append(r, string(row.Ticker.Exchange))
}

// WriteCSV writes one result list as CSV.
func WriteCSV(w io.Writer, rows []model.ScanRow, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(opts)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(record(row, opts)); err != nil {
			return fmt.Errorf("write row %s: %w", row.Ticker.Base, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReportFiles writes the gainer and loser lists as dated CSV files
// under dir, one file per non-empty list, and returns the written paths.
func WriteReportFiles(report *model.Report, dir string, opts Options) ([]string, error) {
	if len(report.Gainers) == 0 && len(report.Losers) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	date := report.StartedAt.Format("2006-01-02")
	var paths []string
	write := func(name string, rows []model.ScanRow) error {
		if len(rows) == 0 {
			return nil
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", date, name))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		if err := WriteCSV(f, rows, opts); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	}

	if err := write("gainers", report.Gainers); err != nil {
		return paths, err
	}
	if err := write("losers", report.Losers); err != nil {
		return paths, err
	}
	return paths, nil
}
