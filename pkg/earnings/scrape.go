package earnings

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"earnscan/pkg/daterange"
	"earnscan/pkg/progress"
	"earnscan/pkg/ratelimit"
)

const (
	DefaultCalendarURL = "https://finance.yahoo.com"
	// MaxScrapeDays caps the number of calendar pages fetched per run.
	MaxScrapeDays  = 30
	ScrapeTimeout  = 10 * time.Second
	ScrapeInterval = time.Second

	scrapeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ScrapeSource reads the public earnings calendar one day at a time.
type ScrapeSource struct {
	BaseURL    string
	HTTPClient *http.Client
	Pacer      *ratelimit.Pacer
	Progress   progress.Reporter
	Logger     *zap.Logger
}

func NewScrapeSource(logger *zap.Logger) *ScrapeSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScrapeSource{
		BaseURL:    DefaultCalendarURL,
		HTTPClient: &http.Client{Timeout: ScrapeTimeout},
		Pacer:      ratelimit.NewPacer(ScrapeInterval),
		Progress:   progress.Nop{},
		Logger:     logger,
	}
}

func (s *ScrapeSource) Discover(ctx context.Context, r daterange.Range) ([]Record, error) {
	days := r.Days()
	if len(days) > MaxScrapeDays {
		s.Logger.Warn("date range truncated", zap.Int("days", len(days)), zap.Int("max", MaxScrapeDays))
		days = days[:MaxScrapeDays]
	}

	found := newCollector()
	for i, day := range days {
		if err := s.Pacer.Wait(ctx); err != nil {
			return nil, err
		}

		label := day.Format("2006-01-02")
		s.Progress.Report(progress.Update{Stage: "Scanning calendar", Label: label, Checked: i + 1, Total: len(days), Found: len(found.records)})

		rows, err := s.fetchDay(ctx, day)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.Logger.Debug("calendar day failed", zap.String("day", label), zap.Error(err))
			continue
		}

		added := 0
		for _, rec := range rows {
			if found.add(rec) {
				added++
				s.Logger.Debug("calendar entry", zap.String("symbol", rec.Symbol), zap.String("day", label))
			}
		}
		s.Logger.Debug("calendar day scanned", zap.String("day", label), zap.Int("records", added))
	}
	s.Progress.Done("Scanning calendar")

	return found.records, nil
}

func (s *ScrapeSource) fetchDay(ctx context.Context, day time.Time) ([]Record, error) {
	url := s.BaseURL + "/calendar/earnings?day=" + day.Format("2006-01-02")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", scrapeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse calendar page: %w", err)
	}
	return parseCalendarPage(doc, day), nil
}

// parseCalendarPage reads every table on the page. The first row of each
// table is its header.
func parseCalendarPage(doc *goquery.Document, day time.Time) []Record {
	var records []Record
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			cols := row.Find("td")
			if cols.Length() < 2 {
				return
			}
			symbol := strings.TrimSpace(cols.Eq(0).Find("a").First().Text())
			if symbol == "" {
				return
			}
			records = append(records, Record{
				Symbol:      symbol,
				Company:     strings.TrimSpace(cols.Eq(1).Text()),
				EPSEstimate: epsFromColumns(cols),
				Date:        day,
			})
		})
	})
	return records
}

// epsFromColumns returns the first of columns 2-4 that reads as a number.
func epsFromColumns(cols *goquery.Selection) *float64 {
	for idx := 2; idx <= 4 && idx < cols.Length(); idx++ {
		text := strings.TrimSpace(cols.Eq(idx).Text())
		if text == "" || text == "-" || text == "N/A" {
			continue
		}
		text = strings.NewReplacer("$", "", ",", "").Replace(text)
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}
