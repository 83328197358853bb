package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"earnscan/pkg/earnings"
	"earnscan/pkg/pipeline"
	"earnscan/pkg/screen"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	gainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// TextOptions controls the terminal report.
type TextOptions struct {
	// Verbose adds the table of rejected candidates.
	Verbose bool
	// TopN is the number of detailed picks, 5 when zero.
	TopN int
	// Links shows quote URLs in the symbol column.
	Links bool
}

// WriteText renders the full terminal report for res.
func WriteText(w io.Writer, res *pipeline.Result, opts TextOptions) error {
	if opts.TopN == 0 {
		opts.TopN = 5
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Looking for stocks with earnings between %s and %s\n",
		res.Range.Start.Format("2006-01-02"), res.Range.End.Format("2006-01-02"))
	b.WriteString(dimStyle.Render("run "+res.RunID) + "\n\n")

	if len(res.Records) == 0 {
		b.WriteString(warnStyle.Render("Could not find any stocks with earnings in the selected date range.") + "\n")
		b.WriteString("Try a wider window (this-week, next-week) or check the calendar manually.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Found %d stocks with earnings in selected date range\n\n", len(res.Records))
	b.WriteString(titleStyle.Render("Earnings Distribution by Date") + "\n")
	var dist [][]string
	for _, d := range screen.Distribution(res.Records) {
		dist = append(dist, []string{d.Date.Format("2006-01-02"), strconv.Itoa(d.Count)})
	}
	b.WriteString(render([]string{"Earnings Date", "Count"}, dist, nil) + "\n\n")

	sum := res.Summary
	b.WriteString(titleStyle.Render("Analysis Summary") + "\n")
	fmt.Fprintf(&b, "Stocks with Earnings: %d   Opportunities Found: %d   Didn't Meet Criteria: %d\n\n",
		len(res.Records), sum.Opportunities, sum.Rejected)

	if opts.Verbose && len(res.Outcome.Rejections) > 0 {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%d stocks that didn't meet criteria", len(res.Outcome.Rejections))) + "\n")
		var rows [][]string
		for _, r := range res.Outcome.Rejections {
			rows = append(rows, RejectionRow(r))
		}
		b.WriteString(render(RejectionHeaders, rows, nil) + "\n\n")
	}

	opps := res.Outcome.Opportunities
	if len(opps) == 0 {
		b.WriteString(warnStyle.Render("No stocks found matching the criteria (Current Price < Target Price AND EPS >= Minimum).") + "\n")
		fmt.Fprintf(&b, "All %d stocks were checked. Current price must be below target and EPS at least %s.\n",
			len(res.Records), strconv.FormatFloat(res.MinEPS, 'f', -1, 64))
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("%d Stocks Trading Below Target Price", len(opps))) + "\n")
	b.WriteString(dimStyle.Render("With earnings between "+res.Range.String()) + "\n")
	var rows [][]string
	for _, o := range opps {
		rows = append(rows, OpportunityRow(o, opts.Links))
	}
	b.WriteString(render(OpportunityHeaders, rows, upsideStyle(rows, 6)) + "\n")
	b.WriteString("🟢 price above the moving average   🔴 price below it\n\n")

	if trends := screen.Trends(opps); len(trends) > 0 {
		b.WriteString(titleStyle.Render("Moving Average Summary") + "\n")
		var tr [][]string
		for _, t := range trends {
			row := TrendRow(t)
			row[1] = statusMarker(t.Status) + " " + row[1]
			tr = append(tr, row)
		}
		b.WriteString(render(TrendHeaders, tr, nil) + "\n")
		fmt.Fprintf(&b, "Above Both MAs: %d / %d   Above 200-Day MA: %d / %d   %% Above 200-Day MA: %s%%\n\n",
			sum.AboveBoth, sum.WithTrend, sum.Above200Only, sum.WithTrend,
			strconv.FormatFloat(sum.PercentAbove200, 'f', 1, 64))
	}

	fmt.Fprintf(&b, "Average Upside: %s   Max Upside: %s   Average EPS: %s\n\n",
		Percent(sum.AverageUpside), Percent(sum.MaxUpside), Money(sum.AverageEPS))

	b.WriteString(titleStyle.Render(fmt.Sprintf("Top %d Picks by Upside Potential", opts.TopN)) + "\n")
	for _, o := range screen.Top(opps, opts.TopN) {
		writePick(&b, o)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writePick(b *strings.Builder, o screen.Opportunity) {
	s := o.Snapshot
	status := ""
	if t, ok := screen.TrendOf(o); ok {
		status = " " + statusMarker(t.Status) + " " + t.Status.String()
	}
	fmt.Fprintf(b, "\n%s - %s (%s upside)%s\n", titleStyle.Render(o.Symbol), o.Company, Percent(o.UpsidePercent), status)
	fmt.Fprintf(b, "  Earnings Date:  %-14s Sector:         %s\n", o.Date.Format("2006-01-02"), s.Sector)
	fmt.Fprintf(b, "  Current Price:  %-14s EPS (Trailing): %s\n", Money(s.CurrentPrice), Fixed2(s.EPSTrailing))
	fmt.Fprintf(b, "  Target Price:   %-14s EPS (Forward):  %s\n", Money(s.TargetPrice), Fixed2(s.EPSForward))
	fmt.Fprintf(b, "  50-Day MA:      %-14s PE Ratio:       %s\n", MovingAverage(s.CurrentPrice, s.MA50), Fixed2(s.PERatio))
	fmt.Fprintf(b, "  200-Day MA:     %s\n", MovingAverage(s.CurrentPrice, s.MA200))
	fmt.Fprintf(b, "  %s\n", dimStyle.Render(QuoteURL(o.Symbol)))
}

// render draws a bordered table. style may be nil.
func render(headers []string, rows [][]string, style table.StyleFunc) string {
	if style == nil {
		style = func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(style).
		String()
}

// upsideStyle colours the upside column green or red by sign.
func upsideStyle(rows [][]string, col int) table.StyleFunc {
	return func(row, c int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if c != col || row < 0 || row >= len(rows) {
			return cellStyle
		}
		if strings.HasPrefix(rows[row][col], "-") {
			return lossStyle
		}
		return gainStyle
	}
}

var RecordHeaders = []string{"Symbol", "Company", "EPS Estimate", "Earnings Date"}

// WriteRecords renders discovered earnings records, one row each.
func WriteRecords(w io.Writer, records []earnings.Record) error {
	if len(records) == 0 {
		_, err := io.WriteString(w, warnStyle.Render("No earnings found in the window.")+"\n")
		return err
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Symbol, r.Company, Fixed2(r.EPSEstimate), r.Date.Format("2006-01-02")})
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(fmt.Sprintf("%d stocks with earnings", len(records))), render(RecordHeaders, rows, nil))
	return err
}
