package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"earnscan/pkg/pipeline"
	"earnscan/pkg/screen"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders the opportunities, trend summary and headline numbers as
// GitHub-flavoured markdown.
func Markdown(res *pipeline.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Earnings opportunities %s\n\n", res.Range.String())
	fmt.Fprintf(&b, "Run `%s`. %d stocks with earnings, %d below target, %d did not meet the criteria (minimum EPS %s).\n\n",
		res.RunID, len(res.Records), res.Summary.Opportunities, res.Summary.Rejected, Fixed2(&res.MinEPS))

	opps := res.Outcome.Opportunities
	if len(opps) == 0 {
		b.WriteString("No stocks found matching the criteria.\n")
		return b.String()
	}

	b.WriteString("## Stocks trading below target price\n\n")
	var rows [][]string
	for _, o := range opps {
		row := OpportunityRow(o, false)
		row[0] = fmt.Sprintf("[%s](%s)", o.Symbol, QuoteURL(o.Symbol))
		rows = append(rows, row)
	}
	writeMarkdownTable(&b, OpportunityHeaders, rows)

	if trends := screen.Trends(opps); len(trends) > 0 {
		b.WriteString("\n## Moving average summary\n\n")
		var tr [][]string
		for _, t := range trends {
			tr = append(tr, TrendRow(t))
		}
		writeMarkdownTable(&b, TrendHeaders, tr)
	}

	s := res.Summary
	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&b, "- Average upside: %s\n", Percent(s.AverageUpside))
	fmt.Fprintf(&b, "- Max upside: %s\n", Percent(s.MaxUpside))
	fmt.Fprintf(&b, "- Average EPS: %s\n", Money(s.AverageEPS))
	fmt.Fprintf(&b, "- Above both MAs: %d / %d\n", s.AboveBoth, s.WithTrend)
	fmt.Fprintf(&b, "- Above 200-day MA only: %d / %d\n", s.Above200Only, s.WithTrend)
	return b.String()
}

func writeMarkdownTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

// WriteHTML renders the markdown report into a standalone HTML page.
func WriteHTML(w io.Writer, res *pipeline.Result) error {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(res)), &body); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	title := html.EscapeString("Earnings opportunities " + res.Range.String())
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>%s</title>
<style>body{font-family:sans-serif;margin:2em}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:4px 8px}</style>
</head><body>
%s</body></html>
`, title, body.String())
	return err
}
