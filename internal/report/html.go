package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Page renders rep as a standalone HTML document.
func Page(rep Report) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		b.WriteString("<title>Census report</title>\n</head>\n<body>\n")
		fmt.Fprintf(&b, "<h1>Census report</h1>\n<p class=\"meta\">Run %s &middot; %s &middot; %d rows, %d skipped</p>\n",
			templ.EscapeString(rep.RunID.String()), templ.EscapeString(rep.Source), rep.Rows, rep.Skipped)

		b.WriteString("<h2>Number of each race</h2>\n<table id=\"race-count\">\n<tr><th>Race</th><th>Count</th></tr>\n")
		for _, g := range rep.Result.RaceCount {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td></tr>\n", templ.EscapeString(g.Label), g.Count)
		}
		b.WriteString("</table>\n")

		b.WriteString("<h2>Statistics</h2>\n<dl id=\"statistics\">\n")
		for _, l := range lines(rep.Result) {
			fmt.Fprintf(&b, "<dt>%s</dt><dd>%s</dd>\n", templ.EscapeString(l.Label), templ.EscapeString(l.Value))
		}
		b.WriteString("</dl>\n</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}
