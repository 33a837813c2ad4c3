package reports

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// The print/PDF-fallback documents are fully self-contained: inline styles,
// one summary chip row, one table. No external assets beyond the logo URL.

const htmlDocHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; margin: 24px; color: #1f2430; }
h1 { font-size: 20px; margin-bottom: 4px; }
.meta { color: #6b7280; font-size: 12px; margin-bottom: 16px; }
.chips { margin-bottom: 16px; }
.chip { display: inline-block; background: #f3f4f6; border-radius: 12px; padding: 6px 12px; margin-right: 8px; font-size: 12px; }
.chip b { font-size: 14px; }
table { border-collapse: collapse; width: 100%%; font-size: 12px; }
th, td { border: 1px solid #e5e7eb; padding: 6px 8px; text-align: left; }
th { background: #f9fafb; }
tr:nth-child(even) td { background: #fcfcfd; }
</style>
</head>
<body>
`

// BookingsHTML renders the bookings report as a printable document. The
// summary chips are recomputed over the filtered set, not the dashboard's
// unfiltered one.
func BookingsHTML(rows []BookingRow, s BookingSummary, generatedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, htmlDocHead, "Bookings Report")
	b.WriteString("<h1>Bookify — Bookings Report</h1>\n")
	fmt.Fprintf(&b, `<div class="meta">Generated %s · %d bookings</div>`+"\n",
		generatedAt.Format("02 Jan 2006 15:04"), len(rows))

	b.WriteString(`<div class="chips">`)
	chip(&b, "Total", fmt.Sprintf("%d", s.Total))
	chip(&b, "Confirmed", fmt.Sprintf("%d", s.Confirmed))
	chip(&b, "Pending", fmt.Sprintf("%d", s.Pending))
	chip(&b, "Cancelled", fmt.Sprintf("%d", s.Cancelled))
	chip(&b, "Revenue (paid)", fmt.Sprintf("$%.2f", s.Revenue))
	chip(&b, "Guests", fmt.Sprintf("%d", s.Guests))
	chip(&b, "Nights", fmt.Sprintf("%d", s.Nights))
	b.WriteString("</div>\n")

	b.WriteString("<table>\n<tr>")
	for _, h := range bookingCSVHeader {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr>\n")
	for _, row := range rows {
		fmt.Fprintf(&b,
			"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td><td>%s</td><td>$%.2f</td><td>%s</td></tr>\n",
			html.EscapeString(row.ID),
			html.EscapeString(row.GuestName),
			html.EscapeString(row.GuestEmail),
			html.EscapeString(row.ListingTitle),
			html.EscapeString(row.Category),
			csvDate(row.CheckIn),
			csvDate(row.CheckOut),
			row.Nights,
			row.Guests,
			html.EscapeString(row.Status),
			html.EscapeString(row.PaymentStatus),
			row.TotalPrice,
			csvDate(row.CreatedAt),
		)
	}
	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}

func ListingsHTML(rows []ListingRow, s ListingSummary, generatedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, htmlDocHead, "Listings Report")
	b.WriteString("<h1>Bookify — Listings Report</h1>\n")
	fmt.Fprintf(&b, `<div class="meta">Generated %s · %d listings</div>`+"\n",
		generatedAt.Format("02 Jan 2006 15:04"), len(rows))

	b.WriteString(`<div class="chips">`)
	chip(&b, "Total", fmt.Sprintf("%d", s.Total))
	chip(&b, "Published", fmt.Sprintf("%d", s.Published))
	chip(&b, "Drafts", fmt.Sprintf("%d", s.Drafts))
	chip(&b, "Bookings", fmt.Sprintf("%d", s.Bookings))
	chip(&b, "Avg Price", fmt.Sprintf("$%.2f", s.AvgPrice))
	chip(&b, "Rating", fmt.Sprintf("%.1f", s.WeightedRating))
	if s.TopCategory != "" {
		chip(&b, "Top Category", s.TopCategory)
	}
	b.WriteString("</div>\n")

	b.WriteString("<table>\n<tr>")
	for _, h := range listingCSVHeader {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr>\n")
	for _, row := range rows {
		fmt.Fprintf(&b,
			"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>$%.2f</td><td>%.1f</td><td>%d</td><td>%d</td><td>%s</td></tr>\n",
			html.EscapeString(row.ID),
			html.EscapeString(row.Title),
			html.EscapeString(row.Category),
			html.EscapeString(row.Status),
			html.EscapeString(row.HostName),
			row.Price,
			row.RatingAvg,
			row.RatingCount,
			row.BookingCount,
			csvDate(row.CreatedAt),
		)
	}
	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}

func chip(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<span class="chip">%s: <b>%s</b></span>`,
		html.EscapeString(label), html.EscapeString(value))
}
