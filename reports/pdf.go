package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// PDF rendering mirrors the print document: a title, the filtered summary as
// a chip line, then the table. Landscape A4 fits the booking columns.

func BookingsPDF(rows []BookingRow, s BookingSummary, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Bookify - Bookings Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s - %d bookings",
		generatedAt.Format("02 Jan 2006 15:04"), len(rows)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(31, 36, 48)
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf(
		"Total: %d   Confirmed: %d   Pending: %d   Cancelled: %d   Revenue (paid): $%.2f   Guests: %d   Nights: %d",
		s.Total, s.Confirmed, s.Pending, s.Cancelled, s.Revenue, s.Guests, s.Nights),
		"", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := []float64{30, 34, 44, 40, 22, 18, 18, 12, 12, 18, 18, 18}
	headers := []string{"Booking ID", "Guest", "Email", "Listing", "Category",
		"Check-In", "Check-Out", "Nights", "Guests", "Status", "Payment", "Total"}

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(249, 250, 251)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	writeHeader()

	for _, row := range rows {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			writeHeader()
		}
		cells := []string{
			row.ID,
			row.GuestName,
			row.GuestEmail,
			row.ListingTitle,
			row.Category,
			csvDate(row.CheckIn),
			csvDate(row.CheckOut),
			fmt.Sprintf("%d", row.Nights),
			fmt.Sprintf("%d", row.Guests),
			row.Status,
			row.PaymentStatus,
			fmt.Sprintf("$%.2f", row.TotalPrice),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, truncate(c, 30), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ListingsPDF(rows []ListingRow, s ListingSummary, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Bookify - Listings Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s - %d listings",
		generatedAt.Format("02 Jan 2006 15:04"), len(rows)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(31, 36, 48)
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	top := s.TopCategory
	if top == "" {
		top = PlaceholderText
	}
	pdf.CellFormat(0, 6, fmt.Sprintf(
		"Total: %d   Published: %d   Drafts: %d   Bookings: %d   Avg Price: $%.2f   Rating: %.1f   Top Category: %s",
		s.Total, s.Published, s.Drafts, s.Bookings, s.AvgPrice, s.WeightedRating, top),
		"", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := []float64{34, 56, 26, 22, 40, 22, 18, 18, 20, 22}
	headers := []string{"Listing ID", "Title", "Category", "Status", "Host",
		"Price", "Rating", "Reviews", "Bookings", "Created"}

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(249, 250, 251)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	writeHeader()

	for _, row := range rows {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			writeHeader()
		}
		cells := []string{
			row.ID,
			row.Title,
			row.Category,
			row.Status,
			row.HostName,
			fmt.Sprintf("$%.2f", row.Price),
			fmt.Sprintf("%.1f", row.RatingAvg),
			fmt.Sprintf("%d", row.RatingCount),
			fmt.Sprintf("%d", row.BookingCount),
			csvDate(row.CreatedAt),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, truncate(c, 34), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
