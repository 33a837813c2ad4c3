package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

var bookingCSVHeader = []string{
	"Booking ID", "Guest Name", "Guest Email", "Listing", "Category",
	"Check-In", "Check-Out", "Nights", "Guests", "Status", "Payment Status",
	"Total Price", "Created At",
}

var listingCSVHeader = []string{
	"Listing ID", "Title", "Category", "Status", "Host", "Price",
	"Rating", "Reviews", "Bookings", "Created At",
}

// BookingsCSV serializes the filtered+sorted set (not just the visible page).
// Quoting follows the CSV standard: encoding/csv wraps fields containing
// commas, quotes, or newlines and doubles embedded quotes.
func BookingsCSV(rows []BookingRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(bookingCSVHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.GuestName,
			row.GuestEmail,
			row.ListingTitle,
			row.Category,
			csvDate(row.CheckIn),
			csvDate(row.CheckOut),
			strconv.Itoa(row.Nights),
			strconv.Itoa(row.Guests),
			row.Status,
			row.PaymentStatus,
			fmt.Sprintf("%.2f", row.TotalPrice),
			csvDate(row.CreatedAt),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func ListingsCSV(rows []ListingRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(listingCSVHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.Title,
			row.Category,
			row.Status,
			row.HostName,
			fmt.Sprintf("%.2f", row.Price),
			fmt.Sprintf("%.1f", row.RatingAvg),
			strconv.Itoa(row.RatingCount),
			strconv.Itoa(row.BookingCount),
			csvDate(row.CreatedAt),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportFilename embeds the export date and the active time bucket, e.g.
// bookings-report-2026-08-28-week.csv.
func ExportFilename(report, ext, bucket string, now time.Time) string {
	if bucket == "" {
		bucket = "all"
	}
	return fmt.Sprintf("%s-report-%s-%s.%s", report, now.Format("2006-01-02"), bucket, ext)
}

func csvDate(t *time.Time) string {
	if t == nil {
		return PlaceholderText
	}
	return t.Format("2006-01-02")
}
